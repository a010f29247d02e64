package operators

import (
	"fmt"
	"reflect"
)

type Operator string

const (
	OperatorEq  Operator = "="
	OperatorNe  Operator = "!="
	OperatorGt  Operator = ">"
	OperatorGte Operator = ">="
	OperatorLt  Operator = "<"
	OperatorLte Operator = "<="
)

type BinaryOp func(left, right any) (bool, error)

type binaryKey struct {
	left  reflect.Type
	op    Operator
	right reflect.Type
}

// Registry resolves comparisons between record values and attr values by
// their dynamic types.
type Registry struct {
	binary map[binaryKey]BinaryOp
}

func NewRegistry() *Registry {
	return &Registry{
		binary: make(map[binaryKey]BinaryOp),
	}
}

func RegisterBinary[L, R any](reg *Registry, op Operator, fn func(L, R) bool) {
	var zeroL L
	var zeroR R
	key := binaryKey{
		left:  reflect.TypeOf(zeroL),
		op:    op,
		right: reflect.TypeOf(zeroR),
	}
	reg.binary[key] = func(left, right any) (bool, error) {
		return fn(left.(L), right.(R)), nil
	}
}

// Exec compares left with right. A nil operand makes every comparison false,
// as NULL does in SQL.
func (r *Registry) Exec(left any, op Operator, right any) (bool, error) {
	if left == nil || right == nil {
		return false, nil
	}
	fn, err := r.lookup(left, op, right)
	if err != nil {
		return false, err
	}
	return fn(left, right)
}

func (r *Registry) lookup(left any, op Operator, right any) (BinaryOp, error) {
	key := binaryKey{
		left:  reflect.TypeOf(left),
		op:    op,
		right: reflect.TypeOf(right),
	}
	if fn, ok := r.binary[key]; ok {
		return fn, nil
	}
	if op == OperatorEq || op == OperatorNe {
		if _, ok := left.(EqualOperand); ok {
			return func(left, right any) (bool, error) {
				o, ok := right.(EqualOperand)
				if !ok {
					return false, fmt.Errorf("right operand %T does not implement EqualOperand", right)
				}
				return left.(EqualOperand).Equal(o) == (op == OperatorEq), nil
			}, nil
		}
	}
	return nil, fmt.Errorf("operator \"%s\" is not supported for %T and %T", op, left, right)
}

// EqualOperand is implemented by value objects compared with Equal.
type EqualOperand interface {
	Equal(other EqualOperand) bool
}

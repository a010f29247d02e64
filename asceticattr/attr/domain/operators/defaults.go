package operators

import (
	"cmp"
	"time"
)

func registerComparison[T cmp.Ordered](reg *Registry) {
	RegisterBinary[T, T](reg, OperatorEq, func(a, b T) bool { return a == b })
	RegisterBinary[T, T](reg, OperatorNe, func(a, b T) bool { return a != b })
	RegisterBinary[T, T](reg, OperatorGt, func(a, b T) bool { return a > b })
	RegisterBinary[T, T](reg, OperatorGte, func(a, b T) bool { return a >= b })
	RegisterBinary[T, T](reg, OperatorLt, func(a, b T) bool { return a < b })
	RegisterBinary[T, T](reg, OperatorLte, func(a, b T) bool { return a <= b })
}

// registerWidened compares L with R after converting both to float64.
func registerWidened[L, R ~int | ~int64 | ~float64](reg *Registry) {
	RegisterBinary[L, R](reg, OperatorEq, func(a L, b R) bool { return float64(a) == float64(b) })
	RegisterBinary[L, R](reg, OperatorNe, func(a L, b R) bool { return float64(a) != float64(b) })
	RegisterBinary[L, R](reg, OperatorGt, func(a L, b R) bool { return float64(a) > float64(b) })
	RegisterBinary[L, R](reg, OperatorGte, func(a L, b R) bool { return float64(a) >= float64(b) })
	RegisterBinary[L, R](reg, OperatorLt, func(a L, b R) bool { return float64(a) < float64(b) })
	RegisterBinary[L, R](reg, OperatorLte, func(a L, b R) bool { return float64(a) <= float64(b) })
}

// NewDefaultRegistry creates a registry for the value types records and
// attrs carry.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()

	// bool
	RegisterBinary[bool, bool](reg, OperatorEq, func(a, b bool) bool { return a == b })
	RegisterBinary[bool, bool](reg, OperatorNe, func(a, b bool) bool { return a != b })

	registerComparison[int](reg)
	registerComparison[int64](reg)
	registerComparison[float64](reg)
	registerComparison[string](reg)

	// decoded documents mix integers and floats
	registerWidened[int, float64](reg)
	registerWidened[float64, int](reg)
	registerWidened[int, int64](reg)
	registerWidened[int64, int](reg)
	registerWidened[int64, float64](reg)
	registerWidened[float64, int64](reg)

	// time.Time (timestamp)
	RegisterBinary[time.Time, time.Time](reg, OperatorEq, func(a, b time.Time) bool { return a.Equal(b) })
	RegisterBinary[time.Time, time.Time](reg, OperatorNe, func(a, b time.Time) bool { return !a.Equal(b) })
	RegisterBinary[time.Time, time.Time](reg, OperatorGt, func(a, b time.Time) bool { return a.After(b) })
	RegisterBinary[time.Time, time.Time](reg, OperatorGte, func(a, b time.Time) bool { return !a.Before(b) })
	RegisterBinary[time.Time, time.Time](reg, OperatorLt, func(a, b time.Time) bool { return a.Before(b) })
	RegisterBinary[time.Time, time.Time](reg, OperatorLte, func(a, b time.Time) bool { return !a.After(b) })

	return reg
}

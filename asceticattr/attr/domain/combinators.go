package attr

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// AttrAnd is a conjunction: a set of attrs of pairwise distinct kinds.
type AttrAnd struct {
	members []Attr
}

func (a AttrAnd) Kind() Kind {
	return KindAnd
}

func (a AttrAnd) Members() []Attr {
	return slices.Clone(a.members)
}

func (a AttrAnd) Equal(other Attr) bool {
	o, ok := other.(AttrAnd)
	return ok && sameSet(a.members, o.members)
}

func (a AttrAnd) String() string {
	return fmt.Sprintf("<AttrAnd(%s)>", join(a.members))
}

// AttrOr is a disjunction of attrs. The empty AttrOr matches nothing.
type AttrOr struct {
	members []Attr
}

// NewOr builds a normalized AttrOr: nested ORs are flattened, dummies dropped
// and duplicates collapsed. Unlike Or it never unwraps a single member.
func NewOr(members ...Attr) AttrOr {
	var flat []Attr
	for _, m := range members {
		switch x := m.(type) {
		case AttrOr:
			for _, inner := range x.members {
				flat = appendUnique(flat, inner)
			}
		default:
			if !isDummy(m) {
				flat = appendUnique(flat, m)
			}
		}
	}
	return AttrOr{members: flat}
}

func (a AttrOr) Kind() Kind {
	return KindOr
}

func (a AttrOr) Members() []Attr {
	return slices.Clone(a.members)
}

func (a AttrOr) Len() int {
	return len(a.members)
}

func (a AttrOr) Equal(other Attr) bool {
	o, ok := other.(AttrOr)
	return ok && sameSet(a.members, o.members)
}

func (a AttrOr) String() string {
	return fmt.Sprintf("<AttrOr(%s)>", join(a.members))
}

// Or combines operands into a disjunction. It never fails. Dummy operands are
// neutral and a disjunction of one member is that member.
func Or(left Attr, rights ...Attr) Attr {
	operands := append([]Attr{left}, rights...)
	if !slices.ContainsFunc(operands, func(a Attr) bool { return !isDummy(a) }) {
		return Dummy()
	}
	return collapse(NewOr(operands...))
}

// And combines operands into a conjunction, distributing over disjunctions.
// Branches of a distribution that collide are dropped; the combination fails
// only when every branch collides.
func And(left Attr, rights ...Attr) (Attr, error) {
	return fold(left, rights, false)
}

// AndStrict is And that fails as soon as any distributed branch collides.
func AndStrict(left Attr, rights ...Attr) (Attr, error) {
	return fold(left, rights, true)
}

// Xor returns the region covered by exactly one operand. It is defined for
// Ranged leaves and disjunctions of them.
func Xor(left, right Attr) (Attr, error) {
	if isDummy(left) {
		return orDummy(right), nil
	}
	if isDummy(right) {
		return left, nil
	}
	ranged := rangedOf(left)
	if ranged == nil {
		ranged = rangedOf(right)
	}
	if ranged == nil {
		return nil, &TypeCollisionError{Existing: left, Incoming: right}
	}
	return ranged.SymmetricDifference(left, right)
}

func rangedOf(a Attr) Ranged {
	switch x := a.(type) {
	case Ranged:
		return x
	case AttrOr:
		for _, m := range x.members {
			if r, ok := m.(Ranged); ok {
				return r
			}
		}
	}
	return nil
}

func fold(left Attr, rights []Attr, strict bool) (Attr, error) {
	result := orDummy(left)
	for _, right := range rights {
		var err error
		result, err = and(result, orDummy(right), strict)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func and(left, right Attr, strict bool) (Attr, error) {
	if isDummy(left) {
		return right, nil
	}
	if isDummy(right) {
		return left, nil
	}
	if or, ok := left.(AttrOr); ok {
		return distribute(or, right, strict)
	}
	if or, ok := right.(AttrOr); ok {
		return distribute(or, left, strict)
	}
	members := conjuncts(left)
	for _, m := range conjuncts(right) {
		var err error
		members, err = insert(members, m)
		if err != nil {
			return nil, err
		}
	}
	if len(members) == 1 {
		return members[0], nil
	}
	return AttrAnd{members: members}, nil
}

func distribute(or AttrOr, other Attr, strict bool) (Attr, error) {
	var (
		branches []Attr
		errs     *multierror.Error
	)
	for _, m := range or.members {
		branch, err := and(m, other, strict)
		if err != nil {
			if strict {
				return nil, err
			}
			errs = multierror.Append(errs, err)
			continue
		}
		branches = append(branches, branch)
	}
	if len(branches) == 0 && errs != nil {
		return nil, &TypeCollisionError{Err: errs.ErrorOrNil()}
	}
	return collapse(NewOr(branches...)), nil
}

// insert adds a conjunct, merging or rejecting a member of the same kind.
func insert(members []Attr, a Attr) ([]Attr, error) {
	for i, m := range members {
		if m.Equal(a) {
			return members, nil
		}
		if m.Kind() != a.Kind() {
			continue
		}
		merger, ok := m.(Merger)
		if !ok {
			return nil, &TypeCollisionError{Existing: m, Incoming: a}
		}
		merged, err := merger.Merge(a)
		if err != nil {
			return nil, &TypeCollisionError{Existing: m, Incoming: a, Err: err}
		}
		result := slices.Clone(members)
		result[i] = merged
		return result, nil
	}
	return append(slices.Clone(members), a), nil
}

func conjuncts(a Attr) []Attr {
	if conj, ok := a.(AttrAnd); ok {
		return conj.members
	}
	return []Attr{a}
}

func collapse(or AttrOr) Attr {
	if len(or.members) == 1 {
		return or.members[0]
	}
	return or
}

func orDummy(a Attr) Attr {
	if a == nil {
		return Dummy()
	}
	return a
}

func appendUnique(members []Attr, a Attr) []Attr {
	if slices.ContainsFunc(members, a.Equal) {
		return members
	}
	return append(members, a)
}

func sameSet(a, b []Attr) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !slices.ContainsFunc(b, x.Equal) {
			return false
		}
	}
	return true
}

func join(members []Attr) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

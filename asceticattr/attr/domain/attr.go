// Package attr is an algebra of search criteria.
//
// Leaves state single constraints ("instrument = eit", "time within a range").
// And, Or and Xor combine them into trees kept in disjunctive normal form: an
// OR of AND-clauses, where every AND-clause holds at most one leaf per Kind.
// A Walker dispatches each clause to backend-specific handlers.
//
// Every node is an immutable value. Combinators return new nodes and never
// modify their operands.
package attr

import (
	"fmt"
	"strconv"
)

// Kind names the concrete type of an attr. It is the dispatch key of the
// Walker and the collision key of AND-clauses.
type Kind string

const (
	KindAnd   Kind = "AttrAnd"
	KindOr    Kind = "AttrOr"
	KindDummy Kind = "DummyAttr"
	KindValue Kind = "ValueAttr"
)

type Attr interface {
	Kind() Kind
	Equal(other Attr) bool
	String() string
}

// Merger is implemented by leaves whose values can be combined inside one
// AND-clause instead of colliding with another leaf of the same kind.
type Merger interface {
	Merge(other Attr) (Attr, error)
}

// Valuer is implemented by leaves that flatten to a ValueAttr.
type Valuer interface {
	Values() ValueAttr
}

// Ranged is implemented by interval leaves. SymmetricDifference receives both
// whole operands of Xor, either of which may be an AttrOr of leaves of the
// receiver's kind.
type Ranged interface {
	Attr
	SymmetricDifference(left, right Attr) (Attr, error)
}

// Bounded is implemented by interval leaves that backends match by overlap
// rather than by value.
type Bounded interface {
	Endpoints() (lo, hi any)
}

// DummyAttr is the identity element of And, Or and Xor.
type DummyAttr struct{}

func Dummy() DummyAttr {
	return DummyAttr{}
}

func (DummyAttr) Kind() Kind {
	return KindDummy
}

func (DummyAttr) Equal(other Attr) bool {
	_, ok := other.(DummyAttr)
	return ok
}

func (DummyAttr) String() string {
	return "<DummyAttr()>"
}

func isDummy(a Attr) bool {
	if a == nil {
		return true
	}
	_, ok := a.(DummyAttr)
	return ok
}

func repr(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case nil:
		return "nil"
	case interface{ String() string }:
		return x.String()
	}
	return fmt.Sprint(v)
}

package attr

import (
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain/interval"
)

// RangeKind describes an interval leaf type L with endpoints of type T.
// Leaf types use it to implement Ranged.
type RangeKind[L Attr, T any] struct {
	Compare interval.Compare[T]
	Span    func(leaf L) interval.Span[T]
	Build   func(span interval.Span[T]) (L, error)
}

// SymmetricDifference splits left and right, each a leaf of the kind or an
// AttrOr of such leaves, into the fragments covered by exactly one of them.
// One fragment is returned as the leaf, none as the empty AttrOr.
func (k RangeKind[L, T]) SymmetricDifference(left, right Attr) (Attr, error) {
	a, err := k.spans(left, right)
	if err != nil {
		return nil, err
	}
	b, err := k.spans(right, left)
	if err != nil {
		return nil, err
	}
	fragments := interval.SymmetricDifference(k.Compare, a, b)
	if len(fragments) == 1 {
		return k.Build(fragments[0])
	}
	members := make([]Attr, 0, len(fragments))
	for _, f := range fragments {
		leaf, err := k.Build(f)
		if err != nil {
			return nil, err
		}
		members = append(members, leaf)
	}
	return NewOr(members...), nil
}

func (k RangeKind[L, T]) spans(operand, other Attr) ([]interval.Span[T], error) {
	if leaf, ok := operand.(L); ok {
		return []interval.Span[T]{k.Span(leaf)}, nil
	}
	or, ok := operand.(AttrOr)
	if !ok {
		return nil, &TypeCollisionError{Existing: other, Incoming: operand}
	}
	result := make([]interval.Span[T], 0, len(or.members))
	for _, m := range or.members {
		leaf, ok := m.(L)
		if !ok {
			return nil, &TypeCollisionError{Existing: other, Incoming: m}
		}
		result = append(result, k.Span(leaf))
	}
	return result, nil
}

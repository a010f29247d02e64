package interval

import (
	"cmp"
	"slices"
	"time"
)

// Compare orders endpoints: negative when a < b, zero when equal, positive otherwise.
type Compare[T any] func(a, b T) int

func Ordered[T cmp.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}

func Time(a, b time.Time) int {
	return a.Compare(b)
}

// Span is the closed interval [Lo, Hi].
type Span[T any] struct {
	Lo T
	Hi T
}

func New[T any](lo, hi T) Span[T] {
	return Span[T]{Lo: lo, Hi: hi}
}

func (s Span[T]) covers(compare Compare[T], lo, hi T) bool {
	return compare(s.Lo, lo) <= 0 && compare(hi, s.Hi) <= 0
}

// Contains reports whether inner lies within outer.
func Contains[T any](compare Compare[T], outer, inner Span[T]) bool {
	return outer.covers(compare, inner.Lo, inner.Hi)
}

// SymmetricDifference returns the region covered by exactly one of the span
// sets a and b, as spans sorted ascending. Spans within one set may overlap;
// they are treated as their union. Zero-width spans are kept as points.
// Fragments that touch at a point covered by both sets stay apart and share
// that endpoint, since a closed span cannot exclude it.
func SymmetricDifference[T any](compare Compare[T], a, b []Span[T]) []Span[T] {
	return sweep(compare, a, b, func(inA, inB bool) bool {
		return inA != inB
	})
}

// Union returns the disjoint spans covering every point of spans, sorted ascending.
func Union[T any](compare Compare[T], spans []Span[T]) []Span[T] {
	return sweep(compare, spans, nil, func(inA, _ bool) bool {
		return inA
	})
}

// sweep cuts the line at every endpoint into points and the open segments
// between them, in order, and keeps the pieces accepted by keep. A run of
// adjacent kept pieces becomes one span; a kept segment extends to its
// endpoints even when they are dropped.
func sweep[T any](compare Compare[T], a, b []Span[T], keep func(inA, inB bool) bool) []Span[T] {
	points := make([]T, 0, 2*(len(a)+len(b)))
	for _, spans := range [][]Span[T]{a, b} {
		for _, s := range spans {
			points = append(points, s.Lo, s.Hi)
		}
	}
	slices.SortFunc(points, compare)
	points = slices.CompactFunc(points, func(x, y T) bool {
		return compare(x, y) == 0
	})

	var result []Span[T]
	joined := false
	add := func(lo, hi T) {
		if joined {
			result[len(result)-1].Hi = hi
		} else {
			result = append(result, Span[T]{Lo: lo, Hi: hi})
			joined = true
		}
	}
	for i, p := range points {
		if keep(coveredBy(compare, a, p, p), coveredBy(compare, b, p, p)) {
			add(p, p)
		} else {
			joined = false
		}
		if i+1 == len(points) {
			break
		}
		lo, hi := p, points[i+1]
		if keep(coveredBy(compare, a, lo, hi), coveredBy(compare, b, lo, hi)) {
			add(lo, hi)
		} else {
			joined = false
		}
	}
	return result
}

func coveredBy[T any](compare Compare[T], spans []Span[T], lo, hi T) bool {
	for _, s := range spans {
		if s.covers(compare, lo, hi) {
			return true
		}
	}
	return false
}

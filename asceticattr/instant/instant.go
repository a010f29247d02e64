// Package instant turns loosely typed date inputs into comparable UTC instants.
//
// Accepted inputs are time.Time values, integer tuples of two to six elements
// (year, month, day, hour, minute, second; missing elements default to the
// start of the period) and strings in any layout recognized by dateparse.
package instant

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var ErrUnparsable = errors.New("unparsable instant")

type ParseError struct {
	Raw    any
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %#v as instant: %s", e.Raw, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrUnparsable
}

// Parse converts raw into a UTC instant.
func Parse(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC(), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, &ParseError{Raw: raw, Reason: "nil time"}
		}
		return v.UTC(), nil
	case string:
		return parseString(v)
	case []byte:
		return parseString(string(v))
	case []int:
		return fromTuple(raw, v)
	case []any:
		tuple := make([]int, len(v))
		for i := range v {
			n, ok := integral(v[i])
			if !ok {
				return time.Time{}, &ParseError{Raw: raw, Reason: fmt.Sprintf("element %d is not an integer", i)}
			}
			tuple[i] = n
		}
		return fromTuple(raw, tuple)
	}
	return time.Time{}, &ParseError{Raw: raw, Reason: fmt.Sprintf("unsupported type %T", raw)}
}

// MustParse is Parse for literals known to be valid.
func MustParse(raw any) time.Time {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func parseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ParseError{Raw: s, Reason: "empty string"}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, &ParseError{Raw: s, Reason: err.Error()}
	}
	return t.UTC(), nil
}

func fromTuple(raw any, tuple []int) (time.Time, error) {
	if len(tuple) < 2 || len(tuple) > 6 {
		return time.Time{}, &ParseError{Raw: raw, Reason: fmt.Sprintf("expected 2 to 6 elements, got %d", len(tuple))}
	}
	parts := [6]int{0, 1, 1, 0, 0, 0}
	copy(parts[:], tuple)
	year, month, day, hour, minute, sec := parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]
	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC)
	// time.Date normalizes overflowing fields, a tuple must not rely on that
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return time.Time{}, &ParseError{Raw: raw, Reason: "field out of range"}
	}
	return t, nil
}

func integral(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

// Range is a closed interval of instants.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange parses both endpoints and checks they are in chronological order.
func NewRange(start, end any) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	if s.After(e) {
		return Range{}, &ParseError{Raw: []any{start, end}, Reason: "start is after end"}
	}
	return Range{Start: s, End: e}, nil
}

func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

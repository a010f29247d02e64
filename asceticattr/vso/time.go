package vso

import (
	"fmt"
	"time"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain/interval"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/instant"
)

// TimeFormat is the layout the service expects for time endpoints.
const TimeFormat = "20060102150405"

const displayFormat = "2006-01-02 15:04:05"

var timeRange = attr.RangeKind[Time, time.Time]{
	Compare: interval.Time,
	Span: func(t Time) interval.Span[time.Time] {
		return interval.New(t.start, t.end)
	},
	Build: func(s interval.Span[time.Time]) (Time, error) {
		return Time{start: s.Lo, end: s.Hi}, nil
	},
}

// Time restricts observations to the closed interval [start, end].
type Time struct {
	start time.Time
	end   time.Time
}

// NewTime accepts anything instant.Parse does for either endpoint.
func NewTime(start, end any) (Time, error) {
	r, err := instant.NewRange(start, end)
	if err != nil {
		return Time{}, attr.NewValueError(KindTime, err, "cannot build range")
	}
	return TimeFromRange(r), nil
}

func MustTime(start, end any) Time {
	t, err := NewTime(start, end)
	if err != nil {
		panic(err)
	}
	return t
}

func TimeFromRange(r instant.Range) Time {
	return Time{start: r.Start.UTC(), end: r.End.UTC()}
}

func (t Time) Kind() attr.Kind {
	return KindTime
}

func (t Time) Start() time.Time {
	return t.start
}

func (t Time) End() time.Time {
	return t.end
}

func (t Time) Range() instant.Range {
	return instant.Range{Start: t.start, End: t.end}
}

func (t Time) Endpoints() (any, any) {
	return t.start, t.end
}

// Pad returns the interval of width 2d centred on the start of t.
func (t Time) Pad(d time.Duration) Time {
	return Time{start: t.start.Add(-d), end: t.start.Add(d)}
}

func (t Time) Contains(other Time) bool {
	return interval.Contains(interval.Time, timeRange.Span(t), timeRange.Span(other))
}

func (t Time) Equal(other attr.Attr) bool {
	o, ok := other.(Time)
	return ok && t.start.Equal(o.start) && t.end.Equal(o.end)
}

func (t Time) SymmetricDifference(left, right attr.Attr) (attr.Attr, error) {
	return timeRange.SymmetricDifference(left, right)
}

func (t Time) Values() attr.ValueAttr {
	return attr.NewValueAttr(
		attr.Entry{Path: attr.Path{"time", "start"}, Value: t.start.UTC().Format(TimeFormat)},
		attr.Entry{Path: attr.Path{"time", "end"}, Value: t.end.UTC().Format(TimeFormat)},
	)
}

func (t Time) String() string {
	return fmt.Sprintf("<Time(%s, %s)>", t.start.Format(displayFormat), t.end.Format(displayFormat))
}

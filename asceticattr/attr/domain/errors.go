package attr

import (
	"errors"
	"fmt"
)

var (
	// ErrType is the family of errors raised for kind mismatches: collisions
	// inside an AND-clause, undefined XOR and walker dispatch without handler.
	ErrType = errors.New("attr type error")
	// ErrValue is raised for malformed leaf input.
	ErrValue = errors.New("attr value error")
)

type ValueError struct {
	Kind   Kind
	Reason string
	Err    error
}

func NewValueError(kind Kind, err error, format string, args ...any) *ValueError {
	return &ValueError{Kind: kind, Reason: fmt.Sprintf(format, args...), Err: err}
}

func (e *ValueError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValueError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValue}
	}
	return []error{ErrValue, e.Err}
}

// TypeCollisionError reports two attrs of one kind that cannot hold together.
// Err carries the aggregated branch failures when a whole distribution failed.
type TypeCollisionError struct {
	Existing Attr
	Incoming Attr
	Err      error
}

func (e *TypeCollisionError) Error() string {
	switch {
	case e.Existing != nil && e.Incoming != nil:
		return fmt.Sprintf("%s collides with %s", e.Incoming, e.Existing)
	case e.Err != nil:
		return fmt.Sprintf("every branch collides: %v", e.Err)
	}
	return "attr collision"
}

func (e *TypeCollisionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrType}
	}
	return []error{ErrType, e.Err}
}

// UnsupportedAttrError is returned when a walker has no handler for a kind.
type UnsupportedAttrError struct {
	Kind Kind
	Op   string
}

func (e *UnsupportedAttrError) Error() string {
	return fmt.Sprintf("%s is not supported for %s", e.Op, e.Kind)
}

func (e *UnsupportedAttrError) Unwrap() error {
	return ErrType
}

// MergeConflict is returned by Merger implementations when values disagree.
type MergeConflict struct {
	ExistingValue any
	NewValue      any
}

func (e *MergeConflict) Error() string {
	return fmt.Sprintf("cannot merge %v with %v", e.ExistingValue, e.NewValue)
}

package attr

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// CreateFunc produces new backend objects for an attr.
type CreateFunc[C, R any] func(w *Walker[C, R], a Attr, ctx C) ([]R, error)

// ApplyFunc writes an attr into an existing accumulator.
type ApplyFunc[C, R any] func(w *Walker[C, R], a Attr, ctx C, acc R) error

// ConvertFunc rewrites an attr into another attr the walker can handle.
type ConvertFunc func(a Attr) (Attr, error)

// Walker converts attr trees into backend objects of type R using handlers
// registered per Kind. C is the backend context passed through to handlers.
//
// Registration may run concurrently with dispatch, although walkers are
// normally populated once before use.
type Walker[C, R any] struct {
	mu       sync.RWMutex
	creators map[Kind]CreateFunc[C, R]
	appliers map[Kind]ApplyFunc[C, R]
}

func NewWalker[C, R any]() *Walker[C, R] {
	return &Walker[C, R]{
		creators: make(map[Kind]CreateFunc[C, R]),
		appliers: make(map[Kind]ApplyFunc[C, R]),
	}
}

func (w *Walker[C, R]) AddCreator(fn CreateFunc[C, R], kinds ...Kind) *Walker[C, R] {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, k := range kinds {
		w.creators[k] = fn
	}
	return w
}

func (w *Walker[C, R]) AddApplier(fn ApplyFunc[C, R], kinds ...Kind) *Walker[C, R] {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, k := range kinds {
		w.appliers[k] = fn
	}
	return w
}

// AddConverter registers both a creator and an applier for kinds that
// rewrite the attr with fn and dispatch the result again.
func (w *Walker[C, R]) AddConverter(fn ConvertFunc, kinds ...Kind) *Walker[C, R] {
	w.AddCreator(func(w *Walker[C, R], a Attr, ctx C) ([]R, error) {
		converted, err := fn(a)
		if err != nil {
			return nil, err
		}
		return w.Create(converted, ctx)
	}, kinds...)
	return w.AddApplier(func(w *Walker[C, R], a Attr, ctx C, acc R) error {
		converted, err := fn(a)
		if err != nil {
			return err
		}
		return w.Apply(converted, ctx, acc)
	}, kinds...)
}

// AddValueConverter registers kinds implementing Valuer to be handled as
// their ValueAttr.
func (w *Walker[C, R]) AddValueConverter(kinds ...Kind) *Walker[C, R] {
	return w.AddConverter(func(a Attr) (Attr, error) {
		v, ok := a.(Valuer)
		if !ok {
			return nil, &UnsupportedAttrError{Kind: a.Kind(), Op: "value conversion"}
		}
		return v.Values(), nil
	}, kinds...)
}

// Create builds backend objects for a, one per AND-clause.
func (w *Walker[C, R]) Create(a Attr, ctx C) ([]R, error) {
	if isDummy(a) {
		return nil, &UnsupportedAttrError{Kind: KindDummy, Op: "create"}
	}
	w.mu.RLock()
	fn, ok := w.creators[a.Kind()]
	w.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedAttrError{Kind: a.Kind(), Op: "create"}
	}
	return fn(w, a, ctx)
}

// Apply writes a into acc.
func (w *Walker[C, R]) Apply(a Attr, ctx C, acc R) error {
	if isDummy(a) {
		return &UnsupportedAttrError{Kind: KindDummy, Op: "apply"}
	}
	w.mu.RLock()
	fn, ok := w.appliers[a.Kind()]
	w.mu.RUnlock()
	if !ok {
		return &UnsupportedAttrError{Kind: a.Kind(), Op: "apply"}
	}
	return fn(w, a, ctx, acc)
}

// Check reports every kind that lacks a creator or an applier.
func (w *Walker[C, R]) Check(kinds ...Kind) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var result *multierror.Error
	for _, k := range kinds {
		if _, ok := w.creators[k]; !ok {
			result = multierror.Append(result, &UnsupportedAttrError{Kind: k, Op: "create"})
		}
		if _, ok := w.appliers[k]; !ok {
			result = multierror.Append(result, &UnsupportedAttrError{Kind: k, Op: "apply"})
		}
	}
	return result.ErrorOrNil()
}

// CreatorOf adapts a creator written against a concrete attr type.
func CreatorOf[T Attr, C, R any](fn func(w *Walker[C, R], a T, ctx C) ([]R, error)) CreateFunc[C, R] {
	return func(w *Walker[C, R], a Attr, ctx C) ([]R, error) {
		typed, ok := a.(T)
		if !ok {
			return nil, mismatch[T](a, "create")
		}
		return fn(w, typed, ctx)
	}
}

// ApplierOf adapts an applier written against a concrete attr type.
func ApplierOf[T Attr, C, R any](fn func(w *Walker[C, R], a T, ctx C, acc R) error) ApplyFunc[C, R] {
	return func(w *Walker[C, R], a Attr, ctx C, acc R) error {
		typed, ok := a.(T)
		if !ok {
			return mismatch[T](a, "apply")
		}
		return fn(w, typed, ctx, acc)
	}
}

// ConverterOf adapts a converter written against a concrete attr type.
func ConverterOf[T Attr](fn func(a T) (Attr, error)) ConvertFunc {
	return func(a Attr) (Attr, error) {
		typed, ok := a.(T)
		if !ok {
			return nil, mismatch[T](a, "convert")
		}
		return fn(typed)
	}
}

func mismatch[T Attr](a Attr, op string) error {
	var zero T
	return &UnsupportedAttrError{Kind: a.Kind(), Op: fmt.Sprintf("%s as %T", op, zero)}
}

// Fresh creates one accumulator with newAcc and applies the attr to it.
func Fresh[C, R any](newAcc func(ctx C) (R, error)) CreateFunc[C, R] {
	return func(w *Walker[C, R], a Attr, ctx C) ([]R, error) {
		acc, err := newAcc(ctx)
		if err != nil {
			return nil, err
		}
		if err := w.Apply(a, ctx, acc); err != nil {
			return nil, err
		}
		return []R{acc}, nil
	}
}

// RegisterDefaults installs the canonical handlers for the built-in kinds:
//
//   - create(AttrAnd): one fresh accumulator with every member applied to it;
//   - create(AttrOr): the concatenation of create over every member;
//   - create(ValueAttr): one fresh accumulator with the value applied;
//   - apply(AttrAnd): apply of every member;
//   - apply(ValueAttr): Set of every entry.
func RegisterDefaults[C any, R Setter](w *Walker[C, R], newAcc func(ctx C) (R, error)) *Walker[C, R] {
	w.AddCreator(Fresh(newAcc), KindAnd, KindValue)
	w.AddCreator(CreatorOf(func(w *Walker[C, R], a AttrOr, ctx C) ([]R, error) {
		var result []R
		for _, m := range a.members {
			created, err := w.Create(m, ctx)
			if err != nil {
				return nil, err
			}
			result = append(result, created...)
		}
		return result, nil
	}), KindOr)
	w.AddApplier(ApplierOf(func(w *Walker[C, R], a AttrAnd, ctx C, acc R) error {
		for _, m := range a.members {
			if err := w.Apply(m, ctx, acc); err != nil {
				return err
			}
		}
		return nil
	}), KindAnd)
	w.AddApplier(ApplierOf(func(w *Walker[C, R], a ValueAttr, ctx C, acc R) error {
		for _, e := range a.entries {
			if err := acc.Set(e.Path, e.Value); err != nil {
				return fmt.Errorf("apply %s: %w", e.Path, err)
			}
		}
		return nil
	}), KindValue)
	return w
}

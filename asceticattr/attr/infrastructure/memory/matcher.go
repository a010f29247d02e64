// Package memory evaluates attr trees against in-memory records.
package memory

import (
	"slices"

	"github.com/pkg/errors"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain/operators"
)

// Predicate reports whether a record satisfies a compiled tree.
type Predicate func(record attr.Record) (bool, error)

type condition func(record attr.Record) (bool, error)

// clause accumulates the conditions of one AND-clause.
type clause struct {
	registry   *operators.Registry
	conditions []condition
}

func (c *clause) Set(path attr.Path, value any) error {
	path = slices.Clone(path)
	c.conditions = append(c.conditions, func(record attr.Record) (bool, error) {
		actual, ok := record.Get(path)
		if !ok {
			return false, nil
		}
		return c.registry.Exec(actual, operators.OperatorEq, value)
	})
	return nil
}

func (c *clause) overlap(lo, hi attr.Path, qlo, qhi any) {
	c.conditions = append(c.conditions, func(record attr.Record) (bool, error) {
		rlo, ok := record.Get(lo)
		if !ok {
			return false, nil
		}
		rhi, ok := record.Get(hi)
		if !ok {
			return false, nil
		}
		below, err := c.registry.Exec(rlo, operators.OperatorLte, qhi)
		if err != nil || !below {
			return false, err
		}
		return c.registry.Exec(rhi, operators.OperatorGte, qlo)
	})
}

func (c *clause) match(record attr.Record) (bool, error) {
	for _, cond := range c.conditions {
		ok, err := cond(record)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

type bounds struct {
	lo, hi attr.Path
}

type Option func(*Matcher)

// WithRegistry replaces the default comparison registry.
func WithRegistry(registry *operators.Registry) Option {
	return func(m *Matcher) {
		m.registry = registry
	}
}

// WithValueKinds makes leaves of kinds match by their flattened values.
func WithValueKinds(kinds ...attr.Kind) Option {
	return func(m *Matcher) {
		m.walker.AddValueConverter(kinds...)
	}
}

// WithRange makes Bounded leaves of kind match records whose [lo, hi]
// fields overlap the leaf.
func WithRange(kind attr.Kind, lo, hi attr.Path) Option {
	return func(m *Matcher) {
		m.ranges[kind] = bounds{lo: lo, hi: hi}
		m.walker.AddCreator(attr.Fresh(newClause), kind)
		m.walker.AddApplier(applyRange, kind)
	}
}

type Matcher struct {
	walker   *attr.Walker[*Matcher, *clause]
	registry *operators.Registry
	ranges   map[attr.Kind]bounds
}

func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		walker:   attr.NewWalker[*Matcher, *clause](),
		registry: operators.NewDefaultRegistry(),
		ranges:   make(map[attr.Kind]bounds),
	}
	attr.RegisterDefaults(m.walker, newClause)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newClause(m *Matcher) (*clause, error) {
	return &clause{registry: m.registry}, nil
}

func applyRange(w *attr.Walker[*Matcher, *clause], a attr.Attr, m *Matcher, acc *clause) error {
	b, ok := a.(attr.Bounded)
	if !ok {
		return &attr.UnsupportedAttrError{Kind: a.Kind(), Op: "range match"}
	}
	fields := m.ranges[a.Kind()]
	lo, hi := b.Endpoints()
	acc.overlap(fields.lo, fields.hi, lo, hi)
	return nil
}

// Compile turns tree into a predicate true for records matching any clause.
func (m *Matcher) Compile(tree attr.Attr) (Predicate, error) {
	clauses, err := m.walker.Create(tree, m)
	if err != nil {
		return nil, errors.Wrap(err, "compile predicate")
	}
	return func(record attr.Record) (bool, error) {
		for _, c := range clauses {
			ok, err := c.match(record)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}, nil
}

// Filter returns the records matching tree, in input order.
func (m *Matcher) Filter(tree attr.Attr, records []attr.Record) ([]attr.Record, error) {
	match, err := m.Compile(tree)
	if err != nil {
		return nil, err
	}
	var result []attr.Record
	for _, r := range records {
		ok, err := match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, r)
		}
	}
	return result, nil
}

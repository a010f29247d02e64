// Package infrastructure compiles attr trees into parameterized SQL.
package infrastructure

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
)

type Placeholder int

const (
	// Dollar renders $1, $2, ... as PostgreSQL expects.
	Dollar Placeholder = iota
	// Question renders ? as SQLite and MySQL expect.
	Question
)

// ParsePlaceholder reads "dollar" or "question".
func ParsePlaceholder(name string) (Placeholder, error) {
	switch strings.ToLower(name) {
	case "dollar", "$", "":
		return Dollar, nil
	case "question", "?":
		return Question, nil
	}
	return Dollar, errors.Errorf("unknown placeholder style %q", name)
}

// Clause is the WHERE condition of one AND-clause.
type Clause struct {
	schema *Schema
	parts  []string
	params []any
}

func (c *Clause) Set(path attr.Path, value any) error {
	name, ok := c.schema.Lookup(path)
	if !ok {
		return &attr.UnsupportedAttrError{Kind: attr.KindValue, Op: "column " + path.String()}
	}
	column := c.schema.Ref(name)
	if value == nil {
		c.parts = append(c.parts, column+" IS NULL")
		return nil
	}
	c.parts = append(c.parts, column+" = ?")
	c.params = append(c.params, value)
	return nil
}

func (c *Clause) overlap(columns RangeColumns, lo, hi any) {
	c.parts = append(c.parts, fmt.Sprintf("%s <= ? AND %s >= ?",
		c.schema.Ref(columns.Lo), c.schema.Ref(columns.Hi)))
	c.params = append(c.params, hi, lo)
}

// SQL renders the clause with ? markers. A clause without conditions holds
// for every row and renders TRUE.
func (c *Clause) SQL() string {
	if len(c.parts) == 0 {
		return "TRUE"
	}
	return strings.Join(c.parts, " AND ")
}

func (c *Clause) Params() []any {
	return c.params
}

type CompilerOption func(*Compiler)

func WithPlaceholder(p Placeholder) CompilerOption {
	return func(c *Compiler) {
		c.placeholder = p
	}
}

// WithValueKinds compiles leaves of kinds through their flattened values.
func WithValueKinds(kinds ...attr.Kind) CompilerOption {
	return func(c *Compiler) {
		c.walker.AddValueConverter(kinds...)
	}
}

type Compiler struct {
	schema      *Schema
	placeholder Placeholder
	walker      *attr.Walker[*Schema, *Clause]
}

func NewCompiler(schema *Schema, opts ...CompilerOption) *Compiler {
	c := &Compiler{
		schema: schema,
		walker: attr.NewWalker[*Schema, *Clause](),
	}
	attr.RegisterDefaults(c.walker, newClause)
	for kind := range schema.ranges {
		c.walker.AddCreator(attr.Fresh(newClause), kind)
		c.walker.AddApplier(applyRange, kind)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newClause(schema *Schema) (*Clause, error) {
	return &Clause{schema: schema}, nil
}

func applyRange(w *attr.Walker[*Schema, *Clause], a attr.Attr, schema *Schema, acc *Clause) error {
	b, ok := a.(attr.Bounded)
	if !ok {
		return &attr.UnsupportedAttrError{Kind: a.Kind(), Op: "range compile"}
	}
	columns, _ := schema.Range(a.Kind())
	lo, hi := b.Endpoints()
	acc.overlap(columns, lo, hi)
	return nil
}

func (c *Compiler) Schema() *Schema {
	return c.schema
}

// Clauses compiles every AND-clause of tree separately.
func (c *Compiler) Clauses(tree attr.Attr) ([]*Clause, error) {
	clauses, err := c.walker.Create(tree, c.schema)
	if err != nil {
		return nil, errors.Wrap(err, "compile where clause")
	}
	return clauses, nil
}

// Compile renders tree as a WHERE condition. The contradiction compiles to
// FALSE.
func (c *Compiler) Compile(tree attr.Attr) (sql string, params []any, err error) {
	clauses, err := c.Clauses(tree)
	if err != nil {
		return "", nil, err
	}
	switch len(clauses) {
	case 0:
		return "FALSE", nil, nil
	case 1:
		sql = clauses[0].SQL()
		params = clauses[0].Params()
	default:
		parts := make([]string, len(clauses))
		for i, clause := range clauses {
			parts[i] = "(" + clause.SQL() + ")"
			params = append(params, clause.Params()...)
		}
		sql = strings.Join(parts, " OR ")
	}
	return c.render(sql), params, nil
}

func (c *Compiler) Placeholder() Placeholder {
	return c.placeholder
}

func (c *Compiler) render(sql string) string {
	return c.placeholder.Rebind(sql)
}

// Rebind rewrites the ? markers of sql into the placeholder style.
func (p Placeholder) Rebind(sql string) string {
	if p == Question {
		return sql
	}
	return replaceParamMarkers(sql)
}

func replaceParamMarkers(sql string) string {
	var b strings.Builder
	idx := 1
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' {
			b.WriteString(fmt.Sprintf("$%d", idx))
			idx++
		} else {
			b.WriteByte(sql[i])
		}
	}
	return b.String()
}

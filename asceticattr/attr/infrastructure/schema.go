package infrastructure

import (
	"strings"

	"github.com/jinzhu/inflection"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
)

// RangeColumns holds the columns storing the bounds of a record's interval.
type RangeColumns struct {
	Lo string
	Hi string
}

// Schema maps attr paths to the columns of one table.
type Schema struct {
	// Table is the table name (e.g., "observations")
	Table string

	// Alias qualifies columns; defaults to the singularized table name
	Alias string

	columns map[string]string
	ranges  map[attr.Kind]RangeColumns
	strict  bool
}

func NewSchema(table string) *Schema {
	return &Schema{
		Table:   table,
		Alias:   inflection.Singular(table),
		columns: make(map[string]string),
		ranges:  make(map[attr.Kind]RangeColumns),
	}
}

func (s *Schema) WithAlias(alias string) *Schema {
	s.Alias = alias
	return s
}

// RegisterColumn overrides the column of path.
func (s *Schema) RegisterColumn(path attr.Path, column string) *Schema {
	s.columns[path.String()] = column
	return s
}

// RegisterRange makes Bounded leaves of kind compile to an overlap test
// against the lo and hi columns.
func (s *Schema) RegisterRange(kind attr.Kind, lo, hi string) *Schema {
	s.ranges[kind] = RangeColumns{Lo: lo, Hi: hi}
	return s
}

// Strict makes Lookup reject paths without a registered column.
func (s *Schema) Strict() *Schema {
	s.strict = true
	return s
}

func (s *Schema) Range(kind attr.Kind) (RangeColumns, bool) {
	r, ok := s.ranges[kind]
	return r, ok
}

// Column returns the column of path. Unregistered paths join their
// segments with "_".
func (s *Schema) Column(path attr.Path) string {
	if c, ok := s.columns[path.String()]; ok {
		return c
	}
	return strings.Join(path, "_")
}

// Lookup returns the column of path. A strict schema knows registered
// columns only.
func (s *Schema) Lookup(path attr.Path) (string, bool) {
	if c, ok := s.columns[path.String()]; ok {
		return c, true
	}
	if s.strict {
		return "", false
	}
	return strings.Join(path, "_"), true
}

// Ref qualifies column with the alias.
func (s *Schema) Ref(column string) string {
	if s.Alias == "" {
		return column
	}
	return s.Alias + "." + column
}

// From renders the table reference of a FROM clause.
func (s *Schema) From() string {
	if s.Alias == "" || s.Alias == s.Table {
		return s.Table
	}
	return s.Table + " " + s.Alias
}

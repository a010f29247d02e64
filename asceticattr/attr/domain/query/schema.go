// Package query reads attr trees from map documents and writes them back.
//
// A document is a map of field names to values, combined with AND, or a map
// holding a single operator: "$and", "$or" or "$xor" with a list of documents.
// A field value may itself be {"$or": [v1, v2, ...]}.
package query

import (
	"fmt"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
)

// Field binds a document field name to a leaf kind.
type Field struct {
	Name   string
	Kind   attr.Kind
	Build  func(value any) (attr.Attr, error)
	Render func(a attr.Attr) (any, error)
}

// Simple maps a field to attr.NewSimpleAttr of kind.
func Simple(name string, kind attr.Kind) Field {
	return Field{
		Name: name,
		Kind: kind,
		Build: func(value any) (attr.Attr, error) {
			return attr.NewSimpleAttr(kind, value), nil
		},
		Render: func(a attr.Attr) (any, error) {
			s, ok := a.(attr.SimpleAttr)
			if !ok {
				return nil, fmt.Errorf("field %s cannot render %s", name, a)
			}
			return s.Value(), nil
		},
	}
}

type Schema struct {
	byName map[string]Field
	byKind map[attr.Kind]Field
}

func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		byName: make(map[string]Field, len(fields)),
		byKind: make(map[attr.Kind]Field, len(fields)),
	}
	for _, f := range fields {
		s.Register(f)
	}
	return s
}

func (s *Schema) Register(f Field) {
	s.byName[f.Name] = f
	s.byKind[f.Kind] = f
}

func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

func (s *Schema) FieldOf(kind attr.Kind) (Field, bool) {
	f, ok := s.byKind[kind]
	return f, ok
}

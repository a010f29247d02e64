package query

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
)

const operatorPrefix = "$"

// ParseError locates a failure inside a document. Path is a dotted list of
// field names and list indexes.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type ParserOption func(*Parser)

// WithStrictAnd makes every conjunction fail when any distributed branch
// collides.
func WithStrictAnd() ParserOption {
	return func(p *Parser) {
		p.and = attr.AndStrict
	}
}

type Parser struct {
	schema *Schema
	and    func(left attr.Attr, rights ...attr.Attr) (attr.Attr, error)
}

func NewParser(schema *Schema, opts ...ParserOption) *Parser {
	p := &Parser{schema: schema, and: attr.And}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseYAML decodes a YAML or JSON document and parses it.
func (p *Parser) ParseYAML(data []byte) (attr.Attr, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc == nil {
		return attr.Dummy(), nil
	}
	return p.Parse(doc)
}

// Parse builds a normalized tree from doc. The empty document is DummyAttr.
func (p *Parser) Parse(doc any) (attr.Attr, error) {
	return p.parse(doc, nil)
}

func (p *Parser) parse(doc any, path []string) (attr.Attr, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fail(path, "query must be a map, got: %T", doc)
	}
	if len(m) == 0 {
		return attr.Dummy(), nil
	}

	var operators, fields []string
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if strings.HasPrefix(k, operatorPrefix) {
			operators = append(operators, k)
		} else {
			fields = append(fields, k)
		}
	}
	if len(operators) > 0 && len(fields) > 0 {
		return nil, fail(path, "cannot mix operators and fields at same level. Operators: %v, Fields: %v", operators, fields)
	}
	if len(operators) > 1 {
		return nil, fail(path, "expected a single operator, got: %v", operators)
	}
	if len(operators) == 1 {
		return p.parseOperator(operators[0], m[operators[0]], path)
	}

	var result attr.Attr = attr.Dummy()
	for _, name := range fields {
		leaf, err := p.parseField(name, m[name], child(path, name))
		if err != nil {
			return nil, err
		}
		result, err = p.and(result, leaf)
		if err != nil {
			return nil, &ParseError{Path: strings.Join(child(path, name), "."), Err: err}
		}
	}
	return result, nil
}

func (p *Parser) parseOperator(op string, value any, path []string) (attr.Attr, error) {
	path = child(path, op)
	operands, err := p.parseList(value, path)
	if err != nil {
		return nil, err
	}
	switch op {
	case "$or":
		if len(operands) == 0 {
			return attr.NewOr(), nil
		}
		return attr.Or(operands[0], operands[1:]...), nil
	case "$and":
		if len(operands) == 0 {
			return attr.Dummy(), nil
		}
		result, err := p.and(operands[0], operands[1:]...)
		if err != nil {
			return nil, &ParseError{Path: strings.Join(path, "."), Err: err}
		}
		return result, nil
	case "$xor":
		if len(operands) < 2 {
			return nil, fail(path, "$xor requires at least 2 operands, got: %d", len(operands))
		}
		result := operands[0]
		for _, operand := range operands[1:] {
			result, err = attr.Xor(result, operand)
			if err != nil {
				return nil, &ParseError{Path: strings.Join(path, "."), Err: err}
			}
		}
		return result, nil
	}
	return nil, fail(path[:len(path)-1], "unknown operator: %s", op)
}

func (p *Parser) parseList(value any, path []string) ([]attr.Attr, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, fail(path, "%s value must be list, got: %T", path[len(path)-1], value)
	}
	result := make([]attr.Attr, len(list))
	for i, item := range list {
		operand, err := p.parse(item, child(path, fmt.Sprint(i)))
		if err != nil {
			return nil, err
		}
		result[i] = operand
	}
	return result, nil
}

func (p *Parser) parseField(name string, value any, path []string) (attr.Attr, error) {
	f, ok := p.schema.Field(name)
	if !ok {
		return nil, fail(path, "unknown field: %s", name)
	}
	if m, ok := value.(map[string]any); ok {
		if alternatives, ok := m["$or"]; ok && len(m) == 1 {
			list, ok := alternatives.([]any)
			if !ok {
				return nil, fail(path, "$or value must be list, got: %T", alternatives)
			}
			members := make([]attr.Attr, len(list))
			for i, item := range list {
				leaf, err := build(f, item, child(path, "$or", fmt.Sprint(i)))
				if err != nil {
					return nil, err
				}
				members[i] = leaf
			}
			if len(members) == 0 {
				return attr.NewOr(), nil
			}
			return attr.Or(members[0], members[1:]...), nil
		}
	}
	return build(f, value, path)
}

// child returns a copy of path extended by names. Sibling paths built in a
// loop must not share a backing array.
func child(path []string, names ...string) []string {
	return slices.Concat(path, names)
}

func build(f Field, value any, path []string) (attr.Attr, error) {
	leaf, err := f.Build(value)
	if err != nil {
		return nil, &ParseError{Path: strings.Join(path, "."), Err: err}
	}
	return leaf, nil
}

func fail(path []string, format string, args ...any) error {
	return &ParseError{Path: strings.Join(path, "."), Err: fmt.Errorf(format, args...)}
}

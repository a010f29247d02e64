package attr

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Path addresses a field of a backend record. The last element is the field
// name, the preceding ones name nested groups.
type Path []string

func (p Path) String() string {
	return strings.Join(p, ".")
}

func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

func (p Path) Compare(other Path) int {
	return slices.Compare(p, other)
}

// Child returns a new path extended by name.
func (p Path) Child(name string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, name)
}

// SimpleAttr states "path == value".
type SimpleAttr struct {
	kind  Kind
	path  Path
	value any
}

// NewSimpleAttr creates a leaf of the given kind. The path defaults to the
// lower-cased kind.
func NewSimpleAttr(kind Kind, value any, path ...string) SimpleAttr {
	if len(path) == 0 {
		path = []string{strings.ToLower(string(kind))}
	}
	return SimpleAttr{kind: kind, path: slices.Clone(path), value: value}
}

func (a SimpleAttr) Kind() Kind {
	return a.kind
}

func (a SimpleAttr) Path() Path {
	return slices.Clone(a.path)
}

func (a SimpleAttr) Value() any {
	return a.value
}

func (a SimpleAttr) Equal(other Attr) bool {
	o, ok := other.(SimpleAttr)
	if !ok {
		return false
	}
	return a.kind == o.kind && a.path.Equal(o.path) && reflect.DeepEqual(a.value, o.value)
}

func (a SimpleAttr) Values() ValueAttr {
	return NewValueAttr(Entry{Path: a.path, Value: a.value})
}

func (a SimpleAttr) String() string {
	return fmt.Sprintf("<%s(%s)>", a.kind, repr(a.value))
}

// ComplexAttr states a record-valued constraint: every sub-key of fields
// under path must equal its value.
type ComplexAttr struct {
	kind   Kind
	path   Path
	fields map[string]any
}

func NewComplexAttr(kind Kind, fields map[string]any, path ...string) ComplexAttr {
	if len(path) == 0 {
		path = []string{strings.ToLower(string(kind))}
	}
	return ComplexAttr{kind: kind, path: slices.Clone(path), fields: maps.Clone(fields)}
}

func (a ComplexAttr) Kind() Kind {
	return a.kind
}

func (a ComplexAttr) Path() Path {
	return slices.Clone(a.path)
}

func (a ComplexAttr) Field(name string) (any, bool) {
	v, ok := a.fields[name]
	return v, ok
}

func (a ComplexAttr) Fields() map[string]any {
	return maps.Clone(a.fields)
}

func (a ComplexAttr) Equal(other Attr) bool {
	o, ok := other.(ComplexAttr)
	if !ok {
		return false
	}
	return a.kind == o.kind && a.path.Equal(o.path) && reflect.DeepEqual(a.fields, o.fields)
}

func (a ComplexAttr) Values() ValueAttr {
	entries := make([]Entry, 0, len(a.fields))
	for k, v := range a.fields {
		entries = append(entries, Entry{Path: a.path.Child(k), Value: v})
	}
	return NewValueAttr(entries...)
}

func (a ComplexAttr) String() string {
	keys := slices.Sorted(maps.Keys(a.fields))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, repr(a.fields[k]))
	}
	return fmt.Sprintf("<%s(%s)>", a.kind, strings.Join(parts, ", "))
}

package attr

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

type Entry struct {
	Path  Path
	Value any
}

// ValueAttr is the flattened form of a leaf: an ordered mapping of paths to
// values. Generic terminal handlers only ever see ValueAttrs.
type ValueAttr struct {
	entries []Entry
}

// NewValueAttr sorts entries by path. A later entry replaces an earlier one
// with the same path.
func NewValueAttr(entries ...Entry) ValueAttr {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Path = slices.Clone(e.Path)
		i, found := slices.BinarySearchFunc(result, e.Path, func(x Entry, p Path) int {
			return x.Path.Compare(p)
		})
		if found {
			result[i] = e
		} else {
			result = slices.Insert(result, i, e)
		}
	}
	return ValueAttr{entries: result}
}

// ValueOf builds a ValueAttr from a single-segment mapping.
func ValueOf(m map[string]any) ValueAttr {
	entries := make([]Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Path: Path{k}, Value: v})
	}
	return NewValueAttr(entries...)
}

func (a ValueAttr) Kind() Kind {
	return KindValue
}

func (a ValueAttr) Entries() []Entry {
	result := make([]Entry, len(a.entries))
	for i, e := range a.entries {
		result[i] = Entry{Path: slices.Clone(e.Path), Value: e.Value}
	}
	return result
}

func (a ValueAttr) Len() int {
	return len(a.entries)
}

func (a ValueAttr) Get(path ...string) (any, bool) {
	i, found := slices.BinarySearchFunc(a.entries, Path(path), func(x Entry, p Path) int {
		return x.Path.Compare(p)
	})
	if !found {
		return nil, false
	}
	return a.entries[i].Value, true
}

func (a ValueAttr) Values() ValueAttr {
	return a
}

func (a ValueAttr) Equal(other Attr) bool {
	o, ok := other.(ValueAttr)
	if !ok || len(a.entries) != len(o.entries) {
		return false
	}
	for i := range a.entries {
		if !a.entries[i].Path.Equal(o.entries[i].Path) || !reflect.DeepEqual(a.entries[i].Value, o.entries[i].Value) {
			return false
		}
	}
	return true
}

// Merge unions two ValueAttrs. Entries on the same path must agree.
func (a ValueAttr) Merge(other Attr) (Attr, error) {
	o, ok := other.(ValueAttr)
	if !ok {
		return nil, &TypeCollisionError{Existing: a, Incoming: other}
	}
	merged := slices.Clone(a.entries)
	for _, e := range o.entries {
		if v, exists := a.Get(e.Path...); exists {
			if !reflect.DeepEqual(v, e.Value) {
				return nil, &MergeConflict{ExistingValue: v, NewValue: e.Value}
			}
			continue
		}
		merged = append(merged, e)
	}
	return NewValueAttr(merged...), nil
}

func (a ValueAttr) String() string {
	parts := make([]string, len(a.entries))
	for i, e := range a.entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Path, repr(e.Value))
	}
	return fmt.Sprintf("<ValueAttr({%s})>", strings.Join(parts, ", "))
}

// Setter is an accumulator that accepts values by path.
type Setter interface {
	Set(path Path, value any) error
}

// Record is a nested map accumulator. Groups are maps stored under their name.
type Record map[string]any

// Set stores value under path, creating missing groups on the way.
func (r Record) Set(path Path, value any) error {
	if len(path) == 0 {
		return fmt.Errorf("empty path")
	}
	group := map[string]any(r)
	for i, name := range path[:len(path)-1] {
		switch next := group[name].(type) {
		case nil:
			created := Record{}
			group[name] = created
			group = created
		case Record:
			group = next
		case map[string]any:
			group = next
		default:
			return fmt.Errorf("field %q is not a group", path[:i+1].String())
		}
	}
	group[path[len(path)-1]] = value
	return nil
}

func (r Record) Get(path Path) (any, bool) {
	var current any = map[string]any(r)
	for _, name := range path {
		var group map[string]any
		switch g := current.(type) {
		case Record:
			group = g
		case map[string]any:
			group = g
		default:
			return nil, false
		}
		v, ok := group[name]
		if !ok {
			return nil, false
		}
		current = v
	}
	return current, true
}

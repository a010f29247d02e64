package query

import (
	"fmt"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
)

// ToDict renders a tree as a document Parse reads back into an equal tree.
func (s *Schema) ToDict(a attr.Attr) (map[string]any, error) {
	switch x := a.(type) {
	case nil, attr.DummyAttr:
		return map[string]any{}, nil
	case attr.AttrOr:
		members := x.Members()
		operands := make([]any, len(members))
		for i, m := range members {
			doc, err := s.ToDict(m)
			if err != nil {
				return nil, err
			}
			operands[i] = doc
		}
		return map[string]any{"$or": operands}, nil
	case attr.AttrAnd:
		result := make(map[string]any)
		for _, m := range x.Members() {
			if err := s.renderLeaf(m, result); err != nil {
				return nil, err
			}
		}
		return result, nil
	}
	result := make(map[string]any, 1)
	if err := s.renderLeaf(a, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Schema) renderLeaf(a attr.Attr, doc map[string]any) error {
	f, ok := s.FieldOf(a.Kind())
	if !ok {
		return fmt.Errorf("no field renders %s", a.Kind())
	}
	value, err := f.Render(a)
	if err != nil {
		return err
	}
	doc[f.Name] = value
	return nil
}

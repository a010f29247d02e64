package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
)

func testSchema() *Schema {
	return NewSchema(
		Simple("instrument", "Instrument"),
		Simple("source", "Source"),
		Simple("level", "Level"),
	)
}

func instrument(v string) attr.SimpleAttr {
	return attr.NewSimpleAttr("Instrument", v)
}

func source(v string) attr.SimpleAttr {
	return attr.NewSimpleAttr("Source", v)
}

func mustAnd(t *testing.T, left attr.Attr, rights ...attr.Attr) attr.Attr {
	t.Helper()
	result, err := attr.And(left, rights...)
	require.NoError(t, err)
	return result
}

func TestParserFields(t *testing.T) {
	parser := NewParser(testSchema())

	t.Run("single", func(t *testing.T) {
		result, err := parser.Parse(map[string]any{"instrument": "eit"})
		assert.NoError(t, err)
		assert.True(t, result.Equal(instrument("eit")))
	})
	t.Run("conjunction", func(t *testing.T) {
		result, err := parser.Parse(map[string]any{"instrument": "eit", "source": "soho"})
		assert.NoError(t, err)
		assert.True(t, result.Equal(mustAnd(t, instrument("eit"), source("soho"))))
	})
	t.Run("alternatives", func(t *testing.T) {
		result, err := parser.Parse(map[string]any{
			"instrument": map[string]any{"$or": []any{"eit", "aia"}},
			"source":     "soho",
		})
		assert.NoError(t, err)
		expected := mustAnd(t, attr.Or(instrument("eit"), instrument("aia")), source("soho"))
		assert.True(t, result.Equal(expected), result.String())
	})
	t.Run("empty", func(t *testing.T) {
		result, err := parser.Parse(map[string]any{})
		assert.NoError(t, err)
		assert.True(t, result.Equal(attr.Dummy()))
	})
}

func TestParserOperators(t *testing.T) {
	parser := NewParser(testSchema())

	t.Run("or", func(t *testing.T) {
		result, err := parser.Parse(map[string]any{"$or": []any{
			map[string]any{"instrument": "eit"},
			map[string]any{"source": "soho"},
		}})
		assert.NoError(t, err)
		assert.True(t, result.Equal(attr.NewOr(instrument("eit"), source("soho"))))
	})
	t.Run("empty or", func(t *testing.T) {
		result, err := parser.Parse(map[string]any{"$or": []any{}})
		assert.NoError(t, err)
		assert.True(t, result.Equal(attr.NewOr()))
	})
	t.Run("and", func(t *testing.T) {
		result, err := parser.Parse(map[string]any{"$and": []any{
			map[string]any{"$or": []any{
				map[string]any{"instrument": "eit"},
				map[string]any{"instrument": "aia"},
			}},
			map[string]any{"source": "soho"},
		}})
		assert.NoError(t, err)
		assert.Equal(t, 2, result.(attr.AttrOr).Len())
	})
	t.Run("partial collision", func(t *testing.T) {
		doc := map[string]any{"$and": []any{
			map[string]any{"$or": []any{
				map[string]any{"instrument": "eit"},
				map[string]any{"source": "soho"},
			}},
			map[string]any{"instrument": "aia"},
		}}
		result, err := parser.Parse(doc)
		assert.NoError(t, err)
		assert.True(t, result.Equal(mustAnd(t, source("soho"), instrument("aia"))))

		_, err = NewParser(testSchema(), WithStrictAnd()).Parse(doc)
		assert.ErrorIs(t, err, attr.ErrType)
	})
	t.Run("xor needs ranges", func(t *testing.T) {
		_, err := parser.Parse(map[string]any{"$xor": []any{
			map[string]any{"instrument": "eit"},
			map[string]any{"source": "soho"},
		}})
		assert.ErrorIs(t, err, attr.ErrType)
	})
}

func TestParserErrors(t *testing.T) {
	parser := NewParser(testSchema())

	cases := []struct {
		name string
		doc  any
		path string
	}{
		{"not a map", 5, ""},
		{"unknown field", map[string]any{"detector": "x"}, "detector"},
		{"unknown operator", map[string]any{"$not": []any{}}, ""},
		{"operator not a list", map[string]any{"$or": "eit"}, "$or"},
		{"mixed", map[string]any{"$or": []any{}, "instrument": "eit"}, ""},
		{"two operators", map[string]any{"$or": []any{}, "$and": []any{}}, ""},
		{"nested", map[string]any{"$or": []any{map[string]any{"detector": "x"}}}, "$or.0.detector"},
		{"deeply nested", map[string]any{"$or": []any{
			map[string]any{"instrument": "eit"},
			map[string]any{"$and": []any{
				map[string]any{"source": "soho"},
				map[string]any{"level": 1},
				map[string]any{"$or": []any{map[string]any{"detector": "x"}}},
			}},
		}}, "$or.1.$and.2.$or.0.detector"},
		{"xor arity", map[string]any{"$xor": []any{map[string]any{"instrument": "eit"}}}, "$xor"},
		{"collision", map[string]any{"$and": []any{
			map[string]any{"instrument": "eit"},
			map[string]any{"instrument": "aia"},
		}}, "$and"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := parser.Parse(c.doc)
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, c.path, parseErr.Path)
		})
	}
}

func TestChildPathsAreIndependent(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "$or"

	first := child(base, "0")
	second := child(base, "1")
	assert.Equal(t, []string{"$or", "0"}, first)
	assert.Equal(t, []string{"$or", "1"}, second)
	assert.Equal(t, []string{"$or"}, base)
}

func TestParseYAML(t *testing.T) {
	parser := NewParser(testSchema())

	result, err := parser.ParseYAML([]byte(`
$or:
  - instrument: eit
    level: 1
  - source: soho
`))
	require.NoError(t, err)
	expected := attr.NewOr(
		mustAnd(t, instrument("eit"), attr.NewSimpleAttr("Level", 1)),
		source("soho"),
	)
	assert.True(t, result.Equal(expected), result.String())

	result, err = parser.ParseYAML(nil)
	require.NoError(t, err)
	assert.True(t, result.Equal(attr.Dummy()))

	_, err = parser.ParseYAML([]byte("instrument: [eit"))
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestToDict(t *testing.T) {
	s := testSchema()
	parser := NewParser(s)

	trees := []attr.Attr{
		instrument("eit"),
		mustAnd(t, instrument("eit"), source("soho")),
		mustAnd(t, attr.Or(instrument("eit"), instrument("aia")), source("soho")),
		attr.NewOr(),
		attr.Dummy(),
	}
	for _, tree := range trees {
		t.Run(tree.String(), func(t *testing.T) {
			doc, err := s.ToDict(tree)
			require.NoError(t, err)
			parsed, err := parser.Parse(doc)
			require.NoError(t, err)
			assert.True(t, parsed.Equal(tree), parsed.String())
		})
	}

	doc, err := s.ToDict(mustAnd(t, instrument("eit"), source("soho")))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"instrument": "eit", "source": "soho"}, doc)

	_, err = s.ToDict(attr.NewSimpleAttr("Detector", "x"))
	assert.Error(t, err)
}

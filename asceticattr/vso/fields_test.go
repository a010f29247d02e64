package vso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain/query"
)

func TestParseDocument(t *testing.T) {
	parser := query.NewParser(Schema())

	t.Run("fields", func(t *testing.T) {
		tree, err := parser.ParseYAML([]byte(`
instrument: {$or: [eit, aia]}
source: soho
time: {start: "2010-01-01", end: "2010-01-02"}
wave: {min: 171 Angstrom, max: 195 Angstrom}
`))
		require.NoError(t, err)
		expected, err := attr.And(
			attr.Or(Instrument("eit"), Instrument("aia")),
			Source("soho"),
			MustTime(day(2010, 1, 1), day(2010, 1, 2)),
			Angstroms(171, 195),
		)
		require.NoError(t, err)
		assert.True(t, tree.Equal(expected), tree.String())
	})
	t.Run("xor", func(t *testing.T) {
		tree, err := parser.ParseYAML([]byte(`
$xor:
  - time: ["2010-01-01 00:00:00", "2010-01-02 00:00:00"]
  - time: ["2010-01-01 01:00:00", "2010-01-01 02:00:00"]
`))
		require.NoError(t, err)
		assert.True(t, tree.Equal(attr.NewOr(
			MustTime(day(2010, 1, 1), day(2010, 1, 1, 1)),
			MustTime(day(2010, 1, 1, 2), day(2010, 1, 2)),
		)), tree.String())
	})
	t.Run("spectral units", func(t *testing.T) {
		tree, err := parser.Parse(map[string]any{
			"wave": map[string]any{"min": 62, "max": 62, "unit": "eV"},
		})
		require.NoError(t, err)
		lo, _ := tree.(Wave).Bounds()
		assert.InDelta(t, 199, lo, 1.5)
	})
	t.Run("bad quicklook", func(t *testing.T) {
		_, err := parser.Parse(map[string]any{"quicklook": 3})
		assert.ErrorIs(t, err, attr.ErrValue)
		var parseErr *query.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "quicklook", parseErr.Path)
	})
	t.Run("bad time", func(t *testing.T) {
		_, err := parser.Parse(map[string]any{"time": "2012/1/1"})
		assert.ErrorIs(t, err, attr.ErrValue)
	})
}

func TestSchemaRoundTrip(t *testing.T) {
	s := Schema()
	parser := query.NewParser(s)

	clause, err := attr.And(
		Instrument("eit"),
		Level(1),
		Sample(60),
		Quicklook(false),
		MustTime(day(2010, 1, 1), day(2010, 1, 2)),
		Angstroms(171, 195),
		Extent(0, 0, 10, 20, "full"),
		Field("provider"),
	)
	require.NoError(t, err)
	tree := attr.Or(clause, Instrument("aia"))

	doc, err := s.ToDict(tree)
	require.NoError(t, err)
	parsed, err := parser.Parse(doc)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(tree), parsed.String())
}

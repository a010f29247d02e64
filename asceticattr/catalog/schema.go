// Package catalog searches a table of observation records with attr trees.
package catalog

import (
	"strings"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/infrastructure"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/vso"
)

const DefaultTable = "observations"

// ColumnKinds are the VSO kinds stored as plain columns.
var ColumnKinds = []attr.Kind{
	vso.KindProvider, vso.KindSource, vso.KindInstrument,
	vso.KindPhysobs, vso.KindLevel, vso.KindDetector,
}

// NewObservationSchema maps VSO attrs onto table. Time and Wave are stored as
// bounds and searched by overlap. Values on any other path are rejected.
func NewObservationSchema(table string) *infrastructure.Schema {
	if table == "" {
		table = DefaultTable
	}
	schema := infrastructure.NewSchema(table).
		RegisterRange(vso.KindTime, "time_start", "time_end").
		RegisterRange(vso.KindWave, "wave_wavemin", "wave_wavemax").
		Strict()
	for _, kind := range ColumnKinds {
		column := strings.ToLower(string(kind))
		schema.RegisterColumn(attr.Path{column}, column)
	}
	return schema
}

// NewCompiler returns a compiler accepting the kinds stored in table.
func NewCompiler(table string, opts ...infrastructure.CompilerOption) *infrastructure.Compiler {
	opts = append([]infrastructure.CompilerOption{infrastructure.WithValueKinds(ColumnKinds...)}, opts...)
	return infrastructure.NewCompiler(NewObservationSchema(table), opts...)
}

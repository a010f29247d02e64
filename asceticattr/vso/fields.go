package vso

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain/query"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/units"
)

// Schema maps document fields to VSO attributes:
//
//	instrument: eit
//	time: {start: 2010-01-01, end: 2010-01-02}
//	wave: {min: 171 Angstrom, max: 195 Angstrom}
//	extent: {x: 0, y: 0, width: 10, length: 10, type: full}
//	quicklook: true
//	field: fielditem
func Schema() *query.Schema {
	s := query.NewSchema(
		query.Simple("provider", KindProvider),
		query.Simple("source", KindSource),
		query.Simple("instrument", KindInstrument),
		query.Simple("physobs", KindPhysobs),
		query.Simple("level", KindLevel),
		query.Simple("detector", KindDetector),
		query.Simple("filter", KindFilter),
		query.Simple("pixels", KindPixels),
	)
	s.Register(numberField("sample", KindSample, Sample))
	s.Register(numberField("resolution", KindResolution, Resolution))
	s.Register(query.Field{
		Name: "quicklook",
		Kind: KindQuicklook,
		Build: func(value any) (attr.Attr, error) {
			on, ok := value.(bool)
			if !ok {
				return nil, attr.NewValueError(KindQuicklook, nil, "expected bool, got %T", value)
			}
			return Quicklook(on), nil
		},
		Render: func(a attr.Attr) (any, error) {
			return a.(attr.SimpleAttr).Value() == 1, nil
		},
	})
	s.Register(query.Field{Name: "time", Kind: KindTime, Build: buildTime, Render: renderTime})
	s.Register(query.Field{Name: "wave", Kind: KindWave, Build: buildWave, Render: renderWave})
	s.Register(query.Field{Name: "extent", Kind: KindExtent, Build: buildExtent, Render: renderExtent})
	s.Register(query.Field{
		Name: "field",
		Kind: attr.KindValue,
		Build: func(value any) (attr.Attr, error) {
			return Field(fmt.Sprint(value)), nil
		},
		Render: func(a attr.Attr) (any, error) {
			v, ok := a.(attr.ValueAttr).Get("field", "fielditem")
			if !ok || a.(attr.ValueAttr).Len() != 1 {
				return nil, errors.Errorf("%s is not a field selection", a)
			}
			return v, nil
		},
	})
	return s
}

func numberField(name string, kind attr.Kind, newAttr func(float64) attr.SimpleAttr) query.Field {
	return query.Field{
		Name: name,
		Kind: kind,
		Build: func(value any) (attr.Attr, error) {
			switch n := value.(type) {
			case int:
				return newAttr(float64(n)), nil
			case float64:
				return newAttr(n), nil
			}
			return nil, attr.NewValueError(kind, nil, "expected number, got %T", value)
		},
		Render: func(a attr.Attr) (any, error) {
			return a.(attr.SimpleAttr).Value(), nil
		},
	}
}

func buildTime(value any) (attr.Attr, error) {
	switch v := value.(type) {
	case map[string]any:
		return NewTime(v["start"], v["end"])
	case []any:
		if len(v) == 2 {
			return NewTime(v[0], v[1])
		}
	}
	return nil, attr.NewValueError(KindTime, nil, "expected {start, end} or [start, end], got %v", value)
}

func renderTime(a attr.Attr) (any, error) {
	t := a.(Time)
	return map[string]any{
		"start": t.Start().Format(time.RFC3339),
		"end":   t.End().Format(time.RFC3339),
	}, nil
}

func buildWave(value any) (attr.Attr, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, attr.NewValueError(KindWave, nil, "expected {min, max}, got %T", value)
	}
	unit := units.Angstrom
	if name, ok := m["unit"].(string); ok {
		var err error
		if unit, err = units.Lookup(name); err != nil {
			return nil, attr.NewValueError(KindWave, err, "bad unit")
		}
	}
	lo, err := quantity(m["min"], unit)
	if err != nil {
		return nil, attr.NewValueError(KindWave, err, "bad min")
	}
	hi, err := quantity(m["max"], unit)
	if err != nil {
		return nil, attr.NewValueError(KindWave, err, "bad max")
	}
	w, err := NewWave(lo, hi)
	if err != nil {
		return nil, attr.NewValueError(KindWave, err, "cannot convert")
	}
	return w, nil
}

func quantity(value any, unit units.Unit) (units.Quantity, error) {
	switch v := value.(type) {
	case int:
		return units.New(float64(v), unit), nil
	case float64:
		return units.New(v, unit), nil
	case string:
		return units.Parse(v)
	}
	return units.Quantity{}, errors.Errorf("expected number or quantity, got %T", value)
}

func renderWave(a attr.Attr) (any, error) {
	lo, hi := a.(Wave).Bounds()
	return map[string]any{"min": lo, "max": hi, "unit": units.Angstrom.Name()}, nil
}

func buildExtent(value any) (attr.Attr, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, attr.NewValueError(KindExtent, nil, "expected a map, got %T", value)
	}
	var coords [4]float64
	for i, key := range []string{"x", "y", "width", "length"} {
		switch n := m[key].(type) {
		case int:
			coords[i] = float64(n)
		case float64:
			coords[i] = n
		default:
			return nil, attr.NewValueError(KindExtent, nil, "%s must be a number, got %T", key, m[key])
		}
	}
	typ, _ := m["type"].(string)
	return Extent(coords[0], coords[1], coords[2], coords[3], typ), nil
}

func renderExtent(a attr.Attr) (any, error) {
	return a.(attr.ComplexAttr).Fields(), nil
}

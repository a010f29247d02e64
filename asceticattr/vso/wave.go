package vso

import (
	"fmt"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain/interval"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/units"
)

var waveRange = attr.RangeKind[Wave, float64]{
	Compare: interval.Ordered[float64],
	Span: func(w Wave) interval.Span[float64] {
		return interval.New(w.min, w.max)
	},
	Build: func(s interval.Span[float64]) (Wave, error) {
		return Wave{min: s.Lo, max: s.Hi}, nil
	},
}

// Wave restricts observations to a wavelength band. Bounds are kept in
// Angstrom whatever unit they were given in.
type Wave struct {
	min float64
	max float64
}

// NewWave accepts wavelength, frequency or energy bounds in either order.
func NewWave(lo, hi units.Quantity) (Wave, error) {
	a, err := units.Convert(lo, units.Angstrom)
	if err != nil {
		return Wave{}, err
	}
	b, err := units.Convert(hi, units.Angstrom)
	if err != nil {
		return Wave{}, err
	}
	return Wave{min: min(a.Value, b.Value), max: max(a.Value, b.Value)}, nil
}

func MustWave(lo, hi units.Quantity) Wave {
	w, err := NewWave(lo, hi)
	if err != nil {
		panic(err)
	}
	return w
}

// Angstroms builds a Wave from bounds already in Angstrom.
func Angstroms(lo, hi float64) Wave {
	return Wave{min: min(lo, hi), max: max(lo, hi)}
}

func (w Wave) Kind() attr.Kind {
	return KindWave
}

func (w Wave) Min() units.Quantity {
	return units.New(w.min, units.Angstrom)
}

func (w Wave) Max() units.Quantity {
	return units.New(w.max, units.Angstrom)
}

func (w Wave) Unit() units.Unit {
	return units.Angstrom
}

// Bounds returns the band in Angstrom.
func (w Wave) Bounds() (float64, float64) {
	return w.min, w.max
}

func (w Wave) Endpoints() (any, any) {
	return w.min, w.max
}

func (w Wave) Equal(other attr.Attr) bool {
	o, ok := other.(Wave)
	return ok && w == o
}

func (w Wave) SymmetricDifference(left, right attr.Attr) (attr.Attr, error) {
	return waveRange.SymmetricDifference(left, right)
}

func (w Wave) Values() attr.ValueAttr {
	return attr.NewValueAttr(
		attr.Entry{Path: attr.Path{"wave", "wavemin"}, Value: w.min},
		attr.Entry{Path: attr.Path{"wave", "wavemax"}, Value: w.max},
		attr.Entry{Path: attr.Path{"wave", "waveunit"}, Value: units.Angstrom.Name()},
	)
}

func (w Wave) String() string {
	return fmt.Sprintf("<Wave(%s, %s, '%s')>", w.Min(), w.Max(), units.Angstrom.Name())
}

package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSameDimension(t *testing.T) {
	q, err := Convert(New(1, Nanometer), Angstrom)
	require.NoError(t, err)
	assert.InDelta(t, 10, q.Value, 1e-9)
	assert.Equal(t, Angstrom, q.Unit)

	q, err = Convert(New(1, Gigahertz), Megahertz)
	require.NoError(t, err)
	assert.InDelta(t, 1000, q.Value, 1e-9)
}

func TestConvertSpectral(t *testing.T) {
	cases := []struct {
		name string
		in   Quantity
	}{
		{"eV", New(62, ElectronVolt)},
		{"keV", New(62e-3, KiloElectronVolt)},
		{"MeV", New(62e-6, MegaElectronVolt)},
		{"Hz", New(1.506e16, Hertz)},
		{"kHz", New(1.506e13, Kilohertz)},
		{"MHz", New(1.506e10, Megahertz)},
		{"GHz", New(1.506e7, Gigahertz)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, err := Convert(c.in, Angstrom)
			require.NoError(t, err)
			assert.InDelta(t, 199, q.Value, 1.5)
		})
	}
}

func TestConvertBackFromWavelength(t *testing.T) {
	q, err := Convert(New(1.506e16, Hertz), Angstrom)
	require.NoError(t, err)
	back, err := Convert(q, Hertz)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.506e16, back.Value, 1e-12)
}

func TestConvertZeroAcrossDimensions(t *testing.T) {
	_, err := Convert(New(0, Hertz), Angstrom)
	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.True(t, errors.Is(err, ErrConversion))

	q, err := Convert(New(0, Angstrom), Nanometer)
	require.NoError(t, err)
	assert.Zero(t, q.Value)
}

func TestConvertUnsetUnit(t *testing.T) {
	_, err := Convert(Quantity{Value: 1}, Angstrom)
	assert.ErrorIs(t, err, ErrConversion)
}

func TestParse(t *testing.T) {
	cases := map[string]Quantity{
		"171 Angstrom": New(171, Angstrom),
		"62eV":         New(62, ElectronVolt),
		"1.506e16 Hz":  New(1.506e16, Hertz),
		"1e3 keV":      New(1000, KiloElectronVolt),
		" 12.5 nm ":    New(12.5, Nanometer),
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %s", in, got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "171", "Angstrom", "12 parsec"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrConversion, in)
	}
}

func TestQuantityString(t *testing.T) {
	assert.Equal(t, "<Quantity 12.0 Angstrom>", New(12, Angstrom).String())
	assert.Equal(t, "<Quantity 12.5 nm>", New(12.5, Nanometer).String())
}

package units

import (
	"errors"
	"fmt"
	"strings"
)

var ErrConversion = errors.New("unit conversion failed")

const (
	SpeedOfLight = 299792458.0     // m/s
	Planck       = 6.62607015e-34  // J*s
	electronVolt = 1.602176634e-19 // J
)

type Dimension int

const (
	Length Dimension = iota
	Frequency
	Energy
)

func (d Dimension) String() string {
	switch d {
	case Length:
		return "length"
	case Frequency:
		return "frequency"
	case Energy:
		return "energy"
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// Unit is a linear unit of one spectral dimension. Scale converts a value in
// the unit to the SI base of its dimension (m, Hz or J).
type Unit struct {
	name  string
	dim   Dimension
	scale float64
}

func (u Unit) Name() string {
	return u.name
}

func (u Unit) Dimension() Dimension {
	return u.dim
}

func (u Unit) String() string {
	return u.name
}

func (u Unit) IsZero() bool {
	return u.name == ""
}

var (
	Angstrom   = Unit{"Angstrom", Length, 1e-10}
	Nanometer  = Unit{"nm", Length, 1e-9}
	Micrometer = Unit{"um", Length, 1e-6}
	Millimeter = Unit{"mm", Length, 1e-3}
	Centimeter = Unit{"cm", Length, 1e-2}
	Meter      = Unit{"m", Length, 1}

	Hertz     = Unit{"Hz", Frequency, 1}
	Kilohertz = Unit{"kHz", Frequency, 1e3}
	Megahertz = Unit{"MHz", Frequency, 1e6}
	Gigahertz = Unit{"GHz", Frequency, 1e9}
	Terahertz = Unit{"THz", Frequency, 1e12}

	Joule            = Unit{"J", Energy, 1}
	ElectronVolt     = Unit{"eV", Energy, electronVolt}
	KiloElectronVolt = Unit{"keV", Energy, 1e3 * electronVolt}
	MegaElectronVolt = Unit{"MeV", Energy, 1e6 * electronVolt}
)

var known = map[string]Unit{
	"angstrom": Angstrom, "aa": Angstrom, "å": Angstrom,
	"nm": Nanometer, "um": Micrometer, "µm": Micrometer, "mm": Millimeter,
	"cm": Centimeter, "m": Meter,
	"hz": Hertz, "khz": Kilohertz, "mhz": Megahertz, "ghz": Gigahertz, "thz": Terahertz,
	"j": Joule, "ev": ElectronVolt, "kev": KiloElectronVolt, "mev": MegaElectronVolt,
}

// Lookup resolves a unit by name, case-insensitively.
func Lookup(name string) (Unit, error) {
	u, ok := known[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Unit{}, fmt.Errorf("%w: unknown unit %q", ErrConversion, name)
	}
	return u, nil
}

type ConversionError struct {
	Quantity Quantity
	To       Unit
	Reason   string
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s to %s", e.Quantity, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return ErrConversion
}

// Convert converts q to the target unit. Units of different dimensions are
// bridged through the wavelength using c and h.
func Convert(q Quantity, to Unit) (Quantity, error) {
	if q.Unit.IsZero() || to.IsZero() {
		return Quantity{}, &ConversionError{Quantity: q, To: to, Reason: "unit is not set"}
	}
	if q.Unit == to {
		return q, nil
	}
	base := q.Value * q.Unit.scale
	if q.Unit.dim == to.dim {
		return Quantity{Value: base / to.scale, Unit: to}, nil
	}
	if base == 0 {
		return Quantity{}, &ConversionError{Quantity: q, To: to, Reason: "zero has no spectral equivalent"}
	}
	meters := toWavelength(base, q.Unit.dim)
	return Quantity{Value: fromWavelength(meters, to.dim) / to.scale, Unit: to}, nil
}

func toWavelength(v float64, dim Dimension) float64 {
	switch dim {
	case Frequency:
		return SpeedOfLight / v
	case Energy:
		return Planck * SpeedOfLight / v
	}
	return v
}

func fromWavelength(meters float64, dim Dimension) float64 {
	switch dim {
	case Frequency:
		return SpeedOfLight / meters
	case Energy:
		return Planck * SpeedOfLight / meters
	}
	return meters
}

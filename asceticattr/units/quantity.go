package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a scalar value carrying its unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

func New(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// Parse reads "<value> <unit>", e.g. "171 Angstrom" or "62eV".
func Parse(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E')
	})
	// a leading 'e' of "eV" must not be taken as an exponent
	for i > 0 && (s[i-1] == 'e' || s[i-1] == 'E') {
		i--
	}
	if i <= 0 {
		return Quantity{}, fmt.Errorf("%w: quantity %q has no unit", ErrConversion, s)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: quantity %q: %v", ErrConversion, s, err)
	}
	unit, err := Lookup(s[i:])
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: value, Unit: unit}, nil
}

func (q Quantity) To(unit Unit) (Quantity, error) {
	return Convert(q, unit)
}

func (q Quantity) Equal(other Quantity) bool {
	return q.Value == other.Value && q.Unit == other.Unit
}

// String renders the quantity as <Quantity 12.0 Angstrom>.
func (q Quantity) String() string {
	return fmt.Sprintf("<Quantity %s %s>", FormatValue(q.Value), q.Unit)
}

// FormatValue prints integral values with a trailing ".0".
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

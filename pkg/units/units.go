package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownUnit is returned by Parse for unsupported unit names
var ErrUnknownUnit = errors.New("unknown unit")

// Unit is a length unit used for measurement labels
type Unit string

const (
	Meter      Unit = "m"
	Centimeter Unit = "cm"
	Millimeter Unit = "mm"
	Foot       Unit = "ft"
	Inch       Unit = "in"
	FeetInches Unit = "ft-in"
)

const (
	metersPerFoot = 0.3048
	metersPerInch = 0.0254
)

var aliases = map[string]Unit{
	"m":           Meter,
	"meter":       Meter,
	"meters":      Meter,
	"cm":          Centimeter,
	"centimeter":  Centimeter,
	"centimeters": Centimeter,
	"mm":          Millimeter,
	"millimeter":  Millimeter,
	"millimeters": Millimeter,
	"ft":          Foot,
	"foot":        Foot,
	"feet":        Foot,
	"in":          Inch,
	"inch":        Inch,
	"inches":      Inch,
	"ft-in":       FeetInches,
	"feet-inches": FeetInches,
}

// All returns the supported units
func All() []Unit {
	return []Unit{Meter, Centimeter, Millimeter, Foot, Inch, FeetInches}
}

// Parse resolves a unit name or abbreviation, ignoring case
func Parse(s string) (Unit, error) {
	u, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// FromMeters converts a length in meters to u.
// FeetInches converts to inches.
func (u Unit) FromMeters(meters float64) float64 {
	switch u {
	case Centimeter:
		return meters * 100
	case Millimeter:
		return meters * 1000
	case Foot:
		return meters / metersPerFoot
	case Inch, FeetInches:
		return meters / metersPerInch
	default:
		return meters
	}
}

// Format renders a length given in meters with two decimals
func Format(meters float64, u Unit) string {
	if u == FeetInches {
		return formatFeetInches(meters)
	}
	if u == "" {
		u = Meter
	}
	return fmt.Sprintf("%.2f %s", u.FromMeters(meters), u)
}

func formatFeetInches(meters float64) string {
	sign := ""
	if meters < 0 {
		sign = "-"
		meters = -meters
	}

	// round to the printed precision first so 11.999" becomes the next foot
	inches := math.Round(FeetInches.FromMeters(meters)*100) / 100
	feet := math.Floor(inches / 12)
	inches -= feet * 12
	return fmt.Sprintf("%s%d' %.2f\"", sign, int64(feet), inches)
}

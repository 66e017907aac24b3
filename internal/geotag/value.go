package geotag

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is one numeric component of a GPS value. It is either a Rational
// or a Scalar, decided once when the tag is read.
type Number interface {
	Float64() (float64, error)
	String() string
	number()
}

// Rational is an EXIF RATIONAL or SRATIONAL component.
type Rational struct {
	Num int64
	Den int64
}

func (r Rational) Float64() (float64, error) {
	if r.Den == 0 {
		return 0, fmt.Errorf("%w: %d/0", ErrZeroDenominator, r.Num)
	}
	return float64(r.Num) / float64(r.Den), nil
}

func (r Rational) String() string { return fmt.Sprintf("%d/%d", r.Num, r.Den) }

func (Rational) number() {}

// Scalar is a component that was stored as a plain integer or float.
type Scalar float64

func (s Scalar) Float64() (float64, error) { return float64(s), nil }

func (s Scalar) String() string { return strconv.FormatFloat(float64(s), 'f', -1, 64) }

func (Scalar) number() {}

// DMS is a sexagesimal coordinate magnitude.
type DMS struct {
	Degrees Number
	Minutes Number
	Seconds Number
}

// NewDMS builds a DMS from the components of a GPSLatitude or GPSLongitude tag.
func NewDMS(components []Number) (DMS, error) {
	if len(components) != 3 {
		return DMS{}, fmt.Errorf("%w: got %d", ErrComponentCount, len(components))
	}
	return DMS{Degrees: components[0], Minutes: components[1], Seconds: components[2]}, nil
}

// Decimal returns degrees + minutes/60 + seconds/3600.
func (d DMS) Decimal() (float64, error) {
	degs, err := d.Degrees.Float64()
	if err != nil {
		return 0, fmt.Errorf("degrees: %w", err)
	}
	mins, err := d.Minutes.Float64()
	if err != nil {
		return 0, fmt.Errorf("minutes: %w", err)
	}
	secs, err := d.Seconds.Float64()
	if err != nil {
		return 0, fmt.Errorf("seconds: %w", err)
	}
	return degs + mins/60.0 + secs/3600.0, nil
}

// Hemisphere is a GPS reference letter (N, S, E or W).
type Hemisphere string

const (
	North Hemisphere = "N"
	South Hemisphere = "S"
	East  Hemisphere = "E"
	West  Hemisphere = "W"
)

// ParseHemisphere normalizes a raw reference value. Whitespace and NUL
// padding are dropped; case is kept, so only upper-case S and W negate.
func ParseHemisphere(raw string) Hemisphere {
	return Hemisphere(strings.Trim(raw, " \t\r\n\x00"))
}

// Sign is -1 for S and W and +1 for anything else.
func (h Hemisphere) Sign() float64 {
	if h == South || h == West {
		return -1
	}
	return 1
}

// Axis selects which pair of hemispheres applies to a coordinate.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

func (a Axis) hemispheres() (positive, negative Hemisphere) {
	if a == Longitude {
		return East, West
	}
	return North, South
}

// Coordinates is a point in signed decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

// secondsDen is the denominator used for the seconds component by ToDMS.
const secondsDen = 10000

// ToDMS splits a signed decimal coordinate into a DMS magnitude and a hemisphere.
func ToDMS(decimal float64, axis Axis) (DMS, Hemisphere) {
	positive, negative := axis.hemispheres()
	ref := positive
	if decimal < 0 {
		ref = negative
		decimal = -decimal
	}

	degs := int64(math.Floor(decimal))
	rest := (decimal - float64(degs)) * 60
	mins := int64(math.Floor(rest))
	secs := int64(math.Round((rest - float64(mins)) * 60 * secondsDen))

	if secs >= 60*secondsDen {
		secs -= 60 * secondsDen
		mins++
	}
	if mins >= 60 {
		mins -= 60
		degs++
	}

	return DMS{
		Degrees: Rational{Num: degs, Den: 1},
		Minutes: Rational{Num: mins, Den: 1},
		Seconds: Rational{Num: secs, Den: secondsDen},
	}, ref
}

// FormatDMS renders a signed decimal coordinate as 19°26'9.6"N.
func FormatDMS(decimal float64, axis Axis) string {
	dms, ref := ToDMS(decimal, axis)
	degs, _ := dms.Degrees.Float64()
	mins, _ := dms.Minutes.Float64()
	secs, _ := dms.Seconds.Float64()
	secStr := strings.TrimRight(strings.TrimRight(strconv.FormatFloat(secs, 'f', 2, 64), "0"), ".")
	return fmt.Sprintf("%d°%d'%s\"%s", int64(degs), int64(mins), secStr, ref)
}

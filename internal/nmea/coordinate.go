package nmea

import (
	"fmt"
	"strconv"
)

// Coordinate is a parsed NMEA latitude or longitude: whole degrees, decimal
// minutes, and a hemisphere character ('N'/'S' or 'E'/'W'). Grounded on
// NMEACoordinate.cpp/NMEALatitude.cpp: degrees is a fixed-width integer
// field bounded by the coordinate kind's maximum; minutes is whole
// [0-59] plus an optional fractional part.
type Coordinate struct {
	Degrees    uint16
	Minutes    float64
	Hemisphere byte
}

// String renders the coordinate in its display format:
// "<deg>°<minutes to 5 decimals>'<hemisphere>".
func (c Coordinate) String() string {
	return fmt.Sprintf("%d°%.5f'%c", c.Degrees, c.Minutes, c.Hemisphere)
}

func parseDegreesAndMinutes(view string, degreeDigits int, maxDegrees uint16) (degrees uint16, minutes float64, err error) {
	if len(view) < degreeDigits+2 {
		return 0, 0, ErrFieldInvalid
	}

	degStr := view[:degreeDigits]
	if !isDigits(degStr) {
		return 0, 0, ErrFieldInvalid
	}
	d, err := strconv.ParseUint(degStr, 10, 16)
	if err != nil || uint16(d) > maxDegrees {
		return 0, 0, ErrFieldInvalid
	}

	minStr := view[degreeDigits:]
	m, err := strconv.ParseFloat(minStr, 64)
	if err != nil || m < 0 || m >= 60 {
		return 0, 0, ErrFieldInvalid
	}

	return uint16(d), m, nil
}

// LatitudeField parses a "DDMM.mmm…" value field together with its trailing
// "N"/"S" hemisphere field.
func LatitudeField(value, hemisphere string, optional bool) (Coordinate, bool, error) {
	if value == "" && hemisphere == "" {
		if optional {
			return Coordinate{}, false, nil
		}
		return Coordinate{}, false, ErrFieldMissing
	}
	if value == "" || hemisphere == "" {
		return Coordinate{}, false, ErrFieldInvalid
	}

	degrees, minutes, err := parseDegreesAndMinutes(value, 2, 90)
	if err != nil {
		return Coordinate{}, false, err
	}

	if hemisphere != "N" && hemisphere != "S" {
		return Coordinate{}, false, ErrFieldInvalid
	}

	return Coordinate{Degrees: degrees, Minutes: minutes, Hemisphere: hemisphere[0]}, true, nil
}

// LongitudeField parses a "DDDMM.mmm…" value field together with its
// trailing "E"/"W" hemisphere field.
func LongitudeField(value, hemisphere string, optional bool) (Coordinate, bool, error) {
	if value == "" && hemisphere == "" {
		if optional {
			return Coordinate{}, false, nil
		}
		return Coordinate{}, false, ErrFieldMissing
	}
	if value == "" || hemisphere == "" {
		return Coordinate{}, false, ErrFieldInvalid
	}

	degrees, minutes, err := parseDegreesAndMinutes(value, 3, 180)
	if err != nil {
		return Coordinate{}, false, err
	}

	if hemisphere != "E" && hemisphere != "W" {
		return Coordinate{}, false, ErrFieldInvalid
	}

	return Coordinate{Degrees: degrees, Minutes: minutes, Hemisphere: hemisphere[0]}, true, nil
}

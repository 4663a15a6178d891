package nmea

import (
	"fmt"
	"strconv"
)

// Time is a parsed NMEA "HHMMSS[.ffffff…]" field. The fractional digits are
// kept verbatim (not rounded) so the published text reproduces exactly what
// the source sent, matching NMEATime.cpp's secondPrecision/secondFraction.
type Time struct {
	Hour, Minute, Second uint8
	Fraction             string
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Fraction != "" {
		s += "." + t.Fraction
	}
	return s
}

func TimeField(view string, optional bool) (Time, bool, error) {
	if view == "" {
		if optional {
			return Time{}, false, nil
		}
		return Time{}, false, ErrFieldMissing
	}
	if len(view) < 6 {
		return Time{}, false, ErrFieldInvalid
	}

	hhStr, mmStr, ssStr := view[0:2], view[2:4], view[4:6]
	if !isDigits(hhStr) || !isDigits(mmStr) || !isDigits(ssStr) {
		return Time{}, false, ErrFieldInvalid
	}

	hh, _ := strconv.ParseUint(hhStr, 10, 8)
	mm, _ := strconv.ParseUint(mmStr, 10, 8)
	ss, _ := strconv.ParseUint(ssStr, 10, 8)
	if hh > 23 || mm > 59 || ss > 59 {
		return Time{}, false, ErrFieldInvalid
	}

	fraction := ""
	if rest := view[6:]; rest != "" {
		if rest[0] != '.' || !isDigits(rest[1:]) {
			return Time{}, false, ErrFieldInvalid
		}
		fraction = rest[1:]
	}

	return Time{Hour: uint8(hh), Minute: uint8(mm), Second: uint8(ss), Fraction: fraction}, true, nil
}

// Date is a parsed NMEA "DDMMYY" field. Two-digit years 00-79 resolve to
// 2000-2079, 80-99 to 1980-1999 — the conventional pivot for marine
// electronics manufactured well after 2000.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func DateField(view string, optional bool) (Date, bool, error) {
	if view == "" {
		if optional {
			return Date{}, false, nil
		}
		return Date{}, false, ErrFieldMissing
	}
	if len(view) != 6 || !isDigits(view) {
		return Date{}, false, ErrFieldInvalid
	}

	day, _ := strconv.ParseUint(view[0:2], 10, 8)
	month, _ := strconv.ParseUint(view[2:4], 10, 8)
	yy, _ := strconv.ParseUint(view[4:6], 10, 8)

	if day < 1 || day > 31 || month < 1 || month > 12 {
		return Date{}, false, ErrFieldInvalid
	}

	year := uint16(2000 + yy)
	if yy >= 80 {
		year = uint16(1900 + yy)
	}

	return Date{Year: year, Month: uint8(month), Day: uint8(day)}, true, nil
}

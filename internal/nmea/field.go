// Package nmea implements the NMEA 0183 line framer, field parser, and the
// per-sentence parsers for the sentence set this gateway recognizes. It is
// grounded on the original firmware's components/NMEA (NMEAParser.cpp,
// NMEACoordinate.cpp, NMEALatitude.cpp, NMEATime.cpp and their typed field
// wrappers).
package nmea

import (
	"errors"
	"strconv"
)

// ErrFieldMissing is returned by an extractor for a required field whose
// view is empty.
var ErrFieldMissing = errors.New("nmea: required field is missing")

// ErrFieldInvalid is returned when a field's text doesn't match its expected
// format or falls outside its valid range.
var ErrFieldInvalid = errors.New("nmea: field has invalid format or is out of range")

// fieldWalker yields successive comma-separated fields as string views into
// the original line buffer — no per-field allocation.
type fieldWalker struct {
	rest string
	done bool
}

func newFieldWalker(s string) *fieldWalker {
	return &fieldWalker{rest: s}
}

// next returns the next field and whether one was available. The final
// field (after the last comma) is returned once; afterwards ok is false.
func (w *fieldWalker) next() (field string, ok bool) {
	if w.done {
		return "", false
	}

	for i := 0; i < len(w.rest); i++ {
		if w.rest[i] == ',' {
			field = w.rest[:i]
			w.rest = w.rest[i+1:]
			return field, true
		}
	}

	field = w.rest
	w.rest = ""
	w.done = true
	return field, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// uintField parses an unsigned decimal field, optionally missing.
func uintField(view string, optional bool, maxValue uint64, bitSize int) (uint64, bool, error) {
	if view == "" {
		if optional {
			return 0, false, nil
		}
		return 0, false, ErrFieldMissing
	}

	v, err := strconv.ParseUint(view, 10, bitSize)
	if err != nil || v > maxValue {
		return 0, false, ErrFieldInvalid
	}
	return v, true, nil
}

func intField(view string, optional bool, bitSize int) (int64, bool, error) {
	if view == "" {
		if optional {
			return 0, false, nil
		}
		return 0, false, ErrFieldMissing
	}

	v, err := strconv.ParseInt(view, 10, bitSize)
	if err != nil {
		return 0, false, ErrFieldInvalid
	}
	return v, true, nil
}

func Uint8Field(view string, optional bool) (uint8, bool, error) {
	v, ok, err := uintField(view, optional, 255, 8)
	return uint8(v), ok, err
}

func Uint16Field(view string, optional bool, maxValue uint16) (uint16, bool, error) {
	v, ok, err := uintField(view, optional, uint64(maxValue), 16)
	return uint16(v), ok, err
}

func Uint32Field(view string, optional bool) (uint32, bool, error) {
	v, ok, err := uintField(view, optional, 1<<32-1, 32)
	return uint32(v), ok, err
}

func Int8Field(view string, optional bool) (int8, bool, error) {
	v, ok, err := intField(view, optional, 8)
	return int8(v), ok, err
}

// FixedPoint holds a value scaled by 10^decimals, rounded half-up from the
// field's textual fraction.
type FixedPoint struct {
	Scaled   int64
	Decimals int
}

// fixedPointField parses "[-]digits[.digits]" and rescales the fractional
// part to exactly decimals digits, rounding half-up.
func fixedPointField(view string, optional bool, decimals int) (int64, bool, error) {
	if view == "" {
		if optional {
			return 0, false, nil
		}
		return 0, false, ErrFieldMissing
	}

	neg := false
	s := view
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	wholeStr := s
	fracStr := ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			wholeStr = s[:i]
			fracStr = s[i+1:]
			break
		}
	}

	if wholeStr == "" && fracStr == "" {
		return 0, false, ErrFieldInvalid
	}
	if wholeStr == "" {
		wholeStr = "0"
	}
	if !isDigits(wholeStr) {
		return 0, false, ErrFieldInvalid
	}

	whole, err := strconv.ParseInt(wholeStr, 10, 63)
	if err != nil {
		return 0, false, ErrFieldInvalid
	}

	scale := int64(1)
	for i := 0; i < decimals; i++ {
		scale *= 10
	}

	scaled := whole * scale

	if fracStr != "" {
		if !isDigits(fracStr) {
			return 0, false, ErrFieldInvalid
		}

		// Round the fractional digits half-up to `decimals` places by
		// looking at the digit immediately after the kept precision.
		kept := fracStr
		roundUp := false
		if len(kept) > decimals {
			roundDigit := kept[decimals]
			kept = kept[:decimals]
			roundUp = roundDigit >= '5'
		}
		for len(kept) < decimals {
			kept += "0"
		}

		if kept != "" {
			fracVal, err := strconv.ParseInt(kept, 10, 63)
			if err != nil {
				return 0, false, ErrFieldInvalid
			}
			scaled += fracVal
			if roundUp {
				scaled++
			}
		}
	}

	if neg {
		scaled = -scaled
	}

	return scaled, true, nil
}

// TenthsField parses a one-decimal fixed point field into scaled-by-10 form.
func TenthsField(view string, optional bool) (int64, bool, error) {
	return fixedPointField(view, optional, 1)
}

// HundredthsField parses a two-decimal fixed point field into scaled-by-100
// form.
func HundredthsField(view string, optional bool) (int64, bool, error) {
	return fixedPointField(view, optional, 2)
}

// ConstantWordField validates that a field equals an exact literal (used for
// unit tags like "M" in GGA). A mismatch is a message-level parse failure.
func ConstantWordField(view, want string) error {
	if view != want {
		return ErrFieldInvalid
	}
	return nil
}

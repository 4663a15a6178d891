package datamodel

import (
	"fmt"
	"strconv"
)

// Tenths is a fixed-point value scaled by 10 (one implied fractional digit).
type Tenths[T int16 | uint16 | uint32] T

// Hundredths is a fixed-point value scaled by 100 (two implied fractional
// digits).
type Hundredths[T uint8 | uint16] T

// The formatters below produce the exact bytes published on the wire (the
// data model never reformats a leaf's text after serialization).

func FormatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func FormatUint8(v uint8) string  { return strconv.FormatUint(uint64(v), 10) }
func FormatUint16(v uint16) string { return strconv.FormatUint(uint64(v), 10) }
func FormatUint32(v uint32) string { return strconv.FormatUint(uint64(v), 10) }
func FormatInt8(v int8) string     { return strconv.FormatInt(int64(v), 10) }

func FormatString(v string) string { return v }

// FormatTenthsInt16 renders a one-decimal signed value. A negative value
// whose whole part is zero puts the minus sign on the zero itself ("-0.5"),
// matching the signed-integer-as-a-whole behavior required by spec; when the
// whole part is non-zero, the minus already lands there naturally.
func FormatTenthsInt16(v Tenths[int16]) string {
	raw := int16(v)
	neg := raw < 0

	whole := raw / 10
	frac := raw % 10
	if whole < 0 {
		whole = -whole
	}
	if frac < 0 {
		frac = -frac
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%d", sign, whole, frac)
}

func FormatTenthsUint16(v Tenths[uint16]) string {
	raw := uint16(v)
	return fmt.Sprintf("%d.%d", raw/10, raw%10)
}

func FormatTenthsUint32(v Tenths[uint32]) string {
	raw := uint32(v)
	return fmt.Sprintf("%d.%d", raw/10, raw%10)
}

func FormatHundredthsUint8(v Hundredths[uint8]) string {
	raw := uint8(v)
	return fmt.Sprintf("%d.%02d", raw/100, raw%100)
}

func FormatHundredthsUint16(v Hundredths[uint16]) string {
	raw := uint16(v)
	return fmt.Sprintf("%d.%02d", raw/100, raw%100)
}

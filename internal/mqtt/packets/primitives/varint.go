/*
 * MIT License
 *
 * Copyright (c) 2022 waj334
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package primitives

import (
	"errors"
	"io"
)

// ErrVarIntTooLarge is returned when a remaining length field would need a
// fifth continuation byte, which MQTT 3.1.1 never permits.
var ErrVarIntTooLarge = errors.New("primitives: variable byte integer exceeds 4 bytes")

// VariableByteInt is the MQTT remaining-length encoding: 7 data bits per
// byte, MSB set on every byte but the last.
type VariableByteInt uint32

func (v *VariableByteInt) Length() (result VariableByteInt) {
	switch {
	case *v < 128:
		return 1
	case *v < 16_384:
		return 2
	case *v < 2_097_152:
		return 3
	case *v <= 268_435_455:
		return 4
	default:
		return 0
	}
}

func (v *VariableByteInt) WriteTo(w io.Writer) (int64, error) {
	value := *v
	var output [4]byte
	i := 0

	for {
		digit := byte(value % 128)
		value /= 128
		if value > 0 {
			digit |= 0x80
		}
		output[i] = digit
		i++

		if value == 0 {
			break
		}
	}

	n, err := w.Write(output[:i])
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// ReadFrom decodes a remaining length. It masks each byte with 0x7F before
// applying the positional multiplier, so overflow of the multiplier can
// never silently corrupt a lower byte's bits — and it refuses a fifth
// continuation byte outright rather than relying on the multiplier
// overflowing back to zero to stop the loop.
func (v *VariableByteInt) ReadFrom(r io.Reader) (n int64, err error) {
	var multiplier uint32
	var result VariableByteInt

	for multiplier < 28 {
		var digit byte
		if digit, err = ReadByte(r); err != nil {
			return n, err
		}
		n++

		result |= VariableByteInt(digit&0x7F) << multiplier
		if digit&0x80 == 0 {
			*v = result
			return n, nil
		}
		multiplier += 7
	}

	return n, ErrVarIntTooLarge
}

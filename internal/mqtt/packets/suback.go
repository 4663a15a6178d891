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

package packets

import (
	"io"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/mqtt/packets/primitives"
)

// Suback is the broker's per-filter acknowledgment of a SUBSCRIBE, section
// 3.9. One return code per requested filter, in the same order.
type Suback struct {
	PacketIdentifier uint16
	ReturnCodes      []SubscribeReturnCode
}

func (s *Suback) WriteTo(w io.Writer) (n int64, err error) {
	fh := FixedHeader{Remaining: primitives.VariableByteInt(2 + len(s.ReturnCodes))}
	fh.SetType(SUBACK)

	count, err := fh.WriteTo(w)
	if err != nil {
		return 0, err
	}
	n += count

	if err = primitives.WriteUint16(s.PacketIdentifier, w); err != nil {
		return n, err
	}
	n += 2

	for _, code := range s.ReturnCodes {
		if err = primitives.WriteByte(byte(code), w); err != nil {
			return n, err
		}
		n++
	}

	return n, nil
}

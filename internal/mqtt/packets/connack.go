/*
 * MIT License
 *
 * Copyright (c) 2022-2022 waj334
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

// Connack is the CONNACK packet the broker sends in response to CONNECT,
// section 3.2. The broker only ever writes one.
type Connack struct {
	SessionPresent bool
	ReturnCode     ConnectReturnCode
}

func (c *Connack) WriteTo(w io.Writer) (n int64, err error) {
	fh := FixedHeader{Remaining: 2}
	fh.SetType(CONNACK)

	count, err := fh.WriteTo(w)
	if err != nil {
		return 0, err
	}
	n += count

	var flags byte
	if c.SessionPresent {
		flags = 0x01
	}

	if err = primitives.WriteByte(flags, w); err != nil {
		return n, err
	}
	n++

	if err = primitives.WriteByte(byte(c.ReturnCode), w); err != nil {
		return n, err
	}
	n++

	return n, nil
}

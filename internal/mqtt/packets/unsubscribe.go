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

// Unsubscribe is the UNSUBSCRIBE packet, section 3.10. The broker parses it.
type Unsubscribe struct {
	Header           FixedHeader
	PacketIdentifier uint16
	Filters          []string
}

func (u *Unsubscribe) ReadFrom(r io.Reader) (n int64, err error) {
	packetID, err := primitives.ReadUint16(r)
	if err != nil {
		return 0, err
	}
	n += 2
	u.PacketIdentifier = packetID

	for n < int64(u.Header.Remaining) {
		var filter primitives.PrimitiveString
		count, err := filter.ReadFrom(r)
		if err != nil {
			return n, err
		}
		n += count

		u.Filters = append(u.Filters, filter.String())
	}

	if len(u.Filters) == 0 {
		// SPEC: The Payload of an UNSUBSCRIBE packet MUST contain at least
		// one Topic Filter [MQTT-3.10.3-2].
		return n, ErrControlPacketIsMalformed
	}

	return n, nil
}

// Unsuback acknowledges an UNSUBSCRIBE, section 3.11. It carries no payload
// in MQTT 3.1.1.
type Unsuback struct {
	PacketIdentifier uint16
}

func (u *Unsuback) WriteTo(w io.Writer) (n int64, err error) {
	fh := FixedHeader{Remaining: 2}
	fh.SetType(UNSUBACK)

	count, err := fh.WriteTo(w)
	if err != nil {
		return 0, err
	}
	n += count

	if err = primitives.WriteUint16(u.PacketIdentifier, w); err != nil {
		return n, err
	}
	n += 2

	return n, nil
}

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

// Subscribe is the SUBSCRIBE packet a client sends to request delivery from
// one or more topic filters, section 3.8. The broker parses it.
type Subscribe struct {
	Header           FixedHeader
	PacketIdentifier uint16
	Topics           []Topic
}

func (s *Subscribe) ReadFrom(r io.Reader) (n int64, err error) {
	packetID, err := primitives.ReadUint16(r)
	if err != nil {
		return 0, err
	}
	n += 2
	s.PacketIdentifier = packetID

	for n < int64(s.Header.Remaining) {
		var filter primitives.PrimitiveString
		count, err := filter.ReadFrom(r)
		if err != nil {
			return n, err
		}
		n += count

		qos, err := primitives.ReadByte(r)
		if err != nil {
			return n, err
		}
		n++

		if qos&0xFC != 0 {
			// SPEC: Bits 2-7 of the Requested QoS field are reserved and
			// MUST NOT be used [MQTT-3-8.3-4].
			return n, ErrControlPacketIsMalformed
		}

		s.Topics = append(s.Topics, Topic{
			Filter:       filter.String(),
			RequestedQoS: QoS(qos),
		})
	}

	if len(s.Topics) == 0 {
		// SPEC: The Payload of a SUBSCRIBE packet MUST contain at least one
		// Topic Filter / QoS pair [MQTT-3.8.3-3].
		return n, ErrControlPacketIsMalformed
	}

	return n, nil
}

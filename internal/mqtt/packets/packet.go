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

// Package packets implements the MQTT 3.1.1 control packets the broker
// needs to parse from clients (CONNECT, SUBSCRIBE, UNSUBSCRIBE, PINGREQ,
// DISCONNECT) and emit to clients (CONNACK, SUBACK, UNSUBACK, PUBLISH,
// PINGRESP). There is no MQTT5 here: no properties, no reason strings, no
// AUTH packet, no QoS 1/2 acknowledgments.
package packets

import (
	"io"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/mqtt/packets/primitives"
)

type (
	PacketType byte
	QoS        byte
)

const (
	QoS0 QoS = 0
)

const (
	CONNECT PacketType = iota + 1
	CONNACK
	PUBLISH
	PUBACK
	PUBREC
	PUBREL
	PUBCOMP
	SUBSCRIBE
	SUBACK
	UNSUBSCRIBE
	UNSUBACK
	PINGREQ
	PINGRESP
	DISCONNECT
)

// FixedHeader is the 2-5 byte header common to every MQTT control packet:
// one byte of packet type + flags, followed by the remaining length.
type FixedHeader struct {
	Header    byte
	Remaining primitives.VariableByteInt
}

func (f *FixedHeader) SetType(packetType PacketType) {
	f.Header &= 0x0F
	f.Header |= byte(packetType) << 4
}

func (f *FixedHeader) GetType() PacketType {
	return PacketType(f.Header >> 4)
}

func (f *FixedHeader) SetFlags(flags byte) {
	f.Header &= 0xF0
	f.Header |= flags & 0x0F
}

func (f *FixedHeader) GetFlags() byte {
	return f.Header & 0x0F
}

func (f *FixedHeader) WriteTo(w io.Writer) (n int64, err error) {
	if err = primitives.WriteByte(f.Header, w); err != nil {
		return 0, err
	}
	n++

	count, err := f.Remaining.WriteTo(w)
	if err != nil {
		return n, err
	}
	n += count

	return n, nil
}

func (f *FixedHeader) ReadFrom(r io.Reader) (n int64, err error) {
	if f.Header, err = primitives.ReadByte(r); err != nil {
		return 0, err
	}
	n++

	count, err := f.Remaining.ReadFrom(r)
	if err != nil {
		return n, err
	}
	n += count

	return n, nil
}

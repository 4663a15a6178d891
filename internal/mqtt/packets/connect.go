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

const ProtocolLevel311 byte = 4

// Connect is the CONNECT packet a client sends to open a session, section 3.1.
// The broker parses it; it never writes one.
type Connect struct {
	Header FixedHeader

	ProtocolLevel byte
	CleanSession  bool
	WillFlag      bool
	WillRetain    bool
	WillQoS       QoS
	UsernameFlag  bool
	PasswordFlag  bool
	KeepAlive     uint16

	ClientID    primitives.PrimitiveString
	WillTopic   primitives.PrimitiveString
	WillMessage primitives.PrimitiveString
	Username    primitives.PrimitiveString
	Password    primitives.PrimitiveString
}

func (c *Connect) ReadFrom(r io.Reader) (n int64, err error) {
	var protocolName primitives.PrimitiveString
	count, err := protocolName.ReadFrom(r)
	if err != nil {
		return 0, err
	}
	n += count

	if protocolName.String() != "MQTT" {
		return n, ErrUnsupportedProtocol
	}

	if c.ProtocolLevel, err = primitives.ReadByte(r); err != nil {
		return n, err
	}
	n++

	if c.ProtocolLevel != ProtocolLevel311 {
		return n, ErrUnsupportedProtocol
	}

	flags, err := primitives.ReadByte(r)
	if err != nil {
		return n, err
	}
	n++

	if flags&0x01 != 0 {
		// SPEC: The Server MUST validate that the reserved flag in the
		// CONNECT Control Packet is set to zero [MQTT-3.1.2-3].
		return n, ErrControlPacketIsMalformed
	}

	c.CleanSession = flags&0x02 != 0
	c.WillFlag = flags&0x04 != 0
	c.WillQoS = QoS((flags >> 3) & 0x03)
	c.WillRetain = flags&0x20 != 0
	c.PasswordFlag = flags&0x40 != 0
	c.UsernameFlag = flags&0x80 != 0

	keepAlive, err := primitives.ReadUint16(r)
	if err != nil {
		return n, err
	}
	n += 2
	c.KeepAlive = keepAlive

	if count, err = c.ClientID.ReadFrom(r); err != nil {
		return n, err
	}
	n += count

	if c.WillFlag {
		if count, err = c.WillTopic.ReadFrom(r); err != nil {
			return n, err
		}
		n += count

		if count, err = c.WillMessage.ReadFrom(r); err != nil {
			return n, err
		}
		n += count
	}

	if c.UsernameFlag {
		if count, err = c.Username.ReadFrom(r); err != nil {
			return n, err
		}
		n += count
	}

	if c.PasswordFlag {
		if count, err = c.Password.ReadFrom(r); err != nil {
			return n, err
		}
		n += count
	}

	return n, nil
}

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

// Publish carries a topic/payload pair, section 3.3. The broker only ever
// emits QoS 0 PUBLISH packets (no packet identifier, no DUP, no ack), which
// is the only QoS this gateway's data model ever produces.
type Publish struct {
	Retain  bool
	Topic   string
	Payload []byte
}

func (p *Publish) WriteTo(w io.Writer) (n int64, err error) {
	topic := primitives.PrimitiveString(p.Topic)
	remaining := topic.Length() + primitives.VariableByteInt(len(p.Payload))

	fh := FixedHeader{Remaining: remaining}
	fh.SetType(PUBLISH)

	var flags byte
	if p.Retain {
		flags |= 0x01
	}
	fh.SetFlags(flags)

	count, err := fh.WriteTo(w)
	if err != nil {
		return 0, err
	}
	n += count

	if count, err = topic.WriteTo(w); err != nil {
		return n, err
	}
	n += count

	written, err := w.Write(p.Payload)
	if err != nil {
		return n, err
	}
	n += int64(written)

	return n, nil
}

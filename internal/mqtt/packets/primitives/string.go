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

import "io"

// PrimitiveString is a length-prefixed UTF-8 string as used for client
// identifiers and topic names/filters.
type PrimitiveString string

func (p *PrimitiveString) WriteTo(w io.Writer) (n int64, err error) {
	if err = WriteUint16(uint16(len(*p)), w); err != nil {
		return 0, err
	}
	n += 2

	count, err := w.Write([]byte(*p))
	if err != nil {
		return n, err
	}
	n += int64(count)

	return n, nil
}

func (p *PrimitiveString) ReadFrom(r io.Reader) (n int64, err error) {
	length, err := ReadUint16(r)
	if err != nil {
		return 0, err
	}
	n += 2

	buf := make([]byte, length)
	if _, err = io.ReadFull(r, buf); err != nil {
		return n, err
	}
	n += int64(length)

	*p = PrimitiveString(buf)
	return n, nil
}

func (p *PrimitiveString) Length() VariableByteInt {
	return 2 + VariableByteInt(len(*p))
}

func (p *PrimitiveString) String() string {
	return string(*p)
}

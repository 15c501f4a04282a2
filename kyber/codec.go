/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kyber

import (
	"github.com/fentec-project/gokyber/data"
)

// Encode maps a byte message onto a polynomial of length n. The
// message is read as a big-endian bit stream, each byte contributing
// its bits most-significant-first; bit i becomes coefficient i. The
// first n bits are kept, a shorter stream is zero-padded, and every
// set bit is scaled to round(q/2).
func Encode(msg []byte, q int64, n int) data.Poly {
	scale := (q + 1) / 2

	p := make(data.Poly, n)
	for i := 0; i < n; i++ {
		byteIdx := i / 8
		if byteIdx >= len(msg) {
			break
		}
		bit := (msg[byteIdx] >> uint(7-i%8)) & 1
		p[i] = int64(bit) * scale
	}

	return p
}

// Decode recovers the message bits from a noisy encoded polynomial.
// Every coefficient is first centered into (-q/2, q/2]; a
// coefficient decodes to bit 1 when its centered magnitude is at
// least q/4, and to bit 0 otherwise. Bits are packed big-endian into
// bytes and a trailing partial byte is dropped, so a polynomial of
// length n yields floor(n/8) bytes.
func Decode(p data.Poly, q int64) []byte {
	out := make([]byte, len(p)/8)

	for i := 0; i < len(out)*8; i++ {
		c := p[i] % q
		if c < 0 {
			c += q
		}
		if 2*c > q {
			c -= q
		}
		if c < 0 {
			c = -c
		}
		if 4*c >= q {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}

	return out
}

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

package data

import (
	"encoding/binary"
	"fmt"
	"math"
)

// The serialized form of a matrix is a header of four little-endian
// uint32 values (rows, cols, n, q), a uint32 coefficient count, and
// the coefficients in row-major order as little-endian uint32 values.
const matrixHeaderLen = 5 * 4

// MarshalBinary serializes matrix m. Coefficients are reduced to
// [0, q) before packing. It returns an error if q does not fit in
// 32 bits.
func (m *Matrix) MarshalBinary() ([]byte, error) {
	if m.q > math.MaxUint32 {
		return nil, fmt.Errorf("modulus too large to serialize")
	}

	count := m.Rows() * m.Cols() * m.n
	out := make([]byte, matrixHeaderLen+4*count)
	binary.LittleEndian.PutUint32(out[0:], uint32(m.Rows()))
	binary.LittleEndian.PutUint32(out[4:], uint32(m.Cols()))
	binary.LittleEndian.PutUint32(out[8:], uint32(m.n))
	binary.LittleEndian.PutUint32(out[12:], uint32(m.q))
	binary.LittleEndian.PutUint32(out[16:], uint32(count))

	off := matrixHeaderLen
	for _, row := range m.polys {
		for _, p := range row {
			for _, c := range p.Mod(m.q) {
				binary.LittleEndian.PutUint32(out[off:], uint32(c))
				off += 4
			}
		}
	}

	return out, nil
}

// UnmarshalBinary deserializes a matrix produced by MarshalBinary
// into m, replacing its previous contents.
func (m *Matrix) UnmarshalBinary(b []byte) error {
	if len(b) < matrixHeaderLen {
		return fmt.Errorf("serialized matrix too short")
	}

	rows := int(binary.LittleEndian.Uint32(b[0:]))
	cols := int(binary.LittleEndian.Uint32(b[4:]))
	n := int(binary.LittleEndian.Uint32(b[8:]))
	q := int64(binary.LittleEndian.Uint32(b[12:]))
	count := int(binary.LittleEndian.Uint32(b[16:]))

	if rows <= 0 || cols <= 0 || n <= 0 || q <= 0 {
		return fmt.Errorf("serialized matrix has an invalid header")
	}
	if count != rows*cols*n || len(b) != matrixHeaderLen+4*count {
		return fmt.Errorf("serialized matrix has an inconsistent length")
	}

	off := matrixHeaderLen
	polys := make([][]Poly, rows)
	for i := 0; i < rows; i++ {
		polys[i] = make([]Poly, cols)
		for j := 0; j < cols; j++ {
			p := make(Poly, n)
			for k := 0; k < n; k++ {
				p[k] = int64(binary.LittleEndian.Uint32(b[off:]))
				off += 4
			}
			polys[i][j] = p
		}
	}

	m.q = q
	m.n = n
	m.polys = polys

	return nil
}

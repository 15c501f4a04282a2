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
	"encoding/binary"
	"fmt"

	"github.com/fentec-project/gokyber/data"
	gokyber "github.com/fentec-project/gokyber/internal"
)

// Keys and ciphertexts serialize as the concatenation of their
// matrices' encodings, each preceded by a little-endian uint32
// length tag. No compatibility with any standardized wire format is
// promised.

func packMatrices(ms ...*data.Matrix) ([]byte, error) {
	var out []byte
	for _, m := range ms {
		b, err := m.MarshalBinary()
		if err != nil {
			return nil, err
		}
		tag := make([]byte, 4)
		binary.LittleEndian.PutUint32(tag, uint32(len(b)))
		out = append(out, tag...)
		out = append(out, b...)
	}

	return out, nil
}

func unpackMatrices(b []byte, ms ...*data.Matrix) error {
	for _, m := range ms {
		if len(b) < 4 {
			return fmt.Errorf("serialized value too short")
		}
		l := int(binary.LittleEndian.Uint32(b))
		b = b[4:]
		if len(b) < l {
			return fmt.Errorf("serialized value too short")
		}
		if err := m.UnmarshalBinary(b[:l]); err != nil {
			return err
		}
		b = b[l:]
	}
	if len(b) != 0 {
		return fmt.Errorf("serialized value has trailing bytes")
	}

	return nil
}

// MarshalBinary serializes the public key.
func (pk *PubKey) MarshalBinary() ([]byte, error) {
	if pk.A == nil || pk.T == nil {
		return nil, gokyber.ErrMalformedPubKey
	}

	return packMatrices(pk.A, pk.T)
}

// UnmarshalBinary deserializes a public key produced by
// MarshalBinary into pk.
func (pk *PubKey) UnmarshalBinary(b []byte) error {
	pk.A = new(data.Matrix)
	pk.T = new(data.Matrix)

	return unpackMatrices(b, pk.A, pk.T)
}

// MarshalBinary serializes the ciphertext.
func (ct *Cipher) MarshalBinary() ([]byte, error) {
	if ct.U == nil || ct.V == nil {
		return nil, gokyber.ErrMalformedCipher
	}

	return packMatrices(ct.U, ct.V)
}

// UnmarshalBinary deserializes a ciphertext produced by
// MarshalBinary into ct.
func (ct *Cipher) UnmarshalBinary(b []byte) error {
	ct.U = new(data.Matrix)
	ct.V = new(data.Matrix)

	return unpackMatrices(b, ct.U, ct.V)
}

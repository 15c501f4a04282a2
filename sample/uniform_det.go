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

package sample

import (
	"encoding/binary"

	"golang.org/x/crypto/salsa20"
	"golang.org/x/crypto/sha3"
)

// keystream is a deterministic entropy source backed by the Salsa20
// stream cipher. Each read is encrypted under a fresh nonce, so the
// stream never repeats for a fixed key.
type keystream struct {
	key   [32]byte
	count uint64
}

func (k *keystream) Read(p []byte) (int, error) {
	var nonce [8]byte
	binary.LittleEndian.PutUint64(nonce[:], k.count)
	k.count++

	for i := range p {
		p[i] = 0
	}
	salsa20.XORKeyStream(p, p, nonce[:], &k.key)

	return len(p), nil
}

// NewUniformDet returns a deterministic sampler for the interval
// [0, max). The underlying keystream is keyed with the SHA3-256
// digest of seed, so equal seeds yield equal sample streams.
func NewUniformDet(max int64, seed []byte) *UniformSource {
	return NewUniformFromSource(0, max, &keystream{key: sha3.Sum256(seed)})
}

// NewCenteredDet returns a deterministic sampler for the inclusive
// interval [-eta, eta] derived from seed in the same way as
// NewUniformDet.
func NewCenteredDet(eta int64, seed []byte) *UniformSource {
	return NewUniformFromSource(-eta, eta+1, &keystream{key: sha3.Sum256(seed)})
}

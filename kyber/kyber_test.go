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

package kyber_test

import (
	"bytes"
	"testing"

	"github.com/fentec-project/gokyber/fourier"
	"github.com/fentec-project/gokyber/kyber"
	"github.com/stretchr/testify/assert"
)

func newDefault(t *testing.T) *kyber.Kyber {
	p := kyber.DefaultParams()
	scheme, err := kyber.NewKyber(p.N, p.K, p.Q, p.Eta1, p.Eta2)
	assert.NoError(t, err)

	return scheme
}

func TestKyber_RoundTrip(t *testing.T) {
	scheme := newDefault(t)

	pk, sk, err := scheme.GenerateKeys()
	assert.NoError(t, err)

	msg := []byte("a 32 byte kyber plaintext msg...")
	assert.Equal(t, 32, len(msg))

	ct, err := scheme.Encrypt(msg, pk)
	assert.NoError(t, err)

	decrypted, err := scheme.Decrypt(ct, sk)
	assert.NoError(t, err)
	assert.Equal(t, msg, decrypted)
}

func TestKyber_RoundTripZeroMessage(t *testing.T) {
	scheme := newDefault(t)

	pk, sk, err := scheme.GenerateKeys()
	assert.NoError(t, err)

	msg := make([]byte, 32)
	ct, err := scheme.Encrypt(msg, pk)
	assert.NoError(t, err)

	decrypted, err := scheme.Decrypt(ct, sk)
	assert.NoError(t, err)
	assert.Equal(t, msg, decrypted)
}

func TestKyber_TruncatesOverlongMessage(t *testing.T) {
	scheme := newDefault(t)

	pk, sk, err := scheme.GenerateKeys()
	assert.NoError(t, err)

	msg := bytes.Repeat([]byte("0123456789"), 5) // 50 bytes, capacity is 32
	ct, err := scheme.Encrypt(msg, pk)
	assert.NoError(t, err)

	decrypted, err := scheme.Decrypt(ct, sk)
	assert.NoError(t, err)
	assert.Equal(t, msg[:32], decrypted)
}

func TestKyber_PadsShortMessage(t *testing.T) {
	scheme := newDefault(t)

	pk, sk, err := scheme.GenerateKeys()
	assert.NoError(t, err)

	ct, err := scheme.Encrypt([]byte("short"), pk)
	assert.NoError(t, err)

	decrypted, err := scheme.Decrypt(ct, sk)
	assert.NoError(t, err)
	assert.Equal(t, 32, len(decrypted))
	assert.Equal(t, []byte("short"), decrypted[:5])
	for _, b := range decrypted[5:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestKyber_KeyAndCipherShapes(t *testing.T) {
	scheme := newDefault(t)

	pk, sk, err := scheme.GenerateKeys()
	assert.NoError(t, err)

	assert.True(t, pk.A.CheckDims(3, 3))
	assert.True(t, pk.T.CheckDims(3, 1))
	assert.True(t, sk.CheckDims(3, 1))

	// t is the result of ring arithmetic, so it is canonical.
	for i := 0; i < pk.T.Rows(); i++ {
		for _, c := range pk.T.Poly(i, 0) {
			assert.True(t, c >= 0 && c < 3329)
		}
	}

	ct, err := scheme.Encrypt(make([]byte, 32), pk)
	assert.NoError(t, err)
	assert.True(t, ct.U.CheckDims(3, 1))
	assert.True(t, ct.V.CheckDims(1, 1))
}

func TestKyber_DeterministicFromSeed(t *testing.T) {
	p := kyber.DefaultParams()
	seed := []byte("deterministic kyber")

	s1, err := kyber.NewKyberFromSeed(p.N, p.K, p.Q, p.Eta1, p.Eta2, seed)
	assert.NoError(t, err)
	s2, err := kyber.NewKyberFromSeed(p.N, p.K, p.Q, p.Eta1, p.Eta2, seed)
	assert.NoError(t, err)

	pk1, sk1, err := s1.GenerateKeys()
	assert.NoError(t, err)
	pk2, sk2, err := s2.GenerateKeys()
	assert.NoError(t, err)

	assert.True(t, pk1.A.Equal(pk2.A))
	assert.True(t, pk1.T.Equal(pk2.T))
	assert.True(t, sk1.Equal(sk2))

	ct1, err := s1.Encrypt([]byte("same message"), pk1)
	assert.NoError(t, err)
	ct2, err := s2.Encrypt([]byte("same message"), pk2)
	assert.NoError(t, err)
	assert.True(t, ct1.U.Equal(ct2.U))
	assert.True(t, ct1.V.Equal(ct2.V))
}

// The frequency-domain back-end must be a drop-in replacement for
// the schoolbook multiplication.
func TestKyber_FrequencyDomainBackend(t *testing.T) {
	p := kyber.DefaultParams()
	seed := []byte("backend agreement")

	slow, err := kyber.NewKyberFromSeed(p.N, p.K, p.Q, p.Eta1, p.Eta2, seed)
	assert.NoError(t, err)
	fast, err := kyber.NewKyberFromSeed(p.N, p.K, p.Q, p.Eta1, p.Eta2, seed)
	assert.NoError(t, err)
	fast.PolyMul = fourier.MulPoly

	pkSlow, skSlow, err := slow.GenerateKeys()
	assert.NoError(t, err)
	pkFast, skFast, err := fast.GenerateKeys()
	assert.NoError(t, err)

	// Same seed, so same samples; the back-ends must agree bit for bit.
	assert.True(t, pkSlow.T.Equal(pkFast.T))
	assert.True(t, skSlow.Equal(skFast))

	msg := []byte("frequency domain msg")
	ctSlow, err := slow.Encrypt(msg, pkSlow)
	assert.NoError(t, err)
	ctFast, err := fast.Encrypt(msg, pkFast)
	assert.NoError(t, err)
	assert.True(t, ctSlow.U.Equal(ctFast.U))
	assert.True(t, ctSlow.V.Equal(ctFast.V))

	decrypted, err := fast.Decrypt(ctSlow, skFast)
	assert.NoError(t, err)
	assert.Equal(t, msg, decrypted[:len(msg)])
}

func TestKyber_SmallRing(t *testing.T) {
	scheme, err := kyber.NewKyber(16, 2, 3329, 2, 2)
	assert.NoError(t, err)

	pk, sk, err := scheme.GenerateKeys()
	assert.NoError(t, err)

	msg := []byte{0xAB, 0xCD}
	ct, err := scheme.Encrypt(msg, pk)
	assert.NoError(t, err)

	decrypted, err := scheme.Decrypt(ct, sk)
	assert.NoError(t, err)
	assert.Equal(t, msg, decrypted)
}

func TestKyber_InvalidParams(t *testing.T) {
	_, err := kyber.NewKyber(0, 3, 3329, 2, 2)
	assert.Error(t, err)
	_, err = kyber.NewKyber(100, 3, 3329, 2, 2) // not a power of 2
	assert.Error(t, err)
	_, err = kyber.NewKyber(256, 0, 3329, 2, 2)
	assert.Error(t, err)
	_, err = kyber.NewKyber(256, 3, 1, 2, 2)
	assert.Error(t, err)
	_, err = kyber.NewKyber(256, 3, 3329, 0, 2)
	assert.Error(t, err)
	_, err = kyber.NewKyber(256, 3, 3329, 2, 4000)
	assert.Error(t, err)
	_, err = kyber.NewKyberFromSeed(256, -1, 3329, 2, 2, []byte("seed"))
	assert.Error(t, err)
}

func TestKyber_MalformedInputs(t *testing.T) {
	scheme := newDefault(t)

	pk, sk, err := scheme.GenerateKeys()
	assert.NoError(t, err)

	_, err = scheme.Encrypt([]byte("msg"), nil)
	assert.Error(t, err)
	_, err = scheme.Encrypt([]byte("msg"), &kyber.PubKey{A: pk.A, T: pk.A})
	assert.Error(t, err)

	ct, err := scheme.Encrypt([]byte("msg"), pk)
	assert.NoError(t, err)

	_, err = scheme.Decrypt(nil, sk)
	assert.Error(t, err)
	_, err = scheme.Decrypt(&kyber.Cipher{U: ct.U, V: ct.U}, sk)
	assert.Error(t, err)
	_, err = scheme.Decrypt(ct, nil)
	assert.Error(t, err)
	_, err = scheme.Decrypt(ct, pk.A)
	assert.Error(t, err)
}

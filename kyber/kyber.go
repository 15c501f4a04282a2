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

// Package kyber implements a Kyber-style public key encryption
// scheme based on the Module-LWE problem.
//
// The scheme operates on matrices and vectors of polynomials from
// the ring Z_q[x]/(x^n + 1). It is a teaching-oriented construction:
// the public matrix A is sampled fresh at every key generation
// instead of being derived from a seed, no compression or
// Fujisaki-Okamoto transform is applied, and constant-time behavior
// is not a goal. Decryption can fail when the noise bounds are
// pushed too far; MeasureNoise quantifies how close a parameter set
// comes to that regime.
package kyber

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v4/utils"

	"github.com/fentec-project/gokyber/data"
	gokyber "github.com/fentec-project/gokyber/internal"
	"github.com/fentec-project/gokyber/sample"
)

// Params represents public parameters of the Kyber PKE scheme.
type Params struct {
	N    int   // degree bound of the ring polynomials; a power of 2
	K    int   // module rank, i.e. the dimension of vectors over the ring
	Q    int64 // modulus for coefficients of ciphertexts and keys
	Eta1 int64 // bound for coefficients of the secret and the encryption randomness
	Eta2 int64 // bound for coefficients of errors
}

// DefaultParams returns the parameter set n = 256, k = 3, q = 3329,
// eta1 = eta2 = 2. A message of up to n/8 = 32 bytes fits into one
// ciphertext.
func DefaultParams() *Params {
	return &Params{
		N:    256,
		K:    3,
		Q:    3329,
		Eta1: 2,
		Eta2: 2,
	}
}

// PubKey represents a public key (A, t) with t = A*s + e.
type PubKey struct {
	A *data.Matrix // k x k matrix with wide-uniform coefficients
	T *data.Matrix // k x 1 vector
}

// Cipher represents a ciphertext (u, v) encrypting a single message
// polynomial.
type Cipher struct {
	U *data.Matrix // k x 1 vector
	V *data.Matrix // 1 x 1 polynomial
}

// Kyber represents a scheme instance. Instances created with
// NewKyber sample from crypto/rand; instances created with
// NewKyberFromSeed are fully deterministic.
//
// PolyMul is the ring multiplication back-end used for all
// polynomial products of the scheme. Constructors set it to the
// schoolbook negacyclic convolution; it may be replaced before use,
// e.g. by fourier.MulPoly, and any conforming back-end produces
// identical ciphertexts.
type Kyber struct {
	Params  *Params
	PolyMul data.PolyMul

	uniform sample.Sampler
	noise1  sample.Sampler
	noise2  sample.Sampler
}

// NewKyber configures a new instance of the scheme. It accepts the
// degree bound n, the module rank k, the modulus q, and the noise
// bounds eta1 and eta2.
//
// Note that n must be a power of 2 and the noise bounds must be
// small relative to q; decryption is reliable when error terms stay
// below q/4 in centered magnitude. If any argument is out of range,
// an error is returned.
func NewKyber(n, k int, q, eta1, eta2 int64) (*Kyber, error) {
	params, err := newParams(n, k, q, eta1, eta2)
	if err != nil {
		return nil, err
	}

	return &Kyber{
		Params:  params,
		PolyMul: data.Poly.MulRing,
		uniform: sample.NewUniform(q),
		noise1:  sample.NewCentered(eta1),
		noise2:  sample.NewCentered(eta2),
	}, nil
}

// NewKyberFromSeed configures a new instance of the scheme whose
// sampling is driven by a keyed PRNG derived from seed. Two
// instances with equal parameters and seeds produce identical keys
// and ciphertexts, which makes the scheme reproducible in tests.
func NewKyberFromSeed(n, k int, q, eta1, eta2 int64, seed []byte) (*Kyber, error) {
	params, err := newParams(n, k, q, eta1, eta2)
	if err != nil {
		return nil, err
	}

	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, errors.Wrap(err, "cannot initialize keyed PRNG")
	}

	return &Kyber{
		Params:  params,
		PolyMul: data.Poly.MulRing,
		uniform: sample.NewUniformFromSource(0, q, prng),
		noise1:  sample.NewCenteredFromSource(eta1, prng),
		noise2:  sample.NewCenteredFromSource(eta2, prng),
	}, nil
}

func newParams(n, k int, q, eta1, eta2 int64) (*Params, error) {
	if n <= 0 || !isPowOf2(n) {
		return nil, fmt.Errorf("degree bound n is not a power of 2")
	}
	if k <= 0 {
		return nil, fmt.Errorf("module rank k should be positive")
	}
	if q < 2 {
		return nil, fmt.Errorf("modulus q should be at least 2")
	}
	if eta1 <= 0 || eta1 >= q || eta2 <= 0 || eta2 >= q {
		return nil, fmt.Errorf("noise bounds should be positive and smaller than q")
	}

	return &Params{N: n, K: k, Q: q, Eta1: eta1, Eta2: eta2}, nil
}

// GenerateKeys generates a fresh key pair. The public key is the
// pair (A, t) with a wide-uniform k x k matrix A and t = A*s + e;
// the private key is the small vector s.
func (s *Kyber) GenerateKeys() (*PubKey, *data.Matrix, error) {
	p := s.Params

	A, err := data.NewRandomMatrix(p.Q, p.K, p.K, p.N, s.uniform)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot sample public matrix")
	}
	sk, err := data.NewRandomMatrix(p.Q, p.K, 1, p.N, s.noise1)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot sample secret vector")
	}
	e, err := data.NewRandomMatrix(p.Q, p.K, 1, p.N, s.noise2)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot sample error vector")
	}

	As, err := A.MulFunc(sk, s.PolyMul)
	if err != nil {
		return nil, nil, errors.Wrap(err, "key generation failed")
	}
	t, err := As.Add(e)
	if err != nil {
		return nil, nil, errors.Wrap(err, "key generation failed")
	}

	return &PubKey{A: A, T: t}, sk, nil
}

// Encrypt encrypts a message using public key pk. The first n bits
// of msg are embedded into the ciphertext; a longer message is
// silently truncated and a shorter one zero-padded. In case of a
// malformed public key, it returns an error.
func (s *Kyber) Encrypt(msg []byte, pk *PubKey) (*Cipher, error) {
	p := s.Params
	if pk == nil || pk.A == nil || pk.T == nil ||
		!pk.A.CheckDims(p.K, p.K) || !pk.T.CheckDims(p.K, 1) {
		return nil, gokyber.ErrMalformedPubKey
	}

	r, err := data.NewRandomMatrix(p.Q, p.K, 1, p.N, s.noise1)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}
	e1, err := data.NewRandomMatrix(p.Q, p.K, 1, p.N, s.noise2)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}
	e2, err := data.NewRandomMatrix(p.Q, 1, 1, p.N, s.noise2)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}

	mHat, err := data.NewMatrix(p.Q, p.N, [][]data.Poly{{Encode(msg, p.Q, p.N)}})
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode message")
	}

	// u = Aᵀ*r + e1
	Ar, err := pk.A.Transpose().MulFunc(r, s.PolyMul)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}
	u, err := Ar.Add(e1)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}

	// v = tᵀ*r + e2 + m̂
	tr, err := pk.T.Transpose().MulFunc(r, s.PolyMul)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}
	v, err := tr.Add(e2)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}
	v, err = v.Add(mHat)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}

	return &Cipher{U: u, V: v}, nil
}

// Decrypt decrypts ciphertext ct with private key sk and returns the
// recovered message of n/8 bytes. In case of a malformed ciphertext
// or private key, it returns an error.
//
// When the accumulated noise of a coefficient reaches q/4 the
// corresponding message bit flips; no error is reported for this.
func (s *Kyber) Decrypt(ct *Cipher, sk *data.Matrix) ([]byte, error) {
	p := s.Params
	if ct == nil || ct.U == nil || ct.V == nil ||
		!ct.U.CheckDims(p.K, 1) || !ct.V.CheckDims(1, 1) {
		return nil, gokyber.ErrMalformedCipher
	}
	if sk == nil || !sk.CheckDims(p.K, 1) {
		return nil, gokyber.ErrMalformedPrivKey
	}

	d, err := s.noisyMessage(ct, sk)
	if err != nil {
		return nil, err
	}

	return Decode(d.Poly(0, 0), p.Q), nil
}

// noisyMessage computes d = v - sᵀ*u, the encoded message carrying
// the decryption noise.
func (s *Kyber) noisyMessage(ct *Cipher, sk *data.Matrix) (*data.Matrix, error) {
	su, err := sk.Transpose().MulFunc(ct.U, s.PolyMul)
	if err != nil {
		return nil, errors.Wrap(err, "error in decrypt")
	}
	d, err := ct.V.Sub(su)
	if err != nil {
		return nil, errors.Wrap(err, "error in decrypt")
	}

	return d, nil
}

func isPowOf2(x int) bool {
	return x&(x-1) == 0
}

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
	"fmt"

	"github.com/fentec-project/gokyber/sample"
)

// Poly wraps a slice of polynomial coefficients. The i-th element
// is the coefficient of x^i, so the polynomial 3 + 2x + x² is
// represented as Poly{3, 2, 1}.
type Poly []int64

// PolyMul is the signature of a polynomial multiplication back-end
// for the ring Z_q[x]/(x^n + 1). Implementations must return the
// product with every coefficient reduced to the canonical range
// [0, q), and an error if the operands cannot be multiplied.
type PolyMul func(a, b Poly, q int64) (Poly, error)

// NewZeroPoly returns a new Poly instance of length n with all
// coefficients set to 0.
func NewZeroPoly(n int) Poly {
	return make(Poly, n)
}

// NewRandomPoly returns a new Poly instance of length n with
// coefficients sampled by the provided sample.Sampler.
// Returns an error in case of sampling failure.
func NewRandomPoly(n int, sampler sample.Sampler) (Poly, error) {
	p := make(Poly, n)
	var err error

	for i := 0; i < n; i++ {
		p[i], err = sampler.Sample()
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Copy creates a new polynomial with the same coefficients.
func (p Poly) Copy() Poly {
	newPoly := make(Poly, len(p))
	copy(newPoly, p)

	return newPoly
}

// Equal returns true if p and other have the same length and
// coefficients.
func (p Poly) Equal(other Poly) bool {
	if len(p) != len(other) {
		return false
	}
	for i, c := range p {
		if c != other[i] {
			return false
		}
	}

	return true
}

// Add adds polynomials p and other coefficient-wise. If the operands
// differ in length, the shorter one is zero-extended to the longer.
// The result is returned in a new Poly.
func (p Poly) Add(other Poly) Poly {
	n := len(p)
	if len(other) > n {
		n = len(other)
	}

	sum := make(Poly, n)
	for i := range sum {
		if i < len(p) {
			sum[i] += p[i]
		}
		if i < len(other) {
			sum[i] += other[i]
		}
	}

	return sum
}

// Sub subtracts polynomial other from p coefficient-wise, with the
// same zero-extension rule as Add.
// The result is returned in a new Poly.
func (p Poly) Sub(other Poly) Poly {
	n := len(p)
	if len(other) > n {
		n = len(other)
	}

	sub := make(Poly, n)
	for i := range sub {
		if i < len(p) {
			sub[i] += p[i]
		}
		if i < len(other) {
			sub[i] -= other[i]
		}
	}

	return sub
}

// Neg negates every coefficient of p.
// The result is returned in a new Poly.
func (p Poly) Neg() Poly {
	neg := make(Poly, len(p))
	for i, c := range p {
		neg[i] = -c
	}

	return neg
}

// Mod reduces every coefficient of p to the canonical range [0, q).
// The result is returned in a new Poly.
func (p Poly) Mod(q int64) Poly {
	res := make(Poly, len(p))
	for i, c := range p {
		c = c % q
		if c < 0 {
			c += q
		}
		res[i] = c
	}

	return res
}

// MulRing multiplies polynomials p and other in the ring
// Z_q[x]/(x^n + 1), where n is the length of the operands. The
// product of terms with combined degree n + t contributes with a
// negated sign at position t, because x^n = -1 in the ring.
//
// Coefficients are accumulated in int64 arithmetic, so q must be
// chosen small enough that n*q² does not overflow. The result has
// every coefficient in the canonical range [0, q).
//
// If the operands differ in size, error is returned.
func (p Poly) MulRing(other Poly, q int64) (Poly, error) {
	if len(p) != len(other) {
		return nil, fmt.Errorf("polynomials must have the same length")
	}
	n := len(p)

	res := make(Poly, n)

	// Over all degrees, beginning at lowest degree
	for i := 0; i < n; i++ {
		var acc int64
		// Handle products with degrees < n
		for j := 0; j <= i; j++ {
			acc += p[i-j] * other[j]
		}
		// Handle products with degrees >= n
		for j := i + 1; j < n; j++ {
			acc -= p[n+i-j] * other[j] // Negate, because x^n = -1
		}

		acc = acc % q
		if acc < 0 {
			acc += q
		}
		res[i] = acc
	}

	return res, nil
}

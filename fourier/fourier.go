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

// Package fourier provides a frequency-domain back-end for
// polynomial multiplication in the ring Z_q[x]/(x^n + 1).
//
// Twisting coefficient k of each operand by ψ^k, where ψ = e^{iπ/n}
// is a primitive 2n-th root of unity with ψ^n = -1, turns the
// negacyclic convolution into a cyclic one of the same length, which
// is evaluated with a complex FFT. The back-end produces the same
// coefficients as the schoolbook convolution, so it satisfies
// data.PolyMul and can be plugged into matrix multiplication.
package fourier

import (
	"fmt"
	"math"

	"github.com/fentec-project/gokyber/data"
)

// MulPoly multiplies polynomials a and b in the ring
// Z_q[x]/(x^n + 1), where n is the length of the operands.
// The result has every coefficient in the canonical range [0, q).
//
// If the operands differ in size, error is returned.
func MulPoly(a, b data.Poly, q int64) (data.Poly, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("polynomials must have the same length")
	}
	n := len(a)

	// Twist by ψ = e^{iπ/n}. Products picking up a combined degree of
	// n carry a factor ψ^n = -1 after untwisting, which is exactly the
	// sign flip of x^n = -1 in the ring.
	fa := make([]complex128, n)
	fb := make([]complex128, n)
	for k := 0; k < n; k++ {
		ang := math.Pi * float64(k) / float64(n)
		psi := complex(math.Cos(ang), math.Sin(ang))
		fa[k] = complex(float64(a[k]), 0) * psi
		fb[k] = complex(float64(b[k]), 0) * psi
	}

	transform(fa, false)
	transform(fb, false)
	for k := range fa {
		fa[k] *= fb[k]
	}
	transform(fa, true)

	res := make(data.Poly, n)
	scale := float64(n)
	for k := 0; k < n; k++ {
		ang := math.Pi * float64(k) / float64(n)
		psiInv := complex(math.Cos(ang), -math.Sin(ang))
		// Round, because exact integers come back as values like 14.(9).
		res[k] = int64(math.Round(real(fa[k]*psiInv) / scale))
	}

	return res.Mod(q), nil
}

// transform computes an in-place discrete Fourier transform of v,
// inverse when inv is set. The inverse pass leaves the result scaled
// by len(v); the caller divides it out.
func transform(v []complex128, inv bool) {
	n := len(v)
	if n&(n-1) != 0 {
		dft(v, inv)
		return
	}

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		ang := 2 * math.Pi / float64(length)
		if !inv {
			ang = -ang
		}
		wl := complex(math.Cos(ang), math.Sin(ang))
		half := length >> 1
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			for k := 0; k < half; k++ {
				u := v[i+k]
				t := v[i+k+half] * w
				v[i+k] = u + t
				v[i+k+half] = u - t
				w *= wl
			}
		}
	}
}

// dft is the quadratic fallback for lengths that are not a power of
// two. Like transform, the inverse pass is left unscaled.
func dft(v []complex128, inv bool) {
	n := len(v)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			ang := 2 * math.Pi * float64(k) * float64(j) / float64(n)
			if !inv {
				ang = -ang
			}
			out[k] += v[j] * complex(math.Cos(ang), math.Sin(ang))
		}
	}
	copy(v, out)
}

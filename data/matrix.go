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

// Matrix represents a matrix of polynomials from the quotient ring
// Z_q[x]/(x^n + 1), stored in row-major order.
//
// The shape, the modulus q and the degree bound n are fixed at
// construction. Arithmetic methods return new Matrix values with
// every coefficient reduced to the canonical range [0, q); operands
// are never mutated.
type Matrix struct {
	q     int64
	n     int
	polys [][]Poly
}

// NewMatrix accepts a modulus q, a degree bound n and a row-major
// slice of polynomials, and returns a new Matrix instance.
// Polynomials shorter than n are zero-extended to length n. It
// returns an error if q or n are not positive, if the rows do not
// all have the same number of elements, or if any polynomial is
// longer than n.
func NewMatrix(q int64, n int, polys [][]Poly) (*Matrix, error) {
	if q <= 0 {
		return nil, fmt.Errorf("modulus should be positive")
	}
	if n <= 0 {
		return nil, fmt.Errorf("degree bound should be positive")
	}
	if len(polys) == 0 || len(polys[0]) == 0 {
		return nil, fmt.Errorf("the matrix should not be empty")
	}

	cols := len(polys[0])
	newPolys := make([][]Poly, len(polys))
	for i, row := range polys {
		if len(row) != cols {
			return nil, fmt.Errorf("all rows should be of the same length")
		}
		newPolys[i] = make([]Poly, cols)
		for j, p := range row {
			if len(p) > n {
				return nil, fmt.Errorf("polynomial exceeds the degree bound")
			}
			padded := make(Poly, n)
			copy(padded, p)
			newPolys[i][j] = padded
		}
	}

	return &Matrix{q: q, n: n, polys: newPolys}, nil
}

// NewRandomMatrix returns a new Matrix instance of shape rows x cols
// over Z_q[x]/(x^n + 1), with every coefficient sampled independently
// by the provided sample.Sampler.
//
// Sampled coefficients are stored as drawn; they are not reduced
// modulo q, so a centered sampler yields signed small coefficients.
// Returns an error in case of invalid arguments or sampling failure.
func NewRandomMatrix(q int64, rows, cols, n int, sampler sample.Sampler) (*Matrix, error) {
	if q <= 0 || rows <= 0 || cols <= 0 || n <= 0 {
		return nil, fmt.Errorf("matrix dimensions, degree bound and modulus should be positive")
	}

	polys := make([][]Poly, rows)
	for i := 0; i < rows; i++ {
		polys[i] = make([]Poly, cols)
		for j := 0; j < cols; j++ {
			p, err := NewRandomPoly(n, sampler)
			if err != nil {
				return nil, err
			}
			polys[i][j] = p
		}
	}

	return &Matrix{q: q, n: n, polys: polys}, nil
}

// NewZeroMatrix returns a new Matrix instance of shape rows x cols
// over Z_q[x]/(x^n + 1) with all coefficients set to 0.
func NewZeroMatrix(q int64, rows, cols, n int) (*Matrix, error) {
	if q <= 0 || rows <= 0 || cols <= 0 || n <= 0 {
		return nil, fmt.Errorf("matrix dimensions, degree bound and modulus should be positive")
	}

	polys := make([][]Poly, rows)
	for i := 0; i < rows; i++ {
		polys[i] = make([]Poly, cols)
		for j := 0; j < cols; j++ {
			polys[i][j] = NewZeroPoly(n)
		}
	}

	return &Matrix{q: q, n: n, polys: polys}, nil
}

// Rows returns the number of rows of matrix m.
func (m *Matrix) Rows() int {
	return len(m.polys)
}

// Cols returns the number of columns of matrix m.
func (m *Matrix) Cols() int {
	if len(m.polys) != 0 {
		return len(m.polys[0])
	}

	return 0
}

// Degree returns the degree bound n of the polynomials of matrix m.
func (m *Matrix) Degree() int {
	return m.n
}

// Modulus returns the coefficient modulus q of matrix m.
func (m *Matrix) Modulus() int64 {
	return m.q
}

// Poly returns the polynomial at row i and column j of matrix m.
func (m *Matrix) Poly(i, j int) Poly {
	return m.polys[i][j]
}

// DimsMatch returns a bool indicating whether matrices
// m and other have the same dimensions.
func (m *Matrix) DimsMatch(other *Matrix) bool {
	return m.Rows() == other.Rows() && m.Cols() == other.Cols()
}

// CheckDims checks whether dimensions of matrix m match
// the provided rows and cols arguments.
func (m *Matrix) CheckDims(rows, cols int) bool {
	return m.Rows() == rows && m.Cols() == cols
}

// Copy creates a new matrix with the same shape, modulus and
// coefficients.
func (m *Matrix) Copy() *Matrix {
	polys := make([][]Poly, m.Rows())
	for i, row := range m.polys {
		polys[i] = make([]Poly, len(row))
		for j, p := range row {
			polys[i][j] = p.Copy()
		}
	}

	return &Matrix{q: m.q, n: m.n, polys: polys}
}

// Equal returns true if matrices m and other have the same modulus,
// shape and coefficients.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.q != other.q || m.n != other.n || !m.DimsMatch(other) {
		return false
	}
	for i, row := range m.polys {
		for j, p := range row {
			if !p.Equal(other.polys[i][j]) {
				return false
			}
		}
	}

	return true
}

// Mod reduces every coefficient of matrix m to the canonical range
// [0, q). The result is returned in a new Matrix.
func (m *Matrix) Mod() *Matrix {
	polys := make([][]Poly, m.Rows())
	for i, row := range m.polys {
		polys[i] = make([]Poly, len(row))
		for j, p := range row {
			polys[i][j] = p.Mod(m.q)
		}
	}

	return &Matrix{q: m.q, n: m.n, polys: polys}
}

// Add adds matrices m and other element-wise and reduces the result
// modulo q. Operands constructed with different degree bounds are
// allowed; polynomials of the matrix with the smaller bound are
// zero-extended and the result carries the larger bound.
// The result is returned in a new Matrix.
// Error is returned if m and other have different dimensions or
// moduli.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if m.q != other.q {
		return nil, fmt.Errorf("matrices should share the modulus")
	}
	if !m.DimsMatch(other) {
		return nil, fmt.Errorf("matrices mismatch in dimensions")
	}

	n := m.n
	if other.n > n {
		n = other.n
	}

	polys := make([][]Poly, m.Rows())
	for i, row := range m.polys {
		polys[i] = make([]Poly, len(row))
		for j, p := range row {
			polys[i][j] = p.Add(other.polys[i][j]).Mod(m.q)
		}
	}

	return &Matrix{q: m.q, n: n, polys: polys}, nil
}

// AddScalar adds an integer scalar to the constant term of every
// polynomial of matrix m, reduced modulo q. All other coefficients
// keep their value modulo q and are only brought into [0, q).
// The result is returned in a new Matrix.
func (m *Matrix) AddScalar(c int64) *Matrix {
	res := m.Mod()
	for i, row := range res.polys {
		for j := range row {
			t := (res.polys[i][j][0] + c) % m.q
			if t < 0 {
				t += m.q
			}
			res.polys[i][j][0] = t
		}
	}

	return res
}

// Sub subtracts matrix other from m element-wise and reduces the
// result modulo q, so every coefficient of the result lies in [0, q).
// Operands with different degree bounds follow the same
// zero-extension rule as Add.
// Error is returned if m and other have different dimensions or
// moduli.
func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	if m.q != other.q {
		return nil, fmt.Errorf("matrices should share the modulus")
	}
	if !m.DimsMatch(other) {
		return nil, fmt.Errorf("matrices mismatch in dimensions")
	}

	n := m.n
	if other.n > n {
		n = other.n
	}

	polys := make([][]Poly, m.Rows())
	for i, row := range m.polys {
		polys[i] = make([]Poly, len(row))
		for j, p := range row {
			polys[i][j] = p.Sub(other.polys[i][j]).Mod(m.q)
		}
	}

	return &Matrix{q: m.q, n: n, polys: polys}, nil
}

// Mul multiplies matrices m and other. The entry at row r and
// column c of the product is the sum over the inner index of the
// ring products m[r][i] * other[i][c] in Z_q[x]/(x^n + 1).
// The result is returned in a new Matrix.
// Error is returned if the inner dimensions or the moduli of m and
// other do not match.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	return m.MulFunc(other, Poly.MulRing)
}

// MulFunc multiplies matrices m and other like Mul, with the
// polynomial products taken by the provided back-end. Any back-end
// satisfying PolyMul yields the same result as Mul on valid inputs.
func (m *Matrix) MulFunc(other *Matrix, mul PolyMul) (*Matrix, error) {
	if m.q != other.q {
		return nil, fmt.Errorf("matrices should share the modulus")
	}
	if m.n != other.n {
		return nil, fmt.Errorf("matrices should share the degree bound")
	}
	if m.Cols() != other.Rows() {
		return nil, fmt.Errorf("cannot multiply matrices")
	}

	polys := make([][]Poly, m.Rows())
	for r := 0; r < m.Rows(); r++ {
		polys[r] = make([]Poly, other.Cols())
		for c := 0; c < other.Cols(); c++ {
			acc := NewZeroPoly(m.n)
			for i := 0; i < m.Cols(); i++ {
				prod, err := mul(m.polys[r][i], other.polys[i][c], m.q)
				if err != nil {
					return nil, err
				}
				acc = acc.Add(prod)
			}
			polys[r][c] = acc.Mod(m.q)
		}
	}

	return &Matrix{q: m.q, n: m.n, polys: polys}, nil
}

// Transpose transposes matrix m and returns the result in a new
// Matrix. Polynomials are preserved as-is; no coefficient is
// manipulated, so Transpose is an involution.
func (m *Matrix) Transpose() *Matrix {
	polys := make([][]Poly, m.Cols())
	for i := 0; i < m.Cols(); i++ {
		polys[i] = make([]Poly, m.Rows())
		for j := 0; j < m.Rows(); j++ {
			polys[i][j] = m.polys[j][i].Copy()
		}
	}

	return &Matrix{q: m.q, n: m.n, polys: polys}
}

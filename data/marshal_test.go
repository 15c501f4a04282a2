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
	"testing"

	"github.com/fentec-project/gokyber/sample"
	"github.com/stretchr/testify/assert"
)

func TestMatrix_MarshalRoundTrip(t *testing.T) {
	sampler := sample.NewUniformDet(3329, []byte("marshal"))

	m, err := NewRandomMatrix(3329, 3, 2, 16, sampler)
	assert.NoError(t, err)

	b, err := m.MarshalBinary()
	assert.NoError(t, err)

	restored := new(Matrix)
	err = restored.UnmarshalBinary(b)
	assert.NoError(t, err)
	assert.True(t, restored.Equal(m.Mod()))
}

func TestMatrix_MarshalCentered(t *testing.T) {
	// Signed coefficients serialize as their canonical representatives.
	m, err := NewMatrix(17, 2, [][]Poly{{Poly{-1, 5}}})
	assert.NoError(t, err)

	b, err := m.MarshalBinary()
	assert.NoError(t, err)

	restored := new(Matrix)
	err = restored.UnmarshalBinary(b)
	assert.NoError(t, err)
	assert.Equal(t, Poly{16, 5}, restored.Poly(0, 0))
}

func TestMatrix_UnmarshalRejectsCorrupt(t *testing.T) {
	m, err := NewZeroMatrix(17, 2, 2, 4)
	assert.NoError(t, err)

	b, err := m.MarshalBinary()
	assert.NoError(t, err)

	restored := new(Matrix)
	assert.Error(t, restored.UnmarshalBinary(b[:7]))
	assert.Error(t, restored.UnmarshalBinary(b[:len(b)-4]))
}

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
	"fmt"
	"io"
	"math/bits"
)

// UniformSource samples random values from the interval [min, max),
// reading entropy from a caller-provided source. The source may be
// crypto/rand.Reader, or a keyed PRNG when reproducible sample
// streams are needed.
type UniformSource struct {
	src io.Reader
	min int64
	max int64
}

// NewUniformFromSource returns an instance of the UniformSource
// sampler for the interval [min, max), drawing entropy from src.
func NewUniformFromSource(min, max int64, src io.Reader) *UniformSource {
	return &UniformSource{
		src: src,
		min: min,
		max: max,
	}
}

// NewCenteredFromSource returns an instance of the UniformSource
// sampler for the inclusive interval [-eta, eta], drawing entropy
// from src.
func NewCenteredFromSource(eta int64, src io.Reader) *UniformSource {
	return NewUniformFromSource(-eta, eta+1, src)
}

// Sample samples random values from the interval [min, max).
// Rejection sampling over fixed-width chunks of the source keeps the
// distribution unbiased.
func (u *UniformSource) Sample() (int64, error) {
	if u.max <= u.min {
		return 0, fmt.Errorf("upper bound should be greater than lower bound")
	}

	span := uint64(u.max - u.min)
	if span == 1 {
		return u.min, nil
	}

	nBits := bits.Len64(span - 1)
	nBytes := (nBits + 7) / 8
	over := uint(8*nBytes - nBits)

	buf := make([]byte, nBytes)
	for {
		if _, err := io.ReadFull(u.src, buf); err != nil {
			return 0, err
		}
		buf[0] = buf[0] >> over

		var v uint64
		for _, b := range buf {
			v = v<<8 | uint64(b)
		}
		if v < span {
			return u.min + int64(v), nil
		}
	}
}

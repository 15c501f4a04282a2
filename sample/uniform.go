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
	"crypto/rand"
	"fmt"
	"math/big"
)

// UniformRange samples random values from the interval [min, max).
type UniformRange struct {
	min int64
	max int64
}

// NewUniformRange returns an instance of the UniformRange sampler.
// It accepts lower and upper bounds on the sampled values.
func NewUniformRange(min, max int64) *UniformRange {
	return &UniformRange{
		min: min,
		max: max,
	}
}

// NewUniform returns an instance of the UniformRange sampler
// for the interval [0, max).
func NewUniform(max int64) *UniformRange {
	return NewUniformRange(0, max)
}

// NewCentered returns an instance of the UniformRange sampler
// for the inclusive interval [-eta, eta].
func NewCentered(eta int64) *UniformRange {
	return NewUniformRange(-eta, eta+1)
}

// Sample samples random values from the interval [min, max).
func (u *UniformRange) Sample() (int64, error) {
	if u.max <= u.min {
		return 0, fmt.Errorf("upper bound should be greater than lower bound")
	}

	res, err := rand.Int(rand.Reader, big.NewInt(u.max-u.min))
	if err != nil {
		return 0, err
	}

	return u.min + res.Int64(), nil
}

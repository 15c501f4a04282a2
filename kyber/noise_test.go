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
	"testing"

	"github.com/fentec-project/gokyber/kyber"
	"github.com/stretchr/testify/assert"
)

func TestMeasureNoise_DefaultParams(t *testing.T) {
	p := kyber.DefaultParams()
	scheme, err := kyber.NewKyberFromSeed(p.N, p.K, p.Q, p.Eta1, p.Eta2, []byte("noise"))
	assert.NoError(t, err)

	ns, err := scheme.MeasureNoise(10)
	assert.NoError(t, err)

	// At the default parameters the noise stays far below the q/4
	// decoding threshold.
	assert.True(t, ns.MaxAbs < float64(p.Q)/4)
	assert.True(t, ns.MeanAbs > 0)
	assert.True(t, ns.MeanAbs < ns.MaxAbs)
	assert.Equal(t, 0.0, ns.BitFailureRate)
	assert.Equal(t, 0.0, ns.MsgFailureRate)
}

func TestMeasureNoise_InvalidTrials(t *testing.T) {
	p := kyber.DefaultParams()
	scheme, err := kyber.NewKyber(p.N, p.K, p.Q, p.Eta1, p.Eta2)
	assert.NoError(t, err)

	_, err = scheme.MeasureNoise(0)
	assert.Error(t, err)
}

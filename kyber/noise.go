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

package kyber

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// NoiseStats summarizes the decryption noise observed over a number
// of independent key generations and encryptions. The noise of a
// coefficient is its centered magnitude after v - sᵀ*u with the
// message removed; a bit flips, and decryption of that bit fails,
// once the magnitude reaches q/4.
type NoiseStats struct {
	MeanAbs float64 // mean noise magnitude over all coefficients
	StdAbs  float64 // standard deviation of the magnitude
	MaxAbs  float64 // largest magnitude observed

	BitFailureRate float64 // fraction of coefficients at or beyond q/4
	MsgFailureRate float64 // fraction of trials with at least one flipped bit
}

// MeasureNoise runs the given number of keygen/encrypt/decrypt
// trials on the all-zero message and reports empirical statistics of
// the decryption noise. It is a diagnostic for parameter choices:
// bounds pushed beyond the reliable regime show up here as non-zero
// failure rates, while Decrypt itself stays silent.
func (s *Kyber) MeasureNoise(trials int) (*NoiseStats, error) {
	if trials <= 0 {
		return nil, fmt.Errorf("number of trials should be positive")
	}

	p := s.Params
	magnitudes := make([]float64, 0, trials*p.N)
	var flipped, failedMsgs int

	for i := 0; i < trials; i++ {
		pk, sk, err := s.GenerateKeys()
		if err != nil {
			return nil, errors.Wrap(err, "noise measurement failed")
		}
		// For the all-zero message d = v - sᵀ*u is the bare noise.
		ct, err := s.Encrypt(make([]byte, p.N/8), pk)
		if err != nil {
			return nil, errors.Wrap(err, "noise measurement failed")
		}
		d, err := s.noisyMessage(ct, sk)
		if err != nil {
			return nil, errors.Wrap(err, "noise measurement failed")
		}

		failed := false
		for _, c := range d.Poly(0, 0) {
			if 2*c > p.Q {
				c -= p.Q
			}
			if c < 0 {
				c = -c
			}
			magnitudes = append(magnitudes, float64(c))
			if 4*c >= p.Q {
				flipped++
				failed = true
			}
		}
		if failed {
			failedMsgs++
		}
	}

	mean, err := stats.Mean(magnitudes)
	if err != nil {
		return nil, errors.Wrap(err, "noise measurement failed")
	}
	std, err := stats.StandardDeviation(magnitudes)
	if err != nil {
		return nil, errors.Wrap(err, "noise measurement failed")
	}
	max, err := stats.Max(magnitudes)
	if err != nil {
		return nil, errors.Wrap(err, "noise measurement failed")
	}

	return &NoiseStats{
		MeanAbs:        mean,
		StdAbs:         std,
		MaxAbs:         max,
		BitFailureRate: float64(flipped) / float64(len(magnitudes)),
		MsgFailureRate: float64(failedMsgs) / float64(trials),
	}, nil
}

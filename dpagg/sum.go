//
// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package dpagg

import (
	"math"

	"github.com/edric-shen/differential-privacy/noise"
)

// boundedSum is the noised-sum half of a bounded-mean estimate. Contributions
// are expected to already be normalized (shifted so that the midpoint of the
// original bounds is zero) by the caller before being added.
type boundedSum struct {
	epsilon         float64
	delta           float64
	l0Sensitivity   int64
	lInfSensitivity float64
	noise           noise.Noise
	noiseKind       noise.Kind

	value float64
	state aggregationState
}

type boundedSumOptions struct {
	epsilon                  float64
	delta                    float64
	maxPartitionsContributed int64
	lInfSensitivity          float64
	noise                    noise.Noise
}

func newBoundedSum(opt boundedSumOptions) *boundedSum {
	n := opt.noise
	if n == nil {
		n = noise.Laplace()
	}
	return &boundedSum{
		epsilon:         opt.epsilon,
		delta:           opt.delta,
		l0Sensitivity:   opt.maxPartitionsContributed,
		lInfSensitivity: opt.lInfSensitivity,
		noise:           n,
		noiseKind:       noise.ToKind(n),
		value:           0,
		state:           defaultState,
	}
}

func (s *boundedSum) add(e float64) {
	if math.IsNaN(e) {
		return
	}
	s.value += e
}

func (s *boundedSum) result() (float64, error) {
	if s.state != defaultState {
		return 0, &AggregatorFinalizedError{Op: "Result"}
	}
	s.state = resultReturned
	return s.noise.AddNoiseFloat64(s.value, s.l0Sensitivity, s.lInfSensitivity, s.epsilon, s.delta)
}

func (s *boundedSum) computeConfidenceInterval(noisedSum float64, alpha float64) (noise.ConfidenceInterval, error) {
	if s.state != resultReturned {
		return noise.ConfidenceInterval{}, &ResultNotYetComputedError{}
	}
	return s.noise.ComputeConfidenceIntervalFloat64(noisedSum, s.l0Sensitivity, s.lInfSensitivity, s.epsilon, s.delta, alpha)
}

func (s *boundedSum) mergeWith(o *boundedSum) {
	s.value += o.value
}

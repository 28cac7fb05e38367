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
	"github.com/edric-shen/differential-privacy/noise"
)

// count is the noised-count half of a bounded-mean estimate. It mirrors the
// standalone Count aggregator but stays unexported: BoundedMean is the only
// supported entry point for this module, so count never needs to answer its
// own confidence interval independently of the sum it is paired with.
type count struct {
	epsilon         float64
	delta           float64
	l0Sensitivity   int64
	lInfSensitivity int64
	noise           noise.Noise
	noiseKind       noise.Kind

	value int64
	state aggregationState
}

type countOptions struct {
	epsilon                  float64
	delta                    float64
	maxPartitionsContributed int64
	maxContributionsPerPartition int64
	noise                    noise.Noise
}

func newCount(opt countOptions) *count {
	n := opt.noise
	if n == nil {
		n = noise.Laplace()
	}
	return &count{
		epsilon:         opt.epsilon,
		delta:           opt.delta,
		l0Sensitivity:   opt.maxPartitionsContributed,
		lInfSensitivity: opt.maxContributionsPerPartition,
		noise:           n,
		noiseKind:       noise.ToKind(n),
		value:           0,
		state:           defaultState,
	}
}

func (c *count) increment() {
	c.value++
}

func (c *count) result() (int64, error) {
	if c.state != defaultState {
		return 0, &AggregatorFinalizedError{Op: "Result"}
	}
	c.state = resultReturned
	return c.noise.AddNoiseInt64(c.value, c.l0Sensitivity, c.lInfSensitivity, c.epsilon, c.delta)
}

func (c *count) computeConfidenceInterval(noisedCount int64, alpha float64) (noise.ConfidenceInterval, error) {
	if c.state != resultReturned {
		return noise.ConfidenceInterval{}, &ResultNotYetComputedError{}
	}
	return c.noise.ComputeConfidenceIntervalInt64(noisedCount, c.l0Sensitivity, c.lInfSensitivity, c.epsilon, c.delta, alpha)
}

func (c *count) mergeWith(o *count) {
	c.value += o.value
}

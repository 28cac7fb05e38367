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

const (
	arbitraryEpsilon                      = 0.25
	arbitraryDelta                        = 0.01
	arbitraryAlpha                        = 0.05
	arbitraryMaxPartitionsContributed     = 3
	arbitraryMaxContributionsPerPartition = 5
	arbitraryLower                        = -10.0
	arbitraryUpper                        = 10.0
)

// noNoise is a mock Noise implementation that echoes its input, used so
// tests can assert on the clamping and normalization logic without the
// variance a real mechanism would introduce.
type noNoise struct{}

func (noNoise) AddNoiseInt64(x, l0Sensitivity, lInfSensitivity int64, epsilon, delta float64) (int64, error) {
	return x, nil
}

func (noNoise) AddNoiseFloat64(x float64, l0Sensitivity int64, lInfSensitivity, epsilon, delta float64) (float64, error) {
	return x, nil
}

func (noNoise) ComputeConfidenceIntervalInt64(noisedX, l0Sensitivity, lInfSensitivity int64, epsilon, delta, alpha float64) (noise.ConfidenceInterval, error) {
	return noise.ConfidenceInterval{LowerBound: float64(noisedX) - 5, UpperBound: float64(noisedX) + 5}, nil
}

func (noNoise) ComputeConfidenceIntervalFloat64(noisedX float64, l0Sensitivity int64, lInfSensitivity, epsilon, delta, alpha float64) (noise.ConfidenceInterval, error) {
	return noise.ConfidenceInterval{LowerBound: noisedX - 5, UpperBound: noisedX + 5}, nil
}

func getNoiselessBM(lower, upper float64) (*BoundedMean, error) {
	return NewBoundedMean(&BoundedMeanOptions{
		Epsilon:                      arbitraryEpsilon,
		MaxPartitionsContributed:     arbitraryMaxPartitionsContributed,
		MaxContributionsPerPartition: arbitraryMaxContributionsPerPartition,
		Lower:                        lower,
		Upper:                        upper,
		Noise:                        noNoise{},
	})
}

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

// Package noise contains the noise mechanisms that make aggregate
// statistics differentially private.
package noise

import (
	"math"

	log "github.com/golang/glog"
)

// Kind identifies which noise distribution a Noise implementation samples
// from. It is stored alongside an aggregator's other parameters so that two
// aggregators can be checked for merge compatibility without comparing
// function values.
type Kind int

// Supported noise distributions.
const (
	GaussianNoise Kind = iota
	LaplaceNoise
	Unrecognised
)

// ToNoise converts a Kind into its corresponding Noise instance.
func ToNoise(k Kind) Noise {
	switch k {
	case GaussianNoise:
		return Gaussian()
	case LaplaceNoise:
		return Laplace()
	case Unrecognised:
		log.Warningf("ToNoise: Unrecognised noise specified, returning nil")
	default:
		log.Warningf("ToNoise: unknown kind (%v) specified, returning nil", k)
	}
	return nil
}

// ToKind converts a Noise instance into its Kind, used to fingerprint an
// aggregator's noise mechanism for merge-compatibility checks.
func ToKind(n Noise) Kind {
	switch n {
	case Gaussian():
		return GaussianNoise
	case Laplace():
		return LaplaceNoise
	case nil:
		log.Warningf("ToKind: nil noise specified, returning Unrecognised")
	default:
		log.Warningf("ToKind: unknown Noise (%v) specified, returning Unrecognised", n)
	}
	return Unrecognised
}

// ConfidenceInterval holds the lower and upper bounds of a confidence
// interval around a noised value.
type ConfidenceInterval struct {
	LowerBound, UpperBound float64
}

func (ci ConfidenceInterval) roundToInt64() ConfidenceInterval {
	return ConfidenceInterval{LowerBound: math.Round(ci.LowerBound), UpperBound: math.Round(ci.UpperBound)}
}

// Noise adds noise to data so that its release satisfies
// differential privacy, and computes confidence intervals around the noised
// values it produces.
type Noise interface {
	// AddNoiseInt64 adds noise to x so that the output is (ε,δ)-differentially
	// private, given the L0 and L∞ sensitivities of the contribution.
	AddNoiseInt64(x, l0Sensitivity, lInfSensitivity int64, epsilon, delta float64) (int64, error)

	// AddNoiseFloat64 adds noise to x so that the output is (ε,δ)-differentially
	// private, given the L0 and L∞ sensitivities of the contribution.
	AddNoiseFloat64(x float64, l0Sensitivity int64, lInfSensitivity, epsilon, delta float64) (float64, error)

	// ComputeConfidenceIntervalInt64 returns an interval that contains the raw
	// integer value from which noisedX was computed with probability at
	// least 1-alpha, given the noise parameters used to produce noisedX.
	ComputeConfidenceIntervalInt64(noisedX, l0Sensitivity, lInfSensitivity int64, epsilon, delta, alpha float64) (ConfidenceInterval, error)

	// ComputeConfidenceIntervalFloat64 returns an interval that contains the
	// raw value from which noisedX was computed with probability at least
	// 1-alpha, given the noise parameters used to produce noisedX.
	ComputeConfidenceIntervalFloat64(noisedX float64, l0Sensitivity int64, lInfSensitivity, epsilon, delta, alpha float64) (ConfidenceInterval, error)
}

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

package noise

import (
	"math"

	"github.com/edric-shen/differential-privacy/checks"
	"github.com/edric-shen/differential-privacy/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// binomialBound is the square root of the maximum number of Bernoulli
	// trials from which a binomial sample is drawn. Larger values give more
	// fine-grained noise at the cost of a higher chance of overflow.
	binomialBound float64 = math.Exp2(57.0)
	// geometricBound bounds the two-sided geometric samples used to build a
	// binomial sample, preventing overflow during rejection sampling.
	geometricBound int64 = (math.MaxInt64 / int64(math.Round(math.Sqrt2*binomialBound+1.0))) - 1
	// gaussianSigmaAccuracy is the relative accuracy to which sigmaForGaussian
	// calibrates sigma.
	gaussianSigmaAccuracy = 1e-3
)

type gaussian struct{}

// Gaussian returns a Noise instance that adds Gaussian noise to its input,
// via a secure rejection-sampled symmetric binomial mechanism that
// approximates the Gaussian distribution without floating-point artifacts.
func Gaussian() Noise {
	return gaussian{}
}

// AddNoiseFloat64 adds Gaussian noise to x so the output is
// (ε,δ)-differentially private.
func (gaussian) AddNoiseFloat64(x float64, l0Sensitivity int64, lInfSensitivity, epsilon, delta float64) (float64, error) {
	if err := checkArgsGaussian(l0Sensitivity, lInfSensitivity, epsilon, delta); err != nil {
		return 0, err
	}
	sigma := sigmaForGaussian(l0Sensitivity, lInfSensitivity, epsilon, delta)
	return addGaussian(x, sigma), nil
}

// AddNoiseInt64 adds Gaussian noise to x so the output is
// (ε,δ)-differentially private.
func (gaussian) AddNoiseInt64(x, l0Sensitivity, lInfSensitivity int64, epsilon, delta float64) (int64, error) {
	if err := checkArgsGaussian(l0Sensitivity, float64(lInfSensitivity), epsilon, delta); err != nil {
		return 0, err
	}
	sigma := sigmaForGaussian(l0Sensitivity, float64(lInfSensitivity), epsilon, delta)
	return int64(math.Round(addGaussian(float64(x), sigma))), nil
}

// ComputeConfidenceIntervalInt64 computes a confidence interval containing
// the raw integer value from which noisedX was derived, with probability at
// least 1-alpha.
func (gaussian) ComputeConfidenceIntervalInt64(noisedX, l0Sensitivity, lInfSensitivity int64, epsilon, delta, alpha float64) (ConfidenceInterval, error) {
	if err := checkArgsConfidenceIntervalGaussian(l0Sensitivity, float64(lInfSensitivity), epsilon, delta, alpha); err != nil {
		return ConfidenceInterval{}, err
	}
	sigma := sigmaForGaussian(l0Sensitivity, float64(lInfSensitivity), epsilon, delta)
	around := computeConfidenceIntervalGaussian(0, sigma, alpha).roundToInt64()
	lower := nextSmallerFloat64(int64(around.LowerBound) + noisedX)
	upper := nextLargerFloat64(int64(around.UpperBound) + noisedX)
	return ConfidenceInterval{LowerBound: lower, UpperBound: upper}, nil
}

// ComputeConfidenceIntervalFloat64 computes a confidence interval containing
// the raw value from which noisedX was derived, with probability at least
// 1-alpha.
func (gaussian) ComputeConfidenceIntervalFloat64(noisedX float64, l0Sensitivity int64, lInfSensitivity, epsilon, delta, alpha float64) (ConfidenceInterval, error) {
	if err := checkArgsConfidenceIntervalGaussian(l0Sensitivity, lInfSensitivity, epsilon, delta, alpha); err != nil {
		return ConfidenceInterval{}, err
	}
	sigma := sigmaForGaussian(l0Sensitivity, lInfSensitivity, epsilon, delta)
	return computeConfidenceIntervalGaussian(noisedX, sigma, alpha), nil
}

func (gaussian) String() string {
	return "Gaussian Noise"
}

func checkArgsGaussian(l0Sensitivity int64, lInfSensitivity, epsilon, delta float64) error {
	if err := checks.CheckL0Sensitivity(l0Sensitivity); err != nil {
		return err
	}
	if err := checks.CheckLInfSensitivity(lInfSensitivity); err != nil {
		return err
	}
	if err := checks.CheckEpsilonStrict(epsilon); err != nil {
		return err
	}
	return checks.CheckDeltaStrict(delta)
}

func checkArgsConfidenceIntervalGaussian(l0Sensitivity int64, lInfSensitivity, epsilon, delta, alpha float64) error {
	if err := checks.CheckAlpha(alpha); err != nil {
		return err
	}
	return checkArgsGaussian(l0Sensitivity, lInfSensitivity, epsilon, delta)
}

func computeConfidenceIntervalGaussian(noisedX, sigma, alpha float64) ConfidenceInterval {
	dist := distuv.Normal{Mu: 0, Sigma: sigma}
	z := dist.Quantile(alpha / 2)
	// By symmetry, -z is the (1-alpha/2)-quantile, giving a two-sided
	// interval covering 1-alpha of the probability mass.
	return ConfidenceInterval{LowerBound: noisedX + z, UpperBound: noisedX - z}
}

// addGaussian adds Gaussian noise of scale sigma to x.
func addGaussian(x, sigma float64) float64 {
	granularity := ceilPowerOfTwo(2.0 * sigma / binomialBound)
	sqrtN := 2.0 * sigma / granularity
	sample := symmetricBinomial(sqrtN)
	return roundToMultipleOfPowerOfTwo(x, granularity) + float64(sample)*granularity
}

// symmetricBinomial draws a sample m where m + n/2 is distributed as a
// binomial of n Bernoulli(0.5) trials, via the rejection sampling approach of
// Bringmann et al.
func symmetricBinomial(sqrtN float64) int64 {
	stepSize := int64(math.Round(math.Sqrt2*sqrtN + 1.0))
	var result int64
	for {
		boundedGeometricSample := int64(math.Min(float64(rand.Geometric())-1.0, float64(geometricBound)))
		twoSidedGeometricSample := boundedGeometricSample
		if rand.Boolean() {
			twoSidedGeometricSample = -twoSidedGeometricSample - 1
		}
		result = stepSize*twoSidedGeometricSample + rand.I63n(stepSize)
		resultProbability := binomialProbability(sqrtN, result)
		rejectProbability := rand.Uniform()
		if resultProbability > 0.0 &&
			rejectProbability < resultProbability*float64(stepSize)*math.Pow(2.0, float64(boundedGeometricSample))/4.0 {
			break
		}
	}
	return result
}

// binomialProbability approximates the probability of a sample m + n/2 drawn
// from a binomial distribution of n Bernoulli(1/2) trials.
func binomialProbability(sqrtN float64, m int64) float64 {
	if math.Abs(float64(m)) > sqrtN*math.Sqrt(math.Log(sqrtN)/2.0) {
		return 0.0
	}
	return (math.Sqrt(2.0/math.Pi) / sqrtN) *
		math.Exp((-2.0*float64(m)*float64(m))/(sqrtN*sqrtN)) *
		(1 - 0.4*math.Pow(2.0, 1.5)*math.Pow(math.Log(sqrtN), 1.5)/sqrtN)
}

// deltaForGaussian computes the smallest delta such that the Gaussian
// mechanism with standard deviation sigma is (epsilon,delta)-differentially
// private, per Balle and Wang's analytical calibration (Theorem 8).
func deltaForGaussian(sigma float64, l0Sensitivity int64, lInfSensitivity, epsilon float64) float64 {
	l2Sensitivity := lInfSensitivity * math.Sqrt(float64(l0Sensitivity))
	a := l2Sensitivity / (2 * sigma)
	b := epsilon * sigma / l2Sensitivity
	c := math.Exp(epsilon)

	if math.IsInf(c, +1) {
		return 0
	}
	if math.IsInf(b, +1) {
		return 0
	}
	return distuv.UnitNormal.CDF(a-b) - c*distuv.UnitNormal.CDF(-a-b)
}

// sigmaForGaussian calibrates the standard deviation of Gaussian noise
// needed to achieve (epsilon,delta)-differential privacy via binary search,
// accurate to within gaussianSigmaAccuracy times the exact value.
func sigmaForGaussian(l0Sensitivity int64, lInfSensitivity, epsilon, delta float64) float64 {
	if delta >= 1 {
		return 0
	}
	l2Sensitivity := lInfSensitivity * math.Sqrt(float64(l0Sensitivity))
	upperBound := l2Sensitivity
	var lowerBound float64

	for deltaForGaussian(upperBound, l0Sensitivity, lInfSensitivity, epsilon) > delta {
		lowerBound = upperBound
		upperBound = upperBound * 2
	}
	for upperBound-lowerBound > gaussianSigmaAccuracy*lowerBound {
		middle := lowerBound*0.5 + upperBound*0.5
		if deltaForGaussian(middle, l0Sensitivity, lInfSensitivity, epsilon) > delta {
			lowerBound = middle
		} else {
			upperBound = middle
		}
	}
	return upperBound
}

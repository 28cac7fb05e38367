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

	"github.com/edric-shen/differential-privacy/checks"
	"github.com/edric-shen/differential-privacy/noise"
)

// BoundedMean computes a differentially private mean of a collection of
// bounded values.
//
// It works by separately deriving a differentially private sum and count of
// the contributions, each with half of the overall privacy budget, and
// dividing the noised sum by the noised count. Contributions are normalized
// around the midpoint of [Lower, Upper] before being summed, which reduces
// the sensitivity of the sum and therefore the noise needed.
//
// BoundedMean is not safe for concurrent use, and its Result and
// GetSerializableSummary methods may each be called only once.
type BoundedMean struct {
	lower, upper float64
	midpoint     float64

	// epsilon, delta, l0Sensitivity, lInfSensitivity and noiseKind record the
	// top-level construction parameters (as opposed to the halved budgets
	// and derived sensitivities held by count and sum) so they can be
	// fingerprinted for merge compatibility and carried in a summary.
	epsilon         float64
	delta           float64
	l0Sensitivity   int64
	lInfSensitivity int64
	noiseKind       noise.Kind

	count *count
	sum   *boundedSum

	// noisedSum and noisedCount cache the values returned by Result, since
	// ComputeConfidenceInterval needs the noised values the result was
	// derived from, not the raw running totals.
	noisedSum   float64
	noisedCount int64

	state aggregationState
}

// BoundedMeanOptions configures a new BoundedMean.
type BoundedMeanOptions struct {
	// Epsilon is the total privacy budget epsilon spent by this aggregator,
	// split evenly between its internal sum and count. Required, must be
	// strictly positive and finite.
	Epsilon float64
	// Delta is the total privacy budget delta spent by this aggregator, split
	// evenly between its internal sum and count. Required with Gaussian
	// noise, must be 0 with Laplace noise.
	Delta float64
	// Noise is the mechanism used to noise the sum and the count. Defaults to
	// Laplace noise.
	Noise noise.Noise
	// MaxPartitionsContributed bounds how many partitions a single privacy
	// unit may contribute to (L0 sensitivity). Defaults to 1.
	MaxPartitionsContributed int64
	// MaxContributionsPerPartition bounds how many times a single privacy
	// unit may contribute to this partition (L-infinity sensitivity).
	// Defaults to 1.
	MaxContributionsPerPartition int64
	// Lower and Upper bound the contributions accepted by Add; values outside
	// this range are clamped. Required, Lower must be strictly less than
	// Upper, and both must be finite.
	Lower, Upper float64
}

// NewBoundedMean returns a new BoundedMean configured per opt.
func NewBoundedMean(opt *BoundedMeanOptions) (*BoundedMean, error) {
	if opt == nil {
		opt = &BoundedMeanOptions{}
	}

	if err := checks.CheckEpsilonStrict(opt.Epsilon); err != nil {
		return nil, &InvalidParameterError{Field: "Epsilon", Reason: err.Error()}
	}
	if err := checks.CheckBoundsFloat64(opt.Lower, opt.Upper); err != nil {
		return nil, &InvalidParameterError{Field: "Lower/Upper", Reason: err.Error()}
	}
	if err := checks.CheckBoundsNotEqual(opt.Lower, opt.Upper); err != nil {
		return nil, &InvalidParameterError{Field: "Lower/Upper", Reason: err.Error()}
	}

	l0 := opt.MaxPartitionsContributed
	if l0 == 0 {
		l0 = 1
	}
	if err := checks.CheckMaxPartitionsContributed(l0); err != nil {
		return nil, &InvalidParameterError{Field: "MaxPartitionsContributed", Reason: err.Error()}
	}

	lInf := opt.MaxContributionsPerPartition
	if lInf == 0 {
		lInf = 1
	}
	if err := checks.CheckMaxContributionsPerPartition(lInf); err != nil {
		return nil, &InvalidParameterError{Field: "MaxContributionsPerPartition", Reason: err.Error()}
	}

	n := opt.Noise
	if n == nil {
		n = noise.Laplace()
	}

	if noise.ToKind(n) == noise.GaussianNoise {
		if err := checks.CheckDeltaStrict(opt.Delta); err != nil {
			return nil, &InvalidParameterError{Field: "Delta", Reason: err.Error()}
		}
	} else if err := checks.CheckNoDelta(opt.Delta); err != nil {
		return nil, &InvalidParameterError{Field: "Delta", Reason: err.Error()}
	}

	midpoint := opt.Lower + (opt.Upper-opt.Lower)/2.0

	// The privacy budget for each sub-query is split evenly between the sum
	// and the count.
	subEpsilon := opt.Epsilon / 2
	subDelta := opt.Delta / 2

	sum := newBoundedSum(boundedSumOptions{
		epsilon:                  subEpsilon,
		delta:                    subDelta,
		maxPartitionsContributed: l0,
		lInfSensitivity:          getLInf(lInf, opt.Lower, opt.Upper),
		noise:                    n,
	})
	cnt := newCount(countOptions{
		epsilon:                      subEpsilon,
		delta:                        subDelta,
		maxPartitionsContributed:     l0,
		maxContributionsPerPartition: lInf,
		noise:                        n,
	})

	return &BoundedMean{
		lower:           opt.Lower,
		upper:           opt.Upper,
		midpoint:        midpoint,
		epsilon:         opt.Epsilon,
		delta:           opt.Delta,
		l0Sensitivity:   l0,
		lInfSensitivity: lInf,
		noiseKind:       noise.ToKind(n),
		count:           cnt,
		sum:             sum,
		state:           defaultState,
	}, nil
}

// Add records a contribution. NaN values are silently dropped; other values
// are clamped to [Lower, Upper] before being incorporated.
func (bm *BoundedMean) Add(e float64) error {
	if bm.state != defaultState {
		return &AggregatorFinalizedError{Op: "Add"}
	}
	if math.IsNaN(e) {
		return nil
	}
	clamped := clampFloat64(e, bm.lower, bm.upper)
	bm.sum.add(clamped - bm.midpoint)
	bm.count.increment()
	return nil
}

// Result returns a differentially private estimate of the mean of the
// contributions added so far, clamped to [Lower, Upper]. It may be called
// only once.
func (bm *BoundedMean) Result() (float64, error) {
	if bm.state != defaultState {
		return 0, &AggregatorFinalizedError{Op: "Result"}
	}
	bm.state = resultReturned

	noisedSum, err := bm.sum.result()
	if err != nil {
		return 0, err
	}
	noisedCount, err := bm.count.result()
	if err != nil {
		return 0, err
	}
	bm.noisedSum = noisedSum
	bm.noisedCount = noisedCount

	if noisedCount <= 0 {
		// With no reliable count to divide by, the midpoint is the safest
		// estimate available: it is always within [Lower, Upper] and does
		// not depend on further post-processing of a degenerate count.
		return bm.midpoint, nil
	}

	rawMean := noisedSum/nonZero(float64(noisedCount)) + bm.midpoint
	return clampFloat64(rawMean, bm.lower, bm.upper), nil
}

// ComputeConfidenceInterval returns an interval that contains the raw mean
// with probability at least 1-alpha, using alpha/2 for the sum sub-query and
// the remainder, rescaled as in ComputeConfidenceIntervalWithSplit, for the
// count sub-query. Result must have been called first.
func (bm *BoundedMean) ComputeConfidenceInterval(alpha float64) (noise.ConfidenceInterval, error) {
	return bm.ComputeConfidenceIntervalWithSplit(alpha, alpha/2)
}

// ComputeConfidenceIntervalWithSplit returns an interval that contains the
// raw mean with probability at least 1-alpha, using alphaSum of the
// significance level for the sum sub-query and the remainder, rescaled, for
// the count sub-query. Result must have been called first.
func (bm *BoundedMean) ComputeConfidenceIntervalWithSplit(alpha, alphaSum float64) (noise.ConfidenceInterval, error) {
	if bm.state != resultReturned {
		return noise.ConfidenceInterval{}, &ResultNotYetComputedError{}
	}
	if err := checks.CheckAlpha(alpha); err != nil {
		return noise.ConfidenceInterval{}, &InvalidParameterError{Field: "alpha", Reason: err.Error()}
	}
	if err := checks.CheckAlpha(alphaSum); err != nil {
		return noise.ConfidenceInterval{}, &InvalidParameterError{Field: "alphaSum", Reason: err.Error()}
	}
	if alphaSum >= alpha {
		return noise.ConfidenceInterval{}, &InvalidParameterError{Field: "alphaSum", Reason: "must be strictly less than alpha"}
	}
	alphaCount := (alpha - alphaSum) / (1 - alphaSum)

	sumCI, err := bm.sum.computeConfidenceInterval(bm.noisedSum, alphaSum)
	if err != nil {
		return noise.ConfidenceInterval{}, err
	}
	countCI, err := bm.count.computeConfidenceInterval(bm.noisedCount, alphaCount)
	if err != nil {
		return noise.ConfidenceInterval{}, err
	}

	lower, upper := composeMeanConfidenceInterval(sumCI, countCI)
	lower = clampFloat64(lower+bm.midpoint, bm.lower, bm.upper)
	upper = clampFloat64(upper+bm.midpoint, bm.lower, bm.upper)
	if lower > upper {
		lower, upper = upper, lower
	}
	return noise.ConfidenceInterval{LowerBound: lower, UpperBound: upper}, nil
}

// composeMeanConfidenceInterval derives the interval for sum/count from the
// independently noised confidence intervals of the sum and the count,
// treating the ratio as monotone on each of the sign cases of the numerator
// interval. The count's lower bound is floored at 1 so that dividing by it
// never blows up or flips the sign of the result.
func composeMeanConfidenceInterval(sumCI noise.ConfidenceInterval, countCI noise.ConfidenceInterval) (lower, upper float64) {
	cL := math.Max(countCI.LowerBound, 1)
	cU := math.Max(countCI.UpperBound, cL)
	sL, sU := sumCI.LowerBound, sumCI.UpperBound

	switch {
	case sL >= 0:
		// Both bounds nonnegative: dividing by a larger denominator shrinks
		// the ratio, so the extremes pair the largest denominator with the
		// smallest numerator and vice versa.
		lower = sL / cU
		upper = sU / cL
	case sU <= 0:
		// Both bounds nonpositive: the most negative ratio comes from the
		// most negative numerator divided by the smallest denominator.
		lower = sL / cL
		upper = sU / cU
	default:
		// The numerator interval straddles zero: the extremes are always
		// achieved at the smallest denominator, in either direction.
		lower = sL / cL
		upper = sU / cL
	}
	return lower, upper
}

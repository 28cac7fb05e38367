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

// Package checks contains parameter validators shared by the noise
// mechanisms and the aggregators built on top of them.
package checks

import (
	"fmt"
	"math"

	log "github.com/golang/glog"
)

// CheckEpsilonVeryStrict returns an error if epsilon is +Inf or less than 2^-50.
func CheckEpsilonVeryStrict(epsilon float64) error {
	if epsilon < math.Exp2(-50.0) || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("epsilon is %f, must be at least 2^-50 and finite", epsilon)
	}
	return nil
}

// CheckEpsilonStrict returns an error if epsilon is nonpositive or +Inf.
func CheckEpsilonStrict(epsilon float64) error {
	if epsilon <= 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("epsilon is %f, must be strictly positive and finite", epsilon)
	}
	return nil
}

// CheckEpsilon returns an error if epsilon is strictly negative or +Inf.
func CheckEpsilon(epsilon float64) error {
	if epsilon < 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("epsilon is %f, must be nonnegative and finite", epsilon)
	}
	return nil
}

// CheckDeltaStrict returns an error if delta is nonpositive or greater than or equal to 1.
func CheckDeltaStrict(delta float64) error {
	if math.IsNaN(delta) {
		return fmt.Errorf("delta is %e, cannot be NaN", delta)
	}
	if delta <= 0 {
		return fmt.Errorf("delta is %e, must be strictly positive", delta)
	}
	if delta >= 1 {
		return fmt.Errorf("delta is %e, must be strictly less than 1", delta)
	}
	return nil
}

// CheckNoDelta returns an error if delta is non-zero.
func CheckNoDelta(delta float64) error {
	if delta != 0 {
		return fmt.Errorf("delta is %e, must be 0", delta)
	}
	return nil
}

// CheckL0Sensitivity returns an error if l0Sensitivity is nonpositive.
func CheckL0Sensitivity(l0Sensitivity int64) error {
	if l0Sensitivity <= 0 {
		return fmt.Errorf("L0Sensitivity is %d, must be strictly positive", l0Sensitivity)
	}
	return nil
}

// CheckLInfSensitivity returns an error if lInfSensitivity is nonpositive or +Inf.
func CheckLInfSensitivity(lInfSensitivity float64) error {
	if lInfSensitivity <= 0 || math.IsInf(lInfSensitivity, 0) || math.IsNaN(lInfSensitivity) {
		return fmt.Errorf("LInfSensitivity is %f, must be strictly positive and finite", lInfSensitivity)
	}
	return nil
}

// CheckBoundsFloat64 returns an error if lower is larger than upper, or
// either bound is NaN or infinite.
func CheckBoundsFloat64(lower, upper float64) error {
	if math.IsNaN(lower) {
		return fmt.Errorf("lower bound cannot be NaN")
	}
	if math.IsNaN(upper) {
		return fmt.Errorf("upper bound cannot be NaN")
	}
	if math.IsInf(lower, 0) {
		return fmt.Errorf("lower bound cannot be infinite")
	}
	if math.IsInf(upper, 0) {
		return fmt.Errorf("upper bound cannot be infinite")
	}
	if lower > upper {
		return fmt.Errorf("upper bound (%f) must be larger than lower bound (%f)", upper, lower)
	}
	if lower == upper {
		log.Warningf("lower bound is equal to upper bound: all added elements will be clamped to %f", upper)
	}
	return nil
}

// CheckMaxPartitionsContributed returns an error if maxPartitionsContributed
// is nonpositive.
func CheckMaxPartitionsContributed(maxPartitionsContributed int64) error {
	if maxPartitionsContributed <= 0 {
		return fmt.Errorf("MaxPartitionsContributed (%d) must be set to a positive value", maxPartitionsContributed)
	}
	return nil
}

// CheckMaxContributionsPerPartition returns an error if
// maxContributionsPerPartition is nonpositive.
func CheckMaxContributionsPerPartition(maxContributionsPerPartition int64) error {
	if maxContributionsPerPartition <= 0 {
		return fmt.Errorf("MaxContributionsPerPartition (%d) must be set to a positive value", maxContributionsPerPartition)
	}
	return nil
}

// CheckAlpha returns an error if alpha is not within (0, 1).
func CheckAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return fmt.Errorf("alpha is %f, must be within (0, 1) and finite", alpha)
	}
	return nil
}

// CheckBoundsNotEqual returns an error if lower and upper bounds are equal.
func CheckBoundsNotEqual(lower, upper float64) error {
	if lower == upper {
		return fmt.Errorf("lower and upper bounds are both %f, they cannot be equal to each other", lower)
	}
	return nil
}

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

import "fmt"

// InvalidParameterError is returned by a constructor when one of its options
// fails validation. Field names the offending option.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// AggregatorFinalizedError is returned when Add, Result, or MergeWith is
// called on an aggregator that has already left the open state.
type AggregatorFinalizedError struct {
	Op string
}

func (e *AggregatorFinalizedError) Error() string {
	return fmt.Sprintf("%s: aggregator finalized", e.Op)
}

// ResultNotYetComputedError is returned by ComputeConfidenceInterval when
// Result has not yet been called.
type ResultNotYetComputedError struct{}

func (e *ResultNotYetComputedError) Error() string {
	return "compute result first"
}

// IncompatibleMergeError is returned by MergeWith when the two aggregators'
// parameters do not match bit-for-bit. Field names the first parameter that
// differs, in a fixed, deterministic field order.
type IncompatibleMergeError struct {
	Field string
}

func (e *IncompatibleMergeError) Error() string {
	return fmt.Sprintf("incompatible parameters: %s differs", e.Field)
}

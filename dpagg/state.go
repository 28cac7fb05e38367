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

// aggregationState tracks the lifecycle of an aggregator, preventing the
// same privacy budget from being spent twice. Transitions only ever move
// forward: defaultState can become either resultReturned or serialized, and
// merging only succeeds while still in defaultState.
type aggregationState int

const (
	defaultState aggregationState = iota
	resultReturned
	serialized
)

func (s aggregationState) String() string {
	switch s {
	case defaultState:
		return "open"
	case resultReturned:
		return "result returned"
	case serialized:
		return "serialized"
	default:
		return "unknown"
	}
}

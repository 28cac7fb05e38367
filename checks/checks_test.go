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

package checks

import (
	"math"
	"testing"
)

func TestCheckEpsilonStrict(t *testing.T) {
	tests := []struct {
		epsilon float64
		wantErr bool
	}{
		{1.0, false},
		{0, true},
		{-1.0, true},
		{math.Inf(1), true},
		{math.NaN(), true},
	}
	for _, tc := range tests {
		if err := CheckEpsilonStrict(tc.epsilon); (err != nil) != tc.wantErr {
			t.Errorf("CheckEpsilonStrict(%v) error = %v, wantErr %v", tc.epsilon, err, tc.wantErr)
		}
	}
}

func TestCheckDeltaStrict(t *testing.T) {
	tests := []struct {
		delta   float64
		wantErr bool
	}{
		{0.1, false},
		{0, true},
		{1, true},
		{-0.1, true},
		{math.NaN(), true},
	}
	for _, tc := range tests {
		if err := CheckDeltaStrict(tc.delta); (err != nil) != tc.wantErr {
			t.Errorf("CheckDeltaStrict(%v) error = %v, wantErr %v", tc.delta, err, tc.wantErr)
		}
	}
}

func TestCheckNoDelta(t *testing.T) {
	if err := CheckNoDelta(0); err != nil {
		t.Errorf("CheckNoDelta(0) = %v, want nil", err)
	}
	if err := CheckNoDelta(0.1); err == nil {
		t.Error("CheckNoDelta(0.1) = nil, want error")
	}
}

func TestCheckBoundsFloat64(t *testing.T) {
	tests := []struct {
		lower, upper float64
		wantErr      bool
	}{
		{0, 10, false},
		{5, 5, false},
		{10, 0, true},
		{math.NaN(), 10, true},
		{0, math.Inf(1), true},
	}
	for _, tc := range tests {
		if err := CheckBoundsFloat64(tc.lower, tc.upper); (err != nil) != tc.wantErr {
			t.Errorf("CheckBoundsFloat64(%v, %v) error = %v, wantErr %v", tc.lower, tc.upper, err, tc.wantErr)
		}
	}
}

func TestCheckBoundsNotEqual(t *testing.T) {
	if err := CheckBoundsNotEqual(0, 10); err != nil {
		t.Errorf("CheckBoundsNotEqual(0, 10) = %v, want nil", err)
	}
	if err := CheckBoundsNotEqual(5, 5); err == nil {
		t.Error("CheckBoundsNotEqual(5, 5) = nil, want error")
	}
}

func TestCheckAlpha(t *testing.T) {
	tests := []struct {
		alpha   float64
		wantErr bool
	}{
		{0.05, false},
		{0, true},
		{1, true},
		{-0.1, true},
		{math.Inf(1), true},
	}
	for _, tc := range tests {
		if err := CheckAlpha(tc.alpha); (err != nil) != tc.wantErr {
			t.Errorf("CheckAlpha(%v) error = %v, wantErr %v", tc.alpha, err, tc.wantErr)
		}
	}
}

func TestCheckMaxPartitionsContributed(t *testing.T) {
	if err := CheckMaxPartitionsContributed(1); err != nil {
		t.Errorf("CheckMaxPartitionsContributed(1) = %v, want nil", err)
	}
	if err := CheckMaxPartitionsContributed(0); err == nil {
		t.Error("CheckMaxPartitionsContributed(0) = nil, want error")
	}
}

func TestCheckMaxContributionsPerPartition(t *testing.T) {
	if err := CheckMaxContributionsPerPartition(1); err != nil {
		t.Errorf("CheckMaxContributionsPerPartition(1) = %v, want nil", err)
	}
	if err := CheckMaxContributionsPerPartition(-1); err == nil {
		t.Error("CheckMaxContributionsPerPartition(-1) = nil, want error")
	}
}

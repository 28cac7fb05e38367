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

import "testing"

func TestClampFloat64(t *testing.T) {
	tests := []struct {
		desc             string
		e, lower, upper  float64
		want             float64
	}{
		{"within bounds", 5, 0, 10, 5},
		{"below lower", -5, 0, 10, 0},
		{"above upper", 15, 0, 10, 10},
		{"equal bounds", 5, 5, 5, 5},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			if got := clampFloat64(tc.e, tc.lower, tc.upper); got != tc.want {
				t.Errorf("clampFloat64(%v, %v, %v) = %v, want %v", tc.e, tc.lower, tc.upper, got, tc.want)
			}
		})
	}
}

func TestGetLInf(t *testing.T) {
	got := getLInf(3, 0, 10)
	want := 15.0 // 3 * (10-0)/2
	if got != want {
		t.Errorf("getLInf(3, 0, 10) = %v, want %v", got, want)
	}
}

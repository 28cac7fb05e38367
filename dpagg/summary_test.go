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

func TestBoundedMeanSummaryFieldMismatch_ReportsFirstDifference(t *testing.T) {
	base := boundedMeanSummary{
		Epsilon:                      1,
		Delta:                        0,
		MaxPartitionsContributed:     1,
		MaxContributionsPerPartition: 1,
		Lower:                        0,
		Upper:                        10,
	}

	tests := []struct {
		desc   string
		mutate func(*boundedMeanSummary)
		want   string
	}{
		{"epsilon differs", func(s *boundedMeanSummary) { s.Epsilon = 2 }, "Epsilon"},
		{"delta differs", func(s *boundedMeanSummary) { s.Delta = 0.1 }, "Delta"},
		{"l0 differs", func(s *boundedMeanSummary) { s.MaxPartitionsContributed = 2 }, "MaxPartitionsContributed"},
		{"lInf differs", func(s *boundedMeanSummary) { s.MaxContributionsPerPartition = 2 }, "MaxContributionsPerPartition"},
		{"lower differs", func(s *boundedMeanSummary) { s.Lower = 1 }, "Lower"},
		{"upper differs", func(s *boundedMeanSummary) { s.Upper = 20 }, "Upper"},
		{"noise kind differs", func(s *boundedMeanSummary) { s.NoiseKind = s.NoiseKind + 1 }, "NoiseKind"},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			other := base
			tc.mutate(&other)
			if got := base.fieldMismatch(other); got != tc.want {
				t.Errorf("fieldMismatch() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBoundedMeanSummaryFieldMismatch_IdenticalReturnsEmpty(t *testing.T) {
	s := boundedMeanSummary{Epsilon: 1, Upper: 10}
	if got := s.fieldMismatch(s); got != "" {
		t.Errorf("fieldMismatch() = %q, want empty", got)
	}
}

func TestBoundedMeanSummaryRoundTrip(t *testing.T) {
	bm, err := getNoiselessBM(0, 10)
	if err != nil {
		t.Fatalf("getNoiselessBM: %v", err)
	}
	bm.Add(4)
	data, err := bm.GetSerializableSummary()
	if err != nil {
		t.Fatalf("GetSerializableSummary: %v", err)
	}
	var decoded boundedMeanSummary
	if err := decodeSummary(data, &decoded); err != nil {
		t.Fatalf("decodeSummary: %v", err)
	}
	if decoded.Count != 1 {
		t.Errorf("decoded.Count = %d, want 1", decoded.Count)
	}
}

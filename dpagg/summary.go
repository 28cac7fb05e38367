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
	"bytes"
	"encoding/gob"

	"github.com/edric-shen/differential-privacy/noise"
)

// boundedMeanSummary is the gob-encodable form of a BoundedMean's partial
// state, exchanged between shards of a distributed aggregation. Its fields
// are compared, in order, by fieldMismatch to report the first incompatible
// parameter when two summaries cannot be merged.
type boundedMeanSummary struct {
	Epsilon                      float64
	Delta                        float64
	MaxPartitionsContributed     int64
	MaxContributionsPerPartition int64
	Lower                        float64
	Upper                        float64
	NoiseKind                    noise.Kind

	NormalizedSum float64
	Count         int64
}

func (bm *BoundedMean) toSummary() boundedMeanSummary {
	return boundedMeanSummary{
		Epsilon:                      bm.epsilon,
		Delta:                        bm.delta,
		MaxPartitionsContributed:     bm.l0Sensitivity,
		MaxContributionsPerPartition: bm.lInfSensitivity,
		Lower:                        bm.lower,
		Upper:                        bm.upper,
		NoiseKind:                    bm.noiseKind,
		NormalizedSum:                bm.sum.value,
		Count:                        bm.count.value,
	}
}

// fieldMismatch returns the name of the first field, in declaration order,
// at which s and o differ, or "" if their configurations are bit-for-bit
// identical.
func (s boundedMeanSummary) fieldMismatch(o boundedMeanSummary) string {
	switch {
	case s.Epsilon != o.Epsilon:
		return "Epsilon"
	case s.Delta != o.Delta:
		return "Delta"
	case s.MaxPartitionsContributed != o.MaxPartitionsContributed:
		return "MaxPartitionsContributed"
	case s.MaxContributionsPerPartition != o.MaxContributionsPerPartition:
		return "MaxContributionsPerPartition"
	case s.Lower != o.Lower:
		return "Lower"
	case s.Upper != o.Upper:
		return "Upper"
	case s.NoiseKind != o.NoiseKind:
		return "NoiseKind"
	default:
		return ""
	}
}

// GetSerializableSummary flushes the BoundedMean's running state into an
// opaque, gob-encoded byte string that can be merged into another open
// BoundedMean with the same parameters via MergeWith. It may be called only
// once, and the BoundedMean cannot be used to Add or Result afterwards.
func (bm *BoundedMean) GetSerializableSummary() ([]byte, error) {
	if bm.state != defaultState {
		return nil, &AggregatorFinalizedError{Op: "GetSerializableSummary"}
	}
	bm.state = serialized
	return encodeSummary(bm.toSummary())
}

// MergeWith adds the contributions captured in a serialized summary into bm.
// bm must still be open. summary must have been produced by a BoundedMean
// constructed with identical parameters; otherwise MergeWith fails naming
// the first parameter that differs.
func (bm *BoundedMean) MergeWith(summaryBytes []byte) error {
	if bm.state != defaultState {
		return &AggregatorFinalizedError{Op: "MergeWith"}
	}
	var other boundedMeanSummary
	if err := decodeSummary(summaryBytes, &other); err != nil {
		return err
	}
	mine := bm.toSummary()
	if field := mine.fieldMismatch(other); field != "" {
		return &IncompatibleMergeError{Field: field}
	}
	bm.sum.mergeWith(&boundedSum{value: other.NormalizedSum})
	bm.count.mergeWith(&count{value: other.Count})
	return nil
}

func encodeSummary(v boundedMeanSummary) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSummary(data []byte, v *boundedMeanSummary) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

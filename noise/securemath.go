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
	"math/big"
)

// ceilPowerOfTwo returns the smallest power of two greater than or equal to
// x, computed by bumping x's IEEE-754 exponent bits when its mantissa is
// non-zero.
func ceilPowerOfTwo(x float64) float64 {
	if x <= 0 {
		return 0
	}
	bits := math.Float64bits(x)
	mantissa := bits & 0x000fffffffffffff
	exponent := bits & 0x7ff0000000000000
	if mantissa == 0 {
		return x
	}
	return math.Float64frombits(exponent + (1 << 52))
}

// roundToMultipleOfPowerOfTwo rounds x to the nearest multiple of
// granularity, where granularity is assumed to be a power of two, rounding
// half away from zero.
func roundToMultipleOfPowerOfTwo(x, granularity float64) float64 {
	return math.Round(x/granularity) * granularity
}

// roundToMultiple rounds x to the nearest multiple of m, with ties broken
// toward positive infinity. m must be positive.
func roundToMultiple(x, m int64) int64 {
	if m <= 0 {
		return x
	}
	q := x / m
	r := x % m
	if r == 0 {
		return x
	}
	var floorMultiple int64
	if x >= 0 {
		floorMultiple = q * m
	} else {
		floorMultiple = (q - 1) * m
	}
	upperMultiple := floorMultiple + m
	if upperMultiple-x <= x-floorMultiple {
		return upperMultiple
	}
	return floorMultiple
}

// nextSmallerFloat64 returns the largest float64 less than or equal to n,
// correcting for the precision loss of converting an int64 beyond 2^53 to
// float64.
func nextSmallerFloat64(n int64) float64 {
	f, acc := new(big.Float).SetInt64(n).Float64()
	if acc == big.Above {
		return math.Nextafter(f, math.Inf(-1))
	}
	return f
}

// nextLargerFloat64 returns the smallest float64 greater than or equal to n,
// correcting for the precision loss of converting an int64 beyond 2^53 to
// float64.
func nextLargerFloat64(n int64) float64 {
	f, acc := new(big.Float).SetInt64(n).Float64()
	if acc == big.Below {
		return math.Nextafter(f, math.Inf(1))
	}
	return f
}

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

// Package rand provides cryptographically secure random primitives used by
// the noise mechanisms to sample from crypto/rand rather than math/rand,
// which is not suitable for privacy-sensitive sampling.
package rand

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math"
	mathrand "math/rand"
	"sync"

	log "github.com/golang/glog"
)

var (
	randBufLock sync.Mutex
	// randBuf is the entropy source consumed by U8. It defaults to
	// crypto/rand.Reader; tests reassign it to a fixed byte source to make
	// the derived samples deterministic.
	randBuf io.Reader = rand.Reader

	randBitBufLock sync.Mutex
	randBitBuf     byte
	randBitPos     = 8
)

// U8 returns a cryptographically secure random byte.
func U8() byte {
	randBufLock.Lock()
	defer randBufLock.Unlock()
	var b [1]byte
	if _, err := io.ReadFull(randBuf, b[:]); err != nil {
		log.Fatalf("rand: couldn't read from randBuf: %v", err)
	}
	return b[0]
}

// U64 returns a cryptographically secure random uint64.
func U64() uint64 {
	var buf [8]byte
	for i := range buf {
		buf[i] = U8()
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Sign returns a cryptographically secure random sign, 1 or -1, with equal probability.
func Sign() int {
	if Boolean() {
		return 1
	}
	return -1
}

// Boolean returns a cryptographically secure random boolean, consuming the
// bits of each random byte from most significant to least significant.
func Boolean() bool {
	randBitBufLock.Lock()
	defer randBitBufLock.Unlock()
	if randBitPos >= 8 {
		randBitBuf = U8()
		randBitPos = 0
	}
	bit := (randBitBuf >> (7 - randBitPos)) & 1
	randBitPos++
	return bit == 1
}

// I63n returns a cryptographically secure random integer in [0, n) using
// rejection sampling to avoid modulo bias.
func I63n(n int64) int64 {
	if n <= 0 {
		log.Fatalf("rand.I63n: n must be positive, got %d", n)
	}
	max := uint64(n)
	// Largest multiple of max that fits in 63 bits, used to reject draws
	// that would otherwise introduce modulo bias.
	limit := (uint64(1)<<63)/max*max - 1
	for {
		v := U64() >> 1
		if v <= limit {
			return int64(v % max)
		}
	}
}

// Uniform returns a cryptographically secure random float64 in (0, 1], with
// granularity finer than the default math/rand source provides, built from a
// geometrically distributed number of leading zero bits followed by random
// mantissa bits, exactly as the IEEE-754 uniform sampling scheme requires.
// The bit pattern is bumped by one unit in the last place so that each
// binade is sampled as (low, high] rather than [low, high).
func Uniform() float64 {
	exp := 1022
	for exp > 0 && Boolean() {
		exp--
	}
	mantissa := U64() & ((uint64(1) << 52) - 1)
	bits := ((uint64(exp) << 52) | mantissa) + 1
	return math.Float64frombits(bits)
}

// Geometric returns a cryptographically secure sample from the geometric
// distribution with parameter 1/2, i.e. the number of leading zero bits
// before the first one bit in an infinite random bit stream, plus one.
func Geometric() int64 {
	var result int64 = 1
	for {
		b := U8()
		if b != 0 {
			for i := 7; i >= 0; i-- {
				if (b>>i)&1 == 1 {
					return result + int64(7-i)
				}
			}
		}
		result += 8
	}
}

// randSource adapts the secure byte stream to the math/rand.Source64
// interface so that gonum's distuv.Normal can be driven by it.
type randSource struct{}

func (randSource) Seed(int64) {}

func (randSource) Int63() int64 {
	return int64(U64() >> 1)
}

func (randSource) Uint64() uint64 {
	return U64()
}

// NewSource returns a math/rand.Source64 backed by the secure random stream,
// so statistical samplers that expect a math/rand.Source (e.g. gonum's
// distuv package) draw their entropy from crypto/rand.
func NewSource() mathrand.Source64 {
	return randSource{}
}

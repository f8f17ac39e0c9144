// Package random provides the uniform integer source consumed by the identifier generator.
package random

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// pcgStream is the PCG increment paired with a caller-supplied seed.
const pcgStream uint64 = 0x9e3779b97f4a7c15

// Source is a goroutine-safe uniform integer source backed by a PCG generator.
type Source struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed uint64
}

// New creates a deterministic Source; equal seeds yield equal sequences.
func New(seed uint64) *Source {
	return &Source{
		rng:  rand.New(rand.NewPCG(seed, seed^pcgStream)),
		seed: seed,
	}
}

// NewFromEntropy creates a Source seeded from the runtime's randomly seeded generator.
func NewFromEntropy() *Source {
	return New(rand.Uint64())
}

// Seed returns the seed the source was created with
func (s *Source) Seed() uint64 {
	return s.seed
}

// IntRange returns a uniformly distributed integer in [min, max].
// It panics if max < min.
func (s *Source) IntRange(min, max int64) int64 {
	if max < min {
		panic(fmt.Sprintf("random: invalid range [%d, %d]", min, max))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if min == math.MinInt64 && max == math.MaxInt64 {
		return int64(s.rng.Uint64())
	}
	span := uint64(max-min) + 1
	return min + int64(s.rng.Uint64N(span))
}

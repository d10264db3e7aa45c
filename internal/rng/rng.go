// Package rng provides the single seedable source of randomness used by the
// engine. Nothing in this module reaches for the global math/rand state;
// every shuffle, coin flip, and direction pick draws from an RNG owned by
// the engine so that a fixed seed reproduces a tick byte-for-byte.
package rng

import "math/rand/v2"

// Source is a thin convenience wrapper around math/rand/v2 for deterministic
// seeding and the handful of draws the simulation needs.
type Source struct {
	r *rand.Rand
}

// New creates a deterministic RNG using the provided seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a fair coin flip.
func (s *Source) Bool() bool {
	return s.r.IntN(2) == 1
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Float64 returns a random float64 in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Shuffle performs an in-place Fisher-Yates shuffle of a slice of length n
// using the swap function, matching the semantics of rand.Shuffle.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// ShuffleInts returns a freshly shuffled copy of [0, n).
func (s *Source) ShuffleInts(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	s.r.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx
}

// Source exposes the underlying rand.Rand for callers that need direct
// access (e.g. sort helpers that want a single shared generator).
func (s *Source) Source() *rand.Rand { return s.r }

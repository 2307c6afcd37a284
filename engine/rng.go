package engine

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw, so a trace shows how much
// randomness each stage consumed.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	r.pos++
	return r.src.Intn(sides) + 1
}

// Between returns a random integer in [min, max].
func (r *RNG) Between(min, max int) int {
	if max <= min {
		r.pos++
		return min
	}
	return min + r.Roll(max-min+1) - 1
}

// Pick returns a random index in [0, n). n must be positive.
func (r *RNG) Pick(n int) int {
	return r.Roll(n) - 1
}

// Chance returns true with the given probability in percent.
func (r *RNG) Chance(percent int) bool {
	return r.Roll(100) <= percent
}

// Coin returns true half of the time.
func (r *RNG) Coin() bool {
	return r.Roll(2) == 1
}

// Sample draws k distinct entries from pool without replacement, in draw
// order. The pool is not modified. If k exceeds len(pool), every entry is
// returned.
func (r *RNG) Sample(pool []string, k int) []string {
	work := append([]string(nil), pool...)
	if k > len(work) {
		k = len(work)
	}
	for i := 0; i < k; i++ {
		j := i + r.Pick(len(work)-i)
		work[i], work[j] = work[j], work[i]
	}
	return work[:k]
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

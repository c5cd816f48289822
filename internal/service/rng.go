package service

import (
	"math/rand"
	"sync"
)

// Rand is a seedable bounded-random source shared by the simulators and the
// alert deriver. Draws are mutex-guarded because source adapters run
// concurrently during aggregation. Tests seed it for deterministic output.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand creates a random source from the given seed.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Float64Between returns a uniform draw in [min, max).
func (r *Rand) Float64Between(min, max float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.r.Float64()*(max-min)
}

// IntBetween returns a uniform integer draw in [min, max].
func (r *Rand) IntBetween(min, max int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.r.Intn(max-min+1)
}

// Chance returns true with probability p.
func (r *Rand) Chance(p float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64() < p
}

// Bool returns an unbiased random boolean.
func (r *Rand) Bool() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Intn(2) == 1
}

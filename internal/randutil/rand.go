// Package randutil centralises how seeds become random sources so every
// simulation is reproducible from a single int64.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive mixes a base seed with stream identifiers (worker index, class
// index, opponent count...) into a new seed. Distinct streams give
// statistically independent generators; the same inputs always give the same
// seed.
func Derive(seed int64, streams ...uint64) int64 {
	u := mix(uint64(seed))
	for _, s := range streams {
		u = mix(u ^ mix(s+goldenRatio64))
	}
	return int64(u)
}

// Seed returns a fresh seed from the wall clock for runs that were not given one.
func Seed() int64 {
	return time.Now().UnixNano()
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

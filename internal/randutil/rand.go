package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Bots and simulations all derive their generators here so a seed fully
// determines a run.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed for the n-th independent stream of base. Streams
// for neighbouring n are uncorrelated.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n+1)*goldenRatio64))
}

// TimeSeed returns a seed taken from the wall clock, for runs where the
// caller did not ask for one.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

// Pick returns a uniformly chosen element of items. It panics on an empty slice.
func Pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

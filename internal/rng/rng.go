// Package rng centralizes deterministic random generation for sampling and
// decoding.
//
// Every consumer receives an explicit *rand.Rand handle; there is no
// package-level generator. Batch code derives one stream per instance with
// Derive, which is a pure function of (seed, stream), so results do not
// depend on how work is scheduled across goroutines.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Do not share one across goroutines.
package rng

import "math/rand/v2"

// DefaultSeed is used when callers pass seed==0.
const DefaultSeed uint64 = 1

// golden is the SplitMix64 increment (2^64 / φ).
const golden uint64 = 0x9e3779b97f4a7c15

// New returns a deterministic generator.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func New(seed uint64) *rand.Rand {
	var s = seed
	if s == 0 {
		s = DefaultSeed
	}
	return rand.New(rand.NewPCG(s, Mix(s, 0)))
}

// Mix combines a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer. Small input changes flip about half the bits.
//
// Complexity: O(1).
func Mix(parent, stream uint64) uint64 {
	var x uint64
	x = parent ^ (stream + golden)
	x += golden
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Derive returns the generator for substream `stream` of `seed`.
// Derive(s, i) always yields the same sequence, regardless of how many other
// streams were derived before it.
//
// Complexity: O(1).
func Derive(seed uint64, stream uint64) *rand.Rand {
	var s = seed
	if s == 0 {
		s = DefaultSeed
	}
	var child = Mix(s, stream)
	return rand.New(rand.NewPCG(child, Mix(child, stream)))
}

// Perm returns a permutation of 0..n-1 drawn from r (Fisher–Yates).
// If r==nil the DefaultSeed stream is used. n<=0 yields an empty slice.
//
// Complexity: O(n) time, O(n) space.
func Perm(n int, r *rand.Rand) []int {
	if n <= 0 {
		return []int{}
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	ShuffleInts(p, r)
	return p
}

// ShuffleInts performs an in-place Fisher–Yates shuffle of a.
//
// Complexity: O(n) time, O(1) extra space.
func ShuffleInts(a []int, r *rand.Rand) {
	if len(a) <= 1 {
		return
	}
	if r == nil {
		r = New(0)
	}

	var (
		i int
		j int
	)
	for i = len(a) - 1; i > 0; i-- {
		j = r.IntN(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Package tsp_test provides lightweight helpers shared across *_test.go files.
package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspnet/geom"
	"github.com/katalvlaran/tspnet/sampler"
	"github.com/katalvlaran/tspnet/tsp"
)

const (
	// relTol is the agreement bound between the two evaluators.
	relTol = 1e-5

	// costTol absorbs the 1e-9 rounding applied to solver costs.
	costTol = 1e-8
)

// square4 is the 4-city instance whose optimum is exactly 12.
var square4 = geom.Instance{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: -3}}

// randomInstance draws n cities from a fixed seed.
func randomInstance(t testing.TB, seed uint64, n int) geom.Instance {
	t.Helper()
	inst, err := sampler.New(seed).Instance(n)
	require.NoError(t, err)
	return inst
}

// bruteForce enumerates every tour starting at 0 and returns the minimum length.
func bruteForce(t testing.TB, inst geom.Instance) float64 {
	t.Helper()
	n := len(inst)
	rest := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		rest = append(rest, i)
	}
	best := math.Inf(1)
	permute(rest, 0, func(p []int) {
		tour := append([]int{0}, p...)
		c, err := tsp.TourLength(inst, tour)
		require.NoError(t, err)
		if c < best {
			best = c
		}
	})
	return best
}

// permute calls visit for every permutation of a[k:], in place.
func permute(a []int, k int, visit func([]int)) {
	if k == len(a) {
		visit(a)
		return
	}
	for i := k; i < len(a); i++ {
		a[k], a[i] = a[i], a[k]
		permute(a, k+1, visit)
		a[k], a[i] = a[i], a[k]
	}
}

// relDiff is |a-b| / max(|a|, |b|, 1).
func relDiff(a, b float64) float64 {
	return math.Abs(a-b) / math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

package ptrnet_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspnet/geom"
	"github.com/katalvlaran/tspnet/internal/rng"
	"github.com/katalvlaran/tspnet/ptrnet"
	"github.com/katalvlaran/tspnet/sampler"
)

// probTol bounds |Σ p − 1| over feasible cities.
const probTol = 1e-9

var defaultHyper = ptrnet.Hyper{ClipLogits: 10, SoftmaxTemperature: 1, Glimpses: 1}

// newParams draws small random parameters from seed.
func newParams(t testing.TB, seed uint64, embed, hidden int) *ptrnet.Parameters {
	t.Helper()
	p, err := ptrnet.NewParameters(ptrnet.Dims{Embed: embed, Hidden: hidden}, defaultHyper, -0.08, 0.08, rng.New(seed))
	require.NoError(t, err)
	return p
}

// zeroParams returns parameters whose every weight is 0, so every attention
// score is 0 and each step's distribution is uniform over unvisited cities.
func zeroParams(t testing.TB, embed, hidden int) *ptrnet.Parameters {
	t.Helper()
	p, err := ptrnet.NewParameters(ptrnet.Dims{Embed: embed, Hidden: hidden}, defaultHyper, 0, 0, rng.New(1))
	require.NoError(t, err)
	return p
}

func instance(t testing.TB, seed uint64, n int) geom.Instance {
	t.Helper()
	inst, err := sampler.New(seed).Instance(n)
	require.NoError(t, err)
	return inst
}

// requirePermutation asserts tour is a permutation of [0,n).
func requirePermutation(t testing.TB, tour []int, n int) {
	t.Helper()
	require.Len(t, tour, n)
	seen := make([]bool, n)
	for _, c := range tour {
		require.True(t, c >= 0 && c < n, "city %d out of range", c)
		require.False(t, seen[c], "city %d repeated", c)
		seen[c] = true
	}
}

// logFactorial returns log(n!).
func logFactorial(n int) float64 {
	lg, _ := math.Lgamma(float64(n + 1))
	return lg
}

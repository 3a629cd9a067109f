package tsp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspnet/geom"
	"github.com/katalvlaran/tspnet/sampler"
	"github.com/katalvlaran/tspnet/tsp"
)

func TestSolveBatch(t *testing.T) {
	b, err := sampler.New(6).Batch(5, 7)
	require.NoError(t, err)
	res, err := tsp.SolveBatch(context.Background(), b, tsp.WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, res, 5)
	for i := range b {
		single, err := tsp.SolveExactInstance(context.Background(), b[i])
		require.NoError(t, err)
		require.Equal(t, single, res[i])
	}
}

func TestSolveBatch_PropagatesError(t *testing.T) {
	b := geom.Batch{{{X: 0, Y: 0}}, {{X: 1, Y: 1}}}
	_, err := tsp.SolveBatch(context.Background(), b)
	require.ErrorIs(t, err, tsp.ErrTooFewCities)

	_, err = tsp.SolveBatch(context.Background(), geom.Batch{{{X: 0, Y: 0}}, {}})
	require.ErrorIs(t, err, geom.ErrRaggedBatch)
}

func TestEvaluateBatch(t *testing.T) {
	s := sampler.New(10)
	b, err := s.Batch(8, 15)
	require.NoError(t, err)
	tours, err := s.RandomTours(8, 15)
	require.NoError(t, err)

	ref, err := tsp.EvaluateBatch(context.Background(), b, tours, false)
	require.NoError(t, err)
	fast, err := tsp.EvaluateBatch(context.Background(), b, tours, true, tsp.WithWorkers(2))
	require.NoError(t, err)
	for i := range ref {
		require.LessOrEqual(t, relDiff(ref[i], fast[i]), relTol)
	}

	_, err = tsp.EvaluateBatch(context.Background(), b, tours[:3], true)
	require.ErrorIs(t, err, tsp.ErrLengthMismatch)

	tours[2] = []int{0, 0}
	_, err = tsp.EvaluateBatch(context.Background(), b, tours, false)
	require.ErrorIs(t, err, tsp.ErrInvalidTour)
}

package tsp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspnet/geom"
	"github.com/katalvlaran/tspnet/sampler"
	"github.com/katalvlaran/tspnet/tsp"
)

func TestRectify_RoundTrip(t *testing.T) {
	s := sampler.New(31)
	b, err := s.Batch(6, 9)
	require.NoError(t, err)
	shuffled, _ := s.Shuffle(b)

	for i := range b {
		tour, err := s.RandomTour(9)
		require.NoError(t, err)

		got, err := tsp.Rectify(tour, shuffled[i], b[i])
		require.NoError(t, err)
		require.NoError(t, tsp.ValidateTour(got, 9))

		// Coordinates read in rectified order equal those of the shuffled tour.
		for p := range tour {
			require.Equal(t, shuffled[i][tour[p]], b[i][got[p]])
		}

		// Same cycle, so same length.
		l1, err := tsp.TourLength(shuffled[i], tour)
		require.NoError(t, err)
		l2, err := tsp.TourLength(b[i], got)
		require.NoError(t, err)
		require.InDelta(t, l1, l2, 1e-12)
	}
}

func TestRectify_ExactSolutionSurvivesShuffle(t *testing.T) {
	s := sampler.New(8)
	b, err := s.Batch(3, 7)
	require.NoError(t, err)
	shuffled, _ := s.Shuffle(b)

	for i := range b {
		want, err := tsp.SolveExactInstance(context.Background(), b[i])
		require.NoError(t, err)
		onShuffled, err := tsp.SolveExactInstance(context.Background(), shuffled[i])
		require.NoError(t, err)

		back, err := tsp.Rectify(onShuffled.Tour, shuffled[i], b[i])
		require.NoError(t, err)
		c, err := tsp.TourLength(b[i], back)
		require.NoError(t, err)
		require.InDelta(t, want.Cost, c, costTol)
	}
}

func TestRectify_DuplicateCoordinates(t *testing.T) {
	inst := geom.Instance{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 1}}
	_, err := tsp.Rectify([]int{0, 1, 2}, inst, inst)
	require.ErrorIs(t, err, tsp.ErrAmbiguousMatch)
}

func TestRectify_MissingCoordinate(t *testing.T) {
	canonical := geom.Instance{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	shuffled := geom.Instance{{X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 1e-12}}
	_, err := tsp.Rectify([]int{0, 1, 2}, shuffled, canonical)
	require.ErrorIs(t, err, tsp.ErrAmbiguousMatch)

	// An explicit tolerance absorbs the perturbation.
	got, err := tsp.Rectify([]int{0, 1, 2}, shuffled, canonical, tsp.WithMatchTolerance(1e-9))
	require.NoError(t, err)
	require.Equal(t, []int{2, 0, 1}, got)
}

func TestRectify_ToleranceCollision(t *testing.T) {
	// Both shuffled (0,0) and (1e-4,0) fall within tolerance of canonical city 0 only.
	canonical := geom.Instance{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 5, Y: 5}}
	shuffled := geom.Instance{{X: 0, Y: 0}, {X: 1e-4, Y: 0}, {X: 5, Y: 5}}
	_, err := tsp.Rectify([]int{0, 1, 2}, shuffled, canonical, tsp.WithMatchTolerance(1e-2))
	require.ErrorIs(t, err, tsp.ErrAmbiguousMatch)
	require.ErrorIs(t, err, tsp.ErrInvalidTour)
}

func TestRectify_ShapeErrors(t *testing.T) {
	a := geom.Instance{{X: 0, Y: 0}, {X: 1, Y: 0}}
	b := geom.Instance{{X: 0, Y: 0}}
	_, err := tsp.Rectify([]int{0, 1}, a, b)
	require.ErrorIs(t, err, tsp.ErrLengthMismatch)

	_, err = tsp.Rectify([]int{0, 0}, a, a)
	require.ErrorIs(t, err, tsp.ErrInvalidTour)

	require.Panics(t, func() { tsp.WithMatchTolerance(-1) })
}

func TestRectifyBatch_IsolatesFailures(t *testing.T) {
	good := geom.Instance{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	dup := geom.Instance{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 1}}
	out, err := tsp.RectifyBatch(
		[][]int{{2, 1, 0}, {0, 1, 2}},
		geom.Batch{good, dup},
		geom.Batch{good, dup},
	)
	require.ErrorIs(t, err, tsp.ErrAmbiguousMatch)
	require.Contains(t, err.Error(), "instance 1")
	require.Equal(t, []int{2, 1, 0}, out[0])
	require.Nil(t, out[1])

	_, err = tsp.RectifyBatch([][]int{{0}}, geom.Batch{}, geom.Batch{})
	require.ErrorIs(t, err, tsp.ErrLengthMismatch)
}

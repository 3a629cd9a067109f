package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspnet/geom"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, geom.Distance(geom.Point{0, 0}, geom.Point{3, 4}))
	assert.Equal(t, 0.0, geom.Distance(geom.Point{1, 1}, geom.Point{1, 1}))
	assert.Equal(t, geom.Distance(geom.Point{2, 7}, geom.Point{-1, 3}),
		geom.Distance(geom.Point{-1, 3}, geom.Point{2, 7}))
}

func TestDistanceMatrix(t *testing.T) {
	inst := geom.Instance{{0, 0}, {1, 0}, {4, 0}, {0, -3}}
	d := geom.DistanceMatrix(inst)
	n, _ := d.Dims()
	require.Equal(t, 4, n)
	for i := 0; i < n; i++ {
		require.Equal(t, 0.0, d.At(i, i))
		for j := 0; j < n; j++ {
			require.Equal(t, d.At(i, j), d.At(j, i))
			require.InDelta(t, geom.Distance(inst[i], inst[j]), d.At(i, j), 1e-12)
		}
	}
	require.Equal(t, 5.0, d.At(2, 3))
}

func TestInstanceValidate(t *testing.T) {
	require.ErrorIs(t, geom.Instance{}.Validate(), geom.ErrEmptyInstance)
	require.ErrorIs(t, geom.Instance{{0, math.NaN()}}.Validate(), geom.ErrNonFinite)
	require.ErrorIs(t, geom.Instance{{math.Inf(1), 0}}.Validate(), geom.ErrNonFinite)
	require.NoError(t, geom.Instance{{0.5, 0.5}}.Validate())
}

func TestInstancePermuteAndCoords(t *testing.T) {
	inst := geom.Instance{{0, 1}, {2, 3}, {4, 5}}
	p := inst.Permute([]int{2, 0, 1})
	require.Equal(t, geom.Instance{{4, 5}, {0, 1}, {2, 3}}, p)

	c := inst.Coords()
	r, cols := c.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, cols)
	require.Equal(t, 4.0, c.At(2, 0))
	require.Equal(t, 5.0, c.At(2, 1))

	clone := inst.Clone()
	clone[0].X = 99
	require.Equal(t, 0.0, inst[0].X)
}

func TestBatchCities(t *testing.T) {
	n, err := geom.Batch{}.Cities()
	require.NoError(t, err)
	require.Equal(t, 0, n)

	n, err = geom.Batch{{{0, 0}, {1, 1}}, {{2, 2}, {3, 3}}}.Cities()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = geom.Batch{{{0, 0}}, {{2, 2}, {3, 3}}}.Cities()
	require.ErrorIs(t, err, geom.ErrRaggedBatch)
}

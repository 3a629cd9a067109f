package ptrnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLSTMStep_ZeroWeights(t *testing.T) {
	const h = 3
	l := LSTMWeights{
		Input:     mat.NewDense(numGates*h, 2, nil),
		Recurrent: mat.NewDense(numGates*h, h, nil),
		Bias:      mat.NewVecDense(numGates*h, nil),
	}
	c := mat.NewVecDense(h, []float64{2, -1, 0})
	hNew, cNew := l.step(mat.NewVecDense(2, []float64{5, 7}), mat.NewVecDense(h, nil), c)

	// All gates are σ(0) = ½ and the candidate is tanh(0) = 0.
	for j := 0; j < h; j++ {
		require.InDelta(t, 0.5*c.AtVec(j), cNew.AtVec(j), 1e-15)
		require.InDelta(t, 0.5*math.Tanh(0.5*c.AtVec(j)), hNew.AtVec(j), 1e-15)
	}
	require.Equal(t, []float64{2, -1, 0}, c.RawVector().Data)
}

func TestLSTMStep_GateOrder(t *testing.T) {
	const h = 1
	// Only the forget block (rows 2h..3h) is saturated open; input gate stays ½
	// with candidate tanh(1) from the cell block bias.
	bias := mat.NewVecDense(numGates*h, []float64{0, 0, 50, 1})
	l := LSTMWeights{
		Input:     mat.NewDense(numGates*h, 1, nil),
		Recurrent: mat.NewDense(numGates*h, h, nil),
		Bias:      bias,
	}
	_, cNew := l.step(mat.NewVecDense(1, []float64{0}), mat.NewVecDense(h, nil), mat.NewVecDense(h, []float64{3}))
	require.InDelta(t, 3+0.5*math.Tanh(1), cNew.AtVec(0), 1e-12)
}

func TestSoftmaxInPlace(t *testing.T) {
	s := []float64{1, 100, 1}
	visited := []bool{false, true, false}
	require.NoError(t, softmaxInPlace(s, visited, 2))
	require.Equal(t, []float64{0.5, 0, 0.5}, s)

	s = []float64{0, math.Log(3)}
	require.NoError(t, softmaxInPlace(s, []bool{false, false}, 1))
	require.InDelta(t, 0.25, s[0], 1e-12)
	require.InDelta(t, 0.75, s[1], 1e-12)

	// Temperature 2 halves the score gap: weights 3^(-1/2) and 1.
	s = []float64{0, math.Log(3)}
	require.NoError(t, softmaxInPlace(s, []bool{false, false}, 2))
	require.InDelta(t, 1/(1+math.Sqrt(3)), s[0], 1e-12)
	require.InDelta(t, math.Sqrt(3)/(1+math.Sqrt(3)), s[1], 1e-12)

	require.ErrorIs(t, softmaxInPlace([]float64{0}, []bool{true}, 1), ErrNumericInstability)
}

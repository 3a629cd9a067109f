package ptrnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// step advances the layer by one input x from state (h, c) and returns the
// new state; h and c are not modified.
//
//	[i; o; f; ĉ] = Input·x + Recurrent·h + Bias
//	c' = σ(f)⊙c + σ(i)⊙tanh(ĉ)
//	h' = σ(o)⊙tanh(c')
func (l *LSTMWeights) step(x mat.Vector, h, c *mat.VecDense) (*mat.VecDense, *mat.VecDense) {
	hidden := h.Len()
	gates := mat.NewVecDense(numGates*hidden, nil)
	gates.MulVec(l.Input, x)
	var rec mat.VecDense
	rec.MulVec(l.Recurrent, h)
	gates.AddVec(gates, &rec)
	gates.AddVec(gates, l.Bias)

	var (
		g    = gates.RawVector().Data
		hNew = mat.NewVecDense(hidden, nil)
		cNew = mat.NewVecDense(hidden, nil)
		cv   float64
	)
	for j := 0; j < hidden; j++ {
		cv = sigmoid(g[2*hidden+j])*c.AtVec(j) + sigmoid(g[j])*math.Tanh(g[3*hidden+j])
		cNew.SetVec(j, cv)
		hNew.SetVec(j, sigmoid(g[hidden+j])*math.Tanh(cv))
	}
	return hNew, cNew
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// vecData copies v into a fresh contiguous slice.
func vecData(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

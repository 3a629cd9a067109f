package ptrnet

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// attention scores the N memory rows against a query with one weight set.
// The memory projection does not depend on the query, so it is computed once
// per decode instead of once per step.
type attention struct {
	w       *AttentionWeights
	proj    *mat.Dense // N×H: Memory·m_i + MemoryBias
	combine []float64
	qBias   []float64
	clip    float64   // 0 ⇒ plain tanh (glimpse); >0 ⇒ clip·tanh (pointer)
	u       []float64 // scratch, H
}

func newAttention(w *AttentionWeights, memory *mat.Dense, clip float64) *attention {
	n, h := memory.Dims()
	proj := mat.NewDense(n, h, nil)
	proj.Mul(memory, w.Memory.T())
	bias := vecData(w.MemoryBias)
	for i := 0; i < n; i++ {
		floats.Add(proj.RawRowView(i), bias)
	}
	return &attention{
		w:       w,
		proj:    proj,
		combine: vecData(w.Combine),
		qBias:   vecData(w.QueryBias),
		clip:    clip,
		u:       make([]float64, h),
	}
}

// scores writes the score of every feasible city into out and −Inf for
// excluded ones.
func (a *attention) scores(query *mat.VecDense, visited []bool, out []float64) error {
	var q mat.VecDense
	q.MulVec(a.w.Query, query)
	qd := q.RawVector().Data
	floats.Add(qd, a.qBias)

	var s float64
	for i := range out {
		if visited[i] {
			out[i] = math.Inf(-1)
			continue
		}
		floats.AddTo(a.u, qd, a.proj.RawRowView(i))
		for j, x := range a.u {
			a.u[j] = math.Tanh(x)
		}
		if a.clip > 0 {
			floats.Scale(a.clip, a.u)
		}
		s = floats.Dot(a.combine, a.u)
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return errors.Wrapf(ErrNumericInstability, "score of city %d is %v", i, s)
		}
		out[i] = s
	}
	return nil
}

// glimpse returns the refined query Σ_i softmax(score/T)_i · proj_i.
// scratch must have length N.
func (a *attention) glimpse(query *mat.VecDense, visited []bool, temperature float64, scratch []float64) (*mat.VecDense, error) {
	if err := a.scores(query, visited, scratch); err != nil {
		return nil, err
	}
	if err := softmaxInPlace(scratch, visited, temperature); err != nil {
		return nil, err
	}
	_, h := a.proj.Dims()
	out := mat.NewVecDense(h, nil)
	out.MulVec(a.proj.T(), mat.NewVecDense(len(scratch), scratch))
	return out, nil
}

// logProbs returns log-softmax(scores): feasible entries sum to 1 in
// probability space, excluded entries are −Inf.
func (a *attention) logProbs(query *mat.VecDense, visited []bool) ([]float64, error) {
	out := make([]float64, len(visited))
	if err := a.scores(query, visited, out); err != nil {
		return nil, err
	}
	lse := floats.LogSumExp(out)
	if math.IsNaN(lse) || math.IsInf(lse, 0) {
		return nil, errors.Wrapf(ErrNumericInstability, "log-normalizer is %v", lse)
	}
	floats.AddConst(-lse, out)
	return out, nil
}

// softmaxInPlace replaces feasible scores by softmax(score/T) and excluded
// ones by 0.
func softmaxInPlace(s []float64, visited []bool, temperature float64) error {
	maxScore := math.Inf(-1)
	for i, v := range s {
		if !visited[i] && v > maxScore {
			maxScore = v
		}
	}
	var sum float64
	for i, v := range s {
		if visited[i] {
			s[i] = 0
			continue
		}
		s[i] = math.Exp((v - maxScore) / temperature)
		sum += s[i]
	}
	if !(sum > 0) || math.IsInf(sum, 0) {
		return errors.Wrapf(ErrNumericInstability, "softmax normalizer is %v", sum)
	}
	floats.Scale(1/sum, s)
	return nil
}

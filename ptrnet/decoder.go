package ptrnet

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/tspnet/geom"
)

// Result is the outcome of decoding one instance.
type Result struct {
	// Tour lists city indices in visiting order; it is a permutation of [0,N).
	Tour []int

	// LogLikelihood is Σ_t LogProbs[t][Tour[t]].
	LogLikelihood float64

	// LogProbs[t] is the pointer log-distribution of step t over all N cities;
	// cities visited before step t hold −Inf.
	LogProbs [][]float64
}

// Decode encodes inst and emits one city per step until every city is
// visited. sel chooses each city from the pointer log-probabilities; r is
// passed to sel and may be nil for Greedy.
//
// Contract:
//   - p must pass Validate; inst must be non-empty with finite coordinates.
//   - Visited cities are excluded before the softmax, so Tour is always a
//     permutation. A selector returning a visited or out-of-range index is an
//     invariant violation reported as ErrVisitedSelection.
//   - NaN or ±Inf scores on feasible cities yield ErrNumericInstability.
//
// Complexity: O(N²·H·(Glimpses+1) + N·H·(E+H)) time, O(N·(N+H+E)) memory.
func Decode(p *Parameters, inst geom.Instance, sel Selector, r *rand.Rand) (Result, error) {
	if sel == nil {
		return Result{}, errors.Wrap(ErrUnknownPolicy, "nil selector")
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if err := inst.Validate(); err != nil {
		return Result{}, err
	}
	return decode(p, inst, sel, r)
}

// decode assumes p, inst and sel were validated.
func decode(p *Parameters, inst geom.Instance, sel Selector, r *rand.Rand) (Result, error) {
	var (
		n       = len(inst)
		enc     = encode(p, inst)
		glimpse = newAttention(&p.Glimpse, enc.Memory, 0)
		pointer = newAttention(&p.Pointer, enc.Memory, p.Hyper.ClipLogits)
		visited = make([]bool, n)
		scratch = make([]float64, n)
		h, c    = enc.Hidden, enc.Cell
		query   *mat.VecDense
		logp    []float64
		k       int
		err     error
	)
	var x mat.Vector = p.DecoderStart
	res := Result{
		Tour:     make([]int, 0, n),
		LogProbs: make([][]float64, 0, n),
	}

	for t := 0; t < n; t++ {
		h, c = p.Decoder.step(x, h, c)

		query = h
		for g := 0; g < p.Hyper.Glimpses; g++ {
			if query, err = glimpse.glimpse(query, visited, p.Hyper.SoftmaxTemperature, scratch); err != nil {
				return Result{}, errors.WithMessagef(err, "step %d glimpse %d", t, g)
			}
		}
		if logp, err = pointer.logProbs(query, visited); err != nil {
			return Result{}, errors.WithMessagef(err, "step %d pointer", t)
		}

		if k, err = sel.Select(logp, r); err != nil {
			return Result{}, errors.WithMessagef(err, "step %d %s selection", t, sel)
		}
		if k < 0 || k >= n || visited[k] {
			return Result{}, errors.Wrapf(ErrVisitedSelection, "step %d: %s returned city %d", t, sel, k)
		}

		visited[k] = true
		res.Tour = append(res.Tour, k)
		res.LogProbs = append(res.LogProbs, logp)
		res.LogLikelihood += logp[k]
		x = enc.Embedded.RowView(k)
	}

	if klog.V(2).Enabled() {
		klog.Infof("ptrnet: decoded %d cities (%s) log-likelihood=%.6f", n, sel, res.LogLikelihood)
	}
	return res, nil
}

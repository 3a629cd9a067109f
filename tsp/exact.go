package tsp

import (
	"context"
	"math"
	"math/bits"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/tspnet/geom"
)

// noNext marks a DP state without a successor (remaining set is empty).
const noNext int8 = -1

// SolveExact solves the symmetric TSP exactly with Held–Karp dynamic
// programming and returns an optimal tour starting at city 0.
//
// Formulation (city 0 is the fixed start, valid since cost is rotation-invariant):
//
//	state (j, S): currently at city j ≠ 0, S ⊆ {1..n-1}\{j} still to visit,
//	              then return to 0.
//	value(j, ∅) = d(j, 0)                     path [j]
//	value(j, S) = min_{k∈S} d(j,k) + value(k, S\{k})
//	                                           path [j] + path(k, S\{k})
//	answer      = min_j d(0,j) + value(j, {1..n-1}\{j}),  tour [0] + path(j, …)
//
// Subsets are bitmasks over cities 1..n-1 (bit k-1 ⇔ city k) and are processed
// in layers of increasing size 0..n-2. Layer m only reads layer m-1, so the
// states of one layer are computed concurrently (one task per city j, bounded
// by WithWorkers); layers stay sequential.
//
// Tie-break (reproducible): masks ascending numerically inside a layer,
// candidates k ascending by index, final j ascending; a strictly smaller
// value replaces the incumbent, so the first minimum encountered wins.
//
// Guards:
//   - n < 2  ⇒ ErrTooFewCities (before any allocation),
//   - n > WithMaxCities (default 16) ⇒ ErrTooManyCities,
//   - ctx is checked between layers and periodically inside each task.
//
// Time complexity:   O(n² · 2ⁿ)
// Memory complexity: O(n · 2ⁿ)
func SolveExact(ctx context.Context, dist mat.Symmetric, opts ...Option) (Result, error) {
	o := gatherOptions(opts)

	// --- 1. Validate input matrix and ceiling ---
	n, err := validateDistMatrix(dist)
	if err != nil {
		return Result{}, err
	}
	if n > o.maxCities {
		return Result{}, errors.Wrapf(ErrTooManyCities, "n=%d exceeds limit %d", n, o.maxCities)
	}
	w := prefetch(dist, n)

	// --- 2. Allocate DP tables indexed [(j-1)*full + S] ---
	var (
		m    = n - 1 // number of non-start cities
		full = 1 << m
	)
	value := make([]float64, m*full)
	next := make([]int8, m*full)
	for i := range value {
		value[i] = math.Inf(1)
		next[i] = noNext
	}

	// Base case: (j, ∅) returns straight to 0.
	var j int
	for j = 1; j < n; j++ {
		value[(j-1)*full] = w[j*n]
	}

	// --- 3. Fill layers of increasing subset size ---
	layers := masksBySize(m)
	var size int
	for size = 1; size <= n-2; size++ {
		if err = ctx.Err(); err != nil {
			return Result{}, errors.Wrapf(err, "tsp: exact solve cancelled at layer %d/%d", size, n-2)
		}
		if err = fillLayer(ctx, o.workers, w, n, full, layers[size], value, next); err != nil {
			return Result{}, err
		}
	}

	// --- 4. Close the tour from 0 ---
	var (
		allMask  = full - 1
		bestCost = math.Inf(1)
		first    = -1
		rest     int
		cand     float64
	)
	for j = 1; j < n; j++ {
		rest = allMask &^ (1 << (j - 1))
		cand = w[j] + value[(j-1)*full+rest]
		if cand < bestCost {
			bestCost = cand
			first = j
		}
	}

	// --- 5. Reconstruct tour following successors ---
	tour := make([]int, 0, n)
	tour = append(tour, 0)
	var (
		cur = first
		set = allMask &^ (1 << (first - 1))
		k   int
	)
	for {
		tour = append(tour, cur)
		if set == 0 {
			break
		}
		k = int(next[(cur-1)*full+set])
		set &^= 1 << (k - 1)
		cur = k
	}

	klog.V(2).Infof("tsp: exact n=%d cost=%.6f tour=%v", n, bestCost, tour)
	return Result{Tour: tour, Cost: round1e9(bestCost)}, nil
}

// SolveExactInstance builds the Euclidean distance matrix of inst and runs
// SolveExact on it.
func SolveExactInstance(ctx context.Context, inst geom.Instance, opts ...Option) (Result, error) {
	if len(inst) < 2 {
		return Result{}, errors.Wrapf(ErrTooFewCities, "n=%d", len(inst))
	}
	if err := inst.Validate(); err != nil {
		return Result{}, err
	}
	return SolveExact(ctx, geom.DistanceMatrix(inst), opts...)
}

// fillLayer computes every state (j, S) with |S| == len(bits of masks[i]).
// Each task owns the table row of one j, so tasks never write the same cell;
// reads touch only the previous layer, which is complete before the call.
func fillLayer(ctx context.Context, workers int, w []float64, n, full int, masks []int, value []float64, next []int8) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for j := 1; j < n; j++ {
		g.Go(func() error {
			var (
				jBit = 1 << (j - 1)
				row  = (j - 1) * full
				best float64
				arg  int
				cand float64
				k    int
				s    int
				rest int
			)
			for idx, mask := range masks {
				if mask&jBit != 0 {
					continue // j cannot be both current and remaining
				}
				if idx&1023 == 1023 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				best = math.Inf(1)
				arg = -1
				// Ascending k: iterate set bits from least significant.
				for s = mask; s != 0; s &= s - 1 {
					k = bits.TrailingZeros(uint(s)) + 1
					rest = mask &^ (1 << (k - 1))
					cand = w[j*n+k] + value[(k-1)*full+rest]
					if cand < best {
						best = cand
						arg = k
					}
				}
				value[row+mask] = best
				next[row+mask] = int8(arg)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "tsp: exact solve cancelled")
	}
	return nil
}

// masksBySize groups every subset of m bits by population count; each group
// is in ascending numeric order.
//
// Complexity: O(2ᵐ).
func masksBySize(m int) [][]int {
	layers := make([][]int, m+1)
	for mask := 0; mask < 1<<m; mask++ {
		c := bits.OnesCount(uint(mask))
		layers[c] = append(layers[c], mask)
	}
	return layers
}

// Package tsp - tour length evaluation.
//
// Two equivalent algorithms are provided:
//   - TourLength: per-step summation over the cycle; the correctness reference.
//   - TourLengthGather: gathers coordinates in tour order into an n×2 gonum
//     matrix, differences it against its one-row shift and sums row norms,
//     adding the wrap-around edge separately.
//
// Both validate the tour and agree within 1e-5 relative tolerance.
//
// Complexity:
//   - O(n) time; TourLengthGather allocates O(n) for the gathered matrix.
package tsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tspnet/geom"
)

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// TourLength returns the cyclic Euclidean length of tour over inst:
// Σ d(tour[i], tour[i+1]) + d(tour[n-1], tour[0]).
//
// Contract:
//   - tour is a permutation of [0, len(inst)) (ErrInvalidTour otherwise).
//
// Complexity: O(n).
func TourLength(inst geom.Instance, tour []int) (float64, error) {
	if err := ValidateTour(tour, len(inst)); err != nil {
		return 0, err
	}

	var (
		n   = len(tour)
		sum float64
		i   int
	)
	for i = 0; i < n; i++ {
		sum += geom.Distance(inst[tour[i]], inst[tour[(i+1)%n]])
	}
	return sum, nil
}

// TourLengthGather computes the same value as TourLength with a
// gather-then-difference formulation over a gonum matrix.
//
// Complexity: O(n) time, O(n) space.
func TourLengthGather(inst geom.Instance, tour []int) (float64, error) {
	if err := ValidateTour(tour, len(inst)); err != nil {
		return 0, err
	}
	var n = len(tour)
	if n == 1 {
		return 0, nil
	}

	// Gather: row i holds the coordinate of the i-th visited city.
	gathered := mat.NewDense(n, 2, nil)
	for i, c := range tour {
		gathered.Set(i, 0, inst[c].X)
		gathered.Set(i, 1, inst[c].Y)
	}

	// Consecutive differences: rows 1..n-1 minus rows 0..n-2.
	var diff mat.Dense
	diff.Sub(gathered.Slice(1, n, 0, 2), gathered.Slice(0, n-1, 0, 2))

	var sum float64
	for i := 0; i < n-1; i++ {
		sum += floats.Norm(diff.RawRowView(i), 2)
	}

	// Wrap-around edge from the last city back to the first.
	sum += floats.Distance(gathered.RawRowView(n-1), gathered.RawRowView(0), 2)
	return sum, nil
}

// tourCost sums a tour over a prefetched row-major matrix.
//
// Complexity: O(n).
func tourCost(w []float64, n int, tour []int) float64 {
	var (
		sum float64
		i   int
		m   = len(tour)
	)
	for i = 0; i < m; i++ {
		sum += w[tour[i]*n+tour[(i+1)%m]]
	}
	return sum
}

// round1e9 returns x rounded to 1e-9 absolute precision.
//
// Complexity: O(1).
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

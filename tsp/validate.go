// Package tsp - validation utilities shared by the exact solver and local search.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n²) worst-case where n is the matrix order.
package tsp

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// diagTol is the structural tolerance for the zero-diagonal check.
const diagTol = 1e-12

// validateDistMatrix performs full matrix validation:
//   - non-nil, n ≥ 2,
//   - diagonal ≈ 0 (|a_ii| ≤ diagTol),
//   - every entry finite and non-negative.
//
// Symmetry holds by construction (mat.Symmetric).
// Returns n (matrix order) on success.
//
// Complexity: O(n²).
func validateDistMatrix(dist mat.Symmetric) (int, error) {
	if dist == nil {
		return 0, errors.Wrap(ErrTooFewCities, "nil distance matrix")
	}
	var n = dist.SymmetricDim()
	if n < 2 {
		return 0, errors.Wrapf(ErrTooFewCities, "n=%d", n)
	}

	var (
		i, j int
		a    float64
	)
	for i = 0; i < n; i++ {
		a = dist.At(i, i)
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return 0, errors.Wrapf(ErrNonFiniteWeight, "dist[%d][%d]=%v", i, i, a)
		}
		if math.Abs(a) > diagTol {
			return 0, errors.Wrapf(ErrNonZeroDiagonal, "dist[%d][%d]=%v", i, i, a)
		}
		// Upper triangle is enough for a symmetric matrix.
		for j = i + 1; j < n; j++ {
			a = dist.At(i, j)
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return 0, errors.Wrapf(ErrNonFiniteWeight, "dist[%d][%d]=%v", i, j, a)
			}
			if a < 0 {
				return 0, errors.Wrapf(ErrNegativeWeight, "dist[%d][%d]=%v", i, j, a)
			}
		}
	}
	return n, nil
}

// prefetch copies dist into a row-major buffer w[i*n+j] so hot loops avoid
// interface calls.
//
// Complexity: O(n²) time and space.
func prefetch(dist mat.Symmetric, n int) []float64 {
	w := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			w[i*n+j] = dist.At(i, j)
			w[j*n+i] = w[i*n+j]
		}
	}
	return w
}

// Package tsp provides exact solving, evaluation and reconciliation of
// Euclidean Travelling Salesman tours.
//
// It includes:
//
//   - SolveExact: Held–Karp dynamic programming over subsets, O(n²·2ⁿ) time
//     and O(n·2ⁿ) memory, guarded by a city-count ceiling (WithMaxCities)
//     and a context.
//
//   - TourLength / TourLengthGather: cyclic tour length, as a reference loop
//     and as a gather-then-difference computation over a gonum matrix.
//
//   - Rectify: maps a tour computed over a shuffled instance back to the
//     canonical city order by coordinate matching.
//
//   - TwoOpt: first-improvement 2-opt refinement of any valid tour.
//
// Tours are open permutations of [0,n): the edge from the last city back to
// the first is implied. Distance matrices are gonum mat.Symmetric values; see
// geom.DistanceMatrix.
//
// Use SolveExact when you need ground truth on small instances (n≲16).
package tsp

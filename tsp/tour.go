// Package tsp - tour utilities shared by the solvers.
//
// Tours are open permutations of [0,n); the closing edge is implied.
// Provided helpers:
//   - ValidateTour: verify a permutation over {0..n-1}.
//   - RotateToStart: cyclic shift so the tour begins with a given city.
//   - SameCycle: equality under rotation and reflection.
//   - reverseSegment: in-place segment reversal (2-opt core).
//
// Design:
//   - No logging, no panics on user input; only sentinel errors from types.go.
//   - O(n) time for every helper.
package tsp

import "github.com/pkg/errors"

// ValidateTour checks that tour is a permutation of {0..n-1} of length n.
// It allocates a single O(n) marker slice.
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int) error {
	if n <= 0 || len(tour) != n {
		return errors.Wrapf(ErrInvalidTour, "len=%d, want %d", len(tour), n)
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return errors.Wrapf(ErrInvalidTour, "position %d holds %d, out of [0,%d)", i, v, n)
		}
		if seen[v] {
			return errors.Wrapf(ErrInvalidTour, "city %d repeated at position %d", v, i)
		}
		seen[v] = true
	}
	return nil
}

// RotateToStart returns a fresh copy of tour shifted so that out[0] == start.
// Returns ErrInvalidTour if start is not in tour.
//
// Complexity: O(n) time, O(n) space.
func RotateToStart(tour []int, start int) ([]int, error) {
	var (
		n     = len(tour)
		pivot = -1
		i     int
	)
	for i = 0; i < n; i++ {
		if tour[i] == start {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		return nil, errors.Wrapf(ErrInvalidTour, "start %d not in tour", start)
	}

	out := make([]int, n)
	for i = 0; i < n; i++ {
		out[i] = tour[(pivot+i)%n]
	}
	return out, nil
}

// SameCycle reports whether a and b describe the same undirected cycle,
// i.e. they are equal up to rotation and reversal.
//
// Complexity: O(n) time.
func SameCycle(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	var n = len(a)
	if n == 0 {
		return true
	}
	var (
		p = -1
		i int
	)
	for i = 0; i < n; i++ {
		if b[i] == a[0] {
			p = i
			break
		}
	}
	if p == -1 {
		return false
	}

	forward, backward := true, true
	for i = 0; i < n && (forward || backward); i++ {
		if a[i] != b[(p+i)%n] {
			forward = false
		}
		if a[i] != b[((p-i)%n+n)%n] {
			backward = false
		}
	}
	return forward || backward
}

// reverseSegment reverses tour[i..k] in place (inclusive).
//
// Complexity: O(k-i) time, O(1) space.
func reverseSegment(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

package tsp

import (
	stderrors "errors"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/tspnet/geom"
)

// MatchOption configures coordinate matching in Rectify.
type MatchOption func(*matchOptions)

type matchOptions struct {
	tol float64
}

// WithMatchTolerance accepts a canonical city whose Euclidean distance to the
// looked-up coordinate is ≤ tol. The default (tol == 0) is exact equality.
func WithMatchTolerance(tol float64) MatchOption {
	if tol < 0 || math.IsNaN(tol) {
		panic(panicToleranceInvalid)
	}
	return func(o *matchOptions) { o.tol = tol }
}

func (o matchOptions) matches(a, b geom.Point) bool {
	if o.tol == 0 {
		return a.Equal(b)
	}
	return geom.Distance(a, b) <= o.tol
}

// Rectify re-expresses a tour computed over a shuffled instance as indices of
// the canonical instance.
//
// For every position p, the coordinate shuffled[tour[p]] is looked up in
// canonical by scanning all n cities; exactly one city must match.
//
// Contract:
//   - len(shuffled) == len(canonical) (ErrLengthMismatch otherwise),
//   - tour is a permutation of [0,n) (ErrInvalidTour otherwise),
//   - coordinates are pairwise distinct within an instance; a coordinate with
//     zero or several canonical matches yields ErrAmbiguousMatch.
//
// Matching is exact equality unless WithMatchTolerance is given.
//
// Complexity: O(n²) time, O(n) space.
func Rectify(tour []int, shuffled, canonical geom.Instance, opts ...MatchOption) ([]int, error) {
	var o matchOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var n = len(canonical)
	if len(shuffled) != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "shuffled has %d cities, canonical %d", len(shuffled), n)
	}
	if err := ValidateTour(tour, n); err != nil {
		return nil, err
	}

	out := make([]int, n)
	var (
		p     int
		k     int
		match int
		xy    geom.Point
	)
	for p = 0; p < n; p++ {
		xy = shuffled[tour[p]]
		match = -1
		for k = 0; k < n; k++ {
			if !o.matches(xy, canonical[k]) {
				continue
			}
			if match >= 0 {
				return nil, errors.Wrapf(ErrAmbiguousMatch,
					"(%g, %g) matches canonical cities %d and %d", xy.X, xy.Y, match, k)
			}
			match = k
		}
		if match < 0 {
			return nil, errors.Wrapf(ErrAmbiguousMatch, "(%g, %g) has no canonical city", xy.X, xy.Y)
		}
		out[p] = match
	}

	// With a tolerance two shuffled cities may land on the same canonical one.
	if err := ValidateTour(out, n); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAmbiguousMatch, err)
	}
	return out, nil
}

// RectifyBatch applies Rectify to every instance. A failing instance leaves
// a nil entry in the result; all failures are joined into the returned error,
// each wrapped with its instance index.
func RectifyBatch(tours [][]int, shuffled, canonical geom.Batch, opts ...MatchOption) ([][]int, error) {
	if len(tours) != len(shuffled) || len(shuffled) != len(canonical) {
		return nil, errors.Wrapf(ErrLengthMismatch, "tours=%d shuffled=%d canonical=%d",
			len(tours), len(shuffled), len(canonical))
	}
	out := make([][]int, len(tours))
	var errs []error
	for i := range tours {
		r, err := Rectify(tours[i], shuffled[i], canonical[i], opts...)
		if err != nil {
			errs = append(errs, errors.WithMessagef(err, "instance %d", i))
			continue
		}
		out[i] = r
	}
	return out, stderrors.Join(errs...)
}

// Package sampler generates random TSP workloads: city sets drawn uniformly
// from the unit square, shuffled copies of a batch for order-invariance
// checks, and uniformly random tours.
//
// A Sampler owns one explicit generator and is not safe for concurrent use.
// Use a separate Sampler (or rng.Derive) per goroutine.
package sampler

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/katalvlaran/tspnet/geom"
	"github.com/katalvlaran/tspnet/internal/rng"
)

// ErrInvalidSize is returned for non-positive city counts or batch sizes.
var ErrInvalidSize = errors.New("sampler: size must be positive")

// Sampler draws instances, permutations and tours from a seeded generator.
type Sampler struct {
	r *rand.Rand
}

// New returns a Sampler seeded with seed (0 ⇒ rng.DefaultSeed).
func New(seed uint64) *Sampler {
	return &Sampler{r: rng.New(seed)}
}

// FromRand wraps an existing generator. A nil r falls back to New(0).
func FromRand(r *rand.Rand) *Sampler {
	if r == nil {
		r = rng.New(0)
	}
	return &Sampler{r: r}
}

// Instance returns n cities with coordinates uniform in [0,1)².
//
// Complexity: O(n).
func (s *Sampler) Instance(n int) (geom.Instance, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "cities=%d", n)
	}
	inst := make(geom.Instance, n)
	for i := range inst {
		inst[i] = geom.Point{X: s.r.Float64(), Y: s.r.Float64()}
	}
	return inst, nil
}

// Batch returns size independent instances of n cities each.
//
// Complexity: O(size·n).
func (s *Sampler) Batch(size, n int) (geom.Batch, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "batch=%d", size)
	}
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "cities=%d", n)
	}
	b := make(geom.Batch, size)
	for i := range b {
		// n>0 was checked above; Instance cannot fail here.
		b[i], _ = s.Instance(n)
	}
	return b, nil
}

// Shuffle returns a copy of b in which every instance's city order is
// independently permuted, together with the permutations used:
// shuffled[i][k] == b[i][perms[i][k]].
//
// Complexity: O(size·n).
func (s *Sampler) Shuffle(b geom.Batch) (shuffled geom.Batch, perms [][]int) {
	shuffled = make(geom.Batch, len(b))
	perms = make([][]int, len(b))
	for i, inst := range b {
		perms[i] = rng.Perm(len(inst), s.r)
		shuffled[i] = inst.Permute(perms[i])
	}
	return shuffled, perms
}

// RandomTour returns a uniformly random permutation of [0,n).
func (s *Sampler) RandomTour(n int) ([]int, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "cities=%d", n)
	}
	return rng.Perm(n, s.r), nil
}

// RandomTours returns size random tours over n cities.
func (s *Sampler) RandomTours(size, n int) ([][]int, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "batch=%d", size)
	}
	tours := make([][]int, size)
	var err error
	for i := range tours {
		if tours[i], err = s.RandomTour(n); err != nil {
			return nil, err
		}
	}
	return tours, nil
}

package geom

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Distance returns the Euclidean distance between a and b.
//
// Complexity: O(1).
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Equal reports exact coordinate equality.
func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Len returns the number of cities.
func (inst Instance) Len() int { return len(inst) }

// Validate checks that inst is non-empty and every coordinate is finite.
//
// Complexity: O(n).
func (inst Instance) Validate() error {
	if len(inst) == 0 {
		return ErrEmptyInstance
	}
	for i, p := range inst {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return errors.Wrapf(ErrNonFinite, "city %d = (%g, %g)", i, p.X, p.Y)
		}
	}
	return nil
}

// Clone returns an independent copy of inst.
func (inst Instance) Clone() Instance {
	if inst == nil {
		return nil
	}
	out := make(Instance, len(inst))
	copy(out, inst)
	return out
}

// Permute returns a new instance whose i-th city is inst[perm[i]].
// perm must be a permutation of [0, len(inst)); it is not re-validated here.
//
// Complexity: O(n).
func (inst Instance) Permute(perm []int) Instance {
	out := make(Instance, len(perm))
	for i, src := range perm {
		out[i] = inst[src]
	}
	return out
}

// Coords returns the instance as an n×2 gonum matrix (x in column 0,
// y in column 1).
//
// Complexity: O(n).
func (inst Instance) Coords() *mat.Dense {
	data := make([]float64, 2*len(inst))
	for i, p := range inst {
		data[2*i] = p.X
		data[2*i+1] = p.Y
	}
	return mat.NewDense(len(inst), 2, data)
}

// DistanceMatrix returns the n×n symmetric Euclidean distance matrix of inst.
// The diagonal is exactly zero.
//
// Complexity: O(n²) time and space.
func DistanceMatrix(inst Instance) *mat.SymDense {
	var (
		n = len(inst)
		d = mat.NewSymDense(n, nil)
		i int
		j int
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d.SetSym(i, j, Distance(inst[i], inst[j]))
		}
	}
	return d
}

// Cities returns the common instance size of b, or ErrRaggedBatch if sizes
// differ. An empty batch has size 0.
//
// Complexity: O(len(b)).
func (b Batch) Cities() (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n := len(b[0])
	for i := 1; i < len(b); i++ {
		if len(b[i]) != n {
			return 0, errors.Wrapf(ErrRaggedBatch, "instance %d has %d cities, want %d", i, len(b[i]), n)
		}
	}
	return n, nil
}

package ptrnet

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Selector picks the next city from the pointer log-probabilities of one
// decode step. Excluded cities carry −Inf. Implementations must be safe for
// concurrent use; all mutable state lives in r.
type Selector interface {
	Select(logProbs []float64, r *rand.Rand) (int, error)
	String() string
}

// Greedy selects the most probable city; ties go to the lowest index.
type Greedy struct{}

// Select implements Selector. r is ignored.
func (Greedy) Select(logProbs []float64, _ *rand.Rand) (int, error) {
	return floats.MaxIdx(logProbs), nil
}

func (Greedy) String() string { return "greedy" }

// Sampling draws a city from the categorical distribution exp(logProbs).
type Sampling struct{}

// maxRedraws bounds redraws that land on a zero-probability entry; the
// categorical sampler can return one only when its uniform draw is exactly 0.
const maxRedraws = 16

// Select implements Selector. It returns ErrNilRand when r is nil.
func (Sampling) Select(logProbs []float64, r *rand.Rand) (int, error) {
	if r == nil {
		return 0, ErrNilRand
	}
	w := make([]float64, len(logProbs))
	for i, lp := range logProbs {
		w[i] = math.Exp(lp)
	}
	cat := distuv.NewCategorical(w, r)
	for range maxRedraws {
		if k := int(cat.Rand()); w[k] > 0 {
			return k, nil
		}
	}
	return 0, errors.Wrap(ErrNumericInstability, "sampling kept drawing zero-probability cities")
}

func (Sampling) String() string { return "sampling" }

// ParsePolicy maps a decode_type name ("greedy" or "sampling", case
// insensitive) to its Selector.
func ParsePolicy(name string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "greedy":
		return Greedy{}, nil
	case "sampling":
		return Sampling{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownPolicy, "%q (want greedy or sampling)", name)
	}
}

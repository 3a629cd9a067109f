package geom

import "github.com/pkg/errors"

var (
	// ErrEmptyInstance is returned when an instance has no cities.
	ErrEmptyInstance = errors.New("geom: empty instance")

	// ErrRaggedBatch is returned when instances of a batch differ in size.
	ErrRaggedBatch = errors.New("geom: instances in a batch must have the same number of cities")

	// ErrNonFinite is returned when a coordinate is NaN or ±Inf.
	ErrNonFinite = errors.New("geom: non-finite coordinate")
)

// Point is a city coordinate in the plane.
type Point struct {
	X, Y float64
}

// Instance is an ordered sequence of cities; city i is Instance[i].
type Instance []Point

// Batch is a collection of independent instances sharing the same size.
type Batch []Instance

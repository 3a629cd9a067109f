package tsp

import (
	"runtime"

	"github.com/pkg/errors"
)

// Sentinel errors. Callers match them with errors.Is; returned errors are
// usually wrapped with instance-specific context.
var (
	// ErrTooFewCities is returned when an exact solve is requested for n < 2.
	ErrTooFewCities = errors.New("tsp: at least 2 cities are required")

	// ErrTooManyCities is returned when n exceeds the configured exact-solver ceiling.
	ErrTooManyCities = errors.New("tsp: too many cities for the exact solver")

	// ErrNonZeroDiagonal indicates dist[i][i] differs from zero.
	ErrNonZeroDiagonal = errors.New("tsp: self-distance must be 0")

	// ErrNegativeWeight indicates a negative distance.
	ErrNegativeWeight = errors.New("tsp: negative distance")

	// ErrNonFiniteWeight indicates a NaN or ±Inf distance.
	ErrNonFiniteWeight = errors.New("tsp: non-finite distance")

	// ErrInvalidTour indicates a tour that is not a permutation of [0,n).
	ErrInvalidTour = errors.New("tsp: tour is not a permutation of the cities")

	// ErrLengthMismatch indicates inputs that disagree on the number of cities
	// or instances.
	ErrLengthMismatch = errors.New("tsp: length mismatch")

	// ErrAmbiguousMatch indicates a coordinate that matches zero or several
	// canonical cities during rectification.
	ErrAmbiguousMatch = errors.New("tsp: ambiguous coordinate match")
)

// Result holds the outcome of a solver.
type Result struct {
	// Tour is the visiting order, a permutation of [0,n) starting at city 0.
	Tour []int

	// Cost is the total cyclic distance, rounded to 1e-9.
	Cost float64
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxCities is the default exact-solver ceiling.
	DefaultMaxCities = 16

	// HardMaxCities bounds WithMaxCities; beyond it the DP tables do not fit
	// in memory on any realistic machine.
	HardMaxCities = 24

	// DefaultEps is the strict improvement threshold for local search.
	DefaultEps = 1e-12

	// DefaultMaxIterations: 0 ⇒ run 2-opt until a local optimum.
	DefaultMaxIterations = 0
)

const (
	panicMaxCitiesInvalid = "tsp: WithMaxCities: n must be in [2, HardMaxCities]"
	panicWorkersInvalid   = "tsp: WithWorkers: workers must be positive"
	panicEpsInvalid       = "tsp: WithEps: eps must be non-negative"
	panicMaxItersInvalid  = "tsp: WithMaxIterations: iterations must be non-negative"
	panicToleranceInvalid = "tsp: WithMatchTolerance: tolerance must be non-negative"
)

// Options configures solvers and batch runners. Use the With* constructors.
type Options struct {
	maxCities int
	workers   int
	eps       float64
	maxIters  int
}

// Option mutates Options. Constructors panic only on nonsensical values
// (programmer error).
type Option func(*Options)

// WithMaxCities sets the exact-solver ceiling.
func WithMaxCities(n int) Option {
	if n < 2 || n > HardMaxCities {
		panic(panicMaxCitiesInvalid)
	}
	return func(o *Options) { o.maxCities = n }
}

// WithWorkers bounds the number of goroutines used by DP layers and batch runners.
func WithWorkers(workers int) Option {
	if workers <= 0 {
		panic(panicWorkersInvalid)
	}
	return func(o *Options) { o.workers = workers }
}

// WithEps sets the 2-opt acceptance threshold (Δ < −eps).
func WithEps(eps float64) Option {
	if eps < 0 {
		panic(panicEpsInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// WithMaxIterations caps the number of accepted 2-opt moves (0 ⇒ unlimited).
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(panicMaxItersInvalid)
	}
	return func(o *Options) { o.maxIters = n }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) Options {
	o := Options{
		maxCities: DefaultMaxCities,
		workers:   runtime.GOMAXPROCS(0),
		eps:       DefaultEps,
		maxIters:  DefaultMaxIterations,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

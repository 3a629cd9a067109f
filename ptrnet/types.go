package ptrnet

import "github.com/pkg/errors"

var (
	// ErrShapeMismatch indicates parameters whose shapes are inconsistent.
	ErrShapeMismatch = errors.New("ptrnet: parameter shape mismatch")

	// ErrInvalidInit indicates an unusable initialization range or dimension.
	ErrInvalidInit = errors.New("ptrnet: invalid initialization")

	// ErrUnknownPolicy is returned by ParsePolicy for unrecognized selectors.
	ErrUnknownPolicy = errors.New("ptrnet: unknown decode policy")

	// ErrVisitedSelection reports a selection of an already visited city.
	// It signals an internal defect, never a user error.
	ErrVisitedSelection = errors.New("ptrnet: selected an already visited city")

	// ErrNumericInstability reports NaN/Inf attention scores on feasible cities.
	ErrNumericInstability = errors.New("ptrnet: numeric instability")

	// ErrNilRand is returned when a stochastic policy is used without a generator.
	ErrNilRand = errors.New("ptrnet: sampling requires a random generator")
)

// Dims are the layer widths of the network.
type Dims struct {
	Embed  int // E: width of the coordinate embedding.
	Hidden int // H: width of the LSTM state and attention space.
}

// Hyper are the scalar inference hyperparameters.
type Hyper struct {
	// ClipLogits (C) scales tanh in the pointer: logits lie in [−C·|v|₁, C·|v|₁].
	ClipLogits float64

	// SoftmaxTemperature divides glimpse scores before the softmax.
	SoftmaxTemperature float64

	// Glimpses is the number of glimpse refinements per step (0 disables).
	Glimpses int
}

// Validate checks the hyperparameters.
func (h Hyper) Validate() error {
	if !(h.ClipLogits > 0) {
		return errors.Wrapf(ErrInvalidInit, "clip_logits=%v must be positive", h.ClipLogits)
	}
	if !(h.SoftmaxTemperature > 0) {
		return errors.Wrapf(ErrInvalidInit, "softmax temperature=%v must be positive", h.SoftmaxTemperature)
	}
	if h.Glimpses < 0 {
		return errors.Wrapf(ErrInvalidInit, "glimpses=%d must be non-negative", h.Glimpses)
	}
	return nil
}

package ptrnet

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// numGates is the number of LSTM gate blocks stacked in the weight matrices,
// in the order input, output, forget, cell.
const numGates = 4

// LSTMWeights are the weights of one LSTM layer. The four gate blocks are
// stacked along the rows: [input; output; forget; cell].
type LSTMWeights struct {
	Input     *mat.Dense    // 4H × in
	Recurrent *mat.Dense    // 4H × H
	Bias      *mat.VecDense // 4H
}

// AttentionWeights are the weights of one additive attention block:
// score_i = Combine · tanh(Query·q + QueryBias + Memory·m_i + MemoryBias).
// Memory/MemoryBias act as a width-1 convolution over the city axis.
type AttentionWeights struct {
	Query      *mat.Dense    // H × H
	QueryBias  *mat.VecDense // H
	Memory     *mat.Dense    // H × H
	MemoryBias *mat.VecDense // H
	Combine    *mat.VecDense // H
}

// Parameters bundle every weight of the network plus the inference
// hyperparameters. They are never modified by this package.
type Parameters struct {
	Embedding    *mat.Dense // E × 2, no bias
	Encoder      LSTMWeights
	Decoder      LSTMWeights
	Glimpse      AttentionWeights
	Pointer      AttentionWeights
	DecoderStart *mat.VecDense // E, decoder input at step 0
	Hyper        Hyper
}

// NewParameters allocates parameters of the given dimensions and fills every
// scalar (weights, biases, combination vectors and the decoder start input)
// uniformly from [initMin, initMax] using r.
func NewParameters(d Dims, h Hyper, initMin, initMax float64, r *rand.Rand) (*Parameters, error) {
	if d.Embed <= 0 || d.Hidden <= 0 {
		return nil, errors.Wrapf(ErrInvalidInit, "dims %+v must be positive", d)
	}
	if !(initMin <= initMax) {
		return nil, errors.Wrapf(ErrInvalidInit, "init range [%v, %v] is empty", initMin, initMax)
	}
	if r == nil {
		return nil, ErrNilRand
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	u := distuv.Uniform{Min: initMin, Max: initMax, Src: r}
	dense := func(rows, cols int) *mat.Dense {
		data := make([]float64, rows*cols)
		for i := range data {
			data[i] = u.Rand()
		}
		return mat.NewDense(rows, cols, data)
	}
	vec := func(n int) *mat.VecDense {
		data := make([]float64, n)
		for i := range data {
			data[i] = u.Rand()
		}
		return mat.NewVecDense(n, data)
	}
	lstm := func(in int) LSTMWeights {
		return LSTMWeights{
			Input:     dense(numGates*d.Hidden, in),
			Recurrent: dense(numGates*d.Hidden, d.Hidden),
			Bias:      vec(numGates * d.Hidden),
		}
	}
	attn := func() AttentionWeights {
		return AttentionWeights{
			Query:      dense(d.Hidden, d.Hidden),
			QueryBias:  vec(d.Hidden),
			Memory:     dense(d.Hidden, d.Hidden),
			MemoryBias: vec(d.Hidden),
			Combine:    vec(d.Hidden),
		}
	}

	p := &Parameters{
		Embedding: dense(d.Embed, 2),
		Encoder:   lstm(d.Embed),
		Decoder:   lstm(d.Embed),
		Glimpse:   attn(),
		Pointer:   attn(),
	}
	p.DecoderStart = vec(d.Embed)
	p.Hyper = h
	return p, nil
}

// Dims returns the layer widths implied by the embedding and encoder weights.
// Call Validate first if the parameters come from an untrusted source.
func (p *Parameters) Dims() Dims {
	e, _ := p.Embedding.Dims()
	_, h := p.Encoder.Recurrent.Dims()
	return Dims{Embed: e, Hidden: h}
}

// Validate checks that every tensor is present and consistently shaped.
func (p *Parameters) Validate() error {
	if p == nil || p.Embedding == nil || p.DecoderStart == nil {
		return errors.Wrap(ErrShapeMismatch, "missing embedding or decoder start")
	}
	if p.Encoder.Recurrent == nil {
		return errors.Wrap(ErrShapeMismatch, "missing encoder recurrent weights")
	}
	d := p.Dims()
	if err := checkDense("embedding", p.Embedding, d.Embed, 2); err != nil {
		return err
	}
	if err := checkVec("decoder start", p.DecoderStart, d.Embed); err != nil {
		return err
	}
	if err := p.Encoder.validate("encoder", d); err != nil {
		return err
	}
	if err := p.Decoder.validate("decoder", d); err != nil {
		return err
	}
	if err := p.Glimpse.validate("glimpse", d.Hidden); err != nil {
		return err
	}
	if err := p.Pointer.validate("pointer", d.Hidden); err != nil {
		return err
	}
	return p.Hyper.Validate()
}

// NumParams returns the number of scalar weights.
func (p *Parameters) NumParams() int {
	d := p.Dims()
	lstm := numGates*d.Hidden*d.Embed + numGates*d.Hidden*d.Hidden + numGates*d.Hidden
	attn := 2*d.Hidden*d.Hidden + 3*d.Hidden
	return 2*d.Embed + 2*lstm + 2*attn + d.Embed
}

func (l *LSTMWeights) validate(name string, d Dims) error {
	if err := checkDense(name+" input", l.Input, numGates*d.Hidden, d.Embed); err != nil {
		return err
	}
	if err := checkDense(name+" recurrent", l.Recurrent, numGates*d.Hidden, d.Hidden); err != nil {
		return err
	}
	return checkVec(name+" bias", l.Bias, numGates*d.Hidden)
}

func (a *AttentionWeights) validate(name string, h int) error {
	if err := checkDense(name+" query", a.Query, h, h); err != nil {
		return err
	}
	if err := checkVec(name+" query bias", a.QueryBias, h); err != nil {
		return err
	}
	if err := checkDense(name+" memory", a.Memory, h, h); err != nil {
		return err
	}
	if err := checkVec(name+" memory bias", a.MemoryBias, h); err != nil {
		return err
	}
	return checkVec(name+" combine", a.Combine, h)
}

func checkDense(name string, m *mat.Dense, rows, cols int) error {
	if m == nil {
		return errors.Wrapf(ErrShapeMismatch, "%s is missing", name)
	}
	if r, c := m.Dims(); r != rows || c != cols {
		return errors.Wrapf(ErrShapeMismatch, "%s is %d×%d, want %d×%d", name, r, c, rows, cols)
	}
	return nil
}

func checkVec(name string, v *mat.VecDense, n int) error {
	if v == nil {
		return errors.Wrapf(ErrShapeMismatch, "%s is missing", name)
	}
	if v.Len() != n {
		return errors.Wrapf(ErrShapeMismatch, "%s has length %d, want %d", name, v.Len(), n)
	}
	return nil
}

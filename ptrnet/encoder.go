package ptrnet

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tspnet/geom"
)

// EncoderState is the per-instance output of Encode. It is created for one
// decode and discarded afterwards.
type EncoderState struct {
	// Embedded holds the linear embedding of every city (N×E), in input order.
	// The decoder feeds the selected city's row as its next input.
	Embedded *mat.Dense

	// Memory holds the encoder hidden state after each city (N×H), in input order.
	Memory *mat.Dense

	// Hidden and Cell are the final encoder state; they seed the decoder.
	Hidden, Cell *mat.VecDense
}

// Encode embeds inst and runs one encoder LSTM pass over it from a zero
// state. The result depends on city order: permuting inst changes Memory
// rows beyond a permutation, and the final state, even though the city set
// is the same.
func Encode(p *Parameters, inst geom.Instance) (*EncoderState, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return encode(p, inst), nil
}

// encode assumes p and inst were validated.
func encode(p *Parameters, inst geom.Instance) *EncoderState {
	var (
		d = p.Dims()
		n = len(inst)
	)

	// (N×2)·(2×E) ⇒ N×E.
	embedded := mat.NewDense(n, d.Embed, nil)
	embedded.Mul(inst.Coords(), p.Embedding.T())

	memory := mat.NewDense(n, d.Hidden, nil)
	h := mat.NewVecDense(d.Hidden, nil)
	c := mat.NewVecDense(d.Hidden, nil)
	for i := 0; i < n; i++ {
		h, c = p.Encoder.step(embedded.RowView(i), h, c)
		memory.SetRow(i, h.RawVector().Data)
	}
	return &EncoderState{Embedded: embedded, Memory: memory, Hidden: h, Cell: c}
}

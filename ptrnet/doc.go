// Package ptrnet runs inference for a pointer network with glimpse and
// pointer attention over Euclidean TSP instances.
//
// The pipeline for one instance is:
//
//	Encode:  coordinates ─(linear E×2)─▶ embeddings ─(LSTM)─▶ memory (N×H), (h, c)
//	Decode:  N steps of
//	           decoder LSTM step        (input: start vector, then last city's embedding)
//	           glimpse × Hyper.Glimpses (query ← Σ_i softmax(g/T)_i·(Wm·m_i + bm),
//	                                     g_i = v·tanh(Wq·q + bq + Wm·m_i + bm))
//	           pointer                  (logits_i = v'·(C·tanh(Wq'·q + bq' + Wm'·m_i + bm')))
//	           log-softmax over unvisited cities, selection, mask update
//
// Parameters are produced elsewhere (training, checkpoints) and are only read
// here; NewParameters exists for uniform random initialization.
//
// Visited cities form an explicit exclusion set: they are skipped before the
// softmax, get probability 0 and log-probability −Inf, and can never be
// selected. A Selector that still returns one triggers ErrVisitedSelection.
//
// All linear algebra uses gonum. A Parameters value may be shared by any number
// of concurrent Decode calls; each call owns its encoder and decoder state.
package ptrnet

// Package tspnet computes and evaluates tours for the Euclidean Travelling
// Salesman Problem over batches of random city sets.
//
// The module is split into small packages:
//
//   - geom: points, instances, batches and Euclidean distance matrices.
//   - sampler: seeded random instances, shuffled batches and random tours.
//   - tsp: the exact Held–Karp solver, tour evaluation (reference loop and
//     gathered matrix form), tour validation, 2-opt refinement and the
//     rectifier that maps tours over a shuffled instance back to the
//     canonical city order.
//   - ptrnet: inference for a pointer network with glimpse and pointer
//     attention, driven by externally produced parameters, with greedy or
//     sampling selection.
//   - config: YAML run configuration.
//
// The tspnet command (cmd/tspnet) wires them together: it samples a batch,
// decodes it, and reports tour lengths next to exact optima, 2-opt results and
// a shuffled-order check.
//
// Every source of randomness is an explicit *rand.Rand handle derived from a
// seed (internal/rng), so runs are reproducible and batch results do not
// depend on the number of workers.
//
// Quick example:
//
//	inst, _ := sampler.New(1).Instance(10)
//	opt, _ := tsp.SolveExactInstance(ctx, inst)
//	p, _ := ptrnet.NewParameters(ptrnet.Dims{Embed: 128, Hidden: 128},
//		ptrnet.Hyper{ClipLogits: 10, SoftmaxTemperature: 1, Glimpses: 1},
//		-0.08, 0.08, rand.New(rand.NewPCG(1, 2)))
//	res, _ := ptrnet.Decode(p, inst, ptrnet.Greedy{}, nil)
//	length, _ := tsp.TourLength(inst, res.Tour)
//	fmt.Println(length / opt.Cost)
package tspnet

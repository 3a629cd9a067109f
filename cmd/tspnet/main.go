// tspnet samples a batch of random Euclidean TSP instances, decodes them with
// a pointer network, and reports tour statistics. Optionally it compares the
// decoded tours with exact optima, refines them with 2-opt, and checks how
// the network reacts to a shuffled city order.
//
// Parameters are drawn uniformly at random from the configured range, so the
// tours show the behaviour of an untrained network unless the range is tuned.
//
// Usage:
//
//	tspnet -config run.yaml -exact -polish -shuffle -v=1
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/tspnet/config"
	"github.com/katalvlaran/tspnet/geom"
	"github.com/katalvlaran/tspnet/internal/rng"
	"github.com/katalvlaran/tspnet/ptrnet"
	"github.com/katalvlaran/tspnet/sampler"
	"github.com/katalvlaran/tspnet/tsp"
)

var (
	flagConfig  = flag.String("config", "", "YAML configuration file. Defaults are used for absent keys.")
	flagCities  = flag.Int("cities", 0, "Overrides the number of cities per instance.")
	flagBatch   = flag.Int("batch", 0, "Overrides the number of instances.")
	flagDecode  = flag.String("decode_type", "", "Overrides the decode policy: greedy or sampling.")
	flagSeed    = flag.Uint64("seed", 0, "Overrides the random seed.")
	flagWorkers = flag.Int("workers", -1, "Overrides the number of workers (0 for GOMAXPROCS).")
	flagExact   = flag.Bool("exact", false, "Solve every instance exactly and report the optimality gap.")
	flagPolish  = flag.Bool("polish", false, "Refine decoded tours with 2-opt.")
	flagShuffle = flag.Bool("shuffle", false, "Decode a shuffled copy of the batch and compare tours.")
	flagChunk   = flag.Int("chunk", 64, "Instances per progress update.")
)

// Stream ids of the generators derived from the configured seed.
const (
	streamSample = iota + 1
	streamParams
	streamDecode
	streamShuffle
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	cfg := loadConfig()
	must.M(run(context.Background(), cfg))
}

// loadConfig reads -config (if any) and applies the override flags.
func loadConfig() config.Config {
	cfg := config.Default()
	if *flagConfig != "" {
		cfg = must.M1(config.Load(*flagConfig))
	}
	if *flagCities > 0 {
		cfg.Cities = *flagCities
	}
	if *flagBatch > 0 {
		cfg.Batch = *flagBatch
	}
	if *flagDecode != "" {
		cfg.DecodeType = *flagDecode
	}
	if *flagSeed != 0 {
		cfg.Seed = *flagSeed
	}
	if *flagWorkers >= 0 {
		cfg.Workers = *flagWorkers
	}
	must.M(cfg.Validate())
	must.M(checkModes(cfg, *flagExact, *flagChunk))
	return cfg
}

// checkModes rejects flag combinations that would only fail after sampling
// and decoding have already run.
func checkModes(cfg config.Config, exact bool, chunk int) error {
	if chunk <= 0 {
		return errors.Errorf("-chunk=%d must be positive", chunk)
	}
	if exact && cfg.Cities < 2 {
		return errors.Wrapf(tsp.ErrTooFewCities, "-exact needs at least 2 cities, got %d", cfg.Cities)
	}
	return nil
}

func run(ctx context.Context, cfg config.Config) error {
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	klog.Infof("device hint %q: running on %d CPU workers", cfg.Device, workers)

	s := sampler.FromRand(rng.Derive(cfg.Seed, streamSample))
	batch, err := s.Batch(cfg.Batch, cfg.Cities)
	if err != nil {
		return err
	}
	params, err := ptrnet.NewParameters(cfg.Dims(), cfg.Hyper(), cfg.InitMin, cfg.InitMax, rng.Derive(cfg.Seed, streamParams))
	if err != nil {
		return err
	}
	sel := must.M1(cfg.Policy())
	klog.Infof("%s instances of %d cities, %s network parameters, %s decoding",
		humanize.Comma(int64(cfg.Batch)), cfg.Cities, humanize.Comma(int64(params.NumParams())), sel)

	rep := newReport()

	decoded, err := decodeChunked(ctx, "decoding", params, batch, sel, rng.Mix(cfg.Seed, streamDecode), workers)
	if err != nil {
		return err
	}
	tours := make([][]int, len(decoded))
	ll := make([]float64, len(decoded))
	for i, r := range decoded {
		tours[i] = r.Tour
		ll[i] = r.LogLikelihood
	}
	ref, err := tsp.EvaluateBatch(ctx, batch, tours, false, tsp.WithWorkers(workers))
	if err != nil {
		return err
	}
	fast, err := tsp.EvaluateBatch(ctx, batch, tours, true, tsp.WithWorkers(workers))
	if err != nil {
		return err
	}
	rep.add("decoded length", ref)
	rep.add("decoded length (gather)", fast)
	rep.add("log-likelihood", ll)
	if d := maxRelDiff(ref, fast); d > 1e-5 {
		klog.Warningf("evaluators disagree: max relative difference %.3g", d)
	}

	if *flagPolish {
		polished, err := polish(batch, tours)
		if err != nil {
			return err
		}
		rep.add("2-opt length", polished)
		rep.add("2-opt improvement", ratios(ref, polished))
	}

	if *flagExact {
		if err := exact(ctx, cfg, batch, ref, workers, rep); err != nil {
			return err
		}
	}

	if *flagShuffle {
		if err := shuffleCheck(ctx, cfg, s, params, sel, batch, tours, ref, workers, rep); err != nil {
			return err
		}
	}

	fmt.Println(rep.render())
	return nil
}

// decodeChunked runs DecodeBatch over consecutive chunks of b, advancing a
// progress bar. Chunk c draws from stream rng.Mix(seed, c).
func decodeChunked(ctx context.Context, desc string, p *ptrnet.Parameters, b geom.Batch, sel ptrnet.Selector, seed uint64, workers int) ([]ptrnet.Result, error) {
	bar := newBar(len(b), desc)
	out := make([]ptrnet.Result, 0, len(b))
	for c, lo := 0, 0; lo < len(b); c, lo = c+1, lo+*flagChunk {
		hi := min(lo+*flagChunk, len(b))
		res, err := ptrnet.DecodeBatch(ctx, p, b[lo:hi], sel, rng.Mix(seed, uint64(c)), workers)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s instances [%d, %d)", desc, lo, hi)
		}
		out = append(out, res...)
		_ = bar.Add(hi - lo)
	}
	_ = bar.Finish()
	return out, nil
}

func polish(b geom.Batch, tours [][]int) ([]float64, error) {
	bar := newBar(len(b), "2-opt")
	costs := make([]float64, len(b))
	for i := range b {
		_, c, err := tsp.TwoOpt(geom.DistanceMatrix(b[i]), tours[i])
		if err != nil {
			return nil, errors.WithMessagef(err, "2-opt instance %d", i)
		}
		costs[i] = c
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return costs, nil
}

func exact(ctx context.Context, cfg config.Config, b geom.Batch, decoded []float64, workers int, rep *report) error {
	if cfg.Cities > cfg.MaxExactCities {
		klog.Warningf("skipping exact solver: %d cities exceed max_exact_cities=%d", cfg.Cities, cfg.MaxExactCities)
		return nil
	}
	// value (float64) and successor (int8) per DP state.
	states := uint64(cfg.Cities-1) << uint(cfg.Cities-1)
	klog.Infof("exact solver: %s per instance", humanize.Bytes(states*9))

	bar := newBar(len(b), "exact")
	opt := make([]float64, 0, len(b))
	for lo := 0; lo < len(b); lo += *flagChunk {
		hi := min(lo+*flagChunk, len(b))
		res, err := tsp.SolveBatch(ctx, b[lo:hi], tsp.WithWorkers(workers), tsp.WithMaxCities(cfg.MaxExactCities))
		if err != nil {
			return errors.WithMessagef(err, "exact instances [%d, %d)", lo, hi)
		}
		for _, r := range res {
			opt = append(opt, r.Cost)
		}
		_ = bar.Add(hi - lo)
	}
	_ = bar.Finish()

	rep.add("optimal length", opt)
	rep.add("optimality gap", ratios(decoded, opt))
	return nil
}

// shuffleCheck decodes a shuffled copy of b, maps the tours back to the
// canonical order and compares them with the canonical decode.
func shuffleCheck(ctx context.Context, cfg config.Config, s *sampler.Sampler, p *ptrnet.Parameters, sel ptrnet.Selector,
	b geom.Batch, tours [][]int, lengths []float64, workers int, rep *report) error {
	shuffled, _ := s.Shuffle(b)
	res, err := decodeChunked(ctx, "shuffled", p, shuffled, sel, rng.Mix(cfg.Seed, streamShuffle), workers)
	if err != nil {
		return err
	}
	shuffledTours := make([][]int, len(res))
	for i, r := range res {
		shuffledTours[i] = r.Tour
	}
	back, err := tsp.RectifyBatch(shuffledTours, shuffled, b)
	if err != nil {
		// Duplicate coordinates make the mapping ambiguous; those instances are skipped.
		klog.Warningf("shuffle check: %v", err)
	}

	var (
		costs   []float64
		base    []float64
		changed int
	)
	for i, t := range back {
		if t == nil {
			continue
		}
		c, err := tsp.TourLength(b[i], t)
		if err != nil {
			return errors.WithMessagef(err, "rectified instance %d", i)
		}
		costs = append(costs, c)
		base = append(base, lengths[i])
		if !tsp.SameCycle(t, tours[i]) {
			changed++
		}
	}
	rep.add("shuffled length", costs)
	rep.add("shuffled vs canonical", ratios(costs, base))
	klog.Infof("shuffle check: %s of %s tours changed with the city order",
		humanize.Comma(int64(changed)), humanize.Comma(int64(len(costs))))
	return nil
}

func newBar(n int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("instances"),
		progressbar.OptionClearOnFinish(),
	)
}

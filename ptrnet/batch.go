package ptrnet

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/tspnet/geom"
	"github.com/katalvlaran/tspnet/internal/rng"
)

// DecodeBatch decodes every instance of b concurrently with at most workers
// goroutines (workers<=0 means GOMAXPROCS). Instance i draws from its own
// generator rng.Derive(seed, i), so the results do not depend on workers or
// on scheduling. The first error cancels the remaining work.
func DecodeBatch(ctx context.Context, p *Parameters, b geom.Batch, sel Selector, seed uint64, workers int) ([]Result, error) {
	if sel == nil {
		return nil, errors.Wrap(ErrUnknownPolicy, "nil selector")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n, err := b.Cities()
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(b))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range b {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := b[i].Validate(); err != nil {
				return errors.WithMessagef(err, "instance %d", i)
			}
			res, err := decode(p, b[i], sel, rng.Derive(seed, uint64(i)))
			if err != nil {
				return errors.WithMessagef(err, "instance %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	klog.V(1).Infof("ptrnet: decoded %d instances of %d cities (%s, workers=%d)", len(b), n, sel, workers)
	return results, nil
}

package tsp

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/tspnet/geom"
)

// SolveBatch runs SolveExactInstance on every instance of b concurrently,
// bounded by WithWorkers. Each instance's DP runs single-threaded to avoid
// oversubscription. The first error cancels the remaining work and is
// returned wrapped with its instance index.
func SolveBatch(ctx context.Context, b geom.Batch, opts ...Option) ([]Result, error) {
	o := gatherOptions(opts)
	if _, err := b.Cities(); err != nil {
		return nil, err
	}

	inner := append(append([]Option(nil), opts...), WithWorkers(1))
	results := make([]Result, len(b))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := range b {
		g.Go(func() error {
			r, err := SolveExactInstance(gctx, b[i], inner...)
			if err != nil {
				return errors.WithMessagef(err, "instance %d", i)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	klog.V(1).Infof("tsp: solved %d instances exactly", len(b))
	return results, nil
}

// EvaluateBatch returns the tour length of tours[i] over b[i] for every i.
// With gather==true the TourLengthGather algorithm is used, otherwise the
// TourLength reference loop.
func EvaluateBatch(ctx context.Context, b geom.Batch, tours [][]int, gather bool, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts)
	if len(tours) != len(b) {
		return nil, errors.Wrapf(ErrLengthMismatch, "batch=%d tours=%d", len(b), len(tours))
	}

	eval := TourLength
	if gather {
		eval = TourLengthGather
	}

	costs := make([]float64, len(b))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := range b {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := eval(b[i], tours[i])
			if err != nil {
				return errors.WithMessagef(err, "instance %d", i)
			}
			costs[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return costs, nil
}

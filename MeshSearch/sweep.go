package MeshSearch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tsunamilab/vortmesh/InputParameters"
	"github.com/tsunamilab/vortmesh/model_problems/VorticityStream"
)

// RunSweep solves independent parameter combinations concurrently through a
// shared cache. Each solve is internally sequential; the combinations are
// embarrassingly parallel. Results come back in input order; the first error
// cancels the remaining work.
func RunSweep(ctx context.Context, cache *Cache, configs []*InputParameters.SolveParameters,
	workers int) ([]*VorticityStream.SolveResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]*VorticityStream.SolveResult, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sp := range configs {
		i, sp := i, sp
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := cache.Get(sp)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package MeshSearch

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsunamilab/vortmesh/InputParameters"
	"github.com/tsunamilab/vortmesh/model_problems/VorticityStream"
)

func TestSweepPreservesInputOrder(t *testing.T) {
	var calls int64
	cache := NewCache(constFieldSolver(&calls, func(n int) float64 { return float64(n) }), true)
	ns := []int{64, 8, 32, 16, 8, 64}
	configs := make([]*InputParameters.SolveParameters, len(ns))
	for i, n := range ns {
		configs[i] = solveParamsN(n)
	}
	results, err := RunSweep(context.Background(), cache, configs, 4)
	require.NoError(t, err)
	require.Len(t, results, len(ns))
	for i, n := range ns {
		assert.Equal(t, float64(n), results[i].Diagnostics.PeakVorticity, "result %d", i)
	}
	// Duplicate combinations share one cached solve
	assert.Equal(t, int64(4), atomic.LoadInt64(&calls))
	assert.Equal(t, 4, cache.Len())
}

func TestSweepFirstErrorCancels(t *testing.T) {
	cache := NewCache(func(sp *InputParameters.SolveParameters) (*VorticityStream.SolveResult, error) {
		if sp.Nx == 32 {
			return nil, fmt.Errorf("solve at N=%d failed", sp.Nx)
		}
		return constFieldSolver(nil, func(int) float64 { return 1 })(sp)
	}, true)
	configs := []*InputParameters.SolveParameters{
		solveParamsN(8), solveParamsN(32), solveParamsN(16),
	}
	results, err := RunSweep(context.Background(), cache, configs, 1)
	require.Error(t, err)
	assert.Nil(t, results)
	// The failed solve was never stored
	_, found := cache.entries[solveParamsN(32).CacheKey()]
	assert.False(t, found)
}

func TestSweepSingleWorkerFallback(t *testing.T) {
	cache := NewCache(constFieldSolver(nil, func(int) float64 { return 1 }), true)
	results, err := RunSweep(context.Background(), cache,
		[]*InputParameters.SolveParameters{solveParamsN(8)}, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotNil(t, results[0])
}

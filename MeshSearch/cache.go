package MeshSearch

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/tsunamilab/vortmesh/InputParameters"
	"github.com/tsunamilab/vortmesh/model_problems/VorticityStream"
)

// SolveFunc runs one single-resolution solve. The production binding is
// VorticityStream.Run; tests inject counters and synthetic solvers.
type SolveFunc func(sp *InputParameters.SolveParameters) (*VorticityStream.SolveResult, error)

// CacheKeyCollisionError is defensive only: with canonical keys derived from
// the full parameter tuple it is unreachable.
type CacheKeyCollisionError struct {
	Key string
}

func (e *CacheKeyCollisionError) Error() string {
	return fmt.Sprintf("cache key collision on %q", e.Key)
}

// Cache memoizes solves by the canonical parameter key. It is an explicit,
// constructable value with the lifetime of its owner (typically one
// Controller), never process-global state. Reads are safe concurrently;
// concurrent writers targeting the same uncached key are serialized through a
// singleflight group, so each distinct key is computed at most once for the
// cache's lifetime. Failed solves are never stored.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	group   singleflight.Group
	solve   SolveFunc
	enabled bool
}

type cacheEntry struct {
	params InputParameters.SolveParameters
	result *VorticityStream.SolveResult
}

func NewCache(solve SolveFunc, enabled bool) *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		solve:   solve,
		enabled: enabled,
	}
}

// Get returns the memoized result for the parameter tuple, computing it if
// absent. A disabled cache degenerates to calling the solver directly.
// Snapshot times are not part of solve identity (see CacheKey): callers
// differing only in SnapshotTimes share one result, carrying whichever
// snapshots the first computation requested.
func (c *Cache) Get(sp *InputParameters.SolveParameters) (*VorticityStream.SolveResult, error) {
	if !c.enabled {
		return c.solve(sp)
	}
	key := sp.CacheKey()
	if res, err := c.lookup(key, sp); res != nil || err != nil {
		return res, err
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A losing writer may have stored the entry while we waited.
		if res, err := c.lookup(key, sp); res != nil || err != nil {
			return res, err
		}
		res, err := c.solve(sp)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = &cacheEntry{params: *sp, result: res}
		c.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*VorticityStream.SolveResult), nil
}

// Len reports the number of memoized results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string, sp *InputParameters.SolveParameters) (*VorticityStream.SolveResult, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !sameParams(&e.params, sp) {
		return nil, &CacheKeyCollisionError{Key: key}
	}
	return e.result, nil
}

func sameParams(a, b *InputParameters.SolveParameters) bool {
	if a.Nx != b.Nx || a.Ny != b.Ny || a.Lx != b.Lx || a.Ly != b.Ly ||
		a.Nu != b.Nu || a.Dt != b.Dt || a.FinalTime != b.FinalTime ||
		a.ICType != b.ICType || a.Method != b.Method ||
		len(a.ICCoefficients) != len(b.ICCoefficients) {
		return false
	}
	for i := range a.ICCoefficients {
		if a.ICCoefficients[i] != b.ICCoefficients[i] {
			return false
		}
	}
	return true
}

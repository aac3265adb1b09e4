package MeshSearch

import (
	"fmt"
	"math"
	"time"

	"github.com/tsunamilab/vortmesh/InputParameters"
	"github.com/tsunamilab/vortmesh/model_problems/VorticityStream"
)

// SearchExhaustedError reports that no resolution within the budget met the
// tolerance. It carries the complete iteration log.
type SearchExhaustedError struct {
	NMax       int
	LastN      int
	LastMetric float64
	Log        []Record
}

func (e *SearchExhaustedError) Error() string {
	return fmt.Sprintf("no convergent mesh within budget: metric(%d)=%g > tolerance, NMax=%d",
		e.LastN, e.LastMetric, e.NMax)
}

// SearchResult is the terminal output of the controller.
type SearchResult struct {
	NStar       int
	FinalMetric float64
	Records     []Record
	TotalTime   time.Duration
}

// Controller drives repeated cached solves to find the coarsest resolution
// whose self-convergence metric meets the tolerance. It is a sequential
// four-phase state machine: InitialPair establishes a convergent resolution
// pair, AdaptiveJump extrapolates the observed convergence rate to predict
// the target directly, Bracketing falls back to geometric growth when the
// prediction misses, and BinarySearch (config-gated) tightens the resulting
// bracket to the minimal converged N.
//
// metric(N) compares the solve at N against the solve at 2N, so consecutive
// doubled candidates share solves through the cache.
type Controller struct {
	sp      InputParameters.SearchParameters
	cache   *Cache
	sink    RecordSink
	records []Record
	iter    int
	cum     time.Duration
}

func NewController(sp *InputParameters.SearchParameters, cache *Cache, sink RecordSink) *Controller {
	if sink == nil {
		sink = NopSink{}
	}
	return &Controller{
		sp:    *sp,
		cache: cache,
		sink:  sink,
	}
}

// Run executes the search to termination. Failed solves are appended to the
// log and then surfaced unchanged; the log travels with the terminal errors.
func (c *Controller) Run() (*SearchResult, error) {
	var (
		tol = c.sp.Tolerance
	)
	// InitialPair: establish (n1,m1), (n2,m2) with m2 < m1
	n1 := c.sp.NCoarse
	n2 := 2 * n1
	m1, err := c.evaluate(PhaseInitialPair, n1, 0)
	if err != nil {
		return nil, err
	}
	if m1 <= tol {
		return c.done(n1, m1), nil
	}
	var m2 float64
	converged := false
	for attempt := 0; attempt < c.sp.MaxPairAttempts; attempt++ {
		if n2 > c.sp.NMax {
			break
		}
		if m2, err = c.evaluate(PhaseInitialPair, n2, 0); err != nil {
			return nil, err
		}
		if m2 > 0 && m2 < m1 && !math.IsInf(m2, 0) && !math.IsNaN(m2) {
			converged = true
			break
		}
		n2 *= 2
	}
	if !converged {
		return nil, &NonConvergentPairError{N1: n1, N2: n2, Metric1: m1, Metric2: m2, Log: c.records}
	}
	if m2 <= tol {
		return c.refine(n1, n2, m2)
	}

	// AdaptiveJump: extrapolate the observed rate to the predicted target
	nLow, nProbe, mProbe := n2, 0, m2
	p, rateErr := EstimateRate(n1, m1, n2, m2)
	if rateErr == nil && p > 0 {
		nProbe = PredictTarget(n1, m1, tol, p, n2, c.sp.NMax)
		mt, err := c.evaluate(PhaseAdaptiveJump, nProbe, nProbe)
		if err != nil {
			return nil, err
		}
		if mt <= tol {
			return c.done(nProbe, mt), nil
		}
		nLow, mProbe = nProbe, mt
	}

	// Bracketing: geometric growth from the last non-converged resolution
	n := nLow
	for {
		n *= c.sp.BracketFactor
		if n > c.sp.NMax {
			return nil, &SearchExhaustedError{NMax: c.sp.NMax, LastN: nLow, LastMetric: mProbe, Log: c.records}
		}
		m, err := c.evaluate(PhaseBracketing, n, 0)
		if err != nil {
			return nil, err
		}
		if m <= tol {
			return c.refine(nLow, n, m)
		}
		nLow, mProbe = n, m
	}
}

// refine applies the config-gated binary search to a bracket
// [nLow (not converged), nHigh (converged)].
func (c *Controller) refine(nLow, nHigh int, mHigh float64) (*SearchResult, error) {
	if !c.sp.BinarySearch {
		return c.done(nHigh, mHigh), nil
	}
	for nHigh-nLow > 1 {
		mid := (nLow + nHigh) / 2
		m, err := c.evaluate(PhaseBinarySearch, mid, 0)
		if err != nil {
			return nil, err
		}
		if m <= c.sp.Tolerance {
			nHigh, mHigh = mid, m
		} else {
			nLow = mid
		}
	}
	return c.done(nHigh, mHigh), nil
}

func (c *Controller) done(nStar int, metric float64) *SearchResult {
	c.append(Record{
		Phase:  PhaseDone,
		N:      nStar,
		Metric: metric,
	})
	return &SearchResult{
		NStar:       nStar,
		FinalMetric: metric,
		Records:     c.records,
		TotalTime:   c.cum,
	}
}

// evaluate computes metric(n) through the cache and appends exactly one
// record for the transition, including failures.
func (c *Controller) evaluate(phase Phase, n, predicted int) (metric float64, err error) {
	var (
		start    = time.Now()
		fallback bool
	)
	coarse, fine, err := c.solvePair(n)
	if err != nil {
		c.append(Record{
			Phase:      phase,
			N:          n,
			Metric:     math.NaN(),
			PredictedN: predicted,
			Failed:     true,
			WallTime:   time.Since(start),
		})
		return 0, err
	}
	metric, fallback = SolutionMetric(coarse, fine)
	c.append(Record{
		Phase:      phase,
		N:          n,
		Metric:     metric,
		PredictedN: predicted,
		Fallback:   fallback,
		WallTime:   time.Since(start),
	})
	return metric, nil
}

// solvePair runs the candidate and its doubled reference through the cache.
func (c *Controller) solvePair(n int) (coarse, fine *VorticityStream.SolveResult, err error) {
	spc := c.sp.SolveParameters
	spc.Nx, spc.Ny = n, n
	if coarse, err = c.cache.Get(&spc); err != nil {
		return nil, nil, err
	}
	spf := c.sp.SolveParameters
	spf.Nx, spf.Ny = 2*n, 2*n
	if fine, err = c.cache.Get(&spf); err != nil {
		return nil, nil, err
	}
	return coarse, fine, nil
}

func (c *Controller) append(r Record) {
	c.iter++
	r.Iteration = c.iter
	c.cum += r.WallTime
	r.Cumulative = c.cum
	c.records = append(c.records, r)
	c.sink.Append(r)
}

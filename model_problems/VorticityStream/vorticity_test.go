package VorticityStream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsunamilab/vortmesh/FD2D"
	"github.com/tsunamilab/vortmesh/InputParameters"
)

func vortexParams() *InputParameters.SolveParameters {
	return &InputParameters.SolveParameters{
		Title: "single Gaussian vortex",
		Nx:    64, Ny: 64,
		Lx: 1, Ly: 1,
		Nu:             0,
		Dt:             5.e-4,
		FinalTime:      5.e-4,
		Method:         InputParameters.MethodFiniteDifference,
		ICType:         "LambOseen",
		ICCoefficients: []float64{0.5, 0.5, 1, 0.1},
	}
}

// Inviscid enstrophy conservation over one RK4 step on a 64x64 unit box.
func TestEnstrophyConservationOneStep(t *testing.T) {
	sp := vortexParams()
	s, err := NewSolver(sp)
	require.NoError(t, err)
	adv, dif := s.CFLNumbers()
	require.Less(t, adv, 0.5)
	require.Less(t, dif, 0.1)
	z0 := Enstrophy(s.Grid, s.Omega)
	s.Step(sp.Dt)
	z1 := Enstrophy(s.Grid, s.Omega)
	assert.Less(t, math.Abs(z1-z0)/z0, 1.e-10)
}

// Energy is conserved alongside enstrophy in the inviscid limit.
func TestEnergyConservationShortRun(t *testing.T) {
	sp := vortexParams()
	sp.FinalTime = 5.e-3
	s, err := NewSolver(sp)
	require.NoError(t, err)
	diag := func() Diagnostics {
		psi := s.Poisson.Solve(s.Omega)
		u, v := FD2D.Velocity(s.Grid, psi)
		return ComputeDiagnostics(s.Grid, s.Omega, u, v)
	}
	d0 := diag()
	for i := 0; i < 10; i++ {
		s.Step(sp.Dt)
	}
	d1 := diag()
	assert.Less(t, math.Abs(d1.Energy-d0.Energy)/d0.Energy, 1.e-9)
	assert.Less(t, math.Abs(d1.Enstrophy-d0.Enstrophy)/d0.Enstrophy, 1.e-9)
}

// Identical inputs produce bitwise-identical results.
func TestSolveIdempotent(t *testing.T) {
	sp := vortexParams()
	sp.FinalTime = 2.e-3
	r1, err := Run(sp, nil)
	require.NoError(t, err)
	r2, err := Run(sp, nil)
	require.NoError(t, err)
	assert.Equal(t, r1.Diagnostics, r2.Diagnostics)
	assert.Equal(t, r1.FinalOmega.Data(), r2.FinalOmega.Data())
	assert.True(t, r1.Success)
}

func TestSnapshots(t *testing.T) {
	sp := vortexParams()
	sp.FinalTime = 1.e-2
	sp.Dt = 1.e-3
	sp.SnapshotTimes = []float64{5.e-3, 0, 1.e-2}
	res, err := Run(sp, nil)
	require.NoError(t, err)
	require.Len(t, res.Snapshots, 3)
	assert.Equal(t, 0.0, res.Snapshots[0].Time)
	assert.InDelta(t, 5.e-3, res.Snapshots[1].Time, 1.e-12)
	assert.InDelta(t, 1.e-2, res.Snapshots[2].Time, 1.e-12)
	// Snapshots are sealed against mutation
	assert.Panics(t, func() { res.Snapshots[0].Omega.Set(0, 0, 1) })
	assert.Panics(t, func() { res.FinalOmega.Set(0, 0, 1) })
	// A request between step boundaries is captured at the end of the first
	// later step and stamped with that capture time
	{
		sp := vortexParams()
		sp.FinalTime = 1.e-2
		sp.Dt = 1.e-3
		sp.SnapshotTimes = []float64{4.5e-3}
		res, err := Run(sp, nil)
		require.NoError(t, err)
		require.Len(t, res.Snapshots, 1)
		assert.InDelta(t, 5.e-3, res.Snapshots[0].Time, 1.e-12)
	}
}

// A wildly unstable dt must surface NumericalDivergenceError, not NaN fields.
func TestNumericalDivergence(t *testing.T) {
	sp := vortexParams()
	sp.Dt = 10
	sp.FinalTime = 100
	_, err := Run(sp, nil)
	var nde *NumericalDivergenceError
	require.ErrorAs(t, err, &nde)
	assert.Greater(t, nde.Step, 0)
}

func TestInitialConditions(t *testing.T) {
	g, err := FD2D.NewGrid(32, 32, 1, 1)
	require.NoError(t, err)
	// Every registered generator produces a finite field with its declared
	// layout
	{
		cases := map[string][]float64{
			"LambOseen":         {0.5, 0.5, 1, 0.1},
			"VortexPair":        {0.3, 0.5, 1, 0.08, 0.7, 0.5, -1, 0.08},
			"MultiVortex":       {0.2, 0.2, 1, 0.05, 0.8, 0.8, 1, 0.05, 0.5, 0.5, -2, 0.1},
			"TaylorGreen":       {1, 2},
			"StretchedGaussian": {0.5, 0.5, 1, 0.1, 0.05, math.Pi / 4},
		}
		assert.Len(t, RegisteredICs(), len(cases))
		for name, coeffs := range cases {
			w, err := BuildIC(g, name, coeffs)
			require.NoError(t, err, name)
			assert.True(t, w.IsFinite(), name)
			assert.Greater(t, w.MaxAbs(), 0.0, name)
		}
	}
	// Wrong-length and out-of-range coefficients name the expected layout
	{
		_, err := BuildIC(g, "LambOseen", []float64{0.5, 0.5, 1})
		var ice *InvalidInitialConditionError
		require.ErrorAs(t, err, &ice)
		assert.Contains(t, ice.Error(), "[x0, y0, circulation, coreRadius]")

		_, err = BuildIC(g, "LambOseen", []float64{0.5, 0.5, 1, -0.1})
		require.ErrorAs(t, err, &ice)
		assert.Contains(t, ice.Error(), "core radius")

		_, err = BuildIC(g, "MultiVortex", []float64{1, 2, 3})
		require.ErrorAs(t, err, &ice)

		_, err = BuildIC(g, "NoSuchVortex", nil)
		require.ErrorAs(t, err, &ice)
	}
	// Taylor-Green has zero mean by construction
	{
		w, err := BuildIC(g, "TaylorGreen", []float64{2, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0, w.Sum(), 1.e-10)
	}
}

func TestVortexPlacements(t *testing.T) {
	g, err := FD2D.NewGrid(32, 32, 1, 2)
	require.NoError(t, err)
	// Every pattern expands to tuples the MultiVortex generator accepts
	{
		for pattern, count := range map[string]int{
			PlacementSingle:   1,
			PlacementGrid:     5,
			PlacementCircular: 6,
			PlacementRandom:   4,
		} {
			coeffs, err := VortexPlacements(pattern, count, 1, 2, 1, 0.05, 7)
			require.NoError(t, err, pattern)
			require.Len(t, coeffs, 4*count, pattern)
			w, err := BuildIC(g, "MultiVortex", coeffs)
			require.NoError(t, err, pattern)
			assert.True(t, w.IsFinite(), pattern)
		}
	}
	// Single sits at the domain center
	{
		coeffs, err := VortexPlacements(PlacementSingle, 1, 1, 2, 1, 0.1, 0)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 1, 1, 0.1}, coeffs)
	}
	// Circular places every vortex at the same radius from the center
	{
		coeffs, err := VortexPlacements(PlacementCircular, 8, 1, 1, 1, 0.05, 0)
		require.NoError(t, err)
		for v := 0; v < len(coeffs); v += 4 {
			r := math.Hypot(coeffs[v]-0.5, coeffs[v+1]-0.5)
			assert.InDelta(t, 0.25, r, 1.e-12)
		}
	}
	// Grid positions are distinct and inside the domain
	{
		coeffs, err := VortexPlacements(PlacementGrid, 7, 1, 2, 1, 0.05, 0)
		require.NoError(t, err)
		seen := map[[2]float64]bool{}
		for v := 0; v < len(coeffs); v += 4 {
			x, y := coeffs[v], coeffs[v+1]
			assert.True(t, x >= 0 && x < 1 && y >= 0 && y < 2)
			seen[[2]float64{x, y}] = true
		}
		assert.Len(t, seen, 7)
	}
	// Random is seed-deterministic and keeps three core radii of separation
	{
		c1, err := VortexPlacements(PlacementRandom, 6, 1, 1, 1, 0.03, 42)
		require.NoError(t, err)
		c2, err := VortexPlacements(PlacementRandom, 6, 1, 1, 1, 0.03, 42)
		require.NoError(t, err)
		assert.Equal(t, c1, c2)
		for a := 0; a < len(c1); a += 4 {
			for b := a + 4; b < len(c1); b += 4 {
				dx := minImage(c1[a]-c1[b], 1)
				dy := minImage(c1[a+1]-c1[b+1], 1)
				assert.GreaterOrEqual(t, math.Hypot(dx, dy), 3*0.03)
			}
		}
	}
	// Invalid requests name the failing pattern
	{
		var ice *InvalidInitialConditionError
		_, err := VortexPlacements("Spiral", 3, 1, 1, 1, 0.05, 0)
		require.ErrorAs(t, err, &ice)
		_, err = VortexPlacements(PlacementSingle, 2, 1, 1, 1, 0.05, 0)
		require.ErrorAs(t, err, &ice)
		_, err = VortexPlacements(PlacementGrid, 0, 1, 1, 1, 0.05, 0)
		require.ErrorAs(t, err, &ice)
		_, err = VortexPlacements(PlacementRandom, 4, 1, 1, 1, -0.05, 0)
		require.ErrorAs(t, err, &ice)
	}
}

func TestDiagnostics(t *testing.T) {
	sp := vortexParams()
	res, err := Run(sp, nil)
	require.NoError(t, err)
	d := res.Diagnostics
	// Peak of a Lamb-Oseen core is circulation/(pi*rc^2)
	assert.InDelta(t, 1/(math.Pi*0.01), d.PeakVorticity, 1.0)
	assert.Greater(t, d.Enstrophy, 0.0)
	assert.Greater(t, d.Energy, 0.0)
	assert.Greater(t, d.PeakSpeed, 0.0)
	// Net circulation of a periodic single-signed vortex is small but
	// nonzero (Gaussian tails); it must at least be finite and stable
	assert.False(t, math.IsNaN(d.Circulation))
}

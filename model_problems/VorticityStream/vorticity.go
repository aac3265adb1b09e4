package VorticityStream

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/tsunamilab/vortmesh/FD2D"
	"github.com/tsunamilab/vortmesh/InputParameters"
	"github.com/tsunamilab/vortmesh/utils"
)

// Solver integrates the 2D incompressible vorticity-streamfunction equations
//
//	dw/dt + J(psi,w) = nu*Lap(w),  Lap(psi) = -w
//
// on a doubly-periodic grid: Arakawa-averaged advection, sparse FD Laplacian
// diffusion, FFT-factored Poisson inversion, classical RK4 stepping. The
// stepping loop is strictly sequential; independent parameter combinations
// parallelize outside (see MeshSearch).
type Solver struct {
	Grid      *FD2D.Grid
	Nu        float64
	Dt        float64
	FinalTime float64
	Omega     utils.Matrix

	Lap     utils.CSR
	Poisson *FD2D.PoissonSolver

	snapshotTimes []float64
	Out           io.Writer

	// RK4 stage storage, reused across all steps
	k1, k2, k3, k4, stage, psi, diff utils.Matrix
}

// Snapshot is an immutable capture of the vorticity field for a requested
// output time. The field is taken at the end of the first step at or after
// the request, and Time records that capture time, not the requested one:
// a request of 0.0045 with dt = 0.001 yields the state at Time = 0.005.
type Snapshot struct {
	Time  float64
	Omega utils.Matrix
}

// SolveResult is immutable once produced.
type SolveResult struct {
	Diagnostics Diagnostics
	Snapshots   []Snapshot
	FinalOmega  utils.Matrix
	FinalTime   float64
	Steps       int
	WallTime    time.Duration
	Success     bool
}

// NewSolver builds the grid, factors the operators, and evaluates the named
// initial condition. Parameters are assumed validated at the boundary; grid
// and initial-condition errors are still surfaced here because they name the
// failing structure precisely.
func NewSolver(sp *InputParameters.SolveParameters) (s *Solver, err error) {
	var (
		g *FD2D.Grid
	)
	if g, err = FD2D.NewGrid(sp.Nx, sp.Ny, sp.Lx, sp.Ly); err != nil {
		return nil, err
	}
	s = &Solver{
		Grid:      g,
		Nu:        sp.Nu,
		Dt:        sp.Dt,
		FinalTime: sp.FinalTime,
		Out:       io.Discard,
	}
	if s.Omega, err = BuildIC(g, sp.ICType, sp.ICCoefficients); err != nil {
		return nil, err
	}
	s.Lap = g.Laplacian()
	if s.Poisson, err = FD2D.NewPoissonSolver(g); err != nil {
		return nil, err
	}
	s.snapshotTimes = append([]float64(nil), sp.SnapshotTimes...)
	sort.Float64s(s.snapshotTimes)
	s.k1 = g.NewField()
	s.k2 = g.NewField()
	s.k3 = g.NewField()
	s.k4 = g.NewField()
	s.stage = g.NewField()
	s.psi = g.NewField()
	s.diff = g.NewField()
	return s, nil
}

// RHS evaluates dw/dt = -J(psi,w) + nu*Lap(w) into rhs, solving the Poisson
// system once for psi.
func (s *Solver) RHS(w, rhs utils.Matrix) {
	var (
		g = s.Grid
	)
	s.Poisson.SolveTo(s.psi, w)
	J := FD2D.ArakawaJacobian(g, s.psi, w)
	copy(rhs.Data(), J.Data())
	rhs.Scale(-1)
	if s.Nu != 0 {
		s.Lap.MulVec(s.diff.Data(), w.Data())
		rhs.Add(s.diff.Scale(s.Nu))
	}
}

// Step advances the vorticity by one classical RK4 step of size dt. No
// adaptive step-size control: the caller owns the stability bounds.
func (s *Solver) Step(dt float64) {
	var (
		w = s.Omega
	)
	s.RHS(w, s.k1)
	s.stageAt(w, s.k1, dt/2)
	s.RHS(s.stage, s.k2)
	s.stageAt(w, s.k2, dt/2)
	s.RHS(s.stage, s.k3)
	s.stageAt(w, s.k3, dt)
	s.RHS(s.stage, s.k4)
	// w += dt/6 * (k1 + 2 k2 + 2 k3 + k4)
	var (
		wd = w.Data()
		a  = dt / 6
	)
	k1d, k2d, k3d, k4d := s.k1.Data(), s.k2.Data(), s.k3.Data(), s.k4.Data()
	for p := range wd {
		wd[p] += a * (k1d[p] + 2*k2d[p] + 2*k3d[p] + k4d[p])
	}
}

func (s *Solver) stageAt(w, k utils.Matrix, h float64) {
	var (
		sd = s.stage.Data()
		wd = w.Data()
		kd = k.Data()
	)
	for p := range sd {
		sd[p] = wd[p] + h*kd[p]
	}
}

// CFLNumbers reports the advective and diffusive stability numbers for the
// current vorticity field. Advective should stay below ~0.5 and diffusive
// below ~0.1 for the explicit scheme; violating them is a configuration
// error the integrator does not correct.
func (s *Solver) CFLNumbers() (advective, diffusive float64) {
	var (
		g    = s.Grid
		hMin = math.Min(g.Dx, g.Dy)
	)
	s.Poisson.SolveTo(s.psi, s.Omega)
	u, v := FD2D.Velocity(g, s.psi)
	var peak2 float64
	ud, vd := u.Data(), v.Data()
	for p := range ud {
		if s2 := ud[p]*ud[p] + vd[p]*vd[p]; s2 > peak2 {
			peak2 = s2
		}
	}
	advective = math.Sqrt(peak2) * s.Dt / hMin
	diffusive = s.Nu * s.Dt / (hMin * hMin)
	return
}

// Solve time-marches to FinalTime, capturing snapshots at the requested
// output times, and extracts diagnostics from the final state. A non-finite
// field aborts with NumericalDivergenceError; the partial result is not
// returned and is never cached upstream.
func (s *Solver) Solve() (res *SolveResult, err error) {
	var (
		start     = time.Now()
		Time      float64
		snapshots []Snapshot
		snapNext  = 0
		logEvery  = 100
	)
	nSteps := 0
	dt := s.Dt
	if s.FinalTime > 0 {
		ns := math.Ceil(s.FinalTime / s.Dt)
		dt = s.FinalTime / ns
		nSteps = int(ns)
	}
	fmt.Fprintf(s.Out, "Solving: %dx%d grid, dt = %8.3g, %d steps to T = %g\n",
		s.Grid.Nx, s.Grid.Ny, dt, nSteps, s.FinalTime)
	for snapNext < len(s.snapshotTimes) && s.snapshotTimes[snapNext] <= 0 {
		snapshots = append(snapshots, s.capture(0))
		snapNext++
	}
	for step := 1; step <= nSteps; step++ {
		s.Step(dt)
		Time = float64(step) * dt
		if !s.Omega.IsFinite() {
			return nil, &NumericalDivergenceError{Step: step, Time: Time}
		}
		for snapNext < len(s.snapshotTimes) && s.snapshotTimes[snapNext] <= Time+1.e-12 {
			snapshots = append(snapshots, s.capture(Time))
			snapNext++
		}
		if step%logEvery == 0 || step == nSteps {
			fmt.Fprintf(s.Out, "Time = %8.4f, step = %6d, max|w| = %8.4f, enstrophy = %10.6g\n",
				Time, step, s.Omega.MaxAbs(), Enstrophy(s.Grid, s.Omega))
		}
	}
	s.Poisson.SolveTo(s.psi, s.Omega)
	u, v := FD2D.Velocity(s.Grid, s.psi)
	final := s.Omega.Copy()
	res = &SolveResult{
		Diagnostics: ComputeDiagnostics(s.Grid, s.Omega, u, v),
		Snapshots:   snapshots,
		FinalOmega:  final.SetReadOnly("SolveResult.FinalOmega"),
		FinalTime:   s.FinalTime,
		Steps:       nSteps,
		WallTime:    time.Since(start),
		Success:     true,
	}
	return res, nil
}

func (s *Solver) capture(t float64) Snapshot {
	w := s.Omega.Copy()
	return Snapshot{Time: t, Omega: w.SetReadOnly("Snapshot.Omega")}
}

// Run builds a solver from validated parameters and executes one solve.
func Run(sp *InputParameters.SolveParameters, out io.Writer) (*SolveResult, error) {
	s, err := NewSolver(sp)
	if err != nil {
		return nil, err
	}
	if out != nil {
		s.Out = out
	}
	return s.Solve()
}

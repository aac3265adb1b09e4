package FD2D

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tsunamilab/vortmesh/utils"
)

// PoissonSolver inverts the periodic discrete Laplacian of a Grid: given
// vorticity w it returns the streamfunction psi with L*psi = -w.
//
// The operator is factored once at construction: the periodic FD Laplacian is
// diagonalized exactly by the discrete Fourier basis, with axis eigenvalues
// (2*cos(2*pi*k/N) - 2)/h^2, so a solve is two FFT passes, a diagonal scale,
// and two inverse passes. The plans and eigenvalue tables are reused across
// every RK4 stage and every time step.
//
// The periodic operator has a one-dimensional null space (constants). The
// additive constant is pinned by zeroing the (0,0) mode, so psi always has
// zero mean.
type PoissonSolver struct {
	g          *Grid
	fx, fy     *fourier.CmplxFFT
	lamX, lamY utils.Vector // eigenvalues of the 1D axis Laplacians
	work       []complex128 // Ny*Nx spectral scratch
	col        []complex128 // Ny column scratch
}

func NewPoissonSolver(g *Grid) (ps *PoissonSolver, err error) {
	ps = &PoissonSolver{
		g:    g,
		fx:   fourier.NewCmplxFFT(g.Nx),
		fy:   fourier.NewCmplxFFT(g.Ny),
		lamX: axisEigenvalues(g.Nx, g.Dx),
		lamY: axisEigenvalues(g.Ny, g.Dy),
		work: make([]complex128, g.Nx*g.Ny),
		col:  make([]complex128, g.Ny),
	}
	// All modes other than (0,0) must be invertible, else the periodic
	// assembly is malformed.
	for ky := 0; ky < g.Ny; ky++ {
		for kx := 0; kx < g.Nx; kx++ {
			if kx == 0 && ky == 0 {
				continue
			}
			lam := ps.lamX.AtVec(kx) + ps.lamY.AtVec(ky)
			if math.Abs(lam) < 1.e-300 || math.IsNaN(lam) {
				return nil, &SingularSystemError{kx, ky,
					"zero or non-finite Laplacian eigenvalue outside the pinned mean mode"}
			}
		}
	}
	return ps, nil
}

func axisEigenvalues(n int, h float64) (lam utils.Vector) {
	lam = utils.NewVector(n)
	data := lam.Data()
	for k := 0; k < n; k++ {
		data[k] = (2*math.Cos(2*math.Pi*float64(k)/float64(n)) - 2) / (h * h)
	}
	return
}

// Solve returns the zero-mean streamfunction for vorticity w.
func (ps *PoissonSolver) Solve(w utils.Matrix) (psi utils.Matrix) {
	psi = ps.g.NewField()
	ps.SolveTo(psi, w)
	return
}

// SolveTo computes the streamfunction into psi, reusing its storage.
func (ps *PoissonSolver) SolveTo(psi, w utils.Matrix) {
	var (
		g    = ps.g
		src  = w.Data()
		dst  = psi.Data()
		work = ps.work
		col  = ps.col
	)
	for p, v := range src {
		work[p] = complex(v, 0)
	}
	// Forward transform, rows then columns
	for j := 0; j < g.Ny; j++ {
		row := work[j*g.Nx : (j+1)*g.Nx]
		ps.fx.Coefficients(row, row)
	}
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			col[j] = work[j*g.Nx+i]
		}
		ps.fy.Coefficients(col, col)
		for j := 0; j < g.Ny; j++ {
			work[j*g.Nx+i] = col[j]
		}
	}
	// psi_hat = -w_hat / lambda, mean mode pinned to zero
	for ky := 0; ky < g.Ny; ky++ {
		for kx := 0; kx < g.Nx; kx++ {
			p := ky*g.Nx + kx
			if kx == 0 && ky == 0 {
				work[p] = 0
				continue
			}
			work[p] = -work[p] / complex(ps.lamX.AtVec(kx)+ps.lamY.AtVec(ky), 0)
		}
	}
	// Inverse transform, columns then rows, with 1/(Nx*Ny) normalization
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			col[j] = work[j*g.Nx+i]
		}
		ps.fy.Sequence(col, col)
		for j := 0; j < g.Ny; j++ {
			work[j*g.Nx+i] = col[j]
		}
	}
	scale := 1. / float64(g.Nx*g.Ny)
	for j := 0; j < g.Ny; j++ {
		row := work[j*g.Nx : (j+1)*g.Nx]
		ps.fx.Sequence(row, row)
		for i, v := range row {
			dst[j*g.Nx+i] = real(v) * scale
		}
	}
}

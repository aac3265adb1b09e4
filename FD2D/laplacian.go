package FD2D

import (
	"github.com/tsunamilab/vortmesh/utils"
)

// Laplacian1D assembles the n x n second-order periodic finite difference
// Laplacian with spacing h: tridiagonal [1 -2 1]/h^2 with wrap-around corner
// entries closing the period.
func Laplacian1D(n int, h float64) utils.CSR {
	var (
		d = utils.NewDOK(n, n)
		w = 1. / (h * h)
	)
	for i := 0; i < n; i++ {
		d.Accumulate(i, i, -2*w)
		d.Accumulate(i, (i+1)%n, w)
		d.Accumulate(i, (i+n-1)%n, w)
	}
	return d.ToCSR()
}

// Laplacian assembles the 2D periodic Laplacian over the grid by combining
// the two 1D axis operators: L2D = Lx (x) Iy + Ix (x) Ly on flat storage
// p = j*Nx + i. The result is the operator used both for the viscous term and
// (diagonalized, see PoissonSolver) for streamfunction inversion.
func (g *Grid) Laplacian() utils.CSR {
	var (
		n  = g.Nx * g.Ny
		d  = utils.NewDOK(n, n)
		lx = Laplacian1D(g.Nx, g.Dx)
		ly = Laplacian1D(g.Ny, g.Dy)
	)
	lx.DoNonZero(func(i, i2 int, v float64) {
		for j := 0; j < g.Ny; j++ {
			d.Accumulate(g.Flat(i, j), g.Flat(i2, j), v)
		}
	})
	ly.DoNonZero(func(j, j2 int, v float64) {
		for i := 0; i < g.Nx; i++ {
			d.Accumulate(g.Flat(i, j), g.Flat(i, j2), v)
		}
	})
	return d.ToCSR()
}

// ApplyOperator computes L*f over a field, returning a new field. The
// operator must have been assembled on a grid of the same shape as f.
func ApplyOperator(L utils.CSR, f utils.Matrix) (R utils.Matrix) {
	var (
		nr, nc = f.Dims()
	)
	R = utils.NewMatrix(nr, nc)
	L.MulVec(R.Data(), f.Data())
	return
}

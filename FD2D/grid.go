package FD2D

import (
	"fmt"

	"github.com/tsunamilab/vortmesh/utils"
)

// Grid is a uniform, doubly-periodic rectangular grid. Index Nx wraps to 0 in
// x, Ny wraps to 0 in y, so the coordinate axes carry no duplicated endpoint:
// x[i] = i*Dx with Dx = Lx/Nx. A scalar field on the grid is a utils.Matrix
// with Ny rows (y index j) and Nx columns (x index i).
//
// Grids are immutable after construction.
type Grid struct {
	Nx, Ny int
	Lx, Ly float64
	Dx, Dy float64
	Xv, Yv utils.Vector // coordinate axes
	X, Y   utils.Matrix // coordinate matrices, read-only
}

type InvalidGridError struct {
	Nx, Ny int
	Lx, Ly float64
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("invalid grid (Nx=%d, Ny=%d, Lx=%g, Ly=%g): %s",
		e.Nx, e.Ny, e.Lx, e.Ly, e.Reason)
}

// SingularSystemError reports a malformed periodic operator assembly. It is a
// fatal configuration error, not recoverable at runtime.
type SingularSystemError struct {
	Kx, Ky int
	Reason string
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("singular periodic system at mode (%d,%d): %s", e.Kx, e.Ky, e.Reason)
}

func NewGrid(Nx, Ny int, Lx, Ly float64) (g *Grid, err error) {
	if Nx < 2 || Ny < 2 {
		return nil, &InvalidGridError{Nx, Ny, Lx, Ly, "Nx and Ny must be at least 2"}
	}
	if Lx <= 0 || Ly <= 0 {
		return nil, &InvalidGridError{Nx, Ny, Lx, Ly, "Lx and Ly must be positive"}
	}
	g = &Grid{
		Nx: Nx, Ny: Ny,
		Lx: Lx, Ly: Ly,
		Dx: Lx / float64(Nx),
		Dy: Ly / float64(Ny),
	}
	g.Xv = utils.NewRangeVector(Nx, 0, g.Dx)
	g.Yv = utils.NewRangeVector(Ny, 0, g.Dy)
	g.X = utils.NewMatrix(Ny, Nx)
	g.Y = utils.NewMatrix(Ny, Nx)
	for j := 0; j < Ny; j++ {
		for i := 0; i < Nx; i++ {
			g.X.Set(j, i, g.Xv.AtVec(i))
			g.Y.Set(j, i, g.Yv.AtVec(j))
		}
	}
	g.X.SetReadOnly("Grid.X")
	g.Y.SetReadOnly("Grid.Y")
	return g, nil
}

// NewField allocates a zeroed scalar field over the grid.
func (g *Grid) NewField() utils.Matrix {
	return utils.NewMatrix(g.Ny, g.Nx)
}

// Flat is the storage index of grid point (i,j) in a field's backing slice.
func (g *Grid) Flat(i, j int) int {
	return j*g.Nx + i
}

// CellArea is the quadrature weight of one grid point.
func (g *Grid) CellArea() float64 {
	return g.Dx * g.Dy
}

// Wrap indices. Arguments may be offset by at most one grid period.
func (g *Grid) WrapX(i int) int { return (i + g.Nx) % g.Nx }
func (g *Grid) WrapY(j int) int { return (j + g.Ny) % g.Ny }

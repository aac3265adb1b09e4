package FD2D

import (
	"github.com/tsunamilab/vortmesh/utils"
)

// Velocity reconstructs (u,v) from the streamfunction via second-order
// centered differences with periodic wrap:
//
//	u = -dpsi/dy, v = dpsi/dx
func Velocity(g *Grid, psi utils.Matrix) (u, v utils.Matrix) {
	u = g.NewField()
	v = g.NewField()
	VelocityTo(g, psi, u, v)
	return
}

// VelocityTo reconstructs into existing fields, reusing their storage.
func VelocityTo(g *Grid, psi, u, v utils.Matrix) {
	var (
		p   = psi.Data()
		ud  = u.Data()
		vd  = v.Data()
		hx2 = 2 * g.Dx
		hy2 = 2 * g.Dy
	)
	for j := 0; j < g.Ny; j++ {
		jp := g.WrapY(j + 1)
		jm := g.WrapY(j - 1)
		for i := 0; i < g.Nx; i++ {
			ip := g.WrapX(i + 1)
			im := g.WrapX(i - 1)
			q := g.Flat(i, j)
			ud[q] = -(p[g.Flat(i, jp)] - p[g.Flat(i, jm)]) / hy2
			vd[q] = (p[g.Flat(ip, j)] - p[g.Flat(im, j)]) / hx2
		}
	}
}

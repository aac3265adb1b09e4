package VorticityStream

import (
	"math"

	"github.com/tsunamilab/vortmesh/FD2D"
	"github.com/tsunamilab/vortmesh/utils"
)

// Diagnostics are the named scalars extracted from a solved field.
type Diagnostics struct {
	PeakVorticity float64 // max |w|
	Enstrophy     float64 // 0.5 * sum(w^2) dA
	Energy        float64 // 0.5 * sum(u^2+v^2) dA
	PeakSpeed     float64 // max sqrt(u^2+v^2)
	Circulation   float64 // sum(w) dA, stays ~0 on periodic domains
}

func ComputeDiagnostics(g *FD2D.Grid, w, u, v utils.Matrix) (d Diagnostics) {
	var (
		dA = g.CellArea()
		ud = u.Data()
		vd = v.Data()
	)
	d.PeakVorticity = w.MaxAbs()
	d.Enstrophy = 0.5 * w.SumSq() * dA
	d.Circulation = w.Sum() * dA
	var ke, peak2 float64
	for p := range ud {
		s2 := ud[p]*ud[p] + vd[p]*vd[p]
		ke += s2
		if s2 > peak2 {
			peak2 = s2
		}
	}
	d.Energy = 0.5 * ke * dA
	d.PeakSpeed = math.Sqrt(peak2)
	return
}

// Enstrophy is the standalone form used by conservation checks.
func Enstrophy(g *FD2D.Grid, w utils.Matrix) float64 {
	return 0.5 * w.SumSq() * g.CellArea()
}

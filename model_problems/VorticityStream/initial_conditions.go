package VorticityStream

import (
	"math"
	"sort"

	"github.com/tsunamilab/vortmesh/FD2D"
	"github.com/tsunamilab/vortmesh/utils"
)

// ICSpec declares a named initial-condition generator together with its
// expected coefficient-vector layout. Stride > 0 with CoeffLen == 0 means the
// vector length must be a positive multiple of Stride.
type ICSpec struct {
	CoeffLen int
	Stride   int
	Layout   string
	Generate func(g *FD2D.Grid, coeffs []float64) utils.Matrix
}

var icRegistry = map[string]ICSpec{
	"LambOseen": {
		CoeffLen: 4,
		Layout:   "[x0, y0, circulation, coreRadius]",
		Generate: func(g *FD2D.Grid, c []float64) utils.Matrix {
			return gaussianVortices(g, c)
		},
	},
	"VortexPair": {
		CoeffLen: 8,
		Layout:   "[x0, y0, circulation, coreRadius] x 2",
		Generate: func(g *FD2D.Grid, c []float64) utils.Matrix {
			return gaussianVortices(g, c)
		},
	},
	"MultiVortex": {
		Stride: 4,
		Layout: "[x0, y0, circulation, coreRadius] x k",
		Generate: func(g *FD2D.Grid, c []float64) utils.Matrix {
			return gaussianVortices(g, c)
		},
	},
	"TaylorGreen": {
		CoeffLen: 2,
		Layout:   "[amplitude, modeCount]",
		Generate: func(g *FD2D.Grid, c []float64) utils.Matrix {
			var (
				w  = g.NewField()
				a  = c[0]
				k  = math.Round(c[1])
				kx = 2 * math.Pi * k / g.Lx
				ky = 2 * math.Pi * k / g.Ly
			)
			for j := 0; j < g.Ny; j++ {
				for i := 0; i < g.Nx; i++ {
					w.Set(j, i, a*math.Sin(kx*g.Xv.AtVec(i))*math.Sin(ky*g.Yv.AtVec(j)))
				}
			}
			return w
		},
	},
	"StretchedGaussian": {
		CoeffLen: 6,
		Layout:   "[x0, y0, amplitude, sigmaX, sigmaY, theta]",
		Generate: func(g *FD2D.Grid, c []float64) utils.Matrix {
			var (
				w            = g.NewField()
				x0, y0, a    = c[0], c[1], c[2]
				sx, sy, th   = c[3], c[4], c[5]
				cosTh, sinTh = math.Cos(th), math.Sin(th)
			)
			for j := 0; j < g.Ny; j++ {
				for i := 0; i < g.Nx; i++ {
					dx := minImage(g.Xv.AtVec(i)-x0, g.Lx)
					dy := minImage(g.Yv.AtVec(j)-y0, g.Ly)
					xr := cosTh*dx + sinTh*dy
					yr := -sinTh*dx + cosTh*dy
					w.Set(j, i, a*math.Exp(-(xr*xr/(2*sx*sx)+yr*yr/(2*sy*sy))))
				}
			}
			return w
		},
	},
}

// RegisteredICs returns the generator names in sorted order.
func RegisteredICs() (names []string) {
	for name := range icRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// BuildIC produces w(x,y,0) for the named generator, validating the
// coefficient vector against the generator's declared layout.
func BuildIC(g *FD2D.Grid, name string, coeffs []float64) (w utils.Matrix, err error) {
	spec, ok := icRegistry[name]
	if !ok {
		return w, &InvalidInitialConditionError{Name: name, Reason: "unknown generator"}
	}
	switch {
	case spec.CoeffLen > 0 && len(coeffs) != spec.CoeffLen:
		return w, &InvalidInitialConditionError{name, spec.Layout, len(coeffs), "wrong coefficient count"}
	case spec.Stride > 0 && (len(coeffs) == 0 || len(coeffs)%spec.Stride != 0):
		return w, &InvalidInitialConditionError{name, spec.Layout, len(coeffs), "coefficient count must be a positive multiple of 4"}
	}
	if err = validateCoeffs(name, spec, coeffs); err != nil {
		return
	}
	return spec.Generate(g, coeffs), nil
}

// Generators built from Gaussian cores require positive length scales.
func validateCoeffs(name string, spec ICSpec, coeffs []float64) error {
	switch name {
	case "LambOseen", "VortexPair", "MultiVortex":
		for v := 0; v < len(coeffs); v += 4 {
			if coeffs[v+3] <= 0 {
				return &InvalidInitialConditionError{name, spec.Layout, len(coeffs), "core radius must be positive"}
			}
		}
	case "TaylorGreen":
		if coeffs[1] < 1 {
			return &InvalidInitialConditionError{name, spec.Layout, len(coeffs), "mode count must be at least 1"}
		}
	case "StretchedGaussian":
		if coeffs[3] <= 0 || coeffs[4] <= 0 {
			return &InvalidInitialConditionError{name, spec.Layout, len(coeffs), "sigmaX and sigmaY must be positive"}
		}
	}
	return nil
}

// gaussianVortices sums Lamb-Oseen cores given [x0,y0,circulation,rc] tuples,
// using minimum-image distances so each core is periodic.
func gaussianVortices(g *FD2D.Grid, coeffs []float64) (w utils.Matrix) {
	w = g.NewField()
	for v := 0; v < len(coeffs); v += 4 {
		var (
			x0, y0 = coeffs[v], coeffs[v+1]
			gamma  = coeffs[v+2]
			rc     = coeffs[v+3]
			peak   = gamma / (math.Pi * rc * rc)
		)
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				dx := minImage(g.Xv.AtVec(i)-x0, g.Lx)
				dy := minImage(g.Yv.AtVec(j)-y0, g.Ly)
				r2 := dx*dx + dy*dy
				w.Set(j, i, w.At(j, i)+peak*math.Exp(-r2/(rc*rc)))
			}
		}
	}
	return
}

func minImage(d, period float64) float64 {
	return d - period*math.Round(d/period)
}

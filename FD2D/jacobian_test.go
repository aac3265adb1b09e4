package FD2D

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsunamilab/vortmesh/utils"
)

// The discrete conservation identities hold for arbitrary fields, so random
// data is the strongest test: sum(J) = 0, sum(w*J) = 0 (enstrophy) and
// sum(psi*J) = 0 (energy) for the averaged operator, while the ++ stencil
// alone violates the quadratic identities by O(1).
func TestArakawaConservation(t *testing.T) {
	g, err := NewGrid(32, 32, 1, 1)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))
	psi := g.NewField()
	w := g.NewField()
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			psi.Set(j, i, 2*rng.Float64()-1)
			w.Set(j, i, 2*rng.Float64()-1)
		}
	}
	scale := func(J utils.Matrix, f utils.Matrix) (s float64) {
		jd, fd := J.Data(), f.Data()
		for p := range jd {
			s += math.Abs(jd[p] * fd[p])
		}
		return
	}
	dot := func(J utils.Matrix, f utils.Matrix) (s float64) {
		jd, fd := J.Data(), f.Data()
		for p := range jd {
			s += jd[p] * fd[p]
		}
		return
	}
	JA := ArakawaJacobian(g, psi, w)
	J1 := JacobianPP(g, psi, w)
	// Mean vorticity: every stencil conserves it
	assert.True(t, near(JA.Sum()/scale(JA, w.Copy().AddScalar(1)), 0, 1.e-12))
	// Quadratic invariants: only the average conserves both
	assert.True(t, near(dot(JA, w)/scale(JA, w), 0, 1.e-11))
	assert.True(t, near(dot(JA, psi)/scale(JA, psi), 0, 1.e-11))
	assert.Greater(t, math.Abs(dot(J1, w))/scale(J1, w), 1.e-6)
	assert.Greater(t, math.Abs(dot(J1, psi))/scale(J1, psi), 1.e-6)
}

// All three stencils agree to second order on smooth fields: refining the
// grid shrinks their mutual differences by ~4x.
func TestJacobianStencilsEquivalent(t *testing.T) {
	maxDiff := func(n int) float64 {
		g, err := NewGrid(n, n, 1, 1)
		require.NoError(t, err)
		psi := g.NewField()
		w := g.NewField()
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				x, y := g.Xv.AtVec(i), g.Yv.AtVec(j)
				psi.Set(j, i, math.Sin(2*math.Pi*x)*math.Cos(2*math.Pi*y))
				w.Set(j, i, math.Cos(4*math.Pi*x)*math.Sin(2*math.Pi*y))
			}
		}
		d12 := JacobianPP(g, psi, w).Subtract(JacobianPX(g, psi, w)).MaxAbs()
		d13 := JacobianPP(g, psi, w).Subtract(JacobianXP(g, psi, w)).MaxAbs()
		return math.Max(d12, d13)
	}
	c, f := maxDiff(32), maxDiff(64)
	assert.Greater(t, c/f, 3.0)
	assert.Less(t, c/f, 5.0)
}

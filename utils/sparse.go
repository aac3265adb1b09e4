package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is the assembly format for sparse operators: cheap random writes while
// stencil coefficients are accumulated, then frozen to CSR for application.
type DOK struct {
	M    *sparse.DOK
	name string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		"unnamed",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.M.Set(i, j, val)
	return m
}

// Accumulate adds val to entry (i,j), the stencil-assembly primitive.
func (m DOK) Accumulate(i, j int, val float64) DOK { // Changes receiver
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

// CSR is the frozen application format for sparse operators.
type CSR struct {
	M    *sparse.CSR
	name string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	m.M.DoNonZero(fn)
}

// MulVec computes dst = M*src over flat field storage. dst and src must not
// alias.
func (m CSR) MulVec(dst, src []float64) {
	var (
		nr, nc = m.Dims()
	)
	if len(dst) != nr || len(src) != nc {
		err := fmt.Errorf("dimension mismatch in MulVec: operator is %dx%d, len(dst) = %d, len(src) = %d", nr, nc, len(dst), len(src))
		panic(err)
	}
	for i := range dst {
		dst[i] = 0
	}
	m.M.DoNonZero(func(i, j int, v float64) {
		dst[i] += v * src[j]
	})
}

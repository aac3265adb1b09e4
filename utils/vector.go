package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vector wraps a gonum dense vector, used for 1D coordinate axes and operator
// eigenvalue tables.
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v\n", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{v}
	return
}

// Len and AtVec minimally satisfy the mat.Vector interface, with Dims/At via V.
func (v Vector) Len() int             { return v.V.Len() }
func (v Vector) AtVec(i int) float64  { return v.V.AtVec(i) }
func (v Vector) Dims() (r, c int)     { return v.V.Dims() }
func (v Vector) At(i, j int) float64  { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix        { return v.V.T() }
func (v Vector) Data() []float64      { return v.V.RawVector().Data }
func (v Vector) Set(i int, a float64) { v.V.SetVec(i, a) }

func (v Vector) Copy() (R Vector) {
	R = NewVector(v.Len())
	copy(R.Data(), v.Data())
	return
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	v.V.ScaleVec(a, v.V)
	return v
}

// NewRangeVector returns n evenly spaced values starting at min with
// spacing h, the periodic coordinate axis convention (no endpoint duplicate).
func NewRangeVector(n int, min, h float64) (R Vector) {
	R = NewVector(n)
	data := R.Data()
	for i := 0; i < n; i++ {
		data[i] = min + float64(i)*h
	}
	return
}

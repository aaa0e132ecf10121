// Package cla provides the small amount of complex linear algebra the CAR(p)
// state-space code needs, built on gonum's real routines.
//
// Complex n×n matrices are mapped to 2n×2n real matrices with the standard
// embedding
//
//	A = X + iY  ->  [[X, -Y], [Y, X]]
//
// so that a complex solve becomes a real LU solve and a Hermitian covariance
// becomes a real symmetric covariance of the stacked [Re; Im] parts.
package cla

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Embed returns the real 2n×2n embedding of the complex n×n matrix a.
func Embed(a mat.CMatrix) *mat.Dense {
	n, c := a.Dims()
	if n != c {
		panic(mat.ErrSquare)
	}
	m := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := a.At(i, j)
			m.Set(i, j, real(v))
			m.Set(i, j+n, -imag(v))
			m.Set(i+n, j, imag(v))
			m.Set(i+n, j+n, real(v))
		}
	}
	return m
}

// EmbedHermitian returns the real symmetric 2n×2n embedding of the Hermitian
// matrix h. Only the upper triangle of h is read.
func EmbedHermitian(h mat.CMatrix) *mat.SymDense {
	n, c := h.Dims()
	if n != c {
		panic(mat.ErrSquare)
	}
	s := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := h.At(i, j)
			s.SetSym(i, j, real(v))
			s.SetSym(i+n, j+n, real(v))
			// Upper-right block is -Im(h), lower-left is Im(h) = -Im(h)ᵀ.
			s.SetSym(i, j+n, -imag(v))
			if j != i {
				s.SetSym(j, i+n, imag(v))
			}
		}
	}
	return s
}

// Solve returns x with a·x = b for a square complex matrix a.
//
// The system is solved through its real embedding with an LU factorization.
// Ill-conditioned systems are not reported; an exactly singular system yields
// a vector of NaNs.
func Solve(a mat.CMatrix, b []complex128) []complex128 {
	n, _ := a.Dims()
	if len(b) != n {
		panic(mat.ErrShape)
	}

	rhs := mat.NewVecDense(2*n, nil)
	for i, v := range b {
		rhs.SetVec(i, real(v))
		rhs.SetVec(i+n, imag(v))
	}

	var lu mat.LU
	lu.Factorize(Embed(a))

	x := make([]complex128, n)
	var sol mat.VecDense
	if err := lu.SolveVecTo(&sol, false, rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			for i := range x {
				x[i] = cmplx.NaN()
			}
			return x
		}
	}
	for i := range x {
		x[i] = complex(sol.AtVec(i), sol.AtVec(i+n))
	}
	return x
}

// Clone returns a newly allocated copy of a.
func Clone(a mat.CMatrix) *mat.CDense {
	r, c := a.Dims()
	m := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, a.At(i, j))
		}
	}
	return m
}

// Sum returns the sum of all elements of a.
func Sum(a mat.CMatrix) complex128 {
	r, c := a.Dims()
	var s complex128
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			s += a.At(i, j)
		}
	}
	return s
}

// RowSums returns the vector of row sums of a.
func RowSums(a mat.CMatrix) []complex128 {
	r, c := a.Dims()
	out := make([]complex128, r)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i] += a.At(i, j)
		}
	}
	return out
}

func nanFill(x []float64) {
	for i := range x {
		x[i] = math.NaN()
	}
}

package carp

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gocarma/internal/cla"
)

// UnitVariance returns the variance of a stationary CAR(p) process driven by
// white noise of unit variance:
//
//	Re Σ_k 1 / D_k,  D_k = -2·Re(r_k) · ∏_{l≠k} (r_l - r_k)(conj(r_l) + r_k)
//
// Nearly coincident roots make the D_k tiny and the result unreliable; the
// caller is expected to have run ValidateRoots.
func UnitVariance(roots []complex128) float64 {
	var sum complex128
	for k, rk := range roots {
		denom := complex(-2*real(rk), 0)
		for l, rl := range roots {
			if l != k {
				denom *= (rl - rk) * (cmplx.Conj(rl) + rk)
			}
		}
		sum += 1 / denom
	}
	return real(sum)
}

// Variance returns the marginal variance of the CAR(p) process with
// driving-noise variance sigsqr.
func Variance(sigsqr float64, roots []complex128) float64 {
	return sigsqr * UnitVariance(roots)
}

// NoiseVariance returns the driving-noise variance σ² that gives the process
// the marginal variance variance.
func NoiseVariance(variance float64, roots []complex128) float64 {
	return variance / UnitVariance(roots)
}

// rotatedInput returns J solving E·J = e_p, where E is the Vandermonde
// matrix with rows 1, R, R², ..., R^(p-1). J is the driving-noise input
// vector expressed in the basis that diagonalizes the state transition.
func rotatedInput(roots []complex128) []complex128 {
	p := len(roots)
	eigen := mat.NewCDense(p, p, nil)
	for j, r := range roots {
		pow := complex(1, 0)
		for k := 0; k < p; k++ {
			eigen.Set(k, j, pow)
			pow *= r
		}
	}
	input := make([]complex128, p)
	input[p-1] = 1
	return cla.Solve(eigen, input)
}

// StationaryCovariance returns the p×p covariance of the rotated state
// vector at equilibrium,
//
//	S[j,k] = -σ²·J_j·conj(J_k) / (r_j + conj(r_k)),
//
// the closed-form solution of the continuous Lyapunov equation for a
// diagonal transition. S is Hermitian by construction. The rotated
// moving-average weights of a CAR(p) model are all ones, so the process
// variance is Re Σ_jk S[j,k].
func StationaryCovariance(roots []complex128, sigsqr float64) (*mat.CDense, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}
	p := len(roots)
	j := rotatedInput(roots)

	s := mat.NewCDense(p, p, nil)
	for col := 0; col < p; col++ {
		jc := cmplx.Conj(j[col])
		rc := cmplx.Conj(roots[col])
		for row := 0; row < p; row++ {
			s.Set(row, col, complex(-sigsqr, 0)*j[row]*jc/(roots[row]+rc))
		}
	}
	return s, nil
}

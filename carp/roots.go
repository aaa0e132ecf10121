package carp

import (
	"fmt"
	"math"
	"math/cmplx"
)

// DistinctTolerance is the relative separation |r_i - r_j| / |r_i + r_j|
// below which two roots are treated as equal.
const DistinctTolerance = 1e-8

// imagTolerance bounds the imaginary residual of an expanded coefficient,
// relative to its magnitude.
const imagTolerance = 1e-8

// RootsFromQPO returns the characteristic polynomial roots for a set of
// Lorentzian (quasi-periodic oscillation) widths and centroids.
//
// Pair i contributes -2π(width_i + i·centroid_i) followed by its conjugate.
// When the total number of parameters is odd the last width is a
// non-oscillatory component and contributes the real root -2π·width_last.
// So p = len(widths) + len(centroids) and len(widths) is either
// len(centroids) or len(centroids)+1.
func RootsFromQPO(widths, centroids []float64) ([]complex128, error) {
	nw, nc := len(widths), len(centroids)
	if nw != nc && nw != nc+1 {
		return nil, fmt.Errorf("%w: %d widths for %d centroids", ErrShape, nw, nc)
	}
	p := nw + nc
	if p == 0 {
		return nil, ErrNoRoots
	}
	for i, w := range widths {
		if !(w > 0) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: width[%d] = %v", ErrInvalidParameter, i, w)
		}
	}
	for i, c := range centroids {
		if !(c >= 0) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: centroid[%d] = %v", ErrInvalidParameter, i, c)
		}
	}

	roots := make([]complex128, p)
	for i := 0; i < p/2; i++ {
		r := complex(-2*math.Pi*widths[i], -2*math.Pi*centroids[i])
		roots[2*i] = r
		roots[2*i+1] = cmplx.Conj(r)
	}
	if p%2 == 1 {
		roots[p-1] = complex(-2*math.Pi*widths[nw-1], 0)
	}
	return roots, nil
}

// CoefficientsFromRoots expands the monic polynomial ∏(x - r_k) and returns
// its coefficients, highest power first, so coefs[0] == 1 and
// len(coefs) == len(roots)+1.
//
// The roots must be closed under conjugation; an imaginary residual in the
// expansion larger than rounding error is reported as ErrMalformedRoots.
func CoefficientsFromRoots(roots []complex128) ([]float64, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	poly := make([]complex128, len(roots)+1)
	poly[0] = 1
	for k, r := range roots {
		// Multiply the degree-k polynomial in poly[:k+1] by (x - r).
		for j := k + 1; j > 0; j-- {
			poly[j] -= r * poly[j-1]
		}
	}

	coefs := make([]float64, len(poly))
	for i, c := range poly {
		if math.Abs(imag(c)) > imagTolerance*math.Max(1, cmplx.Abs(c)) {
			return nil, fmt.Errorf("%w: coefficient %d has imaginary part %g", ErrMalformedRoots, i, imag(c))
		}
		coefs[i] = real(c)
	}
	coefs[0] = 1
	return coefs, nil
}

// ValidateRoots checks that a root set describes a stationary CAR(p)
// process: it is non-empty, every root has a negative real part, and no two
// roots coincide within DistinctTolerance.
func ValidateRoots(roots []complex128) error {
	if len(roots) == 0 {
		return ErrNoRoots
	}
	for k, r := range roots {
		if !(real(r) < 0) {
			return fmt.Errorf("%w: root %d = %v", ErrNonStationary, k, r)
		}
	}
	for i := 0; i < len(roots); i++ {
		for j := i + 1; j < len(roots); j++ {
			diff := cmplx.Abs(roots[i]-roots[j]) / cmplx.Abs(roots[i]+roots[j])
			if !(diff > DistinctTolerance) {
				return fmt.Errorf("%w: roots %d and %d = %v", ErrDuplicateRoots, i, j, roots[i])
			}
		}
	}
	return nil
}

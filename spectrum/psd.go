package spectrum

import (
	"errors"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Errors returned by this package.
var (
	ErrLengthMismatch    = errors.New("spectrum: input lengths differ")
	ErrEmptyEnsemble     = errors.New("spectrum: no posterior draws")
	ErrInvalidPercentile = errors.New("spectrum: percentile must lie in (0, 100)")
	ErrInvalidSubsample  = errors.New("spectrum: subsample size must lie in [1, number of draws]")
	ErrInvalidSampling   = errors.New("spectrum: invalid sampling")
)

// PSD returns the power spectral density of a CAR(p) process at the given
// frequencies:
//
//	PSD(f) = σ² / |α(2πi·f)|²
//
// where α is the autoregressive polynomial with coefficients coefs, highest
// power first (coefs[0] == 1 for a monic polynomial). For a single root
// r = -b this is the Lorentzian σ² / (b² + (2πf)²).
func PSD(freq []float64, sigma float64, coefs []float64) []float64 {
	re := make([]float64, len(freq))
	im := make([]float64, len(freq))
	for i, f := range freq {
		v := polyval(coefs, complex(0, 2*math.Pi*f))
		re[i], im[i] = real(v), imag(v)
	}

	out := make([]float64, len(freq))
	vecmath.Power(out, re, im)

	s2 := sigma * sigma
	for i, p := range out {
		out[i] = s2 / p
	}
	return out
}

// polyval evaluates a polynomial with real coefficients, highest power
// first, at z using Horner's scheme.
func polyval(coefs []float64, z complex128) complex128 {
	var v complex128
	for _, c := range coefs {
		v = v*z + complex(c, 0)
	}
	return v
}

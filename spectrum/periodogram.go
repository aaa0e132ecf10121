package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Periodogram estimates the PSD of an evenly sampled series with spacing dt.
//
// The series is zero-padded to the next power of two, transformed, and the
// non-negative frequency bins k/(nfft·dt), k = 0..nfft/2, are returned with
// the normalization dt/N·|X_k|², N = len(values). With this normalization
// the estimate is directly comparable with PSD, whose integral over all
// (positive and negative) frequencies is the process variance.
func Periodogram(values []float64, dt float64) (freqs, power []float64, err error) {
	n := len(values)
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: need at least two samples, got %d", ErrInvalidSampling, n)
	}
	if !(dt > 0) {
		return nil, nil, fmt.Errorf("%w: dt = %v", ErrInvalidSampling, dt)
	}

	nfft := 1
	for nfft < n {
		nfft <<= 1
	}

	in := make([]complex128, nfft)
	for i, v := range values {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, nil, fmt.Errorf("fft plan: %w", err)
	}
	out := make([]complex128, nfft)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("fft: %w", err)
	}

	bins := nfft/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	freqs = make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k], im[k] = real(out[k]), imag(out[k])
		freqs[k] = float64(k) / (float64(nfft) * dt)
	}

	power = make([]float64, bins)
	vecmath.Power(power, re, im)
	scale := dt / float64(n)
	for k := range power {
		power[k] *= scale
	}
	return freqs, power, nil
}

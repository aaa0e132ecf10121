package carp

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gocarma/internal/cla"
)

// Simulator draws sample paths of CAR(p) processes from their exact
// stationary and conditional distributions.
//
// A Simulator is not safe for concurrent use; give each goroutine its own,
// seeded from its own source.
type Simulator struct {
	normal *cla.Normal
}

// NewSimulator returns a Simulator drawing its randomness from src. Two
// simulators built on identically seeded sources produce identical paths.
func NewSimulator(src rand.Source) *Simulator {
	return &Simulator{normal: cla.NewNormal(src)}
}

// Simulate returns one realization of the CAR(p) process with driving-noise
// variance sigsqr and characteristic roots roots, observed at time.
//
// The times are sorted (the caller's slice is left untouched) and path[i] is
// the value at the i-th smallest time. The rotated state is drawn from the
// stationary distribution at the first time, then advanced by its
// conditional mean state·exp(R·Δt) plus a Gaussian increment with covariance
// S[j,k]·(1 - exp((r_j + conj(r_k))·Δt)). Complex states are sampled through
// the real covariance of their stacked real and imaginary parts.
func (s *Simulator) Simulate(time []float64, sigsqr float64, roots []complex128) ([]float64, error) {
	if len(time) == 0 {
		return nil, ErrEmptySeries
	}
	if err := ValidateRoots(roots); err != nil {
		return nil, err
	}
	if !(sigsqr >= 0) || math.IsInf(sigsqr, 0) {
		return nil, fmt.Errorf("%w: sigsqr = %v", ErrInvalidParameter, sigsqr)
	}

	sorted := slices.Clone(time)
	slices.Sort(sorted)

	p := len(roots)
	stationary, err := StationaryCovariance(roots, sigsqr)
	if err != nil {
		return nil, err
	}

	state := make([]complex128, p)
	draw := make([]float64, 2*p)
	path := make([]float64, len(sorted))

	s.normal.Sample(draw, cla.EmbedHermitian(stationary))
	for k := range state {
		state[k] = complex(draw[k], draw[k+p])
	}
	path[0] = realSum(state)

	conditional := mat.NewCDense(p, p, nil)
	for i := 1; i < len(sorted); i++ {
		dt := complex(sorted[i]-sorted[i-1], 0)

		for k, r := range roots {
			state[k] *= cmplx.Exp(r * dt)
		}
		for j := 0; j < p; j++ {
			for k := 0; k < p; k++ {
				decay := cmplx.Exp((roots[j] + cmplx.Conj(roots[k])) * dt)
				conditional.Set(j, k, stationary.At(j, k)*(1-decay))
			}
		}

		s.normal.Sample(draw, cla.EmbedHermitian(conditional))
		for k := range state {
			state[k] += complex(draw[k], draw[k+p])
		}
		path[i] = realSum(state)
	}

	return path, nil
}

func realSum(state []complex128) float64 {
	var sum complex128
	for _, v := range state {
		sum += v
	}
	return real(sum)
}

package ensemble

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Method selects how a single best-fit model is summarized from the draws.
type Method int

const (
	// MAP picks the draw with the highest log-posterior.
	MAP Method = iota
	// Median takes the median of σ and the component-wise median of the
	// real and imaginary parts of each root.
	Median
	// Mean averages σ² and each root.
	Mean
)

// ErrUnknownMethod is returned by ParseMethod.
var ErrUnknownMethod = errors.New("ensemble: best fit must be one of map, median, mean")

func (m Method) String() string {
	switch m {
	case MAP:
		return "map"
	case Median:
		return "median"
	case Mean:
		return "mean"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod parses "map", "median" or "mean", ignoring case.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "map":
		return MAP, nil
	case "median":
		return Median, nil
	case "mean":
		return Mean, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// BestFit returns the driving noise variance and roots of a single
// representative model.
func (e *Ensemble) BestFit(method Method) (sigsqr float64, roots []complex128, err error) {
	if len(e.Draws) == 0 {
		return 0, nil, ErrEmpty
	}

	switch method {
	case MAP:
		best := 0
		for i := range e.Draws {
			if e.Draws[i].LogPost > e.Draws[best].LogPost {
				best = i
			}
		}
		d := e.Draws[best]
		return d.SigSqr(), slices.Clone(d.Roots), nil

	case Median:
		sigma := median(e.sigmas())
		roots = make([]complex128, e.P)
		re := make([]float64, len(e.Draws))
		im := make([]float64, len(e.Draws))
		for k := range roots {
			for i := range e.Draws {
				re[i] = real(e.Draws[i].Roots[k])
				im[i] = imag(e.Draws[i].Roots[k])
			}
			roots[k] = complex(median(re), median(im))
		}
		return sigma * sigma, roots, nil

	case Mean:
		sigsqr := make([]float64, len(e.Draws))
		for i := range e.Draws {
			sigsqr[i] = e.Draws[i].SigSqr()
		}
		roots = make([]complex128, e.P)
		for i := range e.Draws {
			for k, r := range e.Draws[i].Roots {
				roots[k] += r
			}
		}
		n := complex(float64(len(e.Draws)), 0)
		for k := range roots {
			roots[k] /= n
		}
		return stat.Mean(sigsqr, nil), roots, nil
	}

	return 0, nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
}

// median averages the two middle values for an even count.
func median(x []float64) float64 {
	s := slices.Clone(x)
	slices.Sort(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

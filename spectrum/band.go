package spectrum

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/sartorproj/gocarma/internal/workpool"
)

// Band is a pointwise credible band of the PSD.
type Band struct {
	Frequencies []float64
	Lower       []float64
	Median      []float64
	Upper       []float64
	Percentile  float64
	Draws       int // number of posterior draws the band was computed from
}

type bandConfig struct {
	subsample int
	workers   int
}

// BandOption configures CredibleBand.
type BandOption func(*bandConfig)

// WithSubsample restricts the band to m evenly strided draws instead of the
// whole ensemble.
func WithSubsample(m int) BandOption {
	return func(c *bandConfig) {
		c.subsample = m
	}
}

// WithWorkers sets the number of goroutines evaluating per-draw spectra.
// Zero or negative means one per CPU.
func WithWorkers(n int) BandOption {
	return func(c *bandConfig) {
		c.workers = n
	}
}

// Subsample returns m indices into a collection of n items, taking every
// ⌊n/m⌋-th item starting at 0. It is deterministic, not a random draw.
func Subsample(n, m int) ([]int, error) {
	if m < 1 || m > n {
		return nil, fmt.Errorf("%w: m=%d n=%d", ErrInvalidSubsample, m, n)
	}
	stride := n / m
	idx := make([]int, m)
	for i := range idx {
		idx[i] = i * stride
	}
	return idx, nil
}

// CredibleBand evaluates the PSD of every posterior draw (sigmas[i],
// coefs[i]) at every frequency and returns the per-frequency median and the
// central credible interval holding percentile percent of the draws, i.e.
// the (100-percentile)/2 and 100-(100-percentile)/2 percentiles.
//
// Percentiles interpolate linearly between neighbouring sorted draws, so
// with an even number of draws the median is the mean of the two middle
// values.
func CredibleBand(ctx context.Context, freqs, sigmas []float64, coefs [][]float64, percentile float64, opts ...BandOption) (*Band, error) {
	cfg := bandConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(sigmas)
	if n != len(coefs) {
		return nil, fmt.Errorf("%w: %d sigmas, %d coefficient sets", ErrLengthMismatch, n, len(coefs))
	}
	if n == 0 {
		return nil, ErrEmptyEnsemble
	}
	if !(percentile > 0 && percentile < 100) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPercentile, percentile)
	}
	order := len(coefs[0])
	for i, c := range coefs {
		if len(c) != order || order == 0 {
			return nil, fmt.Errorf("%w: draw %d has %d coefficients, want %d", ErrLengthMismatch, i, len(c), order)
		}
	}

	m := n
	if cfg.subsample > 0 {
		m = cfg.subsample
	}
	idx, err := Subsample(n, m)
	if err != nil {
		return nil, err
	}

	spectra := make([][]float64, len(idx))
	err = workpool.Run(ctx, len(idx), cfg.workers, func(_ context.Context, i int) error {
		spectra[i] = PSD(freqs, sigmas[idx[i]], coefs[idx[i]])
		return nil
	})
	if err != nil {
		return nil, err
	}

	lower := (100 - percentile) / 2
	upper := 100 - lower

	band := &Band{
		Frequencies: slices.Clone(freqs),
		Lower:       make([]float64, len(freqs)),
		Median:      make([]float64, len(freqs)),
		Upper:       make([]float64, len(freqs)),
		Percentile:  percentile,
		Draws:       len(idx),
	}
	column := make([]float64, len(idx))
	for f := range freqs {
		for i, s := range spectra {
			column[i] = s[f]
		}
		slices.Sort(column)
		band.Lower[f] = sortedQuantile(column, lower/100)
		band.Median[f] = sortedQuantile(column, 0.5)
		band.Upper[f] = sortedQuantile(column, upper/100)
	}
	return band, nil
}

// sortedQuantile returns the q-quantile of ascending x, interpolating
// linearly at position (len(x)-1)·q.
func sortedQuantile(x []float64, q float64) float64 {
	h := float64(len(x)-1) * q
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	return x[lo] + (h-float64(lo))*(x[hi]-x[lo])
}

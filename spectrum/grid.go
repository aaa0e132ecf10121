package spectrum

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// FrequencyGrid returns n logarithmically spaced frequencies covering the
// time scales probed by a sampling pattern, extended by a factor of two on
// both sides: from 1/(2·(t_max - t_min)) up to 2/min(Δt).
func FrequencyGrid(time []float64, n int) ([]float64, error) {
	if len(time) < 2 {
		return nil, fmt.Errorf("%w: need at least two time values, got %d", ErrInvalidSampling, len(time))
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least two frequencies, got %d", ErrInvalidSampling, n)
	}

	sorted := slices.Clone(time)
	slices.Sort(sorted)

	dtMin := math.Inf(1)
	for i := 1; i < len(sorted); i++ {
		dtMin = math.Min(dtMin, sorted[i]-sorted[i-1])
	}
	if !(dtMin > 0) {
		return nil, fmt.Errorf("%w: repeated time values", ErrInvalidSampling)
	}
	dtMax := sorted[len(sorted)-1] - sorted[0]

	return floats.LogSpan(make([]float64, n), 1/(2*dtMax), 2/dtMin), nil
}

package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyGrid(t *testing.T) {
	freqs, err := FrequencyGrid([]float64{3, 0, 1, 10}, 5)
	require.NoError(t, err)
	require.Len(t, freqs, 5)

	assert.InDelta(t, 1.0/20, freqs[0], 1e-12)
	assert.InDelta(t, 2.0, freqs[4], 1e-12)

	// Constant ratio between neighbours.
	ratio := freqs[1] / freqs[0]
	for i := 2; i < len(freqs); i++ {
		assert.InDelta(t, ratio, freqs[i]/freqs[i-1], 1e-9)
	}
	assert.InDelta(t, math.Pow(40, 0.25), ratio, 1e-9)
}

func TestFrequencyGridErrors(t *testing.T) {
	_, err := FrequencyGrid([]float64{1}, 10)
	assert.ErrorIs(t, err, ErrInvalidSampling)

	_, err = FrequencyGrid([]float64{0, 1}, 1)
	assert.ErrorIs(t, err, ErrInvalidSampling)

	_, err = FrequencyGrid([]float64{0, 1, 1}, 10)
	assert.ErrorIs(t, err, ErrInvalidSampling)
}

func TestPeriodogramPeak(t *testing.T) {
	const n = 64
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Cos(2 * math.Pi * 8 * float64(i) / n)
	}

	freqs, power, err := Periodogram(values, 1)
	require.NoError(t, err)
	require.Len(t, freqs, n/2+1)
	require.Len(t, power, n/2+1)

	peak := 0
	for k := range power {
		if power[k] > power[peak] {
			peak = k
		}
	}
	assert.Equal(t, 8, peak)
	assert.InDelta(t, 8.0/n, freqs[peak], 1e-12)
	// |X_8| = N/2 for a unit cosine.
	assert.InDelta(t, float64(n)/4, power[8], 1e-9)
}

func TestPeriodogramPadding(t *testing.T) {
	freqs, _, err := Periodogram(make([]float64, 100), 0.5)
	require.NoError(t, err)
	assert.Len(t, freqs, 65)
	assert.InDelta(t, 1.0, freqs[64], 1e-12, "Nyquist frequency")
}

func TestPeriodogramErrors(t *testing.T) {
	_, _, err := Periodogram([]float64{1}, 1)
	assert.ErrorIs(t, err, ErrInvalidSampling)

	_, _, err = Periodogram([]float64{1, 2}, 0)
	assert.ErrorIs(t, err, ErrInvalidSampling)
}

package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	lc, err := New([]float64{0, 1, 2}, []float64{1, 2, 3}, []float64{0.1, 0.1, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 3, lc.Len())

	_, err = New([]float64{0, 1}, []float64{1}, []float64{0.1, 0.1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestMeanAndCentered(t *testing.T) {
	lc, err := New([]float64{0, 1, 2, 3}, []float64{1, 2, 3, 6}, []float64{0, 0, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, 3.0, lc.Mean())
	assert.Equal(t, []float64{-2, -1, 0, 3}, lc.Centered())
	assert.Equal(t, []float64{1, 2, 3, 6}, lc.Y, "Centered does not modify Y")

	empty := &LightCurve{}
	assert.Equal(t, 0.0, empty.Mean())
}

func TestMeasurementVariance(t *testing.T) {
	lc, err := New([]float64{0, 1}, []float64{0, 0}, []float64{0.5, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 4}, lc.MeasurementVariance())
}

func TestDuration(t *testing.T) {
	lc, err := New([]float64{2, 7, 4}, []float64{0, 0, 0}, []float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 5.0, lc.Duration())

	single, err := New([]float64{1}, []float64{0}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, single.Duration())
}

func TestValidate(t *testing.T) {
	lc, err := New([]float64{0, 1, 2}, []float64{1, 2, 3}, []float64{0.1, 0.1, 0.1})
	require.NoError(t, err)
	assert.NoError(t, lc.Validate())

	lc.Time[2] = 1
	assert.ErrorIs(t, lc.Validate(), ErrUnsorted)

	assert.ErrorIs(t, (&LightCurve{}).Validate(), ErrEmpty)
	assert.ErrorIs(t, (&LightCurve{Time: []float64{1}}).Validate(), ErrLengthMismatch)
}

func TestSort(t *testing.T) {
	lc, err := New(
		[]float64{3, 1, 2},
		[]float64{30, 10, 20},
		[]float64{0.3, 0.1, 0.2},
	)
	require.NoError(t, err)

	lc.Sort()
	assert.Equal(t, []float64{1, 2, 3}, lc.Time)
	assert.Equal(t, []float64{10, 20, 30}, lc.Y)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, lc.YSig)
	assert.NoError(t, lc.Validate())
}

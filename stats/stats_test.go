package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ar1(n int, phi float64) []float64 {
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + (float64(i%10)-5)/10
	}
	return values
}

func whiteNoise(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	values := make([]float64, n)
	for i := range values {
		values[i] = rng.NormFloat64()
	}
	return values
}

func TestACF(t *testing.T) {
	acf := ACF(ar1(100, 0.8), 10)
	require.Len(t, acf, 11)

	// ACF at lag 0 should be 1
	assert.InDelta(t, 1.0, acf[0], 1e-10)
	assert.Greater(t, acf[1], 0.5, "AR(1) with phi=0.8 should be strongly correlated at lag 1")

	for i, v := range acf {
		assert.LessOrEqual(t, math.Abs(v), 1.0+1e-12, "lag %d", i)
	}
}

func TestACFConstantSeries(t *testing.T) {
	assert.Nil(t, ACF([]float64{2, 2, 2, 2}, 2))
}

func TestACFClampsLag(t *testing.T) {
	acf := ACF([]float64{1, 2, 3, 4}, 10)
	assert.Len(t, acf, 4)
}

func TestACFWithConfidence(t *testing.T) {
	values := ar1(100, 0.8)
	result := ACFWithConfidence(values, 10)
	require.NotNil(t, result)

	assert.InDelta(t, 1.96/10, result.ConfBounds, 1e-12)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, result.Lags)

	significant := SignificantLags(result.Values, result.ConfBounds)
	assert.Contains(t, significant, 1)
}

func TestSignificantLags(t *testing.T) {
	lags := SignificantLags([]float64{1, 0.5, 0.05, -0.4}, 0.2)
	assert.Equal(t, []int{1, 3}, lags)
}

func TestLjungBox(t *testing.T) {
	lb := LjungBox(ar1(100, 0.8), 10, 0)
	require.NotNil(t, lb)

	assert.Greater(t, lb.Statistic, 0.0)
	assert.Equal(t, 10, lb.DOF)
	assert.Less(t, lb.PValue, 0.05, "autocorrelated series should be rejected")
	t.Logf("Ljung-Box: Q=%.4f, p-value=%.4f, DOF=%d", lb.Statistic, lb.PValue, lb.DOF)
}

func TestLjungBoxWhiteNoise(t *testing.T) {
	lb := LjungBox(whiteNoise(500, 7), 10, 0)
	require.NotNil(t, lb)
	assert.Greater(t, lb.PValue, 0.001)
}

func TestLjungBoxFitDF(t *testing.T) {
	lb := LjungBox(ar1(100, 0.5), 5, 3)
	require.NotNil(t, lb)
	assert.Equal(t, 2, lb.DOF)

	lb = LjungBox(ar1(100, 0.5), 5, 10)
	require.NotNil(t, lb)
	assert.Equal(t, 1, lb.DOF, "DOF is floored at one")
}

func TestLjungBoxShortSeries(t *testing.T) {
	assert.Nil(t, LjungBox([]float64{1, 2, 3}, 2, 0))
}

func TestBoxPierce(t *testing.T) {
	values := ar1(100, 0.8)
	bp := BoxPierce(values, 10, 0)
	require.NotNil(t, bp)
	lb := LjungBox(values, 10, 0)

	// The Ljung-Box weights (n+2)/(n-k) are all greater than one.
	assert.Less(t, bp.Statistic, lb.Statistic)
	assert.GreaterOrEqual(t, bp.PValue, 0.0)
	assert.LessOrEqual(t, bp.PValue, 1.0)
}

func TestDurbinWatson(t *testing.T) {
	residuals := make([]float64, 100)
	for i := range residuals {
		residuals[i] = float64(i%7-3) / 3
	}

	dw := DurbinWatson(residuals)
	require.NotNil(t, dw)
	assert.Greater(t, dw.Statistic, 0.0)
	assert.Less(t, dw.Statistic, 4.0)

	// A smooth series is positively autocorrelated.
	dw = DurbinWatson(ar1(100, 0.9))
	require.NotNil(t, dw)
	assert.Less(t, dw.Statistic, 2.0)

	assert.Nil(t, DurbinWatson([]float64{1}))
	assert.Nil(t, DurbinWatson([]float64{0, 0, 0}))
}

func TestCalculateIC(t *testing.T) {
	ic := CalculateIC(-100, 50, 4)

	assert.InDelta(t, 208.0, ic.AIC, 1e-12)
	assert.InDelta(t, 208.0+2*4*5/45.0, ic.AICc, 1e-12)
	assert.InDelta(t, 200+4*math.Log(50), ic.BIC, 1e-12)
	assert.Equal(t, -100.0, ic.LogLik)
}

func TestAICcTooFewObservations(t *testing.T) {
	assert.True(t, math.IsInf(AICc(10, 5, 4), 1))
}

func TestStandardizedResiduals(t *testing.T) {
	resid, err := StandardizedResiduals([]float64{1, 3}, []float64{0, 1}, []float64{1, 4})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, resid, 1e-12)

	_, err = StandardizedResiduals([]float64{1}, []float64{0, 1}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestDiagnoseWhiteNoise(t *testing.T) {
	d := Diagnose(whiteNoise(1000, 3), 20, 3)
	require.NotNil(t, d)

	assert.Equal(t, 1000, d.N)
	assert.InDelta(t, 0, d.Mean, 0.15)
	assert.InDelta(t, 1, d.Variance, 0.15)
	require.NotNil(t, d.ACF)
	require.NotNil(t, d.SquaredACF)
	require.NotNil(t, d.DurbinWatson)
	assert.InDelta(t, 2, d.DurbinWatson.Statistic, 0.3)
	assert.Equal(t, 17, d.LjungBox.DOF)
	require.NotNil(t, d.BoxPierce)
	assert.Equal(t, 17, d.BoxPierce.DOF)
	assert.LessOrEqual(t, d.BoxPierce.Statistic, d.LjungBox.Statistic)
}

func TestDiagnoseCorrelated(t *testing.T) {
	d := Diagnose(ar1(200, 0.9), 10, 0)
	require.NotNil(t, d)
	assert.False(t, d.WhiteNoise(0.05))
}

func TestDiagnoseEmpty(t *testing.T) {
	assert.Nil(t, Diagnose(nil, 10, 0))
}

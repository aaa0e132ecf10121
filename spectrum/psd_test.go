package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate"

	"github.com/sartorproj/gocarma/carp"
)

func TestPSDLorentzian(t *testing.T) {
	const b = 0.8
	const sigma = 1.5
	freqs := []float64{0, 0.01, 0.1, 1, 10}
	psd := PSD(freqs, sigma, []float64{1, b})

	require.Len(t, psd, len(freqs))
	assert.InDelta(t, sigma*sigma/(b*b), psd[0], 1e-12)
	for i, f := range freqs {
		w := 2 * math.Pi * f
		want := sigma * sigma / (b*b + w*w)
		assert.InDelta(t, want, psd[i], 1e-12*want, "f=%v", f)
	}
}

func TestPSDQPOPeak(t *testing.T) {
	roots, err := carp.RootsFromQPO([]float64{0.03, 0.1}, []float64{0.2, 0.013})
	require.NoError(t, err)
	coefs, err := carp.CoefficientsFromRoots(roots)
	require.NoError(t, err)

	psd := PSD([]float64{0.15, 0.2, 0.25}, 1, coefs)
	assert.Greater(t, psd[1], psd[0])
	assert.Greater(t, psd[1], psd[2])

	for _, v := range PSD([]float64{0, 1e-3, 1, 100}, 1, coefs) {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		assert.Greater(t, v, 0.0)
	}
}

func TestPSDIntegratesToVariance(t *testing.T) {
	tests := []struct {
		name      string
		widths    []float64
		centroids []float64
	}{
		{"CAR(2)", []float64{0.05}, []float64{0.3}},
		{"CAR(4)", []float64{0.03, 0.1}, []float64{0.2, 0.013}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := carp.RootsFromQPO(tt.widths, tt.centroids)
			require.NoError(t, err)
			coefs, err := carp.CoefficientsFromRoots(roots)
			require.NoError(t, err)
			const sigma = 1.3

			// Integrate over the whole real line with f = tan(u).
			const n = 20001
			u := make([]float64, n)
			f := make([]float64, n)
			for i := range u {
				u[i] = -math.Pi/2 + math.Pi*float64(i)/float64(n-1)
				f[i] = math.Tan(u[i])
			}
			psd := PSD(f[1:n-1], sigma, coefs)
			integrand := make([]float64, n)
			for i, v := range psd {
				c := math.Cos(u[i+1])
				integrand[i+1] = v / (c * c)
			}

			got := integrate.Simpsons(u, integrand)
			want := carp.Variance(sigma*sigma, roots)
			assert.InDelta(t, want, got, 1e-4*want)
		})
	}
}

func TestPolyval(t *testing.T) {
	// x² - 3x + 2 at x = 1 + i.
	v := polyval([]float64{1, -3, 2}, 1+1i)
	assert.Equal(t, complex(-1, -1), v)
}

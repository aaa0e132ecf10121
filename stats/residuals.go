package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch is returned when residual inputs differ in length.
var ErrLengthMismatch = errors.New("stats: y, mean and variance must have the same length")

// StandardizedResiduals returns (y_i - mean_i) / sqrt(variance_i), the
// Kalman innovations scaled to unit variance. For a correct model they are
// independent standard normal draws.
func StandardizedResiduals(y, mean, variance []float64) ([]float64, error) {
	if len(y) != len(mean) || len(y) != len(variance) {
		return nil, ErrLengthMismatch
	}
	out := make([]float64, len(y))
	for i := range y {
		out[i] = (y[i] - mean[i]) / math.Sqrt(variance[i])
	}
	return out, nil
}

// Diagnostics summarizes how close standardized residuals are to white
// standard-normal noise.
type Diagnostics struct {
	N        int
	Mean     float64 // ≈ 0 for a good fit
	Variance float64 // ≈ 1 for a good fit

	ACF        *ACFResult // residual autocorrelation
	SquaredACF *ACFResult // autocorrelation of centred squared residuals

	LjungBox        *LjungBoxResult
	SquaredLjungBox *LjungBoxResult
	BoxPierce       *BoxPierceResult
	DurbinWatson    *DurbinWatsonResult
}

// WhiteNoise reports whether neither the residuals nor their squares show
// significant autocorrelation at the given level according to Ljung-Box.
func (d *Diagnostics) WhiteNoise(level float64) bool {
	if d.LjungBox == nil || d.SquaredLjungBox == nil {
		return false
	}
	return d.LjungBox.PValue > level && d.SquaredLjungBox.PValue > level
}

// Diagnose computes residual diagnostics up to maxLag. fitdf is the number
// of fitted model parameters used for the Ljung-Box and Box-Pierce degrees
// of freedom.
func Diagnose(residuals []float64, maxLag, fitdf int) *Diagnostics {
	n := len(residuals)
	if n == 0 {
		return nil
	}
	mean, variance := stat.MeanVariance(residuals, nil)

	squared := make([]float64, n)
	for i, r := range residuals {
		squared[i] = r * r
	}
	sqMean := stat.Mean(squared, nil)
	for i := range squared {
		squared[i] -= sqMean
	}

	return &Diagnostics{
		N:               n,
		Mean:            mean,
		Variance:        variance,
		ACF:             ACFWithConfidence(residuals, maxLag),
		SquaredACF:      ACFWithConfidence(squared, maxLag),
		LjungBox:        LjungBox(residuals, maxLag, fitdf),
		SquaredLjungBox: LjungBox(squared, maxLag, 0),
		BoxPierce:       BoxPierce(residuals, maxLag, fitdf),
		DurbinWatson:    DurbinWatson(residuals),
	}
}

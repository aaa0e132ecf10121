package timeseries

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrLengthMismatch is returned when time, value and uncertainty columns
	// differ in length.
	ErrLengthMismatch = errors.New("time, y and ysig must have the same length")
	// ErrUnsorted is returned when time values are not strictly increasing.
	ErrUnsorted = errors.New("time values must be strictly increasing")
	// ErrEmpty is returned for a light curve without observations.
	ErrEmpty = errors.New("light curve has no observations")
)

// LightCurve is an irregularly sampled time series with measurement errors.
type LightCurve struct {
	Time []float64 // observation times
	Y    []float64 // measured values
	YSig []float64 // standard deviation of each measurement error
	Name string
}

// New creates a light curve from its three columns.
func New(time, y, ysig []float64) (*LightCurve, error) {
	if len(time) != len(y) || len(time) != len(ysig) {
		return nil, ErrLengthMismatch
	}
	return &LightCurve{
		Time: time,
		Y:    y,
		YSig: ysig,
	}, nil
}

// Len returns the number of observations.
func (lc *LightCurve) Len() int {
	return len(lc.Y)
}

// Mean calculates the arithmetic mean of the measured values.
func (lc *LightCurve) Mean() float64 {
	if len(lc.Y) == 0 {
		return 0
	}
	return stat.Mean(lc.Y, nil)
}

// Centered returns the measured values with their mean subtracted, the form
// expected by the Kalman filter.
func (lc *LightCurve) Centered() []float64 {
	mean := lc.Mean()
	out := make([]float64, len(lc.Y))
	for i, v := range lc.Y {
		out[i] = v - mean
	}
	return out
}

// MeasurementVariance returns ysig² for every observation.
func (lc *LightCurve) MeasurementVariance() []float64 {
	out := make([]float64, len(lc.YSig))
	for i, s := range lc.YSig {
		out[i] = s * s
	}
	return out
}

// Duration returns t_max - t_min, or 0 for fewer than two points.
func (lc *LightCurve) Duration() float64 {
	if len(lc.Time) < 2 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range lc.Time {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	return hi - lo
}

// Validate checks that the columns line up, the curve is non-empty and time
// is strictly increasing.
func (lc *LightCurve) Validate() error {
	if len(lc.Time) != len(lc.Y) || len(lc.Time) != len(lc.YSig) {
		return ErrLengthMismatch
	}
	if len(lc.Time) == 0 {
		return ErrEmpty
	}
	for i := 1; i < len(lc.Time); i++ {
		if !(lc.Time[i] > lc.Time[i-1]) {
			return ErrUnsorted
		}
	}
	return nil
}

// Sort orders the observations by time in place, keeping rows together.
func (lc *LightCurve) Sort() {
	sort.Sort(byTime{lc})
}

type byTime struct{ lc *LightCurve }

func (b byTime) Len() int           { return len(b.lc.Time) }
func (b byTime) Less(i, j int) bool { return b.lc.Time[i] < b.lc.Time[j] }
func (b byTime) Swap(i, j int) {
	b.lc.Time[i], b.lc.Time[j] = b.lc.Time[j], b.lc.Time[i]
	b.lc.Y[i], b.lc.Y[j] = b.lc.Y[j], b.lc.Y[i]
	b.lc.YSig[i], b.lc.YSig[j] = b.lc.YSig[j], b.lc.YSig[i]
}

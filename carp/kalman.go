package carp

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gocarma/internal/cla"
)

// filterState is the working state of one Kalman filter pass: the rotated
// state estimate and its one-step prediction covariance. It is owned by a
// single call and never shared.
type filterState struct {
	state []complex128
	cov   *mat.CDense
}

// KalmanFilter runs the exact Kalman filter of a CAR(p) process over an
// irregularly sampled, zero-mean series and returns the one-step-ahead
// predictive mean and variance at every time point.
//
// time must be strictly increasing; y holds the mean-subtracted
// observations and yvar the variance of each measurement error. The filter
// starts from the stationary distribution, so mean[0] = 0 and
// variance[0] = Var(process) + yvar[0]. The standardized innovations
// (y - mean)/sqrt(variance) are N(0, 1) when the model is correct.
//
// The recursion works in the rotated basis where the transition is
// diagonal: between observations each state component decays by
// exp(r_k·Δt) and the prediction covariance relaxes toward the stationary
// covariance.
func KalmanFilter(time, y, yvar []float64, sigsqr float64, roots []complex128) (mean, variance []float64, err error) {
	if err := checkSeries(time, y, yvar); err != nil {
		return nil, nil, err
	}
	if len(roots) == 0 {
		return nil, nil, ErrNoRoots
	}

	p := len(roots)
	n := len(time)

	stationary, err := StationaryCovariance(roots, sigsqr)
	if err != nil {
		return nil, nil, err
	}

	fs := filterState{
		state: make([]complex128, p),
		cov:   cla.Clone(stationary),
	}

	mean = make([]float64, n)
	variance = make([]float64, n)
	mean[0] = 0
	variance[0] = real(cla.Sum(fs.cov)) + yvar[0]
	innovation := y[0]

	gain := make([]complex128, p)
	transition := make([]complex128, p)

	for i := 1; i < n; i++ {
		dt := time[i] - time[i-1]
		prev := variance[i-1]

		// Measurement update with the previous innovation.
		rows := cla.RowSums(fs.cov)
		for k := range gain {
			gain[k] = rows[k] / complex(prev, 0)
			fs.state[k] += complex(innovation, 0) * gain[k]
		}
		for j := 0; j < p; j++ {
			for k := 0; k < p; k++ {
				v := fs.cov.At(j, k) - complex(prev, 0)*gain[j]*cmplx.Conj(gain[k])
				fs.cov.Set(j, k, v)
			}
		}

		// Deterministic transition over dt.
		for k, r := range roots {
			transition[k] = cmplx.Exp(r * complex(dt, 0))
			fs.state[k] *= transition[k]
		}
		for j := 0; j < p; j++ {
			for k := 0; k < p; k++ {
				s := stationary.At(j, k)
				v := transition[j]*cmplx.Conj(transition[k])*(fs.cov.At(j, k)-s) + s
				fs.cov.Set(j, k, v)
			}
		}

		mean[i] = realSum(fs.state)
		variance[i] = real(cla.Sum(fs.cov)) + yvar[i]
		innovation = y[i] - mean[i]
	}

	return mean, variance, nil
}

// LogLikelihood returns the Gaussian log-likelihood of y given the
// one-step-ahead predictive means and variances produced by KalmanFilter.
func LogLikelihood(y, mean, variance []float64) (float64, error) {
	if len(y) != len(mean) || len(y) != len(variance) {
		return 0, fmt.Errorf("%w: y=%d mean=%d variance=%d", ErrLengthMismatch, len(y), len(mean), len(variance))
	}
	if len(y) == 0 {
		return 0, ErrEmptySeries
	}
	loglik := 0.0
	for i := range y {
		r := y[i] - mean[i]
		loglik -= 0.5 * (math.Log(2*math.Pi*variance[i]) + r*r/variance[i])
	}
	return loglik, nil
}

func checkSeries(time, y, yvar []float64) error {
	if len(time) != len(y) || len(time) != len(yvar) {
		return fmt.Errorf("%w: time=%d y=%d yvar=%d", ErrLengthMismatch, len(time), len(y), len(yvar))
	}
	if len(time) == 0 {
		return ErrEmptySeries
	}
	return checkIncreasing(time)
}

func checkIncreasing(time []float64) error {
	for i := 1; i < len(time); i++ {
		if !(time[i] > time[i-1]) {
			return fmt.Errorf("%w: time[%d] = %v after %v", ErrUnsortedTime, i, time[i], time[i-1])
		}
	}
	return nil
}

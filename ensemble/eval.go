package ensemble

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/sartorproj/gocarma/carp"
	"github.com/sartorproj/gocarma/internal/workpool"
	"github.com/sartorproj/gocarma/spectrum"
	"github.com/sartorproj/gocarma/timeseries"
)

// Band computes the pointwise PSD credible band of the ensemble. nsamples
// limits the band to that many evenly strided draws; zero uses them all.
func (e *Ensemble) Band(ctx context.Context, freqs []float64, percentile float64, nsamples int) (*spectrum.Band, error) {
	opts := []spectrum.BandOption{spectrum.WithWorkers(e.workers)}
	if nsamples > 0 {
		opts = append(opts, spectrum.WithSubsample(nsamples))
	}

	start := time.Now()
	band, err := spectrum.CredibleBand(ctx, freqs, e.sigmas(), e.coefs(), percentile, opts...)
	if err != nil {
		return nil, err
	}

	e.logger.Info("credible band computed",
		zap.Int("frequencies", len(freqs)),
		zap.Int("draws", band.Draws),
		zap.Float64("percentile", percentile),
		zap.Duration("elapsed", time.Since(start)))

	return band, nil
}

// Filtered is the Kalman filter output for one draw.
type Filtered struct {
	Mean     []float64
	Variance []float64
	LogLik   float64
}

// FilterAll runs the Kalman filter of every draw over the mean-subtracted
// light curve. Each draw scales the measurement variances by its own
// MeasErrScale. Results are indexed like Draws.
func (e *Ensemble) FilterAll(ctx context.Context, lc *timeseries.LightCurve) ([]Filtered, error) {
	if err := lc.Validate(); err != nil {
		return nil, err
	}
	y := lc.Centered()
	yvar := lc.MeasurementVariance()

	start := time.Now()
	out := make([]Filtered, len(e.Draws))
	err := workpool.Run(ctx, len(e.Draws), e.workers, func(_ context.Context, i int) error {
		d := &e.Draws[i]
		scaled := make([]float64, len(yvar))
		for j, v := range yvar {
			scaled[j] = d.MeasErrScale * v
		}
		mean, variance, err := carp.KalmanFilter(lc.Time, y, scaled, d.SigSqr(), d.Roots)
		if err != nil {
			return fmt.Errorf("draw %d: %w", i, err)
		}
		loglik, err := carp.LogLikelihood(y, mean, variance)
		if err != nil {
			return fmt.Errorf("draw %d: %w", i, err)
		}
		out[i] = Filtered{Mean: mean, Variance: variance, LogLik: loglik}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("kalman filter evaluated",
		zap.String("light_curve", lc.Name),
		zap.Int("observations", lc.Len()),
		zap.Int("draws", len(out)),
		zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

// SimulateAll simulates one path per draw on the given time grid. Draw i uses
// a PCG stream seeded with (seed, i), so the output does not depend on the
// number of workers.
func (e *Ensemble) SimulateAll(ctx context.Context, t []float64, seed uint64) ([][]float64, error) {
	start := time.Now()
	out := make([][]float64, len(e.Draws))
	err := workpool.Run(ctx, len(e.Draws), e.workers, func(_ context.Context, i int) error {
		d := &e.Draws[i]
		sim := carp.NewSimulator(rand.NewPCG(seed, uint64(i)))
		path, err := sim.Simulate(t, d.SigSqr(), d.Roots)
		if err != nil {
			return fmt.Errorf("draw %d: %w", i, err)
		}
		out[i] = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("paths simulated",
		zap.Int("points", len(t)),
		zap.Int("draws", len(out)),
		zap.Uint64("seed", seed),
		zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

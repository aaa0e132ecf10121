// Package gocarma provides continuous-time autoregressive CAR(p) modelling of
// irregularly sampled time series.
//
// A CAR(p) process is the solution of a p-th order linear stochastic
// differential equation driven by white noise. Its power spectrum is a sum of
// Lorentzians, which makes it a natural model for the red noise and
// quasi-periodic oscillations (QPOs) seen in astronomical light curves.
//
// # Features
//
//   - Conversion between Lorentzian widths/centroids, polynomial roots and coefficients
//   - Closed-form stationary variance and state covariance
//   - Exact Kalman filter likelihood on arbitrary time grids
//   - Exact simulation on arbitrary time grids
//   - Power spectral density and pointwise credible bands over posterior draws
//   - Residual diagnostics (ACF, Ljung-Box, Durbin-Watson, information criteria)
//
// # Quick Start
//
// Evaluate and simulate a model with two QPOs:
//
//	roots, _ := carp.RootsFromQPO([]float64{0.03, 0.1}, []float64{0.2, 0.013})
//	coefs, _ := carp.CoefficientsFromRoots(roots)
//	sigsqr := carp.NoiseVariance(1.0, roots)
//	psd := spectrum.PSD(freqs, math.Sqrt(sigsqr), coefs)
//
//	sim := carp.NewSimulator(rand.NewPCG(1, 2))
//	y, _ := sim.Simulate(time, sigsqr, roots)
//
// Post-process sampler output:
//
//	rows, _ := ensemble.LoadTable("samples.dat")
//	ens, _ := ensemble.FromRows(ctx, rows)
//	band, _ := ens.Band(ctx, freqs, 68.0, 0)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - carp: Roots, variance, Kalman filter and simulator
//   - spectrum: PSD, credible bands, frequency grids and periodograms
//   - ensemble: Posterior draws and per-draw evaluation
//   - stats: Residual diagnostics
//   - timeseries: Light curve data structures and CSV I/O
//
// The carpack command in cmd/carpack exposes all of the above.
//
// # References
//
//   - Kelly, B. C., et al. (2014). Flexible and Scalable Methods for Quantifying
//     Stochastic Variability in the Era of Massive Time-domain Astronomical Data Sets
//   - Jones, R. H. (1981). Fitting a Continuous Time Autoregression to Discrete Data
package gocarma

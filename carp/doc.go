// Package carp implements the state-space machinery of continuous-time
// autoregressive CAR(p) processes, as used to describe irregularly sampled
// astronomical light curves.
//
// A CAR(p) process is parameterized by the p roots of its characteristic
// polynomial and the variance σ² of its driving white noise. Posterior
// samplers usually work with Lorentzian widths and centroids instead; the
// package converts between the two and provides the exact Kalman filter and
// an exact simulator.
//
// # Roots and Coefficients
//
//	roots, err := carp.RootsFromQPO([]float64{0.03, 0.1}, []float64{0.2, 0.013})
//	coefs, err := carp.CoefficientsFromRoots(roots) // coefs[0] == 1
//
// # Variance
//
// The marginal variance of the process is σ² times UnitVariance(roots). Going
// the other way, NoiseVariance recovers σ² from a sampled process variance:
//
//	sigsqr := carp.NoiseVariance(variance, roots)
//
// # Kalman Filter
//
// KalmanFilter returns the one-step-ahead predictive mean and variance of a
// mean-subtracted series:
//
//	mean, variance, err := carp.KalmanFilter(t, y, yvar, sigsqr, roots)
//	loglik, err := carp.LogLikelihood(y, mean, variance)
//
// # Simulation
//
// Simulate draws a path at arbitrary times. Seed the source to reproduce a
// path exactly:
//
//	sim := carp.NewSimulator(rand.NewPCG(1, 2))
//	path, err := sim.Simulate(t, sigsqr, roots)
//
// Only pure autoregressive models are supported: the rotated moving-average
// weights are all ones.
package carp

// Package spectrum evaluates the power spectral density (PSD) of CAR(p)
// processes and summarizes it across posterior ensembles.
//
// # Single Model
//
//	roots, _ := carp.RootsFromQPO(widths, centroids)
//	coefs, _ := carp.CoefficientsFromRoots(roots)
//	psd := spectrum.PSD(freqs, sigma, coefs)
//
// # Credible Bands
//
// Given one (sigma, coefficients) pair per posterior draw, CredibleBand
// returns the per-frequency median and central credible interval:
//
//	freqs, _ := spectrum.FrequencyGrid(lc.Time, 1000)
//	band, err := spectrum.CredibleBand(ctx, freqs, sigmas, coefs, 95,
//	    spectrum.WithSubsample(500))
//
// Draws are evaluated in parallel; WithWorkers bounds the goroutine count.
//
// # Periodogram
//
// Periodogram gives the classical estimate for an evenly sampled series,
// normalized to be comparable with PSD. It is mostly useful for checking
// simulated paths against the model spectrum.
package spectrum

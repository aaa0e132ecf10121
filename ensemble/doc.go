// Package ensemble post-processes posterior draws of a CAR(p) model.
//
// A sampler writes one row per draw: the log-posterior, the standard
// deviation of the process, a measurement error scale, and the log
// centroids and log widths of the Lorentzian components of the power
// spectrum. FromRows turns each row into roots, polynomial coefficients and
// the driving noise σ:
//
//	rows, err := ensemble.LoadTable("samples.dat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ens, err := ensemble.FromRows(ctx, rows, ensemble.WithLogger(logger))
//
// # Power Spectrum
//
//	freqs, _ := spectrum.FrequencyGrid(lc.Time, 512)
//	band, err := ens.Band(ctx, freqs, 68.0, 0)
//	// band.Lower, band.Median, band.Upper
//
// # Best Fit
//
// A single representative model is the MAP draw, the posterior median or the
// posterior mean:
//
//	sigsqr, roots, err := ens.BestFit(ensemble.MAP)
//
// # Per-Draw Evaluation
//
// FilterAll and SimulateAll run the Kalman filter and the simulator once per
// draw, in parallel, with results indexed like ens.Draws.
//
//	filtered, err := ens.FilterAll(ctx, lc)
//	paths, err := ens.SimulateAll(ctx, lc.Time, 42)
package ensemble

// Package stats provides residual diagnostics for fitted CAR(p) models.
//
// A CAR(p) fit is judged by its Kalman innovations: scaled by the predicted
// standard deviation they should be independent standard normal draws. This
// package computes those standardized residuals and the usual whiteness
// checks on them.
//
// # Standardized Residuals
//
//	mean, variance, _ := carp.KalmanFilter(lc.Time, y, yvar, sigsqr, roots)
//	resid, err := stats.StandardizedResiduals(y, mean, variance)
//
// # Autocorrelation Functions
//
//	// Autocorrelation Function
//	acf := stats.ACF(resid, 20)
//
//	// ACF with confidence bounds
//	acfResult := stats.ACFWithConfidence(resid, 20)
//	significant := stats.SignificantLags(acfResult.Values, acfResult.ConfBounds)
//
// # Residual Diagnostics
//
// Test residuals for autocorrelation:
//
//	// Ljung-Box test for autocorrelation
//	lb := stats.LjungBox(resid, 10, p+2)
//	if lb.PValue > 0.05 {
//	    // Residuals are white noise (good)
//	}
//
//	// Box-Pierce test
//	bp := stats.BoxPierce(resid, 10, p+2)
//
//	// Durbin-Watson for first-order autocorrelation
//	dw := stats.DurbinWatson(resid)
//
// Diagnose bundles all of the above together with the same tests applied to
// the centred squared residuals, which pick up variance structure the model
// missed:
//
//	d := stats.Diagnose(resid, 20, p+2)
//	fmt.Printf("mean=%.3f var=%.3f white=%v\n", d.Mean, d.Variance, d.WhiteNoise(0.05))
//
// # Information Criteria
//
//	ic := stats.CalculateIC(loglik, len(y), p+2)
//	fmt.Printf("AIC=%.2f AICc=%.2f BIC=%.2f\n", ic.AIC, ic.AICc, ic.BIC)
package stats

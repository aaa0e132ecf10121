// Package timeseries provides the light curve type consumed by the CAR(p)
// tools: irregularly sampled measurements with per-point uncertainties.
//
// # Creating a Light Curve
//
//	lc, err := timeseries.New(time, y, ysig)
//	if err := lc.Validate(); err != nil {
//	    // unsorted or ragged input
//	}
//
// # Loading from CSV
//
//	lc, err := timeseries.LoadCSV("quasar.csv", nil)
//
//	// Whitespace separated, no header: time, value, error
//	opts := &timeseries.CSVOptions{Whitespace: true}
//	lc, err := timeseries.LoadCSV("car4_test.dat", opts)
//
// # Kalman Filter Inputs
//
// The filter expects mean-subtracted values and measurement variances:
//
//	y := lc.Centered()
//	yvar := lc.MeasurementVariance()
package timeseries

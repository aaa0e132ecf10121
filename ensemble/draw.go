package ensemble

import (
	"fmt"
	"math"

	"github.com/sartorproj/gocarma/carp"
)

// Draw is one posterior sample of a CAR(p) model.
type Draw struct {
	LogPost      float64
	Variance     float64 // variance of the process, not of the driving noise
	MeasErrScale float64 // multiplies the measurement error variances

	Centroids []float64
	Widths    []float64

	Roots []complex128
	Coefs []float64
	Sigma float64 // standard deviation of the driving white noise
}

// SigSqr returns the driving noise variance σ².
func (d *Draw) SigSqr() float64 {
	return d.Sigma * d.Sigma
}

// Order returns the number of autoregressive roots.
func (d *Draw) Order() int {
	return len(d.Roots)
}

// drawFromRow decodes one sampler row. The layout is
//
//	logpost, sqrt(var), measerr_scale,
//	log_centroid_0, log_width_0, log_centroid_1, log_width_1, ...
//
// followed, when p is odd, by the log width of the real root.
func drawFromRow(row []float64) (Draw, error) {
	p := len(row) - 3
	if p < 1 {
		return Draw{}, fmt.Errorf("%w: row has %d columns, need at least 4", carp.ErrShape, len(row))
	}

	stdev := row[1]
	d := Draw{
		LogPost:      row[0],
		Variance:     stdev * stdev,
		MeasErrScale: row[2],
		Centroids:    make([]float64, p/2),
		Widths:       make([]float64, 0, (p+1)/2),
	}
	for k := range p / 2 {
		d.Centroids[k] = math.Exp(row[3+2*k])
		d.Widths = append(d.Widths, math.Exp(row[4+2*k]))
	}
	if p%2 == 1 {
		d.Widths = append(d.Widths, math.Exp(row[2+p]))
	}

	roots, err := carp.RootsFromQPO(d.Widths, d.Centroids)
	if err != nil {
		return Draw{}, err
	}
	coefs, err := carp.CoefficientsFromRoots(roots)
	if err != nil {
		return Draw{}, err
	}
	d.Roots = roots
	d.Coefs = coefs
	d.Sigma = math.Sqrt(d.Variance / carp.UnitVariance(roots))

	return d, nil
}

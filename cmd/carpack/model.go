package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/gocarma/carp"
	"github.com/sartorproj/gocarma/ensemble"
)

// model is a single CAR(p) parameter set.
type model struct {
	sigsqr float64
	roots  []complex128
	coefs  []float64
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Slice("widths", nil, "Lorentzian widths (one per QPO, plus one for odd p)")
	cmd.Flags().Float64Slice("centroids", nil, "Lorentzian centroids (one per QPO)")
	cmd.Flags().Float64("variance", 1.0, "Variance of the process")
	cmd.Flags().String("samples", "", "Sampler output file; the best-fit draw is used instead of --widths/--centroids")
	cmd.Flags().String("best-fit", "", "Best-fit summary of --samples: map, median or mean (default from config)")
}

// modelFromFlags builds the model either from explicit QPO parameters or
// from the best fit of a sampler output file.
func (a *app) modelFromFlags(ctx context.Context, cmd *cobra.Command) (*model, error) {
	samples, _ := cmd.Flags().GetString("samples")
	if samples != "" {
		ens, err := a.loadEnsemble(ctx, samples)
		if err != nil {
			return nil, err
		}
		return a.bestFit(cmd, ens)
	}

	widths, _ := cmd.Flags().GetFloat64Slice("widths")
	centroids, _ := cmd.Flags().GetFloat64Slice("centroids")
	variance, _ := cmd.Flags().GetFloat64("variance")

	roots, err := carp.RootsFromQPO(widths, centroids)
	if err != nil {
		return nil, err
	}
	coefs, err := carp.CoefficientsFromRoots(roots)
	if err != nil {
		return nil, err
	}
	return &model{
		sigsqr: carp.NoiseVariance(variance, roots),
		roots:  roots,
		coefs:  coefs,
	}, nil
}

func (a *app) bestFit(cmd *cobra.Command, ens *ensemble.Ensemble) (*model, error) {
	name, _ := cmd.Flags().GetString("best-fit")
	if name == "" {
		name = a.cfg.Diagnostics.BestFit
	}
	method, err := ensemble.ParseMethod(name)
	if err != nil {
		return nil, err
	}
	sigsqr, roots, err := ens.BestFit(method)
	if err != nil {
		return nil, err
	}
	coefs, err := carp.CoefficientsFromRoots(roots)
	if err != nil {
		return nil, err
	}
	a.logger.Info("best fit selected",
		zap.Stringer("method", method),
		zap.Float64("sigsqr", sigsqr),
		zap.Int("p", len(roots)))
	return &model{sigsqr: sigsqr, roots: roots, coefs: coefs}, nil
}

func (a *app) loadEnsemble(ctx context.Context, path string) (*ensemble.Ensemble, error) {
	rows, err := ensemble.LoadTable(path)
	if err != nil {
		return nil, err
	}
	return ensemble.FromRows(ctx, rows,
		ensemble.WithLogger(a.logger),
		ensemble.WithWorkers(a.cfg.Workers))
}

// writeColumns writes equal-length columns as CSV with a header row.
func writeColumns(w io.Writer, header []string, cols ...[]float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if len(cols) == 0 {
		cw.Flush()
		return cw.Error()
	}
	record := make([]string, len(cols))
	for i := range cols[0] {
		for j, col := range cols {
			record[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

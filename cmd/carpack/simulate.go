package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/gocarma/carp"
	"github.com/sartorproj/gocarma/timeseries"
)

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a CAR(p) light curve",
		Long: `Simulates a CAR(p) process on the time grid of --lightcurve, or on a
regular grid of --points values spaced --dt apart. Gaussian measurement
noise of standard deviation --ysig is added when positive.`,
		Example: `  carpack simulate --widths 0.03,0.1 --centroids 0.2,0.013 --points 500 --dt 0.5
  carpack simulate --samples samples.dat --all --lightcurve lc.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := timeGrid(cmd)
			if err != nil {
				return err
			}
			seed := a.cfg.Seed
			if s, _ := cmd.Flags().GetInt64("seed"); s >= 0 {
				seed = uint64(s)
			}

			if all, _ := cmd.Flags().GetBool("all"); all {
				return a.simulateAll(cmd, grid, seed)
			}

			m, err := a.modelFromFlags(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			sim := carp.NewSimulator(rand.NewPCG(seed, 0))
			path, err := sim.Simulate(grid, m.sigsqr, m.roots)
			if err != nil {
				return err
			}

			ysig, _ := cmd.Flags().GetFloat64("ysig")
			errs := make([]float64, len(path))
			if ysig > 0 {
				noise := rand.New(rand.NewPCG(seed, 1))
				for i := range path {
					path[i] += ysig * noise.NormFloat64()
					errs[i] = ysig
				}
			}
			lc, err := timeseries.New(grid, path, errs)
			if err != nil {
				return err
			}
			a.logger.Info("light curve simulated",
				zap.Int("points", lc.Len()),
				zap.Int("p", len(m.roots)),
				zap.Uint64("seed", seed))
			return timeseries.WriteCSV(cmd.OutOrStdout(), lc)
		},
	}
	addModelFlags(cmd)
	cmd.Flags().String("lightcurve", "", "Light curve CSV whose time values are the simulation grid")
	cmd.Flags().Bool("whitespace", false, "Light curve columns are whitespace separated")
	cmd.Flags().Int("points", 0, "Number of points on a regular grid")
	cmd.Flags().Float64("dt", 1.0, "Spacing of the regular grid")
	cmd.Flags().Float64("ysig", 0, "Standard deviation of added measurement noise")
	cmd.Flags().Int64("seed", -1, "Random seed (default from config)")
	cmd.Flags().Bool("all", false, "Simulate one path per draw of --samples")
	return cmd
}

func timeGrid(cmd *cobra.Command) ([]float64, error) {
	if path, _ := cmd.Flags().GetString("lightcurve"); path != "" {
		lc, err := loadLightCurve(cmd, path)
		if err != nil {
			return nil, err
		}
		return lc.Time, nil
	}
	n, _ := cmd.Flags().GetInt("points")
	dt, _ := cmd.Flags().GetFloat64("dt")
	if n < 1 || !(dt > 0) {
		return nil, errors.New("need --lightcurve, or --points > 0 and --dt > 0")
	}
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = float64(i) * dt
	}
	return grid, nil
}

func (a *app) simulateAll(cmd *cobra.Command, grid []float64, seed uint64) error {
	samples, _ := cmd.Flags().GetString("samples")
	if samples == "" {
		return errors.New("--all requires --samples")
	}
	ens, err := a.loadEnsemble(cmd.Context(), samples)
	if err != nil {
		return err
	}
	paths, err := ens.SimulateAll(cmd.Context(), grid, seed)
	if err != nil {
		return err
	}

	header := []string{"time"}
	cols := [][]float64{grid}
	for i, p := range paths {
		header = append(header, "draw_"+strconv.Itoa(i))
		cols = append(cols, p)
	}
	if err := writeColumns(cmd.OutOrStdout(), header, cols...); err != nil {
		return fmt.Errorf("failed to write paths: %w", err)
	}
	return nil
}

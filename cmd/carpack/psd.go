package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/gocarma/spectrum"
	"github.com/sartorproj/gocarma/timeseries"
)

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().String("lightcurve", "", "Light curve CSV whose sampling sets the frequency range")
	cmd.Flags().Bool("whitespace", false, "Light curve columns are whitespace separated")
	cmd.Flags().Float64("fmin", 0, "Lowest frequency (ignored with --lightcurve)")
	cmd.Flags().Float64("fmax", 0, "Highest frequency (ignored with --lightcurve)")
	cmd.Flags().Int("n", 0, "Number of log-spaced frequencies (default from config)")
}

func (a *app) frequencyGrid(cmd *cobra.Command) ([]float64, error) {
	n, _ := cmd.Flags().GetInt("n")
	if n <= 0 {
		n = a.cfg.Spectrum.Frequencies
	}

	if path, _ := cmd.Flags().GetString("lightcurve"); path != "" {
		lc, err := loadLightCurve(cmd, path)
		if err != nil {
			return nil, err
		}
		return spectrum.FrequencyGrid(lc.Time, n)
	}

	fmin, _ := cmd.Flags().GetFloat64("fmin")
	fmax, _ := cmd.Flags().GetFloat64("fmax")
	if !(fmin > 0 && fmax > fmin) || n < 2 {
		return nil, fmt.Errorf("need --lightcurve, or 0 < --fmin < --fmax")
	}
	return floats.LogSpan(make([]float64, n), fmin, fmax), nil
}

func loadLightCurve(cmd *cobra.Command, path string) (*timeseries.LightCurve, error) {
	opts := timeseries.DefaultCSVOptions()
	if ws, _ := cmd.Flags().GetBool("whitespace"); ws {
		opts.Whitespace = true
	}
	return timeseries.LoadCSV(path, opts)
}

func newPSDCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "psd",
		Short: "Evaluate the power spectrum of a single CAR(p) model",
		Example: `  carpack psd --widths 0.03,0.1 --centroids 0.2,0.013 --fmin 1e-3 --fmax 1
  carpack psd --samples samples.dat --best-fit median --lightcurve lc.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.modelFromFlags(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			freqs, err := a.frequencyGrid(cmd)
			if err != nil {
				return err
			}
			psd := spectrum.PSD(freqs, math.Sqrt(m.sigsqr), m.coefs)
			return writeColumns(cmd.OutOrStdout(), []string{"frequency", "psd"}, freqs, psd)
		},
	}
	addModelFlags(cmd)
	addGridFlags(cmd)
	return cmd
}

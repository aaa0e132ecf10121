package main

import (
	"github.com/spf13/cobra"
)

func newBandCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "band SAMPLES",
		Short: "Pointwise credible band of the power spectrum over posterior draws",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			percentile, _ := cmd.Flags().GetFloat64("percentile")
			if percentile <= 0 {
				percentile = a.cfg.Spectrum.Percentile
			}
			subsample, _ := cmd.Flags().GetInt("subsample")
			if subsample < 0 {
				subsample = a.cfg.Spectrum.Subsample
			}

			ens, err := a.loadEnsemble(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			freqs, err := a.frequencyGrid(cmd)
			if err != nil {
				return err
			}
			band, err := ens.Band(cmd.Context(), freqs, percentile, subsample)
			if err != nil {
				return err
			}
			return writeColumns(cmd.OutOrStdout(),
				[]string{"frequency", "lower", "median", "upper"},
				band.Frequencies, band.Lower, band.Median, band.Upper)
		},
	}
	cmd.Flags().Float64("percentile", 0, "Width of the central credible interval in percent (default from config)")
	cmd.Flags().Int("subsample", -1, "Use this many evenly strided draws, 0 for all (default from config)")
	addGridFlags(cmd)
	return cmd
}

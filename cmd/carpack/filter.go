package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/gocarma/carp"
	"github.com/sartorproj/gocarma/stats"
	"github.com/sartorproj/gocarma/timeseries"
)

func newFilterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter LIGHTCURVE",
		Short: "Kalman filter a light curve and check the residuals",
		Long: `Runs the Kalman filter of a CAR(p) model over the mean-subtracted light
curve and reports the likelihood, information criteria and whiteness tests
of the standardized residuals. With --all and --samples the log-likelihood
of every posterior draw is written instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := loadLightCurve(cmd, args[0])
			if err != nil {
				return err
			}
			if all, _ := cmd.Flags().GetBool("all"); all {
				return a.filterAll(cmd, lc)
			}

			m, err := a.modelFromFlags(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			y := lc.Centered()
			mean, variance, err := carp.KalmanFilter(lc.Time, y, lc.MeasurementVariance(), m.sigsqr, m.roots)
			if err != nil {
				return err
			}
			loglik, err := carp.LogLikelihood(y, mean, variance)
			if err != nil {
				return err
			}
			resid, err := stats.StandardizedResiduals(y, mean, variance)
			if err != nil {
				return err
			}

			if path, _ := cmd.Flags().GetString("table"); path != "" {
				if err := writeFilterTable(path, lc, mean, variance, resid); err != nil {
					return err
				}
			}

			p := len(m.roots)
			ic := stats.CalculateIC(loglik, lc.Len(), p+2)
			diag := stats.Diagnose(resid, min(a.cfg.Diagnostics.MaxLag, lc.Len()-1), p+2)
			a.logger.Info("light curve filtered",
				zap.String("light_curve", lc.Name),
				zap.Int("observations", lc.Len()),
				zap.Float64("loglik", loglik))

			printDiagnostics(cmd.OutOrStdout(), lc, p, ic, diag)
			return nil
		},
	}
	addModelFlags(cmd)
	cmd.Flags().Bool("whitespace", false, "Light curve columns are whitespace separated")
	cmd.Flags().String("table", "", "Write time, y, Kalman mean, variance and residual to this CSV file")
	cmd.Flags().Bool("all", false, "Filter with every draw of --samples and write draw log-likelihoods")
	return cmd
}

func (a *app) filterAll(cmd *cobra.Command, lc *timeseries.LightCurve) error {
	samples, _ := cmd.Flags().GetString("samples")
	if samples == "" {
		return errors.New("--all requires --samples")
	}
	ens, err := a.loadEnsemble(cmd.Context(), samples)
	if err != nil {
		return err
	}
	filtered, err := ens.FilterAll(cmd.Context(), lc)
	if err != nil {
		return err
	}

	index := make([]float64, len(filtered))
	logpost := make([]float64, len(filtered))
	loglik := make([]float64, len(filtered))
	for i, f := range filtered {
		index[i] = float64(i)
		logpost[i] = ens.Draws[i].LogPost
		loglik[i] = f.LogLik
	}
	return writeColumns(cmd.OutOrStdout(), []string{"draw", "logpost", "loglik"}, index, logpost, loglik)
}

func writeFilterTable(path string, lc *timeseries.LightCurve, mean, variance, resid []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	offset := lc.Mean()
	predicted := make([]float64, len(mean))
	for i, m := range mean {
		predicted[i] = m + offset
	}
	if err := writeColumns(f, []string{"time", "y", "kalman_mean", "kalman_var", "residual"},
		lc.Time, lc.Y, predicted, variance, resid); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printDiagnostics(w io.Writer, lc *timeseries.LightCurve, p int, ic *stats.InformationCriteria, d *stats.Diagnostics) {
	fmt.Fprintf(w, "Light curve:   %s (%d observations)\n", lc.Name, lc.Len())
	fmt.Fprintf(w, "Model:         CAR(%d)\n", p)
	fmt.Fprintf(w, "Log-lik:       %.4f\n", ic.LogLik)
	fmt.Fprintf(w, "AIC/AICc/BIC:  %.2f / %.2f / %.2f\n", ic.AIC, ic.AICc, ic.BIC)
	if d == nil {
		return
	}
	fmt.Fprintf(w, "Residuals:     mean=%.4f variance=%.4f\n", d.Mean, d.Variance)
	if d.LjungBox != nil {
		fmt.Fprintf(w, "Ljung-Box:     Q=%.3f p=%.4f (lags=%d, dof=%d)\n",
			d.LjungBox.Statistic, d.LjungBox.PValue, d.LjungBox.Lags, d.LjungBox.DOF)
	}
	if d.SquaredLjungBox != nil {
		fmt.Fprintf(w, "Ljung-Box r²:  Q=%.3f p=%.4f\n", d.SquaredLjungBox.Statistic, d.SquaredLjungBox.PValue)
	}
	if d.BoxPierce != nil {
		fmt.Fprintf(w, "Box-Pierce:    Q=%.3f p=%.4f\n", d.BoxPierce.Statistic, d.BoxPierce.PValue)
	}
	if d.DurbinWatson != nil {
		fmt.Fprintf(w, "Durbin-Watson: %.4f\n", d.DurbinWatson.Statistic)
	}
	if d.ACF != nil {
		fmt.Fprintf(w, "Significant ACF lags: %v\n", stats.SignificantLags(d.ACF.Values, d.ACF.ConfBounds))
	}
	fmt.Fprintf(w, "White noise (5%%): %v\n", d.WhiteNoise(0.05))
}

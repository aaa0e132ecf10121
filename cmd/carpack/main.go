// Package main provides the carpack CLI for post-processing CAR(p) fits.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/gocarma/internal/config"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has loaded the configuration.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "carpack",
		Short: "carpack - CAR(p) power spectra, Kalman filtering and simulation",
		Long: `carpack post-processes continuous-time autoregressive CAR(p) models
of irregularly sampled light curves.

Features:
  • Power spectral density of a single model or a posterior ensemble
  • Pointwise credible bands of the PSD
  • Kalman filter likelihood and residual diagnostics
  • Exact simulation on arbitrary time grids`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().String("config", "", "YAML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().Int("workers", -1, "Override the number of workers (0 = one per CPU)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "carpack v%s (%s)\n", version, commit)
		},
	})
	rootCmd.AddCommand(newPSDCmd(a))
	rootCmd.AddCommand(newBandCmd(a))
	rootCmd.AddCommand(newFilterCmd(a))
	rootCmd.AddCommand(newSimulateCmd(a))
	rootCmd.AddCommand(newDemoCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.LoadDefaults()
	if path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return err
		}
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers >= 0 {
		cfg.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc.Level = level
	// Tables go to stdout, logs to stderr.
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

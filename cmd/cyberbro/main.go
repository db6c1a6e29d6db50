package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool
	logFormat  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cyberbro",
	Short: "Cyberbro - social media impact analyzer",
	Long: `Cyberbro classifies social media posts by sentiment and toxicity,
keeps a persistent history of every analyzed post and serves a dashboard
with per-batch charts and a CSV export.

Run "cyberbro serve" to start the dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(logFormat, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")

	rootCmd.AddCommand(serveCmd, analyzeCmd, historyCmd)
}

// newLogger builds a development logger, or a production JSON logger for format "json"
func newLogger(format string, debug bool) (*zap.Logger, error) {
	var config zap.Config
	switch format {
	case "console", "":
		config = zap.NewDevelopmentConfig()
		if !debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	case "json":
		config = zap.NewProductionConfig()
		if debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return config.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wanderplan/internal/logging"
)

var (
	logLevel string
	logDev   bool
)

var rootCmd = &cobra.Command{
	Use:           "wanderctl",
	Short:         "Operator tools for the wanderplan trip planner",
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logDev, "log-dev", true, "human-readable console logs")
}

func newLogger() (*zap.Logger, error) {
	return logging.New(logLevel, logDev)
}

// Package main is the entry point of the company service: it serves the
// companies API and offers terminal views over the same query engine.
package main

import (
	"fmt"
	"os"

	"github.com/gartstein/bizmetrics/internal/company/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	Version = "0.1.0"
	appName = "company"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Business metrics company service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file path (YAML)")

	cmd.AddCommand(
		serveCmd(&configPath),
		companiesCmd(&configPath),
		summaryCmd(&configPath),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

// loadConfig reads the configuration and builds the logger it names.
func loadConfig(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}

func syncLogger(logger *zap.Logger) {
	// Sync fails on stderr for some terminals; nothing to do about it.
	_ = logger.Sync()
}

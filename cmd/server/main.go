package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/feedback-management-api/internal/config"
	"github.com/yukikurage/feedback-management-api/internal/logging"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "feedback-api",
		Short: "Employee feedback management API",
		// Running the binary without a subcommand starts the server.
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the process logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/feedback-management-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/farellandr/secretsanta/config"
	"github.com/spf13/cobra"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := config.NewLogger(cfg, globalFlags.debug)
			db, err := config.InitDatabase(cfg)
			if err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
			logger.Info("database schema is up to date",
				"component", programName,
				"driver", cfg.DBDriver,
			)
			return nil
		},
	}
}

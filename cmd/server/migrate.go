package main

import (
	"log/slog"

	"github.com/anonto42/nano-forum/backend/internal/repositories"
	"github.com/anonto42/nano-forum/backend/pkg/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.InitDB(cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		if err := repositories.Migrate(db.SQL); err != nil {
			return err
		}
		slog.Info("Database migrations completed", "driver", cfg.DBDriver)
		return nil
	},
}

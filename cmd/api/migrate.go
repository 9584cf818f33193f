package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"newshub/internal/config"
	"newshub/internal/database"
	"newshub/internal/database/migration"
	"newshub/internal/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel, cfg.Location())

			db, err := database.NewPostgres(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			version, err := migration.EnsureMigrated(db, logger, cfg.Database.Host)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		},
	}
}

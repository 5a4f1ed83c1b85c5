package cmd

import (
	"fmt"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		if cfg.Storage.Driver != config.StorageDriverPostgres {
			log.Info().Str("storage", cfg.Storage.Driver).Msg("storage driver has no schema, nothing to migrate")
			return nil
		}

		if err := database.Migrate(cmd.Context(), log, cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		return nil
	},
}

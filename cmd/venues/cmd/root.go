package cmd

import (
	"fmt"
	"os"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	storageDriver string

	rootCmd = &cobra.Command{
		Use:   "venues",
		Short: "Venue records HTTP service",
		Long: `venues stores venue records (name, URL, district) behind a JSON API
with username/password signup and token login.

Configuration comes from VENUES_* environment variables and an optional .env file.`,
		SilenceUsage: true,
		// serve is the default command
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
	}
)

// Execute runs the root command. It is called once by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageDriver, "storage", "", "storage driver override (postgres, redis, memory)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// bootstrap loads config and builds the root logger. Callers must Shutdown
// the returned LoggerService.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if storageDriver != "" {
		cfg.Storage.Driver = storageDriver
		if err := cfg.Validate(); err != nil {
			return nil, nil, nil, err
		}
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}

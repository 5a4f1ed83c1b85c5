package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/database"
	"github.com/deppfellow/venues/internal/handler"
	"github.com/deppfellow/venues/internal/repository"
	"github.com/deppfellow/venues/internal/router"
	"github.com/deppfellow/venues/internal/server"
	"github.com/deppfellow/venues/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. With the postgres driver the schema is migrated
first. An empty venue collection is seeded unless seed.enabled is false.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply schema migrations on start")
}

func runServer() error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if cfg.Storage.Driver == config.StorageDriverPostgres && !skipMigrate {
		if err := database.Migrate(context.Background(), log, cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		srv.Close()
		return err
	}

	services, err := service.NewService(srv, repos)
	if err != nil {
		srv.Close()
		return fmt.Errorf("could not create services: %w", err)
	}

	if cfg.Seed.Enabled {
		if _, err := services.Seed.SeedIfEmpty(context.Background()); err != nil {
			srv.Close()
			return fmt.Errorf("failed to seed venues: %w", err)
		}
	}

	srv.SetupHTTPServer(router.NewRouter(srv, handler.NewHandlers(srv, services)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			srv.Close()
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

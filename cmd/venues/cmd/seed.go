package cmd

import (
	"fmt"

	"github.com/deppfellow/venues/internal/lib/utils"
	"github.com/deppfellow/venues/internal/repository"
	"github.com/deppfellow/venues/internal/server"
	"github.com/deppfellow/venues/internal/service"
	"github.com/spf13/cobra"
)

var printSeed bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an empty venue collection",
	Long: `Insert the seed dataset (seed.file, or the built-in dataset) when the
venue collection is empty. A non-empty collection is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		if printSeed {
			dataset, err := service.LoadSeedDataset(cfg.Seed.File)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), dataset)
		}

		// seeding never needs the job workers
		cfg.Jobs.Enabled = false

		srv, err := server.New(cfg, log, loggerService)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}
		defer srv.Close()

		repos, err := repository.NewRepositories(srv)
		if err != nil {
			return err
		}

		seeder, err := service.NewSeeder(srv, repos.Venues)
		if err != nil {
			return err
		}

		created, err := seeder.SeedIfEmpty(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d venues\n", created)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&printSeed, "print", false, "print the seed dataset instead of inserting it")
}

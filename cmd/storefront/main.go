package main

import (
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/kutbudev/storefront-api/internal/api"
	"github.com/kutbudev/storefront-api/internal/config"
	"github.com/kutbudev/storefront-api/internal/logging"
	"github.com/kutbudev/storefront-api/internal/repository"
	"github.com/kutbudev/storefront-api/internal/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront catalog API for categories, products and tags.",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, so we just need to exit.
		os.Exit(1)
	}
}

// connect loads configuration and opens the database, which also runs
// migrations.
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := repository.NewDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(os.Stderr)
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			r := api.NewRouter(db, logger)
			addr := cfg.Server.Addr()
			logger.Info("listening", "addr", addr)
			return r.Run(addr)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(os.Stderr)
			if _, _, err := connect(); err != nil {
				return err
			}
			logger.Info("migration complete")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample catalog into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(os.Stderr)
			_, db, err := connect()
			if err != nil {
				return err
			}
			if err := seed.Load(db); err != nil {
				return err
			}
			logger.Info("seed data loaded")
			return nil
		},
	}
}

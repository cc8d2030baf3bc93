package main

import (
	"os"

	"github.com/fashion-digest/internal/config"
	"github.com/fashion-digest/internal/database"
	"github.com/fashion-digest/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fashion-digest",
		Short:        "Fashion Digest content site",
		SilenceUsage: true,
		// serving is the default action
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

// bootstrap loads configuration, builds the logger and connects to the database
func bootstrap() (*config.Config, zerolog.Logger, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New(config.LogConfig{Level: "info"})
		log.Error().Err(err).Msg("Failed to load configuration")
		return nil, log, nil, err
	}

	log := logger.New(cfg.Log)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return nil, log, nil, err
	}
	return cfg, log, db, nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/fashion-digest/internal/models"
	"github.com/fashion-digest/internal/repository"
	"github.com/fashion-digest/internal/service"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the bundled articles and videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
				log.Error().Err(err).Msg("Failed to run database migrations")
				return err
			}

			services := service.NewServices(repository.New(db), log)
			result, err := services.Seed.Seed(cmd.Context())
			if errors.Is(err, models.ErrDuplicateTitle) {
				return fmt.Errorf("content already seeded: %w", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d articles and %d videos\n", result.Articles, result.Videos)
			return nil
		},
	}
}

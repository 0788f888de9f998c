package cli

import (
	"context"
	"math/rand"
	"time"

	"spiritualgifts/app"
	"spiritualgifts/config"

	"github.com/spf13/cobra"
)

// NewSeedCmd loads default data. Questions are only loaded with --questions.
func NewSeedCmd(configPath *string) *cobra.Command {
	var withQuestions bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed gift descriptions, the default admin and optionally the question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, withQuestions)
		},
	}
	cmd.Flags().BoolVar(&withQuestions, "questions", false, "also load the default question bank when it is empty")
	return cmd
}

func runSeed(ctx context.Context, configPath string, withQuestions bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	db, rdb, closeStores, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	if err := config.Migrate(db); err != nil {
		return err
	}

	seeder := app.New(cfg, db, rdb).Seeder
	if err := seeder.SeedGiftDescriptions(ctx); err != nil {
		return err
	}
	if err := seeder.SeedDefaultAdmin(ctx, cfg.Admin.Fullname, cfg.Admin.Email); err != nil {
		return err
	}
	if withQuestions {
		if _, err := seeder.SeedQuestions(ctx, rand.New(rand.NewSource(time.Now().UnixNano()))); err != nil {
			return err
		}
	}
	return nil
}

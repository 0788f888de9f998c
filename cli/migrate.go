package cli

import (
	"spiritualgifts/config"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates or updates the database schema and exits.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(*configPath)
		},
	}
}

func runMigrations(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	db, _, closeStores, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	return config.Migrate(db)
}

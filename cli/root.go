package cli

import (
	"fmt"
	"log"
	"os"

	"spiritualgifts/config"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "spiritualgifts",
		Short: "Spiritual gifts assessment API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), configPath, port)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&port, "port", "", "port to listen on (overrides PORT)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewServeCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewSeedCmd(&configPath))
	return cmd
}

// openStores connects the database and, when configured, redis. The returned
// func closes both.
func openStores(cfg *config.Config) (*gorm.DB, *redis.Client, func(), error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database handle: %w", err)
	}

	rdb := config.InitRedis(cfg)
	closeAll := func() {
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				log.Printf("close redis: %v", err)
			}
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}
	return db, rdb, closeAll, nil
}

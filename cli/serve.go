package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spiritualgifts/app"
	"spiritualgifts/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed defaults and start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if portFlag != "" {
		cfg.Port = portFlag
	}
	gin.SetMode(cfg.GinMode)

	db, rdb, closeStores, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	if err := config.Migrate(db); err != nil {
		return err
	}

	a := app.New(cfg, db, rdb)
	if err := a.Seeder.SeedGiftDescriptions(ctx); err != nil {
		return err
	}
	if err := a.Seeder.SeedDefaultAdmin(ctx, cfg.Admin.Fullname, cfg.Admin.Email); err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.ListenAddr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

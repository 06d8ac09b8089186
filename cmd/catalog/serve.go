package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tominotrumpets/internal/app/artists"
	"tominotrumpets/internal/app/genres"
	"tominotrumpets/internal/app/songs"
	"tominotrumpets/internal/config"
	"tominotrumpets/internal/httpapi"
	"tominotrumpets/internal/store"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		catalog, closer, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		return runServer(ctx, cfg.Server.Addr(), newHTTPHandler(cfg, catalog))
	},
}

// catalogStore is the persistence surface shared by the catalog services.
type catalogStore interface {
	artists.Store
	songs.Store
	genres.Store
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore builds the configured backend. For Postgres it waits for the
// database and applies migrations when MIGRATE_ON_START is set.
func openStore(ctx context.Context, cfg *config.Config) (catalogStore, io.Closer, error) {
	if cfg.Store.Backend == config.BackendMemory {
		log.Info().Msg("using seeded in-memory store")
		return store.NewSeededMemoryStore(), nopCloser{}, nil
	}

	db, err := openDatabase(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	if cfg.Store.MigrateOnStart {
		if err := store.Migrate(cfg.Database.Driver, cfg.Database.URL, store.Up); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
	}
	return store.New(db), db, nil
}

func newHTTPHandler(cfg *config.Config, catalog catalogStore) http.Handler {
	policy := cfg.Catalog.DeletePolicy

	return httpapi.New(
		artists.New(catalog, policy),
		songs.New(catalog),
		genres.New(catalog, policy),
		httpapi.Options{AllowedOrigins: cfg.CORS.AllowedOrigins},
	).Routes()
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("catalog service starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server exited")
	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tominotrumpets/internal/config"
	"tominotrumpets/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the catalog schema and seed rows",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(store.Up), string(store.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Backend != config.BackendPostgres {
			return errors.New("migrate requires STORE_BACKEND=postgres")
		}

		dir := store.Direction(args[0])
		if err := store.Migrate(cfg.Database.Driver, cfg.Database.URL, dir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		log.Info().Str("direction", string(dir)).Msg("migrations complete")
		return nil
	},
}

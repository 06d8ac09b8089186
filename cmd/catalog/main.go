// Package main provides the catalog service CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tominotrumpets/internal/config"
	"tominotrumpets/internal/logging"
)

var (
	// envFile is set by the --env-file flag.
	envFile string

	// cfg is loaded once by PersistentPreRunE.
	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog serves the artist, song and genre records over HTTP",
	Long: `Catalog is a record-management backend for a music catalog. It stores
artists, songs and genres in Postgres (or in memory for demos) and exposes
CRUD and lookup endpoints under /api.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before reading the environment (default: .env when present)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// loadSettings reads configuration and installs the global logger.
func loadSettings(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	loaded, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	cfg = loaded

	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}))
	return nil
}

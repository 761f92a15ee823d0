package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/quotegrid/cryptoseed/internal/config"
	"github.com/quotegrid/cryptoseed/internal/db"
	"github.com/quotegrid/cryptoseed/internal/tui"
)

// version is set via ldflags at build time, or read from module info
var version = "dev"

func init() {
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	rootCmd.Version = version
}

var (
	flagDB         string
	flagStart      string
	flagDays       int
	flagDifficulty string
	flagFrom       string
	flagTo         string
)

// loadConfig reads the nearest cryptoseed.toml (defaults if none).
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// dbPath resolves the database location: --db flag, then CRYPTOSEED_DB,
// then config file, then quotes.db in the working directory.
func dbPath(cfg *config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	return cfg.DBPath()
}

// openDB opens the configured database and runs pending migrations.
func openDB() (*db.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	database, err := db.Open(dbPath(cfg))
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return database, nil
}

var rootCmd = &cobra.Command{
	Use:     "cryptoseed",
	Short:   "Manage the cryptogram quote database and daily puzzle schedule",
	Version: version,
	Long: `A CLI for the quotes.db behind the daily cryptogram puzzle.

Quotes are imported once, then assigned to consecutive calendar dates
so the app can serve one puzzle per day.

Quick start:
  cryptoseed init
  cryptoseed import quotes.yaml
  cryptoseed seed --start 2025-04-23 --days 365
  cryptoseed status
  cryptoseed browse

The database path comes from --db, the CRYPTOSEED_DB environment
variable, or a cryptoseed.toml next to the database (default quotes.db).

Use 'cryptoseed [command] --help' for detailed help on any command.`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the quotes database schema",
	Long:  "Creates the quotes and daily_puzzles tables and runs any pending migrations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := dbPath(cfg)
		database, err := db.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		if err := database.Init(); err != nil {
			return err
		}
		fmt.Printf("Initialized database at %s (schema v%d)\n", path, db.SchemaVersion)
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the puzzle schedule interactively",
	Long: `Opens an interactive browser over the scheduled puzzles.

Navigate with j/k, filter with /, press enter for the full quote.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		return tui.Run(database)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: config or quotes.db)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(browseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

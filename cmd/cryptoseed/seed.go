package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quotegrid/cryptoseed/internal/model"
	"github.com/quotegrid/cryptoseed/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Assign quotes to consecutive daily puzzle dates",
	Long: `Selects up to --days quotes of the given difficulty (ordered by id)
and assigns the i-th quote to --start + i days. Dates that already have
a puzzle are skipped, so rerunning is safe.

All assignments are written in one transaction; an error leaves the
schedule untouched.

Examples:
  cryptoseed seed                                  # config or built-in defaults
  cryptoseed seed --start 2025-04-23 --days 365
  cryptoseed seed --difficulty hard --days 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts, err := cfg.SeedOptions()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("start") {
			start, err := model.ParseDate(flagStart)
			if err != nil {
				return fmt.Errorf("invalid --start date (want YYYY-MM-DD): %w", err)
			}
			opts.StartDate = start
		}
		if cmd.Flags().Changed("days") {
			opts.NumDays = flagDays
		}
		if cmd.Flags().Changed("difficulty") {
			opts.Difficulty = model.Difficulty(flagDifficulty)
		}

		database, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		result, err := seed.Run(database, opts)
		if err != nil {
			return err
		}

		fmt.Println(result.Summary())
		if result.Inserted < result.Fetched {
			fmt.Printf("(%d dates already had puzzles and were left unchanged)\n", result.Fetched-result.Inserted)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&flagStart, "start", "", "first puzzle date, YYYY-MM-DD (default: config)")
	seedCmd.Flags().IntVar(&flagDays, "days", 0, "maximum days to schedule (default: config)")
	seedCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "quote difficulty: easy, medium, hard (default: config)")
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quotegrid/cryptoseed/internal/db"
	"github.com/quotegrid/cryptoseed/internal/format"
	"github.com/quotegrid/cryptoseed/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show quote counts and schedule coverage",
	Long: `Reports how many quotes exist per difficulty, the span of scheduled
puzzle dates, and any unscheduled days inside that span.

Use 'cryptoseed status --from/--to' to also list the scheduled puzzles
in a date range.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		if err := database.CheckSchema(); err != nil {
			return err
		}

		counts, err := database.CountQuotes()
		if err != nil {
			return err
		}
		stats, err := database.ScheduleStatus()
		if err != nil {
			return err
		}

		printStatus(counts, stats)

		if flagFrom != "" || flagTo != "" {
			entries, err := database.ListSchedule(flagFrom, flagTo)
			if err != nil {
				return err
			}
			fmt.Println()
			printSchedule(entries)
		}
		return nil
	},
}

func printStatus(counts map[model.Difficulty]int, stats *db.ScheduleStats) {
	total := 0
	var parts []string
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		total += counts[d]
		parts = append(parts, fmt.Sprintf("%d %s", counts[d], d))
	}
	fmt.Printf("Quotes: %d (%s)\n", total, strings.Join(parts, ", "))

	if stats.Total == 0 {
		fmt.Println("Schedule: empty")
		return
	}
	fmt.Printf("Schedule: %d puzzles, %s to %s\n", stats.Total, stats.FirstDate, stats.LastDate)
	if len(stats.Gaps) > 0 {
		fmt.Printf("Gaps: %s\n", strings.Join(format.CompressGaps(stats.Gaps), ", "))
	}
	next, err := model.ParseDate(stats.LastDate)
	if err == nil {
		fmt.Printf("Next unscheduled date: %s\n", model.FormatDate(model.AddDays(next, 1)))
	}
}

func printSchedule(entries []db.ScheduleEntry) {
	if len(entries) == 0 {
		fmt.Println("No puzzles in range")
		return
	}
	fmt.Printf("%-12s %-8s %s\n", "DATE", "LEVEL", "QUOTE")
	for _, e := range entries {
		preview := format.Preview(e.Text)
		if e.Author != "" {
			preview += " - " + e.Author
		}
		fmt.Printf("%-12s %-8s %s\n", e.PuzzleDate, e.Difficulty, preview)
	}
}

func init() {
	statusCmd.Flags().StringVar(&flagFrom, "from", "", "list puzzles from this date (YYYY-MM-DD)")
	statusCmd.Flags().StringVar(&flagTo, "to", "", "list puzzles up to this date (YYYY-MM-DD)")
}

// Package seed populates the daily_puzzles schedule from the quote corpus.
//
// Seeding assigns up to NumDays quotes of one difficulty to consecutive
// calendar dates: the i-th selected quote (ordered by id) lands on
// StartDate + i days. Assignments already present are skipped, so
// reseeding the same database is a no-op for existing pairs.
package seed

import (
	"fmt"
	"time"

	"github.com/quotegrid/cryptoseed/internal/db"
	"github.com/quotegrid/cryptoseed/internal/model"
)

// Default seeding parameters, matching the original quotes.db rollout:
// a year of medium puzzles starting 2025-04-23.
var (
	DefaultStartDate  = time.Date(2025, time.April, 23, 0, 0, 0, 0, time.UTC)
	DefaultNumDays    = 365
	DefaultDifficulty = model.DifficultyMedium
)

// Options are the explicit parameters of one seeding run.
type Options struct {
	StartDate  time.Time
	NumDays    int
	Difficulty model.Difficulty
}

// DefaultOptions returns the standard year-of-medium-puzzles run.
func DefaultOptions() Options {
	return Options{
		StartDate:  DefaultStartDate,
		NumDays:    DefaultNumDays,
		Difficulty: DefaultDifficulty,
	}
}

// Result reports what one seeding run did.
//
// Fetched counts quote ids selected, Inserted counts rows actually written.
// The two differ when assignments already existed; the user-facing summary
// reports Fetched.
type Result struct {
	Fetched   int
	Inserted  int
	StartDate string
}

// Summary is the one-line success message printed after a run.
func (r *Result) Summary() string {
	return fmt.Sprintf("Populated %d daily puzzles starting from %s", r.Fetched, r.StartDate)
}

// Run selects up to opts.NumDays quote ids matching opts.Difficulty and
// assigns them to consecutive dates from opts.StartDate.
//
// All writes happen inside a single transaction: an error mid-loop rolls
// back everything, so the schedule is never left partially extended.
func Run(database *db.DB, opts Options) (*Result, error) {
	if opts.NumDays <= 0 {
		return nil, fmt.Errorf("num days must be positive, got %d", opts.NumDays)
	}
	if !opts.Difficulty.IsValid() {
		return nil, fmt.Errorf("invalid difficulty: %q (valid: easy, medium, hard)", opts.Difficulty)
	}
	if opts.StartDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}

	if err := database.CheckSchema(); err != nil {
		return nil, err
	}

	ids, err := database.SelectQuoteIDs(opts.Difficulty, opts.NumDays)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Fetched:   len(ids),
		StartDate: model.FormatDate(opts.StartDate),
	}

	tx, err := database.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, quoteID := range ids {
		date := model.FormatDate(model.AddDays(opts.StartDate, i))
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO daily_puzzles (quote_id, puzzle_date) VALUES (?, ?)`,
			quoteID, date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to assign quote %d to %s: %w", quoteID, date, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read rows affected: %w", err)
		}
		result.Inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit schedule: %w", err)
	}

	return result, nil
}

// Package model defines the core data types for the cryptoseed quote store.
package model

import "time"

// DateFormat is the ISO date layout used for puzzle_date values.
const DateFormat = "2006-01-02"

// Difficulty classifies a quote for puzzle selection.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Quote is a text record with a difficulty classification.
// Quotes are imported once and read by the daily puzzle seeder.
type Quote struct {
	ID         int64
	Text       string
	Author     string
	Difficulty Difficulty
	CreatedAt  time.Time
}

// DailyPuzzle assigns one quote to one calendar date.
// PuzzleDate is stored as a YYYY-MM-DD string; each date holds at most
// one puzzle.
type DailyPuzzle struct {
	ID         int64
	QuoteID    int64
	PuzzleDate string
}

// FormatDate renders t as a puzzle_date string.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate parses a YYYY-MM-DD puzzle_date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// AddDays returns t shifted by n calendar days.
// time.AddDate handles month and year boundaries, which a naive
// 24h-multiplication would get wrong across DST transitions.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

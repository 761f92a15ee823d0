package db

import (
	"database/sql"
	"fmt"

	"github.com/quotegrid/cryptoseed/internal/model"
)

// AssignPuzzle inserts a (quote_id, puzzle_date) pair with insert-or-ignore
// semantics. Returns true if a row was inserted, false if an existing row
// (same date or same pair) made the insert a no-op.
func (db *DB) AssignPuzzle(quoteID int64, date string) (bool, error) {
	if _, err := model.ParseDate(date); err != nil {
		return false, fmt.Errorf("invalid puzzle date %q: %w", date, err)
	}
	res, err := db.ExecRetry(
		`INSERT OR IGNORE INTO daily_puzzles (quote_id, puzzle_date) VALUES (?, ?)`,
		quoteID, date,
	)
	if err != nil {
		return false, fmt.Errorf("failed to assign puzzle: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// PuzzleForDate returns the puzzle scheduled for a date, or nil if none.
func (db *DB) PuzzleForDate(date string) (*model.DailyPuzzle, error) {
	var p model.DailyPuzzle
	err := db.QueryRow(
		`SELECT id, quote_id, puzzle_date FROM daily_puzzles WHERE puzzle_date = ?`,
		date,
	).Scan(&p.ID, &p.QuoteID, &p.PuzzleDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query puzzle for %s: %w", date, err)
	}
	return &p, nil
}

// ScheduleEntry is a scheduled puzzle joined with its quote for display.
type ScheduleEntry struct {
	PuzzleDate string
	QuoteID    int64
	Text       string
	Author     string
	Difficulty model.Difficulty
}

// ListSchedule returns scheduled puzzles ordered by date.
// Empty from/to bounds are open-ended.
func (db *DB) ListSchedule(from, to string) ([]ScheduleEntry, error) {
	query := `
		SELECT p.puzzle_date, p.quote_id, q.text, q.author, q.difficulty
		FROM daily_puzzles p
		JOIN quotes q ON p.quote_id = q.id
		WHERE 1=1`
	args := []any{}

	if from != "" {
		query += ` AND p.puzzle_date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND p.puzzle_date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY p.puzzle_date ASC`

	rows, err := db.QueryRetry(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []ScheduleEntry
	for rows.Next() {
		var e ScheduleEntry
		var author sql.NullString
		if err := rows.Scan(&e.PuzzleDate, &e.QuoteID, &e.Text, &author, &e.Difficulty); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		if author.Valid {
			e.Author = author.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ScheduleStats contains aggregated schedule coverage.
type ScheduleStats struct {
	Total     int    // scheduled puzzles
	FirstDate string // earliest puzzle_date, empty if none
	LastDate  string // latest puzzle_date, empty if none
	Gaps      []string
}

// ScheduleStatus returns aggregate coverage for the schedule, including any
// unscheduled dates between the first and last scheduled day.
func (db *DB) ScheduleStatus() (*ScheduleStats, error) {
	stats := &ScheduleStats{}

	var first, last sql.NullString
	err := db.QueryRow(
		`SELECT COUNT(*), MIN(puzzle_date), MAX(puzzle_date) FROM daily_puzzles`,
	).Scan(&stats.Total, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule stats: %w", err)
	}
	if !first.Valid {
		return stats, nil
	}
	stats.FirstDate = first.String
	stats.LastDate = last.String

	// Walk the covered span and collect missing days. The span is bounded
	// by what's already in the table, so this stays small.
	scheduled := make(map[string]bool, stats.Total)
	rows, err := db.Query(`SELECT puzzle_date FROM daily_puzzles`)
	if err != nil {
		return nil, fmt.Errorf("failed to query puzzle dates: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan puzzle date: %w", err)
		}
		scheduled[date] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	start, err := model.ParseDate(stats.FirstDate)
	if err != nil {
		return nil, fmt.Errorf("malformed puzzle_date %q: %w", stats.FirstDate, err)
	}
	end, err := model.ParseDate(stats.LastDate)
	if err != nil {
		return nil, fmt.Errorf("malformed puzzle_date %q: %w", stats.LastDate, err)
	}
	for d := start; !d.After(end); d = model.AddDays(d, 1) {
		if date := model.FormatDate(d); !scheduled[date] {
			stats.Gaps = append(stats.Gaps, date)
		}
	}

	return stats, nil
}

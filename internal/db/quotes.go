package db

import (
	"database/sql"
	"fmt"

	"github.com/quotegrid/cryptoseed/internal/model"
)

const quoteSelectColumns = "id, text, author, difficulty, created_at"

// InsertQuote adds a quote to the store and fills in its assigned ID.
// Returns (false, nil) without modifying the quote if a quote with the
// same text already exists.
func (db *DB) InsertQuote(q *model.Quote) (bool, error) {
	if !q.Difficulty.IsValid() {
		return false, fmt.Errorf("invalid difficulty: %q (valid: easy, medium, hard)", q.Difficulty)
	}
	res, err := db.ExecRetry(
		`INSERT OR IGNORE INTO quotes (text, author, difficulty) VALUES (?, ?, ?)`,
		q.Text, q.Author, q.Difficulty,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert quote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("failed to read insert id: %w", err)
	}
	q.ID = id
	return true, nil
}

// GetQuote returns a single quote by ID.
func (db *DB) GetQuote(id int64) (*model.Quote, error) {
	row := db.QueryRow(
		fmt.Sprintf("SELECT %s FROM quotes WHERE id = ?", quoteSelectColumns), id,
	)
	q, err := scanQuote(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("quote %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return q, nil
}

// SelectQuoteIDs returns up to limit quote IDs matching the difficulty,
// ordered by id.
//
// The ordering is deliberate: the seeder maps the i-th returned ID to
// start_date + i days, so selection order decides which quote lands on
// which date. ORDER BY id matches SQLite's natural rowid scan on an
// untouched table and stays stable across VACUUM.
func (db *DB) SelectQuoteIDs(difficulty model.Difficulty, limit int) ([]int64, error) {
	if !difficulty.IsValid() {
		return nil, fmt.Errorf("invalid difficulty: %q (valid: easy, medium, hard)", difficulty)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	rows, err := db.QueryRetry(
		`SELECT id FROM quotes WHERE difficulty = ? ORDER BY id LIMIT ?`,
		difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan quote id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountQuotes returns per-difficulty quote counts.
func (db *DB) CountQuotes() (map[model.Difficulty]int, error) {
	rows, err := db.Query(`SELECT difficulty, COUNT(*) FROM quotes GROUP BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Difficulty]int)
	for rows.Next() {
		var difficulty string
		var count int
		if err := rows.Scan(&difficulty, &count); err != nil {
			return nil, fmt.Errorf("failed to scan quote count: %w", err)
		}
		counts[model.Difficulty(difficulty)] = count
	}
	return counts, rows.Err()
}

// scanQuote scans a quote from a row, handling nullable columns.
func scanQuote(row *sql.Row) (*model.Quote, error) {
	var q model.Quote
	var author sql.NullString
	if err := row.Scan(&q.ID, &q.Text, &author, &q.Difficulty, &q.CreatedAt); err != nil {
		return nil, err
	}
	if author.Valid {
		q.Author = author.String
	}
	return &q, nil
}

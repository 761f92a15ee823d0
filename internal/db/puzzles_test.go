package db

import (
	"testing"

	"github.com/quotegrid/cryptoseed/internal/model"
)

func TestAssignPuzzle(t *testing.T) {
	db := setupTestDB(t)

	q := createTestQuote(t, db, "Quote", model.DifficultyMedium)

	inserted, err := db.AssignPuzzle(q.ID, "2025-04-23")
	if err != nil {
		t.Fatalf("failed to assign puzzle: %v", err)
	}
	if !inserted {
		t.Error("expected insert on fresh date")
	}

	p, err := db.PuzzleForDate("2025-04-23")
	if err != nil {
		t.Fatalf("failed to get puzzle: %v", err)
	}
	if p == nil || p.QuoteID != q.ID {
		t.Errorf("unexpected puzzle: %+v", p)
	}
}

func TestAssignPuzzle_DuplicatePairIgnored(t *testing.T) {
	db := setupTestDB(t)

	q := createTestQuote(t, db, "Quote", model.DifficultyMedium)

	if _, err := db.AssignPuzzle(q.ID, "2025-04-23"); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	inserted, err := db.AssignPuzzle(q.ID, "2025-04-23")
	if err != nil {
		t.Fatalf("duplicate assign errored: %v", err)
	}
	if inserted {
		t.Error("expected duplicate pair to be ignored")
	}
}

func TestAssignPuzzle_DateAlreadyTaken(t *testing.T) {
	db := setupTestDB(t)

	q1 := createTestQuote(t, db, "Quote one", model.DifficultyMedium)
	q2 := createTestQuote(t, db, "Quote two", model.DifficultyMedium)

	if _, err := db.AssignPuzzle(q1.ID, "2025-04-23"); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}

	// puzzle_date is unique on its own: a different quote on the same
	// date is silently skipped, not an error
	inserted, err := db.AssignPuzzle(q2.ID, "2025-04-23")
	if err != nil {
		t.Fatalf("conflicting assign errored: %v", err)
	}
	if inserted {
		t.Error("expected occupied date to be skipped")
	}

	p, err := db.PuzzleForDate("2025-04-23")
	if err != nil {
		t.Fatalf("failed to get puzzle: %v", err)
	}
	if p.QuoteID != q1.ID {
		t.Errorf("expected original quote %d to keep the date, got %d", q1.ID, p.QuoteID)
	}
}

func TestAssignPuzzle_InvalidDate(t *testing.T) {
	db := setupTestDB(t)

	q := createTestQuote(t, db, "Quote", model.DifficultyMedium)

	if _, err := db.AssignPuzzle(q.ID, "04/23/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestPuzzleForDate_Missing(t *testing.T) {
	db := setupTestDB(t)

	p, err := db.PuzzleForDate("2025-04-23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for unscheduled date, got %+v", p)
	}
}

func TestListSchedule(t *testing.T) {
	db := setupTestDB(t)

	q1 := createTestQuote(t, db, "Quote one", model.DifficultyMedium)
	q2 := createTestQuote(t, db, "Quote two", model.DifficultyHard)

	mustAssign(t, db, q2.ID, "2025-04-25")
	mustAssign(t, db, q1.ID, "2025-04-23")

	entries, err := db.ListSchedule("", "")
	if err != nil {
		t.Fatalf("failed to list schedule: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Ordered by date regardless of insert order
	if entries[0].PuzzleDate != "2025-04-23" || entries[1].PuzzleDate != "2025-04-25" {
		t.Errorf("entries out of order: %s, %s", entries[0].PuzzleDate, entries[1].PuzzleDate)
	}
	if entries[0].Text != "Quote one" || entries[0].Difficulty != model.DifficultyMedium {
		t.Errorf("unexpected joined quote: %+v", entries[0])
	}

	// Range bounds are inclusive
	entries, err = db.ListSchedule("2025-04-24", "2025-04-25")
	if err != nil {
		t.Fatalf("failed to list range: %v", err)
	}
	if len(entries) != 1 || entries[0].PuzzleDate != "2025-04-25" {
		t.Errorf("unexpected range result: %+v", entries)
	}
}

func TestScheduleStatus_Empty(t *testing.T) {
	db := setupTestDB(t)

	stats, err := db.ScheduleStatus()
	if err != nil {
		t.Fatalf("failed to get status: %v", err)
	}
	if stats.Total != 0 || stats.FirstDate != "" || stats.LastDate != "" {
		t.Errorf("unexpected stats for empty schedule: %+v", stats)
	}
}

func TestScheduleStatus_Gaps(t *testing.T) {
	db := setupTestDB(t)

	q1 := createTestQuote(t, db, "Quote one", model.DifficultyMedium)
	q2 := createTestQuote(t, db, "Quote two", model.DifficultyMedium)
	q3 := createTestQuote(t, db, "Quote three", model.DifficultyMedium)

	mustAssign(t, db, q1.ID, "2025-04-23")
	mustAssign(t, db, q2.ID, "2025-04-24")
	mustAssign(t, db, q3.ID, "2025-04-27")

	stats, err := db.ScheduleStatus()
	if err != nil {
		t.Fatalf("failed to get status: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("expected 3 puzzles, got %d", stats.Total)
	}
	if stats.FirstDate != "2025-04-23" || stats.LastDate != "2025-04-27" {
		t.Errorf("unexpected span: %s to %s", stats.FirstDate, stats.LastDate)
	}
	if len(stats.Gaps) != 2 || stats.Gaps[0] != "2025-04-25" || stats.Gaps[1] != "2025-04-26" {
		t.Errorf("unexpected gaps: %v", stats.Gaps)
	}
}

func mustAssign(t *testing.T, db *DB, quoteID int64, date string) {
	t.Helper()
	inserted, err := db.AssignPuzzle(quoteID, date)
	if err != nil {
		t.Fatalf("failed to assign %d to %s: %v", quoteID, date, err)
	}
	if !inserted {
		t.Fatalf("assignment %d/%s unexpectedly skipped", quoteID, date)
	}
}

package db

import (
	"fmt"
	"testing"

	"github.com/quotegrid/cryptoseed/internal/model"
)

func TestInsertQuote(t *testing.T) {
	db := setupTestDB(t)

	q := createTestQuote(t, db, "First quote", model.DifficultyMedium)
	if q.ID == 0 {
		t.Error("expected quote ID to be assigned")
	}

	got, err := db.GetQuote(q.ID)
	if err != nil {
		t.Fatalf("failed to get quote: %v", err)
	}
	if got.Text != "First quote" || got.Difficulty != model.DifficultyMedium {
		t.Errorf("unexpected quote: %+v", got)
	}
	if got.Author != "Tester" {
		t.Errorf("expected author Tester, got %q", got.Author)
	}
}

func TestInsertQuote_DuplicateText(t *testing.T) {
	db := setupTestDB(t)

	createTestQuote(t, db, "Same text", model.DifficultyMedium)

	dup := &model.Quote{Text: "Same text", Difficulty: model.DifficultyHard}
	inserted, err := db.InsertQuote(dup)
	if err != nil {
		t.Fatalf("duplicate insert errored: %v", err)
	}
	if inserted {
		t.Error("expected duplicate text to be skipped")
	}

	counts, err := db.CountQuotes()
	if err != nil {
		t.Fatalf("failed to count quotes: %v", err)
	}
	if counts[model.DifficultyMedium] != 1 || counts[model.DifficultyHard] != 0 {
		t.Errorf("unexpected counts after duplicate: %v", counts)
	}
}

func TestInsertQuote_InvalidDifficulty(t *testing.T) {
	db := setupTestDB(t)

	q := &model.Quote{Text: "Bad", Difficulty: model.Difficulty("brutal")}
	if _, err := db.InsertQuote(q); err == nil {
		t.Error("expected error for invalid difficulty")
	}
}

func TestGetQuote_NotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetQuote(999); err == nil {
		t.Error("expected error for missing quote")
	}
}

func TestSelectQuoteIDs_OrderAndLimit(t *testing.T) {
	db := setupTestDB(t)

	var want []int64
	for i := 0; i < 5; i++ {
		q := createTestQuote(t, db, fmt.Sprintf("Medium %d", i), model.DifficultyMedium)
		want = append(want, q.ID)
	}
	createTestQuote(t, db, "Easy one", model.DifficultyEasy)

	ids, err := db.SelectQuoteIDs(model.DifficultyMedium, 3)
	if err != nil {
		t.Fatalf("failed to select ids: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}
	for i, id := range ids {
		if id != want[i] {
			t.Errorf("position %d: expected id %d, got %d", i, want[i], id)
		}
	}
}

func TestSelectQuoteIDs_FewerThanLimit(t *testing.T) {
	db := setupTestDB(t)

	createTestQuote(t, db, "Only one", model.DifficultyHard)

	ids, err := db.SelectQuoteIDs(model.DifficultyHard, 10)
	if err != nil {
		t.Fatalf("failed to select ids: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("expected 1 id, got %d", len(ids))
	}
}

func TestSelectQuoteIDs_ExcludesOtherDifficulties(t *testing.T) {
	db := setupTestDB(t)

	createTestQuote(t, db, "Easy", model.DifficultyEasy)
	createTestQuote(t, db, "Hard", model.DifficultyHard)

	ids, err := db.SelectQuoteIDs(model.DifficultyMedium, 10)
	if err != nil {
		t.Fatalf("failed to select ids: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no medium ids, got %d", len(ids))
	}
}

func TestSelectQuoteIDs_InvalidArgs(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.SelectQuoteIDs(model.Difficulty("nope"), 10); err == nil {
		t.Error("expected error for invalid difficulty")
	}
	if _, err := db.SelectQuoteIDs(model.DifficultyMedium, 0); err == nil {
		t.Error("expected error for non-positive limit")
	}
}

func TestCountQuotes(t *testing.T) {
	db := setupTestDB(t)

	createTestQuote(t, db, "E1", model.DifficultyEasy)
	createTestQuote(t, db, "M1", model.DifficultyMedium)
	createTestQuote(t, db, "M2", model.DifficultyMedium)

	counts, err := db.CountQuotes()
	if err != nil {
		t.Fatalf("failed to count quotes: %v", err)
	}
	if counts[model.DifficultyEasy] != 1 {
		t.Errorf("expected 1 easy, got %d", counts[model.DifficultyEasy])
	}
	if counts[model.DifficultyMedium] != 2 {
		t.Errorf("expected 2 medium, got %d", counts[model.DifficultyMedium])
	}
	if counts[model.DifficultyHard] != 0 {
		t.Errorf("expected 0 hard, got %d", counts[model.DifficultyHard])
	}
}

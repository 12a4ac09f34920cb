package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sakif/code-explainer/internal/apperror"
	"github.com/sakif/code-explainer/internal/model"
	"github.com/sakif/code-explainer/internal/repository"
)

// newTestDB gives each test its own in-memory database — fast, isolated,
// destroyed on Close.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestExplanation(t *testing.T, db *DB, language string, tier model.Tier) *model.Explanation {
	t.Helper()
	exp := &model.Explanation{
		Language:    language,
		Tier:        tier,
		Code:        "print('hi')",
		Explanation: "It prints hi.",
		Model:       "llama3-8b-8192",
	}
	if err := db.Create(context.Background(), exp); err != nil {
		t.Fatalf("failed to create test explanation: %v", err)
	}
	return exp
}

func TestCreate(t *testing.T) {
	db := newTestDB(t)

	exp := createTestExplanation(t, db, "Python", model.TierBeginner)

	if exp.ID == "" {
		t.Error("Create() did not set exp.ID")
	}
	if exp.CreatedAt.IsZero() {
		t.Error("Create() did not set exp.CreatedAt")
	}
}

func TestCreate_Roundtrip(t *testing.T) {
	db := newTestDB(t)

	original := createTestExplanation(t, db, "Go", model.TierAdvanced)

	found, err := db.GetByID(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.Language != original.Language {
		t.Errorf("Language = %q, want %q", found.Language, original.Language)
	}
	if found.Tier != original.Tier {
		t.Errorf("Tier = %q, want %q", found.Tier, original.Tier)
	}
	if found.Code != original.Code {
		t.Errorf("Code = %q, want %q", found.Code, original.Code)
	}
	if found.Explanation != original.Explanation {
		t.Errorf("Explanation = %q, want %q", found.Explanation, original.Explanation)
	}
	if found.Model != original.Model {
		t.Errorf("Model = %q, want %q", found.Model, original.Model)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), "does-not-exist")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	// xid values are time-sortable and created_at has sub-second precision,
	// so insertion order is enough here.
	for i := 0; i < 5; i++ {
		exp := &model.Explanation{
			Language:    "Python",
			Tier:        model.TierBeginner,
			Code:        fmt.Sprintf("x = %d", i),
			Explanation: "sets x",
		}
		if err := db.Create(context.Background(), exp); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	explanations, err := db.List(context.Background(), repository.ListOptions{Limit: 3})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(explanations) != 3 {
		t.Fatalf("List() returned %d rows, want 3", len(explanations))
	}
	if explanations[0].Code != "x = 4" {
		t.Errorf("first row Code = %q, want newest entry first", explanations[0].Code)
	}
}

func TestList_Empty(t *testing.T) {
	db := newTestDB(t)

	explanations, err := db.List(context.Background(), repository.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(explanations) != 0 {
		t.Errorf("List() returned %d rows, want 0", len(explanations))
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	exp := createTestExplanation(t, db, "Python", model.TierBeginner)

	if err := db.Delete(context.Background(), exp.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := db.GetByID(context.Background(), exp.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Error("explanation still present after Delete()")
	}
}

func TestDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Delete(context.Background(), "does-not-exist")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

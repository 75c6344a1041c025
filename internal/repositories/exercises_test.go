package repositories

import (
	"database/sql"
	"testing"

	"github.com/lilpaoo/jimbo/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with the exercises
// table created.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	repo := NewExerciseRepository(db)
	if err := repo.Migrate(); err != nil {
		db.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func TestExerciseRepository(t *testing.T) {
	t.Run("ReplaceAll and List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewExerciseRepository(db)
		if err := repo.ReplaceAll([]string{"Squat", "Deadlift", "Bench Press"}); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}

		names, err := repo.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}

		want := []string{"Bench Press", "Deadlift", "Squat"}
		if len(names) != len(want) {
			t.Fatalf("expected %d names, got %d", len(want), len(names))
		}
		for i, name := range want {
			if names[i] != name {
				t.Errorf("expected %q at index %d, got %q", name, i, names[i])
			}
		}
	})

	t.Run("ReplaceAll swaps the catalog wholesale", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewExerciseRepository(db)
		_ = repo.ReplaceAll([]string{"Squat", "Deadlift"})

		if err := repo.ReplaceAll([]string{"Overhead Press"}); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}

		names, err := repo.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(names) != 1 || names[0] != "Overhead Press" {
			t.Errorf("expected replaced catalog, got %v", names)
		}
	})

	t.Run("ReplaceAll ignores duplicates and blanks", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewExerciseRepository(db)
		if err := repo.ReplaceAll([]string{"Squat", "Squat", ""}); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}

		names, err := repo.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(names) != 1 {
			t.Errorf("expected one cached exercise, got %v", names)
		}
	})

	t.Run("empty cache lists nothing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		names, err := NewExerciseRepository(db).List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("expected empty list, got %v", names)
		}
	})
}

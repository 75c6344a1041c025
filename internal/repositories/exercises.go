// package repositories provides persistence layer implementations for cached catalog data.
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lilpaoo/jimbo/internal/shared"
)

// ExerciseRepository stores the cached exercise catalog.
type ExerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates an ExerciseRepository with the given
// database connection.
func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// Migrate creates the exercises table if it does not exist.
func (r *ExerciseRepository) Migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS exercises (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			fetched_at TIMESTAMP NOT NULL
		)
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create exercises table: %w", err)
	}
	return nil
}

// ReplaceAll swaps the cached catalog for the given names atomically.
// A fetch that returns an empty catalog clears the cache.
func (r *ExerciseRepository) ReplaceAll(names []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM exercises"); err != nil {
		return fmt.Errorf("failed to clear exercise cache: %w", err)
	}

	now := time.Now().UTC()
	for _, name := range names {
		if name == "" {
			continue
		}
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO exercises (id, name, fetched_at) VALUES (?, ?, ?)",
			shared.GenerateID(), name, now,
		)
		if err != nil {
			return fmt.Errorf("failed to cache exercise %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit exercise cache: %w", err)
	}
	return nil
}

// List returns the cached exercise names in alphabetical order.
func (r *ExerciseRepository) List() ([]string, error) {
	rows, err := r.db.Query("SELECT name FROM exercises ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise cache: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan exercise row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exercise rows: %w", err)
	}

	return names, nil
}

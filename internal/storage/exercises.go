package storage

import (
	"context"
	"fmt"

	"github.com/liftlog/liftlog/internal/models"
)

// ListCategories returns the distinct exercise categories, sorted.
func (db *DB) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT category FROM exercises ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListExercises returns the whole exercise catalog, ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, category FROM exercises ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// ListExercisesByCategory returns the catalog entries for one category,
// ordered by name.
func (db *DB) ListExercisesByCategory(ctx context.Context, category string) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, category FROM exercises WHERE category = $1 ORDER BY name`,
		category)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

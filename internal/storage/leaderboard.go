package storage

import (
	"context"
	"fmt"

	"github.com/liftlog/liftlog/internal/models"
)

// ListWeightedSetsByCategory returns every weight-bearing set for
// exercises in the given category, joined to its owning session's user
// and date. Ordered by exercise name, then heaviest first, so the
// leaderboard builder sees each exercise's sets already weight-descending.
func (db *DB) ListWeightedSetsByCategory(ctx context.Context, category string) ([]models.WeightedSet, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT st.exercise_id, e.name, s.user_id, s.date, st.weight, st.reps
		 FROM sets st
		 JOIN exercises e ON e.id = st.exercise_id
		 JOIN sessions s ON s.id = st.session_id
		 WHERE e.category = $1 AND st.weight IS NOT NULL
		 ORDER BY e.name ASC, st.weight DESC`,
		category)
	if err != nil {
		return nil, fmt.Errorf("querying weighted sets: %w", err)
	}
	defer rows.Close()

	var result []models.WeightedSet
	for rows.Next() {
		var ws models.WeightedSet
		if err := rows.Scan(&ws.ExerciseID, &ws.ExerciseName, &ws.UserID,
			&ws.Date, &ws.Weight, &ws.Reps); err != nil {
			return nil, fmt.Errorf("scanning weighted set: %w", err)
		}
		result = append(result, ws)
	}
	return result, rows.Err()
}

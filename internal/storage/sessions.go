package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/liftlog/liftlog/internal/models"
)

// GetSessionByDate fetches a user's session for one calendar date with its
// sets joined to exercise names, ordered by exercise then position.
// Returns ErrNotFound when no session exists for that date.
func (db *DB) GetSessionByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.SessionDay, error) {
	var s models.Session
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, date, created_at
		 FROM sessions
		 WHERE user_id = $1 AND date = $2`,
		userID, date,
	).Scan(&s.ID, &s.UserID, &s.Date, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	day := &models.SessionDay{Session: s}

	rows, err := db.Pool.Query(ctx,
		`SELECT st.id, st.session_id, st.exercise_id, e.name, e.category, st.position, st.reps, st.weight
		 FROM sets st
		 JOIN exercises e ON e.id = st.exercise_id
		 WHERE st.session_id = $1
		 ORDER BY e.name ASC, st.position ASC`,
		s.ID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var set models.Set
		if err := rows.Scan(&set.ID, &set.SessionID, &set.ExerciseID, &set.ExerciseName,
			&set.Category, &set.Position, &set.Reps, &set.Weight); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		day.Sets = append(day.Sets, set)
	}
	return day, rows.Err()
}

// ListSessionsWithSets returns the user's full history newest first, each
// session carrying its sets joined to exercise names. Sessions without
// sets are included with an empty set list.
func (db *DB) ListSessionsWithSets(ctx context.Context, userID uuid.UUID) ([]models.SessionDay, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT s.id, s.user_id, s.date, s.created_at,
		        st.id, st.exercise_id, e.name, e.category, st.position, st.reps, st.weight
		 FROM sessions s
		 LEFT JOIN sets st ON st.session_id = s.id
		 LEFT JOIN exercises e ON e.id = st.exercise_id
		 WHERE s.user_id = $1
		 ORDER BY s.date DESC, e.name ASC, st.position ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionDay
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var s models.Session
		var setID, exerciseID *uuid.UUID
		var name, category *string
		var position, reps *int
		var weight *float64

		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.CreatedAt,
			&setID, &exerciseID, &name, &category, &position, &reps, &weight); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		i, ok := index[s.ID]
		if !ok {
			result = append(result, models.SessionDay{Session: s})
			i = len(result) - 1
			index[s.ID] = i
		}

		if setID == nil {
			continue // session without sets
		}
		result[i].Sets = append(result[i].Sets, models.Set{
			ID:           *setID,
			SessionID:    s.ID,
			ExerciseID:   *exerciseID,
			ExerciseName: *name,
			Category:     *category,
			Position:     *position,
			Reps:         reps,
			Weight:       weight,
		})
	}
	return result, rows.Err()
}

// SaveSession upserts the user's session for the given date and replaces
// its sets wholesale: all prior sets are deleted, then the new list is
// inserted, inside one transaction so a failure leaves the previous state
// intact. Positions are renumbered contiguous from 1 within each
// exercise group, in input order.
func (db *DB) SaveSession(ctx context.Context, userID uuid.UUID, date time.Time, sets []models.SetInput) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var sessionID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO sessions (user_id, date)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, date) DO UPDATE SET date = EXCLUDED.date
		 RETURNING id`,
		userID, date,
	).Scan(&sessionID)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM sets WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("deleting prior sets: %w", err)
	}

	if len(sets) > 0 {
		query := `INSERT INTO sets (session_id, exercise_id, position, reps, weight) VALUES `
		args := make([]any, 0, len(sets)*5)
		valueStrings := make([]string, 0, len(sets))

		positions := make(map[uuid.UUID]int)
		for i, in := range sets {
			positions[in.ExerciseID]++
			base := i * 5
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5,
			))
			args = append(args, sessionID, in.ExerciseID, positions[in.ExerciseID], in.Reps, in.Weight)
		}

		if _, err := tx.Exec(ctx, query+strings.Join(valueStrings, ","), args...); err != nil {
			return fmt.Errorf("inserting sets: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

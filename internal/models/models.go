package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a row in the users table.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Exercise is a row in the exercise catalog. Reference data, maintained
// by migrations rather than end users.
type Exercise struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// Session is one user's workout record for one calendar date.
// There is at most one session per (user, date).
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Date      time.Time `json:"date"` // calendar date at midnight UTC
	CreatedAt time.Time `json:"created_at"`
}

// Set is one recorded performance of an exercise within a session.
// Position is 1-based and contiguous within the session+exercise group.
// Reps and Weight are optional; nil means not recorded.
type Set struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	ExerciseID   uuid.UUID `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	Category     string    `json:"category"`
	Position     int       `json:"position"`
	Reps         *int      `json:"reps,omitempty"`
	Weight       *float64  `json:"weight,omitempty"`
}

// SetInput is a set as submitted by a save request, before the server
// assigns positions and identities.
type SetInput struct {
	ExerciseID uuid.UUID `json:"exercise_id"`
	Reps       *int      `json:"reps,omitempty"`
	Weight     *float64  `json:"weight,omitempty"`
}

// SessionDay is a session with its sets joined to exercise names,
// ordered by exercise then position.
type SessionDay struct {
	Session
	Sets []Set `json:"sets"`
}

// WeightedSet is a weight-bearing set joined to its owning session,
// as consumed by the leaderboard builder.
type WeightedSet struct {
	ExerciseID   uuid.UUID `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	UserID       uuid.UUID `json:"user_id"`
	Date         time.Time `json:"date"`
	Weight       float64   `json:"weight"`
	Reps         *int      `json:"reps,omitempty"`
}

// UserStats holds the derived profile statistics. Computed fresh on each
// request, never persisted.
type UserStats struct {
	TotalSessions     int     `json:"total_sessions"`
	SessionsThisMonth int     `json:"sessions_this_month"`
	CurrentStreak     int     `json:"current_streak"`
	FavoriteExercise  string  `json:"favorite_exercise"`
	TotalSets         int     `json:"total_sets"`
	AverageWeight     float64 `json:"average_weight"`
}

// LeaderboardEntry is one user's best recorded lift for an exercise.
type LeaderboardEntry struct {
	UserID uuid.UUID `json:"user_id"`
	Label  string    `json:"label"` // email, or fallback when lookup fails
	Weight float64   `json:"weight"`
	Reps   *int      `json:"reps,omitempty"`
	Date   time.Time `json:"date"`
}

// RecentWorkout summarizes one of the latest sessions for the profile view.
type RecentWorkout struct {
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Sets        int       `json:"sets"`
	DurationMin int       `json:"duration_min"`
}

// Achievement is a fixed milestone derived from UserStats.
type Achievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

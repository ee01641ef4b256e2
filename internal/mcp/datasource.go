package mcp

import (
	"context"
	"time"

	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/stats"
)

// ProfileSummary is the aggregate profile view served to MCP clients.
type ProfileSummary struct {
	Stats          models.UserStats       `json:"stats"`
	RecentWorkouts []models.RecentWorkout `json:"recent_workouts"`
	Achievements   []models.Achievement   `json:"achievements"`
}

// SessionView is one calendar day's logged sets.
type SessionView struct {
	Date string       `json:"date"`
	Sets []models.Set `json:"sets"`
}

// CategoryBoard holds the leaderboards of one exercise category.
type CategoryBoard struct {
	Category  string                `json:"category"`
	Exercises []stats.ExerciseBoard `json:"exercises"`
}

// DataSource abstracts the data layer for MCP tools. Local (direct
// database) and HTTPClient (remote via REST API) both satisfy it.
type DataSource interface {
	ProfileSummary(ctx context.Context) (*ProfileSummary, error)
	Session(ctx context.Context, date time.Time) (*SessionView, error)
	Leaderboards(ctx context.Context, category string) ([]CategoryBoard, error)
	Categories(ctx context.Context) ([]string, error)
	Exercises(ctx context.Context, category string) ([]models.Exercise, error)
}

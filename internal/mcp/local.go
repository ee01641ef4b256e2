package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/stats"
	"github.com/liftlog/liftlog/internal/storage"
)

// Local implements DataSource against the database directly, scoped to
// one user. Used when the MCP binary runs on the same host as Postgres.
type Local struct {
	db     *storage.DB
	userID uuid.UUID
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal creates a Local data source for the given user.
func NewLocal(db *storage.DB, userID uuid.UUID) *Local {
	return &Local{db: db, userID: userID}
}

func (l *Local) ProfileSummary(ctx context.Context) (*ProfileSummary, error) {
	sessions, err := l.db.ListSessionsWithSets(ctx, l.userID)
	if err != nil {
		return nil, err
	}
	st := stats.Compute(sessions, time.Now())
	return &ProfileSummary{
		Stats:          st,
		RecentWorkouts: stats.RecentWorkouts(sessions, 5),
		Achievements:   stats.Achievements(st),
	}, nil
}

func (l *Local) Session(ctx context.Context, date time.Time) (*SessionView, error) {
	day, err := l.db.GetSessionByDate(ctx, l.userID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return &SessionView{Date: date.Format("2006-01-02"), Sets: []models.Set{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &SessionView{Date: day.Date.Format("2006-01-02"), Sets: day.Sets}, nil
}

func (l *Local) Leaderboards(ctx context.Context, category string) ([]CategoryBoard, error) {
	categories := []string{category}
	if category == "" {
		all, err := l.db.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		categories = all
	}

	result := make([]CategoryBoard, 0, len(categories))
	var allBoards []stats.ExerciseBoard
	for _, cat := range categories {
		sets, err := l.db.ListWeightedSetsByCategory(ctx, cat)
		if err != nil {
			return nil, err
		}
		boards := stats.BuildLeaderboard(sets)
		result = append(result, CategoryBoard{Category: cat, Exercises: boards})
		allBoards = append(allBoards, boards...)
	}
	stats.EnrichLabels(ctx, l.db, allBoards)
	return result, nil
}

func (l *Local) Categories(ctx context.Context) ([]string, error) {
	return l.db.ListCategories(ctx)
}

func (l *Local) Exercises(ctx context.Context, category string) ([]models.Exercise, error) {
	return l.db.ListExercisesByCategory(ctx, category)
}

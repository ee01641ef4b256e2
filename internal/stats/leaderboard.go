package stats

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
)

// TopN is the number of entries shown per exercise leaderboard.
const TopN = 10

// ExerciseBoard is the ranked list of best lifts for one exercise.
type ExerciseBoard struct {
	Exercise string                    `json:"exercise"`
	Entries  []models.LeaderboardEntry `json:"entries"`
}

// Directory resolves user IDs to display labels (emails). Satisfied by the
// storage layer; a nil result for an ID means the lookup missed.
type Directory interface {
	Labels(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// BuildLeaderboard ranks users by their single best weighted set per
// exercise. For each exercise it keeps one record per user, replaced only
// when a later set's weight strictly exceeds the stored best, so the final
// ranking has distinct-user semantics. Entries are sorted descending by
// weight — ties stay in arrival order — and truncated to TopN. Exercises
// with no weighted sets produce no board at all.
//
// Labels are left empty; callers enrich them via EnrichLabels.
func BuildLeaderboard(sets []models.WeightedSet) []ExerciseBoard {
	type userBest struct {
		order   []uuid.UUID
		entries map[uuid.UUID]models.LeaderboardEntry
	}

	var exerciseOrder []string
	byExercise := make(map[string]*userBest)

	for _, s := range sets {
		ub, ok := byExercise[s.ExerciseName]
		if !ok {
			ub = &userBest{entries: make(map[uuid.UUID]models.LeaderboardEntry)}
			byExercise[s.ExerciseName] = ub
			exerciseOrder = append(exerciseOrder, s.ExerciseName)
		}
		cur, seen := ub.entries[s.UserID]
		if !seen {
			ub.order = append(ub.order, s.UserID)
		}
		if !seen || s.Weight > cur.Weight {
			ub.entries[s.UserID] = models.LeaderboardEntry{
				UserID: s.UserID,
				Weight: s.Weight,
				Reps:   s.Reps,
				Date:   s.Date,
			}
		}
	}

	boards := make([]ExerciseBoard, 0, len(exerciseOrder))
	for _, name := range exerciseOrder {
		ub := byExercise[name]
		entries := make([]models.LeaderboardEntry, 0, len(ub.order))
		for _, uid := range ub.order {
			entries = append(entries, ub.entries[uid])
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Weight > entries[j].Weight
		})
		if len(entries) > TopN {
			entries = entries[:TopN]
		}
		boards = append(boards, ExerciseBoard{Exercise: name, Entries: entries})
	}
	return boards
}

// FallbackLabel is the deterministic placeholder substituted when the user
// directory cannot resolve an ID.
func FallbackLabel(id uuid.UUID) string {
	s := id.String()
	return "user" + s[len(s)-4:] + "@gym.com"
}

// EnrichLabels fills entry labels from the directory with a single bulk
// lookup across all boards. A failed lookup, or an ID the directory does
// not know, falls back to FallbackLabel — ranking never fails and never
// drops a record because enrichment failed.
func EnrichLabels(ctx context.Context, dir Directory, boards []ExerciseBoard) {
	idSet := make(map[uuid.UUID]struct{})
	for _, b := range boards {
		for _, e := range b.Entries {
			idSet[e.UserID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	labels, err := dir.Labels(ctx, ids)
	if err != nil {
		labels = nil
	}

	for bi := range boards {
		for ei := range boards[bi].Entries {
			e := &boards[bi].Entries[ei]
			if label, ok := labels[e.UserID]; ok && label != "" {
				e.Label = label
			} else {
				e.Label = FallbackLabel(e.UserID)
			}
		}
	}
}

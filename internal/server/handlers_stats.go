package server

import (
	"net/http"
	"time"

	"github.com/liftlog/liftlog/internal/stats"
)

const recentWorkoutCount = 5

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessionsWithSets(r.Context(), userID(r.Context()))
	if err != nil {
		s.log.Error("listing sessions", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	st := stats.Compute(sessions, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":           st,
		"recent_workouts": stats.RecentWorkouts(sessions, recentWorkoutCount),
		"achievements":    stats.Achievements(st),
	})
}

type categoryBoard struct {
	Category  string                `json:"category"`
	Exercises []stats.ExerciseBoard `json:"exercises"`
}

func (s *Server) handleLeaderboards(w http.ResponseWriter, r *http.Request) {
	categories := []string{r.URL.Query().Get("category")}
	if categories[0] == "" {
		all, err := s.store.ListCategories(r.Context())
		if err != nil {
			s.log.Error("listing categories", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		categories = all
	}

	result := make([]categoryBoard, 0, len(categories))
	var allBoards []stats.ExerciseBoard
	for _, cat := range categories {
		sets, err := s.store.ListWeightedSetsByCategory(r.Context(), cat)
		if err != nil {
			s.log.Error("listing weighted sets", "category", cat, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		boards := stats.BuildLeaderboard(sets)
		result = append(result, categoryBoard{Category: cat, Exercises: boards})
		allBoards = append(allBoards, boards...)
	}

	// One bulk label lookup for the whole response.
	stats.EnrichLabels(r.Context(), s.store, allBoards)

	writeJSON(w, http.StatusOK, map[string]any{"leaderboards": result})
}

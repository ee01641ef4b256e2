package server

import (
	"encoding/json"
	"net/http"
	"time"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		s.log.Error("listing categories", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category parameter required"})
		return
	}

	exercises, err := s.store.ListExercisesByCategory(r.Context(), category)
	if err != nil {
		s.log.Error("listing exercises", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercises": exercises})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseDate parses a YYYY-MM-DD calendar date.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

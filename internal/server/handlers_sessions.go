package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/storage"
)

type saveSessionRequest struct {
	Sets []models.SetInput `json:"sets"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date parameter must be YYYY-MM-DD"})
		return
	}

	day, err := s.store.GetSessionByDate(r.Context(), userID(r.Context()), date)
	if errors.Is(err, storage.ErrNotFound) {
		// No session that day: an empty, editable day.
		writeJSON(w, http.StatusOK, map[string]any{
			"date": date.Format("2006-01-02"),
			"sets": []models.Set{},
		})
		return
	}
	if err != nil {
		s.log.Error("fetching session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date": day.Date.Format("2006-01-02"),
		"sets": day.Sets,
	})
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	var req saveSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	// Rows with neither reps nor weight are silently dropped before any
	// validation or persistence.
	kept := make([]models.SetInput, 0, len(req.Sets))
	for _, in := range req.Sets {
		if in.ExerciseID == uuid.Nil {
			continue
		}
		if in.Reps == nil && in.Weight == nil {
			continue
		}
		kept = append(kept, in)
	}
	if len(kept) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session has no sets"})
		return
	}

	uid := userID(r.Context())
	if err := s.store.SaveSession(r.Context(), uid, date, kept); err != nil {
		s.log.Error("saving session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	day, err := s.store.GetSessionByDate(r.Context(), uid, date)
	if err != nil {
		s.log.Error("reloading session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date": day.Date.Format("2006-01-02"),
		"sets": day.Sets,
	})
}

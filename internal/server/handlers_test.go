package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/auth"
	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/storage"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	users     map[string]*models.User // by email
	sessions  map[string][]models.Set // by userID|date
	weighted  map[string][]models.WeightedSet
	exercises map[string][]models.Exercise
	saveCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]*models.User),
		sessions:  make(map[string][]models.Set),
		weighted:  make(map[string][]models.WeightedSet),
		exercises: make(map[string][]models.Exercise),
	}
}

func sessionKey(userID uuid.UUID, date time.Time) string {
	return userID.String() + "|" + date.Format("2006-01-02")
}

func (f *fakeStore) CreateUser(_ context.Context, email, hash string) (*models.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, storage.ErrEmailTaken
	}
	u := &models.User{ID: uuid.New(), Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	f.users[email] = u
	return u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) Labels(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	labels := make(map[uuid.UUID]string)
	for _, id := range ids {
		for _, u := range f.users {
			if u.ID == id {
				labels[id] = u.Email
			}
		}
	}
	return labels, nil
}

func (f *fakeStore) ListCategories(_ context.Context) ([]string, error) {
	return []string{"back", "chest", "legs"}, nil
}

func (f *fakeStore) ListExercisesByCategory(_ context.Context, category string) ([]models.Exercise, error) {
	return f.exercises[category], nil
}

func (f *fakeStore) GetSessionByDate(_ context.Context, userID uuid.UUID, date time.Time) (*models.SessionDay, error) {
	sets, ok := f.sessions[sessionKey(userID, date)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &models.SessionDay{
		Session: models.Session{ID: uuid.New(), UserID: userID, Date: date},
		Sets:    sets,
	}, nil
}

func (f *fakeStore) ListSessionsWithSets(_ context.Context, userID uuid.UUID) ([]models.SessionDay, error) {
	var out []models.SessionDay
	for key, sets := range f.sessions {
		date, _ := time.Parse("2006-01-02", key[len(key)-10:])
		if key[:len(userID.String())] == userID.String() {
			out = append(out, models.SessionDay{
				Session: models.Session{UserID: userID, Date: date},
				Sets:    sets,
			})
		}
	}
	return out, nil
}

func (f *fakeStore) SaveSession(_ context.Context, userID uuid.UUID, date time.Time, sets []models.SetInput) error {
	f.saveCalls++
	stored := make([]models.Set, 0, len(sets))
	for i, in := range sets {
		stored = append(stored, models.Set{
			ID:         uuid.New(),
			ExerciseID: in.ExerciseID,
			Position:   i + 1,
			Reps:       in.Reps,
			Weight:     in.Weight,
		})
	}
	f.sessions[sessionKey(userID, date)] = stored
	return nil
}

func (f *fakeStore) ListWeightedSetsByCategory(_ context.Context, category string) ([]models.WeightedSet, error) {
	return f.weighted[category], nil
}

func newTestServer(t *testing.T) (*Server, *fakeStore, *auth.TokenManager) {
	t.Helper()
	store := newFakeStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, tokens, log), store, tokens
}

// registerUser registers via the API and returns the bearer token.
func registerUser(t *testing.T, s *Server, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"secret1","confirm_password":"secret1"}`, email)
	rec := doRequest(s, http.MethodPost, "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.Token
}

func doRequest(s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestRegisterLoginMe walks the full credential flow: register, log in,
// fetch the profile with the issued token.
func TestRegisterLoginMe(t *testing.T) {
	s, _, _ := newTestServer(t)
	registerUser(t, s, "alice@example.com")

	rec := doRequest(s, http.MethodPost, "/api/v1/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	rec = doRequest(s, http.MethodGet, "/api/v1/me", "", resp.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}
	var user models.User
	if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", user.Email)
	}
}

// TestLoginWrongPassword verifies bad credentials yield 401, not a hint.
func TestLoginWrongPassword(t *testing.T) {
	s, _, _ := newTestServer(t)
	registerUser(t, s, "alice@example.com")

	rec := doRequest(s, http.MethodPost, "/api/v1/auth/login",
		`{"email":"alice@example.com","password":"wrong-one"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	rec = doRequest(s, http.MethodPost, "/api/v1/auth/login",
		`{"email":"nobody@example.com","password":"secret1"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d, want 401", rec.Code)
	}
}

// TestRegisterDuplicateEmail verifies the second registration gets 409.
func TestRegisterDuplicateEmail(t *testing.T) {
	s, _, _ := newTestServer(t)
	registerUser(t, s, "alice@example.com")

	rec := doRequest(s, http.MethodPost, "/api/v1/auth/register",
		`{"email":"alice@example.com","password":"secret1","confirm_password":"secret1"}`, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

// TestAuthRequired verifies protected routes reject missing and bogus tokens.
func TestAuthRequired(t *testing.T) {
	s, _, _ := newTestServer(t)

	for _, path := range []string{"/api/v1/me", "/api/v1/stats", "/api/v1/leaderboards"} {
		rec := doRequest(s, http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, rec.Code)
		}
		rec = doRequest(s, http.MethodGet, path, "", "not-a-token")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s with bogus token: status = %d, want 401", path, rec.Code)
		}
	}
}

// TestSaveSessionRejectsAllEmpty verifies a save whose rows all lack reps
// and weight is rejected before any persistence happens.
func TestSaveSessionRejectsAllEmpty(t *testing.T) {
	s, store, _ := newTestServer(t)
	token := registerUser(t, s, "alice@example.com")

	body := fmt.Sprintf(`{"sets":[{"exercise_id":%q},{"exercise_id":%q}]}`,
		uuid.New(), uuid.New())
	rec := doRequest(s, http.MethodPut, "/api/v1/sessions/2026-06-01", body, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if store.saveCalls != 0 {
		t.Errorf("saveCalls = %d, want 0", store.saveCalls)
	}
}

// TestSaveSessionReplaces verifies saving twice for the same date leaves
// only the second save's sets.
func TestSaveSessionReplaces(t *testing.T) {
	s, _, _ := newTestServer(t)
	token := registerUser(t, s, "alice@example.com")

	exA, exB := uuid.New(), uuid.New()
	bodyA := fmt.Sprintf(`{"sets":[{"exercise_id":%q,"reps":10,"weight":100}]}`, exA)
	bodyB := fmt.Sprintf(`{"sets":[{"exercise_id":%q,"reps":5,"weight":60}]}`, exB)

	if rec := doRequest(s, http.MethodPut, "/api/v1/sessions/2026-06-01", bodyA, token); rec.Code != http.StatusOK {
		t.Fatalf("first save status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec := doRequest(s, http.MethodPut, "/api/v1/sessions/2026-06-01", bodyB, token); rec.Code != http.StatusOK {
		t.Fatalf("second save status = %d", rec.Code)
	}

	rec := doRequest(s, http.MethodGet, "/api/v1/sessions?date=2026-06-01", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var resp struct {
		Sets []models.Set `json:"sets"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Sets) != 1 {
		t.Fatalf("len(sets) = %d, want 1", len(resp.Sets))
	}
	if resp.Sets[0].ExerciseID != exB {
		t.Errorf("exercise = %s, want %s", resp.Sets[0].ExerciseID, exB)
	}
}

// TestGetSessionAbsent verifies a day without a session reads as an empty
// set list, not an error.
func TestGetSessionAbsent(t *testing.T) {
	s, _, _ := newTestServer(t)
	token := registerUser(t, s, "alice@example.com")

	rec := doRequest(s, http.MethodGet, "/api/v1/sessions?date=2026-06-02", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Sets []models.Set `json:"sets"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Sets) != 0 {
		t.Errorf("len(sets) = %d, want 0", len(resp.Sets))
	}
}

// TestGetSessionBadDate verifies a malformed date parameter is a 400.
func TestGetSessionBadDate(t *testing.T) {
	s, _, _ := newTestServer(t)
	token := registerUser(t, s, "alice@example.com")

	rec := doRequest(s, http.MethodGet, "/api/v1/sessions?date=junk", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestStatsEndpoint verifies the profile aggregate shape over saved sessions.
func TestStatsEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)
	token := registerUser(t, s, "alice@example.com")

	ex := uuid.New()
	body := fmt.Sprintf(`{"sets":[{"exercise_id":%q,"reps":10,"weight":100}]}`, ex)
	if rec := doRequest(s, http.MethodPut, "/api/v1/sessions/2026-06-01", body, token); rec.Code != http.StatusOK {
		t.Fatalf("save status = %d", rec.Code)
	}

	rec := doRequest(s, http.MethodGet, "/api/v1/stats", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Stats        models.UserStats       `json:"stats"`
		Recent       []models.RecentWorkout `json:"recent_workouts"`
		Achievements []models.Achievement   `json:"achievements"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Stats.TotalSessions != 1 {
		t.Errorf("total_sessions = %d, want 1", resp.Stats.TotalSessions)
	}
	if resp.Stats.TotalSets != 1 {
		t.Errorf("total_sets = %d, want 1", resp.Stats.TotalSets)
	}
	if len(resp.Achievements) != 6 {
		t.Errorf("len(achievements) = %d, want 6", len(resp.Achievements))
	}
	if len(resp.Recent) != 1 {
		t.Errorf("len(recent_workouts) = %d, want 1", len(resp.Recent))
	}
}

// TestLeaderboardsSingleCategory verifies ranking and label enrichment for
// one category.
func TestLeaderboardsSingleCategory(t *testing.T) {
	s, store, _ := newTestServer(t)
	token := registerUser(t, s, "alice@example.com")
	registerUser(t, s, "bob@example.com")

	alice := store.users["alice@example.com"].ID
	bob := store.users["bob@example.com"].ID
	ex := uuid.New()
	store.weighted["chest"] = []models.WeightedSet{
		{ExerciseID: ex, ExerciseName: "bench press", UserID: alice, Weight: 100},
		{ExerciseID: ex, ExerciseName: "bench press", UserID: bob, Weight: 95},
	}

	rec := doRequest(s, http.MethodGet, "/api/v1/leaderboards?category=chest", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Leaderboards []struct {
			Category  string `json:"category"`
			Exercises []struct {
				Exercise string                    `json:"exercise"`
				Entries  []models.LeaderboardEntry `json:"entries"`
			} `json:"exercises"`
		} `json:"leaderboards"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Leaderboards) != 1 || resp.Leaderboards[0].Category != "chest" {
		t.Fatalf("unexpected leaderboards shape: %+v", resp.Leaderboards)
	}
	boards := resp.Leaderboards[0].Exercises
	if len(boards) != 1 || boards[0].Exercise != "bench press" {
		t.Fatalf("unexpected boards: %+v", boards)
	}
	entries := boards[0].Entries
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Weight != 100 || entries[0].Label != "alice@example.com" {
		t.Errorf("first entry = %+v, want alice at 100", entries[0])
	}
	if entries[1].Weight != 95 || entries[1].Label != "bob@example.com" {
		t.Errorf("second entry = %+v, want bob at 95", entries[1])
	}
}

// TestLeaderboardsAllCategories verifies the category-less request covers
// every category.
func TestLeaderboardsAllCategories(t *testing.T) {
	s, _, _ := newTestServer(t)
	token := registerUser(t, s, "alice@example.com")

	rec := doRequest(s, http.MethodGet, "/api/v1/leaderboards", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Leaderboards []struct {
			Category string `json:"category"`
		} `json:"leaderboards"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Leaderboards) != 3 {
		t.Fatalf("len(leaderboards) = %d, want 3", len(resp.Leaderboards))
	}
}

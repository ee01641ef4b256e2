package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/auth"
	"github.com/liftlog/liftlog/internal/models"
)

// Store is the storage surface the handlers need. *storage.DB satisfies it.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	Labels(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListExercisesByCategory(ctx context.Context, category string) ([]models.Exercise, error)
	GetSessionByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.SessionDay, error)
	ListSessionsWithSets(ctx context.Context, userID uuid.UUID) ([]models.SessionDay, error)
	SaveSession(ctx context.Context, userID uuid.UUID, date time.Time, sets []models.SetInput) error
	ListWeightedSetsByCategory(ctx context.Context, category string) ([]models.WeightedSet, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	tokens *auth.TokenManager
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, tokens *auth.TokenManager, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		tokens: tokens,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Post("/api/v1/auth/register", s.handleRegister)
	s.router.Post("/api/v1/auth/login", s.handleLogin)

	// Everything else requires a bearer token.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuth(s.tokens))
		r.Get("/me", s.handleMe)
		r.Get("/exercises/categories", s.handleCategories)
		r.Get("/exercises", s.handleExercises)
		r.Get("/sessions", s.handleGetSession)
		r.Put("/sessions/{date}", s.handleSaveSession)
		r.Get("/stats", s.handleStats)
		r.Get("/leaderboards", s.handleLeaderboards)
	})
}

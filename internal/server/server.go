package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/ironflow/internal/guide"
	"github.com/claude/ironflow/internal/models"
	"github.com/claude/ironflow/internal/session"
	"github.com/claude/ironflow/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the persistence surface the handlers need. *storage.DB
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	InsertExerciseLog(ctx context.Context, log models.ExerciseLog) (bool, error)
	QueryExerciseLogs(ctx context.Context) ([]models.ExerciseLog, error)
	QueryExerciseLogsByDate(ctx context.Context, date time.Time) ([]models.ExerciseLog, error)
	DeleteExerciseLog(ctx context.Context, id uuid.UUID) (bool, error)

	UnlockedBadgeIDs(ctx context.Context) (map[string]bool, error)
	InsertAchievement(ctx context.Context, a models.Achievement) (bool, error)
	QueryAchievements(ctx context.Context) ([]models.Achievement, error)

	InsertWorkoutPlan(ctx context.Context, plan models.WorkoutPlan) (bool, error)
	GetWorkoutPlan(ctx context.Context, id uuid.UUID) (*models.WorkoutPlan, error)
	QueryWorkoutPlans(ctx context.Context) ([]models.WorkoutPlan, error)
	DeleteWorkoutPlan(ctx context.Context, id uuid.UUID) (bool, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	runner *session.Runner
	guide  *guide.Client
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. The runner's
// log sink should already point at the same store (see NewLogSink).
func New(store Store, runner *session.Runner, guideClient *guide.Client, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		runner: runner,
		guide:  guideClient,
		log:    log,
		apiKey: apiKey,
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

	// Guided session controls. All synchronous; invalid calls are
	// no-ops in the core, so these never fail with a user-visible
	// error once the session exists.
	s.router.Route("/api/v1/session", func(r chi.Router) {
		r.Get("/", s.handleGetSession)
		r.Post("/start", s.handleStartSession)
		r.Post("/advance", s.handleAdvanceSession)
		r.Post("/rest-timer", s.handleAdjustRestTimer)
		r.Post("/work-timer/toggle", s.handleToggleWorkTimer)
		r.Post("/work-timer/reset", s.handleResetWorkTimer)
		r.Post("/finish", s.handleFinishSession)
	})

	s.router.Get("/api/v1/logs", s.handleQueryLogs)
	s.router.Post("/api/v1/logs", s.handleSubmitLog)
	s.router.Delete("/api/v1/logs/{id}", s.handleDeleteLog)

	s.router.Get("/api/v1/achievements", s.handleAchievements)
	s.router.Get("/api/v1/streak", s.handleStreak)

	s.router.Get("/api/v1/plans", s.handleQueryPlans)
	s.router.Post("/api/v1/plans", s.handleCreatePlan)
	s.router.Get("/api/v1/plans/{id}", s.handleGetPlan)
	s.router.Delete("/api/v1/plans/{id}", s.handleDeletePlan)

	s.router.Get("/api/v1/exercises", s.handleRecommendExercises)
	s.router.Get("/api/v1/exercises/{name}", s.handleExerciseGuide)

	// Bulk import (API key required)
	s.router.Route("/api/v1/import", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleImport)
	})
}

// MountMCP attaches an MCP transport handler under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

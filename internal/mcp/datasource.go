package mcp

import (
	"context"

	"github.com/claude/ironflow/internal/models"
	"github.com/claude/ironflow/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QueryExerciseLogs(ctx context.Context) ([]models.ExerciseLog, error)
	QueryAchievements(ctx context.Context) ([]models.Achievement, error)
	QueryWorkoutPlans(ctx context.Context) ([]models.WorkoutPlan, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

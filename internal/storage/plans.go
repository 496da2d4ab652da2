package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/ironflow/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertWorkoutPlan stores a plan, its day definitions serialized as
// JSONB. Returns true if inserted, false if the id already exists.
func (db *DB) InsertWorkoutPlan(ctx context.Context, plan models.WorkoutPlan) (bool, error) {
	days, err := json.Marshal(plan.Days)
	if err != nil {
		return false, fmt.Errorf("encoding plan days: %w", err)
	}

	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_plans (id, created_at, goal, level, equipment, duration_minutes, days)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT DO NOTHING`,
		plan.ID, plan.CreatedAt, plan.Goal, plan.Level, plan.Equipment, plan.DurationMinutes, days)
	if err != nil {
		return false, fmt.Errorf("inserting workout plan: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetWorkoutPlan retrieves a plan by id. Returns pgx.ErrNoRows wrapped
// when the plan does not exist.
func (db *DB) GetWorkoutPlan(ctx context.Context, id uuid.UUID) (*models.WorkoutPlan, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, created_at, goal, level, equipment, duration_minutes, days
		 FROM workout_plans
		 WHERE id = $1`,
		id)

	plan, err := scanPlan(row)
	if err != nil {
		return nil, fmt.Errorf("querying workout plan: %w", err)
	}
	return plan, nil
}

// QueryWorkoutPlans retrieves all plans, newest first.
func (db *DB) QueryWorkoutPlans(ctx context.Context) ([]models.WorkoutPlan, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, created_at, goal, level, equipment, duration_minutes, days
		 FROM workout_plans
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying workout plans: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *plan)
	}
	return result, rows.Err()
}

// DeleteWorkoutPlan removes a plan by id.
func (db *DB) DeleteWorkoutPlan(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workout_plans WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting workout plan: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanPlan(row pgx.Row) (*models.WorkoutPlan, error) {
	var p models.WorkoutPlan
	var days []byte
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.Goal, &p.Level,
		&p.Equipment, &p.DurationMinutes, &days); err != nil {
		return nil, fmt.Errorf("scanning workout plan: %w", err)
	}
	if err := json.Unmarshal(days, &p.Days); err != nil {
		return nil, fmt.Errorf("decoding plan days: %w", err)
	}
	return &p, nil
}

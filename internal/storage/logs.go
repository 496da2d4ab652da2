package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/ironflow/internal/models"
	"github.com/google/uuid"
)

// InsertExerciseLog appends a completed-set record. The log table is
// append-only; duplicates by id are ignored. Returns true if inserted.
func (db *DB) InsertExerciseLog(ctx context.Context, log models.ExerciseLog) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO exercise_logs (id, exercise_name, sets, reps, weight_kg, duration_minutes, logged_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT DO NOTHING`,
		log.ID, log.ExerciseName, log.Sets, log.Reps, log.Weight, log.DurationMinutes, log.LoggedAt)
	if err != nil {
		return false, fmt.Errorf("inserting exercise log: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryExerciseLogs retrieves the full history, newest first.
func (db *DB) QueryExerciseLogs(ctx context.Context) ([]models.ExerciseLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, exercise_name, sets, reps, weight_kg, duration_minutes, logged_at
		 FROM exercise_logs
		 ORDER BY logged_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercise logs: %w", err)
	}
	defer rows.Close()

	return scanLogRows(rows)
}

// QueryExerciseLogsByDate retrieves logs on a single local calendar
// date, newest first.
func (db *DB) QueryExerciseLogsByDate(ctx context.Context, date time.Time) ([]models.ExerciseLog, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	rows, err := db.Pool.Query(ctx,
		`SELECT id, exercise_name, sets, reps, weight_kg, duration_minutes, logged_at
		 FROM exercise_logs
		 WHERE logged_at >= $1 AND logged_at < $2
		 ORDER BY logged_at DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying exercise logs by date: %w", err)
	}
	defer rows.Close()

	return scanLogRows(rows)
}

// DeleteExerciseLog removes a log by id. Deletion is unconditional and
// has no effect on already-unlocked achievements.
func (db *DB) DeleteExerciseLog(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM exercise_logs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting exercise log: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanLogRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.ExerciseLog, error) {
	var result []models.ExerciseLog
	for rows.Next() {
		var l models.ExerciseLog
		if err := rows.Scan(&l.ID, &l.ExerciseName, &l.Sets, &l.Reps,
			&l.Weight, &l.DurationMinutes, &l.LoggedAt); err != nil {
			return nil, fmt.Errorf("scanning exercise log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

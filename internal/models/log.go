package models

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseLog is one completed-exercise record. Logs are append-only:
// past entries are never mutated, only deleted outright by the user.
type ExerciseLog struct {
	ID              uuid.UUID `json:"id"`
	ExerciseName    string    `json:"exercise_name"`
	Sets            int       `json:"sets"`
	Reps            int       `json:"reps"`
	Weight          float64   `json:"weight_kg"`
	DurationMinutes int       `json:"duration_minutes"`
	LoggedAt        time.Time `json:"logged_at"`
}

// CalendarDate returns the log's local calendar date (YYYY-MM-DD).
// Achievement predicates group and compare by this value.
func (l ExerciseLog) CalendarDate() string {
	return l.LoggedAt.Local().Format("2006-01-02")
}

// Volume is sets * reps * weight, the load moved for this log.
// Zero-weight (bodyweight) logs contribute zero volume.
func (l ExerciseLog) Volume() float64 {
	return float64(l.Sets*l.Reps) * l.Weight
}

// TotalReps is sets * reps.
func (l ExerciseLog) TotalReps() int {
	return l.Sets * l.Reps
}

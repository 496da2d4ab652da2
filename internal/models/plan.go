package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Defaults applied when an exercise's sets/reps descriptor cannot be
// parsed. Plans often come from generators that emit values like
// "3-4" or "12/side", so parsing must never fail the session.
const (
	DefaultTargetSets = 3
	DefaultTargetReps = 10
)

// WorkoutExercise is one prescribed exercise within a workout day.
// Sets and Reps are free-form descriptors ("3", "3-4", "30s",
// "12/side") and must be parsed defensively.
type WorkoutExercise struct {
	Name string `json:"name"`
	Sets string `json:"sets"`
	Reps string `json:"reps"`
}

// TargetSets parses the set descriptor, defaulting to DefaultTargetSets.
func (e WorkoutExercise) TargetSets() int {
	return parseLeadingInt(e.Sets, DefaultTargetSets)
}

// TargetReps parses the rep descriptor, defaulting to DefaultTargetReps.
func (e WorkoutExercise) TargetReps() int {
	return parseLeadingInt(e.Reps, DefaultTargetReps)
}

// WorkoutDay is an ordered sequence of exercises. Immutable once a
// session starts; the session references it, never copies it.
type WorkoutDay struct {
	Day       string            `json:"day"`
	Focus     string            `json:"focus"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// WorkoutPlan owns its day definitions.
type WorkoutPlan struct {
	ID              uuid.UUID    `json:"id"`
	CreatedAt       time.Time    `json:"created_at"`
	Goal            string       `json:"goal"`
	Level           string       `json:"level"`
	Equipment       string       `json:"equipment"`
	DurationMinutes int          `json:"duration_minutes"`
	Days            []WorkoutDay `json:"days"`
}

// parseLeadingInt reads the leading decimal digits of s, so "12/side"
// parses as 12 and "30s" as 30. Returns def when s has no leading digits.
func parseLeadingInt(s string, def int) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return def
	}
	return n
}

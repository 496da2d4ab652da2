// Package coach derives training hints from the exercise-log history.
// Everything here is a pure function: same inputs, same output, no
// side effects.
package coach

import (
	"fmt"
	"sort"
	"strings"

	"github.com/claude/ironflow/internal/models"
)

// OverloadIncrement is the weight bump proposed over the last recorded
// session.
const OverloadIncrement = 2.5

// Suggestion is a progressive-overload proposal for the next set.
type Suggestion struct {
	LastWeight float64 `json:"last_weight"`
	LastReps   int     `json:"last_reps"`
	NextWeight float64 `json:"next_weight"`
	Message    string  `json:"message"`
}

// SuggestOverload proposes the next target weight for an exercise
// based on its most recent log. Returns nil when there is no history
// for the exercise or the last entry was bodyweight (weight zero) —
// no signal, not an error.
//
// Matching is a case-insensitive exact comparison on the exercise name.
func SuggestOverload(exerciseName string, history []models.ExerciseLog) *Suggestion {
	var matches []models.ExerciseLog
	for _, log := range history {
		if strings.EqualFold(log.ExerciseName, exerciseName) {
			matches = append(matches, log)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].LoggedAt.After(matches[j].LoggedAt)
	})

	last := matches[0]
	if last.Weight <= 0 {
		return nil
	}

	next := last.Weight + OverloadIncrement
	return &Suggestion{
		LastWeight: last.Weight,
		LastReps:   last.Reps,
		NextWeight: next,
		Message: fmt.Sprintf("Last time: %g kg x %d reps. Try %g kg today.",
			last.Weight, last.Reps, next),
	}
}

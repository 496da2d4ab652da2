package coach

import (
	"fmt"

	"github.com/claude/ironflow/internal/models"
)

// PRResult is the outcome of a personal-record check.
type PRResult struct {
	IsNewPR bool   `json:"is_new_pr"`
	Message string `json:"message,omitempty"`
}

// CheckPR decides whether the candidate log sets a personal record:
// its weight must be positive and exceed the maximum weight over all
// prior logs for the same exercise name (zero when there are none).
//
// This runs when a manual log is submitted, not on the guided
// session's auto-logging path.
func CheckPR(candidate models.ExerciseLog, history []models.ExerciseLog) PRResult {
	var max float64
	for _, log := range history {
		if log.ExerciseName == candidate.ExerciseName && log.Weight > max {
			max = log.Weight
		}
	}
	if candidate.Weight > max && candidate.Weight > 0 {
		return PRResult{
			IsNewPR: true,
			Message: fmt.Sprintf("New personal record on %s!", candidate.ExerciseName),
		}
	}
	return PRResult{}
}

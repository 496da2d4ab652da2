package server

import (
	"context"
	"log/slog"

	"github.com/claude/ironflow/internal/models"
	"github.com/claude/ironflow/internal/session"
)

// storeSink feeds session-synthesized logs into the store. Failures
// are logged and swallowed: losing a cosmetic write must never abort
// the user's session.
type storeSink struct {
	store Store
	log   *slog.Logger
}

// NewLogSink returns the session.LogSink backing the guided session's
// save path.
func NewLogSink(store Store, log *slog.Logger) session.LogSink {
	return &storeSink{store: store, log: log}
}

func (s *storeSink) Append(entry models.ExerciseLog) {
	if _, err := s.store.InsertExerciseLog(context.Background(), entry); err != nil {
		s.log.Error("appending session log", "exercise", entry.ExerciseName, "error", err)
	}
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/claude/ironflow/internal/achievements"
	"github.com/claude/ironflow/internal/coach"
	"github.com/claude/ironflow/internal/models"
	"github.com/claude/ironflow/internal/session"
	"github.com/google/uuid"
)

type sessionResponse struct {
	Active   bool              `json:"active"`
	Session  *session.Snapshot `json:"session,omitempty"`
	Overload *coach.Suggestion `json:"overload,omitempty"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessionResponse(r.Context()))
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanID   uuid.UUID `json:"plan_id"`
		DayIndex int       `json:"day_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	plan, err := s.store.GetWorkoutPlan(r.Context(), req.PlanID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	if req.DayIndex < 0 || req.DayIndex >= len(plan.Days) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "day index out of range"})
		return
	}

	s.runner.Start(plan.ID, req.DayIndex, &plan.Days[req.DayIndex], plan.DurationMinutes)
	writeJSON(w, http.StatusOK, s.sessionResponse(r.Context()))
}

func (s *Server) handleAdvanceSession(w http.ResponseWriter, r *http.Request) {
	s.runner.Advance()
	writeJSON(w, http.StatusOK, s.sessionResponse(r.Context()))
}

func (s *Server) handleAdjustRestTimer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeltaSeconds int `json:"delta_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.runner.AdjustRestTimer(req.DeltaSeconds)
	writeJSON(w, http.StatusOK, s.sessionResponse(r.Context()))
}

func (s *Server) handleToggleWorkTimer(w http.ResponseWriter, r *http.Request) {
	s.runner.ToggleWorkTimer()
	writeJSON(w, http.StatusOK, s.sessionResponse(r.Context()))
}

func (s *Server) handleResetWorkTimer(w http.ResponseWriter, r *http.Request) {
	s.runner.ResetWorkTimer()
	writeJSON(w, http.StatusOK, s.sessionResponse(r.Context()))
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Save bool `json:"save"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	s.runner.Finish(req.Save)

	var unlocked []models.Achievement
	if req.Save {
		unlocked = s.evaluateAchievements(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active":           false,
		"new_achievements": unlocked,
	})
}

// sessionResponse snapshots the runner and, when the session sits in
// ready, recomputes the overload suggestion for the upcoming exercise.
func (s *Server) sessionResponse(ctx context.Context) sessionResponse {
	snap, ok := s.runner.Snapshot()
	if !ok {
		return sessionResponse{}
	}

	resp := sessionResponse{Active: true, Session: &snap}
	if snap.Step == session.StepReady {
		history, err := s.store.QueryExerciseLogs(ctx)
		if err != nil {
			s.log.Error("querying logs for overload hint", "error", err)
			return resp
		}
		resp.Overload = coach.SuggestOverload(snap.ExerciseName, history)
	}
	return resp
}

// evaluateAchievements runs the engine over the full history and
// persists any new unlocks. Errors degrade to "no new badges" — badge
// bookkeeping must never fail a save.
func (s *Server) evaluateAchievements(ctx context.Context) []models.Achievement {
	history, err := s.store.QueryExerciseLogs(ctx)
	if err != nil {
		s.log.Error("querying logs for achievements", "error", err)
		return nil
	}
	unlockedIDs, err := s.store.UnlockedBadgeIDs(ctx)
	if err != nil {
		s.log.Error("querying unlocked badges", "error", err)
		return nil
	}

	unlocks := achievements.Evaluate(history, unlockedIDs, time.Now())
	for _, a := range unlocks {
		if _, err := s.store.InsertAchievement(ctx, a); err != nil {
			s.log.Error("persisting achievement", "badge", a.ID, "error", err)
			continue
		}
		s.log.Info("achievement unlocked", "badge", a.ID)
	}
	return unlocks
}

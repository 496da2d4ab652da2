package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/claude/ironflow/internal/achievements"
	"github.com/claude/ironflow/internal/coach"
	"github.com/claude/ironflow/internal/guide"
	"github.com/claude/ironflow/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// logRequest carries an optional client-assigned id. Clients that
// retry (the import CLI resends whole batches) supply stable ids so
// the insert's conflict handling drops records already stored.
type logRequest struct {
	ID              string  `json:"id,omitempty"`
	ExerciseName    string  `json:"exercise_name"`
	Sets            int     `json:"sets"`
	Reps            int     `json:"reps"`
	Weight          float64 `json:"weight_kg"`
	DurationMinutes int     `json:"duration_minutes"`
	LoggedAt        string  `json:"logged_at,omitempty"`
}

func (req logRequest) toLog() (models.ExerciseLog, error) {
	entry := models.ExerciseLog{
		ID:              uuid.New(),
		ExerciseName:    req.ExerciseName,
		Sets:            req.Sets,
		Reps:            req.Reps,
		Weight:          req.Weight,
		DurationMinutes: req.DurationMinutes,
		LoggedAt:        time.Now(),
	}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return entry, fmt.Errorf("invalid id: %w", err)
		}
		entry.ID = id
	}
	if req.LoggedAt != "" {
		t, err := time.Parse(time.RFC3339, req.LoggedAt)
		if err != nil {
			return entry, fmt.Errorf("invalid logged_at: %w", err)
		}
		entry.LoggedAt = t
	}
	return entry, nil
}

func (s *Server) handleQueryLogs(w http.ResponseWriter, r *http.Request) {
	var (
		logs []models.ExerciseLog
		err  error
	)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		var date time.Time
		date, err = time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		logs, err = s.store.QueryExerciseLogsByDate(r.Context(), date)
	} else {
		logs, err = s.store.QueryExerciseLogs(r.Context())
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// handleSubmitLog appends a manual log. The PR check runs against the
// history as it was before this log, then achievements re-evaluate
// over the updated history.
func (s *Server) handleSubmitLog(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.ExerciseName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise_name is required"})
		return
	}
	if req.Weight < 0 || req.DurationMinutes < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight and duration must be non-negative"})
		return
	}

	entry, err := req.toLog()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	history, err := s.store.QueryExerciseLogs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	pr := coach.CheckPR(entry, history)

	if _, err := s.store.InsertExerciseLog(r.Context(), entry); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	unlocked := s.evaluateAchievements(r.Context())

	writeJSON(w, http.StatusCreated, map[string]any{
		"log":              entry,
		"is_new_pr":        pr.IsNewPR,
		"message":          pr.Message,
		"new_achievements": unlocked,
	})
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid log ID"})
		return
	}

	// Unlocked achievements are never revoked, even when the logs that
	// earned them disappear.
	deleted, err := s.store.DeleteExerciseLog(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "log not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked, err := s.store.QueryAchievements(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"catalog":  achievements.CatalogIDs(),
		"unlocked": unlocked,
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.QueryExerciseLogs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	now := time.Now()
	writeJSON(w, http.StatusOK, map[string]any{
		"current_streak": achievements.CurrentStreak(history, now),
		"week":           achievements.WeekActivity(history, now),
	})
}

func (s *Server) handleQueryPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.store.QueryWorkoutPlans(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.WorkoutPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(plan.Days) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "plan has no days"})
		return
	}
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}

	if _, err := s.store.InsertWorkoutPlan(r.Context(), plan); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid plan ID"})
		return
	}
	plan, err := s.store.GetWorkoutPlan(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid plan ID"})
		return
	}
	deleted, err := s.store.DeleteWorkoutPlan(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleExerciseGuide(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	details, err := s.guide.Lookup(r.Context(), name)
	if err != nil {
		s.log.Warn("guide lookup failed", "exercise", name, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "guide service unavailable"})
		return
	}
	if details == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no guide for this exercise"})
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleRecommendExercises(w http.ResponseWriter, r *http.Request) {
	bodyPart := r.URL.Query().Get("body_part")
	equipment := r.URL.Query().Get("equipment")
	if bodyPart == "" && equipment == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body_part or equipment filter required"})
		return
	}

	results, err := s.guide.Recommend(r.Context(), bodyPart, equipment)
	if err != nil {
		s.log.Warn("guide recommend failed", "body_part", bodyPart, "equipment", equipment, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "guide service unavailable"})
		return
	}
	if results == nil {
		results = []guide.ExerciseDetails{}
	}
	writeJSON(w, http.StatusOK, results)
}

// handleImport bulk-appends logs (from the import CLI). Records with
// an id already stored are skipped, so a client retrying a batch after
// a partial failure never duplicates logs; achievements evaluate once
// at the end.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var reqs []logRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	imported, skipped := 0, 0
	for _, req := range reqs {
		if req.ExerciseName == "" {
			skipped++
			continue
		}
		entry, err := req.toLog()
		if err != nil {
			skipped++
			continue
		}
		inserted, err := s.store.InsertExerciseLog(r.Context(), entry)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if inserted {
			imported++
		} else {
			skipped++
		}
	}

	unlocked := s.evaluateAchievements(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"imported":         imported,
		"skipped":          skipped,
		"new_achievements": unlocked,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

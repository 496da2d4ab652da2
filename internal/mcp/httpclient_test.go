package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/ironflow/internal/models"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestQueryExerciseLogs verifies the client parses the flat log array.
func TestQueryExerciseLogs(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/logs": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.ExerciseLog{
				{ID: uuid.New(), ExerciseName: "Bench Press", Sets: 3, Reps: 8, Weight: 60, LoggedAt: time.Now()},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	logs, err := client.QueryExerciseLogs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if logs[0].ExerciseName != "Bench Press" {
		t.Errorf("exercise=%q, want Bench Press", logs[0].ExerciseName)
	}
}

// TestQueryAchievements verifies the client unwraps the unlocked field.
func TestQueryAchievements(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/achievements": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]any{
				"catalog":  []string{"first_step"},
				"unlocked": []models.Achievement{{ID: "first_step", UnlockedAt: time.Now()}},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	unlocked, err := client.QueryAchievements(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != "first_step" {
		t.Errorf("unlocked = %+v, want [first_step]", unlocked)
	}
}

// TestQueryWorkoutPlans verifies plan parsing including nested days.
func TestQueryWorkoutPlans(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.WorkoutPlan{{
				ID:   uuid.New(),
				Goal: "strength",
				Days: []models.WorkoutDay{{
					Day:       "Day 1",
					Exercises: []models.WorkoutExercise{{Name: "Squat", Sets: "3", Reps: "5"}},
				}},
			}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	plans, err := client.QueryWorkoutPlans(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	if len(plans[0].Days) != 1 || plans[0].Days[0].Exercises[0].Name != "Squat" {
		t.Errorf("plan days = %+v", plans[0].Days)
	}
}

// TestHTTPClientServerError verifies the client returns an error on non-200 responses.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/logs": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	_, err := client.QueryExerciseLogs(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

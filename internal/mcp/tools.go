package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/claude/ironflow/internal/achievements"
	"github.com/claude/ironflow/internal/coach"
	"github.com/claude/ironflow/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// filterLogs narrows logs to a time range and optional name substring
// (case-insensitive).
func filterLogs(logs []models.ExerciseLog, start, end time.Time, nameFilter string) []models.ExerciseLog {
	needle := strings.ToLower(nameFilter)
	var out []models.ExerciseLog
	for _, l := range logs {
		if l.LoggedAt.Before(start) || l.LoggedAt.After(end) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(l.ExerciseName), needle) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// --- Tool definitions ---

var toolGetExerciseLogs = mcp.NewTool("get_exercise_logs",
	mcp.WithDescription("Query exercise logs with optional exercise filter. Returns sets, reps, weight, duration, and timestamps for each log."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match, e.g. 'bench press')")),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Aggregated training totals over a time range: active days, sets, reps, tonnage, and minutes, plus a per-exercise breakdown."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetStreak = mcp.NewTool("get_streak",
	mcp.WithDescription("Current consecutive-day training streak and day-by-day activity for the last 7 days."),
)

var toolGetAchievements = mcp.NewTool("get_achievements",
	mcp.WithDescription("List unlocked badges with unlock timestamps, and the remaining locked badge IDs."),
)

var toolSuggestOverload = mcp.NewTool("suggest_overload",
	mcp.WithDescription("Progressive overload suggestion for an exercise based on its most recent weighted log."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (case-insensitive exact match)")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Heaviest logged weight per exercise. Optionally filter to one exercise."),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match)")),
)

var toolGetWorkoutPlans = mcp.NewTool("get_workout_plans",
	mcp.WithDescription("List saved workout plans with their day and exercise structure."),
)

// --- Tool handlers ---

func (h *handlers) getExerciseLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	logs, err := h.ds.QueryExerciseLogs(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_logs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	filtered := filterLogs(logs, start, end, req.GetString("exercise", ""))
	result, err := mcp.NewToolResultJSON(filtered)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// exerciseTotals is one row of the per-exercise breakdown.
type exerciseTotals struct {
	Exercise  string  `json:"exercise"`
	Logs      int     `json:"logs"`
	Sets      int     `json:"sets"`
	Reps      int     `json:"reps"`
	Tonnage   float64 `json:"tonnage_kg"`
	MaxWeight float64 `json:"max_weight_kg"`
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	logs, err := h.ds.QueryExerciseLogs(ctx)
	if err != nil {
		h.log.Error("mcp get_training_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	filtered := filterLogs(logs, start, end, "")

	days := map[string]bool{}
	perExercise := map[string]*exerciseTotals{}
	var sets, reps, minutes int
	var tonnage float64
	for _, l := range filtered {
		days[l.CalendarDate()] = true
		sets += l.Sets
		reps += l.TotalReps()
		minutes += l.DurationMinutes
		tonnage += l.Volume()

		row := perExercise[l.ExerciseName]
		if row == nil {
			row = &exerciseTotals{Exercise: l.ExerciseName}
			perExercise[l.ExerciseName] = row
		}
		row.Logs++
		row.Sets += l.Sets
		row.Reps += l.TotalReps()
		row.Tonnage += l.Volume()
		if l.Weight > row.MaxWeight {
			row.MaxWeight = l.Weight
		}
	}

	breakdown := make([]exerciseTotals, 0, len(perExercise))
	for _, row := range perExercise {
		breakdown = append(breakdown, *row)
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"start":        start.Format("2006-01-02"),
		"end":          end.Format("2006-01-02"),
		"active_days":  len(days),
		"total_logs":   len(filtered),
		"total_sets":   sets,
		"total_reps":   reps,
		"tonnage_kg":   tonnage,
		"minutes":      minutes,
		"per_exercise": breakdown,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStreak(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logs, err := h.ds.QueryExerciseLogs(ctx)
	if err != nil {
		h.log.Error("mcp get_streak", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	now := time.Now()
	result, err := mcp.NewToolResultJSON(map[string]any{
		"current_streak": achievements.CurrentStreak(logs, now),
		"week":           achievements.WeekActivity(logs, now),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getAchievements(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	unlocked, err := h.ds.QueryAchievements(ctx)
	if err != nil {
		h.log.Error("mcp get_achievements", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	have := map[string]bool{}
	for _, a := range unlocked {
		have[a.ID] = true
	}
	var locked []string
	for _, id := range achievements.CatalogIDs() {
		if !have[id] {
			locked = append(locked, id)
		}
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"unlocked": unlocked,
		"locked":   locked,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestOverload(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	logs, err := h.ds.QueryExerciseLogs(ctx)
	if err != nil {
		h.log.Error("mcp suggest_overload", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	suggestion := coach.SuggestOverload(exercise, logs)
	if suggestion == nil {
		return mcp.NewToolResultText("No weighted history for " + exercise + "; no suggestion."), nil
	}
	result, err := mcp.NewToolResultJSON(suggestion)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logs, err := h.ds.QueryExerciseLogs(ctx)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	needle := strings.ToLower(req.GetString("exercise", ""))
	type record struct {
		Exercise string    `json:"exercise"`
		Weight   float64   `json:"weight_kg"`
		Reps     int       `json:"reps"`
		LoggedAt time.Time `json:"logged_at"`
	}
	best := map[string]record{}
	for _, l := range logs {
		if l.Weight <= 0 {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(l.ExerciseName), needle) {
			continue
		}
		if cur, ok := best[l.ExerciseName]; !ok || l.Weight > cur.Weight {
			best[l.ExerciseName] = record{
				Exercise: l.ExerciseName,
				Weight:   l.Weight,
				Reps:     l.Reps,
				LoggedAt: l.LoggedAt,
			}
		}
	}

	records := make([]record, 0, len(best))
	for _, r := range best {
		records = append(records, r)
	}
	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutPlans(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans, err := h.ds.QueryWorkoutPlans(ctx)
	if err != nil {
		h.log.Error("mcp get_workout_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plans)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

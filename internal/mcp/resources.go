package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/ironflow/internal/achievements"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) progressSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	logs, err := h.ds.QueryExerciseLogs(ctx)
	if err != nil {
		return nil, err
	}

	var sets, reps, minutes int
	var tonnage float64
	bests := map[string]float64{}
	for _, l := range logs {
		sets += l.Sets
		reps += l.TotalReps()
		minutes += l.DurationMinutes
		tonnage += l.Volume()
		if l.Weight > bests[l.ExerciseName] {
			bests[l.ExerciseName] = l.Weight
		}
	}

	now := time.Now()
	summary := map[string]any{
		"current_streak": achievements.CurrentStreak(logs, now),
		"week":           achievements.WeekActivity(logs, now),
		"total_logs":     len(logs),
		"total_sets":     sets,
		"total_reps":     reps,
		"tonnage_kg":     tonnage,
		"minutes":        minutes,
		"best_weights":   bests,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) badgeCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	unlocked, err := h.ds.QueryAchievements(ctx)
	if err != nil {
		return nil, err
	}

	unlockedAt := map[string]time.Time{}
	for _, a := range unlocked {
		unlockedAt[a.ID] = a.UnlockedAt
	}

	type entry struct {
		ID         string     `json:"id"`
		Unlocked   bool       `json:"unlocked"`
		UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	}
	var catalog []entry
	for _, id := range achievements.CatalogIDs() {
		e := entry{ID: id}
		if at, ok := unlockedAt[id]; ok {
			e.Unlocked = true
			e.UnlockedAt = &at
		}
		catalog = append(catalog, e)
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) planCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	plans, err := h.ds.QueryWorkoutPlans(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(plans)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

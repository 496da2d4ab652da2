package achievements

import (
	"testing"
	"time"

	"github.com/claude/ironflow/internal/models"
)

var evalTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)

func makeLogs(n int, at time.Time) []models.ExerciseLog {
	logs := make([]models.ExerciseLog, n)
	for i := range logs {
		logs[i] = models.ExerciseLog{
			ExerciseName: "Row",
			Sets:         3,
			Reps:         10,
			LoggedAt:     at,
		}
	}
	return logs
}

func unlockedIDs(got []models.Achievement) map[string]bool {
	ids := map[string]bool{}
	for _, a := range got {
		ids[a.ID] = true
	}
	return ids
}

func TestEvaluateEmptyHistory(t *testing.T) {
	if got := Evaluate(nil, nil, evalTime); got != nil {
		t.Errorf("empty history unlocked %v", got)
	}
}

func TestFirstStep(t *testing.T) {
	logs := makeLogs(1, evalTime.Add(-time.Hour))
	got := Evaluate(logs, nil, evalTime)
	if !unlockedIDs(got)[FirstStep] {
		t.Errorf("first_step not unlocked: %v", got)
	}
	for _, a := range got {
		if !a.UnlockedAt.Equal(evalTime) {
			t.Errorf("%s stamped %v, want evaluation time", a.ID, a.UnlockedAt)
		}
	}
}

// TestCenturionIdempotent: 100 logs unlock centurion exactly once;
// with centurion already unlocked, even 150 logs yield nothing.
func TestCenturionIdempotent(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	got := Evaluate(makeLogs(100, at), nil, evalTime)

	count := 0
	for _, a := range got {
		if a.ID == Centurion {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("centurion unlocked %d times, want 1", count)
	}

	unlocked := map[string]bool{Centurion: true}
	again := Evaluate(makeLogs(150, at), unlocked, evalTime)
	if unlockedIDs(again)[Centurion] {
		t.Error("centurion re-unlocked despite being in the unlocked set")
	}
}

func TestEarlyBirdAndNightOwl(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	tests := []struct {
		hour      int
		earlyBird bool
		nightOwl  bool
	}{
		{5, true, false},
		{7, true, false},
		{8, false, false},
		{12, false, false},
		{22, false, true},
		{23, false, true},
		{1, false, true},
		{2, false, false},
		{4, false, false},
	}
	for _, tt := range tests {
		logs := makeLogs(1, day.Add(time.Duration(tt.hour)*time.Hour))
		ids := unlockedIDs(Evaluate(logs, nil, evalTime))
		if ids[EarlyBird] != tt.earlyBird {
			t.Errorf("hour %d: early_bird = %v, want %v", tt.hour, ids[EarlyBird], tt.earlyBird)
		}
		if ids[NightOwl] != tt.nightOwl {
			t.Errorf("hour %d: night_owl = %v, want %v", tt.hour, ids[NightOwl], tt.nightOwl)
		}
	}
}

// TestMarathon sums durations per calendar date, not per log.
func TestMarathon(t *testing.T) {
	day := time.Date(2026, 3, 10, 18, 0, 0, 0, time.Local)
	logs := []models.ExerciseLog{
		{ExerciseName: "Squat", Sets: 3, Reps: 10, DurationMinutes: 50, LoggedAt: day},
		{ExerciseName: "Bench", Sets: 3, Reps: 10, DurationMinutes: 40, LoggedAt: day.Add(time.Hour)},
	}
	if !unlockedIDs(Evaluate(logs, nil, evalTime))[Marathon] {
		t.Error("90 minutes in one day should unlock marathon")
	}

	split := []models.ExerciseLog{
		{ExerciseName: "Squat", DurationMinutes: 50, LoggedAt: day},
		{ExerciseName: "Bench", DurationMinutes: 40, LoggedAt: day.AddDate(0, 0, 1)},
	}
	if unlockedIDs(Evaluate(split, nil, evalTime))[Marathon] {
		t.Error("durations on separate days must not combine")
	}
}

func TestRepPatternBadges(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	// 10 x (10 sets * 10 reps) = 1000 leg reps.
	var legs []models.ExerciseLog
	for i := 0; i < 10; i++ {
		legs = append(legs, models.ExerciseLog{ExerciseName: "Back Squat", Sets: 10, Reps: 10, LoggedAt: day})
	}
	ids := unlockedIDs(Evaluate(legs, nil, evalTime))
	if !ids[SquatMaster] {
		t.Error("1000 squat reps should unlock squat_master")
	}
	if ids[IronChest] {
		t.Error("squats must not count toward iron_chest")
	}

	chest := []models.ExerciseLog{
		{ExerciseName: "Incline Bench Press", Sets: 25, Reps: 10, LoggedAt: day},
		{ExerciseName: "Push Up", Sets: 25, Reps: 10, LoggedAt: day},
	}
	if !unlockedIDs(Evaluate(chest, nil, evalTime))[IronChest] {
		t.Error("500 pressing reps should unlock iron_chest")
	}
}

func TestTonClub(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	logs := []models.ExerciseLog{
		{ExerciseName: "Deadlift", Sets: 5, Reps: 5, Weight: 200, LoggedAt: day}, // 5000
		{ExerciseName: "Deadlift", Sets: 5, Reps: 5, Weight: 200, LoggedAt: day}, // 5000
	}
	if !unlockedIDs(Evaluate(logs, nil, evalTime))[TonClub] {
		t.Error("10000 kg volume should unlock ton_club")
	}

	// Auto-saved session logs carry weight zero and contribute nothing.
	zeros := makeLogs(99, day)
	if unlockedIDs(Evaluate(zeros, nil, evalTime))[TonClub] {
		t.Error("zero-weight logs counted toward ton_club")
	}
}

func TestCurrentStreak(t *testing.T) {
	now := evalTime
	logOn := func(daysAgo int) models.ExerciseLog {
		return models.ExerciseLog{ExerciseName: "Row", LoggedAt: now.AddDate(0, 0, -daysAgo)}
	}

	// Today, yesterday, day before: streak of 3.
	logs := []models.ExerciseLog{logOn(0), logOn(1), logOn(2)}
	if got := CurrentStreak(logs, now); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
	if unlockedIDs(Evaluate(logs, nil, now))[ConsistencyKing] {
		t.Error("streak of 3 must not unlock consistency_king")
	}

	// Anchored at yesterday still counts.
	if got := CurrentStreak([]models.ExerciseLog{logOn(1), logOn(2)}, now); got != 2 {
		t.Errorf("yesterday-anchored streak = %d, want 2", got)
	}

	// Most recent activity two days back: no credit at all.
	if got := CurrentStreak([]models.ExerciseLog{logOn(2), logOn(3)}, now); got != 0 {
		t.Errorf("stale streak = %d, want 0", got)
	}

	// A two-day hole truncates the walk at the gap.
	gapped := []models.ExerciseLog{logOn(0), logOn(1), logOn(4), logOn(5)}
	if got := CurrentStreak(gapped, now); got != 2 {
		t.Errorf("gapped streak = %d, want 2", got)
	}

	// Seven consecutive days unlock the badge.
	var week []models.ExerciseLog
	for i := 0; i < 7; i++ {
		week = append(week, logOn(i))
	}
	if got := CurrentStreak(week, now); got != 7 {
		t.Errorf("week streak = %d, want 7", got)
	}
	if !unlockedIDs(Evaluate(week, nil, now))[ConsistencyKing] {
		t.Error("7-day streak should unlock consistency_king")
	}

	if got := CurrentStreak(nil, now); got != 0 {
		t.Errorf("empty streak = %d, want 0", got)
	}

	// Multiple logs on one day count once.
	doubled := []models.ExerciseLog{logOn(0), logOn(0), logOn(1)}
	if got := CurrentStreak(doubled, now); got != 2 {
		t.Errorf("deduped streak = %d, want 2", got)
	}
}

func TestWeekActivity(t *testing.T) {
	now := evalTime
	logs := []models.ExerciseLog{
		{ExerciseName: "Row", LoggedAt: now},
		{ExerciseName: "Row", LoggedAt: now.AddDate(0, 0, -3)},
	}
	week := WeekActivity(logs, now)
	if len(week) != 7 {
		t.Fatalf("week length = %d", len(week))
	}
	if !week[6].Active {
		t.Error("today should be active")
	}
	if !week[3].Active {
		t.Error("three days ago should be active")
	}
	if week[0].Active || week[5].Active {
		t.Error("inactive days marked active")
	}
	if week[6].Date != now.Format("2006-01-02") {
		t.Errorf("last entry date = %s, want today", week[6].Date)
	}
}

func TestCatalogIDs(t *testing.T) {
	ids := CatalogIDs()
	if len(ids) != 9 {
		t.Fatalf("catalog size = %d, want 9", len(ids))
	}
	if ids[0] != FirstStep || ids[len(ids)-1] != Centurion {
		t.Errorf("catalog order changed: %v", ids)
	}
}

package achievements

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/claude/ironflow/internal/models"
)

// Evaluate runs every catalog predicate over the full history and
// returns the badges that newly qualify, stamped with now. Ids already
// in unlocked are skipped without evaluation. Order-independent in the
// history; deterministic for identical inputs.
//
// Evaluation is always a full recomputation — thresholds are
// cumulative and a partial pass over appended logs would miss them.
func Evaluate(logs []models.ExerciseLog, unlocked map[string]bool, now time.Time) []models.Achievement {
	if len(logs) == 0 {
		return nil
	}
	e := &evaluation{logs: logs, now: now}

	var unlocks []models.Achievement
	for _, b := range catalog {
		if unlocked[b.id] {
			continue
		}
		if b.qualifies(e) {
			unlocks = append(unlocks, models.Achievement{ID: b.id, UnlockedAt: now})
		}
	}
	return unlocks
}

// CurrentStreak counts consecutive calendar days with at least one
// log, anchored at today or yesterday relative to now. A most-recent
// active day older than yesterday yields zero — no partial credit.
func CurrentStreak(logs []models.ExerciseLog, now time.Time) int {
	dates := distinctDatesDesc(logs)
	if len(dates) == 0 {
		return 0
	}

	today := now.Local().Format("2006-01-02")
	yesterday := now.Local().AddDate(0, 0, -1).Format("2006-01-02")
	if dates[0] != today && dates[0] != yesterday {
		return 0
	}

	streak := 1
	for i := 0; i < len(dates)-1; i++ {
		if dayGap(dates[i], dates[i+1]) == 1 {
			streak++
		} else {
			break
		}
	}
	return streak
}

// DayActivity marks whether a calendar date had any logged activity.
type DayActivity struct {
	Date   string `json:"date"`
	Active bool   `json:"active"`
}

// WeekActivity returns the last seven calendar days (oldest first)
// with their activity flags, for the streak strip on the history view.
func WeekActivity(logs []models.ExerciseLog, now time.Time) []DayActivity {
	active := make(map[string]bool, len(logs))
	for _, log := range logs {
		active[log.CalendarDate()] = true
	}

	week := make([]DayActivity, 7)
	for i := 0; i < 7; i++ {
		date := now.Local().AddDate(0, 0, i-6).Format("2006-01-02")
		week[i] = DayActivity{Date: date, Active: active[date]}
	}
	return week
}

// evaluation caches nothing but carries the inputs for predicates.
type evaluation struct {
	logs []models.ExerciseLog
	now  time.Time
}

func (e *evaluation) anyHour(match func(hour int) bool) bool {
	for _, log := range e.logs {
		if match(log.LoggedAt.Local().Hour()) {
			return true
		}
	}
	return false
}

func (e *evaluation) repsMatching(pattern *regexp.Regexp) int {
	total := 0
	for _, log := range e.logs {
		if pattern.MatchString(strings.ToLower(log.ExerciseName)) {
			total += log.TotalReps()
		}
	}
	return total
}

func (e *evaluation) totalVolume() float64 {
	var total float64
	for _, log := range e.logs {
		total += log.Volume()
	}
	return total
}

func (e *evaluation) maxDailyMinutes() int {
	daily := map[string]int{}
	max := 0
	for _, log := range e.logs {
		date := log.CalendarDate()
		daily[date] += log.DurationMinutes
		if daily[date] > max {
			max = daily[date]
		}
	}
	return max
}

func (e *evaluation) streak() int {
	return CurrentStreak(e.logs, e.now)
}

func distinctDatesDesc(logs []models.ExerciseLog) []string {
	seen := make(map[string]bool, len(logs))
	var dates []string
	for _, log := range logs {
		date := log.CalendarDate()
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// dayGap returns the whole-day difference between two YYYY-MM-DD
// strings, a >= b.
func dayGap(a, b string) int {
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return -1
	}
	return int(ta.Sub(tb).Hours() / 24)
}

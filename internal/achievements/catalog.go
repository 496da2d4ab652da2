// Package achievements evaluates badge predicates over the full
// exercise-log history. Badges unlock exactly once: the engine skips
// every id already in the unlocked set, which is what makes repeated
// evaluation idempotent. Nothing here ever revokes an unlock.
package achievements

import "regexp"

// Badge ids. The catalog is fixed; presentation (icons, localized
// titles) lives entirely outside this package.
const (
	FirstStep       = "first_step"
	EarlyBird       = "early_bird"
	NightOwl        = "night_owl"
	ConsistencyKing = "consistency_king"
	SquatMaster     = "squat_master"
	IronChest       = "iron_chest"
	TonClub         = "ton_club"
	Marathon        = "marathon"
	Centurion       = "centurion"
)

// Thresholds. Fixed, not configurable.
const (
	centurionLogs      = 100
	marathonMinutes    = 90
	squatMasterReps    = 1000
	ironChestReps      = 500
	tonClubVolume      = 10000
	consistencyDays    = 7
	earlyBirdFromHour  = 5
	earlyBirdUntilHour = 8
	nightOwlFromHour   = 22
	nightOwlUntilHour  = 2
)

var (
	legPattern   = regexp.MustCompile(`squat|leg press|lunge`)
	chestPattern = regexp.MustCompile(`bench|press|push up|fly|pec`)
)

// badge pairs an id with its predicate over an evaluation pass.
type badge struct {
	id        string
	qualifies func(*evaluation) bool
}

// catalog is evaluated in order; the order also fixes the order of
// returned unlocks.
var catalog = []badge{
	{FirstStep, func(e *evaluation) bool { return len(e.logs) > 0 }},
	{EarlyBird, func(e *evaluation) bool {
		return e.anyHour(func(h int) bool { return h >= earlyBirdFromHour && h < earlyBirdUntilHour })
	}},
	{NightOwl, func(e *evaluation) bool {
		return e.anyHour(func(h int) bool { return h >= nightOwlFromHour || h < nightOwlUntilHour })
	}},
	{ConsistencyKing, func(e *evaluation) bool { return e.streak() >= consistencyDays }},
	{SquatMaster, func(e *evaluation) bool { return e.repsMatching(legPattern) >= squatMasterReps }},
	{IronChest, func(e *evaluation) bool { return e.repsMatching(chestPattern) >= ironChestReps }},
	{TonClub, func(e *evaluation) bool { return e.totalVolume() >= tonClubVolume }},
	{Marathon, func(e *evaluation) bool { return e.maxDailyMinutes() >= marathonMinutes }},
	{Centurion, func(e *evaluation) bool { return len(e.logs) >= centurionLogs }},
}

// CatalogIDs returns every badge id in catalog order.
func CatalogIDs() []string {
	ids := make([]string, len(catalog))
	for i, b := range catalog {
		ids[i] = b.id
	}
	return ids
}

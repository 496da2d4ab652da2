package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/claude/ironflow/internal/models"
	"github.com/google/uuid"
)

// Step is the session phase.
type Step string

const (
	StepReady    Step = "ready"
	StepWork     Step = "work"
	StepRest     Step = "rest"
	StepComplete Step = "complete"
)

// DefaultRestSeconds is the rest countdown applied after every set.
const DefaultRestSeconds = 60

// fallbackExerciseMinutes is logged per exercise when the plan carries
// no duration to apportion.
const fallbackExerciseMinutes = 5

// Announcer receives coaching cues. Implementations must be
// non-blocking and best-effort; a failed announcement never affects
// the session.
type Announcer interface {
	Announce(text string)
}

// LogSink receives completed-exercise logs synthesized on save.
type LogSink interface {
	Append(log models.ExerciseLog)
}

// Runner drives a guided walkthrough of one workout day. At most one
// session is active at a time; Start discards any prior session.
//
// All methods are synchronous and never return errors to the caller:
// invalid calls (wrong step, no active session) are no-ops.
type Runner struct {
	mu        sync.Mutex
	announcer Announcer
	sink      LogSink
	now       func() time.Time

	active        bool
	planID        uuid.UUID
	dayIndex      int
	day           *models.WorkoutDay
	dayDuration   int
	exerciseIndex int
	currentSet    int
	step          Step

	work *Timer
	rest *Timer
}

// NewRunner creates an idle Runner.
func NewRunner(announcer Announcer, sink LogSink) *Runner {
	r := &Runner{
		announcer: announcer,
		sink:      sink,
		now:       time.Now,
	}
	r.work = NewCountUp()
	r.rest = NewCountdown(func() {
		r.announcer.Announce("Rest complete. Get ready.")
	})
	return r
}

// Start begins a session over the given day definition. Any prior
// session is discarded without log writes. A nil or empty day is a
// no-op.
func (r *Runner) Start(planID uuid.UUID, dayIndex int, day *models.WorkoutDay, dayDurationMinutes int) {
	if day == nil || len(day.Exercises) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimersLocked()

	r.active = true
	r.planID = planID
	r.dayIndex = dayIndex
	r.day = day
	r.dayDuration = dayDurationMinutes
	r.exerciseIndex = 0
	r.currentSet = 1
	r.step = StepReady
	r.work.Reset(0)
	r.rest.Reset(DefaultRestSeconds)

	r.announcer.Announce("Get ready for " + day.Exercises[0].Name)
}

// Advance applies the single user "next" action.
func (r *Runner) Advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || r.step == StepComplete {
		return
	}

	exercise := r.day.Exercises[r.exerciseIndex]
	targetSets := exercise.TargetSets()
	lastExercise := r.exerciseIndex == len(r.day.Exercises)-1

	switch r.step {
	case StepReady:
		r.step = StepWork
		r.work.Reset(0)
		r.work.Start()
		r.announcer.Announce("Start " + exercise.Name)

	case StepWork:
		r.work.Stop()
		switch {
		case r.currentSet < targetSets:
			r.step = StepRest
			r.rest.Reset(DefaultRestSeconds)
			r.rest.Start()
			r.announcer.Announce("Rest")
		case !lastExercise:
			r.step = StepRest
			r.rest.Reset(DefaultRestSeconds)
			r.rest.Start()
			r.announcer.Announce("Rest. Next exercise coming up.")
		default:
			r.step = StepComplete
			r.stopTimersLocked()
			r.announcer.Announce("Workout complete! Great job.")
		}

	case StepRest:
		r.rest.Stop()
		if r.currentSet < targetSets {
			r.currentSet++
			r.step = StepWork
			r.work.Reset(0)
			r.work.Start()
			r.announcer.Announce(fmt.Sprintf("Set %d", r.currentSet))
		} else {
			r.exerciseIndex++
			r.currentSet = 1
			r.step = StepReady
			r.announcer.Announce("Get ready for " + r.day.Exercises[r.exerciseIndex].Name)
		}
	}
}

// AdjustRestTimer shifts the remaining rest by delta seconds, clamped
// at zero. Only valid while resting.
func (r *Runner) AdjustRestTimer(deltaSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || r.step != StepRest {
		return
	}
	r.rest.Adjust(deltaSeconds)
}

// ToggleWorkTimer pauses or resumes the work clock. Only valid while
// working; the session step is unaffected.
func (r *Runner) ToggleWorkTimer() {
	r.mu.Lock()
	active := r.active && r.step == StepWork
	r.mu.Unlock()
	if active {
		r.work.Toggle()
	}
}

// ResetWorkTimer zeroes the work clock. Only valid while working.
func (r *Runner) ResetWorkTimer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || r.step != StepWork {
		return
	}
	r.work.Reset(0)
}

// Finish ends the session at any step. With save, one log is
// synthesized per exercise in the day (including unreached ones —
// saving records the whole day), weight zero and the plan duration
// split evenly across exercises. Without save the session is discarded
// with no writes.
func (r *Runner) Finish(save bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return
	}
	r.stopTimersLocked()

	if save {
		perExercise := fallbackExerciseMinutes
		if r.dayDuration > 0 {
			perExercise = r.dayDuration / len(r.day.Exercises)
		}
		now := r.now()
		for _, ex := range r.day.Exercises {
			r.sink.Append(models.ExerciseLog{
				ID:              uuid.New(),
				ExerciseName:    ex.Name,
				Sets:            ex.TargetSets(),
				Reps:            ex.TargetReps(),
				Weight:          0,
				DurationMinutes: perExercise,
				LoggedAt:        now,
			})
		}
	}

	r.active = false
	r.day = nil
}

func (r *Runner) stopTimersLocked() {
	r.work.Stop()
	r.rest.Stop()
}

// Snapshot is the session state exposed to the UI layer.
type Snapshot struct {
	PlanID         uuid.UUID `json:"plan_id"`
	DayIndex       int       `json:"day_index"`
	ExerciseIndex  int       `json:"exercise_index"`
	ExerciseName   string    `json:"exercise_name"`
	ExerciseReps   string    `json:"exercise_reps"`
	CurrentSet     int       `json:"current_set"`
	TargetSets     int       `json:"target_sets"`
	TotalExercises int       `json:"total_exercises"`
	Step           Step      `json:"step"`
	WorkSeconds    int       `json:"work_seconds"`
	RestSeconds    int       `json:"rest_seconds"`
	TimerRunning   bool      `json:"timer_running"`
	TotalSets      int       `json:"total_sets,omitempty"`
	TotalReps      int       `json:"total_reps,omitempty"`
}

// Snapshot returns the current session state, or false when no session
// is active. On completion it includes the day's set and rep totals
// for the summary screen.
func (r *Runner) Snapshot() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return Snapshot{}, false
	}
	exercise := r.day.Exercises[r.exerciseIndex]
	snap := Snapshot{
		PlanID:         r.planID,
		DayIndex:       r.dayIndex,
		ExerciseIndex:  r.exerciseIndex,
		ExerciseName:   exercise.Name,
		ExerciseReps:   exercise.Reps,
		CurrentSet:     r.currentSet,
		TargetSets:     exercise.TargetSets(),
		TotalExercises: len(r.day.Exercises),
		Step:           r.step,
		WorkSeconds:    r.work.Seconds(),
		RestSeconds:    r.rest.Seconds(),
		TimerRunning:   r.work.Running() || r.rest.Running(),
	}
	if r.step == StepComplete {
		for _, ex := range r.day.Exercises {
			snap.TotalSets += ex.TargetSets()
			snap.TotalReps += ex.TargetSets() * ex.TargetReps()
		}
	}
	return snap, true
}

// CurrentExercise returns the name of the exercise the session is on,
// or false when idle. Used to recompute the overload suggestion each
// time the session enters ready.
func (r *Runner) CurrentExercise() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return "", false
	}
	return r.day.Exercises[r.exerciseIndex].Name, true
}

package session

import (
	"sync"
	"time"
)

// Timer is a one-second tick counter. Count-up timers track elapsed
// work time; countdown timers track remaining rest time and fire
// onExpire once when they reach zero (without transitioning anything —
// the session stays where it is until the user acts).
//
// Stop guarantees no tick mutates the counter after it returns: ticks
// re-check the running flag under the same mutex Stop holds.
type Timer struct {
	mu        sync.Mutex
	seconds   int
	running   bool
	countDown bool
	stop      chan struct{}
	onExpire  func()
}

// NewCountUp returns a stopped count-up timer at zero.
func NewCountUp() *Timer {
	return &Timer{}
}

// NewCountdown returns a stopped countdown timer. onExpire may be nil.
func NewCountdown(onExpire func()) *Timer {
	return &Timer{countDown: true, onExpire: onExpire}
}

// Reset sets the counter without changing the running state.
func (t *Timer) Reset(seconds int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	t.seconds = seconds
}

// Start begins ticking. No-op if already running.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.stop = make(chan struct{})
	go t.loop(t.stop)
}

// Stop cancels the tick goroutine. Safe to call when not running.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Timer) stopLocked() {
	if !t.running {
		return
	}
	t.running = false
	close(t.stop)
	t.stop = nil
}

// Toggle pauses a running timer or resumes a stopped one.
func (t *Timer) Toggle() {
	t.mu.Lock()
	running := t.running
	t.mu.Unlock()
	if running {
		t.Stop()
	} else {
		t.Start()
	}
}

// Adjust adds delta seconds to the counter, clamping at zero. Hitting
// zero via Adjust does not fire onExpire; only a tick does.
func (t *Timer) Adjust(delta int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seconds += delta
	if t.seconds < 0 {
		t.seconds = 0
	}
}

// Seconds returns the current counter value.
func (t *Timer) Seconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

// Running reports whether the timer is ticking.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Timer) loop(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if expired := t.tick(stop); expired {
				if t.onExpire != nil {
					t.onExpire()
				}
				return
			}
		}
	}
}

// tick applies one second. Returns true when a countdown just expired,
// which also stops the timer.
func (t *Timer) tick(stop chan struct{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	// A stale tick racing Stop must not mutate the counter.
	if !t.running || t.stop != stop {
		return false
	}
	if !t.countDown {
		t.seconds++
		return false
	}
	if t.seconds > 0 {
		t.seconds--
	}
	if t.seconds == 0 {
		t.running = false
		t.stop = nil
		return true
	}
	return false
}

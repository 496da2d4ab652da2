// Package announce delivers coaching cues. Announcements are
// best-effort and fire-and-forget: a platform without speech gets a
// no-op, and a newer announcement supersedes any still-pending one so
// only the latest is ever audible.
package announce

import (
	"log/slog"
	"sync"
)

// Null swallows every announcement.
type Null struct{}

// Announce implements session.Announcer.
func (Null) Announce(string) {}

// Log writes announcements to the structured log. This is the server
// default: the UI layer decides whether to surface audio.
type Log struct {
	Logger *slog.Logger
}

// Announce implements session.Announcer.
func (l Log) Announce(text string) {
	l.Logger.Info("announce", "text", text)
}

// Speaker delivers announcements to a speech backend with
// cancel-then-speak semantics: a pending utterance is dropped when a
// newer one arrives, and Announce never blocks the caller.
type Speaker struct {
	speak func(text string)

	mu      sync.Mutex
	pending chan string
	closed  bool
}

// NewSpeaker starts a Speaker around the given speech function, which
// is invoked from a single background goroutine.
func NewSpeaker(speak func(text string)) *Speaker {
	s := &Speaker{
		speak:   speak,
		pending: make(chan string, 1),
	}
	go s.run()
	return s
}

// Announce queues text, replacing any announcement not yet spoken.
func (s *Speaker) Announce(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	// Drop the superseded utterance, then queue the new one.
	select {
	case <-s.pending:
	default:
	}
	s.pending <- text
}

// Close stops the background goroutine. Pending announcements are
// discarded.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.pending)
}

func (s *Speaker) run() {
	for text := range s.pending {
		s.speak(text)
	}
}

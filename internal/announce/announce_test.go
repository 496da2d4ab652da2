package announce

import (
	"sync"
	"testing"
	"time"
)

// TestSpeakerLatestWins: announcements queued while the backend is
// busy are superseded; only the newest pending one is spoken.
func TestSpeakerLatestWins(t *testing.T) {
	var mu sync.Mutex
	var spoken []string
	busy := make(chan struct{})

	s := NewSpeaker(func(text string) {
		<-busy
		mu.Lock()
		spoken = append(spoken, text)
		mu.Unlock()
	})
	defer s.Close()

	s.Announce("one")
	// "one" is picked up by the goroutine and blocks in speak; the next
	// two race into the pending slot and "two" is superseded.
	time.Sleep(20 * time.Millisecond)
	s.Announce("two")
	s.Announce("three")
	close(busy)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(spoken) != 2 || spoken[0] != "one" || spoken[1] != "three" {
		t.Errorf("spoken = %v, want [one three]", spoken)
	}
}

func TestSpeakerAnnounceAfterClose(t *testing.T) {
	s := NewSpeaker(func(string) {})
	s.Close()
	s.Announce("late") // must not panic
	s.Close()          // idempotent
}

func TestNullAndLogAnnouncers(t *testing.T) {
	Null{}.Announce("ignored")
}

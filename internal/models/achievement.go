package models

import "time"

// Achievement is a one-time badge unlock. Once an id is in the
// unlocked set it is never removed or re-evaluated.
type Achievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

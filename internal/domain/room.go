package domain

import (
	"fmt"
	"time"
)

type RoomStatus string

const (
	RoomStatusIdle    RoomStatus = "Idle"
	RoomStatusRunning RoomStatus = "Running"
)

// Room is one rentable room. Rooms are created once at state init and only
// ever reset, never destroyed.
type Room struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Status RoomStatus `json:"status"`
	// Accumulated is the time already banked from completed run segments of
	// the current session.
	Accumulated time.Duration `json:"accumulated"`
	// RunStartedAt marks the start of the current unbanked segment.
	// Set if and only if Status is Running.
	RunStartedAt *time.Time `json:"run_started_at,omitempty"`
	Items        []LineItem `json:"items"`
}

// LineItem is a purchase attached to a room's open session. Name and
// UnitPrice are snapshots taken at attach time; later catalog edits do not
// touch them.
type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

func (r *Room) Running() bool {
	return r.Status == RoomStatusRunning
}

// ElapsedAt returns the session's total elapsed time as of the given instant:
// banked segments plus the open segment, if any. A query before the open
// segment's start counts the segment as zero so the result never decreases.
func (r *Room) ElapsedAt(at time.Time) time.Duration {
	elapsed := r.Accumulated
	if r.Running() && r.RunStartedAt != nil && at.After(*r.RunStartedAt) {
		elapsed += at.Sub(*r.RunStartedAt)
	}
	return elapsed
}

// HasOpenSession reports whether there is anything to archive: banked or
// ticking time, or attached items.
func (r *Room) HasOpenSession(at time.Time) bool {
	return r.ElapsedAt(at) > 0 || len(r.Items) > 0
}

// FormatElapsed renders a duration as hh:mm:ss for display feeds.
func FormatElapsed(d time.Duration) string {
	s := int64(d / time.Second)
	h := s / 3600
	s -= h * 3600
	m := s / 60
	s -= m * 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

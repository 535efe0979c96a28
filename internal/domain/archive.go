package domain

import "time"

// ArchiveEntry is the immutable record of a closed session. Items is a copy
// taken at close; Total is computed once at creation and never recomputed.
type ArchiveEntry struct {
	ID       string        `json:"id"`
	RoomName string        `json:"room_name"`
	Items    []LineItem    `json:"items"`
	Elapsed  time.Duration `json:"elapsed"`
	Total    int64         `json:"total"`
	EndedAt  time.Time     `json:"ended_at"`
}

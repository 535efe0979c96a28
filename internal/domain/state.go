package domain

import (
	"fmt"
	"sync"
)

// State is the whole in-memory model handed to the engine: rooms, the product
// catalog, and the append-only archive. It is what the persistence layer loads
// and saves as a unit.
type State struct {
	Rooms    []*Room        `json:"rooms"`
	Products []Product      `json:"products"`
	Archive  []ArchiveEntry `json:"archive"`

	mu sync.Mutex
}

// Lock serializes engine operations. The engine itself is sequential; the
// lock exists because the HTTP and WebSocket drivers run concurrently.
func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

// Room returns the room with the given id, or nil.
func (s *State) Room(id string) *Room {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Product returns the catalog entry with the given id, or nil.
func (s *State) Product(id string) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// EnsureDefaults makes a loaded (or empty) state usable: the fixed set of
// rooms exists and an empty catalog gets the default products. Rooms loaded
// mid-run are left untouched so their open segment keeps ticking.
func (s *State) EnsureDefaults(roomCount int, namePrefix string) {
	if len(s.Rooms) != roomCount {
		s.Rooms = make([]*Room, 0, roomCount)
		for i := 1; i <= roomCount; i++ {
			s.Rooms = append(s.Rooms, &Room{
				ID:     fmt.Sprintf("room%d", i),
				Name:   fmt.Sprintf("%s %d", namePrefix, i),
				Status: RoomStatusIdle,
				Items:  []LineItem{},
			})
		}
	}
	if len(s.Products) == 0 {
		s.Products = DefaultProducts()
	}
	if s.Archive == nil {
		s.Archive = []ArchiveEntry{}
	}
}

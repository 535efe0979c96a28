package ports

import (
	"context"
	"time"

	"github.com/JonathanBek0501/auragameclub/internal/domain"
)

// StateStore persists the whole club state as a unit. The engine never calls
// it; the driver loads once at startup and saves after each mutating command.
type StateStore interface {
	Load(ctx context.Context) (*domain.State, error)
	Save(ctx context.Context, st *domain.State) error
}

// SessionService is the room lifecycle and billing engine.
type SessionService interface {
	Start(roomID string) (*domain.Room, error)
	Stop(roomID string) (*domain.Room, error)
	AttachItem(roomID, productID string, quantity int) (*domain.Room, error)
	RemoveItem(roomID, itemID string) (*domain.Room, error)
	End(roomID string) (*domain.ArchiveEntry, error)

	CurrentElapsed(roomID string, at time.Time) (time.Duration, error)
	CurrentTotal(roomID string, at time.Time) (int64, error)
	Snapshot(at time.Time) []RoomView
	Archive() []domain.ArchiveEntry
}

// RoomView is a room with its live-computed charges, as shown to displays.
type RoomView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Status      domain.RoomStatus `json:"status"`
	Elapsed     string            `json:"elapsed"`
	ElapsedMs   int64             `json:"elapsed_ms"`
	TimeCharge  int64             `json:"time_charge"`
	ItemsCharge int64             `json:"items_charge"`
	Total       int64             `json:"total"`
	Items       []domain.LineItem `json:"items"`
}

// CatalogService manages the product catalog.
type CatalogService interface {
	Products() []domain.Product
	Add(name string, unitPrice int64) (*domain.Product, error)
	Update(id, name string, unitPrice int64) (*domain.Product, error)
	Remove(id string) error
}

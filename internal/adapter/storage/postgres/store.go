package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JonathanBek0501/auragameclub/internal/domain"
	"github.com/JonathanBek0501/auragameclub/internal/ports"
)

// Durations are stored as nanoseconds so a reload reproduces elapsed time
// exactly; line items travel as a JSON column since they are only ever read
// and written as part of their room or archive entry.

type roomRecord struct {
	ID            string `gorm:"primaryKey"`
	Name          string
	Status        string
	AccumulatedNs int64
	RunStartedAt  *time.Time
	ItemsJSON     string
}

func (roomRecord) TableName() string { return "rooms" }

type productRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	UnitPrice int64
}

func (productRecord) TableName() string { return "products" }

type archiveRecord struct {
	ID        string `gorm:"primaryKey"`
	RoomName  string
	ItemsJSON string
	ElapsedNs int64
	Total     int64
	EndedAt   time.Time `gorm:"index"`
}

func (archiveRecord) TableName() string { return "archive_entries" }

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) ports.StateStore {
	return &Store{
		db:  db,
		log: log,
	}
}

func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	var rooms []roomRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	var products []productRecord
	if err := s.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	var entries []archiveRecord
	if err := s.db.WithContext(ctx).Order("ended_at").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}

	st := &domain.State{}
	for _, rec := range rooms {
		items, err := decodeItems(rec.ItemsJSON)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", rec.ID, err)
		}
		st.Rooms = append(st.Rooms, &domain.Room{
			ID:           rec.ID,
			Name:         rec.Name,
			Status:       domain.RoomStatus(rec.Status),
			Accumulated:  time.Duration(rec.AccumulatedNs),
			RunStartedAt: rec.RunStartedAt,
			Items:        items,
		})
	}
	for _, rec := range products {
		st.Products = append(st.Products, domain.Product{
			ID:        rec.ID,
			Name:      rec.Name,
			UnitPrice: rec.UnitPrice,
		})
	}
	for _, rec := range entries {
		items, err := decodeItems(rec.ItemsJSON)
		if err != nil {
			return nil, fmt.Errorf("archive entry %s: %w", rec.ID, err)
		}
		st.Archive = append(st.Archive, domain.ArchiveEntry{
			ID:       rec.ID,
			RoomName: rec.RoomName,
			Items:    items,
			Elapsed:  time.Duration(rec.ElapsedNs),
			Total:    rec.Total,
			EndedAt:  rec.EndedAt,
		})
	}
	return st, nil
}

func (s *Store) Save(ctx context.Context, st *domain.State) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, room := range st.Rooms {
			itemsJSON, err := encodeItems(room.Items)
			if err != nil {
				return fmt.Errorf("room %s: %w", room.ID, err)
			}
			rec := roomRecord{
				ID:            room.ID,
				Name:          room.Name,
				Status:        string(room.Status),
				AccumulatedNs: int64(room.Accumulated),
				RunStartedAt:  room.RunStartedAt,
				ItemsJSON:     itemsJSON,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to save room %s: %w", room.ID, err)
			}
		}

		// The catalog is small; replace it wholesale so deletes stick.
		if err := tx.Where("1 = 1").Delete(&productRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		for _, p := range st.Products {
			rec := productRecord{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to save product %s: %w", p.ID, err)
			}
		}

		// Archive entries are immutable; only new ones need inserting.
		for _, entry := range st.Archive {
			itemsJSON, err := encodeItems(entry.Items)
			if err != nil {
				return fmt.Errorf("archive entry %s: %w", entry.ID, err)
			}
			rec := archiveRecord{
				ID:        entry.ID,
				RoomName:  entry.RoomName,
				ItemsJSON: itemsJSON,
				ElapsedNs: int64(entry.Elapsed),
				Total:     entry.Total,
				EndedAt:   entry.EndedAt,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to save archive entry %s: %w", entry.ID, err)
			}
		}
		return nil
	})
}

func encodeItems(items []domain.LineItem) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode items: %w", err)
	}
	return string(data), nil
}

func decodeItems(raw string) ([]domain.LineItem, error) {
	items := []domain.LineItem{}
	if raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

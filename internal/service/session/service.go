package session

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/JonathanBek0501/auragameclub/internal/adapter/queue"
	"github.com/JonathanBek0501/auragameclub/internal/clock"
	"github.com/JonathanBek0501/auragameclub/internal/domain"
	"github.com/JonathanBek0501/auragameclub/internal/observability/telemetry"
	"github.com/JonathanBek0501/auragameclub/internal/ports"
	"github.com/JonathanBek0501/auragameclub/internal/service/billing"
)

// Service owns every room's lifecycle: idle/running transitions, elapsed-time
// banking across segments, attached items, and the archive-on-end transition.
// It mutates the state it was handed and leaves persistence to the driver.
type Service struct {
	state *domain.State
	calc  *billing.Calculator
	clock clock.Clock
	mq    queue.MessageQueue
	log   *zap.Logger
}

func NewService(state *domain.State, calc *billing.Calculator, clk clock.Clock, mq queue.MessageQueue, log *zap.Logger) ports.SessionService {
	return &Service{
		state: state,
		calc:  calc,
		clock: clk,
		mq:    mq,
		log:   log,
	}
}

func (s *Service) Start(roomID string) (*domain.Room, error) {
	s.state.Lock()
	defer s.state.Unlock()

	room := s.state.Room(roomID)
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	// At most one open segment per room.
	if room.Running() {
		return nil, domain.ErrRoomAlreadyRunning
	}

	now := s.clock.Now()
	room.Status = domain.RoomStatusRunning
	room.RunStartedAt = &now

	telemetry.ActiveRooms.Inc()
	telemetry.SegmentsStartedTotal.Inc()

	s.log.Info("Room started",
		zap.String("room_id", room.ID),
		zap.Time("at", now),
	)
	return room, nil
}

func (s *Service) Stop(roomID string) (*domain.Room, error) {
	s.state.Lock()
	defer s.state.Unlock()

	room := s.state.Room(roomID)
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	if !room.Running() {
		return nil, domain.ErrRoomNotRunning
	}

	now := s.clock.Now()
	s.bankSegment(room, now)

	s.log.Info("Room stopped",
		zap.String("room_id", room.ID),
		zap.Duration("accumulated", room.Accumulated),
	)
	return room, nil
}

// bankSegment closes the open segment at the given instant and returns the
// room to Idle. Caller holds the state lock and has checked Running.
func (s *Service) bankSegment(room *domain.Room, now time.Time) {
	if room.RunStartedAt != nil && now.After(*room.RunStartedAt) {
		room.Accumulated += now.Sub(*room.RunStartedAt)
	}
	room.RunStartedAt = nil
	room.Status = domain.RoomStatusIdle
	telemetry.ActiveRooms.Dec()
}

func (s *Service) AttachItem(roomID, productID string, quantity int) (*domain.Room, error) {
	s.state.Lock()
	defer s.state.Unlock()

	room := s.state.Room(roomID)
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product := s.state.Product(productID)
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.UnitPrice < 0 {
		return nil, domain.ErrInvalidPrice
	}

	// Snapshot name and price now; later catalog edits must not change what
	// this session is charged.
	room.Items = append(room.Items, domain.LineItem{
		ID:        uuid.New().String(),
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		Quantity:  quantity,
	})

	telemetry.ItemsAttachedTotal.Add(float64(quantity))

	s.log.Info("Item attached",
		zap.String("room_id", room.ID),
		zap.String("product", product.Name),
		zap.Int("quantity", quantity),
	)
	return room, nil
}

func (s *Service) RemoveItem(roomID, itemID string) (*domain.Room, error) {
	s.state.Lock()
	defer s.state.Unlock()

	room := s.state.Room(roomID)
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	for i, it := range room.Items {
		if it.ID == itemID {
			room.Items = append(room.Items[:i], room.Items[i+1:]...)
			return room, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (s *Service) End(roomID string) (*domain.ArchiveEntry, error) {
	s.state.Lock()
	defer s.state.Unlock()

	room := s.state.Room(roomID)
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}

	now := s.clock.Now()
	// Guard before any mutation: an untouched room produces no archive noise.
	if !room.HasOpenSession(now) {
		return nil, domain.ErrNothingToEnd
	}
	if room.Running() {
		s.bankSegment(room, now)
	}

	elapsed := room.Accumulated
	total := s.calc.SessionTotal(elapsed, room.Items)

	entry := domain.ArchiveEntry{
		ID:       uuid.New().String(),
		RoomName: room.Name,
		Items:    append([]domain.LineItem(nil), room.Items...),
		Elapsed:  elapsed,
		Total:    total,
		EndedAt:  now,
	}
	s.state.Archive = append(s.state.Archive, entry)

	// Reset for the next session. The archived copy is the only survivor.
	room.Items = []domain.LineItem{}
	room.Accumulated = 0
	room.Status = domain.RoomStatusIdle
	room.RunStartedAt = nil

	telemetry.SessionsEndedTotal.Inc()
	telemetry.RevenueTotal.Add(float64(total))

	s.publishEnded(&entry)

	s.log.Info("Session archived",
		zap.String("room_id", room.ID),
		zap.Duration("elapsed", elapsed),
		zap.Int64("total", total),
	)
	return &entry, nil
}

func (s *Service) publishEnded(entry *domain.ArchiveEntry) {
	event := map[string]interface{}{
		"event_type": "session.ended",
		"entry_id":   entry.ID,
		"room_name":  entry.RoomName,
		"elapsed_ms": entry.Elapsed.Milliseconds(),
		"total":      entry.Total,
		"currency":   s.calc.Currency(),
		"ended_at":   entry.EndedAt.UTC().Format(time.RFC3339),
	}
	if data, err := json.Marshal(event); err == nil {
		if err := s.mq.Publish("session.ended", data); err != nil {
			s.log.Warn("Failed to publish session event", zap.Error(err))
		}
	}
}

// CurrentElapsed is a pure query at an arbitrary instant, so displays can
// poll at any cadence and tests can pin the clock.
func (s *Service) CurrentElapsed(roomID string, at time.Time) (time.Duration, error) {
	s.state.Lock()
	defer s.state.Unlock()

	room := s.state.Room(roomID)
	if room == nil {
		return 0, domain.ErrRoomNotFound
	}
	return room.ElapsedAt(at), nil
}

func (s *Service) CurrentTotal(roomID string, at time.Time) (int64, error) {
	s.state.Lock()
	defer s.state.Unlock()

	room := s.state.Room(roomID)
	if room == nil {
		return 0, domain.ErrRoomNotFound
	}
	return s.calc.SessionTotal(room.ElapsedAt(at), room.Items), nil
}

// Snapshot returns every room with its charges computed at the given instant.
func (s *Service) Snapshot(at time.Time) []ports.RoomView {
	s.state.Lock()
	defer s.state.Unlock()

	views := make([]ports.RoomView, 0, len(s.state.Rooms))
	for _, room := range s.state.Rooms {
		elapsed := room.ElapsedAt(at)
		timeCharge := s.calc.TimeCharge(elapsed)
		itemsCharge := billing.ItemsCharge(room.Items)
		views = append(views, ports.RoomView{
			ID:          room.ID,
			Name:        room.Name,
			Status:      room.Status,
			Elapsed:     domain.FormatElapsed(elapsed),
			ElapsedMs:   elapsed.Milliseconds(),
			TimeCharge:  timeCharge,
			ItemsCharge: itemsCharge,
			Total:       timeCharge + itemsCharge,
			Items:       append([]domain.LineItem(nil), room.Items...),
		})
	}
	return views
}

// Archive returns the closed sessions in insertion order.
func (s *Service) Archive() []domain.ArchiveEntry {
	s.state.Lock()
	defer s.state.Unlock()

	return append([]domain.ArchiveEntry(nil), s.state.Archive...)
}

package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/JonathanBek0501/auragameclub/internal/domain"
	"github.com/JonathanBek0501/auragameclub/internal/observability/telemetry"
	"github.com/JonathanBek0501/auragameclub/internal/ports"
)

// Saver persists the state after each mutating command. The engine never
// saves on its own; this keeps persistence a driver concern and the engine a
// pure state-transition function set.
type Saver struct {
	store ports.StateStore
	state *domain.State
	log   *zap.Logger
}

func NewSaver(store ports.StateStore, state *domain.State, log *zap.Logger) *Saver {
	return &Saver{
		store: store,
		state: state,
		log:   log,
	}
}

// Persist snapshots the state under its lock. A failure leaves the in-memory
// state untouched and is surfaced to the caller.
func (s *Saver) Persist(ctx context.Context) error {
	s.state.Lock()
	defer s.state.Unlock()

	if err := s.store.Save(ctx, s.state); err != nil {
		telemetry.StateSaveErrors.Inc()
		s.log.Error("Failed to persist state", zap.Error(err))
		return err
	}
	return nil
}

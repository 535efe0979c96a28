package mocks

import (
	"context"

	"github.com/JonathanBek0501/auragameclub/internal/domain"
)

// MockStateStore is a mock implementation of StateStore
type MockStateStore struct {
	LoadFunc func(ctx context.Context) (*domain.State, error)
	SaveFunc func(ctx context.Context, st *domain.State) error

	SaveCalls int
}

func (m *MockStateStore) Load(ctx context.Context) (*domain.State, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return &domain.State{}, nil
}

func (m *MockStateStore) Save(ctx context.Context, st *domain.State) error {
	m.SaveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, st)
	}
	return nil
}

// Package jsonfile persists the whole club state as one JSON snapshot on
// disk. It is the kiosk/dev storage driver; server deploys use postgres.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/JonathanBek0501/auragameclub/internal/domain"
	"github.com/JonathanBek0501/auragameclub/internal/ports"
)

type Store struct {
	path string
	log  *zap.Logger
}

func NewStore(path string, log *zap.Logger) ports.StateStore {
	return &Store{
		path: path,
		log:  log,
	}
}

// Load reads the snapshot. A missing file is a fresh install and yields an
// empty state for the caller to seed.
func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Info("No state file, starting fresh", zap.String("path", s.path))
			return &domain.State{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st domain.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to decode state file: %w", err)
	}
	return &st, nil
}

// Save writes to a temp file and renames it into place so a crash mid-write
// cannot leave a truncated snapshot.
func (s *Store) Save(ctx context.Context, st *domain.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

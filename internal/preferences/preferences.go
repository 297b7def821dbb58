// Package preferences stores display settings of the presentation shell.
package preferences

import (
	"context"
	"fmt"
	"sync"

	"github.com/swisscitizen/prep/internal/kvstore"
)

type Service struct {
	store kvstore.Store
	mu    sync.Mutex
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store}
}

// DarkMode returns the stored flag and whether it was ever set. Clients
// follow the system colour scheme while it is unset.
func (s *Service) DarkMode(ctx context.Context) (on, set bool, err error) {
	set, err = kvstore.Load(ctx, s.store, kvstore.KeyDarkMode, &on)
	if err != nil {
		return false, false, fmt.Errorf("loading dark mode: %w", err)
	}
	return on, set, nil
}

func (s *Service) SetDarkMode(ctx context.Context, on bool) error {
	if err := s.store.Put(ctx, kvstore.KeyDarkMode, on); err != nil {
		return fmt.Errorf("saving dark mode: %w", err)
	}
	return nil
}

// ToggleDarkMode flips the flag and returns the new value. An unset flag
// counts as off.
func (s *Service) ToggleDarkMode(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	on, _, err := s.DarkMode(ctx)
	if err != nil {
		return false, err
	}
	if err := s.SetDarkMode(ctx, !on); err != nil {
		return false, err
	}
	return !on, nil
}

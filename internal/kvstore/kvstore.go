// Package kvstore persists named JSON documents. Every write replaces the
// whole document stored under a key; there are no cross-key transactions.
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Document keys shared by the services.
const (
	KeyFacts             = "facts"
	KeyQuizResults       = "quiz-results"
	KeyExploredBuildings = "explored-buildings"
	KeyDarkMode          = "darkMode"
)

type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// Load decodes key into dest and reports whether the key existed. A missing
// key is not an error.
func Load(ctx context.Context, s Store, key string, dest any) (bool, error) {
	err := s.Get(ctx, key, dest)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

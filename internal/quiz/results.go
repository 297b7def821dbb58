package quiz

import (
	"context"
	"fmt"

	"github.com/swisscitizen/prep/internal/kvstore"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

// Results is the append-only log of finished quiz runs.
type Results struct {
	store kvstore.Store
}

func NewResults(store kvstore.Store) *Results {
	return &Results{store: store}
}

func (r *Results) All(ctx context.Context) ([]swisscitizen.QuizResult, error) {
	all := []swisscitizen.QuizResult{}
	if _, err := kvstore.Load(ctx, r.store, kvstore.KeyQuizResults, &all); err != nil {
		return nil, fmt.Errorf("loading quiz results: %w", err)
	}
	return all, nil
}

func (r *Results) Append(ctx context.Context, res swisscitizen.QuizResult) error {
	all, err := r.All(ctx)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, kvstore.KeyQuizResults, append(all, res)); err != nil {
		return fmt.Errorf("saving quiz results: %w", err)
	}
	return nil
}

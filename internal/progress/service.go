package progress

import (
	"context"
	"fmt"

	"github.com/swisscitizen/prep/internal/swisscitizen"
)

type FactSource interface {
	All(ctx context.Context) ([]swisscitizen.Fact, error)
}

type ResultSource interface {
	All(ctx context.Context) ([]swisscitizen.QuizResult, error)
}

type ExploredSource interface {
	Explored(ctx context.Context) ([]int, error)
}

// Service reads the three documents the dashboard depends on.
type Service struct {
	facts    FactSource
	results  ResultSource
	explored ExploredSource
}

func NewService(facts FactSource, results ResultSource, explored ExploredSource) *Service {
	return &Service{facts: facts, results: results, explored: explored}
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	facts, err := s.facts.All(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading facts: %w", err)
	}
	results, err := s.results.All(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading quiz results: %w", err)
	}
	explored, err := s.explored.Explored(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading explored buildings: %w", err)
	}
	return Compute(facts, results, explored), nil
}

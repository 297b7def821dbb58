// Package places serves the building catalog behind the interactive map and
// records which buildings the user has explored.
package places

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/swisscitizen/prep/internal/kvstore"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

var ErrNotFound = errors.New("building not found")

const earthRadiusKm = 6371.0

type Service struct {
	buildings []swisscitizen.Building
	store     kvstore.Store

	mu sync.Mutex
}

func NewService(buildings []swisscitizen.Building, store kvstore.Store) *Service {
	return &Service{buildings: buildings, store: store}
}

// Filter returns the buildings of one category; empty or "all" returns every building.
func (s *Service) Filter(category string) []swisscitizen.Building {
	out := []swisscitizen.Building{}
	for _, b := range s.buildings {
		if category == "" || category == swisscitizen.All || string(b.Category) == category {
			out = append(out, b)
		}
	}
	return out
}

func (s *Service) Get(id int) (swisscitizen.Building, error) {
	i := slices.IndexFunc(s.buildings, func(b swisscitizen.Building) bool { return b.ID == id })
	if i < 0 {
		return swisscitizen.Building{}, ErrNotFound
	}
	return s.buildings[i], nil
}

// Explored returns the ids the user has explored, in the order they were first marked.
func (s *Service) Explored(ctx context.Context) ([]int, error) {
	ids := []int{}
	if _, err := kvstore.Load(ctx, s.store, kvstore.KeyExploredBuildings, &ids); err != nil {
		return nil, fmt.Errorf("loading explored buildings: %w", err)
	}
	return ids, nil
}

// MarkExplored records id as explored. Marking twice is a no-op; the
// returned bool reports whether the id was new.
func (s *Service) MarkExplored(ctx context.Context, id int) (bool, error) {
	if _, err := s.Get(id); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.Explored(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(ids, id) {
		return false, nil
	}
	if err := s.store.Put(ctx, kvstore.KeyExploredBuildings, append(ids, id)); err != nil {
		return false, fmt.Errorf("saving explored buildings: %w", err)
	}
	return true, nil
}

type Distance struct {
	swisscitizen.Building
	Km float64 `json:"distanceKm"`
}

// Nearest returns up to n buildings ordered by great-circle distance from p.
// n <= 0 returns all of them.
func (s *Service) Nearest(p swisscitizen.Position, n int) []Distance {
	out := make([]Distance, 0, len(s.buildings))
	for _, b := range s.buildings {
		out = append(out, Distance{Building: b, Km: Haversine(p, b.Position)})
	}
	slices.SortStableFunc(out, func(a, b Distance) int {
		switch {
		case a.Km < b.Km:
			return -1
		case a.Km > b.Km:
			return 1
		}
		return 0
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Haversine is the great-circle distance between a and b in kilometres.
func Haversine(a, b swisscitizen.Position) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

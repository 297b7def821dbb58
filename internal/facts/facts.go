// Package facts manages the user's study facts stored under the "facts" key.
package facts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/swisscitizen/prep/internal/kvstore"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

var (
	ErrNotFound        = errors.New("fact not found")
	ErrIncompleteDraft = errors.New("title and content are required")
)

// Draft is the add/edit form. Tags is the raw comma-separated input.
type Draft struct {
	Title      string                  `json:"title"`
	Content    string                  `json:"content"`
	Category   swisscitizen.Category   `json:"category"`
	Difficulty swisscitizen.Difficulty `json:"difficulty"`
	Tags       string                  `json:"tags"`
}

func (d Draft) complete() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Content) != ""
}

type Filter struct {
	Text     string
	Category string
}

func (f Filter) match(fact swisscitizen.Fact) bool {
	if f.Category != "" && f.Category != swisscitizen.All && string(fact.Category) != f.Category {
		return false
	}
	term := strings.ToLower(f.Text)
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(fact.Title), term) ||
		strings.Contains(strings.ToLower(fact.Content), term) {
		return true
	}
	return slices.ContainsFunc(fact.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), term)
	})
}

// SplitTags turns "a, b,,c " into [a b c].
func SplitTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Repository owns the "facts" document. mu is held from load to save so
// each operation reads and rewrites the whole collection on its own.
type Repository struct {
	store  kvstore.Store
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewRepository(store kvstore.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger, now: time.Now}
}

// load returns the stored collection, seeding the sample facts when the key
// has never been written. Callers hold mu.
func (r *Repository) load(ctx context.Context) ([]swisscitizen.Fact, error) {
	var all []swisscitizen.Fact
	ok, err := kvstore.Load(ctx, r.store, kvstore.KeyFacts, &all)
	if err != nil {
		return nil, fmt.Errorf("loading facts: %w", err)
	}
	if ok {
		return all, nil
	}

	all = swisscitizen.SampleFacts()
	if err := r.save(ctx, all); err != nil {
		return nil, err
	}
	r.logger.Info("seeded sample facts", "count", len(all))
	return all, nil
}

func (r *Repository) save(ctx context.Context, all []swisscitizen.Fact) error {
	if all == nil {
		all = []swisscitizen.Fact{}
	}
	if err := r.store.Put(ctx, kvstore.KeyFacts, all); err != nil {
		return fmt.Errorf("saving facts: %w", err)
	}
	return nil
}

// All returns the whole collection in stored order.
func (r *Repository) All(ctx context.Context) ([]swisscitizen.Fact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *Repository) List(ctx context.Context, f Filter) ([]swisscitizen.Fact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []swisscitizen.Fact{}
	for _, fact := range all {
		if f.match(fact) {
			out = append(out, fact)
		}
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (swisscitizen.Fact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return swisscitizen.Fact{}, err
	}
	i := slices.IndexFunc(all, func(f swisscitizen.Fact) bool { return f.ID == id })
	if i < 0 {
		return swisscitizen.Fact{}, ErrNotFound
	}
	return all[i], nil
}

// Add appends a new fact. An incomplete draft leaves the collection untouched
// and returns ErrIncompleteDraft.
func (r *Repository) Add(ctx context.Context, d Draft) (swisscitizen.Fact, error) {
	if !d.complete() {
		return swisscitizen.Fact{}, ErrIncompleteDraft
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return swisscitizen.Fact{}, err
	}

	now := r.now()
	fact := fromDraft(d)
	fact.ID = nextID(all, now)
	fact.CreatedAt = now.UTC()

	if err := r.save(ctx, append(all, fact)); err != nil {
		return swisscitizen.Fact{}, err
	}
	return fact, nil
}

// Update replaces the editable fields of a fact, keeping its ID and creation time.
func (r *Repository) Update(ctx context.Context, id int64, d Draft) (swisscitizen.Fact, error) {
	if !d.complete() {
		return swisscitizen.Fact{}, ErrIncompleteDraft
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return swisscitizen.Fact{}, err
	}
	i := slices.IndexFunc(all, func(f swisscitizen.Fact) bool { return f.ID == id })
	if i < 0 {
		return swisscitizen.Fact{}, ErrNotFound
	}

	updated := fromDraft(d)
	updated.ID = all[i].ID
	updated.CreatedAt = all[i].CreatedAt
	all[i] = updated

	if err := r.save(ctx, all); err != nil {
		return swisscitizen.Fact{}, err
	}
	return updated, nil
}

// Remove deletes every fact with the given id. Callers confirm beforehand.
func (r *Repository) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(all, func(f swisscitizen.Fact) bool { return f.ID == id })
	return r.save(ctx, kept)
}

func fromDraft(d Draft) swisscitizen.Fact {
	f := swisscitizen.Fact{
		Title:      d.Title,
		Content:    d.Content,
		Category:   d.Category,
		Difficulty: d.Difficulty,
		Tags:       SplitTags(d.Tags),
	}
	if f.Category == "" {
		f.Category = swisscitizen.CategoryHistory
	}
	if f.Difficulty == "" {
		f.Difficulty = swisscitizen.DifficultyMedium
	}
	return f
}

// nextID uses the creation time in milliseconds, bumped past the highest
// existing id so ids stay unique and increasing.
func nextID(all []swisscitizen.Fact, now time.Time) int64 {
	id := now.UnixMilli()
	for _, f := range all {
		if f.ID >= id {
			id = f.ID + 1
		}
	}
	return id
}

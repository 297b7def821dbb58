package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swisscitizen/prep/internal/facts"
	"github.com/swisscitizen/prep/internal/handler/health"
	"github.com/swisscitizen/prep/internal/kvstore"
	"github.com/swisscitizen/prep/internal/places"
	"github.com/swisscitizen/prep/internal/preferences"
	"github.com/swisscitizen/prep/internal/progress"
	"github.com/swisscitizen/prep/internal/quiz"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

type testEnv struct {
	handler http.Handler
	deps    Deps
	store   kvstore.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kvstore.NewMemory()
	broker := NewBroker()

	factRepo := facts.NewRepository(store, logger)
	results := quiz.NewResults(store)
	placeSvc := places.NewService(swisscitizen.Buildings(), store)
	engine := quiz.NewEngine(quiz.Config{
		Questions: swisscitizen.Questions(),
		Results:   results,
		Logger:    logger,
		Observer:  broker,
		Shuffler:  rand.New(rand.NewPCG(1, 2)),
	})
	t.Cleanup(engine.Reset)

	d := Deps{
		Logger:      logger,
		Facts:       factRepo,
		Quiz:        engine,
		Results:     results,
		Progress:    progress.NewService(factRepo, results, placeSvc),
		Places:      placeSvc,
		Preferences: preferences.NewService(store),
		Broker:      broker,
		Topics:      swisscitizen.Topics(),
		Checks: map[string]health.Checker{
			"sqlite": health.CheckerFunc(store.Ping),
		},
	}
	return &testEnv{handler: NewHandler(d), deps: d, store: store}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", nil)
	wantStatus(t, rec, http.StatusOK)
	body := decode[map[string]struct{ Status string }](t, rec)
	if body["sqlite"].Status != "ok" {
		t.Errorf("sqlite = %q, want ok", body["sqlite"].Status)
	}
}

func TestTopics(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/topics", nil)
	wantStatus(t, rec, http.StatusOK)
	topics := decode[[]swisscitizen.Topic](t, rec)
	if len(topics) != 6 {
		t.Errorf("got %d topics, want 6", len(topics))
	}
}

func TestPreferences(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/preferences", nil)
	wantStatus(t, rec, http.StatusOK)
	if got := decode[PreferencesResponse](t, rec); got.DarkMode != nil {
		t.Errorf("darkMode = %v, want null before first choice", *got.DarkMode)
	}

	rec = env.do(t, http.MethodPost, "/api/preferences/dark-mode/toggle", nil)
	wantStatus(t, rec, http.StatusOK)
	if got := decode[PreferencesResponse](t, rec); got.DarkMode == nil || !*got.DarkMode {
		t.Error("toggle from unset should enable dark mode")
	}

	rec = env.do(t, http.MethodPut, "/api/preferences/dark-mode", DarkModeRequest{Enabled: new(bool)})
	wantStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/api/preferences", nil)
	if got := decode[PreferencesResponse](t, rec); got.DarkMode == nil || *got.DarkMode {
		t.Errorf("darkMode = %v, want false", got.DarkMode)
	}

	rec = env.do(t, http.MethodPut, "/api/preferences/dark-mode", map[string]any{})
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.deps.Places.MarkExplored(ctx, 1); err != nil {
		t.Fatalf("MarkExplored: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/api/progress", nil)
	wantStatus(t, rec, http.StatusOK)
	snap := decode[progress.Snapshot](t, rec)

	if snap.TotalFacts != 3 {
		t.Errorf("totalFacts = %d, want 3 seeded facts", snap.TotalFacts)
	}
	if snap.ExploredBuildings != 1 {
		t.Errorf("exploredBuildings = %d, want 1", snap.ExploredBuildings)
	}
	if len(snap.Achievements) != len(progress.Achievements) {
		t.Errorf("got %d achievements", len(snap.Achievements))
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/nope", nil)
	wantStatus(t, rec, http.StatusNotFound)
}

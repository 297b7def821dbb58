// Package app wires the store and the services shared by the HTTP server and
// the command-line tool.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/swisscitizen/prep/internal/config"
	"github.com/swisscitizen/prep/internal/database"
	"github.com/swisscitizen/prep/internal/facts"
	"github.com/swisscitizen/prep/internal/handler/health"
	"github.com/swisscitizen/prep/internal/kvstore"
	"github.com/swisscitizen/prep/internal/places"
	"github.com/swisscitizen/prep/internal/preferences"
	"github.com/swisscitizen/prep/internal/progress"
	"github.com/swisscitizen/prep/internal/quiz"
	"github.com/swisscitizen/prep/internal/server"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

type App struct {
	Logger      *slog.Logger
	Store       kvstore.Store
	Facts       *facts.Repository
	Results     *quiz.Results
	Quiz        *quiz.Engine
	Progress    *progress.Service
	Places      *places.Service
	Preferences *preferences.Service
	Broker      *server.Broker

	db *sql.DB
}

// Open connects to the SQLite store at cfg.DBPath and builds the services.
// Close releases the database.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}
	store, err := kvstore.NewSQLite(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising store: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	a := New(store, cfg, logger)
	a.db = db
	return a, nil
}

// New builds the services on top of an existing store.
func New(store kvstore.Store, cfg *config.Config, logger *slog.Logger) *App {
	broker := server.NewBroker()
	results := quiz.NewResults(store)
	factRepo := facts.NewRepository(store, logger)
	placeSvc := places.NewService(swisscitizen.Buildings(), store)

	return &App{
		Logger:  logger,
		Store:   store,
		Facts:   factRepo,
		Results: results,
		Quiz: quiz.NewEngine(quiz.Config{
			Questions: swisscitizen.Questions(),
			Results:   results,
			Logger:    logger,
			Observer:  broker,
			Seconds:   cfg.QuizSeconds,
			Tick:      cfg.QuizTick,
		}),
		Progress:    progress.NewService(factRepo, results, placeSvc),
		Places:      placeSvc,
		Preferences: preferences.NewService(store),
		Broker:      broker,
	}
}

func (a *App) Close() error {
	a.Quiz.Reset()
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// ServerDeps exposes the services to the HTTP layer.
func (a *App) ServerDeps(spaDir string) server.Deps {
	return server.Deps{
		Logger:      a.Logger,
		Facts:       a.Facts,
		Quiz:        a.Quiz,
		Results:     a.Results,
		Progress:    a.Progress,
		Places:      a.Places,
		Preferences: a.Preferences,
		Broker:      a.Broker,
		Topics:      swisscitizen.Topics(),
		Checks: map[string]health.Checker{
			"sqlite":  health.CheckerFunc(a.Store.Ping),
			"catalog": health.CheckerFunc(func(context.Context) error { return swisscitizen.CheckCatalog() }),
		},
		SPADir: spaDir,
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *App) Serve(ctx context.Context, addr, spaDir string) error {
	srv := server.New(addr, a.ServerDeps(spaDir))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("starting http server", "addr", addr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

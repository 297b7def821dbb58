package server

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/swisscitizen/prep/internal/handler/health"
)

func addRoutes(r chi.Router, d Deps) {
	logger := d.Logger

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("SwissCitizen Prep API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, d.Checks).Routes())

	r.Route("/api", func(r chi.Router) {
		r.Get("/topics", handleTopics(d.Topics))

		r.Route("/facts", func(r chi.Router) {
			r.Get("/", handleListFacts(logger, d.Facts))
			r.Post("/", handleCreateFact(logger, d.Facts))
			r.Get("/export", handleExportFacts(logger, d.Facts))
			r.Post("/import", handleImportFacts(logger, d.Facts))
			r.Get("/{id}", handleGetFact(logger, d.Facts))
			r.Put("/{id}", handleUpdateFact(logger, d.Facts))
			r.Delete("/{id}", handleDeleteFact(logger, d.Facts))
		})

		r.Route("/quiz", func(r chi.Router) {
			r.Get("/", handleQuizState(d.Quiz))
			r.Get("/questions", handleQuizQuestions(d.Quiz))
			r.Put("/config", handleQuizConfigure(logger, d.Quiz))
			r.Post("/start", handleQuizStart(logger, d.Quiz))
			r.Post("/select", handleQuizSelect(logger, d.Quiz))
			r.Post("/confirm", handleQuizConfirm(logger, d.Quiz))
			r.Post("/next", handleQuizNext(logger, d.Quiz))
			r.Post("/reset", handleQuizReset(d.Quiz))
			r.Get("/events", handleQuizEvents(d.Broker))
			r.Get("/results", handleQuizResults(logger, d.Results))
		})

		r.Get("/progress", handleProgress(logger, d.Progress))

		r.Route("/buildings", func(r chi.Router) {
			r.Get("/", handleListBuildings(d.Places))
			r.Get("/nearest", handleNearestBuildings(d.Places))
			r.Get("/explored", handleExploredBuildings(logger, d.Places))
			r.Get("/{id}", handleGetBuilding(logger, d.Places))
			r.Post("/{id}/explore", handleExploreBuilding(logger, d.Places))
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", handleGetPreferences(logger, d.Preferences))
			r.Put("/dark-mode", handleSetDarkMode(logger, d.Preferences))
			r.Post("/dark-mode/toggle", handleToggleDarkMode(logger, d.Preferences))
		})
	})

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}

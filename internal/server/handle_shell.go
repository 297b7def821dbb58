package server

import (
	"log/slog"
	"net/http"

	"github.com/swisscitizen/prep/internal/preferences"
	"github.com/swisscitizen/prep/internal/progress"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

type PreferencesResponse struct {
	DarkMode *bool `json:"darkMode" description:"Null until the user picks a mode; clients then follow the system setting."`
}

type DarkModeRequest struct {
	Enabled *bool `json:"enabled"`
}

func handleTopics(topics []swisscitizen.Topic) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, topics)
	}
}

func handleProgress(logger *slog.Logger, svc *progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Snapshot(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleGetPreferences(logger *slog.Logger, svc *preferences.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		on, set, err := svc.DarkMode(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		var resp PreferencesResponse
		if set {
			resp.DarkMode = &on
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleSetDarkMode(logger *slog.Logger, svc *preferences.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DarkModeRequest
		if err := readJSON(r, &req); err != nil || req.Enabled == nil {
			writeError(w, http.StatusBadRequest, "enabled is required")
			return
		}
		if err := svc.SetDarkMode(r.Context(), *req.Enabled); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, PreferencesResponse{DarkMode: req.Enabled})
	}
}

func handleToggleDarkMode(logger *slog.Logger, svc *preferences.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		on, err := svc.ToggleDarkMode(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, PreferencesResponse{DarkMode: &on})
	}
}

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/swisscitizen/prep/internal/facts"
	"github.com/swisscitizen/prep/internal/places"
	"github.com/swisscitizen/prep/internal/quiz"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps domain errors to statuses. Anything unknown is
// logged and reported as 500.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, facts.ErrNotFound), errors.Is(err, places.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, facts.ErrIncompleteDraft),
		errors.Is(err, quiz.ErrInvalidFilter),
		errors.Is(err, quiz.ErrInvalidAnswer),
		errors.Is(err, quiz.ErrNoSelection):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, facts.ErrMalformedImport):
		writeError(w, http.StatusBadRequest, importFailedMessage)
	case errors.Is(err, quiz.ErrNoQuestions):
		writeError(w, http.StatusConflict, quiz.NoQuestionsMessage)
	case errors.Is(err, quiz.ErrInvalidState):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// intParam parses a numeric chi URL parameter.
func intParam(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return v, err == nil
}

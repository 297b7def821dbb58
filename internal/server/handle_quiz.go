package server

import (
	"log/slog"
	"net/http"

	"github.com/swisscitizen/prep/internal/quiz"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

type QuizConfigRequest struct {
	Category   string `json:"category" description:"Category or \"all\"."`
	Difficulty string `json:"difficulty" description:"Difficulty or \"all\"."`
}

type QuizStartRequest struct {
	Timed bool `json:"timed"`
}

type QuizSelectRequest struct {
	Answer *int `json:"answer"`
}

type QuestionCountResponse struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Available  int    `json:"available"`
}

type QuizNextResponse struct {
	View   quiz.View                `json:"view"`
	Result *swisscitizen.QuizResult `json:"result,omitempty"`
}

func handleQuizState(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, engine.View())
	}
}

// handleQuizQuestions counts the catalog questions matching the given
// filters without touching the engine configuration.
func handleQuizQuestions(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		resp := QuestionCountResponse{
			Category:   orAll(q.Get("category")),
			Difficulty: orAll(q.Get("difficulty")),
		}
		resp.Available = engine.Count(resp.Category, resp.Difficulty)
		writeJSON(w, http.StatusOK, resp)
	}
}

func orAll(v string) string {
	if v == "" {
		return swisscitizen.All
	}
	return v
}

func handleQuizConfigure(logger *slog.Logger, engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuizConfigRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := engine.Configure(req.Category, req.Difficulty); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, engine.View())
	}
}

func handleQuizStart(logger *slog.Logger, engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuizStartRequest
		if r.ContentLength != 0 {
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}
		if err := engine.Start(req.Timed); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, engine.View())
	}
}

func handleQuizSelect(logger *slog.Logger, engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuizSelectRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Answer == nil {
			writeError(w, http.StatusBadRequest, "answer is required")
			return
		}
		if err := engine.Select(*req.Answer); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, engine.View())
	}
}

func handleQuizConfirm(logger *slog.Logger, engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := engine.Confirm(); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, engine.View())
	}
}

func handleQuizNext(logger *slog.Logger, engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := engine.Advance(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, QuizNextResponse{View: engine.View(), Result: res})
	}
}

func handleQuizReset(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.Reset()
		writeJSON(w, http.StatusOK, engine.View())
	}
}

func handleQuizResults(logger *slog.Logger, results *quiz.Results) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := results.All(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

package server

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/crypto/blake2b"

	"github.com/swisscitizen/prep/internal/facts"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

const (
	importFailedMessage = "Fehler beim Importieren der Datei!"
	maxImportBytes      = 10 << 20
	digestHeader        = "X-Content-Blake2b"
)

type FactRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Tags       string `json:"tags" description:"Comma-separated tags."`
}

type ImportResponse struct {
	Imported int `json:"imported"`
}

func (req FactRequest) draft() (facts.Draft, error) {
	d := facts.Draft{
		Title:      req.Title,
		Content:    req.Content,
		Category:   swisscitizen.Category(req.Category),
		Difficulty: swisscitizen.Difficulty(req.Difficulty),
		Tags:       req.Tags,
	}
	if d.Category != "" && !d.Category.Valid() {
		return d, fmt.Errorf("unknown category %q", req.Category)
	}
	if d.Difficulty != "" && !d.Difficulty.Valid() {
		return d, fmt.Errorf("unknown difficulty %q", req.Difficulty)
	}
	return d, nil
}

func handleListFacts(logger *slog.Logger, repo *facts.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := repo.List(r.Context(), facts.Filter{
			Text:     q.Get("q"),
			Category: q.Get("category"),
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleGetFact(logger *slog.Logger, repo *facts.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid fact id")
			return
		}
		f, err := repo.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

func handleCreateFact(logger *slog.Logger, repo *facts.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FactRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		d, err := req.draft()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		f, err := repo.Add(r.Context(), d)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, f)
	}
}

func handleUpdateFact(logger *slog.Logger, repo *facts.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid fact id")
			return
		}
		var req FactRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		d, err := req.draft()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		f, err := repo.Update(r.Context(), id, d)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

// handleDeleteFact requires ?confirm=true; the confirmation dialog lives in
// the client.
func handleDeleteFact(logger *slog.Logger, repo *facts.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid fact id")
			return
		}
		if confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); !confirmed {
			writeError(w, http.StatusPreconditionRequired, "deletion must be confirmed with confirm=true")
			return
		}

		if err := repo.Remove(r.Context(), id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleExportFacts(logger *slog.Logger, repo *facts.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := repo.Export(r.Context(), &buf); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		sum := blake2b.Sum256(buf.Bytes())

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+facts.ExportFilename+`"`)
		w.Header().Set(digestHeader, hex.EncodeToString(sum[:]))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func handleImportFacts(logger *slog.Logger, repo *facts.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		n, err := repo.Import(r.Context(), http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, ImportResponse{Imported: n})
	}
}

package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/swisscitizen/prep/internal/places"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

type ExploreResponse struct {
	ID       int   `json:"id"`
	Added    bool  `json:"added"`
	Explored []int `json:"explored"`
}

func handleListBuildings(svc *places.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Filter(r.URL.Query().Get("category")))
	}
}

// handleNearestBuildings orders buildings by distance from lat/lng, defaulting
// to the centre of Zürich.
func handleNearestBuildings(svc *places.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		from := swisscitizen.Zurich
		var err error
		if v := q.Get("lat"); v != "" {
			if from.Lat, err = strconv.ParseFloat(v, 64); err != nil || from.Lat < -90 || from.Lat > 90 {
				writeError(w, http.StatusBadRequest, "invalid lat")
				return
			}
		}
		if v := q.Get("lng"); v != "" {
			if from.Lng, err = strconv.ParseFloat(v, 64); err != nil || from.Lng < -180 || from.Lng > 180 {
				writeError(w, http.StatusBadRequest, "invalid lng")
				return
			}
		}
		limit := 0
		if v := q.Get("limit"); v != "" {
			if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
		}
		writeJSON(w, http.StatusOK, svc.Nearest(from, limit))
	}
}

func handleGetBuilding(logger *slog.Logger, svc *places.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid building id")
			return
		}
		b, err := svc.Get(int(id))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func handleExploredBuildings(logger *slog.Logger, svc *places.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := svc.Explored(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, ids)
	}
}

func handleExploreBuilding(logger *slog.Logger, svc *places.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid building id")
			return
		}
		added, err := svc.MarkExplored(r.Context(), int(id))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		ids, err := svc.Explored(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, ExploreResponse{ID: int(id), Added: added, Explored: ids})
	}
}

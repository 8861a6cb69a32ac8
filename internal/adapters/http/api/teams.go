package api

import (
	"net/http"
	"strconv"
	"strings"
)

// TeamsHandler handles team stats and record requests.
type TeamsHandler struct {
	deps Dependencies
}

// NewTeamsHandler creates a teams handler.
func NewTeamsHandler(deps Dependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleTeam handles GET /teams/{team}/stats and GET /teams/{team}/records.
func (h *TeamsHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/teams/")
	teamPart, view, ok := strings.Cut(rest, "/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	teamNumber, err := strconv.Atoi(teamPart)
	if err != nil || teamNumber <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch view {
	case "stats":
		ts, err := h.deps.TeamStats(r.Context(), teamNumber)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, ts)
	case "records":
		recs, err := h.deps.TeamRecords(r.Context(), teamNumber)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, recs)
	default:
		http.NotFound(w, r)
	}
}

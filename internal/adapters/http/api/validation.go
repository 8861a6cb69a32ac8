package api

import (
	"net/http"
	"strings"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

// ValidationHandler serves scouted-vs-official validation reports.
type ValidationHandler struct {
	deps Dependencies
}

// NewValidationHandler creates a validation handler.
func NewValidationHandler(deps Dependencies) *ValidationHandler {
	return &ValidationHandler{deps: deps}
}

// HandleValidation handles GET /matches/{matchKey}/validation?alliance=red|blue.
func (h *ValidationHandler) HandleValidation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/matches/")
	matchKey, view, ok := strings.Cut(rest, "/")
	if !ok || view != "validation" || matchKey == "" {
		http.NotFound(w, r)
		return
	}
	alliance := model.Alliance(r.URL.Query().Get("alliance"))
	if !alliance.Valid() {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	report, err := h.deps.MatchValidation(r.Context(), matchKey, alliance)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

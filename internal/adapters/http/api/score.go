package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

// ScoreHandler scores a counter record for live point display during a
// match, without persisting anything.
type ScoreHandler struct {
	deps Dependencies
}

// NewScoreHandler creates a score handler.
func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleScore handles POST /score requests.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var rec model.CounterRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.LiveScore(r.Context(), rec))
}

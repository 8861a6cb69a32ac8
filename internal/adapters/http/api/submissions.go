package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/pkg/metrics"
)

// SubmissionsHandler handles scout submission requests.
type SubmissionsHandler struct {
	deps Dependencies
}

// NewSubmissionsHandler creates a submissions handler.
func NewSubmissionsHandler(deps Dependencies) *SubmissionsHandler {
	return &SubmissionsHandler{deps: deps}
}

// HandlePostSubmission handles POST /submissions requests. Duplicates are
// acknowledged with 200, accepted work with 202, and backpressure with 429
// after rolling back the idempotency mark so the scout can retry.
func (h *SubmissionsHandler) HandlePostSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_submission"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var sub model.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if err := validateSubmission(sub); err != nil {
		metrics.RecordSubmissionRejected()
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	// Idempotency check first; a duplicate is success from the scout's
	// point of view.
	if h.deps.SeenAndRecord(r.Context(), sub.ID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	if ok := h.deps.Enqueue(r.Context(), sub); !ok {
		h.deps.Unrecord(r.Context(), sub.ID)
		metrics.RecordSubmissionRejected()
		writeError(w, http.StatusTooManyRequests, "backpressure", fmt.Errorf("%s: %w", op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}

func validateSubmission(sub model.Submission) error {
	switch {
	case strings.TrimSpace(sub.ID) == "":
		return errors.New("missing id")
	case strings.TrimSpace(sub.MatchKey) == "":
		return errors.New("missing match_key")
	case sub.TeamNumber <= 0:
		return errors.New("missing team_number")
	case !sub.Alliance.Valid():
		return errors.New("alliance must be red or blue")
	}
	return nil
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/domain/stats"
	"github.com/kestrelrobotics/matchbook/internal/domain/validate"
)

// Dependencies required by HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the app wiring.
type Dependencies interface {
	// SeenAndRecord atomically checks and records a submission id.
	SeenAndRecord(ctx context.Context, id string) bool
	// Unrecord rolls back a seen mark after a failed enqueue.
	Unrecord(ctx context.Context, id string)
	// Enqueue pushes a submission for async processing. False on backpressure.
	Enqueue(ctx context.Context, sub model.Submission) bool

	// TeamStats aggregates all stored records for a team.
	TeamStats(ctx context.Context, teamNumber int) (stats.TeamStats, error)
	// TeamRecords returns the raw stored records for a team.
	TeamRecords(ctx context.Context, teamNumber int) ([]model.MatchRecord, error)
	// MatchValidation builds the validation report for one alliance.
	MatchValidation(ctx context.Context, matchKey string, alliance model.Alliance) (validate.Report, error)
	// LiveScore scores a counter record for live display.
	LiveScore(ctx context.Context, rec model.CounterRecord) model.ScoringResult

	// GetStats exposes operational counters for the /stats endpoint.
	GetStats() map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	opsHandler         *OpsStatsHandler
	submissionsHandler *SubmissionsHandler
	teamsHandler       *TeamsHandler
	validationHandler  *ValidationHandler
	scoreHandler       *ScoreHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		opsHandler:         NewOpsStatsHandler(deps),
		submissionsHandler: NewSubmissionsHandler(deps),
		teamsHandler:       NewTeamsHandler(deps),
		validationHandler:  NewValidationHandler(deps),
		scoreHandler:       NewScoreHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.opsHandler.HandleStats, "stats"))
	mux.HandleFunc("/submissions", MetricsMiddleware(s.submissionsHandler.HandlePostSubmission, "submissions"))
	mux.HandleFunc("/teams/", MetricsMiddleware(s.teamsHandler.HandleTeam, "teams"))
	mux.HandleFunc("/matches/", MetricsMiddleware(s.validationHandler.HandleValidation, "validation"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandleScore, "score"))
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404 without tight
// coupling to specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNotFound) || strings.Contains(strings.ToLower(err.Error()), "not found")
}

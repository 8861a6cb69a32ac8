package api

import (
	"encoding/json"
	"net/http"
)

// OpsStatsHandler exposes service operational counters.
type OpsStatsHandler struct {
	deps Dependencies
}

// NewOpsStatsHandler creates an operational stats handler.
func NewOpsStatsHandler(deps Dependencies) *OpsStatsHandler {
	return &OpsStatsHandler{deps: deps}
}

// HandleStats handles GET /stats requests.
func (h *OpsStatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(h.deps.GetStats())
}

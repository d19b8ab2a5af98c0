package handlers

import (
	"net/http"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Subgraph string `json:"subgraph"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	version  string
	endpoint string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, endpoint string) *HealthHandler {
	return &HealthHandler{version: version, endpoint: endpoint}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  h.version,
		Subgraph: h.endpoint,
	})
}

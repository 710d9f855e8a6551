package http

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	generativeEnabled bool
	cacheKind         string
}

func NewHealthHandler(generativeEnabled bool, cacheKind string) *HealthHandler {
	return &HealthHandler{
		generativeEnabled: generativeEnabled,
		cacheKind:         cacheKind,
	}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":   "autosyndicate",
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	generative := "disabled"
	if h.generativeEnabled {
		generative = "available"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"services": map[string]string{
			"generative": generative,
			"cache":      h.cacheKind,
			"engine":     "available",
		},
	})
}

package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"autosyndicate/domain"
	"autosyndicate/service"
)

type AllocationHandler struct {
	service *service.AllocationService
}

func NewAllocationHandler(service *service.AllocationService) *AllocationHandler {
	return &AllocationHandler{service: service}
}

// Allocate handles POST /api/allocate. The response is the uniform execution
// envelope; its payload is the ranked recommendation list.
func (h *AllocationHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.AllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Evaluate(r.Context(), input)
	if err != nil {
		log.Printf("Error evaluating allocation: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Recommendations handles GET /api/allocations?loanId=... and serves the
// cached result of the loan's most recent evaluation.
func (h *AllocationHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	loanID := r.URL.Query().Get("loanId")
	if loanID == "" {
		http.Error(w, "loanId is required", http.StatusBadRequest)
		return
	}

	recommendations, ok := h.service.CachedRecommendations(r.Context(), loanID)
	if !ok {
		http.Error(w, "no evaluation found for loan", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, recommendations)
}

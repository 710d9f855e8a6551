package http

import (
	"encoding/json"
	"net/http"

	"autosyndicate/domain"
	"autosyndicate/service"
)

type RiskHandler struct {
	service *service.RiskService
}

func NewRiskHandler(service *service.RiskService) *RiskHandler {
	return &RiskHandler{service: service}
}

// AssessRisk handles POST /api/risk-assessment.
func (h *RiskHandler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var loan domain.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&loan); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	assessment, err := h.service.AssessRisk(loan)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

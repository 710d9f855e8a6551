package http

import (
	"encoding/json"
	"net/http"

	"autosyndicate/domain"
	"autosyndicate/service"
)

type ESGHandler struct {
	service *service.ESGService
}

func NewESGHandler(service *service.ESGService) *ESGHandler {
	return &ESGHandler{service: service}
}

// AnalyzeESG handles POST /api/esg-analysis.
func (h *ESGHandler) AnalyzeESG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var loan domain.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&loan); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	analysis, err := h.service.AnalyzeESG(loan)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

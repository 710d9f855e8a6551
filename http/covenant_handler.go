package http

import (
	"encoding/json"
	"log"
	"net/http"

	"autosyndicate/domain"
	"autosyndicate/service"
)

type CovenantHandler struct {
	service *service.CovenantService
}

func NewCovenantHandler(service *service.CovenantService) *CovenantHandler {
	return &CovenantHandler{service: service}
}

// PredictBreach handles POST /api/covenant-predict.
func (h *CovenantHandler) PredictBreach(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.CovenantCheckInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	status, err := h.service.CheckCovenant(input)
	if err != nil {
		log.Printf("Error checking covenant: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

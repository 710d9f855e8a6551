package service

import (
	"errors"

	"autosyndicate/domain"
	"autosyndicate/hub"
)

// CovenantService checks covenant compliance against observed values and
// alerts connected observers when a covenant is at risk or breached.
type CovenantService struct {
	hub *hub.Hub
}

// NewCovenantService creates the monitor. hub may be nil; checks still run,
// alerts are simply not delivered anywhere.
func NewCovenantService(h *hub.Hub) *CovenantService {
	return &CovenantService{hub: h}
}

// atRiskMargin is the headroom above threshold, as a fraction of the
// threshold, under which a compliant covenant is flagged AT_RISK.
const atRiskMargin = 0.1

// CheckCovenant evaluates one covenant. The last historical value is the
// current one; with no history a neutral 1.35 stands in, matching the
// monitoring collaborator's convention.
func (s *CovenantService) CheckCovenant(input domain.CovenantCheckInput) (domain.CovenantStatus, error) {
	if input.CovenantID == "" {
		return domain.CovenantStatus{}, errors.New("covenant id is required")
	}
	if input.Threshold <= 0 {
		return domain.CovenantStatus{}, errors.New("invalid covenant threshold")
	}

	current := 1.35
	if len(input.HistoricalValues) > 0 {
		current = input.HistoricalValues[len(input.HistoricalValues)-1]
	}

	probability := (input.Threshold - current) / input.Threshold
	if probability < 0 {
		probability = 0
	}

	headroom := (current - input.Threshold) / input.Threshold
	status := domain.CovenantCompliant
	if current < input.Threshold {
		status = domain.CovenantBreach
	} else if headroom < atRiskMargin {
		status = domain.CovenantAtRisk
	}

	trend := "stable"
	if status != domain.CovenantCompliant {
		trend = "deteriorating"
	}

	result := domain.CovenantStatus{
		CovenantID:        input.CovenantID,
		Status:            status,
		CurrentValue:      current,
		Threshold:         input.Threshold,
		BreachProbability: probability,
		Trend:             trend,
		Recommendation:    covenantRecommendation(status),
	}

	if status != domain.CovenantCompliant && s.hub != nil {
		s.hub.Broadcast(domain.Event{Kind: domain.EventCovenantAlert, Body: result})
	}
	return result, nil
}

func covenantRecommendation(status string) string {
	switch status {
	case domain.CovenantBreach:
		return "Immediate action required. Contact borrower and arrange remediation plan."
	case domain.CovenantAtRisk:
		return "Increase monitoring frequency and prepare contingency plans."
	default:
		return "Continue standard monitoring. No immediate action required."
	}
}

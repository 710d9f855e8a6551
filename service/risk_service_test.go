package service

import (
	"math"
	"testing"

	"autosyndicate/domain"
)

func TestAssessRisk_HighRateAndLongTerm(t *testing.T) {

	service := NewRiskService()

	assessment, err := service.AssessRisk(domain.LoanRequest{
		ID:           "loan-1",
		Amount:       10_000_000,
		TermMonths:   72,
		InterestRate: 8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 0.5 base + 0.2 rate + 0.1 term
	if math.Abs(assessment.RiskScore-0.8) > 1e-9 {
		t.Errorf("expected score 0.8, got %v", assessment.RiskScore)
	}
	if assessment.RiskCategory != "High Risk" {
		t.Errorf("expected High Risk, got %s", assessment.RiskCategory)
	}
	if assessment.Recommendation != "Approve with enhanced monitoring" {
		t.Errorf("unexpected recommendation %q", assessment.Recommendation)
	}
}

func TestAssessRisk_BlendsProvidedScore(t *testing.T) {

	service := NewRiskService()

	assessment, err := service.AssessRisk(domain.LoanRequest{
		ID:           "loan-2",
		Amount:       5_000_000,
		TermMonths:   24,
		InterestRate: 3,
		RiskScore:    floatPtr(0.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (0.4 heuristic + 0.0 provided) / 2
	if math.Abs(assessment.RiskScore-0.2) > 1e-9 {
		t.Errorf("expected score 0.2, got %v", assessment.RiskScore)
	}
	if assessment.RiskCategory != "Low Risk" {
		t.Errorf("expected Low Risk, got %s", assessment.RiskCategory)
	}
}

func TestAssessRisk_Validation(t *testing.T) {

	service := NewRiskService()

	if _, err := service.AssessRisk(domain.LoanRequest{TermMonths: 12}); err == nil {
		t.Errorf("expected error for non-positive amount")
	}
	if _, err := service.AssessRisk(domain.LoanRequest{Amount: 1000}); err == nil {
		t.Errorf("expected error for non-positive term")
	}
}

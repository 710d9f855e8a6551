package service

import (
	"errors"

	"autosyndicate/domain"
)

// RiskService produces a heuristic risk profile for a loan. It blends a rate
// and term adjusted base score with the loan's own risk score when present.
type RiskService struct{}

func NewRiskService() *RiskService {
	return &RiskService{}
}

// AssessRisk scores a loan and categorizes it.
func (s *RiskService) AssessRisk(loan domain.LoanRequest) (domain.RiskAssessment, error) {
	if loan.Amount <= 0 {
		return domain.RiskAssessment{}, errors.New("invalid loan amount")
	}
	if loan.TermMonths <= 0 {
		return domain.RiskAssessment{}, errors.New("invalid loan term")
	}

	score := riskScore(loan)

	rating := loan.CreditRating
	if rating == "" {
		rating = "NR"
	}

	recommendation := "Approve with standard terms"
	if score >= 0.6 {
		recommendation = "Approve with enhanced monitoring"
	}

	return domain.RiskAssessment{
		LoanID:       loan.ID,
		RiskScore:    score,
		RiskCategory: riskCategory(score),
		Factors: map[string]string{
			"creditRating": rating,
			"industryRisk": "Medium",
		},
		Recommendation: recommendation,
	}, nil
}

func riskScore(loan domain.LoanRequest) float64 {
	score := 0.5

	// Pricier debt and longer tenors read as riskier.
	if loan.InterestRate > 7 {
		score += 0.2
	} else if loan.InterestRate < 4 {
		score -= 0.1
	}
	if loan.TermMonths > 60 {
		score += 0.1
	}

	if loan.RiskScore != nil {
		score = (score + *loan.RiskScore) / 2
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func riskCategory(score float64) string {
	switch {
	case score < 0.3:
		return "Low Risk"
	case score < 0.6:
		return "Medium Risk"
	default:
		return "High Risk"
	}
}

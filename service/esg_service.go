package service

import (
	"errors"

	"autosyndicate/domain"
)

// ESGService is a stub scorer: it reports the loan's declared ESG score when
// present and a fixed baseline otherwise. Real metric computation is served
// by an external collaborator.
type ESGService struct{}

// defaultESGScore stands in when a loan carries no ESG data.
const defaultESGScore = 72.5

func NewESGService() *ESGService {
	return &ESGService{}
}

// AnalyzeESG builds the sustainability report for a loan.
func (s *ESGService) AnalyzeESG(loan domain.LoanRequest) (domain.ESGAnalysis, error) {
	if loan.ID == "" {
		return domain.ESGAnalysis{}, errors.New("loan id is required")
	}

	score := defaultESGScore
	if loan.ESGScore != nil {
		score = *loan.ESGScore
	}

	return domain.ESGAnalysis{
		LoanID:   loan.ID,
		ESGScore: score,
		Breakdown: domain.ESGBreakdown{
			Environmental: 75.2,
			Social:        68.5,
			Governance:    82.1,
		},
		Alignment: map[string]string{
			"unepFi":              "Compliant",
			"greenBondPrinciples": "Partial",
		},
		Recommendations: []string{
			"Enhance carbon disclosure reporting",
			"Implement supplier diversity program",
		},
	}, nil
}

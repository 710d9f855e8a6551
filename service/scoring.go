package service

import (
	"fmt"
	"math"
	"strings"

	"autosyndicate/domain"
)

// riskLevels maps a lender's declared appetite to a canonical risk level.
var riskLevels = map[string]float64{
	domain.RiskAppetiteLow:      0.3,
	domain.RiskAppetiteModerate: 0.6,
	domain.RiskAppetiteHigh:     0.9,
}

// MatchScore computes the compatibility between a loan and a lender as a
// weighted sum of four capped sub-scores, plus a human-readable reasoning
// string. Pure and deterministic.
//
// Defaulting rules: an absent loan risk score counts as DefaultLoanRisk, an
// absent max investment as unbounded, an unknown risk appetite as 0.5. The
// flat PartialCredit for missing ESG/sector data is the same regardless of
// how much data is missing.
func MatchScore(loan domain.LoanRequest, lender domain.LenderProfile) (float64, string) {
	score := 0.0

	// Amount compatibility
	maxInvestment := math.Inf(1)
	if lender.MaxInvestment != nil {
		maxInvestment = *lender.MaxInvestment
	}
	if lender.MinInvestment <= loan.Amount && loan.Amount <= maxInvestment {
		score += WeightAmount
	}

	// Risk alignment
	loanRisk := DefaultLoanRisk
	if loan.RiskScore != nil {
		loanRisk = *loan.RiskScore
	}
	lenderRisk, ok := riskLevels[lender.RiskAppetite]
	if !ok {
		lenderRisk = 0.5
	}
	score += WeightRisk * (1 - math.Abs(loanRisk-lenderRisk))

	// ESG alignment
	if loan.ESGScore != nil && len(lender.ESGPreferences) > 0 {
		score += WeightESG * (*loan.ESGScore / 100)
	} else {
		score += PartialCredit
	}

	// Sector preference
	if loan.Purpose != "" && len(lender.PreferredSectors) > 0 {
		purpose := strings.ToLower(loan.Purpose)
		for _, sector := range lender.PreferredSectors {
			if strings.Contains(purpose, strings.ToLower(sector)) {
				score += WeightSector
				break
			}
		}
	} else {
		score += PartialCredit
	}

	score = math.Min(math.Max(score, 0), 1)
	return score, matchReasoning(loan, lender, score)
}

// AllocationAmount sizes one lender's share of a loan. The caps prevent
// over-concentration in a single lender regardless of match score.
func AllocationAmount(loan domain.LoanRequest, lender domain.LenderProfile) float64 {
	amount := loan.Amount * MaxLenderShare
	if lender.MaxInvestment != nil && *lender.MaxInvestment < amount {
		amount = *lender.MaxInvestment
	}
	if ticket := lender.MinInvestment * MinTicketMultiple; ticket < amount {
		amount = ticket
	}
	return amount
}

func matchReasoning(loan domain.LoanRequest, lender domain.LenderProfile, score float64) string {
	var reasons []string

	if lender.MinInvestment <= loan.Amount {
		reasons = append(reasons, fmt.Sprintf("Loan size ($%.0f) aligns with %s's investment range",
			loan.Amount, lender.InstitutionName))
	}

	if score > 0.8 {
		reasons = append(reasons, "Strong overall match across multiple criteria")
	} else if score > 0.6 {
		reasons = append(reasons, "Good match with acceptable risk-return profile")
	}

	if loan.ESGScore != nil && *loan.ESGScore > 70 {
		reasons = append(reasons, fmt.Sprintf("Strong ESG score (%.1f) meets sustainability criteria",
			*loan.ESGScore))
	}

	if len(reasons) == 0 {
		return "Match within acceptable parameters."
	}
	return strings.Join(reasons, ". ") + "."
}

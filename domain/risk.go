package domain

// RiskAssessment is the heuristic risk profile computed for a loan.
type RiskAssessment struct {
	LoanID         string            `json:"loanId"`
	RiskScore      float64           `json:"riskScore"`
	RiskCategory   string            `json:"riskCategory"`
	Factors        map[string]string `json:"factors"`
	Recommendation string            `json:"recommendation"`
}

// ESGBreakdown splits an ESG score into its three pillars.
type ESGBreakdown struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

// ESGAnalysis is the sustainability report produced for a loan.
type ESGAnalysis struct {
	LoanID          string            `json:"loanId"`
	ESGScore        float64           `json:"esgScore"`
	Breakdown       ESGBreakdown      `json:"breakdown"`
	Alignment       map[string]string `json:"alignment"`
	Recommendations []string          `json:"recommendations"`
}

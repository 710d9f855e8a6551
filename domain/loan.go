package domain

// LoanRequest is a financing opportunity to be matched against lenders.
// Optional fields are pointers; their defaulting rules live in the scoring
// policy, not here.
type LoanRequest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title,omitempty"`
	Amount       float64  `json:"amount"`
	TermMonths   int      `json:"term"`
	InterestRate float64  `json:"interestRate"`
	Purpose      string   `json:"purpose"`
	RiskScore    *float64 `json:"riskScore,omitempty"`    // 0..1
	CreditRating string   `json:"creditRating,omitempty"` // e.g. "BB+"
	ESGScore     *float64 `json:"esgScore,omitempty"`     // 0..100
}

// Risk appetite levels a lender can declare.
const (
	RiskAppetiteLow      = "LOW"
	RiskAppetiteModerate = "MODERATE"
	RiskAppetiteHigh     = "HIGH"
)

// LenderProfile describes a capital provider's criteria and capacity.
type LenderProfile struct {
	ID               string          `json:"id"`
	InstitutionName  string          `json:"institutionName"`
	AUM              *float64        `json:"aum,omitempty"`
	RiskAppetite     string          `json:"riskAppetite"`
	MinInvestment    float64         `json:"minInvestment"`
	MaxInvestment    *float64        `json:"maxInvestment,omitempty"`
	PreferredSectors []string        `json:"preferredSectors,omitempty"`
	ESGPreferences   map[string]bool `json:"esgPreferences,omitempty"`
}

// AllocationRecommendation is one ranked lender allocation for a loan.
// Produced fresh per evaluation and never mutated afterwards.
type AllocationRecommendation struct {
	LenderID   string  `json:"lenderId"`
	LenderName string  `json:"lenderName"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	MatchScore float64 `json:"matchScore"`
}

// AllocationRequest is the full input for one allocation evaluation.
type AllocationRequest struct {
	Loan    LoanRequest     `json:"loan"`
	Lenders []LenderProfile `json:"lenders"`
}

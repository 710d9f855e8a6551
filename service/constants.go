package service

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // % annual
	MaxTermMonths   = 600    // 50 years

	// DefaultAdmissionThreshold is the minimum match score for a lender to
	// be recommended. Strict comparison; configurable per deployment.
	DefaultAdmissionThreshold = 0.5

	// MaxRecommendations caps the ranked list returned per evaluation.
	MaxRecommendations = 10

	// Sizing caps. A single lender never takes more than half the loan nor
	// more than twice its stated minimum ticket.
	MaxLenderShare    = 0.5
	MinTicketMultiple = 2.0

	// Match score weights.
	WeightAmount = 0.3
	WeightRisk   = 0.3
	WeightESG    = 0.2
	WeightSector = 0.2

	// Partial credit applied when ESG or sector data is missing on either
	// side. Absence of data is not penalized as strongly as active mismatch.
	PartialCredit = 0.1

	// DefaultLoanRisk substitutes for an absent loan risk score.
	DefaultLoanRisk = 0.5
)

// Deterministic-path confidence per task kind, matching the bands the
// equivalent agents report.
const (
	allocationFallbackConfidence = 0.85
	documentFallbackConfidence   = 0.89
)

// Generative-path confidence per task kind.
const (
	allocationGenerativeConfidence = 0.92
	documentGenerativeConfidence   = 0.90
)

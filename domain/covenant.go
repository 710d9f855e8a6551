package domain

// Covenant compliance statuses.
const (
	CovenantCompliant = "COMPLIANT"
	CovenantAtRisk    = "AT_RISK"
	CovenantBreach    = "BREACH"
)

// CovenantCheckInput describes a covenant and its observed history.
type CovenantCheckInput struct {
	CovenantID       string    `json:"covenantId"`
	Name             string    `json:"name,omitempty"`
	Threshold        float64   `json:"threshold"`
	HistoricalValues []float64 `json:"historicalValues"`
}

// CovenantStatus is the outcome of one covenant compliance check.
type CovenantStatus struct {
	CovenantID        string  `json:"covenantId"`
	Status            string  `json:"status"`
	CurrentValue      float64 `json:"currentValue"`
	Threshold         float64 `json:"threshold"`
	BreachProbability float64 `json:"breachProbability"`
	Trend             string  `json:"trend"` // "stable" | "deteriorating"
	Recommendation    string  `json:"recommendation"`
}

package domain

// DocumentParseInput points at a loan document to extract terms from.
type DocumentParseInput struct {
	DocumentURL  string `json:"documentUrl"`
	DocumentType string `json:"documentType"` // e.g. "CIM", "TERM_SHEET"
}

// CovenantTerm is one covenant clause extracted from a document.
type CovenantTerm struct {
	Type      string  `json:"type"` // e.g. "FINANCIAL"
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
	Frequency string  `json:"frequency"` // e.g. "QUARTERLY"
}

// ESGMetrics holds sustainability figures attached to a document or loan.
type ESGMetrics struct {
	CarbonIntensity   float64 `json:"carbonIntensity"`
	ESGScore          float64 `json:"esgScore"`
	GreenLoanEligible bool    `json:"greenLoanEligible"`
}

// DocumentExtraction is the structured data pulled out of a loan document.
type DocumentExtraction struct {
	Borrower     string         `json:"borrower"`
	LoanAmount   float64        `json:"loanAmount"`
	TermMonths   int            `json:"term"`
	InterestRate float64        `json:"interestRate"`
	Purpose      string         `json:"purpose"`
	Covenants    []CovenantTerm `json:"covenants"`
	RiskFactors  []string       `json:"riskFactors"`
	ESGMetrics   ESGMetrics     `json:"esgMetrics"`
}

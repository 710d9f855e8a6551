package service

import (
	"context"
	"errors"

	"autosyndicate/domain"
)

// DocumentService extracts structured terms from loan documents through the
// resilient task pipeline. Actual text extraction is an external concern;
// the deterministic fallback is a canonical term-sheet stub.
type DocumentService struct {
	tasks *ResilientTask
}

func NewDocumentService(tasks *ResilientTask) *DocumentService {
	return &DocumentService{tasks: tasks}
}

// ParseDocument resolves a document into structured extraction data. Always
// succeeds for well-formed input; the result's Source tells which tier
// produced it.
func (s *DocumentService) ParseDocument(ctx context.Context, input domain.DocumentParseInput) (domain.ExecutionResult, error) {
	if input.DocumentURL == "" {
		return domain.ExecutionResult{}, errors.New("document url is required")
	}
	if input.DocumentType == "" {
		return domain.ExecutionResult{}, errors.New("document type is required")
	}

	result := s.tasks.Run(ctx, domain.TaskDocumentExtraction, input, func() (any, string) {
		return stubExtraction(), "Document terms resolved from canonical term sheet template."
	})
	return result, nil
}

// stubExtraction is the deterministic stand-in used until real extraction
// output is available for a document.
func stubExtraction() domain.DocumentExtraction {
	return domain.DocumentExtraction{
		Borrower:     "Sample Corporation",
		LoanAmount:   50_000_000,
		TermMonths:   36,
		InterestRate: 5.5,
		Purpose:      "Working capital and expansion",
		Covenants: []domain.CovenantTerm{
			{Type: "FINANCIAL", Name: "Debt Service Coverage Ratio", Threshold: 1.25, Frequency: "QUARTERLY"},
			{Type: "FINANCIAL", Name: "Leverage Ratio", Threshold: 3.5, Frequency: "QUARTERLY"},
		},
		RiskFactors: []string{
			"Industry concentration risk",
			"Geographic concentration",
			"Customer concentration",
		},
		ESGMetrics: domain.ESGMetrics{
			CarbonIntensity: 125.5,
			ESGScore:        72.3,
		},
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"

	"autosyndicate/domain"
	"autosyndicate/hub"
	"autosyndicate/repository"
)

// AllocationService matches a loan against a lender pool and produces a
// ranked, explainable allocation. The ranking itself is pure; the service
// adds validation, caching, persistence and event publication around it.
type AllocationService struct {
	repo      repository.EvaluationRepository
	cache     repository.CacheRepository
	tasks     *ResilientTask
	hub       *hub.Hub
	threshold float64
}

// NewAllocationService wires the engine. hub may be nil when no observers
// are served. A non-positive threshold falls back to the default.
func NewAllocationService(
	repo repository.EvaluationRepository,
	cache repository.CacheRepository,
	tasks *ResilientTask,
	h *hub.Hub,
	threshold float64,
) *AllocationService {
	if threshold <= 0 {
		threshold = DefaultAdmissionThreshold
	}
	return &AllocationService{
		repo:      repo,
		cache:     cache,
		tasks:     tasks,
		hub:       h,
		threshold: threshold,
	}
}

// Allocate is the deterministic entry point: validate, rank, record. The
// returned list is sorted by match score descending, capped at
// MaxRecommendations, and empty (not an error) when no lender clears the
// admission threshold.
func (s *AllocationService) Allocate(input domain.AllocationRequest) ([]domain.AllocationRecommendation, error) {
	if err := validateAllocationRequest(input); err != nil {
		return nil, err
	}

	recommendations := rankLenders(input.Loan, input.Lenders, s.threshold)
	s.record(input, recommendations)
	return recommendations, nil
}

// Evaluate is the resilient entry point: the generative tier proposes an
// allocation first, and the deterministic ranking serves as its total
// fallback. Validation failures surface before either tier runs.
func (s *AllocationService) Evaluate(ctx context.Context, input domain.AllocationRequest) (domain.ExecutionResult, error) {
	if err := validateAllocationRequest(input); err != nil {
		return domain.ExecutionResult{}, err
	}

	result := s.tasks.Run(ctx, domain.TaskAllocationSynthesis, input, func() (any, string) {
		return rankLenders(input.Loan, input.Lenders, s.threshold),
			"Allocation computed by deterministic matching engine."
	})

	if recommendations, ok := result.Payload.([]domain.AllocationRecommendation); ok {
		s.record(input, recommendations)
		s.publish(input.Loan.ID, recommendations, result.Source)
	}
	return result, nil
}

// rankLenders scores every lender, admits those above the threshold, orders
// them by match score descending (input order breaks ties) and truncates the
// list. Pure and safe to run concurrently for different requests.
func rankLenders(loan domain.LoanRequest, lenders []domain.LenderProfile, threshold float64) []domain.AllocationRecommendation {
	recommendations := []domain.AllocationRecommendation{}

	for _, lender := range lenders {
		score, reasoning := MatchScore(loan, lender)
		if score <= threshold {
			continue
		}

		amount := AllocationAmount(loan, lender)
		recommendations = append(recommendations, domain.AllocationRecommendation{
			LenderID:   lender.ID,
			LenderName: lender.InstitutionName,
			Amount:     amount,
			Percentage: amount / loan.Amount * 100,
			Confidence: score,
			Reasoning:  reasoning,
			MatchScore: score,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})

	if len(recommendations) > MaxRecommendations {
		recommendations = recommendations[:MaxRecommendations]
	}
	return recommendations
}

func validateAllocationRequest(input domain.AllocationRequest) error {
	loan := input.Loan
	if loan.Amount <= 0 {
		return errors.New("invalid loan amount")
	}
	if loan.Amount > MaxLoanAmount {
		return fmt.Errorf("loan amount exceeds the maximum of $%.2f", MaxLoanAmount)
	}
	if loan.InterestRate < 0 {
		return errors.New("invalid interest rate")
	}
	if loan.InterestRate > MaxInterestRate {
		return fmt.Errorf("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if loan.TermMonths <= 0 {
		return errors.New("invalid loan term")
	}
	if loan.TermMonths > MaxTermMonths {
		return fmt.Errorf("loan term exceeds the maximum of %d months", MaxTermMonths)
	}
	if loan.RiskScore != nil && (*loan.RiskScore < 0 || *loan.RiskScore > 1) {
		return errors.New("risk score must be between 0 and 1")
	}
	if loan.ESGScore != nil && (*loan.ESGScore < 0 || *loan.ESGScore > 100) {
		return errors.New("esg score must be between 0 and 100")
	}

	for _, lender := range input.Lenders {
		if lender.MinInvestment < 0 {
			return fmt.Errorf("lender %s has a negative minimum investment", lender.ID)
		}
		if lender.MaxInvestment != nil && *lender.MaxInvestment < lender.MinInvestment {
			return fmt.Errorf("lender %s has maximum investment below minimum", lender.ID)
		}
	}
	return nil
}

// record stores the evaluation and refreshes the cache. Neither failure is
// critical to the caller.
func (s *AllocationService) record(input domain.AllocationRequest, recommendations []domain.AllocationRecommendation) {
	if s.repo != nil {
		if err := s.repo.Save(input, recommendations); err != nil {
			log.Printf("Warning: failed to save allocation evaluation: %v", err)
		}
	}
	if s.cache != nil {
		if data, err := json.Marshal(recommendations); err == nil {
			key := "allocation:" + input.Loan.ID
			if err := s.cache.Set(context.Background(), key, string(data)); err != nil {
				log.Printf("Warning: failed to cache allocation for loan %s: %v", input.Loan.ID, err)
			}
		}
	}
}

// CachedRecommendations returns the most recent evaluation cached for a loan.
func (s *AllocationService) CachedRecommendations(ctx context.Context, loanID string) ([]domain.AllocationRecommendation, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok := s.cache.Get(ctx, "allocation:"+loanID)
	if !ok {
		return nil, false
	}
	var recommendations []domain.AllocationRecommendation
	if err := json.Unmarshal([]byte(raw), &recommendations); err != nil {
		log.Printf("Warning: discarding corrupt cache entry for loan %s: %v", loanID, err)
		return nil, false
	}
	return recommendations, true
}

func (s *AllocationService) publish(loanID string, recommendations []domain.AllocationRecommendation, source domain.ExecutionSource) {
	if s.hub == nil {
		return
	}
	body := map[string]any{
		"loanId":          loanID,
		"recommendations": len(recommendations),
		"source":          source,
	}
	if len(recommendations) > 0 {
		body["topScore"] = recommendations[0].MatchScore
	}
	s.hub.Broadcast(domain.Event{Kind: domain.EventAllocationCompleted, Body: body})
}

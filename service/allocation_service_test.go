package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"autosyndicate/domain"
	"autosyndicate/hub"
)

type MockEvaluationRepository struct {
	SaveCalled bool
	ForceError bool
}

func (m *MockEvaluationRepository) Save(
	request domain.AllocationRequest,
	recommendations []domain.AllocationRecommendation,
) error {
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	return nil
}

func disabledTasks() *ResilientTask {
	return NewResilientTask(NewAIService("", "", "", 0, 0))
}

func goodLender(id string) domain.LenderProfile {
	return domain.LenderProfile{
		ID:               id,
		InstitutionName:  "Lender " + id,
		MinInvestment:    1_000_000,
		RiskAppetite:     domain.RiskAppetiteModerate,
		PreferredSectors: []string{"energy"},
	}
}

func energyLoan() domain.LoanRequest {
	return domain.LoanRequest{
		ID:         "loan-1",
		Amount:     50_000_000,
		TermMonths: 36,
		RiskScore:  floatPtr(0.6),
		Purpose:    "energy expansion",
	}
}

func TestAllocate_SortedAndAdmitted(t *testing.T) {

	mockRepo := &MockEvaluationRepository{}
	service := NewAllocationService(mockRepo, nil, disabledTasks(), nil, 0)

	weak := goodLender("weak")
	weak.RiskAppetite = domain.RiskAppetiteLow
	weak.PreferredSectors = []string{"healthcare"}
	weak.MinInvestment = 100_000_000 // amount out of range too

	input := domain.AllocationRequest{
		Loan: energyLoan(),
		Lenders: []domain.LenderProfile{
			weak,
			goodLender("a"),
			goodLender("b"),
		},
	}

	recommendations, err := service.Allocate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(recommendations); i++ {
		if recommendations[i].MatchScore > recommendations[i-1].MatchScore {
			t.Errorf("recommendations not sorted by match score at %d", i)
		}
	}
	for _, rec := range recommendations {
		if rec.MatchScore <= DefaultAdmissionThreshold {
			t.Errorf("lender %s admitted below threshold with score %v", rec.LenderID, rec.MatchScore)
		}
		if rec.LenderID == "weak" {
			t.Errorf("weak lender should not be admitted")
		}
	}
	if len(recommendations) != 2 {
		t.Errorf("expected 2 recommendations, got %d", len(recommendations))
	}
	if !mockRepo.SaveCalled {
		t.Errorf("expected repository Save to be called")
	}
}

func TestAllocate_TruncatesToTen(t *testing.T) {

	service := NewAllocationService(&MockEvaluationRepository{}, nil, disabledTasks(), nil, 0)

	var lenders []domain.LenderProfile
	for i := 0; i < 15; i++ {
		lenders = append(lenders, goodLender(fmt.Sprintf("L%02d", i)))
	}

	recommendations, err := service.Allocate(domain.AllocationRequest{
		Loan:    energyLoan(),
		Lenders: lenders,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recommendations) != MaxRecommendations {
		t.Fatalf("expected %d recommendations, got %d", MaxRecommendations, len(recommendations))
	}
	// Equal scores keep input order.
	if recommendations[0].LenderID != "L00" {
		t.Errorf("expected stable tie-break to keep L00 first, got %s", recommendations[0].LenderID)
	}
}

func TestAllocate_SizingInvariants(t *testing.T) {

	service := NewAllocationService(&MockEvaluationRepository{}, nil, disabledTasks(), nil, 0)

	bounded := goodLender("bounded")
	bounded.MaxInvestment = floatPtr(1_500_000)

	loan := energyLoan()
	recommendations, err := service.Allocate(domain.AllocationRequest{
		Loan:    loan,
		Lenders: []domain.LenderProfile{goodLender("open"), bounded},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recommendations) == 0 {
		t.Fatal("expected recommendations")
	}

	byID := map[string]domain.LenderProfile{
		"open":    goodLender("open"),
		"bounded": bounded,
	}
	for _, rec := range recommendations {
		lender := byID[rec.LenderID]
		if rec.Amount <= 0 || rec.Amount > loan.Amount*MaxLenderShare {
			t.Errorf("lender %s amount %v violates half-loan cap", rec.LenderID, rec.Amount)
		}
		if rec.Amount > lender.MinInvestment*MinTicketMultiple {
			t.Errorf("lender %s amount %v violates ticket cap", rec.LenderID, rec.Amount)
		}
		if lender.MaxInvestment != nil && rec.Amount > *lender.MaxInvestment {
			t.Errorf("lender %s amount %v violates max investment", rec.LenderID, rec.Amount)
		}
		wantPct := rec.Amount / loan.Amount * 100
		if rec.Percentage != wantPct {
			t.Errorf("lender %s percentage %v, want %v", rec.LenderID, rec.Percentage, wantPct)
		}
	}
}

func TestAllocate_EmptyLenderListIsNotAnError(t *testing.T) {

	service := NewAllocationService(&MockEvaluationRepository{}, nil, disabledTasks(), nil, 0)

	recommendations, err := service.Allocate(domain.AllocationRequest{Loan: energyLoan()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recommendations == nil || len(recommendations) != 0 {
		t.Errorf("expected empty, non-nil recommendation list, got %#v", recommendations)
	}
}

func TestAllocate_NoLenderClearsThreshold(t *testing.T) {

	service := NewAllocationService(&MockEvaluationRepository{}, nil, disabledTasks(), nil, 0)

	weak := domain.LenderProfile{
		ID:               "weak",
		MinInvestment:    100_000_000,
		RiskAppetite:     domain.RiskAppetiteLow,
		PreferredSectors: []string{"healthcare"},
	}
	loan := energyLoan()
	loan.RiskScore = floatPtr(0.9)

	recommendations, err := service.Allocate(domain.AllocationRequest{
		Loan:    loan,
		Lenders: []domain.LenderProfile{weak},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recommendations) != 0 {
		t.Errorf("expected no recommendations, got %d", len(recommendations))
	}
}

func TestAllocate_Idempotent(t *testing.T) {

	service := NewAllocationService(&MockEvaluationRepository{}, nil, disabledTasks(), nil, 0)

	input := domain.AllocationRequest{
		Loan:    energyLoan(),
		Lenders: []domain.LenderProfile{goodLender("a"), goodLender("b")},
	}

	first, err := service.Allocate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.Allocate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different outputs")
	}
}

func TestAllocate_ValidationFailures(t *testing.T) {

	mockRepo := &MockEvaluationRepository{}
	service := NewAllocationService(mockRepo, nil, disabledTasks(), nil, 0)

	badLoan := energyLoan()
	badLoan.Amount = 0
	if _, err := service.Allocate(domain.AllocationRequest{Loan: badLoan}); err == nil {
		t.Errorf("expected error for non-positive amount")
	}

	badLender := goodLender("bad")
	badLender.MaxInvestment = floatPtr(100) // below min
	if _, err := service.Allocate(domain.AllocationRequest{
		Loan:    energyLoan(),
		Lenders: []domain.LenderProfile{badLender},
	}); err == nil {
		t.Errorf("expected error for max investment below min")
	}

	if mockRepo.SaveCalled {
		t.Errorf("repository Save should NOT be called on validation failure")
	}
}

type recordingConn struct {
	events []domain.Event
}

func (c *recordingConn) Send(event domain.Event) error {
	c.events = append(c.events, event)
	return nil
}

func TestEvaluate_DeterministicFallbackAndBroadcast(t *testing.T) {

	mockRepo := &MockEvaluationRepository{}
	eventHub := hub.New()
	observer := &recordingConn{}
	eventHub.Register(observer)

	service := NewAllocationService(mockRepo, nil, disabledTasks(), eventHub, 0)

	result, err := service.Evaluate(context.Background(), domain.AllocationRequest{
		Loan:    energyLoan(),
		Lenders: []domain.LenderProfile{goodLender("a")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Errorf("expected success from deterministic fallback")
	}
	if result.Source != domain.SourceDeterministic {
		t.Errorf("expected deterministic source, got %s", result.Source)
	}
	if result.Confidence < 0.78 || result.Confidence > 0.89 {
		t.Errorf("deterministic confidence %v outside expected band", result.Confidence)
	}
	if _, ok := result.Payload.([]domain.AllocationRecommendation); !ok {
		t.Fatalf("expected recommendation payload, got %T", result.Payload)
	}
	if !mockRepo.SaveCalled {
		t.Errorf("expected evaluation to be recorded")
	}

	if len(observer.events) != 1 {
		t.Fatalf("expected 1 broadcast event, got %d", len(observer.events))
	}
	if observer.events[0].Kind != domain.EventAllocationCompleted {
		t.Errorf("unexpected event kind %s", observer.events[0].Kind)
	}
}

func TestEvaluate_ValidationErrorBeforeAnyTier(t *testing.T) {

	service := NewAllocationService(&MockEvaluationRepository{}, nil, disabledTasks(), nil, 0)

	loan := energyLoan()
	loan.TermMonths = 0
	if _, err := service.Evaluate(context.Background(), domain.AllocationRequest{Loan: loan}); err == nil {
		t.Errorf("expected validation error")
	}
}

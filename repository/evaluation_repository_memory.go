package repository

import (
	"sync"

	"autosyndicate/domain"
)

type evaluation struct {
	request         domain.AllocationRequest
	recommendations []domain.AllocationRecommendation
}

// EvaluationRepositoryMemory is an in-memory implementation of
// EvaluationRepository.
type EvaluationRepositoryMemory struct {
	mu   sync.Mutex
	data []evaluation
}

// NewEvaluationRepositoryMemory creates a new in-memory evaluation repository.
func NewEvaluationRepositoryMemory() *EvaluationRepositoryMemory {
	return &EvaluationRepositoryMemory{}
}

// Save stores one completed evaluation in memory.
func (r *EvaluationRepositoryMemory) Save(
	request domain.AllocationRequest,
	recommendations []domain.AllocationRecommendation,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, evaluation{request: request, recommendations: recommendations})
	return nil
}

// Count reports how many evaluations have been stored.
func (r *EvaluationRepositoryMemory) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

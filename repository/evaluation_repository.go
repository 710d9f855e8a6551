package repository

import "autosyndicate/domain"

type EvaluationRepository interface {
	Save(request domain.AllocationRequest, recommendations []domain.AllocationRecommendation) error
}

package service

import (
	"context"
	"log"

	"autosyndicate/domain"
)

// Fallback is the deterministic second tier of a resilient task. It must be
// total over well-formed input: it returns a payload and a rationale, never
// an error.
type Fallback func() (payload any, rationale string)

// ResilientTask composes the generative executor with a deterministic
// fallback. The generative tier is tried once, with no retries; on any
// failure the fallback runs and its result is tagged accordingly. No
// blending between the two tiers.
type ResilientTask struct {
	ai *AIService
}

func NewResilientTask(ai *AIService) *ResilientTask {
	return &ResilientTask{ai: ai}
}

// Run executes a task through the two-tier policy and always returns a
// well-formed envelope. When the generative tier fails the caller cannot
// tell why; it only sees a deterministic result with its moderate
// confidence band.
func (t *ResilientTask) Run(ctx context.Context, kind domain.TaskKind, input any, fallback Fallback) domain.ExecutionResult {
	if result := t.ai.Invoke(ctx, kind, input); result.Success {
		return result
	}

	log.Printf("task %s degrading to deterministic path", kind)

	payload, rationale := fallback()
	return domain.ExecutionResult{
		Success:    true,
		Payload:    payload,
		Confidence: fallbackConfidence(kind),
		Rationale:  rationale,
		Source:     domain.SourceDeterministic,
	}
}

func fallbackConfidence(kind domain.TaskKind) float64 {
	if kind == domain.TaskDocumentExtraction {
		return documentFallbackConfidence
	}
	return allocationFallbackConfidence
}

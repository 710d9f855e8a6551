package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"autosyndicate/domain"
)

const systemPrompt = "You are a syndicated lending analyst. You evaluate financing " +
	"requests against institutional lender profiles and extract structured terms from " +
	"loan documents. You always answer with a single JSON object matching the requested " +
	"schema, with no surrounding prose or markdown."

// AIService wraps the external generative capability behind a fixed
// per-task-kind input/output contract. Any failure mode (missing key,
// transport error, bad status, schema-invalid output) collapses into a single
// failed ExecutionResult; it never returns partially parsed data and never
// lets an error escape its boundary.
type AIService struct {
	apiKey           string
	apiURL           string
	model            string
	enabled          bool
	httpClient       *http.Client
	maxResponseBytes int64
}

// NewAIService creates an executor against an OpenAI-compatible endpoint.
// An empty API key disables the generative path entirely.
func NewAIService(baseURL, apiKey, model string, timeout time.Duration, maxResponseBytes int64) *AIService {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxResponseBytes <= 0 {
		maxResponseBytes = 1 << 20
	}
	return &AIService{
		apiKey:           apiKey,
		apiURL:           baseURL + "/chat/completions",
		model:            model,
		enabled:          apiKey != "",
		httpClient:       &http.Client{Timeout: timeout},
		maxResponseBytes: maxResponseBytes,
	}
}

// Enabled reports whether the generative path is configured.
func (s *AIService) Enabled() bool {
	return s.enabled
}

type openAIRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Invoke runs one generative task. The returned envelope is well formed in
// all cases; on failure Payload is nil and Success is false.
func (s *AIService) Invoke(ctx context.Context, kind domain.TaskKind, input any) domain.ExecutionResult {
	if !s.enabled {
		return generativeFailure("generative capability not configured")
	}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return generativeFailure(fmt.Sprintf("unencodable task input: %v", err))
	}

	prompt, err := buildPrompt(kind, inputJSON)
	if err != nil {
		return generativeFailure(err.Error())
	}

	content, err := s.callLLM(ctx, prompt)
	if err != nil {
		log.Printf("Warning: generative call failed for task %s: %v", kind, err)
		return generativeFailure("generative capability unavailable")
	}

	payload, rationale, err := parsePayload(kind, content)
	if err != nil {
		log.Printf("Warning: generative output rejected for task %s: %v", kind, err)
		return generativeFailure("generative output failed schema validation")
	}

	return domain.ExecutionResult{
		Success:    true,
		Payload:    payload,
		Confidence: generativeConfidence(kind),
		Rationale:  rationale,
		Source:     domain.SourceGenerative,
	}
}

func generativeFailure(reason string) domain.ExecutionResult {
	return domain.ExecutionResult{
		Success:   false,
		Rationale: reason,
		Source:    domain.SourceGenerative,
	}
}

func generativeConfidence(kind domain.TaskKind) float64 {
	if kind == domain.TaskDocumentExtraction {
		return documentGenerativeConfidence
	}
	return allocationGenerativeConfidence
}

func buildPrompt(kind domain.TaskKind, inputJSON []byte) (string, error) {
	switch kind {
	case domain.TaskAllocationSynthesis:
		return fmt.Sprintf(`Evaluate the following loan and lender pool and propose capital allocations.

INPUT:
%s

Respond with only this JSON shape:
{"allocations":[{"lenderId":"","lenderName":"","amount":0,"percentage":0,"confidence":0,"reasoning":"","matchScore":0}]}

Rules: matchScore and confidence are in [0,1]; amount never exceeds half the loan amount; order allocations by matchScore descending; include at most %d entries; reasoning is one or two sentences.`,
			inputJSON, MaxRecommendations), nil

	case domain.TaskDocumentExtraction:
		return fmt.Sprintf(`Extract the structured terms of the loan document referenced below.

INPUT:
%s

Respond with only this JSON shape:
{"borrower":"","loanAmount":0,"term":0,"interestRate":0,"purpose":"","covenants":[{"type":"","name":"","threshold":0,"frequency":""}],"riskFactors":[],"esgMetrics":{"carbonIntensity":0,"esgScore":0,"greenLoanEligible":false}}`,
			inputJSON), nil
	}
	return "", fmt.Errorf("unknown task kind %q", kind)
}

// parsePayload validates the model's reply against the task's output schema.
// Anything short of a fully valid payload is rejected.
func parsePayload(kind domain.TaskKind, content string) (any, string, error) {
	raw := stripJSONFences(content)

	switch kind {
	case domain.TaskAllocationSynthesis:
		var out struct {
			Allocations []domain.AllocationRecommendation `json:"allocations"`
		}
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, "", fmt.Errorf("decode allocations: %w", err)
		}
		for i, rec := range out.Allocations {
			if rec.LenderID == "" {
				return nil, "", fmt.Errorf("allocation %d missing lender id", i)
			}
			if rec.MatchScore < 0 || rec.MatchScore > 1 {
				return nil, "", fmt.Errorf("allocation %d match score %v out of range", i, rec.MatchScore)
			}
			if rec.Amount <= 0 {
				return nil, "", fmt.Errorf("allocation %d has non-positive amount", i)
			}
		}
		if out.Allocations == nil {
			out.Allocations = []domain.AllocationRecommendation{}
		}
		return out.Allocations, "Allocation synthesized by generative analysis of lender pool.", nil

	case domain.TaskDocumentExtraction:
		var extraction domain.DocumentExtraction
		if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
			return nil, "", fmt.Errorf("decode extraction: %w", err)
		}
		if extraction.Borrower == "" || extraction.LoanAmount <= 0 {
			return nil, "", fmt.Errorf("extraction missing borrower or amount")
		}
		return extraction, "Document terms extracted by generative analysis.", nil
	}
	return nil, "", fmt.Errorf("unknown task kind %q", kind)
}

// stripJSONFences removes a markdown code fence if the model wrapped its
// reply in one.
func stripJSONFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := openAIRequest{
		Model: s.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 1024,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, s.maxResponseBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", err
	}
	if int64(len(body)) > s.maxResponseBytes {
		return "", fmt.Errorf("response exceeded limit (%d bytes)", s.maxResponseBytes)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, body)
	}

	var aiResp openAIResponse
	if err := json.Unmarshal(body, &aiResp); err != nil {
		return "", err
	}
	if len(aiResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}
	return aiResp.Choices[0].Message.Content, nil
}

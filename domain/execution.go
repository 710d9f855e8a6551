package domain

// TaskKind identifies an execution task with a fixed input/output contract.
type TaskKind string

const (
	TaskAllocationSynthesis TaskKind = "allocation_synthesis"
	TaskDocumentExtraction  TaskKind = "document_extraction"
)

// ExecutionSource labels which tier produced a result.
type ExecutionSource string

const (
	SourceGenerative    ExecutionSource = "generative"
	SourceDeterministic ExecutionSource = "deterministic"
)

// ExecutionResult is the uniform envelope returned by every execution path.
// On failure Payload is nil and must not be interpreted.
type ExecutionResult struct {
	Success    bool            `json:"success"`
	Payload    any             `json:"payload,omitempty"`
	Confidence float64         `json:"confidence"`
	Rationale  string          `json:"rationale"`
	Source     ExecutionSource `json:"source"`
}

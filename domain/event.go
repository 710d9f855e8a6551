package domain

// Event kinds broadcast to observers.
const (
	EventAllocationCompleted = "allocation.completed"
	EventCovenantAlert       = "covenant.alert"
)

// Event is a tagged, fire-and-forget payload delivered to observers.
// It has no identity beyond its content and is never persisted.
type Event struct {
	Kind string `json:"kind"`
	Body any    `json:"body"`
}

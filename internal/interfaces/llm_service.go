package interfaces

import "context"

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// LLMService defines the boundary to the external language model. The
// assistant service builds prompts, hands them across this boundary, and
// treats every failure as data to be surfaced, never as a fault to
// propagate. Implementations may use any cloud provider.
type LLMService interface {
	// Generate produces a completion for the given conversation. The
	// messages slice contains the full context in chronological order,
	// including any system prompt.
	Generate(ctx context.Context, messages []Message) (string, error)

	// HealthCheck verifies the provider is reachable and authenticated.
	HealthCheck(ctx context.Context) error

	// Close releases provider clients.
	Close() error
}

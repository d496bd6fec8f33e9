package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	// Ask sends a free-form completion request and returns the model reply.
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// AskJSON is like Ask but instructs the provider to emit a single JSON
	// object (JSON response format, low temperature, bounded token budget).
	// Callers must still treat the reply as untrusted text.
	AskJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

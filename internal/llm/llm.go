package llm

import "context"

// Request is one generation call: a system instruction, a user message,
// and the sampling parameters for this call.
type Request struct {
	System          string
	User            string
	Temperature     float32
	MaxOutputTokens int32
}

// LLMClient defines the interface for LLM providers. Providers return the
// model's free-form text; JSON extraction and parsing happen in Caller.
type LLMClient interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
	Close() error
}

package llm

import "context"

// PromptHook defines callbacks around generation calls.
type PromptHook interface {
	Before(ctx context.Context, stage string, req Request)
	After(ctx context.Context, stage string, text string, err error)
}

type ctxKeyHook struct{}
type ctxKeyStage struct{}

// WithHook attaches a PromptHook to the client. Hooks see the stage name
// stored in the context via WithStage.
func WithHook(base LLMClient, hook PromptHook) LLMClient {
	return &hooked{base: base, hook: hook}
}

type hooked struct {
	base LLMClient
	hook PromptHook
}

func (h *hooked) Name() string { return h.base.Name() }
func (h *hooked) Close() error { return h.base.Close() }

func (h *hooked) Generate(ctx context.Context, req Request) (string, error) {
	stage := StageFrom(ctx)
	h.hook.Before(ctx, stage, req)
	text, err := h.base.Generate(ctx, req)
	h.hook.After(ctx, stage, text, err)
	return text, err
}

// WithStage attaches the current pipeline stage name to the context so
// middlewares can label their output.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, ctxKeyStage{}, stage)
}

// StageFrom returns the stage string stored in the context.
func StageFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyStage{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}

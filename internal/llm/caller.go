package llm

import (
	"context"
	"fmt"
	"time"

	"contentforge/internal/util/jsonutil"
)

// DefaultCallTimeout is generous on purpose: content-writing calls run for
// minutes on larger word counts.
const DefaultCallTimeout = 4 * time.Minute

// CallOptions carries the per-call deadline. Sampling parameters live on the
// Request itself.
type CallOptions struct {
	Timeout time.Duration
}

// Caller wraps an LLMClient with deadline enforcement and JSON extraction.
// One Caller is shared by all pipeline stages; stages differ only in the
// Request they build.
type Caller struct {
	client LLMClient
}

func NewCaller(client LLMClient) *Caller {
	return &Caller{client: client}
}

func (c *Caller) Name() string { return c.client.Name() }

// CallJSON issues the generation call, races it against the deadline, and
// parses the extracted JSON payload into out.
//
// The underlying call is handed the deadline context so a cooperative
// transport aborts promptly, but the caller is released on expiry either way:
// a provider that ignores cancellation must not block the pipeline past the
// deadline.
func (c *Caller) CallJSON(ctx context.Context, req Request, opts CallOptions, out any) error {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		text, err := c.client.Generate(callCtx, req)
		done <- reply{text: text, err: err}
	}()

	var text string
	select {
	case <-callCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTimeout
	case r := <-done:
		if r.err != nil {
			return r.err
		}
		text = r.text
	}

	payload := ExtractJSON(text)
	if payload == "" {
		return newMalformedOutputError(fmt.Errorf("no JSON object found"), text)
	}
	if err := jsonutil.Unmarshal([]byte(payload), out); err != nil {
		return newMalformedOutputError(err, payload)
	}
	return nil
}

package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubClient returns a fixed reply or error.
type stubClient struct {
	text string
	err  error
}

func (s *stubClient) Name() string { return "stub" }
func (s *stubClient) Close() error { return nil }
func (s *stubClient) Generate(ctx context.Context, req Request) (string, error) {
	return s.text, s.err
}

// hangingClient never resolves until its context is canceled, and even then
// only after an extra delay, imitating a transport that ignores cancellation.
type hangingClient struct{}

func (hangingClient) Name() string { return "hanging" }
func (hangingClient) Close() error { return nil }
func (hangingClient) Generate(ctx context.Context, req Request) (string, error) {
	time.Sleep(10 * time.Second)
	return "", errors.New("unreachable in tests")
}

func TestCallJSON_ParsesFencedReply(t *testing.T) {
	c := NewCaller(&stubClient{text: "```json\n{\"a\":1}\n```\nSome trailing remark"})
	var out struct {
		A int `json:"a"`
	}
	if err := c.CallJSON(context.Background(), Request{User: "x"}, CallOptions{}, &out); err != nil {
		t.Fatalf("CallJSON failed: %v", err)
	}
	if out.A != 1 {
		t.Fatalf("expected a=1, got %d", out.A)
	}
}

func TestCallJSON_TimeoutDoesNotBlock(t *testing.T) {
	c := NewCaller(hangingClient{})
	start := time.Now()
	err := c.CallJSON(context.Background(), Request{User: "x"}, CallOptions{Timeout: 50 * time.Millisecond}, &struct{}{})
	elapsed := time.Since(start)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("caller blocked past the deadline: %s", elapsed)
	}
}

func TestCallJSON_CallerCancellationWins(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewCaller(hangingClient{})
	err := c.CallJSON(ctx, Request{User: "x"}, CallOptions{Timeout: time.Minute}, &struct{}{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCallJSON_MalformedOutputKeepsExcerpt(t *testing.T) {
	c := NewCaller(&stubClient{text: `{"broken": }`})
	err := c.CallJSON(context.Background(), Request{User: "x"}, CallOptions{}, &struct{}{})
	var mo *MalformedOutputError
	if !errors.As(err, &mo) {
		t.Fatalf("expected MalformedOutputError, got %v", err)
	}
	if mo.Excerpt == "" {
		t.Fatal("expected a diagnostic excerpt")
	}
}

func TestCallJSON_NoJSONObject(t *testing.T) {
	c := NewCaller(&stubClient{text: "I could not produce an answer."})
	err := c.CallJSON(context.Background(), Request{User: "x"}, CallOptions{}, &struct{}{})
	if Classify(err) != KindMalformedOutput {
		t.Fatalf("expected malformed-output classification, got %v (%v)", Classify(err), err)
	}
}

func TestCallJSON_ProviderErrorPassesThrough(t *testing.T) {
	want := errors.New("provider exploded")
	c := NewCaller(&stubClient{err: want})
	err := c.CallJSON(context.Background(), Request{User: "x"}, CallOptions{}, &struct{}{})
	if !errors.Is(err, want) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

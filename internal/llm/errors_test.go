package llm

import (
	"errors"
	"fmt"
	"testing"

	genai "google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"timeout", ErrTimeout, KindTimeout},
		{"wrapped timeout", fmt.Errorf("stage: %w", ErrTimeout), KindTimeout},
		{"malformed", newMalformedOutputError(errors.New("bad"), "{x"), KindMalformedOutput},
		{"unauthorized", genai.APIError{Code: 401}, KindInvalidCredentials},
		{"forbidden", genai.APIError{Code: 403}, KindInvalidCredentials},
		{"unknown model", genai.APIError{Code: 404}, KindModelUnavailable},
		{"rate limited", genai.APIError{Code: 429}, KindRateLimited},
		{"server error", genai.APIError{Code: 503}, KindProviderError},
		{"other api error", genai.APIError{Code: 400}, KindProviderError},
		{"plain error", errors.New("boom"), KindUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("%s: Classify = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(genai.APIError{Code: 401}) {
		t.Error("credential errors must not be retried")
	}
	if Retryable(newMalformedOutputError(errors.New("bad"), "{")) {
		t.Error("malformed output must not be retried")
	}
	if Retryable(NewPermanentError(errors.New("no"))) {
		t.Error("permanent errors must not be retried")
	}
	if !Retryable(genai.APIError{Code: 429}) {
		t.Error("rate limits should be retryable")
	}
	if !Retryable(errors.New("transient")) {
		t.Error("unknown errors should be retryable")
	}
}

func TestMalformedOutputExcerptIsBounded(t *testing.T) {
	long := make([]byte, 10_000)
	for i := range long {
		long[i] = 'x'
	}
	err := newMalformedOutputError(errors.New("bad"), string(long))
	var mo *MalformedOutputError
	if !errors.As(err, &mo) {
		t.Fatalf("expected MalformedOutputError, got %T", err)
	}
	if len(mo.Excerpt) > excerptLimit+3 {
		t.Fatalf("excerpt too long: %d bytes", len(mo.Excerpt))
	}
}

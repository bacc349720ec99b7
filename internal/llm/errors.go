package llm

import (
	"errors"
	"fmt"

	genai "google.golang.org/genai"
)

var (
	// ErrTimeout is returned when a generation call did not finish before
	// the per-call deadline.
	ErrTimeout = errors.New("llm: generation timed out")

	// ErrEmptyResponse is returned when the provider answered with no usable
	// candidate text.
	ErrEmptyResponse = errors.New("llm: empty response from model")
)

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// MalformedOutputError is returned when the model's reply did not contain
// parseable JSON. Excerpt is bounded so it can be logged without dumping the
// full raw reply.
type MalformedOutputError struct {
	Err     error
	Excerpt string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("llm: malformed model output: %v (excerpt: %s)", e.Err, e.Excerpt)
}
func (e *MalformedOutputError) Unwrap() error { return e.Err }

const excerptLimit = 240

func newMalformedOutputError(err error, raw string) error {
	if len(raw) > excerptLimit {
		raw = raw[:excerptLimit] + "..."
	}
	return &MalformedOutputError{Err: err, Excerpt: raw}
}

// ErrorKind classifies a failed call into a caller-meaningful category.
type ErrorKind string

const (
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindModelUnavailable   ErrorKind = "model_unavailable"
	KindRateLimited        ErrorKind = "rate_limited"
	KindTimeout            ErrorKind = "timeout"
	KindMalformedOutput    ErrorKind = "malformed_output"
	KindProviderError      ErrorKind = "provider_error"
	KindUnknown            ErrorKind = "unknown"
)

// Classify maps provider-level failures onto ErrorKind. Gemini API errors are
// classified by HTTP status code; anything unrecognized is KindUnknown.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrTimeout) {
		return KindTimeout
	}
	var mo *MalformedOutputError
	if errors.As(err, &mo) {
		return KindMalformedOutput
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return KindInvalidCredentials
		case apiErr.Code == 404:
			return KindModelUnavailable
		case apiErr.Code == 429:
			return KindRateLimited
		case apiErr.Code >= 500:
			return KindProviderError
		default:
			return KindProviderError
		}
	}
	return KindUnknown
}

// Retryable reports whether a new attempt could plausibly succeed.
func Retryable(err error) bool {
	switch Classify(err) {
	case KindInvalidCredentials, KindModelUnavailable, KindMalformedOutput:
		return false
	}
	var pErr *PermanentError
	return !errors.As(err, &pErr)
}

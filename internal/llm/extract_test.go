package llm

import "testing"

func TestExtractJSON_FencedWithTrailingRemark(t *testing.T) {
	in := "```json\n{\"a\":1}\n```\nSome trailing remark"
	got := ExtractJSON(in)
	if got != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %q", got)
	}
}

func TestExtractJSON_PlainObject(t *testing.T) {
	got := ExtractJSON(`{"key":"value"}`)
	if got != `{"key":"value"}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_TrailingProseWithoutFence(t *testing.T) {
	in := `{"key":"value"}` + "\n\nHere is an explanation of the JSON above."
	got := ExtractJSON(in)
	if got != `{"key":"value"}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_FenceWithoutLanguageTag(t *testing.T) {
	in := "```\n{\"n\":2}\n```"
	got := ExtractJSON(in)
	if got != `{"n":2}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_LeadingProseBeforeFence(t *testing.T) {
	in := "Sure, here is the result:\n```json\n{\"ok\":true}\n```"
	got := ExtractJSON(in)
	if got != `{"ok":true}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	if got := ExtractJSON("no json here"); got != "" {
		t.Fatalf("expected empty extraction, got %q", got)
	}
}

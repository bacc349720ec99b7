package jsonutil

import (
	"strings"
	"testing"
)

type payload struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func TestUnmarshal_Direct(t *testing.T) {
	var p payload
	if err := Unmarshal([]byte(`{"title":"a > b","count":3}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Title != "a > b" || p.Count != 3 {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestUnmarshal_QuotedWholePayload(t *testing.T) {
	// Some models wrap the entire object in one JSON string.
	var p payload
	if err := Unmarshal([]byte(`"{\"title\":\"hello\",\"count\":1}"`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Title != "hello" || p.Count != 1 {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestUnmarshal_InvalidStaysInvalid(t *testing.T) {
	var p payload
	if err := Unmarshal([]byte(`{"title":`), &p); err == nil {
		t.Fatal("expected an error for truncated JSON")
	}
}

func TestMarshalNoEscape_KeepsAngleBrackets(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"k": "a <b> & c"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), `\u003c`) {
		t.Fatalf("angle brackets must not be escaped: %s", out)
	}
	if !strings.Contains(string(out), "<b>") {
		t.Fatalf("expected literal <b>: %s", out)
	}
}

func TestMarshalNoEscapeIndent(t *testing.T) {
	out, err := MarshalNoEscapeIndent(payload{Title: "t", Count: 2}, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, "\n  \"title\"") {
		t.Fatalf("expected two-space indentation:\n%s", s)
	}
	if strings.HasSuffix(s, "\n") {
		t.Fatal("trailing newline should be trimmed")
	}
}

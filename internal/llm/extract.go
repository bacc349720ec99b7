package llm

import "strings"

// ExtractJSON pulls a JSON object out of free-form model text. If a fenced
// code block is present its inner content is used, otherwise the whole text.
// Everything after the last closing brace is cut, which defends against
// trailing prose the model appended after valid JSON.
func ExtractJSON(text string) string {
	s := strings.TrimSpace(text)

	if i := strings.Index(s, "```"); i >= 0 {
		inner := s[i+3:]
		// Skip a language tag like "json" on the fence line.
		if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
			first := strings.TrimSpace(inner[:nl])
			if first == "" || isFenceTag(first) {
				inner = inner[nl+1:]
			}
		}
		if j := strings.Index(inner, "```"); j >= 0 {
			inner = inner[:j]
		}
		s = strings.TrimSpace(inner)
	}

	k := strings.LastIndexByte(s, '}')
	if k < 0 {
		return ""
	}
	return strings.TrimSpace(s[:k+1])
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

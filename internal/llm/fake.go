package llm

import (
	"context"
	"encoding/json"
)

// FakeClient returns deterministic, minimal JSON payloads per stage for
// offline runs and testing. Stage selection uses the stage name stored in
// the context by WithStage.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Generate(ctx context.Context, req Request) (string, error) {
	var obj any
	switch StageFrom(ctx) {
	case "brand-analysis":
		obj = map[string]any{
			"identity": map[string]any{
				"name":     "Fake Brand",
				"industry": "software",
				"audience": "developers",
				"usps":     []string{"fast", "reliable"},
			},
			"voice": map[string]any{
				"tone":        "friendly",
				"personality": []string{"direct", "practical"},
				"do":          []string{"use examples"},
				"dont":        []string{"overpromise"},
			},
			"guidelines": map[string]any{
				"style":      "short sentences",
				"vocabulary": []string{"developer-first"},
				"avoid":      []string{"buzzwords"},
			},
			"key_messages": []string{"fake key message"},
			"summary":      "fake brand summary",
		}
	case "content-plan":
		obj = map[string]any{
			"title":              "Fake Title",
			"meta_description":   "Fake meta description.",
			"target_keyword":     "fake keyword",
			"secondary_keywords": []string{"fake secondary"},
			"search_intent":      "informational",
			"sections": []map[string]any{
				{"heading": "Fake Section", "key_points": []string{"point"}, "word_count": 300, "keywords": []string{"fake keyword"}},
				{"heading": "Another Section", "key_points": []string{"point"}, "word_count": 300, "keywords": []string{}},
			},
			"faq_questions":    []string{"What is fake?"},
			"total_word_count": 600,
		}
	case "writing":
		obj = map[string]any{
			"title":            "Fake Title",
			"meta_title":       "Fake Meta Title",
			"meta_description": "Fake meta description.",
			"introduction":     "Fake introduction.",
			"sections": []map[string]any{
				{"heading": "Fake Section", "body": "Fake body text.", "word_count": 300},
				{"heading": "Another Section", "body": "More fake body text.", "word_count": 300},
			},
			"conclusion":       "Fake conclusion.",
			"faq":              []map[string]any{{"question": "What is fake?", "answer": "A fake answer."}},
			"total_word_count": 600,
		}
	case "editing":
		obj = map[string]any{
			"title":            "Fake Title",
			"meta_title":       "Fake Meta Title",
			"meta_description": "Fake meta description.",
			"introduction":     "Fake introduction, edited.",
			"sections": []map[string]any{
				{"heading": "Fake Section", "body": "Fake body text, edited.", "word_count": 300},
				{"heading": "Another Section", "body": "More fake body text, edited.", "word_count": 300},
			},
			"conclusion":        "Fake conclusion, edited.",
			"faq":               []map[string]any{{"question": "What is fake?", "answer": "A fake answer."}},
			"total_word_count":  600,
			"readability_score": 82,
			"seo_score":         78,
			"edit_notes":        []string{"fake edit note"},
		}
	case "schema":
		obj = map[string]any{
			"article": map[string]any{
				"headline":       "Fake Title",
				"description":    "Fake meta description.",
				"author":         "Fake Brand",
				"publisher":      "Fake Brand",
				"keywords":       []string{"fake keyword"},
				"word_count":     600,
				"date_published": "2026-01-01",
			},
			"faq": map[string]any{
				"questions": []map[string]any{{"question": "What is fake?", "answer": "A fake answer."}},
			},
			"combined": `{"@context":"https://schema.org","@type":"Article","headline":"Fake Title"}`,
		}
	default:
		obj = map[string]any{}
	}
	b, _ := json.Marshal(obj)
	return string(b), nil
}

package pipeline

import (
	"context"
	"time"

	"contentforge/internal/llm"
	t "contentforge/internal/types"
	"contentforge/internal/util/jsonutil"
)

const promptSchemaSystem = `You produce structured-markup metadata for published articles. You output
only what the input supports; you never pad fields with guesses.`

const promptSchemaUser = `Describe the article below as structured markup metadata.

Return STRICT JSON ONLY:
{
  "article": {
    "headline": "string",
    "description": "string",
    "author": "string",
    "publisher": "string",
    "keywords": ["string"],
    "word_count": 0,
    "date_published": "YYYY-MM-DD"
  },
  "faq": {"questions": [{"question":"string","answer":"string"}]},
  "combined": "string"
}

Constraints:
- headline is the article title; description is the meta description.
- author and publisher come from the brand name; leave empty if unknown.
- faq.questions mirrors the article FAQ verbatim.
- combined is the article and faq records serialized together as one JSON-LD string.`

// SchemaGenerator runs stage 5: structured-markup description of the edited
// article. Extraction-style stage: low temperature, small budget.
type SchemaGenerator struct {
	TM *llm.Caller
}

var schemaParams = stageParams{Temperature: 0.1, MaxOutputTokens: 2048}

func (g *SchemaGenerator) Run(ctx context.Context, edited t.EditedContent, in t.PipelineInput, timeout time.Duration) (t.GeneratedSchema, error) {
	system, user := BuildSchemaPrompt(edited, in)
	var out t.GeneratedSchema
	err := g.TM.CallJSON(llm.WithStage(ctx, StageSchema.String()),
		llm.Request{
			System:          system,
			User:            user,
			Temperature:     schemaParams.Temperature,
			MaxOutputTokens: schemaParams.MaxOutputTokens,
		},
		llm.CallOptions{Timeout: timeout}, &out)
	if err != nil {
		return t.GeneratedSchema{}, err
	}
	return out, nil
}

func BuildSchemaPrompt(edited t.EditedContent, in t.PipelineInput) (system, user string) {
	input := map[string]any{
		"title":            edited.Title,
		"meta_description": edited.MetaDescription,
		"faq":              edited.FAQ,
		"total_word_count": edited.TotalWordCount,
		"target_keyword":   in.TargetKeyword,
		"brand_name":       in.BrandName,
		"website_url":      in.WebsiteURL,
	}
	b, _ := jsonutil.MarshalNoEscapeIndent(input, "", "  ")
	return promptSchemaSystem, promptSchemaUser + "\n\n[INPUT JSON]\n" + string(b)
}

package pipeline

import (
	"context"
	"time"

	"contentforge/internal/llm"
	t "contentforge/internal/types"
	"contentforge/internal/util/jsonutil"
)

const promptPlanSystem = `You are an SEO content strategist. You turn a topic and keyword set into
a structured outline a writer can execute section by section.`

const promptPlanUser = `Plan an article for the topic, keywords and brand voice below.

Return STRICT JSON ONLY:
{
  "title": "string",
  "meta_description": "string",
  "target_keyword": "string",
  "secondary_keywords": ["string"],
  "search_intent": "informational|commercial|transactional|navigational",
  "sections": [{"heading":"string","key_points":["string"],"word_count":0,"keywords":["string"]}],
  "faq_questions": ["string"],
  "total_word_count": 0
}

Constraints:
- Section word counts must sum close to total_word_count.
- total_word_count must equal the requested target word count.
- Use the target keyword in the title and at least two section headings.
- 4-8 sections; 3-6 faq_questions.
- meta_description under 160 characters.`

// ContentPlanner runs stage 2: outline and keyword plan.
type ContentPlanner struct {
	TM *llm.Caller
}

var planParams = stageParams{Temperature: 0.3, MaxOutputTokens: 4096}

func (p *ContentPlanner) Run(ctx context.Context, in t.PipelineInput, brand t.BrandAnalysis, timeout time.Duration) (t.ContentPlan, error) {
	system, user := BuildPlanPrompt(in, brand)
	var out t.ContentPlan
	err := p.TM.CallJSON(llm.WithStage(ctx, StageContentPlan.String()),
		llm.Request{
			System:          system,
			User:            user,
			Temperature:     planParams.Temperature,
			MaxOutputTokens: planParams.MaxOutputTokens,
		},
		llm.CallOptions{Timeout: timeout}, &out)
	if err != nil {
		return t.ContentPlan{}, err
	}
	return out, nil
}

func BuildPlanPrompt(in t.PipelineInput, brand t.BrandAnalysis) (system, user string) {
	input := map[string]any{
		"topic":              in.Topic,
		"target_keyword":     in.TargetKeyword,
		"secondary_keywords": in.SecondaryKeywords,
		"target_word_count":  in.TargetWordCount,
		"content_type":       in.ContentType,
		"additional_notes":   in.AdditionalNotes,
		"brand_voice":        brand.Voice,
		"brand_summary":      brand.Summary,
	}
	b, _ := jsonutil.MarshalNoEscapeIndent(input, "", "  ")
	return promptPlanSystem, promptPlanUser + "\n\n[INPUT JSON]\n" + string(b)
}

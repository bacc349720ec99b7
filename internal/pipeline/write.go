package pipeline

import (
	"context"
	"time"

	"contentforge/internal/llm"
	t "contentforge/internal/types"
	"contentforge/internal/util/jsonutil"
)

const promptWriteSystem = `You are a senior content writer. You write complete, publication-ready
prose that follows the outline exactly and stays in the brand voice.`

const promptWriteUser = `Write the full article from the plan below, in the brand voice provided.

Return STRICT JSON ONLY:
{
  "title": "string",
  "meta_title": "string",
  "meta_description": "string",
  "introduction": "string",
  "sections": [{"heading":"string","body":"string","word_count":0}],
  "conclusion": "string",
  "faq": [{"question":"string","answer":"string"}],
  "total_word_count": 0
}

Constraints:
- Write every planned section; do not merge, drop or reorder sections.
- Hit each section's planned word count within ~15%.
- Work the section keywords into the body naturally; never stuff.
- Answer every planned FAQ question in 2-4 sentences.
- total_word_count is the actual word count of introduction + sections + conclusion.`

// Writer runs stage 3: the first full draft. This is the longest call in the
// pipeline, so it gets the largest token budget.
type Writer struct {
	TM *llm.Caller
}

var writeParams = stageParams{Temperature: 0.4, MaxOutputTokens: 8192}

func (w *Writer) Run(ctx context.Context, plan t.ContentPlan, brand t.BrandAnalysis, timeout time.Duration) (t.WrittenContent, error) {
	system, user := BuildWritePrompt(plan, brand)
	var out t.WrittenContent
	err := w.TM.CallJSON(llm.WithStage(ctx, StageWriting.String()),
		llm.Request{
			System:          system,
			User:            user,
			Temperature:     writeParams.Temperature,
			MaxOutputTokens: writeParams.MaxOutputTokens,
		},
		llm.CallOptions{Timeout: timeout}, &out)
	if err != nil {
		return t.WrittenContent{}, err
	}
	return out, nil
}

func BuildWritePrompt(plan t.ContentPlan, brand t.BrandAnalysis) (system, user string) {
	input := map[string]any{
		"plan":             plan,
		"brand_voice":      brand.Voice,
		"brand_guidelines": brand.Guidelines,
		"key_messages":     brand.KeyMessages,
	}
	b, _ := jsonutil.MarshalNoEscapeIndent(input, "", "  ")
	return promptWriteSystem, promptWriteUser + "\n\n[INPUT JSON]\n" + string(b)
}

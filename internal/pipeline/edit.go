package pipeline

import (
	"context"
	"time"

	"contentforge/internal/llm"
	t "contentforge/internal/types"
	"contentforge/internal/util/jsonutil"
)

const promptEditSystem = `You are a meticulous content editor. You polish drafts for clarity, flow
and on-page SEO, and you score the result honestly.`

const promptEditUser = `Edit the draft below: tighten prose, fix awkward phrasing, verify keyword
placement, and score the result.

Return STRICT JSON ONLY:
{
  "title": "string",
  "meta_title": "string",
  "meta_description": "string",
  "introduction": "string",
  "sections": [{"heading":"string","body":"string","word_count":0}],
  "conclusion": "string",
  "faq": [{"question":"string","answer":"string"}],
  "total_word_count": 0,
  "readability_score": 0,
  "seo_score": 0,
  "edit_notes": ["string"]
}

Constraints:
- Return the COMPLETE edited article, not a diff.
- Keep the section structure; edit within sections.
- readability_score and seo_score are 0-100 integers.
- edit_notes lists the substantive changes you made, one note each.`

// Editor runs stage 4: polish and scoring.
type Editor struct {
	TM *llm.Caller
}

var editParams = stageParams{Temperature: 0.3, MaxOutputTokens: 8192}

func (e *Editor) Run(ctx context.Context, draft t.WrittenContent, brand t.BrandAnalysis, keyword string, timeout time.Duration) (t.EditedContent, error) {
	system, user := BuildEditPrompt(draft, brand, keyword)
	var out t.EditedContent
	err := e.TM.CallJSON(llm.WithStage(ctx, StageEditing.String()),
		llm.Request{
			System:          system,
			User:            user,
			Temperature:     editParams.Temperature,
			MaxOutputTokens: editParams.MaxOutputTokens,
		},
		llm.CallOptions{Timeout: timeout}, &out)
	if err != nil {
		return t.EditedContent{}, err
	}
	return out, nil
}

func BuildEditPrompt(draft t.WrittenContent, brand t.BrandAnalysis, keyword string) (system, user string) {
	input := map[string]any{
		"draft":          draft,
		"target_keyword": keyword,
		"brand_voice":    brand.Voice,
	}
	b, _ := jsonutil.MarshalNoEscapeIndent(input, "", "  ")
	return promptEditSystem, promptEditUser + "\n\n[INPUT JSON]\n" + string(b)
}

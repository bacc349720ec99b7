package pipeline

import (
	"context"
	"time"

	"contentforge/internal/llm"
	t "contentforge/internal/types"
	"contentforge/internal/util/jsonutil"
)

const promptBrandSystem = `You are a brand strategist analyzing a company's voice and identity.
You extract concrete, usable guidance for content writers from whatever brand
material is available. Be specific; avoid generic marketing filler.`

const promptBrandUser = `From the brand profile and website context below, extract the brand's
identity and voice.

Return STRICT JSON ONLY:
{
  "identity": {"name":"string","industry":"string","audience":"string","usps":["string"]},
  "voice": {"tone":"string","personality":["string"],"do":["string"],"dont":["string"]},
  "guidelines": {"style":"string","vocabulary":["string"],"avoid":["string"]},
  "key_messages": ["string"],
  "summary": "string"
}

Constraints:
- Ground every claim in the provided material; do not invent facts.
- Keep usps 2-5 items; key_messages 2-5 items.
- summary is 2-3 sentences a writer can follow without the full profile.`

// BrandAnalyst runs stage 1: brand voice and identity extraction.
type BrandAnalyst struct {
	TM *llm.Caller
}

// Extraction-style stage: low temperature, small budget.
var brandParams = stageParams{Temperature: 0.2, MaxOutputTokens: 2048}

func (a *BrandAnalyst) Run(ctx context.Context, in t.PipelineInput, timeout time.Duration) (t.BrandAnalysis, error) {
	system, user := BuildBrandPrompt(in)
	var out t.BrandAnalysis
	err := a.TM.CallJSON(llm.WithStage(ctx, StageBrandAnalysis.String()),
		llm.Request{
			System:          system,
			User:            user,
			Temperature:     brandParams.Temperature,
			MaxOutputTokens: brandParams.MaxOutputTokens,
		},
		llm.CallOptions{Timeout: timeout}, &out)
	if err != nil {
		return t.BrandAnalysis{}, err
	}
	return out, nil
}

// BuildBrandPrompt is pure: the (system, user) pair depends only on the input.
func BuildBrandPrompt(in t.PipelineInput) (system, user string) {
	input := map[string]any{
		"brand_name":    in.BrandName,
		"website_url":   in.WebsiteURL,
		"brand_profile": in.BrandProfile,
		"site_context":  in.SiteContext,
	}
	b, _ := jsonutil.MarshalNoEscapeIndent(input, "", "  ")
	return promptBrandSystem, promptBrandUser + "\n\n[INPUT JSON]\n" + string(b)
}

// FallbackBrandAnalysis is the designed stage-1 recovery value: a generic but
// complete analysis built from only the caller-supplied brand name, so the
// pipeline can still produce a usable article.
func FallbackBrandAnalysis(in t.PipelineInput) t.BrandAnalysis {
	name := in.BrandName
	if name == "" {
		name = "the brand"
	}
	return t.BrandAnalysis{
		Identity: t.BrandIdentity{
			Name:     name,
			Industry: "general",
			Audience: "general readers interested in " + in.Topic,
		},
		Voice: t.BrandVoice{
			Tone:        "professional, approachable",
			Personality: []string{"helpful", "clear", "trustworthy"},
			Do:          []string{"use plain language", "back claims with specifics"},
			Dont:        []string{"overpromise", "use jargon without explanation"},
		},
		Guidelines: t.ContentGuidelines{
			Style: "clear, informative prose with short paragraphs",
			Avoid: []string{"keyword stuffing", "filler sentences"},
		},
		KeyMessages: []string{},
		Summary:     "Generic voice profile for " + name + ": professional, approachable, and plain-spoken.",
	}
}

package types

// BrandAnalysis is the stage-1 output: brand voice and identity extracted
// from the caller-supplied profile and site context.
type BrandAnalysis struct {
	Identity    BrandIdentity     `json:"identity"`
	Voice       BrandVoice        `json:"voice"`
	Guidelines  ContentGuidelines `json:"guidelines"`
	KeyMessages []string          `json:"key_messages"`
	Summary     string            `json:"summary"`
}

type BrandIdentity struct {
	Name     string   `json:"name"`
	Industry string   `json:"industry"`
	Audience string   `json:"audience"`
	USPs     []string `json:"usps"`
}

type BrandVoice struct {
	Tone        string   `json:"tone"`
	Personality []string `json:"personality"`
	Do          []string `json:"do"`
	Dont        []string `json:"dont"`
}

type ContentGuidelines struct {
	Style      string   `json:"style"`
	Vocabulary []string `json:"vocabulary"`
	Avoid      []string `json:"avoid"`
}

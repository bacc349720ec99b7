package types

// PipelineInput is the caller's request. Topic and TargetKeyword are
// required; everything else is optional with defaults applied by the
// orchestrator, not the caller.
type PipelineInput struct {
	Topic             string   `json:"topic"`
	TargetKeyword     string   `json:"target_keyword"`
	SecondaryKeywords []string `json:"secondary_keywords,omitempty"`
	TargetWordCount   int      `json:"target_word_count,omitempty"`
	ContentType       string   `json:"content_type,omitempty"`
	AdditionalNotes   string   `json:"additional_notes,omitempty"`

	BrandName    string `json:"brand_name,omitempty"`
	WebsiteURL   string `json:"website_url,omitempty"`
	BrandProfile string `json:"brand_profile,omitempty"`
	SiteContext  string `json:"site_context,omitempty"`
}

const (
	DefaultTargetWordCount = 1500
	DefaultContentType     = "article"
)

// WithDefaults returns a copy with documented defaults filled in.
func (in PipelineInput) WithDefaults() PipelineInput {
	if in.TargetWordCount <= 0 {
		in.TargetWordCount = DefaultTargetWordCount
	}
	if in.ContentType == "" {
		in.ContentType = DefaultContentType
	}
	return in
}

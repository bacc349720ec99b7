package contentstore

import "time"

// Record is one persisted generation result: the final output plus the
// scores callers filter on, keyed by pipeline id.
type Record struct {
	PipelineID       string    `json:"pipeline_id"`
	Topic            string    `json:"topic"`
	TargetKeyword    string    `json:"target_keyword"`
	Title            string    `json:"title"`
	Markdown         string    `json:"markdown"`
	HTML             string    `json:"html"`
	NormalizedJSON   string    `json:"normalized_json"`
	WordCount        int       `json:"word_count"`
	ReadabilityScore int       `json:"readability_score"`
	SEOScore         int       `json:"seo_score"`
	CreatedAt        time.Time `json:"created_at"`
}

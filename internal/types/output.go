package types

// ContentOutput is the final publishable artifact, produced by the
// deterministic renderer (never by an LLM call).
type ContentOutput struct {
	Markdown  string           `json:"markdown"`
	HTML      string           `json:"html"`
	Record    NormalizedRecord `json:"record"`
	WordCount int              `json:"word_count"`
}

// NormalizedRecord is the persistence-friendly form of the output: meta,
// content and schema split into their own blocks.
type NormalizedRecord struct {
	Meta    RecordMeta      `json:"meta"`
	Content RecordContent   `json:"content"`
	Schema  GeneratedSchema `json:"schema"`
}

type RecordMeta struct {
	Title            string `json:"title"`
	MetaTitle        string `json:"meta_title"`
	MetaDescription  string `json:"meta_description"`
	ReadabilityScore int    `json:"readability_score"`
	SEOScore         int    `json:"seo_score"`
}

type RecordContent struct {
	Introduction string           `json:"introduction"`
	Sections     []WrittenSection `json:"sections"`
	Conclusion   string           `json:"conclusion"`
	FAQ          []FAQItem        `json:"faq"`
}

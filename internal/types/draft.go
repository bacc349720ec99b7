package types

// WrittenContent is the stage-3 output: the first full draft.
type WrittenContent struct {
	Title           string           `json:"title"`
	MetaTitle       string           `json:"meta_title"`
	MetaDescription string           `json:"meta_description"`
	Introduction    string           `json:"introduction"`
	Sections        []WrittenSection `json:"sections"`
	Conclusion      string           `json:"conclusion"`
	FAQ             []FAQItem        `json:"faq"`
	TotalWordCount  int              `json:"total_word_count"`
}

type WrittenSection struct {
	Heading   string `json:"heading"`
	Body      string `json:"body"`
	WordCount int    `json:"word_count"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EditedContent is the stage-4 output: the polished draft plus quality
// scores and the editor's notes.
type EditedContent struct {
	WrittenContent
	ReadabilityScore int      `json:"readability_score"`
	SEOScore         int      `json:"seo_score"`
	EditNotes        []string `json:"edit_notes"`
}

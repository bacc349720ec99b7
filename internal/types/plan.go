package types

// ContentPlan is the stage-2 output: a structured outline the writer follows.
type ContentPlan struct {
	Title             string        `json:"title"`
	MetaDescription   string        `json:"meta_description"`
	TargetKeyword     string        `json:"target_keyword"`
	SecondaryKeywords []string      `json:"secondary_keywords"`
	SearchIntent      string        `json:"search_intent"`
	Sections          []PlanSection `json:"sections"`
	FAQQuestions      []string      `json:"faq_questions"`
	TotalWordCount    int           `json:"total_word_count"`
}

type PlanSection struct {
	Heading   string   `json:"heading"`
	KeyPoints []string `json:"key_points"`
	WordCount int      `json:"word_count"`
	Keywords  []string `json:"keywords"`
}

package types

// GeneratedSchema is the stage-5 output: structured-markup descriptions for
// the article and its FAQ, plus a combined serialized form ready to embed.
type GeneratedSchema struct {
	Article  ArticleSchema `json:"article"`
	FAQ      FAQSchema     `json:"faq"`
	Combined string        `json:"combined"`
}

type ArticleSchema struct {
	Headline      string   `json:"headline"`
	Description   string   `json:"description"`
	Author        string   `json:"author"`
	Publisher     string   `json:"publisher"`
	Keywords      []string `json:"keywords"`
	WordCount     int      `json:"word_count"`
	DatePublished string   `json:"date_published"`
}

type FAQSchema struct {
	Questions []FAQItem `json:"questions"`
}

package pipeline

import (
	"fmt"
	"html"
	"strings"

	t "contentforge/internal/types"
)

// Renderer runs stage 6. It is deliberately not an LLM call: asking a model
// to re-emit a 2,000+ word document as one more JSON copy truncates or
// malforms often enough that deterministic templating is the only reliable
// path. Identical input yields byte-identical output.
type Renderer struct{}

func (Renderer) Run(edited t.EditedContent, schema t.GeneratedSchema) (t.ContentOutput, error) {
	if strings.TrimSpace(edited.Title) == "" {
		return t.ContentOutput{}, fmt.Errorf("render: edited content has no title")
	}
	if len(edited.Sections) == 0 {
		return t.ContentOutput{}, fmt.Errorf("render: edited content has no sections")
	}

	out := t.ContentOutput{
		Markdown:  renderMarkdown(edited),
		HTML:      renderHTML(edited, schema),
		WordCount: edited.TotalWordCount,
		Record: t.NormalizedRecord{
			Meta: t.RecordMeta{
				Title:            edited.Title,
				MetaTitle:        edited.MetaTitle,
				MetaDescription:  edited.MetaDescription,
				ReadabilityScore: edited.ReadabilityScore,
				SEOScore:         edited.SEOScore,
			},
			Content: t.RecordContent{
				Introduction: edited.Introduction,
				Sections:     edited.Sections,
				Conclusion:   edited.Conclusion,
				FAQ:          edited.FAQ,
			},
			Schema: schema,
		},
	}
	return out, nil
}

func renderMarkdown(c t.EditedContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	if c.Introduction != "" {
		b.WriteString(c.Introduction)
		b.WriteString("\n\n")
	}
	for _, s := range c.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Heading, s.Body)
	}
	if c.Conclusion != "" {
		fmt.Fprintf(&b, "## Conclusion\n\n%s\n\n", c.Conclusion)
	}
	if len(c.FAQ) > 0 {
		b.WriteString("## Frequently Asked Questions\n\n")
		for _, f := range c.FAQ {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", f.Question, f.Answer)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderHTML(c t.EditedContent, schema t.GeneratedSchema) string {
	var b strings.Builder
	b.WriteString("<article>\n")
	fmt.Fprintf(&b, "  <h1>%s</h1>\n", html.EscapeString(c.Title))
	if c.Introduction != "" {
		writeParagraphs(&b, c.Introduction, "  ")
	}
	for _, s := range c.Sections {
		b.WriteString("  <section>\n")
		fmt.Fprintf(&b, "    <h2>%s</h2>\n", html.EscapeString(s.Heading))
		writeParagraphs(&b, s.Body, "    ")
		b.WriteString("  </section>\n")
	}
	if c.Conclusion != "" {
		b.WriteString("  <section>\n    <h2>Conclusion</h2>\n")
		writeParagraphs(&b, c.Conclusion, "    ")
		b.WriteString("  </section>\n")
	}
	if len(c.FAQ) > 0 {
		b.WriteString("  <section>\n    <h2>Frequently Asked Questions</h2>\n")
		for _, f := range c.FAQ {
			fmt.Fprintf(&b, "    <h3>%s</h3>\n", html.EscapeString(f.Question))
			writeParagraphs(&b, f.Answer, "    ")
		}
		b.WriteString("  </section>\n")
	}
	if schema.Combined != "" {
		fmt.Fprintf(&b, "  <script type=\"application/ld+json\">\n%s\n  </script>\n", schema.Combined)
	}
	b.WriteString("</article>\n")
	return b.String()
}

// writeParagraphs splits text on blank lines into <p> tags.
func writeParagraphs(b *strings.Builder, text, indent string) {
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		fmt.Fprintf(b, "%s<p>%s</p>\n", indent, html.EscapeString(para))
	}
}

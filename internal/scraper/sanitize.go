package scraper

import (
	"html"
	"regexp"
	"strings"
)

// Sanitizer normalizes feed text before it is stored. Upstream articles carry
// stray HTML fragments, entity escapes, and truncation markers like
// "[+1234 chars]" that would otherwise pollute titles and ranked content.
type Sanitizer struct {
	htmlTags        *regexp.Regexp
	truncationMark  *regexp.Regexp
	multiWhitespace *regexp.Regexp
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		htmlTags:        regexp.MustCompile(`<[^>]*>`),
		truncationMark:  regexp.MustCompile(`\s*\[\+\d+ chars\]\s*$`),
		multiWhitespace: regexp.MustCompile(`\s+`),
	}
}

// CleanTitle strips markup and collapses whitespace, keeping the title on a
// single line.
func (s *Sanitizer) CleanTitle(title string) string {
	title = s.htmlTags.ReplaceAllString(title, "")
	title = html.UnescapeString(title)
	title = s.multiWhitespace.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// CleanContent strips markup and the upstream truncation marker while
// preserving paragraph breaks.
func (s *Sanitizer) CleanContent(content string) string {
	content = s.truncationMark.ReplaceAllString(content, "")
	content = s.htmlTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	paragraphs := strings.Split(content, "\n\n")
	cleaned := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(s.multiWhitespace.ReplaceAllString(paragraph, " "))
		if paragraph != "" {
			cleaned = append(cleaned, paragraph)
		}
	}

	return strings.Join(cleaned, "\n\n")
}

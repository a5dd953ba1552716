package services

import (
	"regexp"
	"strings"
)

// ParsedQuote is the structured result of one model completion
type ParsedQuote struct {
	Text          string  `json:"text"`
	Author        *string `json:"author"`
	Biography     *string `json:"biography"`
	Meaning       *string `json:"meaning"`
	Application   *string `json:"application"`
	AuthorSummary *string `json:"authorSummary"`
}

const (
	labelMeaning       = "MEANING:"
	labelApplication   = "APPLICATION:"
	labelAuthorSummary = "AUTHOR SUMMARY:"
)

// quoteLineRe matches the expected first line: "Quote" - Author Name
var quoteLineRe = regexp.MustCompile(`^"(.+?)"\s*-\s*(.+)$`)

// ParseQuoteText extracts quote, author, biography and the labeled
// analysis sections from a model completion. It never fails: on
// unrecognized input the whole first line becomes the quote text and
// every other field stays nil.
func ParseQuoteText(content string) *ParsedQuote {
	lines := splitLines(content)

	parsed := &ParsedQuote{}
	if len(lines) == 0 {
		parsed.Text = strings.TrimSpace(content)
		return parsed
	}

	for i, line := range lines {
		switch {
		case i == 0:
			if match := quoteLineRe.FindStringSubmatch(line); match != nil {
				parsed.Text = match[1]
				author := strings.TrimSpace(match[2])
				if author != "" {
					parsed.Author = &author
				}
			} else {
				parsed.Text = stripQuotes(line)
			}
		case i == 1 && !isLabelLine(line):
			bio := line
			parsed.Biography = &bio
		case strings.HasPrefix(line, labelMeaning):
			value := accumulateSection(lines, i, labelMeaning, labelApplication, labelAuthorSummary)
			parsed.Meaning = &value
		case strings.HasPrefix(line, labelApplication):
			value := accumulateSection(lines, i, labelApplication, labelMeaning, labelAuthorSummary)
			parsed.Application = &value
		case strings.HasPrefix(line, labelAuthorSummary):
			value := accumulateSection(lines, i, labelAuthorSummary, labelMeaning, labelApplication)
			parsed.AuthorSummary = &value
		}
	}

	if parsed.Text == "" {
		parsed.Text = lines[0]
	}
	return parsed
}

// splitLines trims each line and drops empties
func splitLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// accumulateSection takes the remainder of a label line plus every
// following line until another label starts, space-joined
func accumulateSection(lines []string, start int, label string, stopLabels ...string) string {
	parts := []string{strings.TrimSpace(strings.TrimPrefix(lines[start], label))}
	for _, line := range lines[start+1:] {
		if hasAnyPrefix(line, stopLabels) {
			break
		}
		parts = append(parts, line)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func isLabelLine(line string) bool {
	return hasAnyPrefix(line, []string{labelMeaning, labelApplication, labelAuthorSummary})
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func stripQuotes(line string) string {
	line = strings.TrimPrefix(line, `"`)
	return strings.TrimSuffix(line, `"`)
}

package digest

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const truncationMarker = "... [truncated]"

var (
	lineBreakExpr = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockEndExpr  = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|blockquote|tr|pre)>`)
	blankRunExpr  = regexp.MustCompile(`\n{3,}`)
)

// PlainText strips markup, decodes entities and collapses all whitespace
// runs into single spaces.
func PlainText(html string) string {
	marked := lineBreakExpr.ReplaceAllString(html, " ")
	marked = blockEndExpr.ReplaceAllString(marked, "${0} ")
	return strings.Join(strings.Fields(extractText(marked)), " ")
}

// ParagraphText strips markup while keeping paragraph structure: block
// element boundaries and explicit line breaks become newlines, runs of
// blank lines collapse to one blank line.
func ParagraphText(html string) string {
	marked := lineBreakExpr.ReplaceAllString(html, "\n")
	marked = blockEndExpr.ReplaceAllString(marked, "${0}\n\n")

	var lines []string
	for _, line := range strings.Split(extractText(marked), "\n") {
		lines = append(lines, strings.Join(strings.Fields(line), " "))
	}

	text := strings.Join(lines, "\n")
	text = blankRunExpr.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// HasImages reports whether the body contains image markup.
func HasImages(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Contains(strings.ToLower(html), "<img")
	}
	return doc.Find("img").Length() > 0
}

// Truncate cuts text to at most limit runes, appending a marker when
// anything was dropped.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + truncationMarker
}

func extractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("script,style").Remove()
	return doc.Text()
}

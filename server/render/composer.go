package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/theopendraft/rule-clarifier/server/data"
)

// ComposeChapter renders a chapter and its ordered rules into a full
// HTML document. Each rule gets a stable anchor keyed by its number so
// the sidebar can scroll directly to it. Titles and body text run
// through the search highlighter; catalog citations become clickable
// reference elements; tables embedded in rule content pass through
// verbatim. The rule list is taken as-is: the same composer serves
// fixture content and fetched content.
func ComposeChapter(chapter *data.Chapter, searchTerm string) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString(fmt.Sprintf("<title>Chapter %d - %s</title>\n", chapter.Number, html.EscapeString(chapter.Title)))
	b.WriteString("</head>\n<body>\n")

	b.WriteString("<header class=\"chapter-header\">\n")
	b.WriteString(fmt.Sprintf("<h1>Chapter %d</h1>\n", chapter.Number))
	b.WriteString(fmt.Sprintf("<h2>%s</h2>\n", highlightEscaped(chapter.Title, searchTerm)))
	if chapter.Section != nil && *chapter.Section != "" {
		b.WriteString(fmt.Sprintf("<p class=\"chapter-section\">%s</p>\n", html.EscapeString(*chapter.Section)))
	}
	b.WriteString("</header>\n")

	for _, rule := range chapter.Rules {
		b.WriteString(ComposeRule(rule, searchTerm))
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// ComposeRule renders a single rule section: anchor, numbered heading,
// then the body with reference markup and search highlighting applied.
func ComposeRule(rule *data.Rule, searchTerm string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<section class=\"rule\" id=\"%s\">\n", RuleAnchor(rule.Number)))
	b.WriteString(fmt.Sprintf(
		"<h3><span class=\"rule-number\">%s</span> %s</h3>\n",
		html.EscapeString(rule.Number),
		highlightEscaped(rule.Title, searchTerm),
	))

	body := MarkupReferences(rule.Content)
	body = JoinSegments(HighlightMarkup(body, searchTerm))

	b.WriteString("<div class=\"rule-body\">\n")
	b.WriteString(body)
	b.WriteString("\n</div>\n</section>\n")

	return b.String()
}

// RuleAnchor returns the DOM anchor id for a rule number.
func RuleAnchor(number string) string {
	return "rule-" + number
}

// TableHTML builds the verbatim markup for a static rule table
// (whistle codes, caution-order tables, bell signals). Rows are
// rendered in full: no sorting, filtering or pagination.
func TableHTML(caption string, headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("<table class=\"rule-table\">\n")
	if caption != "" {
		b.WriteString(fmt.Sprintf("<caption>%s</caption>\n", html.EscapeString(caption)))
	}

	if len(headers) > 0 {
		b.WriteString("<thead><tr>")
		for _, h := range headers {
			b.WriteString(fmt.Sprintf("<th>%s</th>", html.EscapeString(h)))
		}
		b.WriteString("</tr></thead>\n")
	}

	b.WriteString("<tbody>\n")
	for i, row := range rows {
		b.WriteString(fmt.Sprintf("<tr><td>%d</td>", i+1))
		for _, cell := range row {
			b.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(cell)))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")

	return b.String()
}

// highlightEscaped escapes plain text and wraps search matches. The
// escape happens per segment so highlighting never splits an entity.
func highlightEscaped(text string, searchTerm string) string {
	segments := Highlight(text, searchTerm)
	var b strings.Builder
	for _, segment := range segments {
		if segment.Match {
			b.WriteString(`<mark class="search-hit">`)
			b.WriteString(html.EscapeString(segment.Text))
			b.WriteString(`</mark>`)
		} else {
			b.WriteString(html.EscapeString(segment.Text))
		}
	}
	return b.String()
}

package render

import (
	"regexp"
	"strings"
)

// Segment is one run of rendered text. Match marks a run that matched
// the search term and should be emphasized.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into alternating plain/matched segments for a
// literal, case-insensitive search term. The term is escaped before
// matching, so regex metacharacters have no special meaning. Matching
// is non-overlapping, leftmost-first and global. Concatenating the
// returned segments always reproduces text exactly; an empty term
// returns the text as a single plain segment.
func Highlight(text string, term string) []Segment {
	if term == "" {
		return []Segment{{Text: text}}
	}

	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
	if err != nil {
		// QuoteMeta output always compiles; kept for safety
		return []Segment{{Text: text}}
	}

	matches := pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		if m[1] > m[0] {
			segments = append(segments, Segment{Text: text[m[0]:m[1]], Match: true})
		}
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}

	return segments
}

// HighlightMarkup applies Highlight to the text runs of an HTML
// fragment, leaving everything inside <...> untouched so embedded
// markup is never corrupted. Tag runs come back as plain segments.
func HighlightMarkup(markup string, term string) []Segment {
	if term == "" {
		return []Segment{{Text: markup}}
	}

	var segments []Segment
	rest := markup
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			segments = append(segments, Highlight(rest, term)...)
			break
		}

		if open > 0 {
			segments = append(segments, Highlight(rest[:open], term)...)
		}

		end := strings.IndexByte(rest[open:], '>')
		if end < 0 {
			// Unterminated tag, pass the remainder through untouched
			segments = append(segments, Segment{Text: rest[open:]})
			break
		}

		segments = append(segments, Segment{Text: rest[open : open+end+1]})
		rest = rest[open+end+1:]
	}

	return segments
}

// JoinSegments renders segments back to markup, wrapping matched runs
// in a <mark> element.
func JoinSegments(segments []Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		if segment.Match {
			b.WriteString(`<mark class="search-hit">`)
			b.WriteString(segment.Text)
			b.WriteString(`</mark>`)
		} else {
			b.WriteString(segment.Text)
		}
	}
	return b.String()
}

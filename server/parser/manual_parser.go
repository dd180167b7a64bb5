package parser

import (
	"bufio"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/theopendraft/rule-clarifier/server/data"
)

var (
	chapterHeadingPattern = regexp.MustCompile(`(?i)^CHAPTER\s+([0-9]+)\s*[-:.]?\s*(.*)$`)
	ruleHeadingPattern    = regexp.MustCompile(`^([0-9]+\.[0-9]+)\s*[-:.]?\s+(.+)$`)
)

// ManualParser parses extracted manual text into chapters and rules.
// The text-extraction service hands back plain text; headings follow
// the manual's printed conventions ("CHAPTER 4", "4.09 Rule title").
type ManualParser struct {
	sourceName string
}

// NewManualParser creates a parser for one extracted manual. The
// source name only appears in error messages.
func NewManualParser(sourceName string) *ManualParser {
	return &ManualParser{
		sourceName: sourceName,
	}
}

// ParseResult contains the parsed chapters and aggregate word count.
type ParseResult struct {
	Chapters   []*data.Chapter
	TotalWords int
}

// Parse scans the extracted text line by line. A chapter heading opens
// a new chapter; a rule heading whose number belongs to the current
// chapter opens a new rule; every other non-empty line accumulates
// into the current rule's body. Body paragraphs are escaped and
// wrapped so downstream rendering treats content as HTML.
func (p *ManualParser) Parse(text string) (*ParseResult, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var chapters []*data.Chapter
	var currentChapter *data.Chapter
	var currentRule *data.Rule
	var body []string
	totalWords := 0

	flushRule := func() {
		if currentRule == nil {
			return
		}
		currentRule.Content = paragraphs(body)
		currentRule.WordCount = countWords(strings.Join(body, " "))
		totalWords += currentRule.WordCount
		body = nil
		currentRule = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := chapterHeadingPattern.FindStringSubmatch(line); m != nil {
			flushRule()

			number, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("error parsing chapter number %q in %s: %w", m[1], p.sourceName, err)
			}

			currentChapter = &data.Chapter{
				Number: number,
				Title:  strings.TrimSpace(m[2]),
			}
			chapters = append(chapters, currentChapter)
			continue
		}

		if m := ruleHeadingPattern.FindStringSubmatch(line); m != nil && currentChapter != nil {
			if ruleBelongsToChapter(m[1], currentChapter.Number) {
				flushRule()

				currentRule = &data.Rule{
					Number:       m[1],
					Title:        strings.TrimSpace(m[2]),
					DisplayOrder: len(currentChapter.Rules) + 1,
				}
				currentChapter.Rules = append(currentChapter.Rules, currentRule)
				continue
			}
		}

		if currentChapter == nil {
			// Front matter before the first chapter heading
			continue
		}

		if currentRule == nil {
			// Text between the chapter heading and its first rule is
			// the continuation of an untitled chapter title
			if currentChapter.Title == "" {
				currentChapter.Title = line
			}
			continue
		}

		body = append(body, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning manual text for %s: %w", p.sourceName, err)
	}

	flushRule()

	if len(chapters) == 0 {
		return nil, fmt.Errorf("no chapter headings found in %s", p.sourceName)
	}

	return &ParseResult{
		Chapters:   chapters,
		TotalWords: totalWords,
	}, nil
}

// ruleBelongsToChapter reports whether a rule number like "4.09" falls
// under the given chapter number.
func ruleBelongsToChapter(ruleNumber string, chapterNumber int) bool {
	dot := strings.IndexByte(ruleNumber, '.')
	if dot < 0 {
		return false
	}
	n, err := strconv.Atoi(ruleNumber[:dot])
	if err != nil {
		return false
	}
	return n == chapterNumber
}

// paragraphs joins body lines into escaped <p> blocks.
func paragraphs(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}

// countWords counts the number of words in a text string.
func countWords(text string) int {
	if text == "" {
		return 0
	}

	words := strings.Fields(text)
	return len(words)
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManualText = `GENERAL AND SUBSIDIARY RULES
Front matter that precedes any chapter is ignored.

CHAPTER 4 - WORKING OF TRAINS GENERALLY

4.01 Timing of trains
Every train shall be run in accordance with the working time table.
Departures before the scheduled time are prohibited.

4.09 Caution Orders
A Caution Order shall be issued whenever speed restrictions apply.

CHAPTER 5
SIGNALS AND THEIR ASPECTS

5.01 Authority to pass signals
No train shall pass a stop signal at danger without authority.
`

func TestManualParser_ParsesChaptersAndRules(t *testing.T) {
	p := NewManualParser("gsr.txt")

	result, err := p.Parse(sampleManualText)
	require.NoError(t, err)
	require.Len(t, result.Chapters, 2)

	ch4 := result.Chapters[0]
	assert.Equal(t, 4, ch4.Number)
	assert.Equal(t, "WORKING OF TRAINS GENERALLY", ch4.Title)
	require.Len(t, ch4.Rules, 2)

	assert.Equal(t, "4.01", ch4.Rules[0].Number)
	assert.Equal(t, "Timing of trains", ch4.Rules[0].Title)
	assert.Equal(t, 1, ch4.Rules[0].DisplayOrder)
	assert.Contains(t, ch4.Rules[0].Content, "<p>Every train shall be run in accordance with the working time table.</p>")
	assert.Contains(t, ch4.Rules[0].Content, "Departures before the scheduled time")

	assert.Equal(t, "4.09", ch4.Rules[1].Number)
	assert.Equal(t, 2, ch4.Rules[1].DisplayOrder)
}

func TestManualParser_ChapterTitleOnFollowingLine(t *testing.T) {
	p := NewManualParser("gsr.txt")

	result, err := p.Parse(sampleManualText)
	require.NoError(t, err)

	ch5 := result.Chapters[1]
	assert.Equal(t, 5, ch5.Number)
	assert.Equal(t, "SIGNALS AND THEIR ASPECTS", ch5.Title)
	require.Len(t, ch5.Rules, 1)
	assert.Equal(t, "5.01", ch5.Rules[0].Number)
}

func TestManualParser_WordCounts(t *testing.T) {
	p := NewManualParser("gsr.txt")

	result, err := p.Parse(sampleManualText)
	require.NoError(t, err)

	total := 0
	for _, chapter := range result.Chapters {
		for _, rule := range chapter.Rules {
			assert.Positive(t, rule.WordCount)
			total += rule.WordCount
		}
	}
	assert.Equal(t, total, result.TotalWords)
}

func TestManualParser_RuleOutsideItsChapterIsBody(t *testing.T) {
	text := `CHAPTER 4 - WORKING OF TRAINS
4.01 Timing of trains
5.01 of the signal rules is referred to here, not a new rule.
`
	p := NewManualParser("gsr.txt")

	result, err := p.Parse(text)
	require.NoError(t, err)
	require.Len(t, result.Chapters, 1)
	require.Len(t, result.Chapters[0].Rules, 1)
	assert.Contains(t, result.Chapters[0].Rules[0].Content, "5.01 of the signal rules")
}

func TestManualParser_EscapesBodyMarkup(t *testing.T) {
	text := `CHAPTER 4 - WORKING OF TRAINS
4.01 Timing of trains
Speed must be < 15 km/h at the site.
`
	p := NewManualParser("gsr.txt")

	result, err := p.Parse(text)
	require.NoError(t, err)
	assert.Contains(t, result.Chapters[0].Rules[0].Content, "&lt; 15 km/h")
}

func TestManualParser_NoChaptersIsError(t *testing.T) {
	p := NewManualParser("empty.txt")

	_, err := p.Parse("just some text without headings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no chapter headings")
}

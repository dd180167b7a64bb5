package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinText(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestHighlight_EmptyTermIsIdentity(t *testing.T) {
	text := "Whistle boards are provided on the approach side."

	segments := Highlight(text, "")

	require.Len(t, segments, 1)
	assert.Equal(t, text, segments[0].Text)
	assert.False(t, segments[0].Match)
}

func TestHighlight_NoMatchIsIdentity(t *testing.T) {
	text := "The loco pilot shall sound the whistle."

	segments := Highlight(text, "signal")

	require.Len(t, segments, 1)
	assert.Equal(t, text, segments[0].Text)
	assert.False(t, segments[0].Match)
}

func TestHighlight_RoundTrip(t *testing.T) {
	texts := []string{
		"Caution Order must be issued before the work begins",
		"caution order CAUTION ORDER Caution Order",
		"",
		"no occurrences at all",
	}

	for _, text := range texts {
		segments := Highlight(text, "Caution Order")
		assert.Equal(t, text, joinText(segments))
	}
}

func TestHighlight_CaseInsensitive(t *testing.T) {
	segments := Highlight("Whistle boards", "whistle")

	require.Len(t, segments, 2)
	assert.Equal(t, "Whistle", segments[0].Text)
	assert.True(t, segments[0].Match)
	assert.Equal(t, " boards", segments[1].Text)
	assert.False(t, segments[1].Match)
}

func TestHighlight_AllOccurrencesMarked(t *testing.T) {
	segments := Highlight("stop, Stop, STOP", "stop")

	matches := 0
	for _, s := range segments {
		if s.Match {
			matches++
		}
	}
	assert.Equal(t, 3, matches)
}

func TestHighlight_MetacharactersAreLiteral(t *testing.T) {
	text := "cost $5.00 (approx) per item"

	var segments []Segment
	require.NotPanics(t, func() {
		segments = Highlight(text, "$5.00 (approx)")
	})

	matches := 0
	for _, s := range segments {
		if s.Match {
			matches++
			assert.Equal(t, "$5.00 (approx)", s.Text)
		}
	}
	assert.Equal(t, 1, matches)
	assert.Equal(t, text, joinText(segments))
}

func TestHighlight_AdjacentMatches(t *testing.T) {
	segments := Highlight("aaaa", "aa")

	// Non-overlapping leftmost-first: two matches, no remainder
	require.Len(t, segments, 2)
	assert.True(t, segments[0].Match)
	assert.True(t, segments[1].Match)
	assert.Equal(t, "aaaa", joinText(segments))
}

func TestHighlightMarkup_DoesNotTouchTags(t *testing.T) {
	markup := `<p class="stop">The train must stop here.</p>`

	segments := HighlightMarkup(markup, "stop")

	assert.Equal(t, markup, joinText(segments))
	for _, s := range segments {
		if s.Match {
			// The attribute occurrence inside the tag must not match
			assert.Equal(t, "stop", s.Text)
		}
	}

	rendered := JoinSegments(segments)
	assert.Equal(t, `<p class="stop">The train must <mark class="search-hit">stop</mark> here.</p>`, rendered)
}

func TestHighlightMarkup_EmptyTermIsIdentity(t *testing.T) {
	markup := "<p>Bell signals</p>"

	segments := HighlightMarkup(markup, "")

	require.Len(t, segments, 1)
	assert.Equal(t, markup, segments[0].Text)
}

func TestHighlightMarkup_UnterminatedTagPassesThrough(t *testing.T) {
	markup := "text before <broken"

	segments := HighlightMarkup(markup, "before")

	assert.Equal(t, markup, joinText(segments))
}

func TestJoinSegments_WrapsMatches(t *testing.T) {
	out := JoinSegments([]Segment{
		{Text: "sound the "},
		{Text: "whistle", Match: true},
	})

	assert.Equal(t, `sound the <mark class="search-hit">whistle</mark>`, out)
}

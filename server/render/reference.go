package render

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/theopendraft/rule-clarifier/server/data"
)

// NavigationPayload is the in-memory payload handed to the navigation
// collaborator when a reference is activated. It never travels as URL
// query parameters.
type NavigationPayload struct {
	Reference   string `json:"reference"`
	Description string `json:"description"`
}

// Navigator is the navigation collaborator. Navigation failures are
// its responsibility; the caller has no retry or error path.
type Navigator interface {
	Navigate(view string, payload NavigationPayload)
}

// ReferenceDetailView is the view name references navigate to.
const ReferenceDetailView = "reference-detail"

// ScanReferences finds every catalog citation occurring literally in
// the given rule content, in order of appearance. Each occurrence is
// an independent value; duplicates are expected and kept.
func ScanReferences(content string) []data.RuleReference {
	type occurrence struct {
		pos int
		ref data.RuleReference
	}

	var found []occurrence
	for citation, description := range data.ReferenceCatalog {
		offset := 0
		for {
			idx := strings.Index(content[offset:], citation)
			if idx < 0 {
				break
			}
			found = append(found, occurrence{
				pos: offset + idx,
				ref: data.RuleReference{
					Text:        citation,
					Reference:   citation,
					Description: description,
				},
			})
			offset += idx + len(citation)
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	refs := make([]data.RuleReference, 0, len(found))
	for _, occ := range found {
		refs = append(refs, occ.ref)
	}
	return refs
}

// MarkupReferences wraps every catalog citation in the content with a
// clickable reference element carrying the citation id and description.
// Citations inside existing tags are left alone.
func MarkupReferences(content string) string {
	var b strings.Builder
	rest := content
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			b.WriteString(markupReferenceText(rest))
			break
		}

		b.WriteString(markupReferenceText(rest[:open]))

		end := strings.IndexByte(rest[open:], '>')
		if end < 0 {
			b.WriteString(rest[open:])
			break
		}

		b.WriteString(rest[open : open+end+1])
		rest = rest[open+end+1:]
	}
	return b.String()
}

func markupReferenceText(text string) string {
	refs := ScanReferences(text)
	if len(refs) == 0 {
		return text
	}

	// Occurrences come back position-sorted, so a forward cursor wraps
	// each one exactly once without re-matching inside inserted anchors.
	var b strings.Builder
	cursor := 0
	for _, ref := range refs {
		idx := strings.Index(text[cursor:], ref.Text)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		b.WriteString(text[cursor:start])
		fmt.Fprintf(&b,
			`<a class="rule-ref" href="#" data-reference="%s" title="%s">%s</a>`,
			html.EscapeString(ref.Reference),
			html.EscapeString(ref.Description),
			html.EscapeString(ref.Text),
		)
		cursor = start + len(ref.Text)
	}
	b.WriteString(text[cursor:])
	return b.String()
}

// ReferenceNavigator mediates reference activation: it records a
// transient highlighted-reference marker, hands the payload to the
// navigation collaborator and clears the marker after a fixed delay.
// A re-activation before the delay elapses resets both the marker and
// the pending timer, so the delay is always measured from the latest
// activation.
type ReferenceNavigator struct {
	mu          sync.Mutex
	highlighted string
	generation  int
	timer       *time.Timer
	clearDelay  time.Duration
	navigator   Navigator
}

// NewReferenceNavigator creates a navigator with the given clear delay.
func NewReferenceNavigator(nav Navigator, clearDelay time.Duration) *ReferenceNavigator {
	return &ReferenceNavigator{
		clearDelay: clearDelay,
		navigator:  nav,
	}
}

// Activate marks the reference as highlighted, navigates to the
// reference-detail view and schedules the highlight to clear.
func (n *ReferenceNavigator) Activate(ref data.RuleReference) {
	n.mu.Lock()
	n.highlighted = ref.Reference
	if n.timer != nil {
		n.timer.Stop()
	}
	// Stop does not help against a timer that already fired and is
	// waiting on the mutex; the generation check makes such a stale
	// clear a no-op, so the delay is measured from this activation.
	n.generation++
	generation := n.generation
	n.timer = time.AfterFunc(n.clearDelay, func() { n.clearHighlight(generation) })
	n.mu.Unlock()

	if n.navigator != nil {
		n.navigator.Navigate(ReferenceDetailView, NavigationPayload{
			Reference:   ref.Reference,
			Description: ref.Description,
		})
	}
}

// Highlighted returns the currently highlighted reference id, or ""
// when no highlight is active.
func (n *ReferenceNavigator) Highlighted() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.highlighted
}

// Close cancels any pending highlight clear.
func (n *ReferenceNavigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *ReferenceNavigator) clearHighlight(generation int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if generation != n.generation {
		return
	}
	n.highlighted = ""
}

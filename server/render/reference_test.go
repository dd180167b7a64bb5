package render

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopendraft/rule-clarifier/server/data"
)

type recordingNavigator struct {
	mu       sync.Mutex
	views    []string
	payloads []NavigationPayload
}

func (n *recordingNavigator) Navigate(view string, payload NavigationPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.views = append(n.views, view)
	n.payloads = append(n.payloads, payload)
}

func (n *recordingNavigator) last() (string, NavigationPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.views) == 0 {
		return "", NavigationPayload{}
	}
	return n.views[len(n.views)-1], n.payloads[len(n.payloads)-1]
}

func TestScanReferences_FindsCatalogCitationsInOrder(t *testing.T) {
	content := "As per Para 843 of IRPWM the work requires a caution order, " +
		"see Para 814(1)(a) of IRPWM for details."

	refs := ScanReferences(content)

	require.Len(t, refs, 2)
	assert.Equal(t, "Para 843 of IRPWM", refs[0].Reference)
	assert.Equal(t, "Para 814(1)(a) of IRPWM", refs[1].Reference)
	assert.Equal(t, "Guidelines for issuing caution orders and protection during works.", refs[1].Description)
}

func TestScanReferences_KeepsDuplicates(t *testing.T) {
	content := "Para 843 of IRPWM and again Para 843 of IRPWM"

	refs := ScanReferences(content)

	require.Len(t, refs, 2)
	assert.Equal(t, refs[0].Reference, refs[1].Reference)
}

func TestScanReferences_NoCitations(t *testing.T) {
	refs := ScanReferences("no citations in this text")
	assert.Empty(t, refs)
}

func TestMarkupReferences_WrapsCitation(t *testing.T) {
	content := "<p>See Para 843 of IRPWM before starting.</p>"

	out := MarkupReferences(content)

	assert.Contains(t, out, `data-reference="Para 843 of IRPWM"`)
	assert.Contains(t, out, `class="rule-ref"`)
	assert.Contains(t, out, "Procedure for works affecting the safety of the line.")
	// Surrounding markup is untouched
	assert.Contains(t, out, "<p>See ")
	assert.Contains(t, out, " before starting.</p>")
}

func TestMarkupReferences_DuplicateCitationsWrappedIndependently(t *testing.T) {
	content := "Para 843 of IRPWM, then Para 843 of IRPWM again"

	out := MarkupReferences(content)

	assert.Equal(t, 2, strings.Count(out, `<a class="rule-ref"`))
	assert.Equal(t, 2, strings.Count(out, `</a>`))
	assert.Contains(t, out, ", then ")
	assert.True(t, strings.HasSuffix(out, " again"))
}

func TestReferenceNavigator_ActivateSetsMarkerAndNavigates(t *testing.T) {
	nav := &recordingNavigator{}
	rn := NewReferenceNavigator(nav, 50*time.Millisecond)
	defer rn.Close()

	ref := data.RuleReference{
		Text:        "Para 814(1)(a) of IRPWM",
		Reference:   "Para 814(1)(a) of IRPWM",
		Description: "Guidelines for issuing caution orders and protection during works.",
	}
	rn.Activate(ref)

	assert.Equal(t, "Para 814(1)(a) of IRPWM", rn.Highlighted())

	view, payload := nav.last()
	assert.Equal(t, ReferenceDetailView, view)
	assert.Equal(t, "Para 814(1)(a) of IRPWM", payload.Reference)
	assert.Equal(t, "Guidelines for issuing caution orders and protection during works.", payload.Description)
}

func TestReferenceNavigator_HighlightAutoClears(t *testing.T) {
	rn := NewReferenceNavigator(&recordingNavigator{}, 20*time.Millisecond)
	defer rn.Close()

	rn.Activate(data.RuleReference{Reference: "Para 843 of IRPWM"})
	require.Equal(t, "Para 843 of IRPWM", rn.Highlighted())

	assert.Eventually(t, func() bool {
		return rn.Highlighted() == ""
	}, time.Second, 5*time.Millisecond)
}

func TestReferenceNavigator_ReactivationResetsTimer(t *testing.T) {
	rn := NewReferenceNavigator(&recordingNavigator{}, 60*time.Millisecond)
	defer rn.Close()

	rn.Activate(data.RuleReference{Reference: "Para 843 of IRPWM"})
	time.Sleep(40 * time.Millisecond)
	rn.Activate(data.RuleReference{Reference: "Para 806 of IRPWM"})

	// The first activation's deadline has passed, but the second
	// activation reset the timer, so the marker is still set.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, "Para 806 of IRPWM", rn.Highlighted())

	assert.Eventually(t, func() bool {
		return rn.Highlighted() == ""
	}, time.Second, 5*time.Millisecond)
}

func TestReferenceNavigator_FiredTimerDoesNotClearNewActivation(t *testing.T) {
	rn := NewReferenceNavigator(nil, 20*time.Millisecond)
	defer rn.Close()

	// Re-activate right at the previous deadline over and over: the
	// old timer fires around the same instant the new marker is set,
	// and it must never clear it.
	for i := 0; i < 20; i++ {
		rn.Activate(data.RuleReference{Reference: "Para 843 of IRPWM"})
		time.Sleep(20 * time.Millisecond)
		rn.Activate(data.RuleReference{Reference: "Para 806 of IRPWM"})
		require.Equal(t, "Para 806 of IRPWM", rn.Highlighted())
	}
}

func TestReferenceNavigator_CloseCancelsPendingClear(t *testing.T) {
	rn := NewReferenceNavigator(&recordingNavigator{}, 20*time.Millisecond)

	rn.Activate(data.RuleReference{Reference: "Para 843 of IRPWM"})
	rn.Close()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, "Para 843 of IRPWM", rn.Highlighted())
}

func TestReferenceNavigator_NilCollaborator(t *testing.T) {
	rn := NewReferenceNavigator(nil, 20*time.Millisecond)
	defer rn.Close()

	require.NotPanics(t, func() {
		rn.Activate(data.RuleReference{Reference: "Para 843 of IRPWM"})
	})
}

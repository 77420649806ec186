package focus

import (
	"github.com/odvcencio/focuskit/pkg/dom"
	fkerrors "github.com/odvcencio/focuskit/pkg/errors"
	"github.com/odvcencio/focuskit/pkg/logging"
	"github.com/odvcencio/focuskit/pkg/telemetry"
)

// validate reconciles a pending focus change against modalizer
// ownership before it is published. It always refreshes the current
// grouper selection. A non-programmatic move landing outside the active
// modalizer is redirected back inside the active root (or blurred when
// the root has no focusable content); the redirect re-enters the focus
// handlers and supersedes the pending snapshot.
func (t *Tracker) validate(el *dom.Element, details Details) {
	t.query.SetCurrentGrouper(t.query.FindGrouper(el))

	if t.roots == nil {
		return
	}
	rm := t.roots.FindRootAndModalizer(el)
	if rm == nil || rm.Modalizer == nil {
		return
	}

	curID := rm.Root.CurrentModalizerID()
	if rm.Modalizer.UserID() == curID {
		return
	}
	if curID == "" || details.IsFocusedProgrammatically {
		// An unowned root adopts the modalizer; privileged moves are
		// allowed to switch modal scope.
		rm.Root.SetCurrentModalizerID(rm.Modalizer.UserID())
		return
	}

	// Unprivileged focus escaped the active modal scope.
	first := t.query.FindFirst(rm.Root.Element())
	if first == nil {
		// Nothing inside the root can take focus; yield to nothing
		// rather than trapping incorrectly.
		t.log.Debug("modalizer reconciliation blurring",
			"element", logging.ElementLabel(el),
			"root", rm.Root.UID())
		wasNil := t.val.Get() == nil
		el.Blur()
		if wasNil && t.val.Get() == nil {
			// The rejected element held focus briefly even though it was
			// never published, so the blur deduped against the already
			// absent value. Subscribers still need to hear it.
			t.val.Publish(nil, Details{})
		}
		return
	}

	target := first
	if dom.Precedes(first, el) {
		// Keep the redirect consistent with traversal direction: when
		// the offender sits past the root's first focusable, wrap to
		// the end of the document instead.
		target = t.query.FindLast(nil)
	}
	if target == nil {
		panic(fkerrors.New(fkerrors.ErrCodeQueryInconsistent,
			"focusable query produced a first element but no last element").
			WithContext("root", rm.Root.UID()))
	}

	telemetry.CountModalizerRedirect()
	t.log.Debug("modalizer reconciliation redirecting",
		"from", logging.ElementLabel(el),
		"to", logging.ElementLabel(target),
		"modalizer", curID)
	t.doc.FocusNative(target)
}

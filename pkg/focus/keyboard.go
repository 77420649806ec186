package focus

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/grouper"
	"github.com/odvcencio/focuskit/pkg/logging"
	"github.com/odvcencio/focuskit/pkg/modalizer"
	"github.com/odvcencio/focuskit/pkg/telemetry"
)

// KeyboardHandler arbitrates Tab and grouper-navigation keys for one
// document. It runs in the capture phase, before the published focus
// value reflects the key's outcome, and moves focus through the
// undecorated primitive so keyboard transitions are never attributed as
// programmatic.
type KeyboardHandler struct {
	doc      *dom.Document
	tracker  *Tracker
	query    Query
	groupers *grouper.Registry
	roots    RootResolver
	log      *logging.Logger

	off func()
}

// KeyboardOptions configure a KeyboardHandler.
type KeyboardOptions struct {
	Document *dom.Document
	Tracker  *Tracker
	Query    Query
	Groupers *grouper.Registry
	Roots    RootResolver
	Logger   *logging.Logger
}

// NewKeyboardHandler attaches a capture-phase keydown listener.
func NewKeyboardHandler(opts KeyboardOptions) *KeyboardHandler {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	h := &KeyboardHandler{
		doc:      opts.Document,
		tracker:  opts.Tracker,
		query:    opts.Query,
		groupers: opts.Groupers,
		roots:    opts.Roots,
		log:      log,
	}
	h.off = h.doc.AddKeyListener(h.onKeyDown)
	return h
}

// Dispose detaches the keydown listener.
func (h *KeyboardHandler) Dispose() {
	if h.off != nil {
		h.off()
		h.off = nil
	}
}

func (h *KeyboardHandler) onKeyDown(e *dom.KeyboardEvent) {
	switch e.Key {
	case dom.KeyTab:
		h.traced(e, h.handleTab)
	case dom.KeyEnter, dom.KeyEscape,
		dom.KeyUp, dom.KeyDown, dom.KeyLeft, dom.KeyRight,
		dom.KeyPageUp, dom.KeyPageDown, dom.KeyHome, dom.KeyEnd:
		h.traced(e, h.handleGrouperKey)
	}
}

// traced runs one arbitration under a span recording the key and whether
// the handler claimed it.
func (h *KeyboardHandler) traced(e *dom.KeyboardEvent, fn func(*dom.KeyboardEvent)) {
	_, span := telemetry.StartSpan(context.Background(), "focus.keydown",
		trace.WithAttributes(
			attribute.String("key", e.Key.String()),
			attribute.Bool("shift", e.Shift),
		))
	defer span.End()
	fn(e)
	span.SetAttributes(attribute.Bool("default_prevented", e.DefaultPrevented()))
}

// handleTab decides whether default Tab traversal proceeds, is
// redirected, or is trapped.
func (h *KeyboardHandler) handleTab(e *dom.KeyboardEvent) {
	cur := h.tracker.GetFocusedElement()
	if cur == nil {
		return
	}

	var rm *modalizer.RootAndModalizer
	if h.roots != nil {
		rm = h.roots.FindRootAndModalizer(cur)
	}
	if rm == nil && !h.query.IsInCurrentGrouper(cur) {
		// Not our territory; let default traversal happen.
		return
	}

	// Stale-selection correction: when a different modalizer id is
	// current on the root, traverse relative to that modalizer instead.
	if rm != nil && rm.Modalizer != nil {
		if id := rm.Root.CurrentModalizerID(); id != "" && id != rm.Modalizer.UserID() {
			if other := rm.Root.ModalizerByID(id); other != nil && other.Element() != nil {
				cur = other.Element()
			}
		}
	}

	var next *dom.Element
	if e.Shift {
		next = h.query.FindPrev(cur, nil)
	} else {
		next = h.query.FindNext(cur, nil)
	}

	next = h.applyGrouperOverride(cur, next, e.Shift)

	if rm != nil && rm.Modalizer != nil && next != nil && h.leavesActiveModalizer(rm, next) {
		if rm.Modalizer.OnBeforeFocusOut() {
			// Vetoed: the key does nothing at all.
			e.PreventDefault()
			e.StopPropagation()
			return
		}
	}

	telemetry.CountKeyEvent(e.Key.String())
	if next != nil {
		e.PreventDefault()
		// No programmatic bookkeeping: keyboard moves are attributed
		// as user transitions.
		h.doc.FocusNative(next)
		return
	}
	if rm != nil {
		rm.Root.MoveOutWithDefaultAction(e.Shift)
	}
}

// applyGrouperOverride rewrites the default traversal target when the
// current element sits inside a limited grouper.
func (h *KeyboardHandler) applyGrouperOverride(cur, next *dom.Element, shift bool) *dom.Element {
	gEl := h.query.FindGrouper(cur)
	if gEl == nil || h.groupers == nil {
		return next
	}
	g := h.groupers.ForElement(gEl)
	if g == nil {
		return next
	}

	if g.IsLimited() {
		if next != nil && gEl.Contains(next) {
			return next
		}
		// Traversal would leave the trap; wrap inside it instead.
		telemetry.CountTrapWrap()
		if shift {
			return h.query.FindLast(gEl)
		}
		if first := h.query.FindFirst(gEl); first != nil {
			return h.query.FindNext(first, gEl)
		}
		return next
	}

	// Leaving an unlimited grouper from its first element: a limited
	// parent grouper refuses to let traversal escape it.
	if cur == h.query.FindFirst(gEl) {
		if pEl := h.query.FindGrouper(gEl.Parent()); pEl != nil {
			if pg := h.groupers.ForElement(pEl); pg != nil && pg.IsLimited() {
				if next == nil || !pEl.Contains(next) {
					return cur
				}
			}
		}
	}
	return next
}

// leavesActiveModalizer reports whether landing on next would exit the
// active modal scope: a different root, no modalizer, or a modalizer
// whose id is not the root's current one.
func (h *KeyboardHandler) leavesActiveModalizer(rm *modalizer.RootAndModalizer, next *dom.Element) bool {
	nrm := h.roots.FindRootAndModalizer(next)
	if nrm == nil || nrm.Root.UID() != rm.Root.UID() || nrm.Modalizer == nil {
		return true
	}
	return nrm.Modalizer.UserID() != nrm.Root.CurrentModalizerID()
}

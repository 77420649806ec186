package focus

import (
	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/grouper"
	"github.com/odvcencio/focuskit/pkg/logging"
	"github.com/odvcencio/focuskit/pkg/query"
	"github.com/odvcencio/focuskit/pkg/telemetry"
)

// handleGrouperKey implements directional movement between sibling
// groupers and entering/exiting limited (focus-trapping) groupers.
// Keys only apply when the focused element resolves to an enclosing
// grouper; otherwise the event passes through untouched.
func (h *KeyboardHandler) handleGrouperKey(e *dom.KeyboardEvent) {
	cur := h.tracker.GetFocusedElement()
	if cur == nil || h.groupers == nil {
		return
	}
	gEl := h.query.FindGrouper(cur)
	if gEl == nil {
		return
	}
	g := h.groupers.ForElement(gEl)
	if g == nil {
		return
	}

	// Text-entry controls own the caret; never hijack horizontal arrows.
	if (e.Key == dom.KeyLeft || e.Key == dom.KeyRight) && cur.IsTextInput() {
		return
	}

	var next *dom.Element
	switch e.Key {
	case dom.KeyEnter:
		if !g.IsLimited() || cur != h.query.FindFirst(gEl) {
			return
		}
		next = h.query.FindNext(cur, gEl)
		if next == nil {
			// Nothing inside to enter; pass the key through.
			return
		}
		g.SetUnlimited(true)

	case dom.KeyEscape:
		opEl, op := gEl, g
		if g.IsLimited() {
			if pg := h.groupers.Parent(g); pg != nil {
				opEl, op = pg.Element(), pg
			}
		}
		if op.IsLimited() {
			return
		}
		op.SetUnlimited(false)
		next = opEl

	case dom.KeyUp, dom.KeyDown, dom.KeyLeft, dom.KeyRight:
		next = h.findDirectional(gEl, g, e.Key)

	case dom.KeyPageDown, dom.KeyPageUp:
		forward := e.Key == dom.KeyPageDown
		next = h.findVisibleRunEdge(gEl, forward)
		if next != nil {
			dom.ScrollIntoView(next, forward)
		}

	case dom.KeyHome, dom.KeyEnd:
		parent := gEl.Parent()
		if parent == nil {
			return
		}
		if e.Key == dom.KeyHome {
			next = h.query.FindFirstGrouper(parent)
		} else {
			next = h.query.FindLastGrouper(parent)
		}

	default:
		return
	}

	telemetry.CountKeyEvent(e.Key.String())

	if next != nil {
		target := next
		if !h.query.IsFocusable(target, query.Options{}) {
			// Substitute the first focusable descendant, ignoring any
			// nested grouper semantics for the inner search.
			target = h.query.FindFirst(next)
		}
		if target != nil {
			if sel := h.query.FindGrouper(target); sel != nil {
				h.query.SetCurrentGrouper(sel)
			}
			h.query.SetKeyboardNavActive(true)
			h.log.Debug("grouper navigation",
				"key", e.Key.String(),
				"to", logging.ElementLabel(target))
			h.doc.FocusNative(target)
		}
	}

	e.PreventDefault()
	e.StopPropagation()
}

// findDirectional resolves an arrow key to a sibling grouper, honoring
// the grouper's declared direction policy.
func (h *KeyboardHandler) findDirectional(gEl *dom.Element, g *grouper.Grouper, key dom.Key) *dom.Element {
	dir := g.BasicProps().NextDirection
	vertical := key == dom.KeyUp || key == dom.KeyDown
	if vertical && dir == grouper.DirectionHorizontal {
		return nil
	}
	if !vertical && dir == grouper.DirectionVertical {
		return nil
	}

	if dir == grouper.DirectionBoth && vertical {
		return h.findOrthogonal(gEl, key == dom.KeyDown)
	}

	if key == dom.KeyDown || key == dom.KeyRight {
		return h.query.FindNextGrouper(gEl)
	}
	return h.query.FindPrevGrouper(gEl)
}

// findOrthogonal performs the geometric tie-break for vertical movement
// when groupers flow in both directions: walk siblings in the requested
// direction, find the first row strictly beyond the source's top, prefer
// the first candidate in that row whose horizontal position also crosses
// the source's left edge (turning the corner), otherwise take the last
// candidate before the row changes again. Exhausting the walk falls back
// to the last sibling visited.
func (h *KeyboardHandler) findOrthogonal(gEl *dom.Element, down bool) *dom.Element {
	from := gEl.Rect()

	step := h.query.FindPrevGrouper
	if down {
		step = h.query.FindNextGrouper
	}

	beyond := func(r dom.Rect) bool {
		if down {
			return r.Top() > from.Top()
		}
		return r.Top() < from.Top()
	}
	turnsCorner := func(r dom.Rect) bool {
		if down {
			return r.Left() >= from.Left()
		}
		return r.Left() <= from.Left()
	}

	var lastVisited, rowCandidate *dom.Element
	var rowTop float64
	inRow := false

	for el := step(gEl); el != nil; el = step(el) {
		lastVisited = el
		r := el.Rect()
		if !beyond(r) {
			continue
		}
		if !inRow {
			inRow = true
			rowTop = r.Top()
		} else if r.Top() != rowTop {
			// Row changed again; settle for the last in-row candidate.
			break
		}
		if turnsCorner(r) {
			return el
		}
		rowCandidate = el
	}

	if rowCandidate != nil {
		return rowCandidate
	}
	return lastVisited
}

// findVisibleRunEdge walks sibling groupers in the given direction while
// each one remains vertically visible in its scroll container, returning
// the last grouper reached before visibility breaks.
func (h *KeyboardHandler) findVisibleRunEdge(gEl *dom.Element, forward bool) *dom.Element {
	step := h.query.FindPrevGrouper
	if forward {
		step = h.query.FindNextGrouper
	}

	var target *dom.Element
	for el := step(gEl); el != nil; el = step(el) {
		if !dom.IsVerticallyVisible(el) {
			break
		}
		target = el
	}
	return target
}

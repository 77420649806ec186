package query

import (
	"github.com/odvcencio/focuskit/pkg/dom"
)

// FindGrouper returns the container element of the innermost grouper
// enclosing el (el itself when it is a grouper container), or nil.
func (e *Engine) FindGrouper(el *dom.Element) *dom.Element {
	if e.groupers == nil {
		return nil
	}
	return e.groupers.FindContainer(el)
}

// FindFirstGrouper returns the first grouper container among scope's
// descendants in document order. A nil scope means the document body.
func (e *Engine) FindFirstGrouper(scope *dom.Element) *dom.Element {
	containers := e.grouperContainers(scope)
	if len(containers) == 0 {
		return nil
	}
	return containers[0]
}

// FindLastGrouper returns the last grouper container among scope's
// descendants in document order. A nil scope means the document body.
func (e *Engine) FindLastGrouper(scope *dom.Element) *dom.Element {
	containers := e.grouperContainers(scope)
	if len(containers) == 0 {
		return nil
	}
	return containers[len(containers)-1]
}

// FindNextGrouper returns the sibling grouper following from in document
// order: the next grouper container sharing from's enclosing grouper
// scope. from must itself be a grouper container.
func (e *Engine) FindNextGrouper(from *dom.Element) *dom.Element {
	return e.siblingGrouper(from, false)
}

// FindPrevGrouper returns the sibling grouper preceding from in document
// order. from must itself be a grouper container.
func (e *Engine) FindPrevGrouper(from *dom.Element) *dom.Element {
	return e.siblingGrouper(from, true)
}

func (e *Engine) siblingGrouper(from *dom.Element, reverse bool) *dom.Element {
	if e.groupers == nil || from == nil {
		return nil
	}
	parentScope := e.groupers.FindContainer(from.Parent())
	siblings := e.grouperContainers(parentScope)
	for i, c := range siblings {
		if c != from {
			continue
		}
		if reverse {
			if i > 0 {
				return siblings[i-1]
			}
		} else if i+1 < len(siblings) {
			return siblings[i+1]
		}
		return nil
	}
	return nil
}

// grouperContainers returns the grouper containers directly scoped to
// scope: containers whose nearest enclosing grouper is scope itself (or
// none, when scope is the body). Document order.
func (e *Engine) grouperContainers(scope *dom.Element) []*dom.Element {
	if e.groupers == nil {
		return nil
	}
	scope = e.scopeOrBody(scope)
	if scope == nil {
		return nil
	}
	key := grouperScopeKey(e, scope)
	var out []*dom.Element
	walk(scope, func(el *dom.Element) bool {
		if e.groupers.IsGrouperElement(el) && e.groupers.FindContainer(el.Parent()) == key {
			out = append(out, el)
		}
		return true
	})
	return out
}

// grouperScopeKey normalizes the scope used for sibling comparison: a
// grouper container compares as itself, the body compares as nil.
func grouperScopeKey(e *Engine, scope *dom.Element) *dom.Element {
	if e.groupers.IsGrouperElement(scope) {
		return scope
	}
	return e.groupers.FindContainer(scope)
}

// SetCurrentGrouper records el as the current grouper selection. A nil
// el clears the selection.
func (e *Engine) SetCurrentGrouper(el *dom.Element) {
	e.currentGrouper = el
}

// CurrentGrouper returns the current grouper selection, pruned to nil
// when the held container detached from the document.
func (e *Engine) CurrentGrouper() *dom.Element {
	if e.currentGrouper != nil && !e.currentGrouper.IsAttached() {
		e.currentGrouper = nil
	}
	return e.currentGrouper
}

// IsInCurrentGrouper reports whether el lies inside the current grouper
// selection.
func (e *Engine) IsInCurrentGrouper(el *dom.Element) bool {
	cur := e.CurrentGrouper()
	return cur != nil && cur.Contains(el)
}

// SetKeyboardNavActive flips the keyboard-navigation mode flag consumed
// by focus-ring renderers.
func (e *Engine) SetKeyboardNavActive(active bool) {
	e.keyboardNav = active
}

// IsKeyboardNavActive reports whether keyboard-navigation mode is on.
func (e *Engine) IsKeyboardNavActive() bool { return e.keyboardNav }

// Package query implements the focusable-element engine: focusability and
// visibility policy, document-order traversal of focusable elements, and
// grouper-scoped lookups. The focus core consumes it through the
// focus.Query interface, so alternative engines (e.g. virtualized
// content) can be substituted.
package query

import (
	"strconv"

	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/grouper"
)

// Attributes understood by the engine.
const (
	// AttrDefault marks a container's designated default element.
	AttrDefault = "data-focus-default"

	// AttrIgnore marks elements whose focus events must not be tracked.
	AttrIgnore = "data-focus-ignore"
)

// Options adjust a focusability check.
type Options struct {
	// IncludeProgrammaticallyFocusable accepts elements with a negative
	// tabindex, reachable only by programmatic focus.
	IncludeProgrammaticallyFocusable bool

	// NoVisibleCheck skips the visibility requirement.
	NoVisibleCheck bool

	// NoAccessibleCheck skips the assistive-technology accessibility
	// requirement (aria-hidden).
	NoAccessibleCheck bool
}

// Engine answers focusable-element queries over one document.
type Engine struct {
	doc      *dom.Document
	groupers *grouper.Registry

	currentGrouper *dom.Element
	keyboardNav    bool
}

// NewEngine creates an engine over doc using the given grouper registry.
func NewEngine(doc *dom.Document, groupers *grouper.Registry) *Engine {
	return &Engine{doc: doc, groupers: groupers}
}

// IsFocusable reports whether el can receive focus under opts.
func (e *Engine) IsFocusable(el *dom.Element, opts Options) bool {
	if el == nil || !el.IsAttached() {
		return false
	}
	tabIndex, hasTabIndex := tabIndexOf(el)
	if !el.IntrinsicallyFocusable() && !hasTabIndex {
		return false
	}
	if hasTabIndex && tabIndex < 0 && !opts.IncludeProgrammaticallyFocusable {
		return false
	}
	if !opts.NoVisibleCheck && !e.IsVisible(el) {
		return false
	}
	if !opts.NoAccessibleCheck && !e.IsAccessible(el) {
		return false
	}
	return true
}

// IsVisible reports whether el is attached and not hidden by itself or
// an ancestor.
func (e *Engine) IsVisible(el *dom.Element) bool {
	return dom.IsVisible(el)
}

// IsAccessible reports whether el is exposed to assistive technology:
// neither it nor an ancestor carries aria-hidden="true".
func (e *Engine) IsAccessible(el *dom.Element) bool {
	for n := el; n != nil; n = n.Parent() {
		if v, ok := n.Attribute(dom.AttrAriaHidden); ok && v == "true" {
			return false
		}
	}
	return true
}

// ShouldIgnoreFocus reports whether focus events on el must be dropped
// by the tracker (el or an ancestor opted out of tracking).
func (e *Engine) ShouldIgnoreFocus(el *dom.Element) bool {
	for n := el; n != nil; n = n.Parent() {
		if n.HasAttribute(AttrIgnore) {
			return true
		}
	}
	return false
}

// FindFirst returns the first focusable element within scope in document
// order, or nil. A nil scope means the document body.
func (e *Engine) FindFirst(scope *dom.Element) *dom.Element {
	return e.findEdge(scope, false)
}

// FindLast returns the last focusable element within scope in document
// order, or nil. A nil scope means the document body.
func (e *Engine) FindLast(scope *dom.Element) *dom.Element {
	return e.findEdge(scope, true)
}

func (e *Engine) findEdge(scope *dom.Element, last bool) *dom.Element {
	scope = e.scopeOrBody(scope)
	if scope == nil {
		return nil
	}
	var found *dom.Element
	walk(scope, func(el *dom.Element) bool {
		if e.IsFocusable(el, Options{}) {
			found = el
			return last // stop at the first hit unless scanning for the last
		}
		return true
	})
	return found
}

// FindNext returns the focusable element after from in document order
// within scope, or nil. A nil scope means the document body.
func (e *Engine) FindNext(from *dom.Element, scope *dom.Element) *dom.Element {
	return e.findRelative(from, scope, false)
}

// FindPrev returns the focusable element before from in document order
// within scope, or nil. A nil scope means the document body.
func (e *Engine) FindPrev(from *dom.Element, scope *dom.Element) *dom.Element {
	return e.findRelative(from, scope, true)
}

func (e *Engine) findRelative(from *dom.Element, scope *dom.Element, reverse bool) *dom.Element {
	scope = e.scopeOrBody(scope)
	if scope == nil || from == nil {
		return nil
	}
	var found *dom.Element
	passed := false
	walk(scope, func(el *dom.Element) bool {
		if el == from {
			passed = true
			return true
		}
		if !e.IsFocusable(el, Options{}) {
			return true
		}
		if reverse {
			if passed {
				return false
			}
			found = el // remember the latest one before from
			return true
		}
		if passed {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindDefault returns the container's designated default element: the
// first descendant marked with AttrDefault that can be focused, allowing
// programmatic-only targets.
func (e *Engine) FindDefault(container *dom.Element) *dom.Element {
	container = e.scopeOrBody(container)
	if container == nil {
		return nil
	}
	var found *dom.Element
	walk(container, func(el *dom.Element) bool {
		if el.HasAttribute(AttrDefault) &&
			e.IsFocusable(el, Options{IncludeProgrammaticallyFocusable: true}) {
			found = el
			return false
		}
		return true
	})
	return found
}

func (e *Engine) scopeOrBody(scope *dom.Element) *dom.Element {
	if scope != nil {
		return scope
	}
	if e.doc == nil {
		return nil
	}
	return e.doc.Body()
}

func tabIndexOf(el *dom.Element) (int, bool) {
	v, ok := el.Attribute(dom.AttrTabIndex)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// walk visits scope's descendants (not scope itself) in document order.
// The visitor returns false to stop the walk.
func walk(scope *dom.Element, visit func(*dom.Element) bool) {
	var rec func(el *dom.Element) bool
	rec = func(el *dom.Element) bool {
		for _, c := range el.Children() {
			if !visit(c) {
				return false
			}
			if !rec(c) {
				return false
			}
		}
		return true
	}
	rec(scope)
}

// Package focus implements the focus-tracking state machine and the
// keyboard-navigation arbiter: it observes focusin/focusout events,
// republishes a single authoritative "currently focused element" value,
// attributes programmatic focus exactly once, intercepts Tab and arrow
// traversal, and reconciles every focus change against grouper trapping
// rules and modalizer ownership.
//
// Everything here is synchronous and single-goroutine: handlers run to
// completion inside event dispatch, and re-entrant focus changes are
// arbitrated by a monotonic snapshot sequence so only the most recent
// change is ever published.
package focus

import (
	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/modalizer"
	"github.com/odvcencio/focuskit/pkg/query"
)

// Ability describes what the tracker knows about a related target's
// focusability at the time a snapshot was built.
type Ability int

const (
	AbilityUnknown Ability = iota
	AbilityFocusable
	AbilityNotFocusable
)

// Details accompany a published focus value.
type Details struct {
	// RelatedTarget is the other endpoint of the transition: the element
	// that lost focus. Nil when focus entered from nothing.
	RelatedTarget *dom.Element

	// IsFocusedProgrammatically is true when the transition was caused
	// by application code rather than direct user interaction.
	IsFocusedProgrammatically bool

	// RelatedTargetAbility records whether RelatedTarget was focusable
	// when the snapshot was built.
	RelatedTargetAbility Ability
}

// Snapshot pairs a focused element (nil when focus left the document)
// with the details of how it got focus.
type Snapshot struct {
	Element *dom.Element
	Details Details
}

// Query is the focusable-element contract the core consumes. The default
// implementation is *query.Engine.
type Query interface {
	IsFocusable(el *dom.Element, opts query.Options) bool
	IsVisible(el *dom.Element) bool
	ShouldIgnoreFocus(el *dom.Element) bool

	FindFirst(scope *dom.Element) *dom.Element
	FindLast(scope *dom.Element) *dom.Element
	FindNext(from, scope *dom.Element) *dom.Element
	FindPrev(from, scope *dom.Element) *dom.Element
	FindDefault(container *dom.Element) *dom.Element

	FindGrouper(el *dom.Element) *dom.Element
	FindFirstGrouper(scope *dom.Element) *dom.Element
	FindLastGrouper(scope *dom.Element) *dom.Element
	FindNextGrouper(from *dom.Element) *dom.Element
	FindPrevGrouper(from *dom.Element) *dom.Element

	SetCurrentGrouper(el *dom.Element)
	CurrentGrouper() *dom.Element
	IsInCurrentGrouper(el *dom.Element) bool
	SetKeyboardNavActive(active bool)
	IsKeyboardNavActive() bool
}

// RootResolver resolves elements to their (root, modalizer) pair. The
// default implementation is *modalizer.Registry.
type RootResolver interface {
	FindRootAndModalizer(el *dom.Element) *modalizer.RootAndModalizer
}

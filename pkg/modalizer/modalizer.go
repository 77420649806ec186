// Package modalizer tracks modal scopes and the roots that own them.
// A root is a top-level region of the document; each root carries at most
// one "current" modalizer id at a time, constraining focus to that modal
// scope until the id changes.
package modalizer

import (
	"math/rand"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/focuskit/pkg/dom"
)

// Modalizer is one modal scope inside a root.
type Modalizer struct {
	userID  string
	element *dom.Element

	onBeforeFocusOut func() bool
}

// UserID returns the application-assigned modalizer id.
func (m *Modalizer) UserID() string { return m.userID }

// Element returns the modalizer's container element.
func (m *Modalizer) Element() *dom.Element { return m.element }

// SetOnBeforeFocusOut installs the veto callback consulted before focus
// is allowed to leave the modalizer. Returning true vetoes the exit.
func (m *Modalizer) SetOnBeforeFocusOut(fn func() bool) {
	m.onBeforeFocusOut = fn
}

// OnBeforeFocusOut asks the modalizer whether the pending focus exit
// should be vetoed. Without a callback the exit is allowed.
func (m *Modalizer) OnBeforeFocusOut() bool {
	if m.onBeforeFocusOut == nil {
		return false
	}
	return m.onBeforeFocusOut()
}

// MoveOutFunc handles focus leaving a root with the default action
// still wanted, e.g. handing focus to browser chrome. reverse is true
// for Shift+Tab direction.
type MoveOutFunc func(reverse bool)

// Root is a top-level scope owning the current-modalizer relation.
type Root struct {
	uid     string
	element *dom.Element

	currentModalizerID string
	modalizers         map[string]*Modalizer

	moveOut MoveOutFunc
}

// UID returns the root's unique id.
func (r *Root) UID() string { return r.uid }

// Element returns the root's container element.
func (r *Root) Element() *dom.Element { return r.element }

// CurrentModalizerID returns the id of the root's current modalizer,
// or "" when none is current.
func (r *Root) CurrentModalizerID() string { return r.currentModalizerID }

// SetCurrentModalizerID makes the given modalizer id current, or clears
// the relation when id is "".
func (r *Root) SetCurrentModalizerID(id string) {
	r.currentModalizerID = id
}

// ModalizerByID returns the root's modalizer with the given user id.
func (r *Root) ModalizerByID(id string) *Modalizer {
	return r.modalizers[id]
}

// AddModalizer registers a modal scope inside the root. Registering an
// id twice replaces the element binding.
func (r *Root) AddModalizer(userID string, el *dom.Element) *Modalizer {
	m := &Modalizer{userID: userID, element: el}
	r.modalizers[userID] = m
	return m
}

// RemoveModalizer unregisters a modal scope, clearing the current id if
// it pointed at the removed scope.
func (r *Root) RemoveModalizer(userID string) {
	delete(r.modalizers, userID)
	if r.currentModalizerID == userID {
		r.currentModalizerID = ""
	}
}

// SetMoveOut installs the handler for focus leaving the root with the
// default action.
func (r *Root) SetMoveOut(fn MoveOutFunc) { r.moveOut = fn }

// MoveOutWithDefaultAction hands focus out of the root in the requested
// direction. Without a handler the document is blurred, yielding focus
// to nothing rather than keeping it misplaced.
func (r *Root) MoveOutWithDefaultAction(reverse bool) {
	if r.moveOut != nil {
		r.moveOut(reverse)
		return
	}
	if r.element != nil {
		if doc := r.element.Document(); doc != nil {
			doc.Blur()
		}
	}
}

// RootAndModalizer pairs a resolved root with the modalizer containing
// the queried element, when any.
type RootAndModalizer struct {
	Root      *Root
	Modalizer *Modalizer
}

// Registry resolves elements to their (root, modalizer) pair.
type Registry struct {
	roots   map[*dom.Element]*Root
	entropy *rand.Rand
}

// NewRegistry creates an empty root registry.
func NewRegistry() *Registry {
	return &Registry{
		roots:   make(map[*dom.Element]*Root),
		entropy: rand.New(rand.NewSource(int64(ulid.Now()))), //nolint:gosec // uids, not secrets
	}
}

// CreateRoot registers el as a root scope. Registering the same element
// again returns the existing root.
func (r *Registry) CreateRoot(el *dom.Element) *Root {
	if root, ok := r.roots[el]; ok {
		return root
	}
	root := &Root{
		uid:        ulid.MustNew(ulid.Now(), r.entropy).String(),
		element:    el,
		modalizers: make(map[string]*Modalizer),
	}
	r.roots[el] = root
	return root
}

// RemoveRoot unregisters the root for el.
func (r *Registry) RemoveRoot(el *dom.Element) {
	delete(r.roots, el)
}

// RootForElement returns the root registered for exactly this element.
func (r *Registry) RootForElement(el *dom.Element) *Root {
	return r.roots[el]
}

// FindRootAndModalizer resolves el to the innermost enclosing root and,
// when el sits inside one of that root's modal scopes, the modalizer.
// Returns nil when el is outside every root.
func (r *Registry) FindRootAndModalizer(el *dom.Element) *RootAndModalizer {
	var root *Root
	for n := el; n != nil; n = n.Parent() {
		if candidate, ok := r.roots[n]; ok {
			root = candidate
			break
		}
	}
	if root == nil {
		return nil
	}
	result := &RootAndModalizer{Root: root}
	for _, m := range root.modalizers {
		if m.element != nil && m.element.Contains(el) {
			if result.Modalizer == nil || result.Modalizer.element.Contains(m.element) {
				// Innermost modalizer wins when scopes nest.
				result.Modalizer = m
			}
		}
	}
	return result
}

// Package grouper tracks keyboard-navigable container regions. A grouper
// wraps a container element whose focusable descendants form one
// navigation unit; a "limited" grouper traps focus until the trap is
// lifted. Groupers form a tree mirroring document containment, modeled
// here as an explicit registry keyed by element identity so ownership and
// escalation order are testable without live containment queries.
package grouper

import "github.com/odvcencio/focuskit/pkg/dom"

// Direction declares which arrow keys move between sibling groupers.
type Direction int

const (
	// DirectionBoth allows vertical and horizontal movement; vertical
	// moves use geometric tie-breaking between rows.
	DirectionBoth Direction = iota
	DirectionVertical
	DirectionHorizontal
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionVertical:
		return "vertical"
	case DirectionHorizontal:
		return "horizontal"
	}
	return "both"
}

// BasicProps are a grouper's static properties, fixed at creation.
type BasicProps struct {
	// IsLimited is the trap-focus default applied to new groupers.
	IsLimited bool

	// NextDirection declares which arrow keys navigate away.
	NextDirection Direction
}

// State is a grouper's mutable runtime state.
type State struct {
	IsLimited bool
}

// Grouper is one registered navigation container.
type Grouper struct {
	element *dom.Element
	basic   BasicProps
	state   State
}

// Element returns the grouper's container element.
func (g *Grouper) Element() *dom.Element { return g.element }

// BasicProps returns the grouper's static properties.
func (g *Grouper) BasicProps() BasicProps { return g.basic }

// IsLimited reports whether the grouper currently traps focus.
func (g *Grouper) IsLimited() bool { return g.state.IsLimited }

// SetUnlimited lifts (true) or re-imposes (false) the focus trap.
func (g *Grouper) SetUnlimited(unlimited bool) {
	g.state.IsLimited = !unlimited
}

// Registry maps container elements to their groupers.
type Registry struct {
	byElement map[*dom.Element]*Grouper
}

// NewRegistry creates an empty grouper registry.
func NewRegistry() *Registry {
	return &Registry{byElement: make(map[*dom.Element]*Grouper)}
}

// Create registers a grouper for the container element. Registering the
// same element again returns the existing grouper unchanged.
func (r *Registry) Create(el *dom.Element, props BasicProps) *Grouper {
	if g, ok := r.byElement[el]; ok {
		return g
	}
	g := &Grouper{
		element: el,
		basic:   props,
		state:   State{IsLimited: props.IsLimited},
	}
	r.byElement[el] = g
	return g
}

// Remove unregisters the grouper for the container element.
func (r *Registry) Remove(el *dom.Element) {
	delete(r.byElement, el)
}

// ForElement returns the grouper registered for exactly this element.
func (r *Registry) ForElement(el *dom.Element) *Grouper {
	return r.byElement[el]
}

// Find returns the innermost grouper whose container is el or an
// ancestor of el.
func (r *Registry) Find(el *dom.Element) *Grouper {
	for n := el; n != nil; n = n.Parent() {
		if g, ok := r.byElement[n]; ok {
			return g
		}
	}
	return nil
}

// FindContainer returns the container element of the innermost grouper
// enclosing el, or nil.
func (r *Registry) FindContainer(el *dom.Element) *dom.Element {
	if g := r.Find(el); g != nil {
		return g.Element()
	}
	return nil
}

// Parent returns the grouper enclosing g's container, walking parent
// pointers from the container element. Used for Escape escalation.
func (r *Registry) Parent(g *Grouper) *Grouper {
	if g == nil || g.element == nil {
		return nil
	}
	return r.Find(g.element.Parent())
}

// IsGrouperElement reports whether el is a registered grouper container.
func (r *Registry) IsGrouperElement(el *dom.Element) bool {
	_, ok := r.byElement[el]
	return ok
}

// Len returns the number of registered groupers.
func (r *Registry) Len() int { return len(r.byElement) }

// Package dom provides the hierarchical document model the focus engine
// operates on: an element tree with attributes, geometry, visibility, and
// capture-phase focus/keyboard event dispatch. A Document also owns the
// platform focus primitive behind an explicit decorator slot, so callers
// that need to observe programmatic focus can wrap it without rewriting
// shared behavior.
//
// Documents and elements are not safe for concurrent use; all work is
// expected to run on a single event-dispatch goroutine.
package dom

import "strings"

// Common attribute names consumed by the focus engine.
const (
	AttrTabIndex   = "tabindex"
	AttrAriaHidden = "aria-hidden"
)

// Tags that are intrinsically focusable without an explicit tabindex.
var intrinsicFocusTags = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
}

// Element is a node in a document tree.
type Element struct {
	tag      string
	id       string
	parent   *Element
	children []*Element

	attrs  map[string]string
	rect   Rect
	hidden bool

	editable   bool
	scrollable bool
	scrollTop  float64

	// Set only on a document's root element.
	doc *Document
}

// NewElement creates a detached element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{tag: strings.ToLower(tag)}
}

// NewElementWithID creates a detached element with a tag name and id.
func NewElementWithID(tag, id string) *Element {
	e := NewElement(tag)
	e.id = id
	return e
}

// Tag returns the element's lower-cased tag name.
func (e *Element) Tag() string { return e.tag }

// ID returns the element's id, or "" when unset.
func (e *Element) ID() string { return e.id }

// SetID assigns the element's id.
func (e *Element) SetID(id string) { e.id = id }

// Parent returns the element's parent, or nil for detached roots.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's children in document order.
// The returned slice is the live backing array; callers must not mutate it.
func (e *Element) Children() []*Element { return e.children }

// AppendChild attaches child as the last child of e.
// A child already parented elsewhere is moved.
func (e *Element) AppendChild(child *Element) *Element {
	if child == nil || child == e {
		return child
	}
	if child.parent != nil {
		child.parent.detachChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// InsertBefore attaches child immediately before ref among e's children.
// A nil ref appends.
func (e *Element) InsertBefore(child, ref *Element) *Element {
	if ref == nil {
		return e.AppendChild(child)
	}
	if child == nil || child == e {
		return child
	}
	if child.parent != nil {
		child.parent.detachChild(child)
	}
	for i, c := range e.children {
		if c == ref {
			child.parent = e
			e.children = append(e.children[:i], append([]*Element{child}, e.children[i:]...)...)
			return child
		}
	}
	return e.AppendChild(child)
}

// RemoveChild detaches child from e. If the document's focused element is
// inside the removed subtree, focus is blurred first, matching platform
// behavior for removed active elements.
func (e *Element) RemoveChild(child *Element) {
	if child == nil || child.parent != e {
		return
	}
	if doc := e.Document(); doc != nil {
		if active := doc.ActiveElement(); active != nil && child.Contains(active) {
			doc.Blur()
		}
	}
	e.detachChild(child)
}

func (e *Element) detachChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Document returns the owning document, or nil while detached.
func (e *Element) Document() *Document {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	return root.doc
}

// IsAttached reports whether the element is connected to a document.
func (e *Element) IsAttached() bool { return e.Document() != nil }

// Attribute returns the named attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttribute reports whether the named attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttribute assigns the named attribute.
func (e *Element) SetAttribute(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// RemoveAttribute deletes the named attribute.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// Rect returns the element's bounding rectangle.
func (e *Element) Rect() Rect { return e.rect }

// SetRect assigns the element's bounding rectangle.
func (e *Element) SetRect(r Rect) { e.rect = r }

// Hidden reports whether the element itself is marked hidden.
func (e *Element) Hidden() bool { return e.hidden }

// SetHidden marks the element (and so its subtree) hidden.
func (e *Element) SetHidden(hidden bool) { e.hidden = hidden }

// Editable reports whether the element hosts editable text content.
func (e *Element) Editable() bool { return e.editable }

// SetEditable marks the element as hosting editable text content.
func (e *Element) SetEditable(editable bool) { e.editable = editable }

// IsTextInput reports whether the element is a text-entry control whose
// caret owns the horizontal arrow keys.
func (e *Element) IsTextInput() bool {
	return e.tag == "input" || e.tag == "textarea" || e.editable
}

// IntrinsicallyFocusable reports whether the element's tag makes it
// focusable without an explicit tabindex.
func (e *Element) IntrinsicallyFocusable() bool {
	return intrinsicFocusTags[e.tag]
}

// Focus moves document focus to the element through the document's focus
// primitive (including any installed decorator). No-op while detached.
func (e *Element) Focus() {
	if doc := e.Document(); doc != nil {
		doc.FocusElement(e)
	}
}

// Blur removes focus from the element if it is the active element.
func (e *Element) Blur() {
	doc := e.Document()
	if doc != nil && doc.ActiveElement() == e {
		doc.Blur()
	}
}

// Matches reports whether the element matches a simple selector.
// Supported forms: "tag", "#id", "[attr]", "[attr=value]", and
// concatenations such as "div[aria-hidden=true]".
func (e *Element) Matches(selector string) bool {
	rest := selector
	for rest != "" {
		switch {
		case rest[0] == '#':
			end := nextToken(rest[1:])
			if e.id != rest[1:1+end] {
				return false
			}
			rest = rest[1+end:]
		case rest[0] == '[':
			closing := strings.IndexByte(rest, ']')
			if closing < 0 {
				return false
			}
			body := rest[1:closing]
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				v, ok := e.Attribute(body[:eq])
				if !ok || v != strings.Trim(body[eq+1:], `"'`) {
					return false
				}
			} else if !e.HasAttribute(body) {
				return false
			}
			rest = rest[closing+1:]
		default:
			end := nextToken(rest)
			if e.tag != strings.ToLower(rest[:end]) {
				return false
			}
			rest = rest[end:]
		}
	}
	return true
}

func nextToken(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '#' || s[i] == '[' {
			return i
		}
	}
	return len(s)
}

// Precedes reports whether a comes strictly before b in document order.
// An ancestor precedes its descendants. Elements from disjoint trees
// compare false.
func Precedes(a, b *Element) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	if a.Contains(b) {
		return true
	}
	if b.Contains(a) {
		return false
	}
	pathA := ancestorPath(a)
	pathB := ancestorPath(b)
	if pathA[0] != pathB[0] {
		return false
	}
	for i := 1; i < len(pathA) && i < len(pathB); i++ {
		if pathA[i] == pathB[i] {
			continue
		}
		parent := pathA[i-1]
		for _, c := range parent.children {
			if c == pathA[i] {
				return true
			}
			if c == pathB[i] {
				return false
			}
		}
		return false
	}
	return false
}

func ancestorPath(e *Element) []*Element {
	var path []*Element
	for n := e; n != nil; n = n.parent {
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

package dom

// FocusFunc is the platform focus primitive. The document's default
// implementation moves the active element and dispatches focusout/focusin;
// decorators installed through SetFocusFunc wrap it.
type FocusFunc func(el *Element)

// Document owns an element tree, the active (focused) element, and the
// capture-phase listeners for focus and keyboard events.
type Document struct {
	body   *Element
	active *Element

	focusFn   FocusFunc
	listeners map[EventType][]*listenerEntry
}

type listenerEntry struct {
	focus FocusListener
	key   KeyListener
}

// NewDocument creates a document with a "body" root element.
func NewDocument() *Document {
	d := &Document{
		body:      NewElement("body"),
		listeners: make(map[EventType][]*listenerEntry),
	}
	d.body.doc = d
	d.focusFn = d.rawFocus
	return d
}

// Body returns the document's root element.
func (d *Document) Body() *Element { return d.body }

// ActiveElement returns the currently focused element, or nil when focus
// has left the document.
func (d *Document) ActiveElement() *Element { return d.active }

// FocusFunc returns the current focus primitive, including any installed
// decorator.
func (d *Document) FocusFunc() FocusFunc { return d.focusFn }

// SetFocusFunc replaces the focus primitive. This is the interception
// point for programmatic-focus attribution: a decorator records the
// receiver, then delegates to the function it wrapped.
func (d *Document) SetFocusFunc(fn FocusFunc) {
	if fn == nil {
		fn = d.rawFocus
	}
	d.focusFn = fn
}

// FocusElement moves focus to el through the focus primitive, so an
// installed decorator observes the call.
func (d *Document) FocusElement(el *Element) {
	d.focusFn(el)
}

// FocusNative moves focus to el through the undecorated primitive. Used
// by keyboard navigation so the move is attributed as a user transition
// rather than an application-initiated one.
func (d *Document) FocusNative(el *Element) {
	d.rawFocus(el)
}

// rawFocus is the undecorated primitive: it fires focusout on the old
// element before focusin on the new one, updating the active element in
// between, matching platform event ordering.
func (d *Document) rawFocus(el *Element) {
	if el == nil {
		d.Blur()
		return
	}
	if el.Document() != d {
		// Focusing a detached element is a platform no-op.
		return
	}
	if d.active == el {
		return
	}
	old := d.active
	if old != nil {
		d.dispatchFocus(&Event{Type: EventFocusOut, Target: old, RelatedTarget: el})
	}
	d.active = el
	d.dispatchFocus(&Event{Type: EventFocusIn, Target: el, RelatedTarget: old})
}

// Blur removes focus from the document entirely, firing focusout with no
// related target.
func (d *Document) Blur() {
	if d.active == nil {
		return
	}
	old := d.active
	d.active = nil
	d.dispatchFocus(&Event{Type: EventFocusOut, Target: old, RelatedTarget: nil})
}

// AddFocusListener registers a capture-phase focusin or focusout listener.
// The returned function unregisters it.
func (d *Document) AddFocusListener(t EventType, fn FocusListener) func() {
	entry := &listenerEntry{focus: fn}
	d.listeners[t] = append(d.listeners[t], entry)
	return func() { d.removeListener(t, entry) }
}

// AddKeyListener registers a capture-phase keydown listener.
// The returned function unregisters it.
func (d *Document) AddKeyListener(fn KeyListener) func() {
	entry := &listenerEntry{key: fn}
	d.listeners[EventKeyDown] = append(d.listeners[EventKeyDown], entry)
	return func() { d.removeListener(EventKeyDown, entry) }
}

func (d *Document) removeListener(t EventType, entry *listenerEntry) {
	list := d.listeners[t]
	for i, e := range list {
		if e == entry {
			d.listeners[t] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (d *Document) dispatchFocus(e *Event) {
	for _, entry := range append([]*listenerEntry(nil), d.listeners[e.Type]...) {
		if e.PropagationStopped() {
			return
		}
		if entry.focus != nil {
			entry.focus(e)
		}
	}
}

// DispatchKeyDown delivers a key-down event for the currently focused
// element to capture-phase listeners and returns it, so the host can
// honor PreventDefault before applying default traversal.
func (d *Document) DispatchKeyDown(key Key, shift bool) *KeyboardEvent {
	e := &KeyboardEvent{
		Event: Event{Type: EventKeyDown, Target: d.active},
		Key:   key,
		Shift: shift,
	}
	for _, entry := range append([]*listenerEntry(nil), d.listeners[EventKeyDown]...) {
		if e.PropagationStopped() {
			break
		}
		if entry.key != nil {
			entry.key(e)
		}
	}
	return e
}

// IsVisible reports whether el is attached and neither it nor any
// ancestor is hidden.
func IsVisible(el *Element) bool {
	if el == nil || !el.IsAttached() {
		return false
	}
	for n := el; n != nil; n = n.Parent() {
		if n.Hidden() {
			return false
		}
	}
	return true
}

// NearestScrollContainer returns the closest scrollable ancestor of el,
// or nil when the element is not inside one.
func NearestScrollContainer(el *Element) *Element {
	if el == nil {
		return nil
	}
	for n := el.Parent(); n != nil; n = n.Parent() {
		if n.scrollable {
			return n
		}
	}
	return nil
}

// SetScrollable marks the element as a vertical scroll container whose
// viewport is its own rect height offset by ScrollTop.
func (e *Element) SetScrollable(scrollable bool) { e.scrollable = scrollable }

// Scrollable reports whether the element is a scroll container.
func (e *Element) Scrollable() bool { return e.scrollable }

// ScrollTop returns the container's vertical scroll offset.
func (e *Element) ScrollTop() float64 { return e.scrollTop }

// SetScrollTop assigns the container's vertical scroll offset.
func (e *Element) SetScrollTop(top float64) { e.scrollTop = top }

// IsVerticallyVisible reports whether el's rect lies fully inside the
// viewport of its nearest scroll container. Elements outside any scroll
// container are considered visible.
func IsVerticallyVisible(el *Element) bool {
	sc := NearestScrollContainer(el)
	if sc == nil {
		return true
	}
	r := el.Rect()
	top := sc.scrollTop
	bottom := top + sc.Rect().Height
	return r.Top() >= top && r.Bottom() <= bottom
}

// ScrollIntoView adjusts el's nearest scroll container so el is visible,
// aligned to the viewport top when alignTop is true and to the bottom
// otherwise.
func ScrollIntoView(el *Element, alignTop bool) {
	sc := NearestScrollContainer(el)
	if sc == nil {
		return
	}
	r := el.Rect()
	if alignTop {
		sc.scrollTop = r.Top()
	} else {
		sc.scrollTop = r.Bottom() - sc.Rect().Height
	}
	if sc.scrollTop < 0 {
		sc.scrollTop = 0
	}
}

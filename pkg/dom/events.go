package dom

// EventType identifies a document event kind.
type EventType string

const (
	EventFocusIn  EventType = "focusin"
	EventFocusOut EventType = "focusout"
	EventKeyDown  EventType = "keydown"
)

// Key identifies a keyboard key relevant to focus navigation.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyEnter
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// String returns the key's navigation name.
func (k Key) String() string {
	switch k {
	case KeyTab:
		return "Tab"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyUp:
		return "ArrowUp"
	case KeyDown:
		return "ArrowDown"
	case KeyLeft:
		return "ArrowLeft"
	case KeyRight:
		return "ArrowRight"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	}
	return "None"
}

// Event is a document event dispatched to capture-phase listeners.
type Event struct {
	Type   EventType
	Target *Element

	// RelatedTarget carries the other endpoint of a focus transition:
	// the element gaining focus on focusout, the element losing focus on
	// focusin. Nil when focus is leaving or entering the document.
	RelatedTarget *Element

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault cancels the event's default action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops the event from reaching later listeners.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

// KeyboardEvent is a key-down event dispatched to capture-phase listeners.
type KeyboardEvent struct {
	Event
	Key   Key
	Shift bool
}

// FocusListener receives focusin/focusout events.
type FocusListener func(e *Event)

// KeyListener receives keydown events.
type KeyListener func(e *KeyboardEvent)

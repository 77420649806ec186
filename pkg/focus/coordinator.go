package focus

import (
	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/logging"
)

// Coordinator owns the process-scoped focus-attribution state: the
// programmatic-focus marker, the last-reset marker, and the installed
// focus-primitive decorators. Exactly one coordinator should exist per
// host environment; trackers hold it by reference.
//
// Both markers are one-shot: every read clears them, so an attribution
// can never leak into an unrelated future focus event.
type Coordinator struct {
	programmatic *dom.Element
	lastReset    *dom.Element

	originals  map[*dom.Document]dom.FocusFunc
	probed     bool
	canObserve bool

	log *logging.Logger
}

// NewCoordinator creates a coordinator. A nil logger discards logs.
func NewCoordinator(log *logging.Logger) *Coordinator {
	if log == nil {
		log = logging.Nop()
	}
	return &Coordinator{
		originals: make(map[*dom.Document]dom.FocusFunc),
		log:       log,
	}
}

// MarkProgrammatic records el as the element most recently targeted by
// programmatic focus. At most one element is marked at a time; a newer
// mark replaces an unconsumed older one.
func (c *Coordinator) MarkProgrammatic(el *dom.Element) {
	c.programmatic = el
}

// ConsumeProgrammatic returns the marked element and clears the marker,
// so the mark attributes at most one focus event.
func (c *Coordinator) ConsumeProgrammatic() *dom.Element {
	el := c.programmatic
	c.programmatic = nil
	return el
}

// SetLastReset records el as the container most recently parked via
// ResetFocus, suppressing its next focusin from normal processing.
func (c *Coordinator) SetLastReset(el *dom.Element) {
	c.lastReset = el
}

// TakeLastReset returns the last-reset element and clears the marker.
func (c *Coordinator) TakeLastReset() *dom.Element {
	el := c.lastReset
	c.lastReset = nil
	return el
}

// Install wraps the document's focus primitive so every call through it
// is recorded as programmatic before delegating to the original.
// Idempotent: a document that already carries this coordinator's wrapper
// is left untouched. The first install runs a capability probe checking
// that the decorator slot is actually honored.
func (c *Coordinator) Install(doc *dom.Document) {
	if doc == nil {
		return
	}
	if _, ok := c.originals[doc]; ok {
		return
	}
	orig := doc.FocusFunc()
	c.originals[doc] = orig
	doc.SetFocusFunc(func(el *dom.Element) {
		c.programmatic = el
		orig(el)
	})
	if !c.probed {
		c.probed = true
		c.canObserve = c.probe(doc)
		if !c.canObserve {
			c.log.Warn("focus interception not observable on this host")
		}
	}
}

// probe focuses a detached sentinel through the decorated primitive and
// checks the wrapper saw it. Focusing a detached element never moves
// real focus, so the probe is side-effect free.
func (c *Coordinator) probe(doc *dom.Document) bool {
	sentinel := dom.NewElement("div")
	doc.FocusElement(sentinel)
	observed := c.programmatic == sentinel
	c.programmatic = nil
	return observed
}

// Restore reinstates the document's original focus primitive. A document
// this coordinator never wrapped, or already restored, is a no-op.
func (c *Coordinator) Restore(doc *dom.Document) {
	orig, ok := c.originals[doc]
	if !ok {
		return
	}
	doc.SetFocusFunc(orig)
	delete(c.originals, doc)
}

// IsInstalled reports whether this coordinator's wrapper is active on
// the document.
func (c *Coordinator) IsInstalled(doc *dom.Document) bool {
	_, ok := c.originals[doc]
	return ok
}

// CanObserveNativeFocus reports the capability probe's result: whether
// focus calls routed through the decorated primitive are observable, and
// so whether a wrapper-set programmatic marker is trustworthy.
//
// The tracker itself never branches on this. Tracker.FocusWithOptions
// marks the element explicitly before invoking the raw primitive, so its
// attribution holds even on a host whose decorator slot is not honored.
// The probe matters to hosts that move focus through Document.FocusElement
// and rely on the wrapper alone for attribution; such hosts should check
// this before trusting user/programmatic classification.
func (c *Coordinator) CanObserveNativeFocus() bool {
	return c.canObserve
}

// Clear drops both markers. Called on tracker disposal.
func (c *Coordinator) Clear() {
	c.programmatic = nil
	c.lastReset = nil
}

package focus

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/logging"
	"github.com/odvcencio/focuskit/pkg/observe"
	"github.com/odvcencio/focuskit/pkg/query"
	"github.com/odvcencio/focuskit/pkg/telemetry"
)

// FocusOptions adjust a Tracker.FocusWithOptions call.
type FocusOptions struct {
	// SkipProgrammaticFlag leaves the transition unattributed, so the
	// published snapshot reports a user move.
	SkipProgrammaticFlag bool

	// SkipAccessibleCheck permits focusing elements hidden from
	// assistive technology.
	SkipAccessibleCheck bool
}

// TrackerOptions configure a Tracker.
type TrackerOptions struct {
	Document    *dom.Document
	Coordinator *Coordinator
	Query       Query
	Roots       RootResolver
	Logger      *logging.Logger

	// InstallInterception wraps the document's focus primitive on
	// construction; Dispose restores it if this tracker installed it.
	InstallInterception bool
}

// Tracker holds the authoritative "currently focused element" value for
// one document and republishes changes to subscribers.
type Tracker struct {
	doc   *dom.Document
	coord *Coordinator
	query Query
	roots RootResolver
	log   *logging.Logger

	val        *observe.Value[*dom.Element, Details]
	last, prev *dom.Element

	// seq orders focus changes; a handler whose sequence is no longer
	// the latest was superseded by a nested change and must not publish.
	seq uint64

	offFocusIn  func()
	offFocusOut func()

	installedInterception bool
	disposed              bool
}

// NewTracker creates a tracker and begins observing the document's
// capture-phase focus events.
func NewTracker(opts TrackerOptions) *Tracker {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	t := &Tracker{
		doc:   opts.Document,
		coord: opts.Coordinator,
		query: opts.Query,
		roots: opts.Roots,
		log:   log,
		val:   observe.NewValue[*dom.Element, Details](),
	}
	if t.coord == nil {
		t.coord = NewCoordinator(log)
	}
	if opts.InstallInterception && !t.coord.IsInstalled(t.doc) {
		t.coord.Install(t.doc)
		t.installedInterception = true
	}
	t.offFocusIn = t.doc.AddFocusListener(dom.EventFocusIn, t.onFocusIn)
	t.offFocusOut = t.doc.AddFocusListener(dom.EventFocusOut, t.onFocusOut)
	telemetry.TrackerStarted()
	return t
}

// Subscribe registers a callback for every published focus change and
// returns its unsubscribe function.
func (t *Tracker) Subscribe(cb func(el *dom.Element, details Details)) func() {
	return t.val.Subscribe(cb)
}

// GetFocusedElement returns the currently published focused element, or
// nil when focus has left the document.
func (t *Tracker) GetFocusedElement() *dom.Element {
	return t.val.Get()
}

// Snapshot returns the current value and its details together.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{Element: t.val.Get(), Details: t.val.Details()}
}

// GetLastFocusedElement returns the most recent non-nil focused element,
// or nil once that element has detached from the document.
func (t *Tracker) GetLastFocusedElement() *dom.Element {
	if t.last != nil && !t.last.IsAttached() {
		t.last = nil
	}
	return t.last
}

// GetPrevFocusedElement returns the non-nil focused element before the
// last one, or nil once it has detached from the document.
func (t *Tracker) GetPrevFocusedElement() *dom.Element {
	if t.prev != nil && !t.prev.IsAttached() {
		t.prev = nil
	}
	return t.prev
}

// Focus moves focus to el programmatically. Returns false when el is
// not focusable; never panics on bad input.
func (t *Tracker) Focus(el *dom.Element) bool {
	return t.FocusWithOptions(el, FocusOptions{})
}

// FocusWithOptions moves focus to el, optionally skipping programmatic
// attribution or the accessibility check.
func (t *Tracker) FocusWithOptions(el *dom.Element, opts FocusOptions) bool {
	if el == nil {
		return false
	}
	if !t.query.IsFocusable(el, query.Options{
		IncludeProgrammaticallyFocusable: true,
		NoAccessibleCheck:                opts.SkipAccessibleCheck,
	}) {
		return false
	}
	_, span := telemetry.StartSpan(context.Background(), "focus.move",
		trace.WithAttributes(
			attribute.String("element", logging.ElementLabel(el)),
			attribute.Bool("programmatic", !opts.SkipProgrammaticFlag),
		))
	defer span.End()

	if !opts.SkipProgrammaticFlag {
		t.coord.MarkProgrammatic(el)
	}
	t.doc.FocusNative(el)
	return true
}

// FocusDefault focuses the container's designated default element.
// Returns whether one was found and focused.
func (t *Tracker) FocusDefault(container *dom.Element) bool {
	if el := t.query.FindDefault(container); el != nil {
		return t.Focus(el)
	}
	return false
}

// FocusFirst focuses the first focusable descendant of container,
// ignoring grouper semantics.
func (t *Tracker) FocusFirst(container *dom.Element) bool {
	if el := t.query.FindFirst(container); el != nil {
		return t.Focus(el)
	}
	return false
}

// ResetFocus parks focus on a container that is not normally focusable
// by temporarily granting it a negative tab stop and hiding it from
// assistive technology, focusing it, then restoring the original
// attributes. The container's next focusin is suppressed from normal
// processing. Returns false when the container is not visible.
func (t *Tracker) ResetFocus(container *dom.Element) bool {
	if container == nil || !t.query.IsVisible(container) {
		return false
	}
	if t.query.IsFocusable(container, query.Options{
		IncludeProgrammaticallyFocusable: true,
		NoVisibleCheck:                   true,
		NoAccessibleCheck:                true,
	}) {
		t.coord.SetLastReset(container)
		t.FocusWithOptions(container, FocusOptions{
			SkipProgrammaticFlag: true,
			SkipAccessibleCheck:  true,
		})
		return true
	}

	prevTabIndex, hadTabIndex := container.Attribute(dom.AttrTabIndex)
	prevAriaHidden, hadAriaHidden := container.Attribute(dom.AttrAriaHidden)
	container.SetAttribute(dom.AttrTabIndex, "-1")
	container.SetAttribute(dom.AttrAriaHidden, "true")

	t.coord.SetLastReset(container)
	t.FocusWithOptions(container, FocusOptions{
		SkipProgrammaticFlag: true,
		SkipAccessibleCheck:  true,
	})

	if hadTabIndex {
		container.SetAttribute(dom.AttrTabIndex, prevTabIndex)
	} else {
		container.RemoveAttribute(dom.AttrTabIndex)
	}
	if hadAriaHidden {
		container.SetAttribute(dom.AttrAriaHidden, prevAriaHidden)
	} else {
		container.RemoveAttribute(dom.AttrAriaHidden)
	}
	return true
}

// Dispose stops tracking: listeners are removed, interception installed
// by this tracker is restored, both coordinator markers are cleared, and
// held element references are released.
func (t *Tracker) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.offFocusIn()
	t.offFocusOut()
	if t.installedInterception {
		t.coord.Restore(t.doc)
	}
	t.coord.Clear()
	t.last = nil
	t.prev = nil
	t.val.Reset()
	telemetry.TrackerStopped()
}

// onFocusOut handles capture-phase focusout. Focusout always fires
// before the corresponding focusin, so a transition briefly publishes an
// absent value; subscribers must tolerate the transient nil between blur
// and refocus.
func (t *Tracker) onFocusOut(e *dom.Event) {
	if e.RelatedTarget != nil {
		return
	}
	t.setFocused(nil, Details{})
}

// onFocusIn handles capture-phase focusin: filters reset/ignored
// targets, resolves programmatic attribution exactly once, validates,
// and publishes.
func (t *Tracker) onFocusIn(e *dom.Event) {
	target := e.Target
	if target == nil {
		return
	}
	if reset := t.coord.TakeLastReset(); reset != nil && reset == target {
		// The parked container becomes the current value quietly: no
		// notification, no validation, no attribution.
		t.val.Replace(target, Details{})
		return
	}
	if t.query.ShouldIgnoreFocus(target) {
		return
	}

	marked := t.coord.ConsumeProgrammatic()
	details := Details{
		RelatedTarget:             e.RelatedTarget,
		IsFocusedProgrammatically: marked != nil && marked == target,
		RelatedTargetAbility:      t.abilityOf(e.RelatedTarget),
	}
	t.setFocused(target, details)
}

func (t *Tracker) abilityOf(el *dom.Element) Ability {
	if el == nil {
		return AbilityUnknown
	}
	if t.query.IsFocusable(el, query.Options{}) {
		return AbilityFocusable
	}
	return AbilityNotFocusable
}

// setFocused runs validation for changed non-nil targets and publishes
// unless a nested focus change superseded this one.
func (t *Tracker) setFocused(el *dom.Element, details Details) {
	t.seq++
	mine := t.seq

	if el != nil && el != t.val.Get() {
		t.validate(el, details)
		if mine != t.seq {
			// A nested focus change published a newer snapshot; this
			// one is stale.
			return
		}
	}

	changed := el != t.val.Get()
	t.val.Set(el, details)
	if changed {
		telemetry.CountFocusChange(details.IsFocusedProgrammatically)
		t.log.Debug("focus changed",
			"element", logging.ElementLabel(el),
			"related", logging.ElementLabel(details.RelatedTarget),
			"programmatic", details.IsFocusedProgrammatically)
	}
	if el != nil && el != t.last {
		t.prev = t.last
		t.last = el
	}
}

package focus

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/grouper"
	"github.com/odvcencio/focuskit/pkg/logging"
	"github.com/odvcencio/focuskit/pkg/modalizer"
	"github.com/odvcencio/focuskit/pkg/query"
)

// Options configure a Manager.
type Options struct {
	Document *dom.Document

	// Logger defaults to a JSON logger at info level.
	Logger *logging.Logger

	// Coordinator shares process-scoped markers across managers; a nil
	// value creates a private one.
	Coordinator *Coordinator

	// SkipInterception leaves the document's focus primitive
	// undecorated, so only explicit Tracker.Focus calls are attributed
	// as programmatic.
	SkipInterception bool
}

// Manager wires a document's focus machinery together: grouper and
// modalizer registries, the focusable-query engine, the tracker, and the
// keyboard arbiter.
type Manager struct {
	id string

	doc      *dom.Document
	coord    *Coordinator
	groupers *grouper.Registry
	roots    *modalizer.Registry
	query    *query.Engine
	tracker  *Tracker
	keyboard *KeyboardHandler
	log      *logging.Logger
}

// New creates a focus manager for the document.
func New(opts Options) *Manager {
	id := uuid.NewString()
	log := opts.Logger
	if log == nil {
		log = logging.NewLogger("focus", slog.LevelInfo)
	}
	log = log.WithInstance(id)

	groupers := grouper.NewRegistry()
	roots := modalizer.NewRegistry()
	q := query.NewEngine(opts.Document, groupers)

	coord := opts.Coordinator
	if coord == nil {
		coord = NewCoordinator(log)
	}

	tracker := NewTracker(TrackerOptions{
		Document:            opts.Document,
		Coordinator:         coord,
		Query:               q,
		Roots:               roots,
		Logger:              log,
		InstallInterception: !opts.SkipInterception,
	})
	keyboard := NewKeyboardHandler(KeyboardOptions{
		Document: opts.Document,
		Tracker:  tracker,
		Query:    q,
		Groupers: groupers,
		Roots:    roots,
		Logger:   log,
	})

	return &Manager{
		id:       id,
		doc:      opts.Document,
		coord:    coord,
		groupers: groupers,
		roots:    roots,
		query:    q,
		tracker:  tracker,
		keyboard: keyboard,
		log:      log,
	}
}

// ID returns the manager's instance id, carried in log records.
func (m *Manager) ID() string { return m.id }

// Document returns the managed document.
func (m *Manager) Document() *dom.Document { return m.doc }

// Tracker returns the focus tracker.
func (m *Manager) Tracker() *Tracker { return m.tracker }

// Groupers returns the grouper registry.
func (m *Manager) Groupers() *grouper.Registry { return m.groupers }

// Roots returns the root/modalizer registry.
func (m *Manager) Roots() *modalizer.Registry { return m.roots }

// Query returns the focusable-query engine.
func (m *Manager) Query() *query.Engine { return m.query }

// Coordinator returns the process-scoped attribution coordinator.
func (m *Manager) Coordinator() *Coordinator { return m.coord }

// Dispose tears the manager down: keyboard handling detaches first so
// no key event can observe a half-disposed tracker.
func (m *Manager) Dispose() {
	m.keyboard.Dispose()
	m.tracker.Dispose()
}

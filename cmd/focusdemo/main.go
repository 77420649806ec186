// Command focusdemo renders a YAML-described document of groupers and
// modalizers in the terminal and drives it with the focuskit keyboard
// arbiter. The layout file is watched and rebuilt on change.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/focuskit/pkg/config"
	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/focus"
	"github.com/odvcencio/focuskit/pkg/logging"
	"github.com/odvcencio/focuskit/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "focusdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "focusdemo.yaml", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile("focusdemo.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logging.NewLoggerTo(logFile, "focusdemo", cfg.SlogLevel())

	if cfg.Tracing {
		tp, err := telemetry.NewTracerProvider("focusdemo")
		if err != nil {
			return err
		}
		defer tp.Shutdown(context.Background())
	}

	layout, err := LoadLayout(cfg.LayoutFile)
	if err != nil {
		return err
	}

	doc := dom.NewDocument()
	mgr := focus.New(focus.Options{Document: doc, Logger: log})
	defer mgr.Dispose()

	if err := Build(layout, mgr); err != nil {
		return err
	}
	mgr.Tracker().FocusFirst(nil)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(cfg.LayoutFile); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan tcell.Event, 16)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		screen.ChannelEvents(events, ctx.Done())
		return nil
	})
	g.Go(func() error {
		defer screen.Fini()
		return loop(ctx, screen, events, watcher, layout, mgr, log)
	})
	return g.Wait()
}

func loop(
	ctx context.Context,
	screen tcell.Screen,
	events <-chan tcell.Event,
	watcher *fsnotify.Watcher,
	layout *Layout,
	mgr *focus.Manager,
	log *logging.Logger,
) error {
	doc := mgr.Document()
	render(screen, doc, layout.Title)

	for {
		select {
		case <-ctx.Done():
			return nil

		case we := <-watcher.Events:
			if !we.Has(fsnotify.Write) && !we.Has(fsnotify.Create) {
				continue
			}
			sctx, span := telemetry.StartSpan(ctx, "demo.layout_reload")
			reloaded, err := LoadLayout(we.Name)
			if err != nil {
				telemetry.RecordError(sctx, err)
				span.End()
				log.Warn("layout reload failed", "error", err)
				continue
			}
			if err := Build(reloaded, mgr); err != nil {
				telemetry.RecordError(sctx, err)
				span.End()
				log.Warn("layout rebuild failed", "error", err)
				continue
			}
			telemetry.AddEvent(sctx, "layout rebuilt")
			span.End()
			layout = reloaded
			mgr.Tracker().FocusFirst(nil)
			render(screen, doc, layout.Title)

		case err := <-watcher.Errors:
			log.Warn("layout watcher error", "error", err)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch tev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				render(screen, doc, layout.Title)
			case *tcell.EventKey:
				if tev.Key() == tcell.KeyCtrlC || tev.Rune() == 'q' {
					return nil
				}
				dispatchKey(mgr, tev)
				render(screen, doc, layout.Title)
			}
		}
	}
}

// dispatchKey maps a terminal key to a document key event and applies
// default Tab traversal when no listener claimed the key.
func dispatchKey(mgr *focus.Manager, tev *tcell.EventKey) {
	key, shift, ok := mapKey(tev)
	if !ok {
		return
	}
	doc := mgr.Document()
	e := doc.DispatchKeyDown(key, shift)
	if e.DefaultPrevented() || key != dom.KeyTab {
		return
	}

	// Default traversal for Tab presses nobody intercepted.
	cur := doc.ActiveElement()
	var next *dom.Element
	switch {
	case cur == nil && shift:
		next = mgr.Query().FindLast(nil)
	case cur == nil:
		next = mgr.Query().FindFirst(nil)
	case shift:
		next = mgr.Query().FindPrev(cur, nil)
	default:
		next = mgr.Query().FindNext(cur, nil)
	}
	if next != nil {
		doc.FocusNative(next)
	} else {
		doc.Blur()
	}
}

func mapKey(tev *tcell.EventKey) (dom.Key, bool, bool) {
	shift := tev.Modifiers()&tcell.ModShift != 0
	switch tev.Key() {
	case tcell.KeyTab:
		return dom.KeyTab, shift, true
	case tcell.KeyBacktab:
		return dom.KeyTab, true, true
	case tcell.KeyEnter:
		return dom.KeyEnter, shift, true
	case tcell.KeyEscape:
		return dom.KeyEscape, shift, true
	case tcell.KeyUp:
		return dom.KeyUp, shift, true
	case tcell.KeyDown:
		return dom.KeyDown, shift, true
	case tcell.KeyLeft:
		return dom.KeyLeft, shift, true
	case tcell.KeyRight:
		return dom.KeyRight, shift, true
	case tcell.KeyPgUp:
		return dom.KeyPageUp, shift, true
	case tcell.KeyPgDn:
		return dom.KeyPageDown, shift, true
	case tcell.KeyHome:
		return dom.KeyHome, shift, true
	case tcell.KeyEnd:
		return dom.KeyEnd, shift, true
	}
	return dom.KeyNone, false, false
}

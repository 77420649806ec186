// Package telemetry exposes focuskit's Prometheus metrics and
// OpenTelemetry tracing helpers.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricFocusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "focuskit",
		Name:      "focus_changes_total",
		Help:      "Published focus changes, by attribution.",
	}, []string{"attribution"})

	metricFocusRedirects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "focuskit",
		Name:      "modalizer_redirects_total",
		Help:      "Focus moves redirected back inside the active modalizer.",
	})

	metricTrapWraps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "focuskit",
		Name:      "trap_wraps_total",
		Help:      "Tab traversals wrapped inside a limited grouper.",
	})

	metricKeyEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "focuskit",
		Name:      "key_events_total",
		Help:      "Navigation key events handled, by key.",
	}, []string{"key"})

	metricActiveTrackers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "focuskit",
		Name:      "trackers_active_total",
		Help:      "Number of live focus trackers.",
	})
)

// CountFocusChange records a published focus change. attribution is
// "programmatic" or "user".
func CountFocusChange(programmatic bool) {
	attribution := "user"
	if programmatic {
		attribution = "programmatic"
	}
	metricFocusChanges.WithLabelValues(attribution).Inc()
}

// CountModalizerRedirect records a reconciliation redirect.
func CountModalizerRedirect() { metricFocusRedirects.Inc() }

// CountTrapWrap records a Tab wrap inside a limited grouper.
func CountTrapWrap() { metricTrapWraps.Inc() }

// CountKeyEvent records a handled navigation key.
func CountKeyEvent(key string) { metricKeyEvents.WithLabelValues(key).Inc() }

// TrackerStarted bumps the live-tracker gauge.
func TrackerStarted() { metricActiveTrackers.Inc() }

// TrackerStopped drops the live-tracker gauge.
func TrackerStopped() { metricActiveTrackers.Dec() }

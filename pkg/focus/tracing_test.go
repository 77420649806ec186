package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/odvcencio/focuskit/pkg/dom"
)

func installSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func endedSpan(rec *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	for _, s := range rec.Ended() {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

func TestKeyboard_ArbitratedKeyEmitsSpan(t *testing.T) {
	rec := installSpanRecorder(t)
	tf := newTrapFixture(t)
	tf.doc.FocusNative(tf.a)

	tf.pressKey(dom.KeyTab, false)

	span := endedSpan(rec, "focus.keydown")
	require.NotNil(t, span)
	attrs := span.Attributes()
	assert.Contains(t, attrs, attribute.String("key", "Tab"))
	assert.Contains(t, attrs, attribute.Bool("shift", false))
	assert.Contains(t, attrs, attribute.Bool("default_prevented", true))
}

func TestTracker_ProgrammaticFocusEmitsSpan(t *testing.T) {
	rec := installSpanRecorder(t)
	f := newFixture(t)
	a := f.button(nil, "a")

	require.True(t, f.tracker.Focus(a))

	span := endedSpan(rec, "focus.move")
	require.NotNil(t, span)
	assert.Contains(t, span.Attributes(), attribute.Bool("programmatic", true))
}

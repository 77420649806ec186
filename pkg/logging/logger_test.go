package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/focuskit/pkg/dom"
)

func TestNewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "tracker", slog.LevelInfo)
	log.Info("focus changed", "element", "button#ok")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "focus changed", record["msg"])
	assert.Equal(t, "tracker", record["component"])
	assert.Equal(t, "focuskit", record["system"])
	assert.Equal(t, "button#ok", record["element"])
}

func TestNewLoggerTo_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "tracker", slog.LevelInfo)
	log.Debug("suppressed")
	assert.Zero(t, buf.Len())
}

func TestWithInstance(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "focus", slog.LevelInfo).WithInstance("abc-123")
	log.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "abc-123", record["instance_id"])
}

func TestElementLabel(t *testing.T) {
	assert.Equal(t, "none", ElementLabel(nil))
	assert.Equal(t, "button", ElementLabel(dom.NewElement("button")))
	assert.Equal(t, "button#ok", ElementLabel(dom.NewElementWithID("button", "ok")))
}

func TestNop(t *testing.T) {
	// Must not panic, must not write anywhere.
	Nop().Info("dropped")
}

package errors

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFocusable, "element rejects focus")

	assert.Equal(t, ErrCodeNotFocusable, err.Code)
	assert.Equal(t, "element rejects focus", err.Message)
	assert.Nil(t, err.Underlying)
	assert.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Error(), "[NOT_FOCUSABLE]")
	assert.Contains(t, err.Error(), "element rejects focus")
}

func TestWrap(t *testing.T) {
	underlying := stderrors.New("file not found")
	err := Wrap(underlying, ErrCodeConfigLoad, "reading config")

	require.NotNil(t, err)
	assert.Equal(t, ErrCodeConfigLoad, err.Code)
	assert.Same(t, underlying, err.Unwrap())
	assert.True(t, stderrors.Is(err, underlying))
	assert.Contains(t, err.Error(), "file not found")
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "never happened"))
}

func TestWithContext(t *testing.T) {
	err := New(ErrCodeQueryInconsistent, "bad query").
		WithContext("root", "01ARZ3").
		WithContext("count", 2)

	assert.Equal(t, "01ARZ3", err.Context["root"])
	assert.Equal(t, 2, err.Context["count"])

	msg := err.Error()
	assert.Contains(t, msg, "root: 01ARZ3")
	assert.Contains(t, msg, "count: 2")
}

func TestStackTrace(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	trace := err.StackTrace()

	assert.True(t, strings.HasPrefix(trace, "Stack trace:"))
	assert.Contains(t, trace, "TestStackTrace")
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeElementDetached, "gone")

	assert.True(t, IsCode(err, ErrCodeElementDetached))
	assert.False(t, IsCode(err, ErrCodeNotFocusable))
	assert.False(t, IsCode(nil, ErrCodeInternal))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeInternal))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeConfigParse, GetCode(New(ErrCodeConfigParse, "bad yaml")))
	assert.Equal(t, ErrCodeInternal, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
}

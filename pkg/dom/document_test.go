package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_FocusEventOrdering(t *testing.T) {
	doc := NewDocument()
	a := NewElement("button")
	b := NewElement("button")
	doc.Body().AppendChild(a)
	doc.Body().AppendChild(b)

	type seen struct {
		typ     EventType
		target  *Element
		related *Element
	}
	var events []seen
	record := func(e *Event) {
		events = append(events, seen{e.Type, e.Target, e.RelatedTarget})
	}
	doc.AddFocusListener(EventFocusIn, record)
	doc.AddFocusListener(EventFocusOut, record)

	doc.FocusElement(a)
	doc.FocusElement(b)

	require.Len(t, events, 3)
	assert.Equal(t, seen{EventFocusIn, a, nil}, events[0])
	// Focusout fires before focusin, each carrying the other endpoint.
	assert.Equal(t, seen{EventFocusOut, a, b}, events[1])
	assert.Equal(t, seen{EventFocusIn, b, a}, events[2])
}

func TestDocument_Blur(t *testing.T) {
	doc := NewDocument()
	a := NewElement("button")
	doc.Body().AppendChild(a)
	doc.FocusElement(a)

	var got *Event
	doc.AddFocusListener(EventFocusOut, func(e *Event) { got = e })

	doc.Blur()
	assert.Nil(t, doc.ActiveElement())
	require.NotNil(t, got)
	assert.Same(t, a, got.Target)
	assert.Nil(t, got.RelatedTarget)

	// Blurring an unfocused document does nothing.
	got = nil
	doc.Blur()
	assert.Nil(t, got)
}

func TestDocument_FocusDetachedIsNoOp(t *testing.T) {
	doc := NewDocument()
	a := NewElement("button")
	doc.Body().AppendChild(a)
	doc.FocusElement(a)

	doc.FocusElement(NewElement("button"))
	assert.Same(t, a, doc.ActiveElement())
}

func TestDocument_FocusSameElementFiresNothing(t *testing.T) {
	doc := NewDocument()
	a := NewElement("button")
	doc.Body().AppendChild(a)
	doc.FocusElement(a)

	fired := 0
	doc.AddFocusListener(EventFocusIn, func(e *Event) { fired++ })
	doc.FocusElement(a)
	assert.Zero(t, fired)
}

func TestDocument_FocusFuncDecorator(t *testing.T) {
	doc := NewDocument()
	a := NewElement("button")
	doc.Body().AppendChild(a)

	var observed *Element
	orig := doc.FocusFunc()
	doc.SetFocusFunc(func(el *Element) {
		observed = el
		orig(el)
	})

	doc.FocusElement(a)
	assert.Same(t, a, observed)
	assert.Same(t, a, doc.ActiveElement())

	// FocusNative bypasses the decorator.
	b := NewElement("button")
	doc.Body().AppendChild(b)
	observed = nil
	doc.FocusNative(b)
	assert.Nil(t, observed)
	assert.Same(t, b, doc.ActiveElement())

	// A nil func restores the raw primitive.
	doc.SetFocusFunc(nil)
	observed = nil
	doc.FocusElement(a)
	assert.Nil(t, observed)
	assert.Same(t, a, doc.ActiveElement())
}

func TestDocument_ListenerRemoval(t *testing.T) {
	doc := NewDocument()
	a := NewElement("button")
	doc.Body().AppendChild(a)

	fired := 0
	off := doc.AddFocusListener(EventFocusIn, func(e *Event) { fired++ })
	doc.FocusElement(a)
	assert.Equal(t, 1, fired)

	off()
	doc.Blur()
	doc.FocusElement(a)
	assert.Equal(t, 1, fired)

	// Removing twice is safe.
	off()
}

func TestDocument_DispatchKeyDown(t *testing.T) {
	doc := NewDocument()
	a := NewElement("button")
	doc.Body().AppendChild(a)
	doc.FocusElement(a)

	var got *KeyboardEvent
	doc.AddKeyListener(func(e *KeyboardEvent) { got = e })

	e := doc.DispatchKeyDown(KeyTab, true)
	require.NotNil(t, got)
	assert.Same(t, e, got)
	assert.Equal(t, KeyTab, got.Key)
	assert.True(t, got.Shift)
	assert.Same(t, a, got.Target)
	assert.False(t, e.DefaultPrevented())
}

func TestDocument_DispatchKeyDown_StopPropagation(t *testing.T) {
	doc := NewDocument()
	first, second := 0, 0
	doc.AddKeyListener(func(e *KeyboardEvent) {
		first++
		e.StopPropagation()
	})
	doc.AddKeyListener(func(e *KeyboardEvent) { second++ })

	doc.DispatchKeyDown(KeyEnter, false)
	assert.Equal(t, 1, first)
	assert.Zero(t, second)
}

func TestIsVisible(t *testing.T) {
	doc := NewDocument()
	parent := NewElement("div")
	child := NewElement("button")
	doc.Body().AppendChild(parent)
	parent.AppendChild(child)

	assert.True(t, IsVisible(child))

	parent.SetHidden(true)
	assert.False(t, IsVisible(child))

	parent.SetHidden(false)
	assert.True(t, IsVisible(child))

	assert.False(t, IsVisible(NewElement("div")), "detached elements are not visible")
	assert.False(t, IsVisible(nil))
}

func TestScrolling(t *testing.T) {
	doc := NewDocument()
	sc := NewElement("div")
	sc.SetScrollable(true)
	sc.SetRect(NewRect(0, 0, 100, 50))
	doc.Body().AppendChild(sc)

	inside := NewElement("button")
	inside.SetRect(NewRect(0, 10, 100, 20))
	sc.AppendChild(inside)

	below := NewElement("button")
	below.SetRect(NewRect(0, 80, 100, 20))
	sc.AppendChild(below)

	assert.Same(t, sc, NearestScrollContainer(inside))
	assert.Nil(t, NearestScrollContainer(sc))

	assert.True(t, IsVerticallyVisible(inside))
	assert.False(t, IsVerticallyVisible(below))

	ScrollIntoView(below, false)
	assert.Equal(t, 50.0, sc.ScrollTop())
	assert.True(t, IsVerticallyVisible(below))
	assert.False(t, IsVerticallyVisible(inside))

	ScrollIntoView(inside, true)
	assert.Equal(t, 10.0, sc.ScrollTop())
	assert.True(t, IsVerticallyVisible(inside))
}

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/grouper"
)

// buildGrouperRow registers n sibling groupers under the body, each with
// one focusable button inside.
func buildGrouperRow(doc *dom.Document, groupers *grouper.Registry, n int) []*dom.Element {
	out := make([]*dom.Element, n)
	for i := range out {
		g := dom.NewElement("div")
		g.AppendChild(dom.NewElement("button"))
		doc.Body().AppendChild(g)
		groupers.Create(g, grouper.BasicProps{})
		out[i] = g
	}
	return out
}

func TestEngine_FindGrouper(t *testing.T) {
	e, doc, groupers := newTestEngine()
	gs := buildGrouperRow(doc, groupers, 1)
	button := gs[0].Children()[0]

	assert.Same(t, gs[0], e.FindGrouper(button))
	assert.Same(t, gs[0], e.FindGrouper(gs[0]), "a container resolves to itself")
	assert.Nil(t, e.FindGrouper(doc.Body()))
}

func TestEngine_GrouperEdges(t *testing.T) {
	e, doc, groupers := newTestEngine()
	gs := buildGrouperRow(doc, groupers, 3)

	assert.Same(t, gs[0], e.FindFirstGrouper(nil))
	assert.Same(t, gs[2], e.FindLastGrouper(nil))
}

func TestEngine_SiblingGroupers(t *testing.T) {
	e, doc, groupers := newTestEngine()
	gs := buildGrouperRow(doc, groupers, 3)

	assert.Same(t, gs[1], e.FindNextGrouper(gs[0]))
	assert.Same(t, gs[2], e.FindNextGrouper(gs[1]))
	assert.Nil(t, e.FindNextGrouper(gs[2]))
	assert.Same(t, gs[0], e.FindPrevGrouper(gs[1]))
	assert.Nil(t, e.FindPrevGrouper(gs[0]))
}

func TestEngine_SiblingGroupers_ScopedToEnclosingGrouper(t *testing.T) {
	e, doc, groupers := newTestEngine()

	outer := dom.NewElement("div")
	doc.Body().AppendChild(outer)
	groupers.Create(outer, grouper.BasicProps{})

	inner1 := dom.NewElement("div")
	inner2 := dom.NewElement("div")
	outer.AppendChild(inner1)
	outer.AppendChild(inner2)
	groupers.Create(inner1, grouper.BasicProps{})
	groupers.Create(inner2, grouper.BasicProps{})

	top := dom.NewElement("div")
	doc.Body().AppendChild(top)
	groupers.Create(top, grouper.BasicProps{})

	// Nested groupers are siblings of each other, not of top-level ones.
	assert.Same(t, inner2, e.FindNextGrouper(inner1))
	assert.Nil(t, e.FindNextGrouper(inner2))
	assert.Same(t, top, e.FindNextGrouper(outer))
}

func TestEngine_CurrentGrouper(t *testing.T) {
	e, doc, groupers := newTestEngine()
	gs := buildGrouperRow(doc, groupers, 1)
	button := gs[0].Children()[0]

	require.Nil(t, e.CurrentGrouper())
	assert.False(t, e.IsInCurrentGrouper(button))

	e.SetCurrentGrouper(gs[0])
	assert.Same(t, gs[0], e.CurrentGrouper())
	assert.True(t, e.IsInCurrentGrouper(button))
	assert.False(t, e.IsInCurrentGrouper(doc.Body()))

	// The selection is pruned once the container detaches.
	doc.Body().RemoveChild(gs[0])
	assert.Nil(t, e.CurrentGrouper())
}

func TestEngine_KeyboardNavActive(t *testing.T) {
	e, _, _ := newTestEngine()
	assert.False(t, e.IsKeyboardNavActive())
	e.SetKeyboardNavActive(true)
	assert.True(t, e.IsKeyboardNavActive())
}

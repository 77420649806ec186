package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/focuskit/pkg/dom"
	"github.com/odvcencio/focuskit/pkg/grouper"
)

func TestKeyboard_TabWithoutFocusPassesThrough(t *testing.T) {
	f := newFixture(t)
	f.button(nil, "a")

	e := f.pressKey(dom.KeyTab, false)
	assert.False(t, e.DefaultPrevented())
}

func TestKeyboard_TabOutsideManagedScopesPassesThrough(t *testing.T) {
	f := newFixture(t)
	a := f.button(nil, "a")
	f.button(nil, "b")
	f.doc.FocusNative(a)

	e := f.pressKey(dom.KeyTab, false)
	assert.False(t, e.DefaultPrevented())
	assert.Same(t, a, f.doc.ActiveElement(), "default traversal is the host's business")
}

// trapFixture builds a limited grouper with buttons [a, b, c] and one
// button after it.
type trapFixture struct {
	*fixture
	gEl     *dom.Element
	g       *grouper.Grouper
	a, b, c *dom.Element
	after   *dom.Element
}

func newTrapFixture(t *testing.T) *trapFixture {
	f := newFixture(t)
	gEl := f.div(nil, "trap")
	a := f.button(gEl, "a")
	b := f.button(gEl, "b")
	c := f.button(gEl, "c")
	after := f.button(nil, "after")
	g := f.groupers.Create(gEl, grouper.BasicProps{IsLimited: true})
	return &trapFixture{fixture: f, gEl: gEl, g: g, a: a, b: b, c: c, after: after}
}

func TestKeyboard_TrapWrapForward(t *testing.T) {
	tf := newTrapFixture(t)
	tf.doc.FocusNative(tf.c)

	e := tf.pressKey(dom.KeyTab, false)
	assert.True(t, e.DefaultPrevented())
	// Forward wrap lands on the element after the trap's first.
	assert.Same(t, tf.b, tf.doc.ActiveElement())
}

func TestKeyboard_TrapWrapBackward(t *testing.T) {
	tf := newTrapFixture(t)
	tf.doc.FocusNative(tf.a)

	e := tf.pressKey(dom.KeyTab, true)
	assert.True(t, e.DefaultPrevented())
	assert.Same(t, tf.c, tf.doc.ActiveElement())
}

func TestKeyboard_TabInsideTrap(t *testing.T) {
	tf := newTrapFixture(t)
	tf.doc.FocusNative(tf.a)

	e := tf.pressKey(dom.KeyTab, false)
	assert.True(t, e.DefaultPrevented())
	assert.Same(t, tf.b, tf.doc.ActiveElement())

	e = tf.pressKey(dom.KeyTab, true)
	assert.True(t, e.DefaultPrevented())
	assert.Same(t, tf.a, tf.doc.ActiveElement())
}

func TestKeyboard_UnlimitedGrouperLetsTabLeave(t *testing.T) {
	tf := newTrapFixture(t)
	tf.g.SetUnlimited(true)
	tf.doc.FocusNative(tf.c)

	e := tf.pressKey(dom.KeyTab, false)
	assert.True(t, e.DefaultPrevented())
	assert.Same(t, tf.after, tf.doc.ActiveElement())
}

func TestKeyboard_ParentLimitedRefusesExit(t *testing.T) {
	f := newFixture(t)
	outer := f.div(nil, "outer")
	inner := f.div(outer, "inner")
	a := f.button(inner, "a")
	b := f.button(inner, "b")
	f.button(nil, "after")
	f.groupers.Create(outer, grouper.BasicProps{IsLimited: true})
	f.groupers.Create(inner, grouper.BasicProps{})
	f.groupers.ForElement(inner).SetUnlimited(true)

	f.doc.FocusNative(a)

	// Backward traversal from the unlimited grouper's first element
	// would escape the limited parent: the move is refused.
	e := f.pressKey(dom.KeyTab, true)
	assert.True(t, e.DefaultPrevented())
	assert.Same(t, a, f.doc.ActiveElement())

	// Moves that stay inside the parent are fine.
	e = f.pressKey(dom.KeyTab, false)
	assert.True(t, e.DefaultPrevented())
	assert.Same(t, b, f.doc.ActiveElement())
}

func TestKeyboard_ModalizerVeto(t *testing.T) {
	f := newFixture(t)
	root := f.div(nil, "root")
	m1El := f.div(root, "m1")
	a := f.button(m1El, "a")
	f.button(nil, "outside")

	r := f.roots.CreateRoot(root)
	m := r.AddModalizer("m1", m1El)
	m.SetOnBeforeFocusOut(func() bool { return true })

	f.doc.FocusNative(a)
	require.Equal(t, "m1", r.CurrentModalizerID())

	e := f.pressKey(dom.KeyTab, false)
	assert.True(t, e.DefaultPrevented())
	assert.Same(t, a, f.doc.ActiveElement(), "the vetoed key does nothing")
}

func TestKeyboard_ModalizerExitAllowedWithoutVeto(t *testing.T) {
	f := newFixture(t)
	root := f.div(nil, "root")
	m1El := f.div(root, "m1")
	a := f.button(m1El, "a")
	outside := f.button(nil, "outside")

	r := f.roots.CreateRoot(root)
	r.AddModalizer("m1", m1El)

	f.doc.FocusNative(a)
	e := f.pressKey(dom.KeyTab, false)
	assert.True(t, e.DefaultPrevented())
	assert.Same(t, outside, f.doc.ActiveElement())
}

func TestKeyboard_MoveOutDefaultBlurs(t *testing.T) {
	f := newFixture(t)
	root := f.div(nil, "root")
	m1El := f.div(root, "m1")
	a := f.button(m1El, "a")
	f.roots.CreateRoot(root).AddModalizer("m1", m1El)

	f.doc.FocusNative(a)
	e := f.pressKey(dom.KeyTab, false)

	// Nothing focusable remains in the document: focus is handed out of
	// the root, which by default yields it entirely.
	assert.False(t, e.DefaultPrevented())
	assert.Nil(t, f.doc.ActiveElement())
}

func TestKeyboard_MoveOutHandler(t *testing.T) {
	f := newFixture(t)
	root := f.div(nil, "root")
	m1El := f.div(root, "m1")
	a := f.button(m1El, "a")
	r := f.roots.CreateRoot(root)
	r.AddModalizer("m1", m1El)

	var gotReverse *bool
	r.SetMoveOut(func(reverse bool) { gotReverse = &reverse })

	f.doc.FocusNative(a)
	f.pressKey(dom.KeyTab, true)

	require.NotNil(t, gotReverse)
	assert.True(t, *gotReverse)
	assert.Same(t, a, f.doc.ActiveElement())
}

func TestKeyboard_StaleModalizerSelectionCorrected(t *testing.T) {
	mf := newModalFixture(t)
	root := mf.roots.RootForElement(mf.root)

	require.True(t, mf.tracker.Focus(mf.a))
	require.Equal(t, "m1", root.CurrentModalizerID())

	// The application switched the current scope without moving focus.
	root.SetCurrentModalizerID("m2")

	e := mf.pressKey(dom.KeyTab, false)
	assert.True(t, e.DefaultPrevented())
	// Traversal proceeds relative to the newly current scope.
	assert.Same(t, mf.b, mf.doc.ActiveElement())
}

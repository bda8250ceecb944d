package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitoma/vectortext/outline"
	"github.com/mitoma/vectortext/textedit"
)

func TestLinearLayoutPlacesModelsHorizontally(t *testing.T) {
	a := newFakeModel("a", 10, 4)
	b := newFakeModel("b", 20, 4)
	w := NewDefaultWorld(WindowSize{Width: 800, Height: 600})
	w.Add(a)
	w.Add(b)
	w.ReLayout()

	assert.Equal(t, float32(5), a.Position().X)
	assert.Equal(t, float32(-2), a.Position().Y)
	assert.Equal(t, float32(25), b.Position().X)
}

func TestAddNextInsertsAfterFocus(t *testing.T) {
	a := newFakeModel("a", 1, 1)
	b := newFakeModel("b", 1, 1)
	c := newFakeModel("c", 1, 1)
	w := NewDefaultWorld(WindowSize{Width: 100, Height: 100})
	w.Add(a)
	w.Add(b)
	w.AddNext(c)

	require.Equal(t, 3, w.ModelLength())
	assert.Same(t, a, w.models[0])
	assert.Same(t, c, w.models[1])
	assert.Same(t, b, w.models[2])
}

func TestLookNextWrapsAround(t *testing.T) {
	a := newFakeModel("a", 10, 10)
	b := newFakeModel("b", 10, 10)
	w := NewDefaultWorld(WindowSize{Width: 100, Height: 100})
	w.Add(a)
	w.Add(b)
	w.ReLayout()

	w.LookAt(1, NoCare)
	w.LookNext(NoCare)
	assert.Equal(t, 0, w.focus)
}

func TestLookNextSuppressedWhileModalActive(t *testing.T) {
	a := newFakeModel("a", 10, 10)
	b := newFakeModel("b", 10, 10)
	modal := newFakeModel("modal", 5, 5)
	modal.mode = Modal
	w := NewDefaultWorld(WindowSize{Width: 100, Height: 100})
	w.Add(a)
	w.Add(b)
	w.AddModal(modal)
	w.ReLayout()

	w.LookNext(NoCare)
	assert.Equal(t, 0, w.focus)
}

func TestEditorOperationRoutesToModalOverFocusedModel(t *testing.T) {
	a := newFakeModel("a", 10, 10)
	modal := newFakeModel("modal", 5, 5)
	modal.mode = Modal
	w := NewDefaultWorld(WindowSize{Width: 100, Height: 100})
	w.Add(a)
	w.AddModal(modal)

	op := textedit.EditOperation{Kind: textedit.OpInsertChar, Char: 'x'}
	w.EditorOperation(op)

	require.NotNil(t, modal.lastEdit)
	assert.Nil(t, a.lastEdit)
}

func TestRemoveCurrentDismissesTopmostModalFirst(t *testing.T) {
	a := newFakeModel("a", 10, 10)
	modal := newFakeModel("modal", 5, 5)
	modal.mode = Modal
	w := NewDefaultWorld(WindowSize{Width: 100, Height: 100})
	w.Add(a)
	w.AddModal(modal)

	w.RemoveCurrent()

	assert.Equal(t, 0, len(w.modalStack))
	assert.Equal(t, 1, w.ModelLength())
	require.Len(t, w.removedModels, 1)
	assert.Same(t, modal, w.removedModels[0])
}

func TestStringsExcludesModalModels(t *testing.T) {
	a := newFakeModel("visible", 10, 10)
	b := newFakeModel("hidden-modal", 10, 10)
	b.mode = Modal
	w := NewDefaultWorld(WindowSize{Width: 100, Height: 100})
	w.Add(a)
	w.Add(b)

	strs := w.Strings()
	assert.Equal(t, []string{"visible"}, strs)
}

func TestUpdateTriggersRelayoutOnDirectionChange(t *testing.T) {
	a := newFakeModel("a", 10, 4)
	w := NewDefaultWorld(WindowSize{Width: 100, Height: 100})
	w.Add(a)
	w.Update(&Context{Direction: outline.Horizontal})

	w.Update(&Context{Direction: outline.Vertical})
	require.NotNil(t, a.lastOp)
	assert.Equal(t, ChangeDirection, a.lastOp.Kind)
	assert.Equal(t, outline.Vertical, a.lastOp.Direction)
}

func TestMoveToPositionFocusesNearestModel(t *testing.T) {
	a := newFakeModel("a", 10, 10)
	b := newFakeModel("b", 10, 10)
	w := NewDefaultWorld(WindowSize{Width: 100, Height: 100})
	w.Add(a)
	w.Add(b)
	w.ReLayout()
	w.LookAt(0, NoCare)

	w.MoveToPosition(0, 0)
	assert.GreaterOrEqual(t, w.focus, 0)
}

func TestWorldLayoutNextCycles(t *testing.T) {
	assert.Equal(t, LayoutCircle, LayoutLinear.Next())
	assert.Equal(t, LayoutLinear, LayoutCircle.Next())
}

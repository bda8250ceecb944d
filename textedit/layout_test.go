package textedit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitoma/vectortext/outline"
)

func TestLineWrapperWrapsWhenBudgetExceeded(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertString(&caret, "aaaa bbbb")

	lw := NewLineWrapper(4)
	positions := lw.Layout(buf)

	for i := 0; i < 8; i++ {
		assert.Equal(t, 0, positions[0][i].Row, "char %d should stay on the first physical row", i)
	}
	assert.Equal(t, 1, positions[0][8].Row)
	assert.Equal(t, 0, positions[0][8].Col)
}

func TestLineWrapperPullsBackProhibitedLineStartRun(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertString(&caret, "a wx)yz")

	lw := NewLineWrapper(2)
	positions := lw.Layout(buf)

	// "wx)" must move to the new row together, not strand ')' alone.
	assert.Equal(t, 0, positions[0][0].Row)
	assert.Equal(t, 1, positions[0][2].Row)
	assert.Equal(t, 1, positions[0][3].Row)
	assert.Equal(t, 1, positions[0][4].Row)
	assert.Equal(t, 0, positions[0][2].Col)
	assert.Equal(t, 1, positions[0][3].Col)
	assert.Equal(t, 2, positions[0][4].Col)
}

func TestLineWrapperNoWrapWhenMaxColZero(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertString(&caret, "aaaaaaaaaaaaaaaaaaaa")

	lw := NewLineWrapper(0)
	positions := lw.Layout(buf)
	for _, p := range positions[0] {
		assert.Equal(t, 0, p.Row)
	}
}

func TestAdjustedPositionHorizontal(t *testing.T) {
	x, y := AdjustedPosition(PhysPosition{Row: 2, Col: 4}, outline.WidthRegular, 1.0, 1.0, outline.Horizontal, 0)
	assert.InDelta(t, 2-0.25, x, 0.001)
	assert.InDelta(t, 2.0, y, 0.001)
}

func TestAdjustedPositionVerticalSwapsAxes(t *testing.T) {
	x, y := AdjustedPosition(PhysPosition{Row: 1, Col: 0}, outline.WidthRegular, 1.0, 1.0, outline.Vertical, 10)
	assert.InDelta(t, 9.0, x, 0.001)
	assert.InDelta(t, -0.25, y, 0.001)
}

func TestBoundClampsToMinimum(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertChar(&caret, 'a')

	lw := NewLineWrapper(80)
	positions := lw.Layout(buf)
	w, h := Bound(positions, buf, 1.0, 1.0, outline.Horizontal, false)
	assert.Equal(t, float32(minBound), w)
	assert.Equal(t, float32(minBound), h)
}

func TestBoundForcesMinimumWhenRequested(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertString(&caret, "a very long line of text far past the minimum bound")

	lw := NewLineWrapper(0)
	positions := lw.Layout(buf)
	w, _ := Bound(positions, buf, 1.0, 1.0, outline.Horizontal, true)
	assert.Equal(t, float32(minBound), w)
}

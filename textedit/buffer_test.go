package textedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferInsertCharAndEnter(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	assert.Equal(t, "", buf.ToBufferString())

	buf.InsertChar(&caret, '山')
	assert.Equal(t, "山", buf.ToBufferString())
	assert.Equal(t, 0, caret.Row)
	assert.Equal(t, 1, caret.Col)

	buf.InsertChar(&caret, '本')
	assert.Equal(t, "山本", buf.ToBufferString())
	assert.Equal(t, 2, caret.Col)

	buf.InsertEnter(&caret)
	assert.Equal(t, "山本\n", buf.ToBufferString())
	assert.Equal(t, 1, caret.Row)
	assert.Equal(t, 0, caret.Col)
}

func TestBufferInsertString(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertString(&caret, "東京は\n今日もいい天気\nだった。")
	assert.Equal(t, "東京は\n今日もいい天気\nだった。", buf.ToBufferString())
	assert.Equal(t, 2, caret.Row)
	assert.Equal(t, 4, caret.Col)
}

func TestBufferMove(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertString(&caret, "あいうえお\nきかくけここ\nさしすせそ")

	caret.MoveTo(0, 0)
	buf.Forward(&caret)
	assert.Equal(t, Caret{Row: 0, Col: 1}, caret)

	caret.MoveTo(0, 4)
	buf.Forward(&caret)
	assert.Equal(t, Caret{Row: 0, Col: 5}, caret)

	caret.MoveTo(0, 5)
	buf.Forward(&caret)
	assert.Equal(t, Caret{Row: 1, Col: 0}, caret)

	caret.MoveTo(2, 5)
	buf.Forward(&caret)
	assert.Equal(t, Caret{Row: 2, Col: 5}, caret)

	caret.MoveTo(0, 3)
	buf.Back(&caret)
	assert.Equal(t, Caret{Row: 0, Col: 2}, caret)

	caret.MoveTo(0, 0)
	buf.Back(&caret)
	assert.Equal(t, Caret{Row: 0, Col: 0}, caret)

	caret.MoveTo(2, 0)
	buf.Back(&caret)
	assert.Equal(t, Caret{Row: 1, Col: 6}, caret)

	caret.MoveTo(1, 3)
	buf.Previous(&caret)
	assert.Equal(t, Caret{Row: 0, Col: 3}, caret)

	caret.MoveTo(1, 5)
	buf.Previous(&caret)
	assert.Equal(t, Caret{Row: 0, Col: 5}, caret)

	caret.MoveTo(2, 4)
	buf.Previous(&caret)
	assert.Equal(t, Caret{Row: 1, Col: 4}, caret)

	caret.MoveTo(0, 3)
	buf.Next(&caret)
	assert.Equal(t, Caret{Row: 1, Col: 3}, caret)

	caret.MoveTo(1, 6)
	buf.Next(&caret)
	assert.Equal(t, Caret{Row: 2, Col: 5}, caret)

	caret.MoveTo(2, 5)
	buf.Next(&caret)
	assert.Equal(t, Caret{Row: 2, Col: 5}, caret)
}

func TestBufferBackspace(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertString(&caret, "あいうえお\nかきくけこ\nさしすせそ")

	c := NewCaret(1, 3)
	assert.Equal(t, removedChar('く'), buf.Backspace(&c))
	assert.Equal(t, "あいうえお\nかきけこ\nさしすせそ", buf.ToBufferString())

	c = NewCaret(1, 4)
	assert.Equal(t, removedChar('こ'), buf.Backspace(&c))
	assert.Equal(t, "あいうえお\nかきけ\nさしすせそ", buf.ToBufferString())

	c = NewCaret(2, 0)
	assert.Equal(t, removedEnter(), buf.Backspace(&c))
	assert.Equal(t, "あいうえお\nかきけさしすせそ", buf.ToBufferString())
}

func TestBufferDelete(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertString(&caret, "あいうえお\nかきくけこ\nさしすせそ")

	c := NewCaret(1, 3)
	assert.Equal(t, removedChar('け'), buf.Delete(&c))
	assert.Equal(t, "あいうえお\nかきくこ\nさしすせそ", buf.ToBufferString())

	c = NewCaret(1, 3)
	assert.Equal(t, removedChar('こ'), buf.Delete(&c))
	c = NewCaret(1, 3)
	assert.Equal(t, removedEnter(), buf.Delete(&c))
	assert.Equal(t, "あいうえお\nかきくさしすせそ", buf.ToBufferString())

	c = NewCaret(1, 7)
	assert.Equal(t, removedChar('そ'), buf.Delete(&c))
	assert.Equal(t, "あいうえお\nかきくさしすせ", buf.ToBufferString())

	c = NewCaret(1, 7)
	assert.Equal(t, removedNone, buf.Delete(&c))
	assert.Equal(t, "あいうえお\nかきくさしすせ", buf.ToBufferString())
}

func TestBufferCopyString(t *testing.T) {
	caret := NewCaret(0, 0)
	buf := NewBuffer(nil)
	buf.InsertString(&caret, "あいうえお\nかきくけこ\nさしすせそ")

	got := buf.CopyString(NewCaret(0, 1), NewCaret(1, 3))
	assert.Equal(t, "いうえお\nかきく", got)

	got = buf.CopyString(NewCaret(1, 3), NewCaret(0, 1))
	assert.Equal(t, "いうえお\nかきく", got)

	assert.Equal(t, "", buf.CopyString(NewCaret(0, 1), NewCaret(0, 1)))
}

func TestBufferCharInCaretRange(t *testing.T) {
	c := BufferChar{Row: 1, Col: 3, Char: 'a'}
	assert.True(t, c.InCaretRange(NewCaret(1, 0), NewCaret(1, 5)))
	assert.False(t, c.InCaretRange(NewCaret(1, 4), NewCaret(1, 5)))
	assert.False(t, c.InCaretRange(NewCaret(1, 0), NewCaret(1, 3)))
	assert.True(t, c.InCaretRange(NewCaret(1, 5), NewCaret(1, 0)))
}

func TestCharTypeOf(t *testing.T) {
	assert.Equal(t, charWhitespace, charTypeOf(' '))
	assert.Equal(t, charAlphabet, charTypeOf('a'))
	assert.Equal(t, charAsciiDigit, charTypeOf('1'))
	assert.Equal(t, charHiragana, charTypeOf('あ'))
	assert.Equal(t, charKatakana, charTypeOf('ア'))
	assert.Equal(t, charKanji, charTypeOf('一'))
	assert.Equal(t, charOther, charTypeOf('!'))
}

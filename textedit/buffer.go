package textedit

import "strings"

// RemovedChar reports what a delete/backspace actually removed: an
// ordinary character, a line-joining newline, or nothing (buffer head).
type RemovedChar struct {
	IsChar  bool
	IsEnter bool
	Char    rune
}

var removedNone = RemovedChar{}

func removedChar(c rune) RemovedChar { return RemovedChar{IsChar: true, Char: c} }
func removedEnter() RemovedChar      { return RemovedChar{IsEnter: true} }

// BufferChar is one placed character, carrying the row/col a renderer
// keys its glyph instance off of.
type BufferChar struct {
	Row, Col int
	Char     rune
}

// InCaretRange reports whether c falls within [from, to) in reading
// order, regardless of which endpoint is numerically earlier — the
// predicate a selection highlight pass runs per character.
func (c BufferChar) InCaretRange(from, to Caret) bool {
	if to.Less(from) {
		from, to = to, from
	}
	if from.Row > c.Row || to.Row < c.Row {
		return false
	}
	if from.Row == c.Row && from.Col > c.Col {
		return false
	}
	if to.Row == c.Row && to.Col <= c.Col {
		return false
	}
	return true
}

// BufferLine is one row of characters.
type BufferLine struct {
	rowNum int
	chars  []BufferChar
}

func (l *BufferLine) toLineString() string {
	var b strings.Builder
	for _, c := range l.chars {
		b.WriteRune(c.Char)
	}
	return b.String()
}

func (l *BufferLine) updatePosition(rowNum int, emit func(ChangeEvent)) {
	l.rowNum = rowNum
	for i := range l.chars {
		l.setCharPosition(i, rowNum, i, emit)
	}
}

func (l *BufferLine) setCharPosition(i, row, col int, emit func(ChangeEvent)) {
	from := l.chars[i]
	if from.Row == row && from.Col == col {
		return
	}
	l.chars[i].Row, l.chars[i].Col = row, col
	emit(ChangeEvent{Kind: ChangeMoveChar, From: from, To: l.chars[i]})
}

func (l *BufferLine) insertChar(col int, c rune, emit func(ChangeEvent)) {
	for i := len(l.chars) - 1; i >= col; i-- {
		l.setCharPosition(i, l.rowNum, i+1, emit)
	}
	ch := BufferChar{Row: l.rowNum, Col: col, Char: c}
	l.chars = append(l.chars, BufferChar{})
	copy(l.chars[col+1:], l.chars[col:])
	l.chars[col] = ch
	emit(ChangeEvent{Kind: ChangeAddChar, Char: ch})
}

// insertEnter splits the line at col, returning the new trailing line
// (or nil if col is out of range).
func (l *BufferLine) insertEnter(col int) *BufferLine {
	switch {
	case len(l.chars) == col:
		return &BufferLine{rowNum: l.rowNum + 1}
	case len(l.chars) > col:
		tail := append([]BufferChar(nil), l.chars[col:]...)
		l.chars = l.chars[:col]
		return &BufferLine{rowNum: l.rowNum + 1, chars: tail}
	default:
		return nil
	}
}

func (l *BufferLine) removeChar(col int, emit func(ChangeEvent)) RemovedChar {
	removed := l.chars[col]
	l.chars = append(l.chars[:col], l.chars[col+1:]...)
	emit(ChangeEvent{Kind: ChangeRemoveChar, Char: removed})
	for i := col; i < len(l.chars); i++ {
		l.setCharPosition(i, l.rowNum, i, emit)
	}
	return removedChar(removed.Char)
}

func (l *BufferLine) join(other *BufferLine, emit func(ChangeEvent)) {
	base := len(l.chars)
	for i, c := range other.chars {
		c.Row, c.Col = l.rowNum, base+i
		l.chars = append(l.chars, c)
		emit(ChangeEvent{Kind: ChangeMoveChar, From: other.chars[i], To: c})
	}
}

func (l *BufferLine) substring(start, end int) string {
	if end > len(l.chars) {
		end = len(l.chars)
	}
	if start > end {
		start = end
	}
	var b strings.Builder
	for _, c := range l.chars[start:end] {
		b.WriteRune(c.Char)
	}
	return b.String()
}

// Buffer is a full text document: an ordered list of BufferLines, with
// every mutation reported through emit so a renderer's instance stores
// stay in sync one character at a time.
type Buffer struct {
	Lines []*BufferLine
	emit  func(ChangeEvent)
}

// NewBuffer returns a single-empty-line buffer. emit may be nil to
// discard change events (e.g. headless batch edits).
func NewBuffer(emit func(ChangeEvent)) *Buffer {
	if emit == nil {
		emit = func(ChangeEvent) {}
	}
	return &Buffer{Lines: []*BufferLine{{}}, emit: emit}
}

// ToBufferString renders the whole document back to a string, lines
// joined by '\n'.
func (b *Buffer) ToBufferString() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = l.toLineString()
	}
	return strings.Join(parts, "\n")
}

// InsertString splits s on line breaks and inserts each line in turn,
// advancing caret past the final inserted line.
func (b *Buffer) InsertString(caret *Caret, s string) {
	normalized := strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	for _, c := range lines[0] {
		b.InsertChar(caret, c)
	}
	for _, line := range lines[1:] {
		b.InsertEnter(caret)
		for _, c := range line {
			b.InsertChar(caret, c)
		}
	}
}

// InsertChar inserts c at caret and advances caret one column.
func (b *Buffer) InsertChar(caret *Caret, c rune) {
	if caret.Row < 0 || caret.Row >= len(b.Lines) {
		return
	}
	b.Lines[caret.Row].insertChar(caret.Col, c, b.emit)
	caret.MoveTo(caret.Row, caret.Col+1)
}

// InsertEnter splits the current line at caret, moving caret to the
// start of the new line below.
func (b *Buffer) InsertEnter(caret *Caret) {
	if caret.Row < 0 || caret.Row >= len(b.Lines) {
		return
	}
	line := b.Lines[caret.Row]
	next := line.insertEnter(caret.Col)
	if next == nil {
		return
	}
	for i := len(b.Lines) - 1; i > caret.Row; i-- {
		b.Lines[i].updatePosition(b.Lines[i].rowNum+1, b.emit)
	}
	next.updatePosition(caret.Row+1, b.emit)
	b.Lines = append(b.Lines, nil)
	copy(b.Lines[caret.Row+2:], b.Lines[caret.Row+1:])
	b.Lines[caret.Row+1] = next
	caret.MoveTo(caret.Row+1, 0)
}

func (b *Buffer) updatePositions() {
	for i, l := range b.Lines {
		l.updatePosition(i, b.emit)
	}
}

// Head moves caret to column 0 of its current row.
func (b *Buffer) Head(caret *Caret) { caret.MoveTo(caret.Row, 0) }

// Last moves caret to the end of its current row.
func (b *Buffer) Last(caret *Caret) {
	if caret.Row >= 0 && caret.Row < len(b.Lines) {
		caret.MoveTo(caret.Row, len(b.Lines[caret.Row].chars))
	}
}

func (b *Buffer) isBufferHead(c Caret) bool { return c.Row == 0 }
func (b *Buffer) isBufferLast(c Caret) bool { return c.Row == len(b.Lines)-1 }
func (b *Buffer) isLineHead(c Caret) bool   { return c.Col == 0 }
func (b *Buffer) isLineLast(c Caret) bool {
	if c.Row < 0 || c.Row >= len(b.Lines) {
		return false
	}
	return c.Col >= len(b.Lines[c.Row].chars)
}

// Back moves caret one character left, wrapping to the previous line's
// end at a line head.
func (b *Buffer) Back(caret *Caret) {
	switch {
	case b.isLineHead(*caret) && b.isBufferHead(*caret):
	case b.isLineHead(*caret):
		b.Previous(caret)
		b.Last(caret)
	default:
		caret.MoveTo(caret.Row, caret.Col-1)
	}
}

// Forward moves caret one character right, wrapping to the next line's
// head at a line end.
func (b *Buffer) Forward(caret *Caret) {
	switch {
	case b.isLineLast(*caret) && b.isBufferLast(*caret):
	case b.isLineLast(*caret):
		b.Next(caret)
		b.Head(caret)
	default:
		caret.MoveTo(caret.Row, caret.Col+1)
	}
}

// Previous moves caret to the same column on the row above, clamped to
// that row's own length.
func (b *Buffer) Previous(caret *Caret) {
	if !b.isBufferHead(*caret) {
		caret.MoveTo(caret.Row-1, caret.Col)
		if b.isLineLast(*caret) {
			b.Last(caret)
		}
	}
}

// Next moves caret to the same column on the row below, clamped to that
// row's own length.
func (b *Buffer) Next(caret *Caret) {
	if !b.isBufferLast(*caret) {
		caret.MoveTo(caret.Row+1, caret.Col)
		if b.isLineLast(*caret) {
			b.Last(caret)
		}
	}
}

// BufferHead moves caret to (0, 0).
func (b *Buffer) BufferHead(caret *Caret) { caret.MoveTo(0, 0) }

// BufferLast moves caret to the end of the final line.
func (b *Buffer) BufferLast(caret *Caret) {
	if len(b.Lines) == 0 {
		return
	}
	last := b.Lines[len(b.Lines)-1]
	caret.MoveTo(last.rowNum, len(last.chars))
}

// BackWord moves caret to the start of the previous word, classifying
// runs of characters by CharType the same way a double-click word
// selection would.
func (b *Buffer) BackWord(caret *Caret) {
	switch {
	case b.isLineHead(*caret) && b.isBufferHead(*caret):
	case b.isLineHead(*caret):
		b.Previous(caret)
		b.Last(caret)
	default:
		line := b.Lines[caret.Row]
		startType := charTypeOf(line.chars[caret.Col-1].Char)
		nextCol := caret.Col
		for i := caret.Col - 2; i >= 0; i-- {
			nextCol--
			if charTypeOf(line.chars[i].Char) != startType {
				caret.MoveTo(caret.Row, nextCol)
				return
			}
		}
		b.Head(caret)
	}
}

// ForwardWord moves caret to the start of the next word.
func (b *Buffer) ForwardWord(caret *Caret) {
	switch {
	case b.isLineLast(*caret) && b.isBufferLast(*caret):
	case b.isLineLast(*caret):
		b.Next(caret)
		b.Head(caret)
	default:
		line := b.Lines[caret.Row]
		startType := charTypeOf(line.chars[caret.Col].Char)
		nextCol := caret.Col
		for i := caret.Col + 1; i < len(line.chars); i++ {
			nextCol++
			if charTypeOf(line.chars[i].Char) != startType {
				caret.MoveTo(caret.Row, nextCol)
				return
			}
		}
		b.Last(caret)
	}
}

// Backspace removes the character before caret, moving caret back onto
// it first.
func (b *Buffer) Backspace(caret *Caret) RemovedChar {
	if b.isBufferHead(*caret) && b.isLineHead(*caret) {
		return removedNone
	}
	b.Back(caret)
	return b.Delete(caret)
}

// Delete removes the character at caret (or joins with the next line at
// a line end).
func (b *Buffer) Delete(caret *Caret) RemovedChar {
	if b.isLineLast(*caret) {
		if b.isBufferLast(*caret) {
			return removedNone
		}
		next := b.Lines[caret.Row+1]
		b.Lines = append(b.Lines[:caret.Row+1], b.Lines[caret.Row+2:]...)
		b.Lines[caret.Row].join(next, b.emit)
		b.updatePositions()
		return removedEnter()
	}
	return b.Lines[caret.Row].removeChar(caret.Col, b.emit)
}

// CopyString returns the text between mark and current, in reading
// order regardless of which caret is numerically earlier.
func (b *Buffer) CopyString(mark, current Caret) string {
	if mark.Row == current.Row && mark.Col == current.Col {
		return ""
	}
	start, end := mark, current
	if current.Less(mark) {
		start, end = current, mark
	}
	if start.Row == end.Row {
		return b.Lines[start.Row].substring(start.Col, end.Col)
	}
	var sb strings.Builder
	sb.WriteString(b.Lines[start.Row].substring(start.Col, len(b.Lines[start.Row].chars)))
	sb.WriteByte('\n')
	for i := start.Row + 1; i < end.Row; i++ {
		sb.WriteString(b.Lines[i].toLineString())
		sb.WriteByte('\n')
	}
	sb.WriteString(b.Lines[end.Row].substring(0, end.Col))
	return sb.String()
}

type charType int

const (
	charWhitespace charType = iota
	charAsciiDigit
	charAlphabet
	charHiragana
	charKatakana
	charKanji
	charOther
)

func charTypeOf(c rune) charType {
	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		return charWhitespace
	case c >= '0' && c <= '9':
		return charAsciiDigit
	case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		return charAlphabet
	case c >= 'ぁ' && c <= 'ん':
		return charHiragana
	case c >= 'ァ' && c <= 'ン':
		return charKatakana
	case c >= '一' && c <= '龥':
		return charKanji
	default:
		return charOther
	}
}

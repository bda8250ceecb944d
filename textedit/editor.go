package textedit

// CharWidthResolver supplies a rune's display width, letting
// CopyDisplayString reconstruct the padded text a user sees (e.g. in a
// monospaced rendering where wide glyphs count for two columns).
type CharWidthResolver interface {
	WidthOf(r rune) float32
}

// EditOperationKind tags the variant an EditOperation carries: the
// forwarded edit-operation grammar a key binder issues.
type EditOperationKind int

const (
	OpInsertChar EditOperationKind = iota
	OpInsertString
	OpInsertEnter
	OpBackspace
	OpBackspaceWord
	OpDelete
	OpDeleteWord
	OpPrevious
	OpNext
	OpBack
	OpForward
	OpBackWord
	OpForwardWord
	OpHead
	OpLast
	OpBufferHead
	OpBufferLast
	OpMark
	OpUnMark
	OpCut
	OpCopy
	OpPaste
	OpUndo
	OpMoveTo
	OpNoop
)

// EditOperation is one discrete edit-grammar instruction a key binder
// issues to the focused Model. Unused fields for a given Kind are left
// zero, the same tagged-struct idiom ModelOperation and instance.Key
// already use.
type EditOperation struct {
	Kind EditOperationKind

	Char   rune
	String string

	// Sink receives the copied/cut text for Copy/Cut; Source supplies
	// the text to insert for Paste.
	Sink   func(string)
	Source func() string

	Caret Caret
}

type snapshot struct {
	lines []*BufferLine
	caret Caret
	mark  Caret
}

func cloneLines(lines []*BufferLine) []*BufferLine {
	out := make([]*BufferLine, len(lines))
	for i, l := range lines {
		chars := append([]BufferChar(nil), l.chars...)
		out[i] = &BufferLine{rowNum: l.rowNum, chars: chars}
	}
	return out
}

// Editor couples a Buffer with a primary caret, an optional mark, and an
// undo history, and dispatches the EditOperation grammar against them.
type Editor struct {
	Buffer  *Buffer
	Caret   Caret
	Mark    Caret
	HasMark bool

	emit    func(ChangeEvent)
	history []snapshot
}

// NewEditor returns an editor over a fresh empty buffer. emit may be nil
// to discard per-character change events.
func NewEditor(emit func(ChangeEvent)) *Editor {
	if emit == nil {
		emit = func(ChangeEvent) {}
	}
	e := &Editor{Buffer: NewBuffer(emit), Caret: NewCaret(0, 0), emit: emit}
	e.emit(ChangeEvent{Kind: ChangeAddCaret, Caret: e.Caret})
	return e
}

// selectedChars returns every BufferChar currently within the mark/caret
// range, used to diff selection state across an operation.
func (e *Editor) selectedChars() map[BufferChar]bool {
	selected := make(map[BufferChar]bool)
	if !e.HasMark {
		return selected
	}
	for _, line := range e.Buffer.Lines {
		for _, c := range line.chars {
			if c.InCaretRange(e.Mark, e.Caret) {
				selected[c] = true
			}
		}
	}
	return selected
}

// emitSelectionDiff compares the selected-char set before and after an
// operation and emits SelectChar/UnSelectChar for whatever changed: the
// per-character highlight retargeting a selection drag produces.
func (e *Editor) emitSelectionDiff(before map[BufferChar]bool) {
	after := e.selectedChars()
	for c := range after {
		if !before[c] {
			e.emit(ChangeEvent{Kind: ChangeSelectChar, Char: c})
		}
	}
	for c := range before {
		if !after[c] {
			e.emit(ChangeEvent{Kind: ChangeUnSelectChar, Char: c})
		}
	}
}

func (e *Editor) pushHistory() {
	e.history = append(e.history, snapshot{
		lines: cloneLines(e.Buffer.Lines),
		caret: e.Caret,
		mark:  e.Mark,
	})
}

// String returns the buffer's full text, matching Model's to_string
// contract.
func (e *Editor) String() string { return e.Buffer.ToBufferString() }

// Apply dispatches one EditOperation against the buffer and caret.
func (e *Editor) Apply(op EditOperation) {
	beforeCaret := e.Caret
	beforeSelection := e.selectedChars()
	defer func() {
		if e.Caret != beforeCaret {
			e.emit(ChangeEvent{Kind: ChangeMoveCaret, CaretFrom: beforeCaret, CaretTo: e.Caret})
		}
		e.emitSelectionDiff(beforeSelection)
	}()

	switch op.Kind {
	case OpInsertChar:
		e.pushHistory()
		e.Buffer.InsertChar(&e.Caret, op.Char)
	case OpInsertString:
		e.pushHistory()
		e.Buffer.InsertString(&e.Caret, op.String)
	case OpInsertEnter:
		e.pushHistory()
		e.Buffer.InsertEnter(&e.Caret)
	case OpBackspace:
		e.pushHistory()
		e.Buffer.Backspace(&e.Caret)
	case OpBackspaceWord:
		e.pushHistory()
		e.deleteWord(true)
	case OpDelete:
		e.pushHistory()
		e.Buffer.Delete(&e.Caret)
	case OpDeleteWord:
		e.pushHistory()
		e.deleteWord(false)
	case OpPrevious:
		e.Buffer.Previous(&e.Caret)
	case OpNext:
		e.Buffer.Next(&e.Caret)
	case OpBack:
		e.Buffer.Back(&e.Caret)
	case OpForward:
		e.Buffer.Forward(&e.Caret)
	case OpBackWord:
		e.Buffer.BackWord(&e.Caret)
	case OpForwardWord:
		e.Buffer.ForwardWord(&e.Caret)
	case OpHead:
		e.Buffer.Head(&e.Caret)
	case OpLast:
		e.Buffer.Last(&e.Caret)
	case OpBufferHead:
		e.Buffer.BufferHead(&e.Caret)
	case OpBufferLast:
		e.Buffer.BufferLast(&e.Caret)
	case OpMark:
		e.Mark, e.HasMark = e.Caret, true
		e.emit(ChangeEvent{Kind: ChangeAddCaret, Caret: e.Mark})
	case OpUnMark:
		if e.HasMark {
			e.emit(ChangeEvent{Kind: ChangeRemoveCaret, Caret: e.Mark})
		}
		e.HasMark = false
	case OpCut:
		if e.HasMark && op.Sink != nil {
			op.Sink(e.Buffer.CopyString(e.Mark, e.Caret))
			e.pushHistory()
			e.deleteRange(e.Mark, e.Caret)
			e.emit(ChangeEvent{Kind: ChangeRemoveCaret, Caret: e.Mark})
			e.HasMark = false
		}
	case OpCopy:
		if e.HasMark && op.Sink != nil {
			op.Sink(e.Buffer.CopyString(e.Mark, e.Caret))
		}
	case OpPaste:
		if op.Source != nil {
			e.pushHistory()
			e.Buffer.InsertString(&e.Caret, op.Source())
		}
	case OpUndo:
		e.undo()
	case OpMoveTo:
		e.Caret = op.Caret
	case OpNoop:
	}
}

func (e *Editor) undo() {
	if len(e.history) == 0 {
		return
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.Buffer.Lines = last.lines
	e.Caret = last.caret
	e.Mark = last.mark
}

// deleteWord removes the run of same-class characters adjacent to caret,
// in the given direction, simplified to a same-row span.
func (e *Editor) deleteWord(backward bool) {
	start := e.Caret
	if backward {
		e.Buffer.BackWord(&e.Caret)
		e.deleteRange(e.Caret, start)
	} else {
		e.Buffer.ForwardWord(&e.Caret)
		e.deleteRange(start, e.Caret)
		e.Caret = start
	}
}

func (e *Editor) deleteRange(from, to Caret) {
	start, end := from, to
	if to.Less(from) {
		start, end = to, from
	}
	// Each Delete at start removes one char or one line break, so deleting
	// once per rune of the range's text removes exactly that range.
	count := len([]rune(e.Buffer.CopyString(start, end)))
	for i := 0; i < count; i++ {
		cur := Caret{Row: start.Row, Col: start.Col}
		e.Buffer.Delete(&cur)
	}
	e.Caret = start
}

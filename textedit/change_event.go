package textedit

// ChangeEventKind tags a ChangeEvent's variant: AddChar/RemoveChar/
// MoveChar cover character-level buffer edits; SelectChar/UnSelectChar/
// AddCaret/MoveCaret/RemoveCaret cover caret and selection-highlight
// changes a renderer animates the same way.
type ChangeEventKind int

const (
	ChangeAddChar ChangeEventKind = iota
	ChangeRemoveChar
	ChangeMoveChar
	ChangeSelectChar
	ChangeUnSelectChar
	ChangeAddCaret
	ChangeMoveCaret
	ChangeRemoveCaret
)

// ChangeEvent notifies a renderer that a BufferChar or Caret appeared,
// vanished, moved, or changed selection state, so it can drive the
// per-character motion word that animates the transition instead of
// popping the glyph instantly.
type ChangeEvent struct {
	Kind ChangeEventKind

	Char     BufferChar
	From, To BufferChar

	Caret         Caret
	CaretFrom, CaretTo Caret
}

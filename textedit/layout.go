package textedit

import (
	"github.com/mattn/go-runewidth"

	"github.com/mitoma/vectortext/outline"
)

// PhysPosition is a buffer char or caret's wrapped grid coordinate: Col
// counts in half-width units (a WidthRegular char advances Col by 1, a
// WidthWide one by 2), feeding the `x = (col/2 + width.left) · col_interval`
// formula AdjustedPosition computes below.
type PhysPosition struct {
	Row, Col int
}

// WidthOf classifies r's display width, exported so callers outside this
// package (a Model implementation wiring glyph instances) can reuse the
// same classifier layout and Bound computations already use internally.
func WidthOf(r rune) outline.GlyphWidth { return widthOf(r) }

func widthOf(r rune) outline.GlyphWidth {
	switch runewidth.RuneWidth(r) {
	case 0, 1:
		return outline.WidthRegular
	default:
		return outline.WidthWide
	}
}

func widthUnits(w outline.GlyphWidth) int {
	if w == outline.WidthWide {
		return 2
	}
	return 1
}

// isProhibitedLineStart reports whether r must never begin a physical
// line (the classic "closing bracket/punctuation" kinsoku-shori rule).
func isProhibitedLineStart(r rune) bool {
	switch r {
	case ')', ']', '}', '、', '。', '」', '』', '）', '，', '．', '・', '？', '！':
		return true
	default:
		return false
	}
}

// LineWrapper assigns each buffer char a PhysPosition, wrapping a
// logical row into multiple physical rows once the accumulated
// half-width column count would exceed 2*MaxCol (MaxCol full-width
// columns). A MaxCol of 0 disables wrapping.
type LineWrapper struct {
	MaxCol int
}

// NewLineWrapper returns a wrapper with the given logical column budget.
func NewLineWrapper(maxCol int) LineWrapper { return LineWrapper{MaxCol: maxCol} }

// Layout walks buf's lines and returns, for each logical line, the
// PhysPosition of every char in that line, in order.
func (lw LineWrapper) Layout(buf *Buffer) [][]PhysPosition {
	out := make([][]PhysPosition, len(buf.Lines))
	physRow := 0
	for li, line := range buf.Lines {
		positions := make([]PhysPosition, len(line.chars))
		physCol := 0
		lastWhitespaceIdx := -1
		for ci, c := range line.chars {
			units := widthUnits(widthOf(c.Char))
			if lw.MaxCol > 0 && physCol+units > lw.MaxCol*2 && physCol > 0 {
				pullFrom := ci
				if isProhibitedLineStart(c.Char) && lastWhitespaceIdx >= 0 {
					pullFrom = lastWhitespaceIdx + 1
				}
				physRow++
				physCol = 0
				for j := pullFrom; j < ci; j++ {
					positions[j] = PhysPosition{Row: physRow, Col: physCol}
					physCol += widthUnits(widthOf(line.chars[j].Char))
				}
				lastWhitespaceIdx = -1
			}
			positions[ci] = PhysPosition{Row: physRow, Col: physCol}
			if charTypeOf(c.Char) == charWhitespace {
				lastWhitespaceIdx = ci
			}
			physCol += units
		}
		out[li] = positions
		physRow++
	}
	return out
}

// AdjustedPosition converts a wrapped grid position into model-space:
// `x = (col/2 + width.left) · col_interval`, `y = row · row_interval`,
// with axes swapped (and x reflected about bound) in Vertical
// orientation.
func AdjustedPosition(pos PhysPosition, width outline.GlyphWidth, colInterval, rowInterval float32, direction outline.Orientation, bound float32) (x, y float32) {
	localX := (float32(pos.Col)/2 + width.Left()) * colInterval
	localY := float32(pos.Row) * rowInterval
	if direction == outline.Vertical {
		return bound - localY, localX
	}
	return localX, localY
}

// minBound is the lower clamp the Bound formula applies so an empty or
// single-char buffer still occupies a sensible footprint.
const minBound float32 = 4.0

// Bound computes (max(|x|), max(|y|)) over every positioned char,
// clamped to minBound unless forceMin is true, forcing the configured
// minimum regardless.
func Bound(positions [][]PhysPosition, buf *Buffer, colInterval, rowInterval float32, direction outline.Orientation, forceMin bool) (w, h float32) {
	var maxX, maxY float32
	for li, line := range buf.Lines {
		for ci, c := range line.chars {
			width := widthOf(c.Char)
			x, y := AdjustedPosition(positions[li][ci], width, colInterval, rowInterval, direction, 0)
			if ax := abs32(x); ax > maxX {
				maxX = ax
			}
			if ay := abs32(y); ay > maxY {
				maxY = ay
			}
		}
	}
	if forceMin || maxX < minBound {
		maxX = minBound
	}
	if forceMin || maxY < minBound {
		maxY = minBound
	}
	return maxX, maxY
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

package outline

import "github.com/mattn/go-runewidth"

// GlyphWidth is the two-valued advance class that drives horizontal
// advance and caret placement for grid-laid-out text.
type GlyphWidth int

const (
	WidthRegular GlyphWidth = iota
	WidthWide
)

// Left returns the left pad, in em, for this width class.
func (w GlyphWidth) Left() float32 {
	if w == WidthWide {
		return 0.0
	}
	return -0.25
}

// Right returns the right pad, in em, for this width class.
func (w GlyphWidth) Right() float32 {
	if w == WidthWide {
		return 1.0
	}
	return 0.75
}

// Advance returns the horizontal advance, in em, for this width class.
func (w GlyphWidth) Advance() float32 {
	if w == WidthWide {
		return 1.0
	}
	return 0.5
}

// classifyWidth: a glyph is Wide if its bounding box is more than half the
// face's global bounding-box width; otherwise fall back to a Unicode
// East-Asian-width table.
func classifyWidth(r rune, glyphWidth, globalWidth float64) GlyphWidth {
	if globalWidth > 0 && glyphWidth > 0 && globalWidth < glyphWidth*2 {
		return WidthWide
	}
	switch runewidth.RuneWidth(r) {
	case 1:
		return WidthRegular
	case 0:
		return WidthRegular
	default:
		return WidthWide
	}
}

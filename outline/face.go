package outline

// Face is the minimal font-backend contract the outline converter needs.
// It deliberately does not depend on a specific shaping library's face
// type so that sfnt-backed, go-text/typesetting-backed, or test-double
// faces can all satisfy it.
type Face interface {
	// GlyphIndex resolves a codepoint to a glyph id. ok is false when the
	// face has no glyph for r.
	GlyphIndex(r rune) (gid uint16, ok bool)

	// Outline emits the glyph's outline commands to b. Returns the
	// glyph's own bounding box (min corner, width and height) in font
	// design units.
	Outline(gid uint16, b OutlineSink) (minX, minY, width, height float64, err error)

	// GlobalBounds returns the face-wide bounding box width/height used
	// for coordinate normalization.
	GlobalBounds() (width, height float64)

	// CapitalHeight returns the face's capital-letter height in font
	// design units, used for vertical centering.
	CapitalHeight() float64

	// UnitsPerEm returns the face's design-unit scale.
	UnitsPerEm() float64
}

// VerticalFace is implemented by faces that can resolve a distinct glyph
// id for top-to-bottom (vertical) text.
type VerticalFace interface {
	Face
	VerticalGlyphIndex(r rune) (gid uint16, ok bool)
}

// OutlineSink receives the four canonical outline commands.
type OutlineSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

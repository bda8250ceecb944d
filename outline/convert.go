package outline

// Orientation distinguishes a codepoint's horizontal and vertical glyph
// forms. (codepoint, orientation) is the glyph vertex buffer's actual key.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Convert produces the triangle soup for one (face, codepoint,
// orientation): outline emission, cubic-to-quadratic approximation,
// coordinate normalization, and width classification.
//
// tolerance bounds the cubic-to-quadratic flatness check; callers without
// an opinion should pass DefaultFlatnessTolerance.
func Convert(face Face, r rune, orientation Orientation, tolerance float64) (*GlyphVertex, error) {
	gid, ok := face.GlyphIndex(r)
	if orientation == Vertical {
		vf, isVertical := face.(VerticalFace)
		if !isVertical {
			return nil, &ErrGlyphUnavailable{Codepoint: r}
		}
		vgid, vok := vf.VerticalGlyphIndex(r)
		if !vok {
			return nil, &ErrGlyphUnavailable{Codepoint: r}
		}
		gid, ok = vgid, true
	}
	if !ok {
		return nil, &ErrGlyphUnavailable{Codepoint: r}
	}

	b := newBuilder(tolerance)
	minX, minY, width, height, err := face.Outline(gid, b)
	if err != nil {
		return nil, &OutlineExtractError{Codepoint: r, Err: err}
	}
	_ = minY

	globalWidth, globalHeight := face.GlobalBounds()
	fm := faceMetrics{
		GlobalWidth:   globalWidth,
		GlobalHeight:  globalHeight,
		CapitalHeight: face.CapitalHeight(),
		UnitsPerEm:    face.UnitsPerEm(),
	}
	b.vertices = normalize(b.vertices, minX, width, fm)

	widthClass := classifyWidth(r, width, globalWidth)

	return &GlyphVertex{
		Vertices: b.build(),
		Indices:  b.indices,
		Width:    widthClass,
	}, nil
}

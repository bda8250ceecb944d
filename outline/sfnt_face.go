package outline

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// SfntFace adapts an golang.org/x/image/font/sfnt.Font (for outline
// extraction) together with a go-text/typesetting font.Face (for the
// vertical-glyph-id lookup, via shaping to di.DirectionTTB) to the
// outline.Face contract.
//
// Outline extraction works in raw font design units: LoadGlyph is called
// with ppem equal to the face's units-per-em, which golang.org/x/image's
// scaling treats as an identity transform.
type SfntFace struct {
	sfntFont *sfnt.Font
	shapeFace font.Face
	buffer    sfnt.Buffer
	shaper    shaping.HarfbuzzShaper

	globalWidth, globalHeight float64
	capitalHeight             float64
	unitsPerEm                float64
}

// NewSfntFace builds an SfntFace. globalWidth/globalHeight/capitalHeight
// are in font design units (the same units sfntFont reports).
func NewSfntFace(sf *sfnt.Font, shapeFace font.Face, globalWidth, globalHeight, capitalHeight float64) (*SfntFace, error) {
	var buf sfnt.Buffer
	upem, err := sf.UnitsPerEm()
	if err != nil {
		return nil, err
	}
	return &SfntFace{
		sfntFont:      sf,
		shapeFace:     shapeFace,
		buffer:        buf,
		globalWidth:   globalWidth,
		globalHeight:  globalHeight,
		capitalHeight: capitalHeight,
		unitsPerEm:    float64(upem),
	}, nil
}

// GlyphIndex implements Face.
func (f *SfntFace) GlyphIndex(r rune) (uint16, bool) {
	gid, err := f.sfntFont.GlyphIndex(&f.buffer, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return uint16(gid), true
}

// GlobalBounds implements Face.
func (f *SfntFace) GlobalBounds() (width, height float64) {
	return f.globalWidth, f.globalHeight
}

// CapitalHeight implements Face.
func (f *SfntFace) CapitalHeight() float64 { return f.capitalHeight }

// UnitsPerEm implements Face.
func (f *SfntFace) UnitsPerEm() float64 { return f.unitsPerEm }

// Outline implements Face by replaying golang.org/x/image/font/sfnt
// segments (MoveTo/LineTo/QuadTo/CubeTo) into b, in font design units.
func (f *SfntFace) Outline(gid uint16, b OutlineSink) (minX, minY, width, height float64, err error) {
	ppem := fixed.Int26_6(f.unitsPerEm * 64)
	segments, loadErr := f.sfntFont.LoadGlyph(&f.buffer, sfnt.GlyphIndex(gid), ppem, nil)
	if loadErr != nil {
		return 0, 0, 0, 0, loadErr
	}

	lo, hi := fixed.Point26_6{X: fixed.I(1 << 20), Y: fixed.I(1 << 20)}, fixed.Point26_6{}
	track := func(p fixed.Point26_6) {
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			track(seg.Args[0])
			b.MoveTo(fx(seg.Args[0].X), fx(seg.Args[0].Y))
		case sfnt.SegmentOpLineTo:
			track(seg.Args[0])
			b.LineTo(fx(seg.Args[0].X), fx(seg.Args[0].Y))
		case sfnt.SegmentOpQuadTo:
			track(seg.Args[0])
			track(seg.Args[1])
			b.QuadTo(fx(seg.Args[0].X), fx(seg.Args[0].Y), fx(seg.Args[1].X), fx(seg.Args[1].Y))
		case sfnt.SegmentOpCubeTo:
			track(seg.Args[0])
			track(seg.Args[1])
			track(seg.Args[2])
			b.CubicTo(fx(seg.Args[0].X), fx(seg.Args[0].Y), fx(seg.Args[1].X), fx(seg.Args[1].Y), fx(seg.Args[2].X), fx(seg.Args[2].Y))
		}
	}
	b.Close()

	if len(segments) == 0 {
		return 0, 0, 0, 0, nil
	}
	return fx(lo.X), fx(lo.Y), fx(hi.X - lo.X), fx(hi.Y - lo.Y), nil
}

func fx(v fixed.Int26_6) float64 { return float64(v) / 64.0 }

// VerticalGlyphIndex implements VerticalFace: shape a single-rune run in
// top-to-bottom direction and compare the resulting glyph id against the
// horizontal one, substituting a distinct vertical glyph variant only
// when the shaper actually produces one.
func (f *SfntFace) VerticalGlyphIndex(r rune) (uint16, bool) {
	if f.shapeFace == nil {
		return 0, false
	}
	horizontal, ok := f.GlyphIndex(r)
	if !ok {
		return 0, false
	}

	text := []rune{r}
	input := shaping.Input{
		Text:      text,
		RunStart:  0,
		RunEnd:    1,
		Direction: di.DirectionTTB,
		Face:      f.shapeFace,
		Size:      fixed.I(int(f.unitsPerEm)),
		Script:    language.Han,
		Language:  language.NewLanguage("ja"),
	}
	out := f.shaper.Shape(input)
	if len(out.Glyphs) == 0 {
		return 0, false
	}
	vgid := uint16(out.Glyphs[0].GlyphID)
	if vgid == 0 || vgid == horizontal {
		return 0, false
	}
	return vgid, true
}

var _ Face = (*SfntFace)(nil)
var _ VerticalFace = (*SfntFace)(nil)

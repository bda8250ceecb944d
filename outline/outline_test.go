package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gg "github.com/mitoma/vectortext"
)

func TestBuilderLineToProducesOriginAnchoredTriangle(t *testing.T) {
	b := newBuilder(DefaultFlatnessTolerance)
	b.MoveTo(0, 0)
	b.LineTo(1, 0)
	b.LineTo(1, 1)
	b.Close()

	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, b.indices)
	assert.Len(t, b.vertices, 3)
}

func TestBuilderQuadToEmitsStraightAndCurveTriangles(t *testing.T) {
	b := newBuilder(DefaultFlatnessTolerance)
	b.MoveTo(0, 0)
	b.QuadTo(0.5, 1, 1, 0)

	require.Len(t, b.vertices, 3)
	assert.Equal(t, RoleControl.wait(), b.vertices[1].role)
	assert.Equal(t, []uint32{0, 1, 3, 1, 2, 3}, b.indices)
}

func TestBuilderRoleAlternatesFlipFlop(t *testing.T) {
	b := newBuilder(DefaultFlatnessTolerance)
	b.MoveTo(0, 0)
	b.LineTo(1, 0)
	b.LineTo(1, 1)
	b.LineTo(0, 1)

	assert.Equal(t, RoleFlop.wait(), b.vertices[0].role)
	assert.Equal(t, RoleFlip.wait(), b.vertices[1].role)
	assert.Equal(t, RoleFlop.wait(), b.vertices[2].role)
	assert.Equal(t, RoleFlip.wait(), b.vertices[3].role)
}

func TestCubicToQuadraticsPreservesEndpoints(t *testing.T) {
	c := gg.NewCubicBez(
		gg.Point{X: 0, Y: 0},
		gg.Point{X: 0, Y: 50},
		gg.Point{X: 100, Y: 50},
		gg.Point{X: 100, Y: 0},
	)
	quads := cubicToQuadratics(c, DefaultFlatnessTolerance)
	require.NotEmpty(t, quads)

	assert.InDelta(t, c.P0.X, quads[0].P0.X, 1e-9)
	assert.InDelta(t, c.P0.Y, quads[0].P0.Y, 1e-9)

	last := quads[len(quads)-1]
	assert.InDelta(t, c.P3.X, last.P2.X, 1e-9)
	assert.InDelta(t, c.P3.Y, last.P2.Y, 1e-9)

	for i := 1; i < len(quads); i++ {
		assert.InDelta(t, quads[i-1].P2.X, quads[i].P0.X, 1e-9)
		assert.InDelta(t, quads[i-1].P2.Y, quads[i].P0.Y, 1e-9)
	}
}

func TestCubicToQuadraticsFlatCubicYieldsOneSegment(t *testing.T) {
	c := gg.NewCubicBez(
		gg.Point{X: 0, Y: 0},
		gg.Point{X: 33, Y: 0},
		gg.Point{X: 66, Y: 0},
		gg.Point{X: 100, Y: 0},
	)
	quads := cubicToQuadratics(c, DefaultFlatnessTolerance)
	assert.Len(t, quads, 1)
}

func TestClassifyWidthASCIIIsRegular(t *testing.T) {
	assert.Equal(t, WidthRegular, classifyWidth('A', 500, 1000))
}

func TestClassifyWidthFullWidthKatakanaIsWide(t *testing.T) {
	assert.Equal(t, WidthWide, classifyWidth('ア', 900, 1000))
}

func TestClassifyWidthFullWidthSpaceIsWide(t *testing.T) {
	assert.Equal(t, WidthWide, classifyWidth('　', 0, 0))
}

func TestClassifyWidthWideGlyphBoxOverridesNarrowRune(t *testing.T) {
	assert.Equal(t, WidthWide, classifyWidth('A', 900, 1000))
}

// fakeFace is a minimal Face/VerticalFace test double: codepoints 'a' and
// 'b' have distinct horizontal glyph ids, 'a' additionally has a distinct
// vertical glyph id (like 。「ー would), 'b' does not (like a Latin letter).
type fakeFace struct{}

func (fakeFace) GlyphIndex(r rune) (uint16, bool) {
	switch r {
	case 'a':
		return 1, true
	case 'b':
		return 2, true
	default:
		return 0, false
	}
}

func (fakeFace) VerticalGlyphIndex(r rune) (uint16, bool) {
	if r == 'a' {
		return 10, true
	}
	return 0, false
}

func (fakeFace) GlobalBounds() (float64, float64) { return 1000, 1000 }
func (fakeFace) CapitalHeight() float64            { return 700 }
func (fakeFace) UnitsPerEm() float64               { return 1000 }

func (fakeFace) Outline(gid uint16, b OutlineSink) (float64, float64, float64, float64, error) {
	b.MoveTo(0, 0)
	b.LineTo(500, 0)
	b.LineTo(500, 500)
	b.LineTo(0, 500)
	b.Close()
	return 0, 0, 500, 500, nil
}

var _ Face = fakeFace{}
var _ VerticalFace = fakeFace{}

func TestConvertDistinguishesVerticalFromHorizontalGlyphID(t *testing.T) {
	face := fakeFace{}

	horizontal, err := Convert(face, 'a', Horizontal, DefaultFlatnessTolerance)
	require.NoError(t, err)
	vertical, err := Convert(face, 'a', Vertical, DefaultFlatnessTolerance)
	require.NoError(t, err)

	assert.Equal(t, horizontal.Vertices, vertical.Vertices, "geometry is identical in this fake; only the glyph id selection differs")

	_, err = Convert(face, 'b', Vertical, DefaultFlatnessTolerance)
	assert.Error(t, err, "codepoints without a distinct vertical form are unavailable in Vertical orientation")
}

func TestConvertUnknownCodepointReturnsGlyphUnavailable(t *testing.T) {
	face := fakeFace{}
	_, err := Convert(face, 'z', Horizontal, DefaultFlatnessTolerance)
	require.Error(t, err)
	var target *ErrGlyphUnavailable
	assert.ErrorAs(t, err, &target)
}

func TestConvertProducesNonEmptyTrianglesForNonEmptyOutline(t *testing.T) {
	face := fakeFace{}
	gv, err := Convert(face, 'a', Horizontal, DefaultFlatnessTolerance)
	require.NoError(t, err)
	assert.NotEmpty(t, gv.Vertices)
	assert.NotEmpty(t, gv.Indices)
}

func TestDebugMarkQuadDisabledByDefaultLeavesGeometryUnchanged(t *testing.T) {
	gv := &GlyphVertex{Vertices: []Vertex{{}}, Indices: []uint32{0}}
	DebugMarkQuad(false, gv)
	assert.Len(t, gv.Vertices, 1)
	assert.Len(t, gv.Indices, 1)
}

func TestDebugMarkQuadEnabledAppendsQuad(t *testing.T) {
	gv := &GlyphVertex{Vertices: []Vertex{{}}, Indices: []uint32{0}}
	DebugMarkQuad(true, gv)
	assert.Len(t, gv.Vertices, 5)
	assert.Len(t, gv.Indices, 7)
}

package outline

import "math"

// faceMetrics carries the face-level measurements the normalization
// formula needs, independent of which font backend produced them.
type faceMetrics struct {
	GlobalMinX, GlobalMinY    float64
	GlobalWidth, GlobalHeight float64
	CapitalHeight             float64
	UnitsPerEm                float64
}

// normalize recenters and scales a glyph's raw vertices: vertices are
// recentered so the glyph's natural center maps to (0,0) and scaled by
// 1 / (global bbox extent . sqrt(units_per_em/1024)).
//
// The X axis centers on the glyph's own bounding box (rect.x_min +
// rect.width/2); the Y axis centers on the face's capital height rather
// than the glyph's own bbox center, which keeps glyphs of differing
// height sitting on a shared baseline.
func normalize(vertices []internalVertex, glyphMinX, glyphWidth float64, fm faceMetrics) []internalVertex {
	rectEm := math.Sqrt(fm.UnitsPerEm / 1024.0)
	out := make([]internalVertex, len(vertices))
	for i, v := range vertices {
		x := (v.x - glyphMinX - glyphWidth/2.0) / fm.GlobalWidth / rectEm
		y := (v.y - fm.CapitalHeight/2.0) / fm.GlobalHeight / rectEm
		out[i] = internalVertex{x: x, y: y, role: v.role}
	}
	return out
}

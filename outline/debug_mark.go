package outline

// DebugMarkQuad appends a small quad at the glyph's origin, tagged with
// RoleFlip so the fragment shader's Bezier test never discards it and it
// renders as a flat marker. Disabled by default; a visual debugging aid
// for glyph placement.
func DebugMarkQuad(enabled bool, gv *GlyphVertex) {
	if !enabled || gv == nil {
		return
	}
	const half = 0.02
	// Index 0 is the Origin, so vertex i of gv.Vertices is index i+1.
	base := uint32(len(gv.Vertices)) + 1
	gv.Vertices = append(gv.Vertices,
		Vertex{Position: [2]float32{-half, -half}, Role: RoleFlip.wait()},
		Vertex{Position: [2]float32{half, -half}, Role: RoleFlip.wait()},
		Vertex{Position: [2]float32{half, half}, Role: RoleFlip.wait()},
		Vertex{Position: [2]float32{-half, half}, Role: RoleFlip.wait()},
	)
	gv.Indices = append(gv.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

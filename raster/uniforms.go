package raster

import (
	"encoding/binary"
	"math"
)

// overlapUniformBytes packs the pass-1 uniform buffer: a column-major
// mat4x4 view_proj followed by the current time in milliseconds and
// three padding words, matching overlap.wgsl's Uniforms struct and the
// byte-packing idiom in internal/gpu/stencil_renderer.go's
// makeStencilFillUniform/makeCoverUniform.
func overlapUniformBytes(viewProj [16]float32, nowMillis uint32) []byte {
	buf := make([]byte, uniformsSize)
	for i, v := range viewProj {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[64:68], nowMillis)
	return buf
}

// screenUniformBytes packs the pass-3 uniform buffer: background_color
// (vec4) followed by has_background_image and three padding words,
// matching screen.wgsl's Uniforms struct.
func screenUniformBytes(backgroundColor [4]float32, hasBackgroundImage uint32) []byte {
	buf := make([]byte, screenUniformsSize)
	for i, v := range backgroundColor {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[16:20], hasBackgroundImage)
	return buf
}

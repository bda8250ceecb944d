package glyphbuf

import (
	"encoding/binary"
	"math"

	"github.com/mitoma/vectortext/outline"
)

// vertexBytes packs vertices into the wire layout Vertex{Position[2]f32,
// Role[2]f32} describes, matching the manual float32->LE-bytes packing
// internal/gpu's renderers use for uniform/vertex data.
func vertexBytes(vertices []outline.Vertex) []byte {
	buf := make([]byte, len(vertices)*16)
	for i, v := range vertices {
		o := i * 16
		binary.LittleEndian.PutUint32(buf[o:o+4], math.Float32bits(v.Position[0]))
		binary.LittleEndian.PutUint32(buf[o+4:o+8], math.Float32bits(v.Position[1]))
		binary.LittleEndian.PutUint32(buf[o+8:o+12], math.Float32bits(v.Role[0]))
		binary.LittleEndian.PutUint32(buf[o+12:o+16], math.Float32bits(v.Role[1]))
	}
	return buf
}

// indexBytes packs a uint32 index list into little-endian wire bytes.
func indexBytes(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], idx)
	}
	return buf
}

package instance

import (
	"encoding/binary"
	"math"
)

// RawSize is the byte size of one wire-packed instance record: a 4x4
// model matrix (64) + color vec3 (12) + motion word u32 (4) + start_time
// u32 (4) + gain f32 (4) + duration u32 (4) = 92 bytes. wgpu pads vec3
// attributes to 12 bytes (no trailing alignment slot is required since
// the following field is a plain u32, not a vec4).
const RawSize = 4*4*4 + 3*4 + 4 + 4 + 4 + 4

// raw packs Attributes into the bit-exact GPU wire layout: loc 5..8
// model matrix columns, loc 9 color, loc 10 motion word, loc 11 start
// time, loc 12 gain, loc 13 duration.
func raw(a Attributes) []byte {
	buf := make([]byte, RawSize)
	off := 0
	m := a.model()
	for _, f := range m {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(f))
		off += 4
	}
	for _, c := range a.Color {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(c))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(a.Motion))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], a.StartTime)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(a.Gain))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], a.durationMillis())
	off += 4
	return buf
}

// VertexAttribute describes one attribute of the wgpu-style per-instance
// vertex-buffer layout a raster pipeline attaches as its instance stream.
type VertexAttribute struct {
	Format         string
	Offset         uint64
	ShaderLocation uint32
}

// Layout returns the nine attributes (4 matrix columns + color + motion +
// start_time + gain + duration) at locations 5..13, mirroring
// InstanceRaw::desc()'s attribute table field-for-field.
func Layout() (stride uint64, attrs []VertexAttribute) {
	attrs = []VertexAttribute{
		{Format: "float32x4", Offset: 0, ShaderLocation: 5},
		{Format: "float32x4", Offset: 16, ShaderLocation: 6},
		{Format: "float32x4", Offset: 32, ShaderLocation: 7},
		{Format: "float32x4", Offset: 48, ShaderLocation: 8},
		{Format: "float32x3", Offset: 64, ShaderLocation: 9},
		{Format: "uint32", Offset: 76, ShaderLocation: 10},
		{Format: "uint32", Offset: 80, ShaderLocation: 11},
		{Format: "float32", Offset: 84, ShaderLocation: 12},
		{Format: "uint32", Offset: 88, ShaderLocation: 13},
	}
	return RawSize, attrs
}

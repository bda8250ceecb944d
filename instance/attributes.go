package instance

import (
	"math"
	"time"

	"github.com/mitoma/vectortext/motion"
)

// Vec3 is a 3D position; glyph instances carry a depth component (world
// layering) that a 2D point/matrix type cannot express, so the instance
// package keeps its own minimal vector/matrix math rather than reusing one.
type Vec3 struct{ X, Y, Z float32 }

// Attributes is one instance's CPU-side record: everything that folds
// into the GPU wire layout, plus the motion parameters the per-instance
// vertex shader samples every frame.
type Attributes struct {
	Position      Vec3
	RotationZ     float32 // radians; glyph instances only ever spin in-plane
	WorldScale    [2]float32
	InstanceScale [2]float32
	Color         [3]float32
	Motion        motion.Flags
	StartTime     uint32 // ms since epoch
	Gain          float32
	Duration      time.Duration
}

// DefaultAttributes mirrors InstanceAttributes::default()'s non-zero
// defaults (unit scale, opaque color, zero motion).
func DefaultAttributes(color [3]float32) Attributes {
	return Attributes{
		WorldScale:    [2]float32{1, 1},
		InstanceScale: [2]float32{1, 1},
		Color:         color,
		Motion:        motion.Zero,
	}
}

// mat4 is a column-major 4x4 float32 matrix, matching the wgpu/naga
// convention the wire layout's four vec4 columns assume.
type mat4 [16]float32

func identity4() mat4 {
	return mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func scale4(sx, sy, sz float32) mat4 {
	m := identity4()
	m[0], m[5], m[10] = sx, sy, sz
	return m
}

func translate4(x, y, z float32) mat4 {
	m := identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

func rotateZ4(theta float32) mat4 {
	m := identity4()
	c := float32(math.Cos(float64(theta)))
	s := float32(math.Sin(float64(theta)))
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// mul multiplies column-major matrices a*b.
func (a mat4) mul(b mat4) mat4 {
	var out mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// model composes the instance's transform exactly in the order
// InstanceAttributes::as_raw does: world_scale * translate(position) *
// rotation * instance_scale.
func (a Attributes) model() mat4 {
	m := scale4(a.WorldScale[0], a.WorldScale[1], 1)
	m = m.mul(translate4(a.Position.X, a.Position.Y, a.Position.Z))
	m = m.mul(rotateZ4(a.RotationZ))
	m = m.mul(scale4(a.InstanceScale[0], a.InstanceScale[1], 1))
	return m
}

func (a Attributes) durationMillis() uint32 {
	return uint32(a.Duration / time.Millisecond)
}

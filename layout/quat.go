package layout

import "math"

// Quat is a unit quaternion describing a Model's orientation. The layout
// algorithms only ever build single-axis rotations (around Y for
// Horizontal circle layout, around X for Vertical), so this type carries
// just enough surface to cover that: construction from an axis angle and
// composition for FocusPosition-style transforms.
type Quat struct{ X, Y, Z, W float32 }

// QuatIdentity is the no-rotation quaternion, used by Liner layout which
// always resets rotation to zero degrees.
func QuatIdentity() Quat { return Quat{W: 1} }

// QuatFromAxisAngleY builds a rotation of degrees around the Y axis,
// matching Circle layout's Horizontal-direction tangential rotation.
func QuatFromAxisAngleY(degrees float32) Quat {
	half := degToRad(degrees) / 2
	s := float32(math.Sin(float64(half)))
	return Quat{X: 0, Y: s, Z: 0, W: float32(math.Cos(float64(half)))}
}

// QuatFromAxisAngleX builds a rotation of degrees around the X axis,
// matching Circle layout's Vertical-direction tangential rotation.
func QuatFromAxisAngleX(degrees float32) Quat {
	half := degToRad(degrees) / 2
	s := float32(math.Sin(float64(half)))
	return Quat{X: s, Y: 0, Z: 0, W: float32(math.Cos(float64(half)))}
}

func degToRad(deg float32) float32 { return deg * float32(math.Pi) / 180 }

// toMat4 expands the quaternion into a 4x4 rotation matrix for
// move_to_position's model-space-to-clip-space projection.
func (q Quat) toMat4() Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

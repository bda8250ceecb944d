// Package layout implements the layout engine: a World holds an ordered
// sequence of Model boxes plus a camera, arranges them in Linear or
// Circle layout, and exposes focus/camera operations.
//
// Camera, CameraController, CameraAdjustment, and CameraOperation below
// implement look_at(index, adjustment)'s five adjustment variants and
// camera_operation(Forward|Backward|...), following the instance
// package's existing local mat4/Vec3 convention for vector math a 2D-only
// matrix type can't cover.
package layout

import "math"

// WindowSize is the physical output size the camera's aspect ratio and
// the layout's quality-independent placement math are computed against.
type WindowSize struct {
	Width, Height uint32
}

// Vec3 is a 3D point or direction in world space.
type Vec3 struct{ X, Y, Z float32 }

func (v Vec3) sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

func (v Vec3) normalize() Vec3 {
	l := v.length()
	if l == 0 {
		return v
	}
	return v.scale(1 / l)
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func dot(a, b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Mat4 is a column-major 4x4 matrix, matching instance.Layout's model
// matrix convention.
type Mat4 [16]float32

func (m Mat4) mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * o[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

func lookAt(eye, target, up Vec3) Mat4 {
	f := target.sub(eye).normalize()
	s := cross(f, up).normalize()
	u := cross(s, f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-dot(s, eye), -dot(u, eye), dot(f, eye), 1,
	}
}

func perspective(fovYRadians, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovYRadians)/2))
	rangeInv := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (near + far) * rangeInv, -1,
		0, 0, near * far * rangeInv * 2, 0,
	}
}

// CameraAdjustment selects how look_at repositions the camera relative
// to the focused model's bound.
type CameraAdjustment int

const (
	NoCare CameraAdjustment = iota
	FitBoth
	FitWidth
	FitHeight
	FitBothAndCentering
)

// CameraOperation is a discrete free-camera nudge driven by the action
// grammar's `world` namespace.
type CameraOperation int

const (
	CameraForward CameraOperation = iota
	CameraBackward
	CameraUp
	CameraDown
	CameraLeft
	CameraRight
	CameraReset
)

// Camera holds the eye/target/up triple and projection parameters needed
// to build a view-projection matrix every frame.
type Camera struct {
	Eye, Target, Up Vec3
	Aspect          float32
	FovYRadians     float32
	Near, Far       float32
}

// BasicCamera returns a camera looking down -Z at the origin, sized for
// windowSize's aspect ratio.
func BasicCamera(windowSize WindowSize) Camera {
	aspect := float32(1)
	if windowSize.Height != 0 {
		aspect = float32(windowSize.Width) / float32(windowSize.Height)
	}
	return Camera{
		Eye:         Vec3{0, 0, 10},
		Target:      Vec3{0, 0, 0},
		Up:          Vec3{0, 1, 0},
		Aspect:      aspect,
		FovYRadians: math.Pi / 4,
		Near:        0.1,
		Far:         1000,
	}
}

// BuildViewProjectionMatrix composes the camera's view and perspective
// matrices, the matrix move_to_position projects model centers through.
func (c Camera) BuildViewProjectionMatrix() Mat4 {
	view := lookAt(c.Eye, c.Target, c.Up)
	proj := perspective(c.FovYRadians, c.Aspect, c.Near, c.Far)
	return proj.mul(view)
}

// CameraController applies CameraOperations and look_at fit adjustments
// to a Camera, mirroring DefaultWorld's camera_controller field.
type CameraController struct {
	speed   float32
	pending CameraOperation
	hasOp   bool
}

func NewCameraController(speed float32) *CameraController {
	return &CameraController{speed: speed}
}

// Process queues a camera operation to apply on the next UpdateCamera.
func (c *CameraController) Process(op CameraOperation) {
	c.pending = op
	c.hasOp = true
}

// ResetState clears any queued operation, called after every
// camera-operation dispatch.
func (c *CameraController) ResetState() { c.hasOp = false }

// UpdateCamera applies the queued operation (if any) to camera in place.
func (c *CameraController) UpdateCamera(camera *Camera) {
	if !c.hasOp {
		return
	}
	forward := camera.Target.sub(camera.Eye).normalize()
	right := cross(forward, camera.Up).normalize()
	switch c.pending {
	case CameraForward:
		camera.Eye = camera.Eye.add(forward.scale(c.speed))
	case CameraBackward:
		camera.Eye = camera.Eye.sub(forward.scale(c.speed))
	case CameraUp:
		camera.Eye = camera.Eye.add(camera.Up.scale(c.speed))
	case CameraDown:
		camera.Eye = camera.Eye.sub(camera.Up.scale(c.speed))
	case CameraLeft:
		camera.Eye = camera.Eye.sub(right.scale(c.speed))
	case CameraRight:
		camera.Eye = camera.Eye.add(right.scale(c.speed))
	case CameraReset:
		*camera = BasicCamera(WindowSize{Width: uint32(camera.Aspect * 100), Height: 100})
	}
}

// UpdateCameraAspect recomputes the camera's aspect ratio for a new
// window size, leaving eye/target untouched.
func (c *CameraController) UpdateCameraAspect(camera *Camera, windowSize WindowSize) {
	if windowSize.Height == 0 {
		return
	}
	camera.Aspect = float32(windowSize.Width) / float32(windowSize.Height)
}

// LookAt repositions camera so model is in frame, per adjustment. The
// camera dollies back along -Z until the model's bound fits the
// requested axis (or axes) at the model's own depth.
func (c *CameraController) LookAt(camera *Camera, model Model, adjustment CameraAdjustment) {
	if adjustment == NoCare {
		return
	}
	w, h := model.Bound()
	pos := model.Position()
	camera.Target = pos

	halfFovY := camera.FovYRadians / 2
	tanHalfFovY := float32(math.Tan(float64(halfFovY)))
	tanHalfFovX := tanHalfFovY * camera.Aspect

	distForHeight := (h / 2) / tanHalfFovY
	distForWidth := (w / 2) / tanHalfFovX

	var dist float32
	switch adjustment {
	case FitWidth:
		dist = distForWidth
	case FitHeight:
		dist = distForHeight
	case FitBoth, FitBothAndCentering:
		dist = distForWidth
		if distForHeight > dist {
			dist = distForHeight
		}
	}
	if dist < 1 {
		dist = 1
	}
	camera.Eye = Vec3{pos.X, pos.Y, pos.Z + dist}
}

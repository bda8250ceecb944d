// Package motion packs per-instance GPU animation parameters into a single
// 32-bit word and provides the CPU-side easing primitives that drive
// non-GPU animated values (position, color, scale).
//
// Bit layout (high to low), consumed by the rasterizer's vertex shader:
//
//	31    : has_motion
//	30    : ease_in
//	29    : ease_out
//	28    : loop
//	27    : to_current
//	26    : turn_back
//	25    : use_distance(x)
//	24    : use_distance(y)
//	23    : use_distance(xy)
//	22-21 : reserved
//	20    : ignore_camera
//	19-16 : easing function id
//	15-00 : motion target bits
package motion

// Flags is the packed 32-bit motion word.
type Flags uint32

// Zero is the motion word for "no motion": has_motion is unset and the
// vertex shader leaves the instance's base transform untouched.
const Zero Flags = 0

// New packs a motion word from its four logical parts.
func New(t Type, detail Detail, target Target, camera Camera) Flags {
	value := uint32(t.mask()) << 28
	value += uint32(detail) << 20
	value += uint32(camera) << 20 // only bit 20 (IgnoreCamera) overlaps; 21-22 reserved
	value += t.easingMask() << 16
	value += uint32(target)
	return Flags(value)
}

// HasMotion reports whether the word encodes any motion at all.
func (f Flags) HasMotion() bool { return f&(1<<31) != 0 }

// Loop reports whether the motion repeats with period Duration.
func (f Flags) Loop() bool { return f&(1<<28) != 0 }

// ToCurrent reports whether the motion is capped at the resting pose once
// it reaches it, rather than continuing past it.
func (f Flags) ToCurrent() bool { return f&(1<<27) != 0 }

// TurnBack reports whether the motion reverses direction past t=0.5.
func (f Flags) TurnBack() bool { return f&(1<<26) != 0 }

// IgnoreCamera reports whether the instance should be drawn in screen
// space, unaffected by camera transforms.
func (f Flags) IgnoreCamera() bool { return f&(1<<20) != 0 }

// EasingFunc extracts the packed easing-function id.
func (f Flags) EasingFunc() EasingFuncType {
	return EasingFuncType((f >> 16) & 0b1111)
}

// Detail extracts the packed detail bits (bits 23-27): to_current,
// turn_back, and the three distance modifiers.
func (f Flags) Detail() Detail {
	return Detail((f >> 20) & 0b1111_1000)
}

// Target extracts the packed motion-target bits (bits 0-15).
func (f Flags) Target() Target {
	return Target(f & 0xFFFF)
}

// Builder assembles a Flags value field by field.
type Builder struct {
	motionType Type
	detail     Detail
	target     Target
	camera     Camera
}

// NewBuilder returns a Builder defaulting to TypeNone and no bits set.
func NewBuilder() *Builder {
	return &Builder{motionType: TypeNone{}}
}

// Type sets the motion type (None/EaseIn/EaseOut/EaseInOut).
func (b *Builder) Type(t Type) *Builder { b.motionType = t; return b }

// WithDetail sets the motion-detail bits.
func (b *Builder) WithDetail(d Detail) *Builder { b.detail = d; return b }

// WithTarget sets the motion-target bits.
func (b *Builder) WithTarget(t Target) *Builder { b.target = t; return b }

// WithCamera sets the camera-detail bits.
func (b *Builder) WithCamera(c Camera) *Builder { b.camera = c; return b }

// Build packs the accumulated fields into a Flags word.
func (b *Builder) Build() Flags {
	return New(b.motionType, b.detail, b.target, b.camera)
}

// Type is the motion-type family: none, or one of three easing phases,
// each optionally looping.
type Type interface {
	mask() uint32
	easingMask() uint32
}

// TypeNone encodes no motion.
type TypeNone struct{}

func (TypeNone) mask() uint32       { return 0b0000_0000 }
func (TypeNone) easingMask() uint32 { return 0 }

// TypeEaseIn eases from the start value to the target.
type TypeEaseIn struct {
	Func EasingFuncType
	Loop bool
}

func (t TypeEaseIn) mask() uint32       { return 0b0000_1100 + loopBit(t.Loop) }
func (t TypeEaseIn) easingMask() uint32 { return uint32(t.Func) }

// TypeEaseOut eases from the target back toward the start value.
type TypeEaseOut struct {
	Func EasingFuncType
	Loop bool
}

func (t TypeEaseOut) mask() uint32       { return 0b0000_1010 + loopBit(t.Loop) }
func (t TypeEaseOut) easingMask() uint32 { return uint32(t.Func) }

// TypeEaseInOut eases in then out over the motion's duration.
type TypeEaseInOut struct {
	Func EasingFuncType
	Loop bool
}

func (t TypeEaseInOut) mask() uint32       { return 0b0000_1110 + loopBit(t.Loop) }
func (t TypeEaseInOut) easingMask() uint32 { return uint32(t.Func) }

func loopBit(l bool) uint32 {
	if l {
		return 1
	}
	return 0
}

// EasingFuncType selects the easing curve the vertex shader evaluates.
type EasingFuncType uint32

const (
	EasingLiner EasingFuncType = iota
	EasingSin
	EasingQuad
	EasingCubic
	EasingQuart
	EasingQuint
	EasingExpo
	EasingCirc
	EasingBack
	EasingElastic
	EasingBounce
)

// Detail carries distance-scoped motion modifiers (bits 23-27 of the word,
// shifted down to a byte here for ergonomic bitwise composition).
type Detail uint8

const (
	DetailToCurrent     Detail = 0b1000_0000
	DetailTurnBack      Detail = 0b0100_0000
	DetailUseXDistance  Detail = 0b0010_0000
	DetailUseYDistance  Detail = 0b0001_0000
	DetailUseXYDistance Detail = 0b0000_1000
)

// Target is the bitset of transform components the motion drives.
type Target uint16

const (
	TargetMoveXPlus Target = 1 << iota
	TargetMoveXMinus
	TargetMoveYPlus
	TargetMoveYMinus
	TargetMoveZPlus
	TargetMoveZMinus
	TargetRotateXPlus
	TargetRotateXMinus
	TargetRotateYPlus
	TargetRotateYMinus
	TargetRotateZPlus
	TargetRotateZMinus
	TargetStretchXPlus
	TargetStretchXMinus
	TargetStretchYPlus
	TargetStretchYMinus
)

// Camera carries camera-relative modifiers.
type Camera uint8

const (
	CameraIgnore Camera = 0b0000_0001
)

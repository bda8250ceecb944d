package motion

import "time"

// Config bundles one GPU motion word with the duration and gain the
// instance record carries alongside it.
type Config struct {
	Flags    Flags
	Duration time.Duration
	Gain     float32
}

// CharEasings bundles the per-event motion configurations a text-edit
// model plays on AddChar/MoveChar/RemoveChar/SelectChar/UnSelectChar, plus
// the CPU easing durations for the position/color/scale/motion-gain
// channels those events retarget.
type CharEasings struct {
	Add      Config
	Move     Config
	Remove   Config
	Select   Config
	Unselect Config
	Notify   Config

	PositionDuration   time.Duration
	ColorDuration      time.Duration
	ScaleDuration      time.Duration
	MotionGainDuration time.Duration
}

// DefaultCharEasings returns a reasonable set of defaults: short,
// non-looping eases for insertion/removal, a slightly longer settle for
// selection highlight color.
func DefaultCharEasings() CharEasings {
	quick := 120 * time.Millisecond
	settle := 200 * time.Millisecond
	return CharEasings{
		Add: Config{
			Flags:    New(TypeEaseOut{Func: EasingQuad}, DetailToCurrent, TargetMoveYPlus, 0),
			Duration: quick,
			Gain:     1,
		},
		Move: Config{
			Flags:    New(TypeEaseInOut{Func: EasingCubic}, 0, TargetMoveXPlus|TargetMoveYPlus, 0),
			Duration: quick,
			Gain:     1,
		},
		Remove: Config{
			Flags:    New(TypeEaseIn{Func: EasingQuad}, DetailTurnBack, TargetStretchYMinus, 0),
			Duration: quick,
			Gain:     1,
		},
		Select: Config{
			Flags:    New(TypeEaseOut{Func: EasingSin}, 0, 0, 0),
			Duration: settle,
			Gain:     1,
		},
		Unselect: Config{
			Flags:    New(TypeEaseOut{Func: EasingSin}, 0, 0, 0),
			Duration: settle,
			Gain:     1,
		},
		Notify: Config{
			Flags:    Zero,
			Duration: 0,
			Gain:     0,
		},
		PositionDuration:   quick,
		ColorDuration:      settle,
		ScaleDuration:      quick,
		MotionGainDuration: quick,
	}
}

package motion

import (
	"math"
	"time"
)

// EaseFunc maps a normalized progress in [0,1] to an eased progress.
type EaseFunc func(t float64) float64

// Funcs maps each EasingFuncType to its CPU evaluator, used for the
// CPU-side Point animation. The GPU vertex shader evaluates the same
// curves from the packed EasingFuncType id independently.
var Funcs = map[EasingFuncType]EaseFunc{
	EasingLiner:   func(t float64) float64 { return t },
	EasingSin:     func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) },
	EasingQuad:    func(t float64) float64 { return t * t },
	EasingCubic:   func(t float64) float64 { return t * t * t },
	EasingQuart:   func(t float64) float64 { return t * t * t * t },
	EasingQuint:   func(t float64) float64 { return t * t * t * t * t },
	EasingExpo:    easeExpo,
	EasingCirc:    func(t float64) float64 { return 1 - math.Sqrt(1-t*t) },
	EasingBack:    easeBack,
	EasingElastic: easeElastic,
	EasingBounce:  easeBounce,
}

func easeExpo(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

func easeBack(t float64) float64 {
	const s = 1.70158
	return t * t * ((s+1)*t - s)
}

func easeElastic(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	const p = 0.3
	s := p / 4
	return -math.Pow(2, 10*(t-1)) * math.Sin((t-1-s)*(2*math.Pi)/p)
}

func easeBounce(t float64) float64 {
	n1, d1 := 7.5625, 2.75
	t = 1 - t
	var v float64
	switch {
	case t < 1/d1:
		v = n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		v = n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		v = n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		v = n1*t*t + 0.984375
	}
	return 1 - v
}

// Point is a CPU-eased scalar channel: it holds a current value tracking
// toward a target over a fixed duration, using a pluggable easing
// function. Used for per-char position/color/scale/motion-gain channels
// that are not worth encoding into the GPU motion word.
type Point struct {
	start, target, current float64
	elapsed, duration      time.Duration
	fn                     EaseFunc
}

// NewPoint creates a Point already settled at value.
func NewPoint(value float64) *Point {
	return &Point{start: value, target: value, current: value, fn: Funcs[EasingLiner]}
}

// SetTarget retargets the point. The in-flight current value becomes the
// new animation's start, so cancellation never jumps discontinuously.
func (p *Point) SetTarget(target float64, duration time.Duration, fn EasingFuncType) {
	p.start = p.current
	p.target = target
	p.elapsed = 0
	p.duration = duration
	if f, ok := Funcs[fn]; ok {
		p.fn = f
	} else {
		p.fn = Funcs[EasingLiner]
	}
}

// Update advances the animation by dt and returns the new current value.
func (p *Point) Update(dt time.Duration) float64 {
	if p.duration <= 0 {
		p.current = p.target
		return p.current
	}
	p.elapsed += dt
	if p.elapsed >= p.duration {
		p.current = p.target
		return p.current
	}
	t := float64(p.elapsed) / float64(p.duration)
	eased := p.fn(t)
	p.current = p.start + (p.target-p.start)*eased
	return p.current
}

// Current returns the current value without advancing time.
func (p *Point) Current() float64 { return p.current }

// Target returns the destination value.
func (p *Point) Target() float64 { return p.target }

// InAnimation reports whether the point has not yet reached its target.
func (p *Point) InAnimation() bool {
	return p.duration > 0 && p.elapsed < p.duration
}

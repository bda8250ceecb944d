package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPointSettlesAtTarget(t *testing.T) {
	p := NewPoint(0)
	p.SetTarget(10, 100*time.Millisecond, EasingLiner)

	require.True(t, p.InAnimation())
	p.Update(100 * time.Millisecond)
	require.False(t, p.InAnimation())
	require.Equal(t, 10.0, p.Current())
}

func TestPointInAnimationTransitionsOnceAfterDuration(t *testing.T) {
	p := NewPoint(0)
	p.SetTarget(1, 50*time.Millisecond, EasingLiner)

	transitions := 0
	wasAnimating := p.InAnimation()
	for i := 0; i < 10; i++ {
		p.Update(10 * time.Millisecond)
		isAnimating := p.InAnimation()
		if wasAnimating && !isAnimating {
			transitions++
		}
		wasAnimating = isAnimating
	}
	require.Equal(t, 1, transitions)
}

func TestPointRetargetStartsFromCurrentValue(t *testing.T) {
	p := NewPoint(0)
	p.SetTarget(10, 100*time.Millisecond, EasingLiner)
	p.Update(50 * time.Millisecond)
	midway := p.Current()
	require.InDelta(t, 5, midway, 0.01)

	// Cancel mid-flight by retargeting; current value must not jump.
	p.SetTarget(20, 100*time.Millisecond, EasingLiner)
	require.InDelta(t, midway, p.Current(), 0.0001)
}

func TestPointZeroDurationSettlesImmediately(t *testing.T) {
	p := NewPoint(0)
	p.SetTarget(5, 0, EasingLiner)
	require.False(t, p.InAnimation())
	require.Equal(t, 5.0, p.Update(0))
}

package motion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagsHasMotion(t *testing.T) {
	none := New(TypeNone{}, 0, 0, 0)
	require.False(t, none.HasMotion())

	easeOut := New(TypeEaseOut{Func: EasingBounce}, 0, TargetMoveXMinus|TargetMoveYMinus, CameraIgnore)
	require.True(t, easeOut.HasMotion())
}

func TestFlagsRoundTripsFields(t *testing.T) {
	target := TargetMoveXMinus | TargetMoveYMinus
	flags := New(TypeEaseOut{Func: EasingBounce, Loop: false}, 0, target, CameraIgnore)

	require.Equal(t, EasingBounce, flags.EasingFunc())
	require.Equal(t, target, flags.Target())
	require.True(t, flags.IgnoreCamera())
	require.False(t, flags.Loop())
}

func TestFlagsLoopBit(t *testing.T) {
	looping := New(TypeEaseIn{Func: EasingLiner, Loop: true}, 0, 0, 0)
	once := New(TypeEaseIn{Func: EasingLiner, Loop: false}, 0, 0, 0)

	require.True(t, looping.Loop())
	require.False(t, once.Loop())
	require.NotEqual(t, looping, once)
}

func TestFlagsDetailBits(t *testing.T) {
	flags := New(TypeEaseInOut{Func: EasingQuad}, DetailToCurrent|DetailUseXDistance, 0, 0)
	detail := flags.Detail()
	require.NotZero(t, detail&DetailToCurrent)
	require.NotZero(t, detail&DetailUseXDistance)
	require.Zero(t, detail&DetailTurnBack)
}

func TestBuilderMatchesNew(t *testing.T) {
	want := New(TypeEaseOut{Func: EasingCirc}, DetailTurnBack, TargetRotateZPlus, CameraIgnore)
	got := NewBuilder().
		Type(TypeEaseOut{Func: EasingCirc}).
		WithDetail(DetailTurnBack).
		WithTarget(TargetRotateZPlus).
		WithCamera(CameraIgnore).
		Build()
	require.Equal(t, want, got)
}

func TestEasingFuncsCoverAllIDs(t *testing.T) {
	for id := EasingLiner; id <= EasingBounce; id++ {
		fn, ok := Funcs[id]
		require.Truef(t, ok, "no easing func registered for id %d", id)
		require.InDeltaf(t, 0, fn(0), 0.01, "easing id %d should start near 0", id)
	}
}

package instance

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mitoma/vectortext/motion"
)

func TestModelIdentityWhenAllDefaults(t *testing.T) {
	a := DefaultAttributes([3]float32{1, 0, 0})
	assert.Equal(t, identity4(), a.model())
}

func TestModelAppliesTranslation(t *testing.T) {
	a := DefaultAttributes([3]float32{1, 0, 0})
	a.Position = Vec3{X: 3, Y: 4, Z: 0}
	m := a.model()
	assert.Equal(t, float32(3), m[12])
	assert.Equal(t, float32(4), m[13])
}

func TestRawEncodesMotionWordAndGainLittleEndian(t *testing.T) {
	a := DefaultAttributes([3]float32{1, 0, 0})
	a.Motion = motion.Flags(1 << 31)
	a.Gain = 0.75
	a.Duration = 500 * time.Millisecond
	a.StartTime = 1234

	buf := raw(a)
	assert.Len(t, buf, RawSize)

	motionOff := 4*4*4 + 3*4
	assert.Equal(t, uint32(1<<31), binary.LittleEndian.Uint32(buf[motionOff:motionOff+4]))
	assert.Equal(t, uint32(1234), binary.LittleEndian.Uint32(buf[motionOff+4:motionOff+8]))
	assert.Equal(t, math.Float32bits(0.75), binary.LittleEndian.Uint32(buf[motionOff+8:motionOff+12]))
	assert.Equal(t, uint32(500), binary.LittleEndian.Uint32(buf[motionOff+12:motionOff+16]))
}

func TestLayoutReportsLocations5Through13(t *testing.T) {
	stride, attrs := Layout()
	assert.Equal(t, uint64(RawSize), stride)
	assert.Equal(t, 9, len(attrs))
	assert.Equal(t, uint32(5), attrs[0].ShaderLocation)
	assert.Equal(t, uint32(13), attrs[len(attrs)-1].ShaderLocation)
}

//go:build !nogpu

package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	inst, err := api.CreateInstance(nil)
	require.NoError(t, err)
	adapters := inst.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		inst.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		inst.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func TestNewRendererCreatesPipelinesAndSampler(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue, QualityMedium)
	require.NoError(t, err)
	defer r.Destroy()

	assert.NotNil(t, r.pipelines.overlapPipeline)
	assert.NotNil(t, r.pipelines.outlinePipeline)
	assert.NotNil(t, r.pipelines.screenPipeline)
	assert.NotNil(t, r.sampler)
}

func TestResizeAllocatesScaledTargets(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue, QualityHigh)
	require.NoError(t, err)
	defer r.Destroy()

	require.NoError(t, r.Resize(100, 50))
	assert.Equal(t, uint32(200), r.targets.width)
	assert.Equal(t, uint32(100), r.targets.height)
	assert.NotNil(t, r.outlineBindGroup)
	assert.NotNil(t, r.screenBindGroup)
}

func TestResizeIsNoOpWhenSizeUnchanged(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue, QualityLow)
	require.NoError(t, err)
	defer r.Destroy()

	require.NoError(t, r.Resize(64, 64))
	firstTex := r.targets.coverageTex
	require.NoError(t, r.Resize(64, 64))
	assert.Equal(t, firstTex, r.targets.coverageTex)
}

func TestSetQualityForcesTargetRebuildOnNextResize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue, QualityLow)
	require.NoError(t, err)
	defer r.Destroy()

	require.NoError(t, r.Resize(64, 64))
	r.SetQuality(QualityHigh)
	require.NoError(t, r.Resize(64, 64))
	assert.Equal(t, uint32(128), r.targets.width)
}

func TestRenderWithNoDrawBatchesSucceeds(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue, QualityMedium)
	require.NoError(t, err)
	defer r.Destroy()

	surfaceTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_surface",
		Size:          hal.Extent3D{Width: 64, Height: 64, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	require.NoError(t, err)
	defer device.DestroyTexture(surfaceTex)
	surfaceView, err := device.CreateTextureView(surfaceTex, &hal.TextureViewDescriptor{Label: "test_surface_view"})
	require.NoError(t, err)
	defer device.DestroyTextureView(surfaceView)

	var identity [16]float32
	identity[0], identity[5], identity[10], identity[15] = 1, 1, 1, 1

	err = r.Render(64, 64, identity, 0, [4]float32{0, 0, 0, 1}, nil, surfaceView)
	assert.NoError(t, err)
}

func TestSetBackgroundClearsCachedScreenBindGroup(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue, QualityMedium)
	require.NoError(t, err)
	defer r.Destroy()
	require.NoError(t, r.Resize(32, 32))
	require.NotNil(t, r.screenBindGroup)

	bgTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_background",
		Size:          hal.Extent3D{Width: 32, Height: 32, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	require.NoError(t, err)
	defer device.DestroyTexture(bgTex)
	bgView, err := device.CreateTextureView(bgTex, &hal.TextureViewDescriptor{Label: "test_background_view"})
	require.NoError(t, err)
	defer device.DestroyTextureView(bgView)

	r.SetBackground(bgView)
	assert.Nil(t, r.screenBindGroup)
	require.NoError(t, r.ensureScreenBindGroup())
	assert.NotNil(t, r.screenBindGroup)
}

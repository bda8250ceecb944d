package raster

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// targets owns the offscreen textures the two-pass pipeline renders
// through: create-if-size-changed, explicit destroy, paired texture+view.
// Coverage and outline are sRGB so color math composites correctly; the
// counter is plain UNORM since it stores a triangle count, not a color,
// and is blended additively.
type targets struct {
	width, height uint32 // overlap/outline target size (post quality scale)

	coverageTex  hal.Texture
	coverageView hal.TextureView
	counterTex   hal.Texture
	counterView  hal.TextureView

	outlineTex  hal.Texture
	outlineView hal.TextureView
}

func (t *targets) ensure(device hal.Device, w, h uint32) error {
	if t.width == w && t.height == h && t.coverageTex != nil {
		return nil
	}
	t.destroy(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	coverageTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "raster_overlap_coverage",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8UnormSrgb,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("raster: create coverage texture: %w", err)
	}
	t.coverageTex = coverageTex
	if t.coverageView, err = device.CreateTextureView(coverageTex, &hal.TextureViewDescriptor{Label: "raster_overlap_coverage_view"}); err != nil {
		t.destroy(device)
		return fmt.Errorf("raster: create coverage view: %w", err)
	}

	counterTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "raster_overlap_counter",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("raster: create counter texture: %w", err)
	}
	t.counterTex = counterTex
	if t.counterView, err = device.CreateTextureView(counterTex, &hal.TextureViewDescriptor{Label: "raster_overlap_counter_view"}); err != nil {
		t.destroy(device)
		return fmt.Errorf("raster: create counter view: %w", err)
	}

	outlineTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "raster_outline",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8UnormSrgb,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("raster: create outline texture: %w", err)
	}
	t.outlineTex = outlineTex
	if t.outlineView, err = device.CreateTextureView(outlineTex, &hal.TextureViewDescriptor{Label: "raster_outline_view"}); err != nil {
		t.destroy(device)
		return fmt.Errorf("raster: create outline view: %w", err)
	}

	t.width, t.height = w, h
	return nil
}

func (t *targets) destroy(device hal.Device) {
	if t.coverageView != nil {
		device.DestroyTextureView(t.coverageView)
		t.coverageView = nil
	}
	if t.coverageTex != nil {
		device.DestroyTexture(t.coverageTex)
		t.coverageTex = nil
	}
	if t.counterView != nil {
		device.DestroyTextureView(t.counterView)
		t.counterView = nil
	}
	if t.counterTex != nil {
		device.DestroyTexture(t.counterTex)
		t.counterTex = nil
	}
	if t.outlineView != nil {
		device.DestroyTextureView(t.outlineView)
		t.outlineView = nil
	}
	if t.outlineTex != nil {
		device.DestroyTexture(t.outlineTex)
		t.outlineTex = nil
	}
	t.width, t.height = 0, 0
}

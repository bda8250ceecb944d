package raster

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/mitoma/vectortext/glyphbuf"
	"github.com/mitoma/vectortext/instance"
)

const screenUniformsSize = 32 // vec4 background_color (16) + has_background_image u32 + 3 pad words

// DrawBatch is one glyph's triangle soup paired with the instance store
// driving however many placements of it appear in the current frame.
type DrawBatch struct {
	Glyph     glyphbuf.DrawInfo
	Instances *instance.Store
}

// Renderer owns the three-pass pipeline and its offscreen targets. One
// Renderer serves one output surface; resize and quality changes reuse
// the same pipelines and only rebuild textures and their bind groups.
//
// Grounded on internal/gpu/render_session.go's unified-pass orchestration
// (command encoder lifecycle, fence-based submit/wait) and
// internal/gpu/stencil_pipeline.go's stencil-then-cover two-stage shape,
// generalized here to three stages sharing one pair of offscreen targets
// per frame instead of one.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	pipelines *pipelines
	targets   targets
	sampler   hal.Sampler
	quality   Quality

	overlapUniformBuf hal.Buffer
	overlapBindGroup  hal.BindGroup

	outlineBindGroup hal.BindGroup

	screenUniformBuf hal.Buffer
	screenBindGroup  hal.BindGroup
	backgroundView   hal.TextureView
}

// NewRenderer creates a Renderer at the given quality tier. Call Resize
// before the first Render to allocate the offscreen targets.
func NewRenderer(device hal.Device, queue hal.Queue, quality Quality) (*Renderer, error) {
	pl, err := newPipelines(device)
	if err != nil {
		return nil, err
	}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "raster_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filterFor(quality),
		MinFilter:    filterFor(quality),
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		pl.destroy()
		return nil, fmt.Errorf("raster: create sampler: %w", err)
	}

	overlapUniformBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "raster_overlap_uniforms",
		Size:  uniformsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		pl.destroy()
		device.DestroySampler(sampler)
		return nil, fmt.Errorf("raster: create overlap uniform buffer: %w", err)
	}
	overlapBindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "raster_overlap_bind",
		Layout: pl.overlapUniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: overlapUniformBuf.NativeHandle(), Offset: 0, Size: uniformsSize}},
		},
	})
	if err != nil {
		pl.destroy()
		device.DestroySampler(sampler)
		device.DestroyBuffer(overlapUniformBuf)
		return nil, fmt.Errorf("raster: create overlap bind group: %w", err)
	}

	screenUniformBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "raster_screen_uniforms",
		Size:  screenUniformsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		pl.destroy()
		device.DestroySampler(sampler)
		device.DestroyBuffer(overlapUniformBuf)
		return nil, fmt.Errorf("raster: create screen uniform buffer: %w", err)
	}

	return &Renderer{
		device:            device,
		queue:             queue,
		pipelines:         pl,
		sampler:           sampler,
		quality:           quality,
		overlapUniformBuf: overlapUniformBuf,
		overlapBindGroup:  overlapBindGroup,
		screenUniformBuf:  screenUniformBuf,
	}, nil
}

func filterFor(q Quality) gputypes.FilterMode {
	if q.Linear() {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}

// SetQuality changes the supersampling tier for subsequent frames. The
// next Resize (or Render, if the screen size hasn't changed) reallocates
// the offscreen targets at the new scale.
func (r *Renderer) SetQuality(q Quality) {
	r.quality = q
	r.targets.width, r.targets.height = 0, 0 // force Resize to recreate at the new scale
}

// SetBackground sets an image to composite behind the outline texture;
// pass nil to fall back to a solid background color.
func (r *Renderer) SetBackground(view hal.TextureView) {
	r.backgroundView = view
	r.screenBindGroup = nil // rebuilt lazily by ensureScreenBindGroup
}

// Resize reallocates the offscreen targets for a screenW x screenH output
// surface, scaled per the current Quality tier.
func (r *Renderer) Resize(screenW, screenH uint32) error {
	w, h := r.quality.TargetSize(screenW, screenH)
	if err := r.targets.ensure(r.device, w, h); err != nil {
		return err
	}
	if err := r.rebuildOutlineBindGroup(); err != nil {
		return err
	}
	return r.rebuildScreenBindGroup()
}

func (r *Renderer) rebuildOutlineBindGroup() error {
	bg, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "raster_outline_bind",
		Layout: r.pipelines.outlineSampleLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: r.targets.coverageView.NativeHandle()}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: r.targets.counterView.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("raster: create outline bind group: %w", err)
	}
	r.outlineBindGroup = bg
	return nil
}

func (r *Renderer) ensureScreenBindGroup() error {
	if r.screenBindGroup != nil {
		return nil
	}
	return r.rebuildScreenBindGroup()
}

func (r *Renderer) rebuildScreenBindGroup() error {
	background := r.backgroundView
	if background == nil {
		background = r.targets.outlineView // harmless placeholder; has_background_image stays 0 so the shader never samples it
	}
	bg, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "raster_screen_bind",
		Layout: r.pipelines.screenSampleLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: r.targets.outlineView.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
			{Binding: 2, Resource: gputypes.TextureViewBinding{TextureView: background.NativeHandle()}},
			{Binding: 3, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
			{Binding: 4, Resource: gputypes.BufferBinding{Buffer: r.screenUniformBuf.NativeHandle(), Offset: 0, Size: screenUniformsSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("raster: create screen bind group: %w", err)
	}
	r.screenBindGroup = bg
	return nil
}

// Render executes one frame: pass 1 draws every batch's triangle soup
// into the coverage+counter targets, pass 2 resolves that into the
// outline texture, pass 3 composites the outline over background onto
// surfaceView. viewProj is a column-major 4x4 in row-major float order
// matching instance.Layout's model matrix convention; nowMillis drives
// the GPU side of motion evaluation.
func (r *Renderer) Render(
	screenW, screenH uint32,
	viewProj [16]float32,
	nowMillis uint32,
	backgroundColor [4]float32,
	batches []DrawBatch,
	surfaceView hal.TextureView,
) error {
	if err := r.Resize(screenW, screenH); err != nil {
		return err
	}
	if err := r.ensureScreenBindGroup(); err != nil {
		return err
	}

	if err := r.queue.WriteBuffer(r.overlapUniformBuf, 0, overlapUniformBytes(viewProj, nowMillis)); err != nil {
		return fmt.Errorf("raster: write overlap uniforms: %w", err)
	}
	hasBackground := uint32(0)
	if r.backgroundView != nil {
		hasBackground = 1
	}
	if err := r.queue.WriteBuffer(r.screenUniformBuf, 0, screenUniformBytes(backgroundColor, hasBackground)); err != nil {
		return fmt.Errorf("raster: write screen uniforms: %w", err)
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "raster_frame_encoder"})
	if err != nil {
		return fmt.Errorf("raster: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("raster_frame"); err != nil {
		return fmt.Errorf("raster: begin encoding: %w", err)
	}

	overlapPass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "raster_overlap_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{View: r.targets.coverageView, LoadOp: gputypes.LoadOpClear, StoreOp: gputypes.StoreOpStore, ClearValue: gputypes.Color{}},
			{View: r.targets.counterView, LoadOp: gputypes.LoadOpClear, StoreOp: gputypes.StoreOpStore, ClearValue: gputypes.Color{}},
		},
	})
	overlapPass.SetPipeline(r.pipelines.overlapPipeline)
	overlapPass.SetBindGroup(0, r.overlapBindGroup, nil)
	for _, batch := range batches {
		if batch.Instances == nil || batch.Instances.IsEmpty() {
			continue
		}
		overlapPass.SetVertexBuffer(0, batch.Glyph.VertexBuffer, 0)
		overlapPass.SetVertexBuffer(1, batch.Instances.Buffer(), 0)
		overlapPass.SetIndexBuffer(batch.Glyph.IndexBuffer, gputypes.IndexFormatUint32, 0)
		overlapPass.DrawIndexed(batch.Glyph.IndexCount, uint32(batch.Instances.Len()), batch.Glyph.IndexOffset, 0, 0)
	}
	overlapPass.End()

	outlinePass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "raster_outline_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{View: r.targets.outlineView, LoadOp: gputypes.LoadOpClear, StoreOp: gputypes.StoreOpStore, ClearValue: gputypes.Color{}},
		},
	})
	outlinePass.SetPipeline(r.pipelines.outlinePipeline)
	outlinePass.SetBindGroup(0, r.outlineBindGroup, nil)
	outlinePass.Draw(3, 1, 0, 0)
	outlinePass.End()

	screenPass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "raster_screen_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{View: surfaceView, LoadOp: gputypes.LoadOpClear, StoreOp: gputypes.StoreOpStore, ClearValue: gputypes.Color{}},
		},
	})
	screenPass.SetPipeline(r.pipelines.screenPipeline)
	screenPass.SetBindGroup(0, r.screenBindGroup, nil)
	screenPass.Draw(3, 1, 0, 0)
	screenPass.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("raster: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("raster: create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("raster: submit: %w", err)
	}
	ok, err := r.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !ok {
		return fmt.Errorf("raster: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// Destroy releases every GPU resource the Renderer owns.
func (r *Renderer) Destroy() {
	r.targets.destroy(r.device)
	if r.overlapUniformBuf != nil {
		r.device.DestroyBuffer(r.overlapUniformBuf)
	}
	if r.screenUniformBuf != nil {
		r.device.DestroyBuffer(r.screenUniformBuf)
	}
	if r.sampler != nil {
		r.device.DestroySampler(r.sampler)
	}
	r.pipelines.destroy()
}

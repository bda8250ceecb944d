package raster

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/mitoma/vectortext/instance"
)

//go:embed shaders/overlap.wgsl
var overlapShaderSource string

//go:embed shaders/outline.wgsl
var outlineShaderSource string

//go:embed shaders/screen.wgsl
var screenShaderSource string

const uniformsSize = 80 // mat4x4 view_proj (64) + now_ms + 3 padding words

// pipelines owns the three render pipelines the two-pass-plus-composite
// design needs, grounded on internal/gpu/stencil_pipeline.go's
// createPipelines/destroyPipelines shape (shared bind group + pipeline
// layouts built once, one shader module per pass).
type pipelines struct {
	device hal.Device

	overlapShader hal.ShaderModule
	outlineShader hal.ShaderModule
	screenShader  hal.ShaderModule

	overlapUniformLayout hal.BindGroupLayout
	overlapPipeLayout    hal.PipelineLayout
	overlapPipeline      hal.RenderPipeline

	outlineSampleLayout hal.BindGroupLayout
	outlinePipeLayout   hal.PipelineLayout
	outlinePipeline     hal.RenderPipeline

	screenSampleLayout hal.BindGroupLayout
	screenPipeLayout   hal.PipelineLayout
	screenPipeline     hal.RenderPipeline
}

func glyphVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: 16, // glyphbuf.Vertex: position vec2 + role vec2
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		},
	}
}

func instanceVertexLayout() gputypes.VertexBufferLayout {
	stride, attrs := instance.Layout()
	out := make([]gputypes.VertexAttribute, len(attrs))
	for i, a := range attrs {
		out[i] = gputypes.VertexAttribute{
			Format:         vertexFormat(a.Format),
			Offset:         a.Offset,
			ShaderLocation: a.ShaderLocation,
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: stride,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes:  out,
	}
}

func vertexFormat(name string) gputypes.VertexFormat {
	switch name {
	case "float32x4":
		return gputypes.VertexFormatFloat32x4
	case "float32x3":
		return gputypes.VertexFormatFloat32x3
	case "float32":
		return gputypes.VertexFormatFloat32
	case "uint32":
		return gputypes.VertexFormatUint32
	default:
		return gputypes.VertexFormatFloat32
	}
}

// additiveBlend builds a (ONE,ONE,Add) blend state for the counter
// target. No pack example constructs BlendComponent/BlendFactor/
// BlendOperation directly (they only ever call the opaque
// gputypes.BlendStatePremultiplied() helper), so these field names follow
// wgpu's own additive-blend convention rather than an observed call site.
func additiveBlend() gputypes.BlendState {
	component := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorOne,
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{Color: component, Alpha: component}
}

func newPipelines(device hal.Device) (*pipelines, error) {
	p := &pipelines{device: device}
	if err := p.createOverlapPipeline(); err != nil {
		return nil, err
	}
	if err := p.createOutlinePipeline(); err != nil {
		p.destroy()
		return nil, err
	}
	if err := p.createScreenPipeline(); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

// createOverlapPipeline builds pass 1: two color attachments (coverage,
// counter) written by a single draw, no culling, additive blend on the
// counter channel.
func (p *pipelines) createOverlapPipeline() error {
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "raster_overlap_shader",
		Source: hal.ShaderSource{WGSL: overlapShaderSource},
	})
	if err != nil {
		return fmt.Errorf("raster: compile overlap shader: %w", err)
	}
	p.overlapShader = shader

	layout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "raster_overlap_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("raster: create overlap bind group layout: %w", err)
	}
	p.overlapUniformLayout = layout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "raster_overlap_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("raster: create overlap pipeline layout: %w", err)
	}
	p.overlapPipeLayout = pipeLayout

	additive := additiveBlend()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "raster_overlap_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{glyphVertexLayout(), instanceVertexLayout()},
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: gputypes.TextureFormatBGRA8UnormSrgb, WriteMask: gputypes.ColorWriteMaskAll},
				{Format: gputypes.TextureFormatBGRA8Unorm, Blend: &additive, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("raster: create overlap pipeline: %w", err)
	}
	p.overlapPipeline = pipeline
	return nil
}

// createOutlinePipeline builds pass 2: a full-screen triangle sampling
// the overlap pass's two attachments, discarding even-parity pixels.
func (p *pipelines) createOutlinePipeline() error {
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "raster_outline_shader",
		Source: hal.ShaderSource{WGSL: outlineShaderSource},
	})
	if err != nil {
		return fmt.Errorf("raster: compile outline shader: %w", err)
	}
	p.outlineShader = shader

	layout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "raster_outline_sample_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageFragment, Texture: &gputypes.TextureBindingLayout{SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2D}},
			{Binding: 1, Visibility: gputypes.ShaderStageFragment, Texture: &gputypes.TextureBindingLayout{SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2D}},
			{Binding: 2, Visibility: gputypes.ShaderStageFragment, Sampler: &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}},
		},
	})
	if err != nil {
		return fmt.Errorf("raster: create outline bind group layout: %w", err)
	}
	p.outlineSampleLayout = layout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "raster_outline_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("raster: create outline pipeline layout: %w", err)
	}
	p.outlinePipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "raster_outline_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: gputypes.TextureFormatBGRA8UnormSrgb, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("raster: create outline pipeline: %w", err)
	}
	p.outlinePipeline = pipeline
	return nil
}

// createScreenPipeline builds pass 3: composite the outline texture over
// the user's chosen background.
func (p *pipelines) createScreenPipeline() error {
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "raster_screen_shader",
		Source: hal.ShaderSource{WGSL: screenShaderSource},
	})
	if err != nil {
		return fmt.Errorf("raster: compile screen shader: %w", err)
	}
	p.screenShader = shader

	layout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "raster_screen_sample_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageFragment, Texture: &gputypes.TextureBindingLayout{SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2D}},
			{Binding: 1, Visibility: gputypes.ShaderStageFragment, Sampler: &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}},
			{Binding: 2, Visibility: gputypes.ShaderStageFragment, Texture: &gputypes.TextureBindingLayout{SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2D}},
			{Binding: 3, Visibility: gputypes.ShaderStageFragment, Sampler: &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}},
			{Binding: 4, Visibility: gputypes.ShaderStageFragment, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return fmt.Errorf("raster: create screen bind group layout: %w", err)
	}
	p.screenSampleLayout = layout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "raster_screen_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("raster: create screen pipeline layout: %w", err)
	}
	p.screenPipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "raster_screen_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: gputypes.TextureFormatBGRA8Unorm, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("raster: create screen pipeline: %w", err)
	}
	p.screenPipeline = pipeline
	return nil
}

func (p *pipelines) destroy() {
	if p.device == nil {
		return
	}
	if p.screenPipeline != nil {
		p.device.DestroyRenderPipeline(p.screenPipeline)
		p.screenPipeline = nil
	}
	if p.screenPipeLayout != nil {
		p.device.DestroyPipelineLayout(p.screenPipeLayout)
		p.screenPipeLayout = nil
	}
	if p.screenSampleLayout != nil {
		p.device.DestroyBindGroupLayout(p.screenSampleLayout)
		p.screenSampleLayout = nil
	}
	if p.screenShader != nil {
		p.device.DestroyShaderModule(p.screenShader)
		p.screenShader = nil
	}
	if p.outlinePipeline != nil {
		p.device.DestroyRenderPipeline(p.outlinePipeline)
		p.outlinePipeline = nil
	}
	if p.outlinePipeLayout != nil {
		p.device.DestroyPipelineLayout(p.outlinePipeLayout)
		p.outlinePipeLayout = nil
	}
	if p.outlineSampleLayout != nil {
		p.device.DestroyBindGroupLayout(p.outlineSampleLayout)
		p.outlineSampleLayout = nil
	}
	if p.outlineShader != nil {
		p.device.DestroyShaderModule(p.outlineShader)
		p.outlineShader = nil
	}
	if p.overlapPipeline != nil {
		p.device.DestroyRenderPipeline(p.overlapPipeline)
		p.overlapPipeline = nil
	}
	if p.overlapPipeLayout != nil {
		p.device.DestroyPipelineLayout(p.overlapPipeLayout)
		p.overlapPipeLayout = nil
	}
	if p.overlapUniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.overlapUniformLayout)
		p.overlapUniformLayout = nil
	}
	if p.overlapShader != nil {
		p.device.DestroyShaderModule(p.overlapShader)
		p.overlapShader = nil
	}
}

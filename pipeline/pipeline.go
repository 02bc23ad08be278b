// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pipeline builds the render pipeline for one shader variant.
//
// A Pipeline is bound to a (device, surface format, variant) triple and is
// never mutated after Build returns. Switching variants means building a new
// Pipeline and destroying the old one; pipelines are not cached or shared.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tricolor/shader"
)

var (
	// ErrNilDevice is returned when Build is called without a device.
	ErrNilDevice = errors.New("pipeline: nil device")

	// ErrNilConfig is returned when Build is called without a surface configuration.
	ErrNilConfig = errors.New("pipeline: nil surface configuration")
)

// VertexCount is the number of vertices the shader synthesizes per draw.
const VertexCount = 3

// Factory builds pipelines from a single shared shader asset.
type Factory struct {
	asset *shader.Asset
}

// NewFactory returns a factory for asset. A nil asset selects shader.Default.
func NewFactory(asset *shader.Asset) *Factory {
	if asset == nil {
		asset = shader.Default()
	}
	return &Factory{asset: asset}
}

// Asset returns the shader asset used for every build.
func (f *Factory) Asset() *shader.Asset { return f.asset }

// Pipeline is an immutable render pipeline for one shader variant.
type Pipeline struct {
	device   hal.Device
	module   hal.ShaderModule
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline

	variant  string
	vertex   string
	fragment string
	format   gputypes.TextureFormat
}

// Build compiles the variant's entry points into a render pipeline whose
// color target matches config.Format.
//
// A variant missing from the asset fails with shader.ErrMissingEntryPoint.
// That is a build-time contract violation; callers must not substitute
// another variant.
func (f *Factory) Build(device hal.Device, config *hal.SurfaceConfiguration, variant string) (*Pipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if config == nil {
		return nil, ErrNilConfig
	}

	vs, fs, err := f.asset.EntryPoints(variant)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		device:   device,
		variant:  variant,
		vertex:   vs,
		fragment: fs,
		format:   config.Format,
	}

	p.module, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  f.asset.Name(),
		Source: hal.ShaderSource{WGSL: f.asset.Source()},
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: create shader module %s: %w", f.asset.Name(), err)
	}

	// Geometry and color come from the vertex index, so nothing is bound.
	p.layout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "Render Pipeline Layout",
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("pipeline: create layout: %w", err)
	}

	desc := Descriptor(p.module, p.layout, vs, fs, config.Format)
	p.pipeline, err = device.CreateRenderPipeline(desc)
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("pipeline: create %s pipeline: %w", variant, err)
	}

	slogger().Debug("pipeline built",
		"variant", variant,
		"vertex", vs,
		"fragment", fs,
		"format", config.Format.String(),
	)
	return p, nil
}

// Descriptor returns the fixed render pipeline description: one triangle
// list, counter-clockwise front faces with back faces culled, no depth or
// stencil, one sample, and a single replace-blended color target in format.
func Descriptor(module hal.ShaderModule, layout hal.PipelineLayout, vertex, fragment string, format gputypes.TextureFormat) *hal.RenderPipelineDescriptor {
	blend := gputypes.BlendStateReplace()
	return &hal.RenderPipelineDescriptor{
		Label:  "Render Pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: vertex,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: fragment,
			Targets: []gputypes.ColorTargetState{{
				Format:    format,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		DepthStencil: nil,
		Multisample:  gputypes.DefaultMultisampleState(),
	}
}

// Variant returns the shader variant the pipeline was built for.
func (p *Pipeline) Variant() string { return p.variant }

// VertexEntry returns the bound vertex entry point.
func (p *Pipeline) VertexEntry() string { return p.vertex }

// FragmentEntry returns the bound fragment entry point.
func (p *Pipeline) FragmentEntry() string { return p.fragment }

// Format returns the color target format.
func (p *Pipeline) Format() gputypes.TextureFormat { return p.format }

// Raw returns the HAL pipeline for binding in a render pass.
// It is nil after Destroy.
func (p *Pipeline) Raw() hal.RenderPipeline { return p.pipeline }

// Equivalent reports whether q binds the same entry points and format as p.
func (p *Pipeline) Equivalent(q *Pipeline) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.vertex == q.vertex && p.fragment == q.fragment && p.format == q.format
}

// Destroy releases the pipeline, its layout and its shader module in reverse
// creation order. It is safe to call more than once.
func (p *Pipeline) Destroy() {
	if p == nil || p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.layout != nil {
		p.device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.module != nil {
		p.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package haltest provides recording HAL objects for GPU-free tests.
//
// The types wrap the github.com/gogpu/wgpu/hal/noop backend and record the
// descriptors, passes, draws, submissions and presentations that flow
// through them. Surface capabilities and acquisition errors are injectable.
package haltest

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// Backend is a hal.Backend producing a single recording instance.
type Backend struct {
	Inst *Instance
}

// NewBackend returns a backend with one noop-like adapter whose surface
// reports caps.
func NewBackend(caps *hal.SurfaceCapabilities) *Backend {
	return &Backend{Inst: NewInstance(caps)}
}

// Variant reports the empty backend.
func (b *Backend) Variant() gputypes.Backend { return gputypes.BackendEmpty }

// CreateInstance returns the recording instance.
func (b *Backend) CreateInstance(_ *hal.InstanceDescriptor) (hal.Instance, error) {
	return b.Inst, nil
}

// Instance records created surfaces and exposes configurable adapters.
type Instance struct {
	noop.Instance

	Adapters  []hal.ExposedAdapter
	Surface   *Surface
	Destroyed bool
}

// NewInstance returns an instance with a single adapter.
func NewInstance(caps *hal.SurfaceCapabilities) *Instance {
	dev := NewDevice()
	return &Instance{
		Adapters: []hal.ExposedAdapter{{
			Adapter: &Adapter{Caps: caps, Device: dev, Queue: NewQueue()},
			Info: gputypes.AdapterInfo{
				Name:       "Recording Adapter",
				Vendor:     "GoGPU",
				DeviceType: gputypes.DeviceTypeOther,
				Driver:     "haltest",
				Backend:    gputypes.BackendEmpty,
			},
			Capabilities: hal.Capabilities{Limits: gputypes.DefaultLimits()},
		}},
	}
}

// CreateSurface returns a fresh recording surface.
func (i *Instance) CreateSurface(_, _ uintptr) (hal.Surface, error) {
	i.Surface = &Surface{}
	return i.Surface, nil
}

// EnumerateAdapters returns the configured adapters.
func (i *Instance) EnumerateAdapters(_ hal.Surface) []hal.ExposedAdapter {
	return i.Adapters
}

// Destroy marks the instance destroyed.
func (i *Instance) Destroy() { i.Destroyed = true }

// Adapter opens a recording device and reports fixed surface capabilities.
type Adapter struct {
	noop.Adapter

	Caps    *hal.SurfaceCapabilities
	Device  *Device
	Queue   *Queue
	OpenErr error
	Opened  int
}

// Open returns the adapter's device and queue, or OpenErr.
func (a *Adapter) Open(_ gputypes.Features, _ gputypes.Limits) (hal.OpenDevice, error) {
	if a.OpenErr != nil {
		return hal.OpenDevice{}, a.OpenErr
	}
	a.Opened++
	return hal.OpenDevice{Device: a.Device, Queue: a.Queue}, nil
}

// SurfaceCapabilities returns Caps, falling back to the noop defaults.
func (a *Adapter) SurfaceCapabilities(s hal.Surface) *hal.SurfaceCapabilities {
	if a.Caps != nil {
		return a.Caps
	}
	return a.Adapter.SurfaceCapabilities(s)
}

// Surface records configurations and returns queued acquisition errors.
type Surface struct {
	noop.Surface

	Configs      []hal.SurfaceConfiguration
	ConfigureErr error
	AcquireErrs  []error
	Suboptimal   bool
	Acquired     int
	Discarded    int
	Unconfigured bool
	Destroyed    bool
}

// Configure records config.
func (s *Surface) Configure(_ hal.Device, config *hal.SurfaceConfiguration) error {
	if s.ConfigureErr != nil {
		return s.ConfigureErr
	}
	s.Configs = append(s.Configs, *config)
	return nil
}

// Unconfigure marks the surface unconfigured.
func (s *Surface) Unconfigure(_ hal.Device) { s.Unconfigured = true }

// AcquireTexture pops the next queued error, if any, else returns a texture.
func (s *Surface) AcquireTexture(_ hal.Fence) (*hal.AcquiredSurfaceTexture, error) {
	if len(s.AcquireErrs) > 0 {
		err := s.AcquireErrs[0]
		s.AcquireErrs = s.AcquireErrs[1:]
		return nil, err
	}
	s.Acquired++
	return &hal.AcquiredSurfaceTexture{Texture: &noop.SurfaceTexture{}, Suboptimal: s.Suboptimal}, nil
}

// DiscardTexture counts discarded textures.
func (s *Surface) DiscardTexture(_ hal.SurfaceTexture) { s.Discarded++ }

// Destroy marks the surface destroyed.
func (s *Surface) Destroy() { s.Destroyed = true }

// LastConfig returns the most recently applied configuration.
func (s *Surface) LastConfig() (hal.SurfaceConfiguration, bool) {
	if len(s.Configs) == 0 {
		return hal.SurfaceConfiguration{}, false
	}
	return s.Configs[len(s.Configs)-1], true
}

// Pipeline is a recorded render pipeline.
type Pipeline struct {
	noop.Resource
	Desc hal.RenderPipelineDescriptor
}

// ShaderModule is a recorded shader module.
type ShaderModule struct {
	noop.Resource
	Desc hal.ShaderModuleDescriptor
}

// Device records created and destroyed objects.
type Device struct {
	noop.Device

	Modules          []*ShaderModule
	Layouts          []*hal.PipelineLayoutDescriptor
	Pipelines        []*Pipeline
	Encoders         []*Encoder
	Views            []*hal.TextureViewDescriptor
	DestroyedPipes   []hal.RenderPipeline
	DestroyedModules int
	DestroyedLayouts int
	DestroyedViews   int
	FreedBuffers     int
	WaitedIdle       int
	Destroyed        bool

	PipelineErr error
	ModuleErr   error
	EncoderErr  error
}

// NewDevice returns an empty recording device.
func NewDevice() *Device { return &Device{} }

// CreateShaderModule records desc.
func (d *Device) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if d.ModuleErr != nil {
		return nil, d.ModuleErr
	}
	m := &ShaderModule{Desc: *desc}
	d.Modules = append(d.Modules, m)
	return m, nil
}

// DestroyShaderModule counts destroyed modules.
func (d *Device) DestroyShaderModule(_ hal.ShaderModule) { d.DestroyedModules++ }

// CreatePipelineLayout records desc.
func (d *Device) CreatePipelineLayout(desc *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	d.Layouts = append(d.Layouts, desc)
	return &noop.Resource{}, nil
}

// DestroyPipelineLayout counts destroyed layouts.
func (d *Device) DestroyPipelineLayout(_ hal.PipelineLayout) { d.DestroyedLayouts++ }

// CreateRenderPipeline records desc.
func (d *Device) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	if d.PipelineErr != nil {
		return nil, d.PipelineErr
	}
	p := &Pipeline{Desc: *desc}
	d.Pipelines = append(d.Pipelines, p)
	return p, nil
}

// DestroyRenderPipeline records destroyed pipelines.
func (d *Device) DestroyRenderPipeline(p hal.RenderPipeline) {
	d.DestroyedPipes = append(d.DestroyedPipes, p)
}

// CreateTextureView records desc.
func (d *Device) CreateTextureView(_ hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	d.Views = append(d.Views, desc)
	return &noop.Resource{}, nil
}

// DestroyTextureView counts destroyed views.
func (d *Device) DestroyTextureView(_ hal.TextureView) { d.DestroyedViews++ }

// CreateCommandEncoder returns a recording encoder.
func (d *Device) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	if d.EncoderErr != nil {
		return nil, d.EncoderErr
	}
	e := &Encoder{Label: desc.Label}
	d.Encoders = append(d.Encoders, e)
	return e, nil
}

// FreeCommandBuffer counts freed command buffers.
func (d *Device) FreeCommandBuffer(_ hal.CommandBuffer) { d.FreedBuffers++ }

// WaitIdle counts idle waits.
func (d *Device) WaitIdle() error {
	d.WaitedIdle++
	return nil
}

// Destroy marks the device destroyed.
func (d *Device) Destroy() { d.Destroyed = true }

// Encoder records render passes.
type Encoder struct {
	noop.CommandEncoder

	Label     string
	Passes    []*Pass
	Ended     bool
	Discarded bool
	Destroyed bool
	EndErr    error
}

// BeginRenderPass records desc and returns a recording pass.
func (e *Encoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	p := &Pass{Desc: *desc}
	e.Passes = append(e.Passes, p)
	return p
}

// EndEncoding finishes recording.
func (e *Encoder) EndEncoding() (hal.CommandBuffer, error) {
	if e.EndErr != nil {
		return nil, e.EndErr
	}
	e.Ended = true
	return &noop.Resource{}, nil
}

// DiscardEncoding marks the encoder discarded.
func (e *Encoder) DiscardEncoding() { e.Discarded = true }

// Destroy marks the encoder destroyed.
func (e *Encoder) Destroy() { e.Destroyed = true }

// Draw is a recorded draw call.
type Draw struct {
	VertexCount, InstanceCount, FirstVertex, FirstInstance uint32
}

// Pass records pipeline binds and draws.
type Pass struct {
	noop.RenderPassEncoder

	Desc     hal.RenderPassDescriptor
	Pipeline hal.RenderPipeline
	Draws    []Draw
	Ended    bool
}

// SetPipeline records the bound pipeline.
func (p *Pass) SetPipeline(pipeline hal.RenderPipeline) { p.Pipeline = pipeline }

// Draw records a draw call.
func (p *Pass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.Draws = append(p.Draws, Draw{vertexCount, instanceCount, firstVertex, firstInstance})
}

// End marks the pass ended.
func (p *Pass) End() { p.Ended = true }

// Queue records submissions and presentations. Completion lags submission
// by Lag submissions.
type Queue struct {
	noop.Queue

	Submitted [][]hal.CommandBuffer
	Presented int
	Lag       uint64
	SubmitErr error
}

// NewQueue returns a recording queue.
func NewQueue() *Queue { return &Queue{} }

// Submit records buffers and returns the submission index.
func (q *Queue) Submit(buffers []hal.CommandBuffer) (uint64, error) {
	if q.SubmitErr != nil {
		return 0, q.SubmitErr
	}
	q.Submitted = append(q.Submitted, buffers)
	return uint64(len(q.Submitted)), nil
}

// PollCompleted reports every submission but the last Lag as complete.
func (q *Queue) PollCompleted() uint64 {
	n := uint64(len(q.Submitted))
	if n < q.Lag {
		return 0
	}
	return n - q.Lag
}

// Present counts presentations.
func (q *Queue) Present(_ hal.Surface, _ hal.SurfaceTexture, _ []image.Rectangle) error {
	q.Presented++
	return nil
}

// Device returns the device of the first adapter.
func (b *Backend) Device() *Device {
	return b.Inst.Adapters[0].Adapter.(*Adapter).Device
}

// Queue returns the queue of the first adapter.
func (b *Backend) Queue() *Queue {
	return b.Inst.Adapters[0].Adapter.(*Adapter).Queue
}

// SRGBCaps returns capabilities whose second format is sRGB.
func SRGBCaps() *hal.SurfaceCapabilities {
	return &hal.SurfaceCapabilities{
		Formats: []gputypes.TextureFormat{
			gputypes.TextureFormatBGRA8Unorm,
			gputypes.TextureFormatBGRA8UnormSrgb,
			gputypes.TextureFormatRGBA8UnormSrgb,
		},
		PresentModes: []hal.PresentMode{hal.PresentModeFifo, hal.PresentModeMailbox},
		AlphaModes:   []hal.CompositeAlphaMode{hal.CompositeAlphaModeOpaque},
	}
}

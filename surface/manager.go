// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface owns the GPU device and the window surface it presents to.
//
// Initialize negotiates a backend, an adapter compatible with the window,
// a device and queue, and a surface configuration, then configures the
// surface before returning:
//
//	m, err := surface.Initialize(ctx, surface.WindowHandle{Display: d, Window: w}, 800, 600)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
// The surface format is the first sRGB format the surface supports, or its
// first format when none is sRGB. Present and alpha modes are the first
// supported ones.
//
// A Manager is not safe for concurrent use. It is driven from the window's
// event loop, and Resize completes before it returns so the next Acquire
// sees the new size.
package surface

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// WindowHandle holds the native handles a surface is created from.
// Both are zero for a headless window.
type WindowHandle struct {
	Display uintptr
	Window  uintptr
}

// Frame is an acquired surface texture. It must be passed to exactly one of
// Present or Discard.
type Frame struct {
	Texture    hal.SurfaceTexture
	Suboptimal bool
}

// Manager owns the backend instance, surface, adapter, device and queue for
// one window, and the surface configuration.
type Manager struct {
	backend  hal.Backend
	instance hal.Instance
	surface  hal.Surface
	adapter  hal.Adapter
	info     gputypes.AdapterInfo
	device   hal.Device
	queue    hal.Queue
	caps     hal.SurfaceCapabilities
	config   hal.SurfaceConfiguration

	scale  float64
	redraw func()
	closed bool
}

// Initialize creates and configures the surface for handle at width×height
// pixels. It blocks until the device is ready. ctx is checked between
// negotiation steps; on any failure everything created so far is released.
//
// Failures are fatal to the caller: ErrInvalidDimensions, ErrNoBackend,
// ErrNoAdapter, ErrDeviceCreation or ErrNoSurfaceFormat, possibly wrapping
// the backend's error, or ctx.Err().
func Initialize(ctx context.Context, handle WindowHandle, width, height uint32, opts ...Option) (*Manager, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	backends := []hal.Backend{o.backend}
	if o.backend == nil {
		var err error
		backends, err = candidates(Backends(), o.backendName)
		if err != nil {
			return nil, err
		}
	}

	m := &Manager{scale: o.scale, redraw: o.redraw}

	// Try backends in priority order until one exposes a compatible adapter.
	var lastErr error
	for _, b := range backends {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.connect(b, handle, o.power); err != nil {
			slogger().Debug("backend rejected", "backend", BackendName(b.Variant()), "error", err)
			m.release()
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		return nil, lastErr
	}

	if err := ctx.Err(); err != nil {
		m.release()
		return nil, err
	}

	open, err := m.adapter.Open(o.features, o.limits)
	if err != nil {
		m.release()
		return nil, fmt.Errorf("%w: %s: %w", ErrDeviceCreation, m.info.Name, err)
	}
	m.device = open.Device
	m.queue = open.Queue

	if err := ctx.Err(); err != nil {
		m.release()
		return nil, err
	}

	if err := m.chooseConfig(width, height); err != nil {
		m.release()
		return nil, err
	}
	if err := m.surface.Configure(m.device, &m.config); err != nil {
		m.release()
		return nil, fmt.Errorf("surface: configure %dx%d: %w", width, height, err)
	}

	slogger().Info("surface configured",
		"backend", BackendName(m.backend.Variant()),
		"adapter", m.info.Name,
		"width", m.config.Width,
		"height", m.config.Height,
		"format", m.config.Format.String(),
		"present_mode", m.config.PresentMode.String(),
	)
	return m, nil
}

// connect creates the instance and window surface on b and selects an
// adapter that can present to it.
func (m *Manager) connect(b hal.Backend, handle WindowHandle, power gputypes.PowerPreference) error {
	m.backend = b
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNoBackend, BackendName(b.Variant()), err)
	}
	m.instance = instance

	surface, err := instance.CreateSurface(handle.Display, handle.Window)
	if err != nil {
		return fmt.Errorf("surface: create surface on %s: %w", BackendName(b.Variant()), err)
	}
	m.surface = surface

	var compatible []hal.ExposedAdapter
	for _, a := range instance.EnumerateAdapters(surface) {
		caps := a.Adapter.SurfaceCapabilities(surface)
		if caps == nil || len(caps.Formats) == 0 {
			continue
		}
		compatible = append(compatible, a)
	}
	selected := pickAdapter(compatible, power)
	if selected == nil {
		return fmt.Errorf("%w: backend %s", ErrNoAdapter, BackendName(b.Variant()))
	}
	m.adapter = selected.Adapter
	m.info = selected.Info
	m.caps = *selected.Adapter.SurfaceCapabilities(surface)
	return nil
}

// pickAdapter orders adapters by power preference. With no preference the
// first adapter wins.
func pickAdapter(adapters []hal.ExposedAdapter, power gputypes.PowerPreference) *hal.ExposedAdapter {
	if len(adapters) == 0 {
		return nil
	}
	var want gputypes.DeviceType
	switch power {
	case gputypes.PowerPreferenceHighPerformance:
		want = gputypes.DeviceTypeDiscreteGPU
	case gputypes.PowerPreferenceLowPower:
		want = gputypes.DeviceTypeIntegratedGPU
	default:
		return &adapters[0]
	}
	for i := range adapters {
		if adapters[i].Info.DeviceType == want {
			return &adapters[i]
		}
	}
	return &adapters[0]
}

// chooseConfig fills m.config from the queried capabilities.
func (m *Manager) chooseConfig(width, height uint32) error {
	if len(m.caps.Formats) == 0 {
		return ErrNoSurfaceFormat
	}
	format := m.caps.Formats[0]
	for _, f := range m.caps.Formats {
		if f.IsSrgb() {
			format = f
			break
		}
	}

	present := hal.PresentModeFifo
	if len(m.caps.PresentModes) > 0 {
		present = m.caps.PresentModes[0]
	}
	alpha := hal.CompositeAlphaModeOpaque
	if len(m.caps.AlphaModes) > 0 {
		alpha = m.caps.AlphaModes[0]
	}

	m.config = hal.SurfaceConfiguration{
		Width:       width,
		Height:      height,
		Format:      format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: present,
		AlphaMode:   alpha,
	}
	return nil
}

// Resize reconfigures the surface to width×height before returning.
//
// A zero width or height is ignored: the configuration is left unchanged
// and nil is returned, so minimized windows keep their last valid size.
// If the surface rejects the new size, the previous configuration is kept
// and the error is returned.
func (m *Manager) Resize(width, height uint32) error {
	if m.closed {
		return ErrClosed
	}
	if width == 0 || height == 0 {
		slogger().Debug("ignoring zero-size resize", "width", width, "height", height)
		return nil
	}

	prev := m.config
	m.config.Width = width
	m.config.Height = height
	if err := m.surface.Configure(m.device, &m.config); err != nil {
		m.config = prev
		return fmt.Errorf("surface: resize to %dx%d: %w", width, height, err)
	}
	slogger().Debug("surface resized", "width", width, "height", height)
	return nil
}

// Reconfigure applies the current configuration again. It is the recovery
// step for lost and outdated surfaces.
func (m *Manager) Reconfigure() error {
	if m.closed {
		return ErrClosed
	}
	if err := m.surface.Configure(m.device, &m.config); err != nil {
		return fmt.Errorf("surface: reconfigure: %w", err)
	}
	slogger().Warn("surface reconfigured", "width", m.config.Width, "height", m.config.Height)
	return nil
}

// Acquire returns the next presentable frame. Backend errors are wrapped
// and can be classified with Classify.
func (m *Manager) Acquire() (*Frame, error) {
	if m.closed {
		return nil, ErrClosed
	}
	acquired, err := m.surface.AcquireTexture(nil)
	if err != nil {
		return nil, fmt.Errorf("surface: acquire texture: %w", err)
	}
	if acquired.Suboptimal {
		slogger().Debug("acquired suboptimal frame")
	}
	return &Frame{Texture: acquired.Texture, Suboptimal: acquired.Suboptimal}, nil
}

// Present queues frame for display.
func (m *Manager) Present(frame *Frame) error {
	if m.closed {
		return ErrClosed
	}
	if err := m.queue.Present(m.surface, frame.Texture, nil); err != nil {
		return fmt.Errorf("surface: present: %w", err)
	}
	return nil
}

// Discard releases frame without presenting it.
func (m *Manager) Discard(frame *Frame) {
	if m.closed || frame == nil {
		return
	}
	m.surface.DiscardTexture(frame.Texture)
}

// Config returns a copy of the current surface configuration.
func (m *Manager) Config() hal.SurfaceConfiguration { return m.config }

// Capabilities returns a copy of the surface capabilities queried at
// Initialize.
func (m *Manager) Capabilities() hal.SurfaceCapabilities { return m.caps }

// Info returns the selected adapter's metadata.
func (m *Manager) Info() gputypes.AdapterInfo { return m.info }

// Backend returns the variant of the selected backend.
func (m *Manager) Backend() gputypes.Backend { return m.backend.Variant() }

// HalDevice returns the device.
func (m *Manager) HalDevice() hal.Device { return m.device }

// HalQueue returns the queue.
func (m *Manager) HalQueue() hal.Queue { return m.queue }

// Close waits for the device to go idle and releases the surface, device,
// adapter and instance in reverse creation order. It is safe to call more
// than once.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	if m.device != nil {
		if err := m.device.WaitIdle(); err != nil {
			slogger().Warn("wait idle failed", "error", err)
		}
		if m.surface != nil {
			m.surface.Unconfigure(m.device)
		}
	}
	m.release()
}

// release destroys whatever has been created, newest first.
func (m *Manager) release() {
	if m.surface != nil {
		m.surface.Destroy()
		m.surface = nil
	}
	if m.device != nil {
		m.device.Destroy()
		m.device = nil
		m.queue = nil
	}
	if m.adapter != nil {
		m.adapter.Destroy()
		m.adapter = nil
	}
	if m.instance != nil {
		m.instance.Destroy()
		m.instance = nil
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

var (
	_ gpucontext.DeviceProvider = (*Manager)(nil)
	_ gpucontext.WindowProvider = (*Manager)(nil)
)

// Device returns the hal.Device as a gpucontext.Device.
func (m *Manager) Device() gpucontext.Device { return m.device }

// Queue returns the hal.Queue as a gpucontext.Queue.
func (m *Manager) Queue() gpucontext.Queue { return m.queue }

// Adapter returns the hal.Adapter as a gpucontext.Adapter.
func (m *Manager) Adapter() gpucontext.Adapter { return m.adapter }

// SurfaceFormat returns the configured surface format.
func (m *Manager) SurfaceFormat() gputypes.TextureFormat { return m.config.Format }

// AdapterInfo returns the adapter name and type.
func (m *Manager) AdapterInfo() gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch m.info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: m.info.Name, Type: t}
}

// Size returns the configured surface size in pixels.
func (m *Manager) Size() (width, height int) {
	return int(m.config.Width), int(m.config.Height)
}

// ScaleFactor returns the scale set with WithScaleFactor, 1 by default.
func (m *Manager) ScaleFactor() float64 { return m.scale }

// RequestRedraw calls the function set with WithRedrawFunc, if any.
func (m *Manager) RequestRedraw() {
	if m.redraw != nil {
		m.redraw()
	}
}

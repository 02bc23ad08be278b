// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Option configures Initialize.
//
// Example:
//
//	m, err := surface.Initialize(ctx, handle, 800, 600,
//	    surface.WithBackendName("vulkan"),
//	    surface.WithPowerPreference(gputypes.PowerPreferenceHighPerformance),
//	)
type Option func(*options)

type options struct {
	backend     hal.Backend
	backendName string
	power       gputypes.PowerPreference
	features    gputypes.Features
	limits      gputypes.Limits
	scale       float64
	redraw      func()
}

func defaultOptions() options {
	return options{
		power:  gputypes.PowerPreferenceNone,
		limits: gputypes.DefaultLimits(),
		scale:  1,
	}
}

// WithBackend uses b directly, bypassing the hal registry.
// It takes precedence over WithBackendName.
func WithBackend(b hal.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithBackendName selects a registered backend by name ("vulkan", "metal",
// "dx12", "gl" or "empty"). An empty name selects by DefaultPriority.
func WithBackendName(name string) Option {
	return func(o *options) {
		o.backendName = name
	}
}

// WithPowerPreference orders compatible adapters. High performance prefers
// discrete GPUs, low power prefers integrated GPUs.
func WithPowerPreference(p gputypes.PowerPreference) Option {
	return func(o *options) {
		o.power = p
	}
}

// WithFeatures requests optional device features.
func WithFeatures(f gputypes.Features) Option {
	return func(o *options) {
		o.features = f
	}
}

// WithLimits sets the device limits. The default is gputypes.DefaultLimits.
func WithLimits(l gputypes.Limits) Option {
	return func(o *options) {
		o.limits = l
	}
}

// WithScaleFactor sets the DPI scale reported through ScaleFactor.
// Values <= 0 are ignored.
func WithScaleFactor(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.scale = s
		}
	}
}

// WithRedrawFunc sets the callback invoked by RequestRedraw, normally the
// window's redraw request.
func WithRedrawFunc(fn func()) Option {
	return func(o *options) {
		o.redraw = fn
	}
}

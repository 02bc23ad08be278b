// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tricolor

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/tricolor/input"
	"github.com/gogpu/tricolor/shader"
	"github.com/gogpu/tricolor/surface"
)

// Option configures a State during creation.
//
// Example:
//
//	// Defaults: "main" at startup, Space toggles to "rainbow".
//	s, err := tricolor.New(ctx, handle, 800, 600)
//
//	// Force the GL backend and toggle with Tab.
//	s, err := tricolor.New(ctx, handle, 800, 600,
//	    tricolor.WithSurfaceOptions(surface.WithBackendName("gl")),
//	    tricolor.WithToggleKey(gpucontext.KeyTab),
//	)
type Option func(*options)

type options struct {
	surface  []surface.Option
	bindings input.Bindings
	asset    *shader.Asset
}

func defaultOptions() options {
	return options{
		bindings: input.DefaultBindings(),
	}
}

// WithSurfaceOptions passes options through to surface.Initialize.
// Repeated calls accumulate.
func WithSurfaceOptions(opts ...surface.Option) Option {
	return func(o *options) {
		o.surface = append(o.surface, opts...)
	}
}

// WithVariants sets the variant active at startup and while the toggle key
// is held, and the variant selected when it is released. Both must name
// variants of the shader asset or New fails.
func WithVariants(primary, alternate string) Option {
	return func(o *options) {
		o.bindings.Primary = primary
		o.bindings.Alternate = alternate
	}
}

// WithToggleKey sets the key that switches variants.
func WithToggleKey(k gpucontext.Key) Option {
	return func(o *options) {
		o.bindings.ToggleKey = k
	}
}

// WithAsset replaces the embedded shader.
func WithAsset(a *shader.Asset) Option {
	return func(o *options) {
		o.asset = a
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tricolor

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tricolor/input"
	"github.com/gogpu/tricolor/pipeline"
	"github.com/gogpu/tricolor/surface"
	"github.com/gogpu/wgpu/hal"
)

// State is the render state of one window: its surface, the active
// pipeline, and the input-driven visual state.
//
// State is not safe for concurrent use.
type State struct {
	surface  *surface.Manager
	factory  *pipeline.Factory
	bindings input.Bindings

	input    input.State
	pipeline *pipeline.Pipeline

	// Work submitted but not yet reported complete by the queue.
	inFlight []inFlight

	// Replaced pipelines wait here until the last submission that may
	// reference them completes.
	graves []grave

	lastSubmit uint64
	frames     uint64
	closed     bool
}

// grave is a replaced pipeline and the submission index after which it is
// no longer referenced.
type grave struct {
	pipeline *pipeline.Pipeline
	after    uint64
}

// New initializes the surface for the window described by handle, builds
// the pipeline for the primary variant and returns the initial state:
// blue clear color, pointer up, primary variant.
//
// Both bound variants are checked against the shader before any GPU object
// is created. width and height must be non-zero.
func New(ctx context.Context, handle surface.WindowHandle, width, height uint32, opts ...Option) (*State, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	factory := pipeline.NewFactory(o.asset)
	for _, v := range []string{o.bindings.Primary, o.bindings.Alternate} {
		if !factory.Asset().HasVariant(v) {
			return nil, fmt.Errorf("%w: %q not in %s", ErrUnknownVariant, v, factory.Asset().Name())
		}
	}

	mgr, err := surface.Initialize(ctx, handle, width, height, o.surface...)
	if err != nil {
		return nil, err
	}

	config := mgr.Config()
	p, err := factory.Build(mgr.HalDevice(), &config, o.bindings.Primary)
	if err != nil {
		mgr.Close()
		return nil, err
	}

	s := &State{
		surface:  mgr,
		factory:  factory,
		bindings: o.bindings,
		input:    input.Initial(o.bindings),
		pipeline: p,
	}
	slogger().Info("state ready",
		"backend", surface.BackendName(mgr.Backend()),
		"adapter", mgr.Info().Name,
		"variant", p.Variant())
	return s, nil
}

// Input applies ev and reports whether the window should repaint.
//
// Resize events resize the surface and never request a repaint. When the
// event selects a different variant, the new pipeline is built before any
// state changes; if the build fails the state is left as it was and the
// error is returned.
func (s *State) Input(ev input.Event) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	if r, ok := ev.(input.Resize); ok {
		return false, s.Resize(r.Width, r.Height)
	}

	w, h := s.Size()
	next, repaint := input.Translate(s.input, ev, w, h, s.bindings)
	if next.Variant == s.input.Variant {
		s.input = next
		return repaint, nil
	}

	config := s.surface.Config()
	p, err := s.factory.Build(s.surface.HalDevice(), &config, next.Variant)
	if err != nil {
		return false, err
	}
	s.bury(s.pipeline)
	s.pipeline = p
	s.input = next
	slogger().Info("variant switched", "variant", next.Variant)
	return repaint, nil
}

// bury schedules p for destruction once the latest submission retires.
func (s *State) bury(p *pipeline.Pipeline) {
	if p == nil {
		return
	}
	s.graves = append(s.graves, grave{pipeline: p, after: s.lastSubmit})
}

// Resize reconfigures the surface for a new window size. A zero dimension
// is ignored and the current configuration kept.
func (s *State) Resize(width, height uint32) error {
	if s.closed {
		return ErrClosed
	}
	return s.surface.Resize(width, height)
}

// Reconfigure reapplies the current surface configuration, typically after
// Render reported a lost or outdated surface.
func (s *State) Reconfigure() error {
	if s.closed {
		return ErrClosed
	}
	return s.surface.Reconfigure()
}

// Update advances per-frame state. Nothing in the scene animates on the
// CPU, so it does nothing today.
func (s *State) Update() {}

// ClearColor returns the color the next frame is cleared with.
func (s *State) ClearColor() gputypes.Color { return s.input.ClearColor }

// PointerDown reports whether the next pointer move samples the color.
func (s *State) PointerDown() bool { return s.input.PointerDown }

// Variant returns the active shader variant.
func (s *State) Variant() string { return s.input.Variant }

// Pipeline returns the active pipeline.
func (s *State) Pipeline() *pipeline.Pipeline { return s.pipeline }

// Surface returns the surface manager.
func (s *State) Surface() *surface.Manager { return s.surface }

// Size returns the configured surface size in pixels.
func (s *State) Size() (width, height uint32) {
	c := s.surface.Config()
	return c.Width, c.Height
}

// Frames returns the number of frames presented.
func (s *State) Frames() uint64 { return s.frames }

// Close waits for the GPU, releases in-flight work and pipelines, then
// closes the surface. It is safe to call more than once.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true

	device := s.surface.HalDevice()
	if err := device.WaitIdle(); err != nil {
		slogger().Warn("wait idle failed", "error", err)
	}
	s.retire(device, ^uint64(0))

	if s.pipeline != nil {
		s.pipeline.Destroy()
		s.pipeline = nil
	}
	s.surface.Close()
}

// retire releases in-flight frames and replaced pipelines whose
// submissions are complete up to and including completed.
func (s *State) retire(device hal.Device, completed uint64) {
	kept := s.inFlight[:0]
	for _, f := range s.inFlight {
		if f.index > completed {
			kept = append(kept, f)
			continue
		}
		f.release(device)
	}
	clear(s.inFlight[len(kept):])
	s.inFlight = kept

	graves := s.graves[:0]
	for _, g := range s.graves {
		if g.after > completed {
			graves = append(graves, g)
			continue
		}
		g.pipeline.Destroy()
	}
	clear(s.graves[len(graves):])
	s.graves = graves
}

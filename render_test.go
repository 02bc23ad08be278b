// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tricolor

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tricolor/internal/haltest"
	"github.com/gogpu/tricolor/surface"
	"github.com/gogpu/wgpu/hal"
)

func TestRenderRecordsOnePass(t *testing.T) {
	s, b := newTestState(t)
	if err := s.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	dev, q := b.Device(), b.Queue()

	if len(dev.Views) != 1 {
		t.Fatalf("created %d views, want 1", len(dev.Views))
	}
	view := dev.Views[0]
	if view.Format != gputypes.TextureFormatBGRA8UnormSrgb || view.Dimension != gputypes.TextureViewDimension2D {
		t.Errorf("view = %+v", view)
	}

	if len(dev.Encoders) != 1 {
		t.Fatalf("created %d encoders, want 1", len(dev.Encoders))
	}
	enc := dev.Encoders[0]
	if enc.Label != "Render Encoder" || !enc.Ended {
		t.Errorf("encoder label %q ended %v", enc.Label, enc.Ended)
	}
	if len(enc.Passes) != 1 {
		t.Fatalf("recorded %d passes, want 1", len(enc.Passes))
	}

	pass := enc.Passes[0]
	if len(pass.Desc.ColorAttachments) != 1 {
		t.Fatalf("pass has %d color attachments, want 1", len(pass.Desc.ColorAttachments))
	}
	att := pass.Desc.ColorAttachments[0]
	if att.LoadOp != gputypes.LoadOpClear || att.StoreOp != gputypes.StoreOpStore {
		t.Errorf("load/store = %v/%v, want clear/store", att.LoadOp, att.StoreOp)
	}
	if att.ClearValue != gputypes.ColorBlue {
		t.Errorf("clear value = %v, want blue", att.ClearValue)
	}
	if pass.Desc.DepthStencilAttachment != nil {
		t.Error("pass has a depth attachment")
	}
	if pass.Pipeline != s.Pipeline().Raw() {
		t.Error("active pipeline not bound")
	}
	want := []haltest.Draw{{VertexCount: 3, InstanceCount: 1}}
	if len(pass.Draws) != 1 || pass.Draws[0] != want[0] {
		t.Errorf("draws = %+v, want %+v", pass.Draws, want)
	}
	if !pass.Ended {
		t.Error("pass not ended")
	}

	if len(q.Submitted) != 1 || len(q.Submitted[0]) != 1 {
		t.Errorf("submissions = %v, want one with one buffer", q.Submitted)
	}
	if q.Presented != 1 || s.Frames() != 1 {
		t.Errorf("presented %d, frames %d; want 1, 1", q.Presented, s.Frames())
	}
}

func TestRenderAcquireErrorDrawsNothing(t *testing.T) {
	tests := []struct {
		err  error
		want surface.Recovery
	}{
		{hal.ErrSurfaceLost, surface.RecoveryReconfigure},
		{hal.ErrSurfaceOutdated, surface.RecoveryReconfigure},
		{hal.ErrTimeout, surface.RecoverySkip},
		{hal.ErrDeviceOutOfMemory, surface.RecoveryFatal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s, b := newTestState(t)
			b.Inst.Surface.AcquireErrs = []error{tt.err}

			err := s.Render()
			if !errors.Is(err, tt.err) {
				t.Fatalf("Render() = %v, want %v", err, tt.err)
			}
			if got := surface.Classify(err); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
			if len(b.Device().Encoders) != 0 || b.Queue().Presented != 0 || s.Frames() != 0 {
				t.Error("frame recorded after failed acquisition")
			}

			// The next frame renders normally.
			if err := s.Render(); err != nil {
				t.Fatalf("second Render() = %v", err)
			}
			if s.Frames() != 1 {
				t.Errorf("Frames = %d, want 1", s.Frames())
			}
		})
	}
}

func TestRenderLostSurfaceReconfigure(t *testing.T) {
	s, b := newTestState(t)
	b.Inst.Surface.AcquireErrs = []error{hal.ErrSurfaceLost}

	err := s.Render()
	if surface.Classify(err) != surface.RecoveryReconfigure {
		t.Fatalf("Render() = %v, want a reconfigurable error", err)
	}
	if err := s.Reconfigure(); err != nil {
		t.Fatal(err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render() after reconfigure = %v", err)
	}
	if n := len(b.Inst.Surface.Configs); n != 2 {
		t.Errorf("configured %d times, want 2", n)
	}
}

func TestRenderEncoderFailureDiscardsFrame(t *testing.T) {
	s, b := newTestState(t)
	encErr := errors.New("out of encoders")
	b.Device().EncoderErr = encErr

	if err := s.Render(); !errors.Is(err, encErr) {
		t.Fatalf("Render() = %v, want %v", err, encErr)
	}
	if b.Inst.Surface.Discarded != 1 {
		t.Errorf("discarded %d frames, want 1", b.Inst.Surface.Discarded)
	}
	if b.Device().DestroyedViews != 1 {
		t.Errorf("destroyed %d views, want 1", b.Device().DestroyedViews)
	}
	if b.Queue().Presented != 0 || s.Frames() != 0 {
		t.Error("frame presented after encoder failure")
	}
}

func TestRenderSubmitFailureDiscardsFrame(t *testing.T) {
	s, b := newTestState(t)
	submitErr := errors.New("queue full")
	b.Queue().SubmitErr = submitErr

	if err := s.Render(); !errors.Is(err, submitErr) {
		t.Fatalf("Render() = %v, want %v", err, submitErr)
	}
	dev := b.Device()
	if b.Inst.Surface.Discarded != 1 {
		t.Errorf("discarded %d frames, want 1", b.Inst.Surface.Discarded)
	}
	if dev.FreedBuffers != 1 || dev.DestroyedViews != 1 || !dev.Encoders[0].Destroyed {
		t.Errorf("freed %d buffers, %d views, encoder destroyed %v",
			dev.FreedBuffers, dev.DestroyedViews, dev.Encoders[0].Destroyed)
	}
	if b.Queue().Presented != 0 {
		t.Error("frame presented after submit failure")
	}
}

func TestRenderRetiresCompletedWork(t *testing.T) {
	s, b := newTestState(t)
	b.Queue().Lag = 1
	dev := b.Device()

	for range 3 {
		if err := s.Render(); err != nil {
			t.Fatal(err)
		}
	}
	// Before the third submit only submission 1 had completed.
	if dev.FreedBuffers != 1 || dev.DestroyedViews != 1 {
		t.Errorf("freed %d buffers and %d views, want 1 each", dev.FreedBuffers, dev.DestroyedViews)
	}
	if !dev.Encoders[0].Destroyed || dev.Encoders[1].Destroyed {
		t.Error("encoders retired out of order")
	}

	s.Close()
	if dev.FreedBuffers != 3 || dev.DestroyedViews != 3 {
		t.Errorf("after Close freed %d buffers and %d views, want 3 each", dev.FreedBuffers, dev.DestroyedViews)
	}
}

func TestRenderSuboptimalFramePresents(t *testing.T) {
	s, b := newTestState(t)
	b.Inst.Surface.Suboptimal = true
	if err := s.Render(); err != nil {
		t.Fatal(err)
	}
	if b.Queue().Presented != 1 {
		t.Errorf("presented %d, want 1", b.Queue().Presented)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tricolor

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tricolor/pipeline"
	"github.com/gogpu/tricolor/surface"
	"github.com/gogpu/wgpu/hal"
)

// inFlight is one submitted frame's GPU objects, freed once the queue
// reports its submission complete.
type inFlight struct {
	index   uint64
	cmd     hal.CommandBuffer
	view    hal.TextureView
	encoder hal.CommandEncoder
}

func (f inFlight) release(device hal.Device) {
	if f.cmd != nil {
		device.FreeCommandBuffer(f.cmd)
	}
	if f.view != nil {
		device.DestroyTextureView(f.view)
	}
	if f.encoder != nil {
		f.encoder.Destroy()
	}
}

// Render draws one frame: it acquires the next surface texture, clears it
// to ClearColor, draws the triangle with the active pipeline, submits the
// work and presents.
//
// Acquisition errors are returned wrapped and nothing is drawn; classify
// them with surface.Classify. Render never retries or reconfigures on its
// own. If recording or submission fails the acquired frame is discarded.
func (s *State) Render() error {
	if s.closed {
		return ErrClosed
	}
	device := s.surface.HalDevice()
	queue := s.surface.HalQueue()
	s.retire(device, queue.PollCompleted())

	frame, err := s.surface.Acquire()
	if err != nil {
		return err
	}

	f, err := s.encode(device, frame)
	if err != nil {
		f.release(device)
		s.surface.Discard(frame)
		return err
	}

	idx, err := queue.Submit([]hal.CommandBuffer{f.cmd})
	if err != nil {
		f.release(device)
		s.surface.Discard(frame)
		return fmt.Errorf("tricolor: submit: %w", err)
	}
	f.index = idx
	s.lastSubmit = idx
	s.inFlight = append(s.inFlight, f)

	if err := s.surface.Present(frame); err != nil {
		return err
	}
	s.frames++
	return nil
}

// encode records the frame's single render pass. On error the returned
// inFlight holds whatever was created so the caller can release it.
func (s *State) encode(device hal.Device, frame *surface.Frame) (inFlight, error) {
	var f inFlight
	config := s.surface.Config()

	view, err := device.CreateTextureView(frame.Texture, &hal.TextureViewDescriptor{
		Label:           "Surface View",
		Format:          config.Format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return f, fmt.Errorf("tricolor: create view: %w", err)
	}
	f.view = view

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "Render Encoder"})
	if err != nil {
		return f, fmt.Errorf("tricolor: create encoder: %w", err)
	}
	f.encoder = encoder

	if err := encoder.BeginEncoding("Render Encoder"); err != nil {
		return f, fmt.Errorf("tricolor: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "Render Pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: s.input.ClearColor,
		}},
	})
	rp.SetPipeline(s.pipeline.Raw())
	rp.Draw(pipeline.VertexCount, 1, 0, 0)
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return f, fmt.Errorf("tricolor: end encoding: %w", err)
	}
	f.cmd = cmd
	return f, nil
}

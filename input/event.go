// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input turns window events into render state.
//
// Events use the gpucontext vocabulary (pointer events, keys, modifiers).
// Translate is a pure function from (state, event) to (state, repaint):
//
//	s := input.Initial(input.DefaultBindings())
//	s, repaint := input.Translate(s, input.Pointer{PointerEvent: ev}, 800, 600, b)
//
// Listen adapts callback-style event sources into a single ordered stream
// of Events for the caller's event loop.
package input

import "github.com/gogpu/gpucontext"

// Event is a window event. The set of implementations is closed.
type Event interface {
	isEvent()
}

// Pointer is a pointer event: enter, leave, down, up, move or cancel.
type Pointer struct {
	gpucontext.PointerEvent
}

// Key is a key press (Pressed true) or release.
type Key struct {
	Key     gpucontext.Key
	Mods    gpucontext.Modifiers
	Pressed bool
}

// Resize reports a new surface size in pixels. Zero sizes are reported
// as-is; minimized windows produce them.
type Resize struct {
	Width, Height uint32
}

// Scroll is a scroll wheel or touchpad event.
type Scroll struct {
	gpucontext.ScrollEvent
}

// Focus reports a window focus change.
type Focus struct {
	Focused bool
}

// Text is committed text input.
type Text struct {
	Text string
}

func (Pointer) isEvent() {}
func (Key) isEvent()     {}
func (Resize) isEvent()  {}
func (Scroll) isEvent()  {}
func (Focus) isEvent()   {}
func (Text) isEvent()    {}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Variant names of the embedded shader.
const (
	VariantMain    = "main"
	VariantRainbow = "rainbow"
)

// State is the visual state input can change.
type State struct {
	// ClearColor fills the frame before the triangle is drawn.
	ClearColor gputypes.Color

	// PointerDown is set by a primary button press and cleared by the next
	// move, so each press samples the color once.
	PointerDown bool

	// Variant names the active shader variant.
	Variant string
}

// Bindings names the toggle key and the two variants it switches between.
type Bindings struct {
	ToggleKey gpucontext.Key

	// Primary is active while the toggle key is held and at startup.
	Primary string

	// Alternate becomes active when the toggle key is released.
	Alternate string
}

// DefaultBindings toggles between "main" and "rainbow" with Space.
func DefaultBindings() Bindings {
	return Bindings{
		ToggleKey: gpucontext.KeySpace,
		Primary:   VariantMain,
		Alternate: VariantRainbow,
	}
}

// Initial returns the startup state: blue, pointer up, primary variant.
func Initial(b Bindings) State {
	return State{
		ClearColor: gputypes.ColorBlue,
		Variant:    b.Primary,
	}
}

// Translate applies ev to s for a surface of width×height pixels and
// reports whether the window should repaint.
//
//	enter              → green, repaint
//	leave              → black, pointer up, repaint
//	primary down       → pointer down
//	other button down  → pointer up
//	move, pointer down → (x/width, y/height, 1, 1), pointer up, repaint
//	toggle key release → alternate variant, repaint
//	toggle key press   → primary variant, repaint
//
// Every other event, including button release, pointer cancel and moves
// with the pointer up, leaves s unchanged and returns false.
func Translate(s State, ev Event, width, height uint32, b Bindings) (State, bool) {
	switch ev := ev.(type) {
	case Pointer:
		return translatePointer(s, ev.PointerEvent, width, height)
	case Key:
		if ev.Key != b.ToggleKey {
			return s, false
		}
		if ev.Pressed {
			s.Variant = b.Primary
		} else {
			s.Variant = b.Alternate
		}
		return s, true
	default:
		return s, false
	}
}

func translatePointer(s State, ev gpucontext.PointerEvent, width, height uint32) (State, bool) {
	switch ev.Type {
	case gpucontext.PointerEnter:
		s.ClearColor = gputypes.ColorGreen
		return s, true
	case gpucontext.PointerLeave:
		s.PointerDown = false
		s.ClearColor = gputypes.ColorBlack
		return s, true
	case gpucontext.PointerDown:
		s.PointerDown = ev.Button == gpucontext.ButtonLeft
		return s, false
	case gpucontext.PointerMove:
		if !s.PointerDown || width == 0 || height == 0 {
			return s, false
		}
		s.ClearColor = gputypes.Color{
			R: ev.X / float64(width),
			G: ev.Y / float64(height),
			B: 1,
			A: 1,
		}
		s.PointerDown = false
		return s, true
	default:
		return s, false
	}
}

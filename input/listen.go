// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import "github.com/gogpu/gpucontext"

// Listen registers callbacks on events and pointers that forward every
// event to sink in delivery order.
//
// pointers may be nil. Then events is used if it also implements
// gpucontext.PointerEventSource; otherwise pointer events are synthesized
// from the basic mouse callbacks, which carry no enter or leave events.
// Detailed scroll events are used when events implements
// gpucontext.ScrollEventSource.
func Listen(events gpucontext.EventSource, pointers gpucontext.PointerEventSource, sink func(Event)) {
	if events == nil {
		if pointers != nil {
			pointers.OnPointer(func(ev gpucontext.PointerEvent) { sink(Pointer{ev}) })
		}
		return
	}

	events.OnKeyPress(func(k gpucontext.Key, mods gpucontext.Modifiers) {
		sink(Key{Key: k, Mods: mods, Pressed: true})
	})
	events.OnKeyRelease(func(k gpucontext.Key, mods gpucontext.Modifiers) {
		sink(Key{Key: k, Mods: mods})
	})
	events.OnResize(func(w, h int) {
		sink(Resize{Width: clampDim(w), Height: clampDim(h)})
	})
	events.OnFocus(func(focused bool) { sink(Focus{Focused: focused}) })
	events.OnTextInput(func(text string) { sink(Text{Text: text}) })

	if ses, ok := events.(gpucontext.ScrollEventSource); ok {
		ses.OnScrollEvent(func(ev gpucontext.ScrollEvent) { sink(Scroll{ev}) })
	} else {
		events.OnScroll(func(dx, dy float64) {
			sink(Scroll{gpucontext.ScrollEvent{DeltaX: dx, DeltaY: dy}})
		})
	}

	if pointers == nil {
		pointers, _ = events.(gpucontext.PointerEventSource)
	}
	if pointers != nil {
		pointers.OnPointer(func(ev gpucontext.PointerEvent) { sink(Pointer{ev}) })
		return
	}

	events.OnMouseMove(func(x, y float64) {
		sink(mousePointer(gpucontext.PointerMove, gpucontext.ButtonNone, x, y))
	})
	events.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		sink(mousePointer(gpucontext.PointerDown, mouseButton(b), x, y))
	})
	events.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) {
		sink(mousePointer(gpucontext.PointerUp, mouseButton(b), x, y))
	})
}

func mousePointer(t gpucontext.PointerEventType, b gpucontext.Button, x, y float64) Pointer {
	return Pointer{gpucontext.PointerEvent{
		Type:        t,
		PointerID:   1,
		X:           x,
		Y:           y,
		PointerType: gpucontext.PointerTypeMouse,
		IsPrimary:   true,
		Button:      b,
		Width:       1,
		Height:      1,
	}}
}

func mouseButton(b gpucontext.MouseButton) gpucontext.Button {
	switch b {
	case gpucontext.MouseButtonLeft:
		return gpucontext.ButtonLeft
	case gpucontext.MouseButtonRight:
		return gpucontext.ButtonRight
	case gpucontext.MouseButtonMiddle:
		return gpucontext.ButtonMiddle
	case gpucontext.MouseButton4:
		return gpucontext.ButtonX1
	case gpucontext.MouseButton5:
		return gpucontext.ButtonX2
	default:
		return gpucontext.ButtonNone
	}
}

func clampDim(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tricolor drives one window surface that draws a procedural
// triangle over a clear color chosen by pointer input.
//
// # Overview
//
// A State owns the GPU device and window surface, the active render
// pipeline, and the visual state input can change. The caller's event loop
// feeds it events and asks it to render:
//
//	s, err := tricolor.New(ctx, surface.WindowHandle{Display: d, Window: w}, 800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	for ev := range events {
//	    repaint, err := s.Input(ev)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if repaint {
//	        window.RequestRedraw()
//	    }
//	}
//
// # Input
//
// Entering the window clears to green and leaving it clears to black.
// Pressing the primary button and then moving samples the clear color from
// the pointer position once per press. Releasing Space switches to the
// "rainbow" shader variant and pressing it switches back to "main".
// See input.Translate for the full table.
//
// # Rendering
//
// Render acquires the next frame, clears it, draws three vertices with the
// active pipeline, submits and presents. Acquisition errors are returned
// unchanged in meaning and the caller decides what to do:
//
//	switch err := s.Render(); surface.Classify(err) {
//	case surface.RecoveryReconfigure:
//	    _ = s.Reconfigure()
//	case surface.RecoverySkip:
//	    // try again next frame
//	case surface.RecoveryFatal:
//	    log.Fatal(err)
//	}
//
// # Logging
//
// tricolor is silent by default. SetLogger enables structured logging for
// this package and its sub-packages.
//
// # Concurrency
//
// A State is not safe for concurrent use. It belongs to the goroutine that
// runs the window's event loop.
package tricolor

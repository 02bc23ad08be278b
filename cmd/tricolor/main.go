// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command tricolor drives a tricolor State through a scripted event
// sequence without a window and prints the resulting state.
//
// Usage:
//
//	tricolor [-backend name] [-width w] [-height h] [-script file.yaml] [-frames n] [-v]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/tricolor"
	"github.com/gogpu/tricolor/surface"
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

func main() {
	var (
		backend = flag.String("backend", "empty", "HAL backend (vulkan, metal, dx12, gl, empty); blank picks the best available")
		width   = flag.Uint("width", 800, "surface width")
		height  = flag.Uint("height", 600, "surface height")
		script  = flag.String("script", "", "YAML event script (default: built-in session)")
		frames  = flag.Int("frames", 0, "extra frames to render after the script")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	tricolor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	sc := DefaultScript()
	if *script != "" {
		var err error
		if sc, err = LoadScript(*script); err != nil {
			log.Fatal(err)
		}
	}
	for range *frames {
		sc.Steps = append(sc.Steps, Step{Event: "render"})
	}

	var opts []tricolor.Option
	if *backend != "" {
		opts = append(opts, tricolor.WithSurfaceOptions(surface.WithBackendName(*backend)))
	}

	s, err := tricolor.New(context.Background(), surface.WindowHandle{}, uint32(*width), uint32(*height), opts...)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer s.Close()

	if err := run(s, sc); err != nil {
		s.Close()
		log.Fatal(err)
	}

	c := s.ClearColor()
	w, h := s.Size()
	fmt.Printf("backend=%s size=%dx%d variant=%s clear=(%.3f, %.3f, %.3f, %.3f) pointer_down=%v frames=%d\n",
		surface.BackendName(s.Surface().Backend()), w, h, s.Variant(),
		c.R, c.G, c.B, c.A, s.PointerDown(), s.Frames())
}

// run dispatches every step in order. Render errors are handled the way
// a window loop would: reconfigure and continue, skip the frame, or stop.
func run(s *tricolor.State, sc Script) error {
	for i, st := range sc.Steps {
		if st.Event == "render" {
			s.Update()
			if err := render(s); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			continue
		}
		ev, err := st.Input()
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if _, err := s.Input(ev); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func render(s *tricolor.State) error {
	err := s.Render()
	switch surface.Classify(err) {
	case surface.RecoveryNone:
		return nil
	case surface.RecoveryReconfigure:
		tricolor.Logger().Warn("surface lost, reconfiguring", "error", err)
		return s.Reconfigure()
	case surface.RecoverySkip:
		tricolor.Logger().Debug("frame skipped", "error", err)
		return nil
	default:
		return err
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/tricolor"
	"github.com/gogpu/tricolor/input"
	"github.com/gogpu/tricolor/internal/haltest"
	"github.com/gogpu/tricolor/surface"
	"github.com/gogpu/wgpu/hal"
)

const sample = `
steps:
  - event: enter
  - event: down
    button: left
  - event: move
    x: 400
    y: 300
  - event: key_up
    key: Space
  - event: resize
    width: 1024
    height: 768
  - event: render
`

func TestParseScript(t *testing.T) {
	sc, err := ParseScript([]byte(sample))
	if err != nil {
		t.Fatalf("ParseScript() = %v", err)
	}
	if len(sc.Steps) != 6 {
		t.Fatalf("got %d steps, want 6", len(sc.Steps))
	}

	down, err := sc.Steps[1].Input()
	if err != nil {
		t.Fatal(err)
	}
	if p := down.(input.Pointer); p.Type != gpucontext.PointerDown || p.Button != gpucontext.ButtonLeft {
		t.Errorf("down = %+v", p.PointerEvent)
	}

	key, _ := sc.Steps[3].Input()
	if key != (input.Key{Key: gpucontext.KeySpace}) {
		t.Errorf("key_up = %+v", key)
	}

	resize, _ := sc.Steps[4].Input()
	if resize != (input.Resize{Width: 1024, Height: 768}) {
		t.Errorf("resize = %+v", resize)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown event", "steps: [{event: wiggle}]", "unknown event"},
		{"unknown key", "steps: [{event: key_up, key: hyper}]", "unknown key"},
		{"unknown button", "steps: [{event: down, button: thumb}]", "unknown button"},
		{"negative size", "steps: [{event: resize, width: -1, height: 2}]", "negative size"},
		{"not yaml", "steps: [", "parse script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseScript() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestKeyNames(t *testing.T) {
	tests := map[string]gpucontext.Key{
		"a":     gpucontext.KeyA,
		"z":     gpucontext.KeyZ,
		"0":     gpucontext.Key0,
		"9":     gpucontext.Key9,
		"TAB":   gpucontext.KeyTab,
		"space": gpucontext.KeySpace,
	}
	for name, want := range tests {
		if got := keyNames[strings.ToLower(name)]; got != want {
			t.Errorf("key %q = %v, want %v", name, got, want)
		}
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript(path); err != nil {
		t.Errorf("LoadScript() = %v", err)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadScript() of a missing file succeeded")
	}
}

func newState(t *testing.T) (*tricolor.State, *haltest.Backend) {
	t.Helper()
	b := haltest.NewBackend(haltest.SRGBCaps())
	s, err := tricolor.New(context.Background(), surface.WindowHandle{}, 800, 600,
		tricolor.WithSurfaceOptions(surface.WithBackend(b)))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s, b
}

func TestRunDefaultScript(t *testing.T) {
	s, b := newState(t)
	if err := run(s, DefaultScript()); err != nil {
		t.Fatalf("run() = %v", err)
	}
	if s.ClearColor() != gputypes.ColorBlack || s.Variant() != "main" || s.PointerDown() {
		t.Errorf("final state = %v/%q/%v", s.ClearColor(), s.Variant(), s.PointerDown())
	}
	if s.Frames() != 5 || b.Queue().Presented != 5 {
		t.Errorf("frames = %d, presented %d; want 5", s.Frames(), b.Queue().Presented)
	}
}

func TestRunRecoversLostSurface(t *testing.T) {
	s, b := newState(t)
	b.Inst.Surface.AcquireErrs = []error{hal.ErrSurfaceLost, hal.ErrTimeout}

	sc := Script{Steps: []Step{{Event: "render"}, {Event: "render"}, {Event: "render"}}}
	if err := run(s, sc); err != nil {
		t.Fatalf("run() = %v", err)
	}
	if s.Frames() != 1 {
		t.Errorf("frames = %d, want 1", s.Frames())
	}
	if n := len(b.Inst.Surface.Configs); n != 2 {
		t.Errorf("configured %d times, want 2", n)
	}
}

func TestRunStopsOnFatal(t *testing.T) {
	s, b := newState(t)
	b.Inst.Surface.AcquireErrs = []error{hal.ErrDeviceLost}

	err := run(s, Script{Steps: []Step{{Event: "render"}, {Event: "render"}}})
	if err == nil || !strings.Contains(err.Error(), "step 1") {
		t.Errorf("run() = %v, want a step 1 error", err)
	}
}

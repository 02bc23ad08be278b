// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"reflect"
	"testing"
)

func TestDefaultVariants(t *testing.T) {
	a := Default()
	if a.Name() != DefaultName {
		t.Errorf("Name() = %q, want %q", a.Name(), DefaultName)
	}

	got := a.Variants()
	want := []string{"main", "rainbow"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Variants() = %v, want %v", got, want)
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() returned different assets")
	}
}

func TestEntryPoints(t *testing.T) {
	tests := []struct {
		variant string
		vs, fs  string
		wantErr error
	}{
		{"main", "vs_main", "fs_main", nil},
		{"rainbow", "vs_rainbow", "fs_rainbow", nil},
		{"missing", "", "", ErrMissingEntryPoint},
		{"", "", "", ErrEmptyVariant},
	}

	a := Default()
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			vs, fs, err := a.EntryPoints(tt.variant)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("EntryPoints(%q) error = %v, want %v", tt.variant, err, tt.wantErr)
			}
			if vs != tt.vs || fs != tt.fs {
				t.Errorf("EntryPoints(%q) = (%q, %q), want (%q, %q)", tt.variant, vs, fs, tt.vs, tt.fs)
			}
		})
	}
}

func TestEntryPointsStageMismatch(t *testing.T) {
	// fs_half is declared as a vertex entry point, so "half" is incomplete.
	const src = `
@vertex
fn vs_half(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}

@vertex
fn fs_half(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`
	a, err := Load("half.wgsl", src)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, _, err := a.EntryPoints("half"); !errors.Is(err, ErrMissingEntryPoint) {
		t.Errorf("EntryPoints(half) error = %v, want ErrMissingEntryPoint", err)
	}
	if a.HasVariant("half") {
		t.Error("HasVariant(half) = true, want false")
	}
	if v := a.Variants(); len(v) != 0 {
		t.Errorf("Variants() = %v, want none", v)
	}
}

func TestLoadInvalidSource(t *testing.T) {
	_, err := Load("broken.wgsl", "fn vs_main( {")
	if !errors.Is(err, ErrInvalidSource) {
		t.Errorf("Load error = %v, want ErrInvalidSource", err)
	}
}

func TestSPIRV(t *testing.T) {
	words, err := Default().SPIRV()
	if err != nil {
		t.Fatalf("SPIRV failed: %v", err)
	}
	if len(words) < 5 {
		t.Fatalf("SPIR-V too short: %d words", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("SPIR-V magic = 0x%08x, want 0x07230203", words[0])
	}

	again, _ := Default().SPIRV()
	if &again[0] != &words[0] {
		t.Error("SPIRV result was not cached")
	}
}

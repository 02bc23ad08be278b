// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tricolor/internal/haltest"
)

func TestBackendName(t *testing.T) {
	tests := []struct {
		v    gputypes.Backend
		want string
	}{
		{gputypes.BackendVulkan, "vulkan"},
		{gputypes.BackendMetal, "metal"},
		{gputypes.BackendDX12, "dx12"},
		{gputypes.BackendGL, "gl"},
		{gputypes.BackendEmpty, "empty"},
	}
	for _, tt := range tests {
		if got := BackendName(tt.v); got != tt.want {
			t.Errorf("BackendName(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestBackendsIncludesRegistered(t *testing.T) {
	reg := Backends()
	if !reg.Has("empty") {
		t.Fatalf("registry %v lacks the noop backend", reg.Available())
	}
	if b := reg.Get("empty"); b == nil || b.Variant() != gputypes.BackendEmpty {
		t.Errorf("Get(empty) = %v", b)
	}
}

func TestCandidatesOrder(t *testing.T) {
	reg := gpucontext.NewRegistry[hal.Backend]()
	byName := map[string]hal.Backend{}
	for _, n := range []string{"zeta", "gl", "empty", "alpha", "vulkan"} {
		b := haltest.NewBackend(nil)
		byName[n] = b
		reg.Register(n, func() hal.Backend { return b })
	}

	got, err := candidates(reg, "")
	if err != nil {
		t.Fatalf("candidates failed: %v", err)
	}
	want := []string{"vulkan", "gl", "empty", "alpha", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(got), len(want))
	}
	for i, n := range want {
		if got[i] != byName[n] {
			t.Errorf("candidate %d is not %s", i, n)
		}
	}

	one, err := candidates(reg, "GL")
	if err != nil || len(one) != 1 || one[0] != byName["gl"] {
		t.Errorf("candidates(GL) = %v, %v; want the gl backend", one, err)
	}
}

func TestCandidatesEmptyRegistry(t *testing.T) {
	_, err := candidates(gpucontext.NewRegistry[hal.Backend](), "")
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("error = %v, want ErrNoBackend", err)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sort"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DefaultPriority is the backend preference order used when no backend is
// named. Backends missing from the list are tried last, by name.
var DefaultPriority = []string{"vulkan", "metal", "dx12", "gl", "empty"}

// BackendName returns the lower-case registry name of a backend variant,
// such as "vulkan" or "dx12".
func BackendName(v gputypes.Backend) string {
	return strings.ToLower(v.String())
}

// Backends returns a registry of every HAL backend registered with the hal
// package, keyed by BackendName and ordered by DefaultPriority.
//
// Backends register themselves on import, for example through
// github.com/gogpu/wgpu/hal/allbackends.
func Backends() *gpucontext.Registry[hal.Backend] {
	reg := gpucontext.NewRegistry[hal.Backend](gpucontext.WithPriority(DefaultPriority...))
	for _, v := range hal.AvailableBackends() {
		b, ok := hal.GetBackend(v)
		if !ok {
			continue
		}
		reg.Register(BackendName(v), func() hal.Backend { return b })
	}
	return reg
}

// candidates returns the backends to try, in order.
func candidates(reg *gpucontext.Registry[hal.Backend], name string) ([]hal.Backend, error) {
	if name != "" {
		name = strings.ToLower(name)
		if !reg.Has(name) {
			return nil, &BackendNotFoundError{Name: name}
		}
		return []hal.Backend{reg.Get(name)}, nil
	}

	rank := make(map[string]int, len(DefaultPriority))
	for i, n := range DefaultPriority {
		rank[n] = i
	}
	names := reg.Available()
	sort.Slice(names, func(i, j int) bool {
		ri, iok := rank[names[i]]
		rj, jok := rank[names[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})

	out := make([]hal.Backend, 0, len(names))
	for _, n := range names {
		out = append(out, reg.Get(n))
	}
	if len(out) == 0 {
		return nil, ErrNoBackend
	}
	return out, nil
}

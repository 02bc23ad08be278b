// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader holds the WGSL program drawn by tricolor and the entry-point
// naming contract the pipeline factory relies on.
//
// Each variant of the program exposes a vertex entry point named
// vs_<variant> and a fragment entry point named fs_<variant>. The embedded
// program provides the "main" and "rainbow" variants:
//
//	asset := shader.Default()
//	vs, fs, err := asset.EntryPoints("rainbow") // "vs_rainbow", "fs_rainbow"
//
// Sources are parsed and lowered with naga once at load time, so a missing
// entry point is reported before any GPU object is created.
package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

//go:embed shader.wgsl
var defaultSource string

// DefaultName is the name of the embedded asset.
const DefaultName = "shader.wgsl"

// Entry point prefixes. A variant name is appended to each.
const (
	VertexPrefix   = "vs_"
	FragmentPrefix = "fs_"
)

var (
	// ErrInvalidSource is returned when WGSL source fails to parse or lower.
	ErrInvalidSource = errors.New("shader: invalid WGSL source")

	// ErrMissingEntryPoint is returned when a variant lacks its vertex or
	// fragment entry point.
	ErrMissingEntryPoint = errors.New("shader: missing entry point")

	// ErrEmptyVariant is returned for an empty variant name.
	ErrEmptyVariant = errors.New("shader: empty variant name")
)

// Asset is a compiled-once WGSL program. It is immutable after Load and safe
// for concurrent use.
type Asset struct {
	name   string
	source string
	stages map[string]ir.ShaderStage

	spirvOnce sync.Once
	spirv     []uint32
	spirvErr  error
}

// Load parses and lowers a WGSL program and records its entry points.
func Load(name, source string) (*Asset, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSource, name, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSource, name, err)
	}

	stages := make(map[string]ir.ShaderStage, len(module.EntryPoints))
	for _, ep := range module.EntryPoints {
		stages[ep.Name] = ep.Stage
	}
	return &Asset{name: name, source: source, stages: stages}, nil
}

var (
	defaultOnce  sync.Once
	defaultAsset *Asset
)

// Default returns the embedded program. It panics if the embedded source
// does not compile, which can only happen with a broken build.
func Default() *Asset {
	defaultOnce.Do(func() {
		a, err := Load(DefaultName, defaultSource)
		if err != nil {
			panic(err)
		}
		defaultAsset = a
	})
	return defaultAsset
}

// Name returns the asset name used in labels and errors.
func (a *Asset) Name() string { return a.name }

// Source returns the WGSL text.
func (a *Asset) Source() string { return a.source }

// EntryPoints returns the vertex and fragment entry point names for variant.
// Both must exist with the matching stage; there is no fallback variant.
func (a *Asset) EntryPoints(variant string) (vertex, fragment string, err error) {
	if variant == "" {
		return "", "", ErrEmptyVariant
	}
	vertex = VertexPrefix + variant
	fragment = FragmentPrefix + variant
	if stage, ok := a.stages[vertex]; !ok || stage != ir.StageVertex {
		return "", "", fmt.Errorf("%w: %s has no vertex entry point %q", ErrMissingEntryPoint, a.name, vertex)
	}
	if stage, ok := a.stages[fragment]; !ok || stage != ir.StageFragment {
		return "", "", fmt.Errorf("%w: %s has no fragment entry point %q", ErrMissingEntryPoint, a.name, fragment)
	}
	return vertex, fragment, nil
}

// HasVariant reports whether both entry points of variant exist.
func (a *Asset) HasVariant(variant string) bool {
	_, _, err := a.EntryPoints(variant)
	return err == nil
}

// Variants returns the sorted names of all complete variants.
func (a *Asset) Variants() []string {
	var out []string
	for name, stage := range a.stages {
		if stage != ir.StageVertex || !strings.HasPrefix(name, VertexPrefix) {
			continue
		}
		v := strings.TrimPrefix(name, VertexPrefix)
		if a.HasVariant(v) {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// SPIRV compiles the program to SPIR-V words for backends that do not
// accept WGSL. The result is cached.
func (a *Asset) SPIRV() ([]uint32, error) {
	a.spirvOnce.Do(func() {
		b, err := naga.Compile(a.source)
		if err != nil {
			a.spirvErr = fmt.Errorf("shader: compile %s: %w", a.name, err)
			return
		}
		// SPIR-V is little-endian 32-bit words.
		words := make([]uint32, len(b)/4)
		for i := range words {
			words[i] = uint32(b[i*4]) |
				uint32(b[i*4+1])<<8 |
				uint32(b[i*4+2])<<16 |
				uint32(b[i*4+3])<<24
		}
		a.spirv = words
	})
	return a.spirv, a.spirvErr
}

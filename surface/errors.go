// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "errors"

var (
	// ErrNoBackend is returned when no registered HAL backend can drive the
	// window surface.
	ErrNoBackend = errors.New("surface: no backend available")

	// ErrNoAdapter is returned when no adapter is compatible with the surface.
	ErrNoAdapter = errors.New("surface: no compatible adapter")

	// ErrDeviceCreation is returned when the chosen adapter fails to open a
	// device and queue.
	ErrDeviceCreation = errors.New("surface: device creation failed")

	// ErrNoSurfaceFormat is returned when the surface reports no formats.
	ErrNoSurfaceFormat = errors.New("surface: no supported surface format")

	// ErrInvalidDimensions is returned for a zero initial width or height.
	ErrInvalidDimensions = errors.New("surface: width and height must be non-zero")

	// ErrClosed is returned by operations on a closed Manager.
	ErrClosed = errors.New("surface: manager closed")
)

// BackendNotFoundError indicates a backend name that no registered HAL
// backend answers to. It matches ErrNoBackend with errors.Is.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// Is reports whether target is ErrNoBackend.
func (e *BackendNotFoundError) Is(target error) bool {
	return target == ErrNoBackend
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"

	"github.com/gogpu/wgpu/hal"
)

// Recovery is what the event loop should do after a frame error.
type Recovery int

const (
	// RecoveryNone means the frame succeeded.
	RecoveryNone Recovery = iota

	// RecoveryReconfigure means the surface was lost or outdated. Call
	// Reconfigure and continue with the next frame.
	RecoveryReconfigure

	// RecoverySkip means no frame was ready in time. Skip this frame.
	RecoverySkip

	// RecoveryFatal means the device cannot continue. Exit the event loop.
	RecoveryFatal
)

// String returns the recovery name.
func (r Recovery) String() string {
	switch r {
	case RecoveryNone:
		return "none"
	case RecoveryReconfigure:
		return "reconfigure"
	case RecoverySkip:
		return "skip"
	case RecoveryFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Classify maps a frame error to its recovery. Errors are matched with
// errors.Is, so wrapped HAL errors classify like the originals.
// Unrecognized errors are fatal.
func Classify(err error) Recovery {
	switch {
	case err == nil:
		return RecoveryNone
	case errors.Is(err, hal.ErrSurfaceLost), errors.Is(err, hal.ErrSurfaceOutdated):
		return RecoveryReconfigure
	case errors.Is(err, hal.ErrTimeout), errors.Is(err, hal.ErrNotReady):
		return RecoverySkip
	default:
		return RecoveryFatal
	}
}

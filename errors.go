// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tricolor

import "errors"

var (
	// ErrClosed is returned by operations on a closed State.
	ErrClosed = errors.New("tricolor: state closed")

	// ErrUnknownVariant is returned by New when a bound variant is not in
	// the shader asset.
	ErrUnknownVariant = errors.New("tricolor: unknown shader variant")
)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects and creates native graphics contexts for forge.
//
// Context providers register themselves by name (typically from init
// functions in their own packages) and are picked explicitly via Get or by
// priority via Default. The real provider lives in backend/gl; tests skip
// the registry entirely and hand a glapi.Recorder straight to the device.
package backend

import (
	"errors"

	"github.com/gogpu/forge/glapi"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no usable provider is registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoContext is returned when a provider cannot produce a native context.
	// Device construction treats this as fatal; there is no software fallback.
	ErrNoContext = errors.New("backend: no graphics context could be created")
)

// ContextAttributes mirror the context-creation options a drawing surface is
// requested with. DefaultContextAttributes encodes the documented defaults.
type ContextAttributes struct {
	// Width and Height are the initial surface size in pixels.
	Width  int
	Height int

	// Title labels the native window where one exists.
	Title string

	// Antialias requests a multisampled default framebuffer.
	Antialias bool

	// Depth requests a depth buffer on the default framebuffer.
	Depth bool

	// Stencil requests a stencil buffer on the default framebuffer.
	Stencil bool

	// Visible controls whether the surface is shown. Offscreen rendering
	// uses a hidden surface.
	Visible bool
}

// DefaultContextAttributes returns the documented defaults: depth and
// antialias enabled, stencil disabled, visible 800x600 surface.
func DefaultContextAttributes() ContextAttributes {
	return ContextAttributes{
		Width:     800,
		Height:    600,
		Antialias: true,
		Depth:     true,
		Visible:   true,
	}
}

// Surface is the swapchain-equivalent owned by a provider: the thing frames
// are presented to, and the source of default-framebuffer size changes.
type Surface interface {
	// Size returns the current drawable size in pixels.
	Size() (width, height int)

	// Present commits the current backbuffer to the surface.
	Present()

	// ShouldClose reports whether the platform asked the surface to close.
	ShouldClose() bool

	// Destroy releases the surface and its native context.
	Destroy()
}

// ContextProvider creates native contexts. Implementations are registered
// with Register and selected through Get or Default.
type ContextProvider interface {
	// Name returns the provider identifier (e.g. "gl").
	Name() string

	// CreateContext creates a native context and its drawing surface.
	// Returns ErrNoContext (possibly wrapped) when the platform cannot
	// supply one.
	CreateContext(attrs ContextAttributes) (glapi.Context, Surface, error)
}

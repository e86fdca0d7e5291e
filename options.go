// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"github.com/gogpu/forge/backend"
	"github.com/gogpu/forge/glapi"
)

// Option configures a Device during creation.
//
// Example:
//
//	// Default: best registered provider, 800x600, antialias+depth.
//	dev, err := forge.New()
//
//	// Headless test device over a recording context:
//	dev, err := forge.New(forge.WithContext(glapi.NewRecorder()))
type Option func(*deviceOptions)

// deviceOptions holds optional configuration for Device creation.
type deviceOptions struct {
	ctx         glapi.Context
	backendName string
	attrs       backend.ContextAttributes
	extraQuirks []quirk
	maxDraws    int
}

// defaultDeviceOptions returns the default device options.
func defaultDeviceOptions() deviceOptions {
	return deviceOptions{
		attrs: backend.DefaultContextAttributes(),
	}
}

// WithContext supplies an already-created native context, bypassing the
// backend registry. The device then has no surface; Resize drives
// backbuffer dimensions. Used by tests and by hosts that own their context.
func WithContext(ctx glapi.Context) Option {
	return func(o *deviceOptions) { o.ctx = ctx }
}

// WithBackend selects a registered context provider by name instead of the
// priority default.
func WithBackend(name string) Option {
	return func(o *deviceOptions) { o.backendName = name }
}

// WithSize sets the initial surface size in pixels.
func WithSize(width, height int) Option {
	return func(o *deviceOptions) {
		o.attrs.Width = width
		o.attrs.Height = height
	}
}

// WithTitle sets the native window title where one exists.
func WithTitle(title string) Option {
	return func(o *deviceOptions) { o.attrs.Title = title }
}

// WithAntialias overrides the antialias context attribute (default on).
// Known-buggy drivers force multisampling off regardless of this setting.
func WithAntialias(enabled bool) Option {
	return func(o *deviceOptions) { o.attrs.Antialias = enabled }
}

// WithDepth overrides the depth context attribute (default on).
func WithDepth(enabled bool) Option {
	return func(o *deviceOptions) { o.attrs.Depth = enabled }
}

// WithStencil overrides the stencil context attribute (default off).
func WithStencil(enabled bool) Option {
	return func(o *deviceOptions) { o.attrs.Stencil = enabled }
}

// WithHidden creates the surface invisible, for offscreen rendering.
func WithHidden() Option {
	return func(o *deviceOptions) { o.attrs.Visible = false }
}

// WithMaxDrawCalls installs the debug draw throttle: draws beyond n per
// frame-graph execution are silently skipped. Zero disables. The exact
// counting boundary is a debugging aid, not a contract.
func WithMaxDrawCalls(n int) Option {
	return func(o *deviceOptions) { o.maxDraws = n }
}

// WithQuirk registers an additional vendor workaround matched against the
// probed renderer string, on top of the built-in table.
func WithQuirk(name, rendererContains string, disableMSAA bool) Option {
	return func(o *deviceOptions) {
		o.extraQuirks = append(o.extraQuirks, quirk{
			name:             name,
			rendererContains: rendererContains,
			disableMSAA:      disableMSAA,
		})
	}
}

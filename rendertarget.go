// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"github.com/gogpu/forge/glapi"
)

// RenderTargetOptions configures render-target creation. Either ColorBuffer
// or ColorBuffers supplies the color attachment(s); Depth defaults to
// enabled and allocates a depth renderbuffer unless DepthBuffer provides a
// depth texture instead.
type RenderTargetOptions struct {
	// Name labels the target in logs.
	Name string

	// ColorBuffer is the single color attachment; ColorBuffers takes
	// precedence when set (multiple render targets, GLES3-class or
	// draw-buffers extension required).
	ColorBuffer  *Texture
	ColorBuffers []*Texture

	// DepthBuffer attaches a depth texture instead of a renderbuffer.
	DepthBuffer *Texture

	// NoDepth disables the depth attachment (Depth defaults to enabled).
	NoDepth bool

	// Stencil requests a stencil channel alongside depth.
	Stencil bool

	// Samples requests multisampled rendering with an automatic resolve
	// into the color texture(s). Clamped by device capabilities. Zero or
	// one disables multisampling.
	Samples int

	// NoAutoResolve disables the end-of-pass multisample resolve.
	NoAutoResolve bool
}

// RenderTarget is a logical framebuffer description with a lazily created
// native representation. The backbuffer is a distinguished RenderTarget
// representing the default framebuffer; it has no color textures and its
// native handle is the zero framebuffer.
type RenderTarget struct {
	device *Device
	name   string

	colorBuffers []*Texture
	depthBuffer  *Texture
	depth        bool
	stencil      bool
	samples      int
	autoResolve  bool

	width  int
	height int

	backbuffer  bool
	initialized bool

	fb      glapi.Framebuffer // single-sample framebuffer with texture attachments
	msaaFB  glapi.Framebuffer // multisampled framebuffer, when samples > 1
	depthRB glapi.Renderbuffer
	msaaRB  []glapi.Renderbuffer // renderbuffers backing msaaFB attachments
}

// NewRenderTarget creates a render target. The native framebuffer is built
// on first bind. Returns nil when more color buffers are supplied than the
// device supports, which degrades to skipped passes upstream.
func (d *Device) NewRenderTarget(opts RenderTargetOptions) *RenderTarget {
	colors := opts.ColorBuffers
	if colors == nil && opts.ColorBuffer != nil {
		colors = []*Texture{opts.ColorBuffer}
	}
	if len(colors) > 1 && (!d.caps.SupportsMRT || len(colors) > d.caps.MaxColorAttachments) {
		Logger().Warn("too many color attachments", "target", opts.Name,
			"requested", len(colors), "max", d.caps.MaxColorAttachments)
		return nil
	}

	samples := opts.Samples
	if samples < 1 {
		samples = 1
	}
	if samples > 1 {
		if !d.caps.SupportsMSAA {
			samples = 1
		} else if samples > d.caps.MaxSamples {
			samples = d.caps.MaxSamples
		}
	}

	rt := &RenderTarget{
		device:       d,
		name:         opts.Name,
		colorBuffers: colors,
		depthBuffer:  opts.DepthBuffer,
		depth:        !opts.NoDepth || opts.DepthBuffer != nil,
		stencil:      opts.Stencil,
		samples:      samples,
		autoResolve:  !opts.NoAutoResolve,
	}
	if len(colors) > 0 {
		rt.width = colors[0].Width()
		rt.height = colors[0].Height()
	} else if opts.DepthBuffer != nil {
		rt.width = opts.DepthBuffer.Width()
		rt.height = opts.DepthBuffer.Height()
	}
	d.registerResource(rt)
	return rt
}

// newBackbufferTarget builds the distinguished default-framebuffer target.
// Not registered for loss notification: framebuffer zero needs no rebuild.
func newBackbufferTarget(d *Device, width, height, samples int, depth, stencil bool) *RenderTarget {
	return &RenderTarget{
		device:      d,
		name:        "backbuffer",
		depth:       depth,
		stencil:     stencil,
		samples:     samples,
		width:       width,
		height:      height,
		backbuffer:  true,
		initialized: true,
	}
}

// Name returns the target's label.
func (rt *RenderTarget) Name() string { return rt.name }

// Width returns the target width in pixels.
func (rt *RenderTarget) Width() int { return rt.width }

// Height returns the target height in pixels.
func (rt *RenderTarget) Height() int { return rt.height }

// Samples returns the resolved sample count.
func (rt *RenderTarget) Samples() int { return rt.samples }

// Backbuffer reports whether this is the default framebuffer.
func (rt *RenderTarget) Backbuffer() bool { return rt.backbuffer }

// ColorBuffer returns color attachment i, or nil.
func (rt *RenderTarget) ColorBuffer(i int) *Texture {
	if i < 0 || i >= len(rt.colorBuffers) {
		return nil
	}
	return rt.colorBuffers[i]
}

// NumColorBuffers returns the color attachment count.
func (rt *RenderTarget) NumColorBuffers() int { return len(rt.colorBuffers) }

// DepthBuffer returns the depth texture attachment, or nil when depth is
// backed by a renderbuffer or absent.
func (rt *RenderTarget) DepthBuffer() *Texture { return rt.depthBuffer }

// init builds the native framebuffer(s) from the descriptor.
func (rt *RenderTarget) init() {
	ctx := rt.device.ctx
	rt.initialized = true
	if rt.backbuffer {
		return
	}

	rt.fb = ctx.CreateFramebuffer()
	ctx.BindFramebuffer(glapi.FRAMEBUFFER, rt.fb)
	rt.device.boundFramebuffer = rt.fb

	bufs := make([]uint32, 0, len(rt.colorBuffers))
	for i, tex := range rt.colorBuffers {
		tex.ensure()
		target := uint32(glapi.TEXTURE_2D)
		if tex.cubemap {
			target = glapi.TEXTURE_CUBE_MAP_POSITIVE_X
		}
		attachment := glapi.COLOR_ATTACHMENT0 + uint32(i)
		ctx.FramebufferTexture2D(glapi.FRAMEBUFFER, attachment, target, tex.impl, 0)
		bufs = append(bufs, attachment)
	}
	if len(bufs) > 1 {
		ctx.DrawBuffers(bufs)
	}

	if rt.depthBuffer != nil {
		rt.depthBuffer.ensure()
		attachment := uint32(glapi.DEPTH_ATTACHMENT)
		if glTexFormat[rt.depthBuffer.format].stencil {
			attachment = glapi.DEPTH_STENCIL_ATTACHMENT
		}
		ctx.FramebufferTexture2D(glapi.FRAMEBUFFER, attachment, glapi.TEXTURE_2D, rt.depthBuffer.impl, 0)
	} else if rt.depth {
		rt.depthRB = ctx.CreateRenderbuffer()
		ctx.BindRenderbuffer(rt.depthRB)
		format, attachment := depthStorage(rt.stencil)
		ctx.RenderbufferStorage(format, int32(rt.width), int32(rt.height))
		ctx.FramebufferRenderbuffer(glapi.FRAMEBUFFER, attachment, rt.depthRB)
	}

	if status := ctx.CheckFramebufferStatus(glapi.FRAMEBUFFER); status != glapi.FRAMEBUFFER_COMPLETE {
		Logger().Warn("framebuffer incomplete", "target", rt.name, "status", status)
	}

	if rt.samples > 1 {
		rt.initMSAA()
	}
}

// depthStorage picks the renderbuffer format and attachment point for a
// depth(+stencil) channel.
func depthStorage(stencil bool) (format, attachment uint32) {
	if stencil {
		return glapi.DEPTH24_STENCIL8, glapi.DEPTH_STENCIL_ATTACHMENT
	}
	return glapi.DEPTH_COMPONENT24, glapi.DEPTH_ATTACHMENT
}

// initMSAA builds the multisampled framebuffer rendering resolves from.
func (rt *RenderTarget) initMSAA() {
	ctx := rt.device.ctx

	rt.msaaFB = ctx.CreateFramebuffer()
	ctx.BindFramebuffer(glapi.FRAMEBUFFER, rt.msaaFB)
	rt.device.boundFramebuffer = rt.msaaFB

	rt.msaaRB = rt.msaaRB[:0]
	for i, tex := range rt.colorBuffers {
		rb := ctx.CreateRenderbuffer()
		ctx.BindRenderbuffer(rb)
		ctx.RenderbufferStorageMultisample(int32(rt.samples), glTexFormat[tex.format].sizedInternal,
			int32(rt.width), int32(rt.height))
		ctx.FramebufferRenderbuffer(glapi.FRAMEBUFFER, glapi.COLOR_ATTACHMENT0+uint32(i), rb)
		rt.msaaRB = append(rt.msaaRB, rb)
	}
	if rt.depth {
		rb := ctx.CreateRenderbuffer()
		ctx.BindRenderbuffer(rb)
		format, attachment := depthStorage(rt.stencil)
		ctx.RenderbufferStorageMultisample(int32(rt.samples), format, int32(rt.width), int32(rt.height))
		ctx.FramebufferRenderbuffer(glapi.FRAMEBUFFER, attachment, rb)
		rt.msaaRB = append(rt.msaaRB, rb)
	}

	if status := ctx.CheckFramebufferStatus(glapi.FRAMEBUFFER); status != glapi.FRAMEBUFFER_COMPLETE {
		Logger().Warn("multisampled framebuffer incomplete", "target", rt.name, "status", status)
	}
}

// drawFramebuffer returns the native framebuffer draws render into.
func (rt *RenderTarget) drawFramebuffer() glapi.Framebuffer {
	if rt.backbuffer {
		return 0
	}
	if rt.samples > 1 {
		return rt.msaaFB
	}
	return rt.fb
}

// Resolve blits multisampled content into the single-sample attachments.
// No-op for non-multisampled and backbuffer targets.
func (rt *RenderTarget) Resolve(color, depth bool) {
	if rt.backbuffer || rt.samples <= 1 || !rt.initialized {
		return
	}
	ctx := rt.device.ctx

	var mask uint32
	if color {
		mask |= glapi.COLOR_BUFFER_BIT
	}
	if depth && rt.depth && rt.device.caps.SupportsDepthBlit {
		mask |= glapi.DEPTH_BUFFER_BIT
	}
	if mask == 0 {
		return
	}

	ctx.BindFramebuffer(glapi.READ_FRAMEBUFFER, rt.msaaFB)
	ctx.BindFramebuffer(glapi.DRAW_FRAMEBUFFER, rt.fb)
	ctx.BlitFramebuffer(0, 0, int32(rt.width), int32(rt.height),
		0, 0, int32(rt.width), int32(rt.height), mask, glapi.NEAREST)
	// Restore the cached draw binding.
	ctx.BindFramebuffer(glapi.FRAMEBUFFER, rt.device.boundFramebuffer)
}

// Copy blits color and/or depth content from source into this target.
// Returns false without native work when the copy cannot be performed on
// this context class (depth blits need GLES3); the caller picks a
// shader-based fallback.
func (rt *RenderTarget) Copy(source *RenderTarget, color, depth bool) bool {
	d := rt.device
	if depth && !d.caps.SupportsDepthBlit {
		return false
	}
	if source == nil || !source.initialized {
		return false
	}
	if !rt.initialized {
		rt.init()
	}

	var mask uint32
	if color {
		mask |= glapi.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= glapi.DEPTH_BUFFER_BIT
	}
	if mask == 0 {
		return true
	}

	ctx := d.ctx
	ctx.BindFramebuffer(glapi.READ_FRAMEBUFFER, source.readFramebuffer())
	ctx.BindFramebuffer(glapi.DRAW_FRAMEBUFFER, rt.drawFramebuffer())
	ctx.BlitFramebuffer(0, 0, int32(source.width), int32(source.height),
		0, 0, int32(rt.width), int32(rt.height), mask, glapi.NEAREST)
	ctx.BindFramebuffer(glapi.FRAMEBUFFER, d.boundFramebuffer)
	return true
}

// readFramebuffer returns the framebuffer reads should come from: resolved
// content when multisampled.
func (rt *RenderTarget) readFramebuffer() glapi.Framebuffer {
	if rt.backbuffer {
		return 0
	}
	return rt.fb
}

// Destroy releases all native framebuffer objects and unregisters the
// resource. Attached textures are owned by their creators and survive.
func (rt *RenderTarget) Destroy() {
	if rt.backbuffer {
		return
	}
	rt.releaseNative()
	rt.device.unregisterResource(rt)
}

// releaseNative deletes framebuffers and renderbuffers.
func (rt *RenderTarget) releaseNative() {
	ctx := rt.device.ctx
	if rt.fb != 0 {
		ctx.DeleteFramebuffer(rt.fb)
		rt.fb = 0
	}
	if rt.msaaFB != 0 {
		ctx.DeleteFramebuffer(rt.msaaFB)
		rt.msaaFB = 0
	}
	if rt.depthRB != 0 {
		ctx.DeleteRenderbuffer(rt.depthRB)
		rt.depthRB = 0
	}
	for _, rb := range rt.msaaRB {
		ctx.DeleteRenderbuffer(rb)
	}
	rt.msaaRB = rt.msaaRB[:0]
	rt.initialized = rt.backbuffer
}

func (rt *RenderTarget) loseContext() {
	rt.fb = 0
	rt.msaaFB = 0
	rt.depthRB = 0
	rt.msaaRB = rt.msaaRB[:0]
	rt.initialized = rt.backbuffer
}

func (rt *RenderTarget) restoreContext() {
	// Rebuilt lazily on next bind; attached textures restore themselves.
}

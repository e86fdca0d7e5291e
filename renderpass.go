// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

// ColorAttachmentOps declares what happens to the color attachments at the
// boundaries of a render pass. The same ops apply to every color attachment
// of the target.
type ColorAttachmentOps struct {
	// Load selects whether the pass starts by clearing or by keeping the
	// previous contents.
	Load gputypes.LoadOp

	// Store selects whether the contents survive the end of the pass. A
	// discarded attachment may be invalidated, which tile GPUs turn into
	// skipped memory traffic.
	Store gputypes.StoreOp

	// ClearValue is the clear color when Load is LoadOpClear.
	ClearValue gputypes.Color

	// Resolve triggers the multisample resolve at the end of the pass,
	// when the target is multisampled and auto-resolve is enabled.
	Resolve bool

	// GenMipmaps regenerates the color texture's mipmap chain after the
	// pass (and after any resolve).
	GenMipmaps bool
}

// DepthStencilAttachmentOps declares boundary behavior for the depth and
// stencil channels.
type DepthStencilAttachmentOps struct {
	DepthLoad    gputypes.LoadOp
	DepthStore   gputypes.StoreOp
	StencilLoad  gputypes.LoadOp
	StencilStore gputypes.StoreOp

	ClearDepth   float32
	ClearStencil int32
}

// RenderPass is one node of a frame graph: a target, attachment boundary
// ops and an execute callback that issues the pass's draws.
type RenderPass struct {
	// Name labels the pass in logs.
	Name string

	// Target is the render target; nil means the backbuffer.
	Target *RenderTarget

	Color        ColorAttachmentOps
	DepthStencil DepthStencilAttachmentOps

	// PartialClear marks passes that render to a sub-rectangle. It
	// suppresses end-of-pass attachment invalidation, since discarded
	// regions outside the rectangle would lose valid content.
	PartialClear bool

	// Execute issues the pass's draw calls. May be nil for pure
	// clear/resolve passes.
	Execute func()
}

// ColorClearOps is the common case: clear to a color, keep the result.
func ColorClearOps(c gputypes.Color) ColorAttachmentOps {
	return ColorAttachmentOps{
		Load:       gputypes.LoadOpClear,
		Store:      gputypes.StoreOpStore,
		ClearValue: c,
		Resolve:    true,
	}
}

// DepthClearOps clears depth and stencil to the canonical far values and
// discards both afterwards, the right shape for transient scene depth.
func DepthClearOps() DepthStencilAttachmentOps {
	return DepthStencilAttachmentOps{
		DepthLoad:    gputypes.LoadOpClear,
		DepthStore:   gputypes.StoreOpDiscard,
		StencilLoad:  gputypes.LoadOpClear,
		StencilStore: gputypes.StoreOpDiscard,
		ClearDepth:   1,
	}
}

// SetRenderTarget binds a render target for subsequent draws, building its
// native framebuffer on first use. nil binds the backbuffer. This is the
// low-level entry; StartRenderPass adds viewport and clear handling on top.
func (d *Device) SetRenderTarget(rt *RenderTarget) {
	if rt == nil {
		rt = d.backBuffer
	}
	if !rt.initialized {
		rt.init()
	}
	if d.renderTarget == rt {
		return
	}
	d.renderTarget = rt
	d.setFramebuffer(rt.drawFramebuffer())
	d.frame.RenderTargetSwitches++
}

// RenderTarget returns the currently bound target.
func (d *Device) RenderTarget() *RenderTarget { return d.renderTarget }

// StartRenderPass binds the pass's target, sets viewport and scissor to the
// full target extent, and performs the load-op clears. Channels whose load
// op is LoadOpLoad are left untouched.
func (d *Device) StartRenderPass(p *RenderPass) {
	if d.lossState != LossActive || d.destroyed {
		return
	}
	d.insidePass = true

	d.SetRenderTarget(p.Target)
	rt := d.renderTarget

	d.SetViewport(0, 0, int32(rt.width), int32(rt.height))
	d.SetScissor(0, 0, int32(rt.width), int32(rt.height))

	var clear ClearOptions
	if p.Color.Load == gputypes.LoadOpClear && (rt.backbuffer || len(rt.colorBuffers) > 0) {
		clear.Flags |= ClearColorBuffer
		clear.Color = p.Color.ClearValue
	}
	if rt.depth && p.DepthStencil.DepthLoad == gputypes.LoadOpClear {
		clear.Flags |= ClearDepthBuffer
		clear.Depth = p.DepthStencil.ClearDepth
	}
	if rt.stencil && p.DepthStencil.StencilLoad == gputypes.LoadOpClear {
		clear.Flags |= ClearStencilBuffer
		clear.Stencil = p.DepthStencil.ClearStencil
	}
	if clear.Flags != 0 {
		d.Clear(clear)
	}
}

// EndRenderPass finishes the pass: unbinds the vertex array, invalidates
// discarded attachments, resolves multisampling and regenerates requested
// mipmap chains.
func (d *Device) EndRenderPass(p *RenderPass) {
	if d.lossState != LossActive || d.destroyed {
		return
	}
	d.insidePass = false
	rt := d.renderTarget
	if rt == nil {
		return
	}
	ctx := d.ctx

	// Unbind the vertex array so later index-buffer uploads cannot be
	// captured into a cached VAO's element binding.
	d.bindVAO(0)

	resolving := rt.samples > 1 && rt.autoResolve && p.Color.Resolve

	// Invalidation tells tilers not to write discarded channels back to
	// memory. Only whole-surface passes qualify, and a color attachment
	// still feeding the resolve blit is not discardable yet.
	if !p.PartialClear && d.caps.SupportsInvalidateBuffers {
		var attachments []uint32
		if !rt.backbuffer {
			if p.Color.Store == gputypes.StoreOpDiscard && !resolving {
				for i := range rt.colorBuffers {
					attachments = append(attachments, glapi.COLOR_ATTACHMENT0+uint32(i))
				}
			}
			if rt.depth && p.DepthStencil.DepthStore == gputypes.StoreOpDiscard {
				attachments = append(attachments, glapi.DEPTH_ATTACHMENT)
			}
			if rt.stencil && p.DepthStencil.StencilStore == gputypes.StoreOpDiscard {
				attachments = append(attachments, glapi.STENCIL_ATTACHMENT)
			}
		}
		if len(attachments) > 0 {
			ctx.InvalidateFramebuffer(glapi.FRAMEBUFFER, attachments)
		}
	}

	if resolving {
		rt.Resolve(true, p.DepthStencil.DepthStore == gputypes.StoreOpStore)
	}

	if p.Color.GenMipmaps {
		for _, tex := range rt.colorBuffers {
			if tex == nil || !tex.mipmaps {
				continue
			}
			if !d.caps.GLES3 && !tex.Pot() {
				continue
			}
			d.SetTexture(tex, 0)
			ctx.GenerateMipmap(tex.target)
		}
	}
}

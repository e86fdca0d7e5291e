// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

// State setters. Every setter compares the requested value against the
// cached current value and issues zero native calls when they are equal;
// this is the dominant performance invariant of the whole layer. Cache
// fields are mutated together with the native calls they mirror, so a
// skipped call means the cache already equals the request.

// SetBlendState applies a blend configuration. Descriptors are compared by
// structural equality, never identity.
func (d *Device) SetBlendState(bs BlendState) {
	cur := &d.blendState
	ctx := d.ctx

	if bs.Blend != cur.Blend {
		if bs.Blend {
			ctx.Enable(glapi.BLEND)
		} else {
			ctx.Disable(glapi.BLEND)
		}
		cur.Blend = bs.Blend
	}
	if bs.ColorSrcFactor != cur.ColorSrcFactor || bs.ColorDstFactor != cur.ColorDstFactor ||
		bs.AlphaSrcFactor != cur.AlphaSrcFactor || bs.AlphaDstFactor != cur.AlphaDstFactor {
		ctx.BlendFuncSeparate(
			glBlendFactor[bs.ColorSrcFactor], glBlendFactor[bs.ColorDstFactor],
			glBlendFactor[bs.AlphaSrcFactor], glBlendFactor[bs.AlphaDstFactor])
		cur.ColorSrcFactor = bs.ColorSrcFactor
		cur.ColorDstFactor = bs.ColorDstFactor
		cur.AlphaSrcFactor = bs.AlphaSrcFactor
		cur.AlphaDstFactor = bs.AlphaDstFactor
	}
	if bs.ColorOp != cur.ColorOp || bs.AlphaOp != cur.AlphaOp {
		ctx.BlendEquationSeparate(glBlendOp[bs.ColorOp], glBlendOp[bs.AlphaOp])
		cur.ColorOp = bs.ColorOp
		cur.AlphaOp = bs.AlphaOp
	}
	if bs.WriteMask != cur.WriteMask {
		ctx.ColorMask(
			bs.WriteMask&gputypes.ColorWriteMaskRed != 0,
			bs.WriteMask&gputypes.ColorWriteMaskGreen != 0,
			bs.WriteMask&gputypes.ColorWriteMaskBlue != 0,
			bs.WriteMask&gputypes.ColorWriteMaskAlpha != 0)
		cur.WriteMask = bs.WriteMask
	}
}

// BlendState returns the cached blend configuration.
func (d *Device) BlendState() BlendState { return d.blendState }

// SetBlendColor sets the constant blend color.
func (d *Device) SetBlendColor(c gputypes.Color) {
	if c == d.blendColor {
		return
	}
	d.ctx.BlendColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	d.blendColor = c
}

// SetDepthState applies depth test/write configuration. The native depth
// test is disabled when the state is a provable no-op (always-pass with
// writes off), a single Enable/Disable transition handled by the cache.
func (d *Device) SetDepthState(ds DepthState) {
	cur := &d.depthState
	ctx := d.ctx

	if ds.testEnabled() != cur.testEnabled() {
		if ds.testEnabled() {
			ctx.Enable(glapi.DEPTH_TEST)
		} else {
			ctx.Disable(glapi.DEPTH_TEST)
		}
	}
	if ds.Func != cur.Func {
		ctx.DepthFunc(glCompareFunc[ds.Func])
		cur.Func = ds.Func
	}
	if ds.Write != cur.Write {
		ctx.DepthMask(ds.Write)
		cur.Write = ds.Write
	}
	// testEnabled is derived; make the cache structurally equal.
	*cur = ds
}

// DepthState returns the cached depth configuration.
func (d *Device) DepthState() DepthState { return d.depthState }

// forceDepthWrite emits a depth-mask change outside SetDepthState, for
// clears that must write depth. The cache stays coherent.
func (d *Device) forceDepthWrite(write bool) {
	if d.depthState.Write == write {
		return
	}
	d.ctx.DepthMask(write)
	d.depthState.Write = write
}

// SetStencilState applies front/back stencil configuration. Passing nil for
// both faces disables the stencil test. When front and back parameters are
// equal the cache configures both faces with single FRONT_AND_BACK calls;
// asymmetric parameters take the two-call path per differing piece.
func (d *Device) SetStencilState(front, back *StencilParameters) {
	ctx := d.ctx

	enabled := front != nil || back != nil
	if enabled != d.stencilEnabled {
		if enabled {
			ctx.Enable(glapi.STENCIL_TEST)
		} else {
			ctx.Disable(glapi.STENCIL_TEST)
		}
		d.stencilEnabled = enabled
	}
	if !enabled {
		return
	}

	f := DefaultStencilParameters()
	if front != nil {
		f = *front
	}
	b := f
	if back != nil {
		b = *back
	}

	if f == b {
		// Symmetric fast path: one native call per differing piece.
		if f.Func != d.stencilFront.Func || f.Ref != d.stencilFront.Ref || f.ReadMask != d.stencilFront.ReadMask ||
			f.Func != d.stencilBack.Func || f.Ref != d.stencilBack.Ref || f.ReadMask != d.stencilBack.ReadMask {
			ctx.StencilFuncSeparate(glapi.FRONT_AND_BACK, glCompareFunc[f.Func], f.Ref, f.ReadMask)
		}
		if f.Fail != d.stencilFront.Fail || f.ZFail != d.stencilFront.ZFail || f.ZPass != d.stencilFront.ZPass ||
			f.Fail != d.stencilBack.Fail || f.ZFail != d.stencilBack.ZFail || f.ZPass != d.stencilBack.ZPass {
			ctx.StencilOpSeparate(glapi.FRONT_AND_BACK, glStencilOp[f.Fail], glStencilOp[f.ZFail], glStencilOp[f.ZPass])
		}
		if f.WriteMask != d.stencilFront.WriteMask || f.WriteMask != d.stencilBack.WriteMask {
			ctx.StencilMaskSeparate(glapi.FRONT_AND_BACK, f.WriteMask)
		}
		d.stencilFront = f
		d.stencilBack = f
		return
	}

	d.setStencilFace(glapi.FRONT, f, &d.stencilFront)
	d.setStencilFace(glapi.BACK, b, &d.stencilBack)
}

// setStencilFace applies one face's parameters through the cache.
func (d *Device) setStencilFace(face uint32, p StencilParameters, cur *StencilParameters) {
	ctx := d.ctx
	if p.Func != cur.Func || p.Ref != cur.Ref || p.ReadMask != cur.ReadMask {
		ctx.StencilFuncSeparate(face, glCompareFunc[p.Func], p.Ref, p.ReadMask)
	}
	if p.Fail != cur.Fail || p.ZFail != cur.ZFail || p.ZPass != cur.ZPass {
		ctx.StencilOpSeparate(face, glStencilOp[p.Fail], glStencilOp[p.ZFail], glStencilOp[p.ZPass])
	}
	if p.WriteMask != cur.WriteMask {
		ctx.StencilMaskSeparate(face, p.WriteMask)
	}
	*cur = p
}

// SetCullMode selects face culling.
func (d *Device) SetCullMode(mode gputypes.CullMode) {
	if mode == d.cullMode {
		return
	}
	ctx := d.ctx
	if mode == gputypes.CullModeNone {
		ctx.Disable(glapi.CULL_FACE)
	} else {
		if d.cullMode == gputypes.CullModeNone {
			ctx.Enable(glapi.CULL_FACE)
		}
		ctx.CullFace(glCullFace[mode])
	}
	d.cullMode = mode
}

// CullMode returns the cached cull mode.
func (d *Device) CullMode() gputypes.CullMode { return d.cullMode }

// SetFrontFace selects the winding order treated as front-facing.
func (d *Device) SetFrontFace(ff gputypes.FrontFace) {
	if ff == d.frontFace {
		return
	}
	d.ctx.FrontFace(glFrontFace[ff])
	d.frontFace = ff
}

// SetAlphaToCoverage toggles alpha-to-coverage rasterization.
func (d *Device) SetAlphaToCoverage(enabled bool) {
	if enabled == d.alphaToCoverage {
		return
	}
	if enabled {
		d.ctx.Enable(glapi.SAMPLE_ALPHA_TO_COVERAGE)
	} else {
		d.ctx.Disable(glapi.SAMPLE_ALPHA_TO_COVERAGE)
	}
	d.alphaToCoverage = enabled
}

// SetViewport sets the viewport rectangle.
func (d *Device) SetViewport(x, y, w, h int32) {
	req := [4]int32{x, y, w, h}
	if req == d.vp {
		return
	}
	d.ctx.Viewport(x, y, w, h)
	d.vp = req
}

// SetScissor sets the scissor rectangle. The scissor test itself is
// enabled/disabled by render passes as needed.
func (d *Device) SetScissor(x, y, w, h int32) {
	req := [4]int32{x, y, w, h}
	if req == d.sc {
		return
	}
	d.ctx.Scissor(x, y, w, h)
	d.sc = req
}

// setActiveTexture switches the active texture unit through the cache.
func (d *Device) setActiveTexture(unit int) {
	if unit == d.activeUnit {
		return
	}
	d.ctx.ActiveTexture(glapi.TEXTURE0 + uint32(unit))
	d.activeUnit = unit
}

// SetTexture binds a texture to a unit, flushing pending parameter and
// data uploads first. The binding cache is two-dimensional: a unit holds
// one binding per target class (2D, cube, 3D), so binding a cube texture
// never evicts the unit's 2D binding.
func (d *Device) SetTexture(t *Texture, unit int) {
	if t == nil || unit < 0 || unit >= len(d.textureUnits) {
		return
	}
	d.setActiveTexture(unit)
	t.ensure()
}

// bindTexture binds on the already-active unit, through the cache. Called
// from Texture.ensure.
func (d *Device) bindTexture(t *Texture) {
	unit := d.activeUnit
	if unit < 0 {
		d.setActiveTexture(0)
		unit = 0
	}
	class := t.targetClass()
	if d.textureUnits[unit][class] == t.impl {
		return
	}
	d.ctx.BindTexture(t.target, t.impl)
	d.textureUnits[unit][class] = t.impl
	d.frame.TextureBinds++
}

// evictTextureBindings clears cache rows naming a texture being destroyed,
// so a recycled native handle cannot alias a stale cache hit.
func (d *Device) evictTextureBindings(t *Texture) {
	class := t.targetClass()
	for unit := range d.textureUnits {
		if d.textureUnits[unit][class] == t.impl {
			d.textureUnits[unit][class] = 0
		}
	}
}

// bindArrayBuffer binds the ARRAY_BUFFER target through the cache.
func (d *Device) bindArrayBuffer(b glapi.Buffer) {
	if b == d.boundArrayBuffer {
		return
	}
	d.ctx.BindBuffer(glapi.ARRAY_BUFFER, b)
	d.boundArrayBuffer = b
}

// bindVAO binds a vertex-array object through the cache. Binding a VAO
// invalidates the tracked ARRAY_BUFFER binding conservatively, since VAO
// state captures attribute buffer bindings.
func (d *Device) bindVAO(vao glapi.VertexArray) {
	if vao == d.boundVAO {
		return
	}
	d.ctx.BindVertexArray(vao)
	d.boundVAO = vao
	d.boundArrayBuffer = 0
}

// setFramebuffer binds a framebuffer through the cache.
func (d *Device) setFramebuffer(fb glapi.Framebuffer) {
	if fb == d.boundFramebuffer {
		return
	}
	d.ctx.BindFramebuffer(glapi.FRAMEBUFFER, fb)
	d.boundFramebuffer = fb
}

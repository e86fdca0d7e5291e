// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

// Primitive describes the range of geometry one draw call covers.
type Primitive struct {
	// Type is the primitive topology.
	Type gputypes.PrimitiveTopology

	// Base is the first vertex, or the first index for indexed draws.
	// For indexed draws the native byte offset is Base times the index
	// element width.
	Base int

	// Count is the vertex or index count.
	Count int

	// Indexed selects indexed drawing through the bound index buffer.
	Indexed bool
}

// ClearFlags select which channels Clear touches.
type ClearFlags uint8

const (
	// ClearColorBuffer clears the color channel.
	ClearColorBuffer ClearFlags = 1 << iota

	// ClearDepthBuffer clears the depth channel.
	ClearDepthBuffer

	// ClearStencilBuffer clears the stencil channel.
	ClearStencilBuffer
)

// ClearOptions carries clear values for the channels named in Flags.
type ClearOptions struct {
	Flags   ClearFlags
	Color   gputypes.Color
	Depth   float32
	Stencil int32
}

// SetShader makes a shader current, compiling it on first use. Returns
// false for nil shaders and for shaders with the sticky failed flag; a
// failed shader is never retried.
func (d *Device) SetShader(s *Shader) bool {
	if s == nil {
		d.shader = nil
		return false
	}
	if s.failed {
		return false
	}
	if !s.ready {
		if err := s.compile(); err != nil {
			return false
		}
	}
	if d.boundProgram != s.program {
		d.ctx.UseProgram(s.program)
		d.boundProgram = s.program
		d.frame.ShaderSwitches++
	}
	d.shader = s
	return true
}

// Shader returns the current shader, or nil.
func (d *Device) Shader() *Shader { return d.shader }

// SetVertexBuffer queues a vertex buffer for the next draw. Multiple
// buffers (mesh + instance data) queue in call order.
func (d *Device) SetVertexBuffer(vb *VertexBuffer) {
	if vb != nil {
		d.vertexBuffers = append(d.vertexBuffers, vb)
	}
}

// SetIndexBuffer sets the index buffer for subsequent indexed draws.
func (d *Device) SetIndexBuffer(ib *IndexBuffer) {
	d.indexBuffer = ib
}

// SetTransformFeedbackBuffer directs vertex outputs of subsequent draws
// into vb. Pass nil to end capture. Ignored on context classes without
// transform feedback.
func (d *Device) SetTransformFeedbackBuffer(vb *VertexBuffer) {
	d.feedbackBuffer = vb
}

// Clear clears the bound render target's channels named in opts.Flags.
// Clear-value state setup is cached like all other state; the native clear
// command itself always executes when any flag is set.
func (d *Device) Clear(opts ClearOptions) {
	if d.lossState != LossActive || d.destroyed || opts.Flags == 0 {
		return
	}
	ctx := d.ctx

	var mask uint32
	if opts.Flags&ClearColorBuffer != 0 {
		if opts.Color != d.clearColor {
			ctx.ClearColor(float32(opts.Color.R), float32(opts.Color.G), float32(opts.Color.B), float32(opts.Color.A))
			d.clearColor = opts.Color
		}
		mask |= glapi.COLOR_BUFFER_BIT
	}
	if opts.Flags&ClearDepthBuffer != 0 {
		if opts.Depth != d.clearDepth {
			ctx.ClearDepth(opts.Depth)
			d.clearDepth = opts.Depth
		}
		// Depth clears require depth writes enabled.
		d.forceDepthWrite(true)
		mask |= glapi.DEPTH_BUFFER_BIT
	}
	if opts.Flags&ClearStencilBuffer != 0 {
		if opts.Stencil != d.clearStencil {
			ctx.ClearStencil(opts.Stencil)
			d.clearStencil = opts.Stencil
		}
		mask |= glapi.STENCIL_BUFFER_BIT
	}

	ctx.Clear(mask)
}

// vaoKey derives the vertex-array cache key from buffer identities and
// format hashes. Distinct (identity, format) combinations always produce
// distinct keys.
func vaoKey(vbs []*VertexBuffer) string {
	var sb strings.Builder
	for _, vb := range vbs {
		sb.WriteString(strconv.FormatUint(vb.id, 36))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(vb.format.Hash(), 36))
		sb.WriteByte('|')
	}
	return sb.String()
}

// buildVAO creates and fills a vertex-array object for the buffer set.
func (d *Device) buildVAO(vbs []*VertexBuffer) glapi.VertexArray {
	ctx := d.ctx
	vao := ctx.CreateVertexArray()
	d.bindVAO(vao)

	for _, vb := range vbs {
		impl := vb.flush()
		d.bindArrayBuffer(impl)
		for _, e := range vb.format.Elements() {
			loc := semanticLocations[e.Semantic]
			info := vertexFormatInfo[e.Format]
			ctx.EnableVertexAttribArray(loc)
			ctx.VertexAttribPointer(loc, info.components, info.glType, info.normalized, vb.format.Stride(), e.offset)
			if vb.format.Instanced() {
				ctx.VertexAttribDivisor(loc, 1)
			}
		}
	}
	return vao
}

// flushBuffers binds the queued vertex buffers through the vertex-array
// cache and flushes the index buffer into the bound VAO's element binding.
// A single buffer uses its per-buffer cached VAO; multiple buffers share a
// cache entry keyed by identity and format.
func (d *Device) flushBuffers() {
	vbs := d.vertexBuffers
	switch len(vbs) {
	case 0:
		// Bufferless draw (generated vertices); leave bindings alone.
	case 1:
		vb := vbs[0]
		if vb.vao == 0 {
			vb.vao = d.buildVAO(vbs)
		} else {
			// Still flush pending data even on the cached path.
			vb.flush()
		}
		d.bindVAO(vb.vao)
	default:
		key := vaoKey(vbs)
		vao, ok := d.vaoCache[key]
		if !ok {
			vao = d.buildVAO(vbs)
			d.vaoCache[key] = vao
		} else {
			for _, vb := range vbs {
				vb.flush()
			}
		}
		d.bindVAO(vao)
	}
	d.vertexBuffers = d.vertexBuffers[:0]

	if d.indexBuffer != nil {
		d.indexBuffer.flush()
	}
}

// commitUniform uploads one uniform value. The value's concrete type must
// match the reflected uniform type; mismatches are skipped silently, the
// same degraded behavior as an unset value.
func (d *Device) commitUniform(u *shaderUniform) {
	ctx := d.ctx
	v := u.scope.value

	switch u.gtype {
	case glapi.FLOAT:
		switch fv := v.(type) {
		case float32:
			ctx.Uniform1f(u.loc, fv)
		case []float32:
			ctx.Uniform1fv(u.loc, fv)
		default:
			return
		}
	case glapi.FLOAT_VEC2:
		if fv, ok := v.([]float32); ok {
			ctx.Uniform2fv(u.loc, fv)
		} else {
			return
		}
	case glapi.FLOAT_VEC3:
		if fv, ok := v.([]float32); ok {
			ctx.Uniform3fv(u.loc, fv)
		} else {
			return
		}
	case glapi.FLOAT_VEC4:
		if fv, ok := v.([]float32); ok {
			ctx.Uniform4fv(u.loc, fv)
		} else {
			return
		}
	case glapi.FLOAT_MAT3:
		if fv, ok := v.([]float32); ok {
			ctx.UniformMatrix3fv(u.loc, fv)
		} else {
			return
		}
	case glapi.FLOAT_MAT4:
		if fv, ok := v.([]float32); ok {
			ctx.UniformMatrix4fv(u.loc, fv)
		} else {
			return
		}
	case glapi.INT, glapi.BOOL:
		switch iv := v.(type) {
		case int:
			ctx.Uniform1i(u.loc, int32(iv))
		case int32:
			ctx.Uniform1i(u.loc, iv)
		case bool:
			var b int32
			if iv {
				b = 1
			}
			ctx.Uniform1i(u.loc, b)
		case []int32:
			ctx.Uniform1iv(u.loc, iv)
		default:
			return
		}
	default:
		return
	}

	u.committed = u.scope.version
	d.frame.UniformCommits++
}

// Draw submits one draw call.
//
// Preconditions and degraded paths, in order:
//   - a lost context or missing shader makes the call a silent no-op with
//     zero native calls;
//   - a sampler whose scope value is unset aborts the draw before any
//     native command ("material mid-edit" semantics);
//   - uniforms recommit only when their scope version moved since the last
//     commit, and never while their value is unset.
//
// instanceCount greater than zero selects the instanced call path;
// zero or negative selects the plain path, never an instanced call with
// zero instances. keepBuffers reuses the buffer bindings of the previous
// draw instead of flushing the queued ones.
func (d *Device) Draw(prim Primitive, instanceCount int, keepBuffers bool) {
	if d.lossState != LossActive || d.destroyed {
		return
	}
	shader := d.shader
	if shader == nil || !shader.ready {
		d.frame.SkippedDraws++
		return
	}
	if d.opts.maxDraws > 0 && d.frame.DrawCalls >= d.opts.maxDraws {
		d.frame.SkippedDraws++
		return
	}

	// Resolve sampler values before touching the GPU: a missing value
	// means "nothing to draw", not an error.
	for _, sam := range shader.samplers {
		if sam.scope.value == nil {
			Logger().Debug("draw skipped, sampler unset", "shader", shader.def.Name, "sampler", sam.scope.Name)
			d.frame.SkippedDraws++
			return
		}
	}

	if !keepBuffers {
		d.flushBuffers()
	}

	for _, sam := range shader.samplers {
		switch tv := sam.scope.value.(type) {
		case *Texture:
			d.SetTexture(tv, sam.unit)
		case []*Texture:
			for i, tex := range tv {
				d.SetTexture(tex, sam.unit+i)
			}
		}
	}

	for _, u := range shader.uniforms {
		if u.scope.value == nil || u.committed == u.scope.version {
			continue
		}
		d.commitUniform(u)
	}

	ctx := d.ctx
	feedback := d.feedbackBuffer != nil && d.caps.SupportsTransformFeedback
	mode := glTopology[prim.Type]
	if feedback {
		impl := d.feedbackBuffer.flush()
		ctx.BindBufferBase(glapi.TRANSFORM_FEEDBACK_BUFFER, 0, impl)
		ctx.BeginTransformFeedback(mode)
	}

	if prim.Indexed && d.indexBuffer != nil {
		xtype := glIndexType[d.indexBuffer.format]
		offset := prim.Base * d.indexBuffer.bytesPerIndex()
		if instanceCount > 0 {
			ctx.DrawElementsInstanced(mode, int32(prim.Count), xtype, offset, int32(instanceCount))
			d.frame.InstancedDrawCalls++
		} else {
			ctx.DrawElements(mode, int32(prim.Count), xtype, offset)
		}
	} else {
		if instanceCount > 0 {
			ctx.DrawArraysInstanced(mode, int32(prim.Base), int32(prim.Count), int32(instanceCount))
			d.frame.InstancedDrawCalls++
		} else {
			ctx.DrawArrays(mode, int32(prim.Base), int32(prim.Count))
		}
	}
	d.frame.DrawCalls++

	if feedback {
		ctx.EndTransformFeedback()
	}
}

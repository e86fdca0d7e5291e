// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/forge/glapi"
)

// glContext implements glapi.Context over desktop OpenGL 4.1 core, which
// carries the full GLES3 feature class forge targets.
type glContext struct {
	extensions []string
}

var _ glapi.Context = (*glContext)(nil)

func newContext() *glContext {
	c := &glContext{}
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := int32(0); i < n; i++ {
		name := gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i)))
		// Probing matches unprefixed names across context classes.
		c.extensions = append(c.extensions, strings.TrimPrefix(name, "GL_"))
	}
	return c
}

// ptr returns a nil-safe data pointer for upload entry points.
func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

func (c *glContext) Profile() glapi.Profile { return glapi.ProfileGLES3 }

func (c *glContext) Extensions() []string { return c.extensions }

func (c *glContext) GetString(pname uint32) string {
	return gl.GoStr(gl.GetString(pname))
}

func (c *glContext) GetInteger(pname uint32) int {
	var v int32
	gl.GetIntegerv(pname, &v)
	return int(v)
}

func (c *glContext) GetFloat(pname uint32) float32 {
	var v float32
	gl.GetFloatv(pname, &v)
	return v
}

func (c *glContext) ShaderPrecisionFormat(shaderType, precisionType uint32) glapi.PrecisionFormat {
	var rng [2]int32
	var precision int32
	gl.GetShaderPrecisionFormat(shaderType, precisionType, &rng[0], &precision)
	return glapi.PrecisionFormat{RangeMin: rng[0], RangeMax: rng[1], Precision: precision}
}

// IsContextLost always reports false: desktop contexts do not surface
// loss the way mobile and browser contexts do.
func (c *glContext) IsContextLost() bool { return false }

func (c *glContext) Enable(cap uint32)  { gl.Enable(cap) }
func (c *glContext) Disable(cap uint32) { gl.Disable(cap) }

func (c *glContext) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (c *glContext) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	gl.BlendEquationSeparate(modeRGB, modeAlpha)
}

func (c *glContext) BlendColor(r, g, b, a float32) { gl.BlendColor(r, g, b, a) }
func (c *glContext) ColorMask(r, g, b, a bool)     { gl.ColorMask(r, g, b, a) }
func (c *glContext) DepthFunc(fn uint32)           { gl.DepthFunc(fn) }
func (c *glContext) DepthMask(write bool)          { gl.DepthMask(write) }

func (c *glContext) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	gl.StencilFuncSeparate(face, fn, ref, mask)
}

func (c *glContext) StencilOpSeparate(face, fail, zfail, zpass uint32) {
	gl.StencilOpSeparate(face, fail, zfail, zpass)
}

func (c *glContext) StencilMaskSeparate(face, mask uint32) {
	gl.StencilMaskSeparate(face, mask)
}

func (c *glContext) CullFace(mode uint32)           { gl.CullFace(mode) }
func (c *glContext) FrontFace(mode uint32)          { gl.FrontFace(mode) }
func (c *glContext) Viewport(x, y, w, h int32)      { gl.Viewport(x, y, w, h) }
func (c *glContext) Scissor(x, y, w, h int32)       { gl.Scissor(x, y, w, h) }
func (c *glContext) PolygonOffset(factor, units float32) {
	gl.PolygonOffset(factor, units)
}
func (c *glContext) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }

func (c *glContext) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (c *glContext) ClearDepth(d float32)          { gl.ClearDepth(float64(d)) }
func (c *glContext) ClearStencil(s int32)          { gl.ClearStencil(s) }
func (c *glContext) Clear(mask uint32)             { gl.Clear(mask) }

func (c *glContext) CreateBuffer() glapi.Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	return glapi.Buffer(id)
}

func (c *glContext) DeleteBuffer(b glapi.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (c *glContext) BindBuffer(target uint32, b glapi.Buffer) {
	gl.BindBuffer(target, uint32(b))
}

func (c *glContext) BindBufferBase(target uint32, index uint32, b glapi.Buffer) {
	gl.BindBufferBase(target, index, uint32(b))
}

func (c *glContext) BufferData(target uint32, size int, data []byte, usage uint32) {
	gl.BufferData(target, size, ptr(data), usage)
}

func (c *glContext) BufferSubData(target uint32, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), ptr(data))
}

func (c *glContext) GetBufferSubData(target uint32, offset int, dst []byte) {
	gl.GetBufferSubData(target, offset, len(dst), gl.Ptr(dst))
}

func (c *glContext) CreateTexture() glapi.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	return glapi.Texture(id)
}

func (c *glContext) DeleteTexture(t glapi.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (c *glContext) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }

func (c *glContext) BindTexture(target uint32, t glapi.Texture) {
	gl.BindTexture(target, uint32(t))
}

func (c *glContext) TexImage2D(target uint32, level int32, internalFormat int32, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, ptr(pixels))
}

func (c *glContext) TexImage3D(target uint32, level int32, internalFormat int32, width, height, depth int32, format, xtype uint32, pixels []byte) {
	gl.TexImage3D(target, level, internalFormat, width, height, depth, 0, format, xtype, ptr(pixels))
}

func (c *glContext) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (c *glContext) TexParameterf(target, pname uint32, param float32) {
	gl.TexParameterf(target, pname, param)
}

func (c *glContext) GenerateMipmap(target uint32) { gl.GenerateMipmap(target) }

// compileShader compiles one shader stage and returns its handle.
func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("gl: compile: %s", strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}

func (c *glContext) CompileProgram(src glapi.ProgramSource) (glapi.Program, []glapi.ActiveUniform, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, src.Vertex)
	if err != nil {
		return 0, nil, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := compileShader(gl.FRAGMENT_SHADER, src.Fragment)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, nil, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	for _, a := range src.Attributes {
		gl.BindAttribLocation(program, a.Location, gl.Str(a.Name+"\x00"))
	}
	if len(src.TransformFeedbackVaryings) > 0 {
		varyings, free := gl.Strs(strings.Join(src.TransformFeedbackVaryings, "\x00") + "\x00")
		gl.TransformFeedbackVaryings(program, int32(len(src.TransformFeedbackVaryings)), varyings, gl.INTERLEAVED_ATTRIBS)
		free()
	}
	gl.LinkProgram(program)

	// The stages are owned by the program after link.
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, nil, fmt.Errorf("gl: link: %s", strings.TrimRight(logText, "\x00"))
	}

	var count int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	uniforms := make([]glapi.ActiveUniform, 0, count)
	nameBuf := make([]uint8, 256)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, uint32(i), int32(len(nameBuf)), &length, &size, &xtype, &nameBuf[0])
		name := string(nameBuf[:length])
		// Arrays reflect as "name[0]".
		name = strings.TrimSuffix(name, "[0]")
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		uniforms = append(uniforms, glapi.ActiveUniform{
			Name:     name,
			Type:     xtype,
			Size:     size,
			Location: glapi.UniformLocation(loc),
		})
	}

	return glapi.Program(program), uniforms, nil
}

func (c *glContext) DeleteProgram(p glapi.Program) { gl.DeleteProgram(uint32(p)) }
func (c *glContext) UseProgram(p glapi.Program)    { gl.UseProgram(uint32(p)) }

func (c *glContext) Uniform1i(loc glapi.UniformLocation, v int32) { gl.Uniform1i(int32(loc), v) }
func (c *glContext) Uniform1f(loc glapi.UniformLocation, v float32) {
	gl.Uniform1f(int32(loc), v)
}
func (c *glContext) Uniform2f(loc glapi.UniformLocation, x, y float32) {
	gl.Uniform2f(int32(loc), x, y)
}
func (c *glContext) Uniform3f(loc glapi.UniformLocation, x, y, z float32) {
	gl.Uniform3f(int32(loc), x, y, z)
}
func (c *glContext) Uniform4f(loc glapi.UniformLocation, x, y, z, w float32) {
	gl.Uniform4f(int32(loc), x, y, z, w)
}
func (c *glContext) Uniform1iv(loc glapi.UniformLocation, v []int32) {
	gl.Uniform1iv(int32(loc), int32(len(v)), &v[0])
}
func (c *glContext) Uniform1fv(loc glapi.UniformLocation, v []float32) {
	gl.Uniform1fv(int32(loc), int32(len(v)), &v[0])
}
func (c *glContext) Uniform2fv(loc glapi.UniformLocation, v []float32) {
	gl.Uniform2fv(int32(loc), int32(len(v)/2), &v[0])
}
func (c *glContext) Uniform3fv(loc glapi.UniformLocation, v []float32) {
	gl.Uniform3fv(int32(loc), int32(len(v)/3), &v[0])
}
func (c *glContext) Uniform4fv(loc glapi.UniformLocation, v []float32) {
	gl.Uniform4fv(int32(loc), int32(len(v)/4), &v[0])
}
func (c *glContext) UniformMatrix3fv(loc glapi.UniformLocation, v []float32) {
	gl.UniformMatrix3fv(int32(loc), int32(len(v)/9), false, &v[0])
}
func (c *glContext) UniformMatrix4fv(loc glapi.UniformLocation, v []float32) {
	gl.UniformMatrix4fv(int32(loc), int32(len(v)/16), false, &v[0])
}

func (c *glContext) CreateVertexArray() glapi.VertexArray {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return glapi.VertexArray(id)
}

func (c *glContext) DeleteVertexArray(v glapi.VertexArray) {
	id := uint32(v)
	gl.DeleteVertexArrays(1, &id)
}

func (c *glContext) BindVertexArray(v glapi.VertexArray) { gl.BindVertexArray(uint32(v)) }

func (c *glContext) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (c *glContext) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride, offset int32) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (c *glContext) VertexAttribDivisor(index, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}

func (c *glContext) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (c *glContext) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}

func (c *glContext) DrawArraysInstanced(mode uint32, first, count, instanceCount int32) {
	gl.DrawArraysInstanced(mode, first, count, instanceCount)
}

func (c *glContext) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instanceCount int32) {
	gl.DrawElementsInstancedWithOffset(mode, count, xtype, uintptr(offset), instanceCount)
}

func (c *glContext) BeginTransformFeedback(primitiveMode uint32) {
	gl.BeginTransformFeedback(primitiveMode)
}

func (c *glContext) EndTransformFeedback() { gl.EndTransformFeedback() }

func (c *glContext) CreateFramebuffer() glapi.Framebuffer {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return glapi.Framebuffer(id)
}

func (c *glContext) DeleteFramebuffer(f glapi.Framebuffer) {
	id := uint32(f)
	gl.DeleteFramebuffers(1, &id)
}

func (c *glContext) BindFramebuffer(target uint32, f glapi.Framebuffer) {
	gl.BindFramebuffer(target, uint32(f))
}

func (c *glContext) FramebufferTexture2D(target, attachment, textarget uint32, t glapi.Texture, level int32) {
	gl.FramebufferTexture2D(target, attachment, textarget, uint32(t), level)
}

func (c *glContext) FramebufferRenderbuffer(target, attachment uint32, r glapi.Renderbuffer) {
	gl.FramebufferRenderbuffer(target, attachment, gl.RENDERBUFFER, uint32(r))
}

func (c *glContext) CreateRenderbuffer() glapi.Renderbuffer {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return glapi.Renderbuffer(id)
}

func (c *glContext) DeleteRenderbuffer(r glapi.Renderbuffer) {
	id := uint32(r)
	gl.DeleteRenderbuffers(1, &id)
}

func (c *glContext) BindRenderbuffer(r glapi.Renderbuffer) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, uint32(r))
}

func (c *glContext) RenderbufferStorage(internalFormat uint32, width, height int32) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, internalFormat, width, height)
}

func (c *glContext) RenderbufferStorageMultisample(samples int32, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, internalFormat, width, height)
}

func (c *glContext) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

// InvalidateFramebuffer is a hint; it arrived in GL 4.3 and is absent from
// the 4.1 core bindings, so desktop contexts skip it.
func (c *glContext) InvalidateFramebuffer(target uint32, attachments []uint32) {}

func (c *glContext) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (c *glContext) DrawBuffers(bufs []uint32) {
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (c *glContext) ReadBuffer(src uint32) { gl.ReadBuffer(src) }

func (c *glContext) ReadPixels(x, y, w, h int32, format, xtype uint32, dst []byte) {
	gl.ReadPixels(x, y, w, h, format, xtype, ptr(dst))
}

func (c *glContext) FenceSync() glapi.Sync {
	return glapi.Sync(gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0))
}

func (c *glContext) ClientWaitSync(s glapi.Sync, flags uint32, timeoutNanos uint64) uint32 {
	return gl.ClientWaitSync(uintptr(s), flags, timeoutNanos)
}

func (c *glContext) DeleteSync(s glapi.Sync) { gl.DeleteSync(uintptr(s)) }

func (c *glContext) Flush()  { gl.Flush() }
func (c *glContext) Finish() { gl.Finish() }

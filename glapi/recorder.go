// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glapi

import (
	"fmt"
)

// Recorder is an in-memory Context implementation that records every native
// call it receives. It backs the forge device and renderer tests: the state
// cache's "zero redundant native calls" invariants are asserted by counting
// recorded calls.
//
// Configuration fields are plain exported fields; tests mutate them before
// handing the Recorder to a device. The zero value is not usable, call
// NewRecorder (GLES3-class defaults) or NewRecorderGLES2.
//
// Recorder is not safe for concurrent use, matching the Context contract.
type Recorder struct {
	// ContextProfile is the API class reported by Profile.
	ContextProfile Profile

	// ExtensionList is returned by Extensions.
	ExtensionList []string

	// Integers, Floats and Strings back GetInteger/GetFloat/GetString.
	// Missing pnames read as zero values.
	Integers map[uint32]int
	Floats   map[uint32]float32
	Strings  map[uint32]string

	// HighpSupported controls ShaderPrecisionFormat for HIGH_FLOAT.
	HighpSupported bool

	// CompileHook, when set, supplies reflection data (and errors) for
	// CompileProgram. When nil every program links with no uniforms.
	CompileHook func(src ProgramSource) ([]ActiveUniform, error)

	// FencePollsUntilSignal is the number of TIMEOUT_EXPIRED results each
	// new fence returns before signaling. Zero signals immediately.
	FencePollsUntilSignal int

	// FenceFail forces ClientWaitSync to report WAIT_FAILED.
	FenceFail bool

	// PixelFill is the byte pattern ReadPixels and GetBufferSubData write
	// into destination slices.
	PixelFill byte

	// Calls is the ordered log of native call names.
	Calls []string

	// counts indexes Calls by name.
	counts map[string]int

	lost       bool
	nextHandle uint32
	fencePolls map[Sync]int

	liveBuffers      map[Buffer]bool
	liveTextures     map[Texture]bool
	livePrograms     map[Program]bool
	liveFramebuffers map[Framebuffer]bool
	liveRenderbufs   map[Renderbuffer]bool
	liveVertexArrays map[VertexArray]bool
}

// NewRecorder returns a Recorder with GLES3-class defaults: 8k textures,
// 16 texture units, 4x MSAA, MRT with 4 draw buffers, highp fragments.
func NewRecorder() *Recorder {
	r := &Recorder{
		ContextProfile: ProfileGLES3,
		ExtensionList: []string{
			"EXT_texture_filter_anisotropic",
			"EXT_color_buffer_float",
		},
		Integers: map[uint32]int{
			MAX_TEXTURE_SIZE:                 8192,
			MAX_CUBE_MAP_TEXTURE_SIZE:        8192,
			MAX_3D_TEXTURE_SIZE:              2048,
			MAX_VERTEX_ATTRIBS:               16,
			MAX_TEXTURE_IMAGE_UNITS:          16,
			MAX_COMBINED_TEXTURE_IMAGE_UNITS: 32,
			MAX_VERTEX_TEXTURE_IMAGE_UNITS:   16,
			MAX_VERTEX_UNIFORM_VECTORS:       1024,
			MAX_FRAGMENT_UNIFORM_VECTORS:     1024,
			MAX_DRAW_BUFFERS:                 4,
			MAX_COLOR_ATTACHMENTS:            4,
			MAX_SAMPLES:                      4,
			MAX_RENDERBUFFER_SIZE:            8192,
		},
		Floats: map[uint32]float32{
			MAX_TEXTURE_MAX_ANISOTROPY: 16,
		},
		Strings: map[uint32]string{
			VENDOR:   "gogpu",
			RENDERER: "forge recorder",
			VERSION:  "OpenGL ES 3.0",
		},
		HighpSupported: true,
		PixelFill:      0xAB,
	}
	r.resetTracking()
	return r
}

// NewRecorderGLES2 returns a Recorder with GLES2-class defaults: no MRT,
// no MSAA renderbuffers, no transform feedback, VAO/instancing reachable
// through the usual extensions.
func NewRecorderGLES2() *Recorder {
	r := NewRecorder()
	r.ContextProfile = ProfileGLES2
	r.ExtensionList = []string{
		"OES_vertex_array_object",
		"ANGLE_instanced_arrays",
		"OES_element_index_uint",
		"EXT_texture_filter_anisotropic",
	}
	delete(r.Integers, MAX_DRAW_BUFFERS)
	delete(r.Integers, MAX_COLOR_ATTACHMENTS)
	delete(r.Integers, MAX_SAMPLES)
	delete(r.Integers, MAX_3D_TEXTURE_SIZE)
	r.Strings[VERSION] = "OpenGL ES 2.0"
	return r
}

func (r *Recorder) resetTracking() {
	r.counts = make(map[string]int)
	r.fencePolls = make(map[Sync]int)
	r.liveBuffers = make(map[Buffer]bool)
	r.liveTextures = make(map[Texture]bool)
	r.livePrograms = make(map[Program]bool)
	r.liveFramebuffers = make(map[Framebuffer]bool)
	r.liveRenderbufs = make(map[Renderbuffer]bool)
	r.liveVertexArrays = make(map[VertexArray]bool)
}

// ResetCalls clears the call log and counters without touching live-handle
// tracking or configuration. Tests call it after setup to count only the
// calls under scrutiny.
func (r *Recorder) ResetCalls() {
	r.Calls = r.Calls[:0]
	r.counts = make(map[string]int)
}

// Count returns how many times the named call was recorded since the last
// ResetCalls.
func (r *Recorder) Count(name string) int { return r.counts[name] }

// TotalCalls returns the number of native calls recorded since the last
// ResetCalls.
func (r *Recorder) TotalCalls() int { return len(r.Calls) }

// LiveHandles returns the number of undeleted buffer, texture, program,
// framebuffer, renderbuffer and vertex-array handles, for leak assertions.
func (r *Recorder) LiveHandles() int {
	return len(r.liveBuffers) + len(r.liveTextures) + len(r.livePrograms) +
		len(r.liveFramebuffers) + len(r.liveRenderbufs) + len(r.liveVertexArrays)
}

// LoseContext marks the context lost, as the platform would.
func (r *Recorder) LoseContext() { r.lost = true }

// RestoreContext clears the lost flag and invalidates every live handle,
// mirroring a real restoration where old handles are dead.
func (r *Recorder) RestoreContext() {
	r.lost = false
	r.liveBuffers = make(map[Buffer]bool)
	r.liveTextures = make(map[Texture]bool)
	r.livePrograms = make(map[Program]bool)
	r.liveFramebuffers = make(map[Framebuffer]bool)
	r.liveRenderbufs = make(map[Renderbuffer]bool)
	r.liveVertexArrays = make(map[VertexArray]bool)
}

func (r *Recorder) record(name string) {
	r.Calls = append(r.Calls, name)
	r.counts[name]++
}

func (r *Recorder) handle() uint32 {
	r.nextHandle++
	return r.nextHandle
}

// Profile implements Context.
func (r *Recorder) Profile() Profile { return r.ContextProfile }

// Extensions implements Context.
func (r *Recorder) Extensions() []string { return r.ExtensionList }

// GetString implements Context.
func (r *Recorder) GetString(pname uint32) string {
	r.record("GetString")
	return r.Strings[pname]
}

// GetInteger implements Context.
func (r *Recorder) GetInteger(pname uint32) int {
	r.record("GetInteger")
	return r.Integers[pname]
}

// GetFloat implements Context.
func (r *Recorder) GetFloat(pname uint32) float32 {
	r.record("GetFloat")
	return r.Floats[pname]
}

// ShaderPrecisionFormat implements Context.
func (r *Recorder) ShaderPrecisionFormat(shaderType, precisionType uint32) PrecisionFormat {
	r.record("ShaderPrecisionFormat")
	if precisionType == HIGH_FLOAT && !r.HighpSupported {
		return PrecisionFormat{}
	}
	return PrecisionFormat{RangeMin: 127, RangeMax: 127, Precision: 23}
}

// IsContextLost implements Context.
func (r *Recorder) IsContextLost() bool { return r.lost }

// Enable implements Context.
func (r *Recorder) Enable(cap uint32) { r.record(fmt.Sprintf("Enable(%#x)", cap)) }

// Disable implements Context.
func (r *Recorder) Disable(cap uint32) { r.record(fmt.Sprintf("Disable(%#x)", cap)) }

// BlendFuncSeparate implements Context.
func (r *Recorder) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	r.record("BlendFuncSeparate")
}

// BlendEquationSeparate implements Context.
func (r *Recorder) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	r.record("BlendEquationSeparate")
}

// BlendColor implements Context.
func (r *Recorder) BlendColor(red, g, b, a float32) { r.record("BlendColor") }

// ColorMask implements Context.
func (r *Recorder) ColorMask(red, g, b, a bool) { r.record("ColorMask") }

// DepthFunc implements Context.
func (r *Recorder) DepthFunc(fn uint32) { r.record("DepthFunc") }

// DepthMask implements Context.
func (r *Recorder) DepthMask(write bool) { r.record("DepthMask") }

// StencilFuncSeparate implements Context.
func (r *Recorder) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	r.record("StencilFuncSeparate")
}

// StencilOpSeparate implements Context.
func (r *Recorder) StencilOpSeparate(face, fail, zfail, zpass uint32) {
	r.record("StencilOpSeparate")
}

// StencilMaskSeparate implements Context.
func (r *Recorder) StencilMaskSeparate(face, mask uint32) { r.record("StencilMaskSeparate") }

// CullFace implements Context.
func (r *Recorder) CullFace(mode uint32) { r.record("CullFace") }

// FrontFace implements Context.
func (r *Recorder) FrontFace(mode uint32) { r.record("FrontFace") }

// Viewport implements Context.
func (r *Recorder) Viewport(x, y, w, h int32) { r.record("Viewport") }

// Scissor implements Context.
func (r *Recorder) Scissor(x, y, w, h int32) { r.record("Scissor") }

// PolygonOffset implements Context.
func (r *Recorder) PolygonOffset(factor, units float32) { r.record("PolygonOffset") }

// PixelStorei implements Context.
func (r *Recorder) PixelStorei(pname uint32, param int32) { r.record("PixelStorei") }

// ClearColor implements Context.
func (r *Recorder) ClearColor(red, g, b, a float32) { r.record("ClearColor") }

// ClearDepth implements Context.
func (r *Recorder) ClearDepth(d float32) { r.record("ClearDepth") }

// ClearStencil implements Context.
func (r *Recorder) ClearStencil(s int32) { r.record("ClearStencil") }

// Clear implements Context.
func (r *Recorder) Clear(mask uint32) { r.record("Clear") }

// CreateBuffer implements Context.
func (r *Recorder) CreateBuffer() Buffer {
	r.record("CreateBuffer")
	b := Buffer(r.handle())
	r.liveBuffers[b] = true
	return b
}

// DeleteBuffer implements Context.
func (r *Recorder) DeleteBuffer(b Buffer) {
	r.record("DeleteBuffer")
	delete(r.liveBuffers, b)
}

// BindBuffer implements Context.
func (r *Recorder) BindBuffer(target uint32, b Buffer) { r.record("BindBuffer") }

// BindBufferBase implements Context.
func (r *Recorder) BindBufferBase(target uint32, index uint32, b Buffer) {
	r.record("BindBufferBase")
}

// BufferData implements Context.
func (r *Recorder) BufferData(target uint32, size int, data []byte, usage uint32) {
	r.record("BufferData")
}

// BufferSubData implements Context.
func (r *Recorder) BufferSubData(target uint32, offset int, data []byte) {
	r.record("BufferSubData")
}

// GetBufferSubData implements Context.
func (r *Recorder) GetBufferSubData(target uint32, offset int, dst []byte) {
	r.record("GetBufferSubData")
	for i := range dst {
		dst[i] = r.PixelFill
	}
}

// CreateTexture implements Context.
func (r *Recorder) CreateTexture() Texture {
	r.record("CreateTexture")
	t := Texture(r.handle())
	r.liveTextures[t] = true
	return t
}

// DeleteTexture implements Context.
func (r *Recorder) DeleteTexture(t Texture) {
	r.record("DeleteTexture")
	delete(r.liveTextures, t)
}

// ActiveTexture implements Context.
func (r *Recorder) ActiveTexture(unit uint32) { r.record("ActiveTexture") }

// BindTexture implements Context.
func (r *Recorder) BindTexture(target uint32, t Texture) { r.record("BindTexture") }

// TexImage2D implements Context.
func (r *Recorder) TexImage2D(target uint32, level int32, internalFormat int32, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage2D")
}

// TexImage3D implements Context.
func (r *Recorder) TexImage3D(target uint32, level int32, internalFormat int32, width, height, depth int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage3D")
}

// TexParameteri implements Context.
func (r *Recorder) TexParameteri(target, pname uint32, param int32) { r.record("TexParameteri") }

// TexParameterf implements Context.
func (r *Recorder) TexParameterf(target, pname uint32, param float32) { r.record("TexParameterf") }

// GenerateMipmap implements Context.
func (r *Recorder) GenerateMipmap(target uint32) { r.record("GenerateMipmap") }

// CompileProgram implements Context.
func (r *Recorder) CompileProgram(src ProgramSource) (Program, []ActiveUniform, error) {
	r.record("CompileProgram")
	var uniforms []ActiveUniform
	if r.CompileHook != nil {
		var err error
		uniforms, err = r.CompileHook(src)
		if err != nil {
			return 0, nil, err
		}
	}
	p := Program(r.handle())
	r.livePrograms[p] = true
	return p, uniforms, nil
}

// DeleteProgram implements Context.
func (r *Recorder) DeleteProgram(p Program) {
	r.record("DeleteProgram")
	delete(r.livePrograms, p)
}

// UseProgram implements Context.
func (r *Recorder) UseProgram(p Program) { r.record("UseProgram") }

// Uniform1i implements Context.
func (r *Recorder) Uniform1i(loc UniformLocation, v int32) { r.record("Uniform1i") }

// Uniform1f implements Context.
func (r *Recorder) Uniform1f(loc UniformLocation, v float32) { r.record("Uniform1f") }

// Uniform2f implements Context.
func (r *Recorder) Uniform2f(loc UniformLocation, x, y float32) { r.record("Uniform2f") }

// Uniform3f implements Context.
func (r *Recorder) Uniform3f(loc UniformLocation, x, y, z float32) { r.record("Uniform3f") }

// Uniform4f implements Context.
func (r *Recorder) Uniform4f(loc UniformLocation, x, y, z, w float32) { r.record("Uniform4f") }

// Uniform1iv implements Context.
func (r *Recorder) Uniform1iv(loc UniformLocation, v []int32) { r.record("Uniform1iv") }

// Uniform1fv implements Context.
func (r *Recorder) Uniform1fv(loc UniformLocation, v []float32) { r.record("Uniform1fv") }

// Uniform2fv implements Context.
func (r *Recorder) Uniform2fv(loc UniformLocation, v []float32) { r.record("Uniform2fv") }

// Uniform3fv implements Context.
func (r *Recorder) Uniform3fv(loc UniformLocation, v []float32) { r.record("Uniform3fv") }

// Uniform4fv implements Context.
func (r *Recorder) Uniform4fv(loc UniformLocation, v []float32) { r.record("Uniform4fv") }

// UniformMatrix3fv implements Context.
func (r *Recorder) UniformMatrix3fv(loc UniformLocation, v []float32) { r.record("UniformMatrix3fv") }

// UniformMatrix4fv implements Context.
func (r *Recorder) UniformMatrix4fv(loc UniformLocation, v []float32) { r.record("UniformMatrix4fv") }

// CreateVertexArray implements Context.
func (r *Recorder) CreateVertexArray() VertexArray {
	r.record("CreateVertexArray")
	v := VertexArray(r.handle())
	r.liveVertexArrays[v] = true
	return v
}

// DeleteVertexArray implements Context.
func (r *Recorder) DeleteVertexArray(v VertexArray) {
	r.record("DeleteVertexArray")
	delete(r.liveVertexArrays, v)
}

// BindVertexArray implements Context.
func (r *Recorder) BindVertexArray(v VertexArray) { r.record("BindVertexArray") }

// EnableVertexAttribArray implements Context.
func (r *Recorder) EnableVertexAttribArray(index uint32) { r.record("EnableVertexAttribArray") }

// VertexAttribPointer implements Context.
func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride, offset int32) {
	r.record("VertexAttribPointer")
}

// VertexAttribDivisor implements Context.
func (r *Recorder) VertexAttribDivisor(index, divisor uint32) { r.record("VertexAttribDivisor") }

// DrawArrays implements Context.
func (r *Recorder) DrawArrays(mode uint32, first, count int32) { r.record("DrawArrays") }

// DrawElements implements Context.
func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	r.record("DrawElements")
}

// DrawArraysInstanced implements Context.
func (r *Recorder) DrawArraysInstanced(mode uint32, first, count, instanceCount int32) {
	r.record("DrawArraysInstanced")
}

// DrawElementsInstanced implements Context.
func (r *Recorder) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instanceCount int32) {
	r.record("DrawElementsInstanced")
}

// BeginTransformFeedback implements Context.
func (r *Recorder) BeginTransformFeedback(primitiveMode uint32) { r.record("BeginTransformFeedback") }

// EndTransformFeedback implements Context.
func (r *Recorder) EndTransformFeedback() { r.record("EndTransformFeedback") }

// CreateFramebuffer implements Context.
func (r *Recorder) CreateFramebuffer() Framebuffer {
	r.record("CreateFramebuffer")
	f := Framebuffer(r.handle())
	r.liveFramebuffers[f] = true
	return f
}

// DeleteFramebuffer implements Context.
func (r *Recorder) DeleteFramebuffer(f Framebuffer) {
	r.record("DeleteFramebuffer")
	delete(r.liveFramebuffers, f)
}

// BindFramebuffer implements Context.
func (r *Recorder) BindFramebuffer(target uint32, f Framebuffer) { r.record("BindFramebuffer") }

// FramebufferTexture2D implements Context.
func (r *Recorder) FramebufferTexture2D(target, attachment, textarget uint32, t Texture, level int32) {
	r.record("FramebufferTexture2D")
}

// FramebufferRenderbuffer implements Context.
func (r *Recorder) FramebufferRenderbuffer(target, attachment uint32, rb Renderbuffer) {
	r.record("FramebufferRenderbuffer")
}

// CreateRenderbuffer implements Context.
func (r *Recorder) CreateRenderbuffer() Renderbuffer {
	r.record("CreateRenderbuffer")
	rb := Renderbuffer(r.handle())
	r.liveRenderbufs[rb] = true
	return rb
}

// DeleteRenderbuffer implements Context.
func (r *Recorder) DeleteRenderbuffer(rb Renderbuffer) {
	r.record("DeleteRenderbuffer")
	delete(r.liveRenderbufs, rb)
}

// BindRenderbuffer implements Context.
func (r *Recorder) BindRenderbuffer(rb Renderbuffer) { r.record("BindRenderbuffer") }

// RenderbufferStorage implements Context.
func (r *Recorder) RenderbufferStorage(internalFormat uint32, width, height int32) {
	r.record("RenderbufferStorage")
}

// RenderbufferStorageMultisample implements Context.
func (r *Recorder) RenderbufferStorageMultisample(samples int32, internalFormat uint32, width, height int32) {
	r.record("RenderbufferStorageMultisample")
}

// CheckFramebufferStatus implements Context.
func (r *Recorder) CheckFramebufferStatus(target uint32) uint32 {
	r.record("CheckFramebufferStatus")
	return FRAMEBUFFER_COMPLETE
}

// InvalidateFramebuffer implements Context.
func (r *Recorder) InvalidateFramebuffer(target uint32, attachments []uint32) {
	r.record("InvalidateFramebuffer")
}

// BlitFramebuffer implements Context.
func (r *Recorder) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	r.record("BlitFramebuffer")
}

// DrawBuffers implements Context.
func (r *Recorder) DrawBuffers(bufs []uint32) { r.record("DrawBuffers") }

// ReadBuffer implements Context.
func (r *Recorder) ReadBuffer(src uint32) { r.record("ReadBuffer") }

// ReadPixels implements Context.
func (r *Recorder) ReadPixels(x, y, w, h int32, format, xtype uint32, dst []byte) {
	r.record("ReadPixels")
	for i := range dst {
		dst[i] = r.PixelFill
	}
}

// FenceSync implements Context.
func (r *Recorder) FenceSync() Sync {
	r.record("FenceSync")
	s := Sync(r.handle())
	r.fencePolls[s] = r.FencePollsUntilSignal
	return s
}

// ClientWaitSync implements Context.
func (r *Recorder) ClientWaitSync(s Sync, flags uint32, timeoutNanos uint64) uint32 {
	r.record("ClientWaitSync")
	if r.FenceFail {
		return WAIT_FAILED
	}
	if r.fencePolls[s] > 0 {
		r.fencePolls[s]--
		return TIMEOUT_EXPIRED
	}
	return ALREADY_SIGNALED
}

// DeleteSync implements Context.
func (r *Recorder) DeleteSync(s Sync) {
	r.record("DeleteSync")
	delete(r.fencePolls, s)
}

// Flush implements Context.
func (r *Recorder) Flush() { r.record("Flush") }

// Finish implements Context.
func (r *Recorder) Finish() { r.record("Finish") }

// Ensure Recorder implements Context.
var _ Context = (*Recorder)(nil)

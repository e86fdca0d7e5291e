// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glapi

// Profile identifies the API class of a native context.
//
// ProfileGLES2 corresponds to the WebGL1/GLES2 feature class, where
// vertex-array objects, instancing, multiple render targets and several
// texture formats are only reachable through extensions. ProfileGLES3
// corresponds to the WebGL2/GLES3 class where those are core.
type Profile int

const (
	// ProfileGLES2 is the GLES2/WebGL1 feature class.
	ProfileGLES2 Profile = 2

	// ProfileGLES3 is the GLES3/WebGL2 feature class.
	ProfileGLES3 Profile = 3
)

// String returns the profile name.
func (p Profile) String() string {
	switch p {
	case ProfileGLES2:
		return "gles2"
	case ProfileGLES3:
		return "gles3"
	default:
		return "unknown"
	}
}

// Handle types. The zero value is the null object for every type; for
// Framebuffer it doubles as the default (on-screen) framebuffer, matching
// native GL semantics.
type (
	// Buffer is a native buffer object handle.
	Buffer uint32

	// Texture is a native texture object handle.
	Texture uint32

	// Program is a native linked-program handle.
	Program uint32

	// Framebuffer is a native framebuffer handle. Zero is the backbuffer.
	Framebuffer uint32

	// Renderbuffer is a native renderbuffer handle.
	Renderbuffer uint32

	// VertexArray is a native vertex-array-object handle.
	VertexArray uint32

	// Sync is a native fence-sync handle.
	Sync uint64
)

// UniformLocation addresses one active uniform within a linked program.
// A negative value means the uniform is not active.
type UniformLocation int32

// AttributeBinding pins one vertex attribute to an explicit location before
// link, so every program sees the same semantic→location table.
type AttributeBinding struct {
	Name     string
	Location uint32
}

// ProgramSource carries everything needed to compile and link one program.
// TransformFeedbackVaryings is only honored on GLES3-class contexts.
type ProgramSource struct {
	Vertex                    string
	Fragment                  string
	Attributes                []AttributeBinding
	TransformFeedbackVaryings []string
}

// ActiveUniform is the reflected description of one active uniform or
// sampler in a linked program. Type holds the native uniform type constant
// (FLOAT_VEC4, SAMPLER_2D, ...); Size is the declared array length, 1 for
// non-arrays.
type ActiveUniform struct {
	Name     string
	Type     uint32
	Size     int32
	Location UniformLocation
}

// PrecisionFormat describes shader precision support, mirroring
// getShaderPrecisionFormat semantics.
type PrecisionFormat struct {
	RangeMin  int32
	RangeMax  int32
	Precision int32
}

// Context is the immediate-mode native graphics context.
//
// Context is NOT safe for concurrent use: the forge device mutates context
// state from a single logical thread and relies on call ordering. Every
// method maps to at most one native call; implementations must not cache or
// elide state changes, that is the device's job.
type Context interface {
	// Profile reports the API class of this context.
	Profile() Profile

	// Extensions returns the supported extension names. On GLES3-class
	// contexts this still lists extensions that remained extensions in
	// core (anisotropic filtering, float color buffers).
	Extensions() []string

	// GetString queries a string parameter (VENDOR, RENDERER, VERSION).
	GetString(pname uint32) string

	// GetInteger queries an integer limit or binding.
	GetInteger(pname uint32) int

	// GetFloat queries a float limit.
	GetFloat(pname uint32) float32

	// ShaderPrecisionFormat queries precision support for a shader type
	// and precision qualifier pair.
	ShaderPrecisionFormat(shaderType, precisionType uint32) PrecisionFormat

	// IsContextLost reports whether the native context is currently lost.
	IsContextLost() bool

	// Capability toggles and fixed-function state.
	Enable(cap uint32)
	Disable(cap uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	BlendColor(r, g, b, a float32)
	ColorMask(r, g, b, a bool)
	DepthFunc(fn uint32)
	DepthMask(write bool)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	StencilOpSeparate(face, fail, zfail, zpass uint32)
	StencilMaskSeparate(face, mask uint32)
	CullFace(mode uint32)
	FrontFace(mode uint32)
	Viewport(x, y, w, h int32)
	Scissor(x, y, w, h int32)
	PolygonOffset(factor, units float32)
	PixelStorei(pname uint32, param int32)

	// Clear state and execution.
	ClearColor(r, g, b, a float32)
	ClearDepth(d float32)
	ClearStencil(s int32)
	Clear(mask uint32)

	// Buffer objects.
	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target uint32, b Buffer)
	BindBufferBase(target uint32, index uint32, b Buffer)
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	GetBufferSubData(target uint32, offset int, dst []byte)

	// Texture objects.
	CreateTexture() Texture
	DeleteTexture(t Texture)
	ActiveTexture(unit uint32)
	BindTexture(target uint32, t Texture)
	TexImage2D(target uint32, level int32, internalFormat int32, width, height int32, format, xtype uint32, pixels []byte)
	TexImage3D(target uint32, level int32, internalFormat int32, width, height, depth int32, format, xtype uint32, pixels []byte)
	TexParameteri(target, pname uint32, param int32)
	TexParameterf(target, pname uint32, param float32)
	GenerateMipmap(target uint32)

	// Programs and uniforms.
	CompileProgram(src ProgramSource) (Program, []ActiveUniform, error)
	DeleteProgram(p Program)
	UseProgram(p Program)
	Uniform1i(loc UniformLocation, v int32)
	Uniform1f(loc UniformLocation, v float32)
	Uniform2f(loc UniformLocation, x, y float32)
	Uniform3f(loc UniformLocation, x, y, z float32)
	Uniform4f(loc UniformLocation, x, y, z, w float32)
	Uniform1iv(loc UniformLocation, v []int32)
	Uniform1fv(loc UniformLocation, v []float32)
	Uniform2fv(loc UniformLocation, v []float32)
	Uniform3fv(loc UniformLocation, v []float32)
	Uniform4fv(loc UniformLocation, v []float32)
	UniformMatrix3fv(loc UniformLocation, v []float32)
	UniformMatrix4fv(loc UniformLocation, v []float32)

	// Vertex-array objects and attributes. On GLES2-class contexts these
	// are backed by OES_vertex_array_object; implementations resolve the
	// entry points once at construction, callers never branch.
	CreateVertexArray() VertexArray
	DeleteVertexArray(v VertexArray)
	BindVertexArray(v VertexArray)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride, offset int32)
	VertexAttribDivisor(index, divisor uint32)

	// Draws.
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	DrawArraysInstanced(mode uint32, first, count, instanceCount int32)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instanceCount int32)

	// Transform feedback (GLES3-class only; no-ops on GLES2).
	BeginTransformFeedback(primitiveMode uint32)
	EndTransformFeedback()

	// Framebuffers and renderbuffers.
	CreateFramebuffer() Framebuffer
	DeleteFramebuffer(f Framebuffer)
	BindFramebuffer(target uint32, f Framebuffer)
	FramebufferTexture2D(target, attachment, textarget uint32, t Texture, level int32)
	FramebufferRenderbuffer(target, attachment uint32, r Renderbuffer)
	CreateRenderbuffer() Renderbuffer
	DeleteRenderbuffer(r Renderbuffer)
	BindRenderbuffer(r Renderbuffer)
	RenderbufferStorage(internalFormat uint32, width, height int32)
	RenderbufferStorageMultisample(samples int32, internalFormat uint32, width, height int32)
	CheckFramebufferStatus(target uint32) uint32
	InvalidateFramebuffer(target uint32, attachments []uint32)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)
	DrawBuffers(bufs []uint32)
	ReadBuffer(src uint32)

	// Readback and synchronization.
	ReadPixels(x, y, w, h int32, format, xtype uint32, dst []byte)
	FenceSync() Sync
	ClientWaitSync(s Sync, flags uint32, timeoutNanos uint64) uint32
	DeleteSync(s Sync)
	Flush()
	Finish()
}

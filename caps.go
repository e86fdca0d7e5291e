// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"github.com/gogpu/forge/glapi"
)

// Capabilities is the normalized capability table of a device. It is
// computed eagerly during device creation and again in full on context
// restoration, since extension objects and limits are invalidated with the
// context. All fields are plain values: renderer code reads them, never
// re-probes.
//
// Features reachable natively on GLES3-class contexts and via extensions on
// GLES2-class ones collapse into single flags here; callers can not and
// must not tell which path supplied a feature.
type Capabilities struct {
	// GLES3 reports a GLES3/WebGL2-class context.
	GLES3 bool

	// Vendor and Renderer are the native driver identification strings.
	Vendor   string
	Renderer string

	// Limits.
	MaxTextureSize       int
	MaxCubeMapSize       int
	MaxVolumeSize        int
	MaxTextureUnits      int
	MaxCombinedTextures  int
	MaxVertexTextures    int
	MaxVertexUniforms    int
	MaxFragmentUniforms  int
	MaxVertexAttribs     int
	MaxDrawBuffers       int
	MaxColorAttachments  int
	MaxSamples           int
	MaxRenderbufferSize  int
	MaxAnisotropy        float32

	// Feature flags.
	SupportsMRT               bool
	SupportsInstancing        bool
	SupportsVAO               bool
	SupportsMSAA              bool
	SupportsTransformFeedback bool
	SupportsUint32Indices     bool
	SupportsDepthTexture      bool
	SupportsTextureFloat      bool
	SupportsTextureHalfFloat  bool
	TextureFloatRenderable    bool
	SupportsAnisotropy        bool
	SupportsNPOTMipmaps       bool
	SupportsInvalidateBuffers bool
	SupportsFenceSync         bool
	SupportsVolumeTextures    bool
	SupportsDepthBlit         bool

	// HighPrecision reports highp float support in fragment shaders.
	HighPrecision bool

	// Quirk-driven limits (see quirks.go).
	MaxBones             int
	SupportsGPUParticles bool
}

// hasExtension reports whether name is in the probed extension list.
func hasExtension(exts []string, name string) bool {
	for _, e := range exts {
		if e == name {
			return true
		}
	}
	return false
}

// probeCapabilities queries the native context and normalizes the
// GLES2/GLES3 divergence into one table. Vendor workarounds are applied as
// a separate data-driven step afterwards (applyQuirks).
func probeCapabilities(ctx glapi.Context) *Capabilities {
	gles3 := ctx.Profile() == glapi.ProfileGLES3
	exts := ctx.Extensions()

	c := &Capabilities{
		GLES3:    gles3,
		Vendor:   ctx.GetString(glapi.VENDOR),
		Renderer: ctx.GetString(glapi.RENDERER),

		MaxTextureSize:      ctx.GetInteger(glapi.MAX_TEXTURE_SIZE),
		MaxCubeMapSize:      ctx.GetInteger(glapi.MAX_CUBE_MAP_TEXTURE_SIZE),
		MaxTextureUnits:     ctx.GetInteger(glapi.MAX_TEXTURE_IMAGE_UNITS),
		MaxCombinedTextures: ctx.GetInteger(glapi.MAX_COMBINED_TEXTURE_IMAGE_UNITS),
		MaxVertexTextures:   ctx.GetInteger(glapi.MAX_VERTEX_TEXTURE_IMAGE_UNITS),
		MaxVertexUniforms:   ctx.GetInteger(glapi.MAX_VERTEX_UNIFORM_VECTORS),
		MaxFragmentUniforms: ctx.GetInteger(glapi.MAX_FRAGMENT_UNIFORM_VECTORS),
		MaxVertexAttribs:    ctx.GetInteger(glapi.MAX_VERTEX_ATTRIBS),
		MaxRenderbufferSize: ctx.GetInteger(glapi.MAX_RENDERBUFFER_SIZE),

		MaxBones:             1024,
		SupportsGPUParticles: true,
	}

	if gles3 {
		c.MaxVolumeSize = ctx.GetInteger(glapi.MAX_3D_TEXTURE_SIZE)
		c.MaxDrawBuffers = ctx.GetInteger(glapi.MAX_DRAW_BUFFERS)
		c.MaxColorAttachments = ctx.GetInteger(glapi.MAX_COLOR_ATTACHMENTS)
		c.MaxSamples = ctx.GetInteger(glapi.MAX_SAMPLES)

		c.SupportsMRT = true
		c.SupportsInstancing = true
		c.SupportsVAO = true
		c.SupportsMSAA = c.MaxSamples > 1
		c.SupportsTransformFeedback = true
		c.SupportsUint32Indices = true
		c.SupportsDepthTexture = true
		c.SupportsTextureFloat = true
		c.SupportsTextureHalfFloat = true
		c.SupportsNPOTMipmaps = true
		c.SupportsInvalidateBuffers = true
		c.SupportsFenceSync = true
		c.SupportsVolumeTextures = true
		c.SupportsDepthBlit = true
		c.TextureFloatRenderable = hasExtension(exts, "EXT_color_buffer_float")
	} else {
		c.MaxVolumeSize = 1
		c.MaxDrawBuffers = 1
		c.MaxColorAttachments = 1
		c.MaxSamples = 1

		c.SupportsVAO = hasExtension(exts, "OES_vertex_array_object")
		c.SupportsInstancing = hasExtension(exts, "ANGLE_instanced_arrays")
		c.SupportsUint32Indices = hasExtension(exts, "OES_element_index_uint")
		c.SupportsDepthTexture = hasExtension(exts, "WEBGL_depth_texture")
		c.SupportsTextureFloat = hasExtension(exts, "OES_texture_float")
		c.SupportsTextureHalfFloat = hasExtension(exts, "OES_texture_half_float")
		c.TextureFloatRenderable = hasExtension(exts, "WEBGL_color_buffer_float")
		if hasExtension(exts, "WEBGL_draw_buffers") {
			c.SupportsMRT = true
			c.MaxDrawBuffers = ctx.GetInteger(glapi.MAX_DRAW_BUFFERS)
			c.MaxColorAttachments = c.MaxDrawBuffers
		}
	}

	c.SupportsAnisotropy = hasExtension(exts, "EXT_texture_filter_anisotropic")
	if c.SupportsAnisotropy {
		c.MaxAnisotropy = ctx.GetFloat(glapi.MAX_TEXTURE_MAX_ANISOTROPY)
	} else {
		c.MaxAnisotropy = 1
	}

	pf := ctx.ShaderPrecisionFormat(glapi.FRAGMENT_SHADER, glapi.HIGH_FLOAT)
	c.HighPrecision = pf.Precision > 0

	return c
}

// resolveSamples derives the default-framebuffer sample count from the
// requested context attributes and the probed capabilities. Multisampling
// quirks have already been folded into SupportsMSAA by this point, so a
// quirked device resolves to 1 regardless of platform support.
func resolveSamples(antialias bool, caps *Capabilities) int {
	if !antialias || !caps.SupportsMSAA {
		return 1
	}
	samples := caps.MaxSamples
	if samples > 4 {
		samples = 4
	}
	if samples < 1 {
		samples = 1
	}
	return samples
}

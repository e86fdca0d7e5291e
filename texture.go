// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

// Texture target classes. A single texture unit holds one binding per
// class simultaneously, which is why the binding cache is two-dimensional.
const (
	targetClass2D = iota
	targetClassCube
	targetClass3D
	numTargetClasses
)

// texFormatInfo is the native upload description of one texture format.
type texFormatInfo struct {
	sizedInternal   uint32
	unsizedInternal uint32
	format          uint32
	xtype           uint32
	depth           bool
	stencil         bool
}

var glTexFormat = map[gputypes.TextureFormat]texFormatInfo{
	gputypes.TextureFormatRGBA8Unorm: {
		sizedInternal: glapi.RGBA8, unsizedInternal: glapi.RGBA,
		format: glapi.RGBA, xtype: glapi.UNSIGNED_BYTE,
	},
	gputypes.TextureFormatBGRA8Unorm: {
		// GL has no BGRA internal format; swizzled on upload by callers.
		sizedInternal: glapi.RGBA8, unsizedInternal: glapi.RGBA,
		format: glapi.RGBA, xtype: glapi.UNSIGNED_BYTE,
	},
	gputypes.TextureFormatR8Unorm: {
		sizedInternal: glapi.R8, unsizedInternal: glapi.RED,
		format: glapi.RED, xtype: glapi.UNSIGNED_BYTE,
	},
	gputypes.TextureFormatRGBA16Float: {
		sizedInternal: glapi.RGBA16F, unsizedInternal: glapi.RGBA,
		format: glapi.RGBA, xtype: glapi.HALF_FLOAT,
	},
	gputypes.TextureFormatRGBA32Float: {
		sizedInternal: glapi.RGBA32F, unsizedInternal: glapi.RGBA,
		format: glapi.RGBA, xtype: glapi.FLOAT,
	},
	gputypes.TextureFormatDepth24Plus: {
		sizedInternal: glapi.DEPTH_COMPONENT24, unsizedInternal: glapi.DEPTH_COMPONENT,
		format: glapi.DEPTH_COMPONENT, xtype: glapi.UNSIGNED_INT,
		depth: true,
	},
	gputypes.TextureFormatDepth24PlusStencil8: {
		sizedInternal: glapi.DEPTH24_STENCIL8, unsizedInternal: glapi.DEPTH_STENCIL,
		format: glapi.DEPTH_STENCIL, xtype: glapi.UNSIGNED_INT_24_8,
		depth: true, stencil: true,
	},
	gputypes.TextureFormatDepth32Float: {
		sizedInternal: glapi.DEPTH_COMPONENT32F, unsizedInternal: glapi.DEPTH_COMPONENT,
		format: glapi.DEPTH_COMPONENT, xtype: glapi.FLOAT,
		depth: true,
	},
}

// TextureOptions configures texture creation. Unset fields take documented
// defaults: RGBA8 format, mipmaps enabled, linear filtering, repeat
// addressing, 2D target.
type TextureOptions struct {
	// Name labels the texture in logs.
	Name string

	// Width and Height are the level-0 dimensions in pixels. Required.
	Width  int
	Height int

	// Depth is the slice count for volume textures. Zero means 1.
	Depth int

	// Format is the pixel format. Zero value means RGBA8.
	Format gputypes.TextureFormat

	// Mipmaps requests a full mip chain, generated after upload.
	// Defaults to true; NoMipmaps overrides.
	NoMipmaps bool

	// MinFilter and MagFilter select sampling filters.
	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode

	// AddressU, AddressV and AddressW select wrap modes per axis.
	AddressU gputypes.AddressMode
	AddressV gputypes.AddressMode
	AddressW gputypes.AddressMode

	// Anisotropy is the requested anisotropic filtering level, clamped to
	// the device maximum. Zero disables.
	Anisotropy float32

	// Cubemap creates a cube texture; Levels then holds six faces.
	Cubemap bool

	// Volume creates a 3D texture (GLES3-class only).
	Volume bool

	// Levels holds the level-0 pixel data: one entry for 2D and volume
	// textures, six face entries for cubemaps. May be nil for render
	// targets and streamed textures.
	Levels [][]byte

	// CompareOnRead enables hardware shadow-map comparison sampling.
	CompareOnRead bool
	CompareFunc   gputypes.CompareFunction
}

// Texture is a device texture resource. The CPU-side descriptor is kept for
// the life of the texture; the native object is created lazily on first
// bind and rebuilt from the descriptor after context loss. Parameter and
// data changes set dirty flags that are flushed before the next draw that
// samples the texture.
type Texture struct {
	device *Device
	name   string

	width, height, depth int
	format               gputypes.TextureFormat
	mipmaps              bool
	minFilter, magFilter gputypes.FilterMode
	addressU, addressV   gputypes.AddressMode
	addressW             gputypes.AddressMode
	anisotropy           float32
	cubemap, volume      bool
	levels               [][]byte
	compareOnRead        bool
	compareFunc          gputypes.CompareFunction

	impl        glapi.Texture
	target      uint32
	dirtyParams bool
	dirtyLevels bool
}

// NewTexture creates a texture from options, applying defaults. Returns nil
// when the format is unknown or a volume texture is requested on a context
// class without 3D texture support; callers treat nil as a missing sampler
// value, which degrades to skipped draws rather than errors.
func (d *Device) NewTexture(opts TextureOptions) *Texture {
	format := opts.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	if _, ok := glTexFormat[format]; !ok {
		Logger().Warn("unknown texture format", "name", opts.Name, "format", format)
		return nil
	}
	if opts.Volume && !d.caps.SupportsVolumeTextures {
		Logger().Warn("volume textures unsupported on this context", "name", opts.Name)
		return nil
	}

	depth := opts.Depth
	if depth == 0 {
		depth = 1
	}
	t := &Texture{
		device:        d,
		name:          opts.Name,
		width:         opts.Width,
		height:        opts.Height,
		depth:         depth,
		format:        format,
		mipmaps:       !opts.NoMipmaps,
		minFilter:     opts.MinFilter,
		magFilter:     opts.MagFilter,
		addressU:      opts.AddressU,
		addressV:      opts.AddressV,
		addressW:      opts.AddressW,
		anisotropy:    opts.Anisotropy,
		cubemap:       opts.Cubemap,
		volume:        opts.Volume,
		levels:        opts.Levels,
		compareOnRead: opts.CompareOnRead,
		compareFunc:   opts.CompareFunc,
		dirtyParams:   true,
		dirtyLevels:   len(opts.Levels) > 0,
	}
	switch {
	case t.cubemap:
		t.target = glapi.TEXTURE_CUBE_MAP
	case t.volume:
		t.target = glapi.TEXTURE_3D
	default:
		t.target = glapi.TEXTURE_2D
	}
	if t.anisotropy > d.caps.MaxAnisotropy {
		t.anisotropy = d.caps.MaxAnisotropy
	}
	// Unspecified sampling options fall back to linear/repeat.
	if _, ok := glMagFilter[t.magFilter]; !ok {
		t.magFilter = gputypes.FilterModeLinear
	}
	if _, ok := glMagFilter[t.minFilter]; !ok {
		t.minFilter = gputypes.FilterModeLinear
	}
	if _, ok := glAddressMode[t.addressU]; !ok {
		t.addressU = gputypes.AddressModeRepeat
	}
	if _, ok := glAddressMode[t.addressV]; !ok {
		t.addressV = gputypes.AddressModeRepeat
	}
	if _, ok := glAddressMode[t.addressW]; !ok {
		t.addressW = gputypes.AddressModeRepeat
	}
	// Depth formats sample with nearest filtering unless comparing.
	if fi := glTexFormat[format]; fi.depth && !t.compareOnRead {
		t.minFilter = gputypes.FilterModeNearest
		t.magFilter = gputypes.FilterModeNearest
		t.mipmaps = false
	}
	d.registerResource(t)
	return t
}

// Width returns the level-0 width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the level-0 height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Cubemap reports whether this is a cube texture.
func (t *Texture) Cubemap() bool { return t.cubemap }

// Volume reports whether this is a 3D texture.
func (t *Texture) Volume() bool { return t.volume }

// Mipmaps reports whether the texture carries a mip chain.
func (t *Texture) Mipmaps() bool { return t.mipmaps }

// Pot reports power-of-two dimensions, the precondition for mipmap
// generation on GLES2-class contexts.
func (t *Texture) Pot() bool {
	return isPowerOfTwo(t.width) && isPowerOfTwo(t.height)
}

func isPowerOfTwo(v int) bool { return v > 0 && v&(v-1) == 0 }

// targetClass returns the binding-cache row for this texture's target.
func (t *Texture) targetClass() int {
	switch t.target {
	case glapi.TEXTURE_CUBE_MAP:
		return targetClassCube
	case glapi.TEXTURE_3D:
		return targetClass3D
	default:
		return targetClass2D
	}
}

// SetLevels replaces the pixel data and marks the upload pending.
func (t *Texture) SetLevels(levels [][]byte) {
	t.levels = levels
	t.dirtyLevels = true
}

// SetFilters changes the sampling filters; flushed before the next draw.
func (t *Texture) SetFilters(minFilter, magFilter gputypes.FilterMode) {
	if t.minFilter != minFilter || t.magFilter != magFilter {
		t.minFilter = minFilter
		t.magFilter = magFilter
		t.dirtyParams = true
	}
}

// SetAddressModes changes the wrap modes; flushed before the next draw.
func (t *Texture) SetAddressModes(u, v, w gputypes.AddressMode) {
	if t.addressU != u || t.addressV != v || t.addressW != w {
		t.addressU = u
		t.addressV = v
		t.addressW = w
		t.dirtyParams = true
	}
}

// ensure creates the native texture if needed and flushes pending
// parameters and uploads. The caller must have bound the texture's unit;
// ensure leaves the texture bound on the active unit.
func (t *Texture) ensure() {
	ctx := t.device.ctx
	if t.impl == 0 {
		t.impl = ctx.CreateTexture()
		t.dirtyParams = true
		t.dirtyLevels = len(t.levels) > 0 || t.dirtyLevels
	}
	t.device.bindTexture(t)
	if t.dirtyParams {
		t.flushParams()
		t.dirtyParams = false
	}
	if t.dirtyLevels {
		t.upload()
		t.dirtyLevels = false
	}
}

// flushParams pushes filter, wrap, anisotropy and comparison parameters.
func (t *Texture) flushParams() {
	ctx := t.device.ctx
	caps := t.device.caps

	mips := t.mipmaps && (caps.SupportsNPOTMipmaps || t.Pot())
	ctx.TexParameteri(t.target, glapi.TEXTURE_MIN_FILTER, int32(glMinFilter(t.minFilter, mips)))
	ctx.TexParameteri(t.target, glapi.TEXTURE_MAG_FILTER, int32(glMagFilter[t.magFilter]))
	ctx.TexParameteri(t.target, glapi.TEXTURE_WRAP_S, int32(glAddressMode[t.addressU]))
	ctx.TexParameteri(t.target, glapi.TEXTURE_WRAP_T, int32(glAddressMode[t.addressV]))
	if t.volume {
		ctx.TexParameteri(t.target, glapi.TEXTURE_WRAP_R, int32(glAddressMode[t.addressW]))
	}
	if caps.SupportsAnisotropy && t.anisotropy > 1 {
		ctx.TexParameterf(t.target, glapi.TEXTURE_MAX_ANISOTROPY, t.anisotropy)
	}
	if t.compareOnRead && caps.GLES3 {
		ctx.TexParameteri(t.target, glapi.TEXTURE_COMPARE_MODE, int32(glapi.COMPARE_REF_TO_TEXTURE))
		ctx.TexParameteri(t.target, glapi.TEXTURE_COMPARE_FUNC, int32(glCompareFunc[t.compareFunc]))
	}
}

// upload pushes level-0 data (all faces for cubemaps) and regenerates the
// mip chain when requested and permitted.
func (t *Texture) upload() {
	ctx := t.device.ctx
	caps := t.device.caps
	fi := glTexFormat[t.format]

	internal := int32(fi.sizedInternal)
	if !caps.GLES3 {
		internal = int32(fi.unsizedInternal)
	}

	switch {
	case t.cubemap:
		for face := 0; face < 6; face++ {
			var data []byte
			if face < len(t.levels) {
				data = t.levels[face]
			}
			target := glapi.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(face)
			ctx.TexImage2D(target, 0, internal, int32(t.width), int32(t.height), fi.format, fi.xtype, data)
		}
	case t.volume:
		var data []byte
		if len(t.levels) > 0 {
			data = t.levels[0]
		}
		ctx.TexImage3D(t.target, 0, internal, int32(t.width), int32(t.height), int32(t.depth), fi.format, fi.xtype, data)
	default:
		var data []byte
		if len(t.levels) > 0 {
			data = t.levels[0]
		}
		ctx.TexImage2D(t.target, 0, internal, int32(t.width), int32(t.height), fi.format, fi.xtype, data)
	}

	if t.mipmaps && !fi.depth && (caps.SupportsNPOTMipmaps || t.Pot()) {
		ctx.GenerateMipmap(t.target)
	}
}

// Destroy releases the native texture and unregisters the resource.
func (t *Texture) Destroy() {
	if t.impl != 0 {
		t.device.evictTextureBindings(t)
		t.device.ctx.DeleteTexture(t.impl)
		t.impl = 0
	}
	t.device.unregisterResource(t)
}

func (t *Texture) loseContext() { t.impl = 0 }

func (t *Texture) restoreContext() {
	t.dirtyParams = true
	t.dirtyLevels = len(t.levels) > 0
}

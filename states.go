// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

// StencilOp selects the action taken on a stencil-buffer sample when the
// stencil or depth test passes or fails.
type StencilOp uint8

const (
	// StencilOpKeep leaves the stencil value untouched.
	StencilOpKeep StencilOp = iota

	// StencilOpZero sets the stencil value to zero.
	StencilOpZero

	// StencilOpReplace replaces the stencil value with the reference value.
	StencilOpReplace

	// StencilOpIncrement increments the stencil value, clamping at maximum.
	StencilOpIncrement

	// StencilOpIncrementWrap increments the stencil value, wrapping to zero.
	StencilOpIncrementWrap

	// StencilOpDecrement decrements the stencil value, clamping at zero.
	StencilOpDecrement

	// StencilOpDecrementWrap decrements the stencil value, wrapping to max.
	StencilOpDecrementWrap

	// StencilOpInvert bitwise-inverts the stencil value.
	StencilOpInvert
)

// BlendState describes the fixed-function blend configuration of the color
// output stage. It is an immutable value: the state cache compares requested
// blend state by structural equality, never by identity, so BlendState must
// stay a plain comparable struct.
type BlendState struct {
	// Blend enables blending. When false the factors and operations are
	// ignored but still participate in equality.
	Blend bool

	// ColorOp and AlphaOp combine source and destination terms.
	ColorOp gputypes.BlendOperation
	AlphaOp gputypes.BlendOperation

	// Blend factors for the color and alpha channels.
	ColorSrcFactor gputypes.BlendFactor
	ColorDstFactor gputypes.BlendFactor
	AlphaSrcFactor gputypes.BlendFactor
	AlphaDstFactor gputypes.BlendFactor

	// WriteMask selects which channels the fragment output writes.
	WriteMask gputypes.ColorWriteMask
}

// BlendStateOpaque is the default: blending off, all channels written.
func BlendStateOpaque() BlendState {
	return BlendState{
		ColorOp:        gputypes.BlendOperationAdd,
		AlphaOp:        gputypes.BlendOperationAdd,
		ColorSrcFactor: gputypes.BlendFactorOne,
		ColorDstFactor: gputypes.BlendFactorZero,
		AlphaSrcFactor: gputypes.BlendFactorOne,
		AlphaDstFactor: gputypes.BlendFactorZero,
		WriteMask:      gputypes.ColorWriteMaskAll,
	}
}

// BlendStateAlpha is classic premultiplied-style transparency:
// src*srcAlpha + dst*(1-srcAlpha).
func BlendStateAlpha() BlendState {
	return BlendState{
		Blend:          true,
		ColorOp:        gputypes.BlendOperationAdd,
		AlphaOp:        gputypes.BlendOperationAdd,
		ColorSrcFactor: gputypes.BlendFactorSrcAlpha,
		ColorDstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		AlphaSrcFactor: gputypes.BlendFactorOne,
		AlphaDstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		WriteMask:      gputypes.ColorWriteMaskAll,
	}
}

// BlendStateAdditive accumulates source onto destination.
func BlendStateAdditive() BlendState {
	return BlendState{
		Blend:          true,
		ColorOp:        gputypes.BlendOperationAdd,
		AlphaOp:        gputypes.BlendOperationAdd,
		ColorSrcFactor: gputypes.BlendFactorOne,
		ColorDstFactor: gputypes.BlendFactorOne,
		AlphaSrcFactor: gputypes.BlendFactorOne,
		AlphaDstFactor: gputypes.BlendFactorOne,
		WriteMask:      gputypes.ColorWriteMaskAll,
	}
}

// DepthState describes depth testing and writing. The native depth test is
// enabled unless the state is a provable no-op (always-pass function with
// writes disabled).
type DepthState struct {
	// Func is the depth comparison function.
	Func gputypes.CompareFunction

	// Write enables depth-buffer writes.
	Write bool
}

// DepthStateDefault is less-equal testing with writes on.
func DepthStateDefault() DepthState {
	return DepthState{Func: gputypes.CompareFunctionLessEqual, Write: true}
}

// DepthStateNone disables both testing and writing.
func DepthStateNone() DepthState {
	return DepthState{Func: gputypes.CompareFunctionAlways, Write: false}
}

// testEnabled reports whether this state requires the native depth test.
func (d DepthState) testEnabled() bool {
	return !(d.Func == gputypes.CompareFunctionAlways && !d.Write)
}

// StencilParameters describe one face's stencil configuration. Compared by
// structural equality; when front and back parameters are equal the state
// cache configures both faces with a single native call.
type StencilParameters struct {
	// Func compares the reference value against the stored stencil value.
	Func gputypes.CompareFunction

	// Ref is the reference value.
	Ref int32

	// ReadMask masks both the reference and stored value before comparison.
	ReadMask uint32

	// WriteMask masks which stencil bits writes may touch.
	WriteMask uint32

	// Fail, ZFail and ZPass select the update operation for a failed
	// stencil test, a passed stencil test with failed depth test, and a
	// fully passed sample respectively.
	Fail  StencilOp
	ZFail StencilOp
	ZPass StencilOp
}

// DefaultStencilParameters is always-pass with keep operations.
func DefaultStencilParameters() StencilParameters {
	return StencilParameters{
		Func:      gputypes.CompareFunctionAlways,
		ReadMask:  0xFF,
		WriteMask: 0xFF,
		Fail:      StencilOpKeep,
		ZFail:     StencilOpKeep,
		ZPass:     StencilOpKeep,
	}
}

// Enum to native-constant translation tables. Built once at package
// initialization and indexed by the stable public enums; never recomputed
// per call.
var (
	glBlendFactor = map[gputypes.BlendFactor]uint32{
		gputypes.BlendFactorZero:              glapi.ZERO,
		gputypes.BlendFactorOne:               glapi.ONE,
		gputypes.BlendFactorSrc:               glapi.SRC_COLOR,
		gputypes.BlendFactorOneMinusSrc:       glapi.ONE_MINUS_SRC_COLOR,
		gputypes.BlendFactorSrcAlpha:          glapi.SRC_ALPHA,
		gputypes.BlendFactorOneMinusSrcAlpha:  glapi.ONE_MINUS_SRC_ALPHA,
		gputypes.BlendFactorDst:               glapi.DST_COLOR,
		gputypes.BlendFactorOneMinusDst:       glapi.ONE_MINUS_DST_COLOR,
		gputypes.BlendFactorDstAlpha:          glapi.DST_ALPHA,
		gputypes.BlendFactorOneMinusDstAlpha:  glapi.ONE_MINUS_DST_ALPHA,
		gputypes.BlendFactorSrcAlphaSaturated: glapi.SRC_ALPHA_SATURATE,
		gputypes.BlendFactorConstant:          glapi.CONSTANT_COLOR,
		gputypes.BlendFactorOneMinusConstant:  glapi.ONE_MINUS_CONSTANT_COLOR,
	}

	glBlendOp = map[gputypes.BlendOperation]uint32{
		gputypes.BlendOperationAdd:             glapi.FUNC_ADD,
		gputypes.BlendOperationSubtract:        glapi.FUNC_SUBTRACT,
		gputypes.BlendOperationReverseSubtract: glapi.FUNC_REVERSE_SUBTRACT,
		gputypes.BlendOperationMin:             glapi.MIN,
		gputypes.BlendOperationMax:             glapi.MAX,
	}

	glCompareFunc = map[gputypes.CompareFunction]uint32{
		gputypes.CompareFunctionNever:        glapi.NEVER,
		gputypes.CompareFunctionLess:         glapi.LESS,
		gputypes.CompareFunctionEqual:        glapi.EQUAL,
		gputypes.CompareFunctionLessEqual:    glapi.LEQUAL,
		gputypes.CompareFunctionGreater:      glapi.GREATER,
		gputypes.CompareFunctionNotEqual:     glapi.NOTEQUAL,
		gputypes.CompareFunctionGreaterEqual: glapi.GEQUAL,
		gputypes.CompareFunctionAlways:       glapi.ALWAYS,
	}

	glStencilOp = map[StencilOp]uint32{
		StencilOpKeep:          glapi.KEEP,
		StencilOpZero:          glapi.ZERO,
		StencilOpReplace:       glapi.REPLACE,
		StencilOpIncrement:     glapi.INCR,
		StencilOpIncrementWrap: glapi.INCR_WRAP,
		StencilOpDecrement:     glapi.DECR,
		StencilOpDecrementWrap: glapi.DECR_WRAP,
		StencilOpInvert:        glapi.INVERT,
	}

	glCullFace = map[gputypes.CullMode]uint32{
		gputypes.CullModeFront: glapi.FRONT,
		gputypes.CullModeBack:  glapi.BACK,
	}

	glFrontFace = map[gputypes.FrontFace]uint32{
		gputypes.FrontFaceCCW: glapi.CCW,
		gputypes.FrontFaceCW:  glapi.CW,
	}

	glTopology = map[gputypes.PrimitiveTopology]uint32{
		gputypes.PrimitiveTopologyPointList:     glapi.POINTS,
		gputypes.PrimitiveTopologyLineList:      glapi.LINES,
		gputypes.PrimitiveTopologyLineStrip:     glapi.LINE_STRIP,
		gputypes.PrimitiveTopologyTriangleList:  glapi.TRIANGLES,
		gputypes.PrimitiveTopologyTriangleStrip: glapi.TRIANGLE_STRIP,
	}

	glIndexType = map[gputypes.IndexFormat]uint32{
		gputypes.IndexFormatUint16: glapi.UNSIGNED_SHORT,
		gputypes.IndexFormatUint32: glapi.UNSIGNED_INT,
	}

	glAddressMode = map[gputypes.AddressMode]uint32{
		gputypes.AddressModeRepeat:       glapi.REPEAT,
		gputypes.AddressModeMirrorRepeat: glapi.MIRRORED_REPEAT,
		gputypes.AddressModeClampToEdge:  glapi.CLAMP_TO_EDGE,
	}

	glMagFilter = map[gputypes.FilterMode]uint32{
		gputypes.FilterModeNearest: glapi.NEAREST,
		gputypes.FilterModeLinear:  glapi.LINEAR,
	}
)

// indexFormatBytes returns the byte width of one index element. This is the
// multiplier for converting a primitive's base index into a native byte
// offset at draw time.
func indexFormatBytes(f gputypes.IndexFormat) int {
	if f == gputypes.IndexFormatUint32 {
		return 4
	}
	return 2
}

// glMinFilter resolves the native minification filter from the filter mode
// and whether the texture samples across mip levels.
func glMinFilter(f gputypes.FilterMode, mipmaps bool) uint32 {
	switch {
	case !mipmaps && f == gputypes.FilterModeNearest:
		return glapi.NEAREST
	case !mipmaps:
		return glapi.LINEAR
	case f == gputypes.FilterModeNearest:
		return glapi.NEAREST_MIPMAP_NEAREST
	default:
		return glapi.LINEAR_MIPMAP_LINEAR
	}
}

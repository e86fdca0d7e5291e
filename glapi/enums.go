// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glapi

// Native constant values, shared by every Context implementation. Values
// follow the Khronos registry so the go-gl backed context can forward them
// unchanged.
const (
	NONE uint32 = 0

	// Clear masks.
	DEPTH_BUFFER_BIT   uint32 = 0x00000100
	STENCIL_BUFFER_BIT uint32 = 0x00000400
	COLOR_BUFFER_BIT   uint32 = 0x00004000

	// Primitive modes.
	POINTS         uint32 = 0x0000
	LINES          uint32 = 0x0001
	LINE_LOOP      uint32 = 0x0002
	LINE_STRIP     uint32 = 0x0003
	TRIANGLES      uint32 = 0x0004
	TRIANGLE_STRIP uint32 = 0x0005
	TRIANGLE_FAN   uint32 = 0x0006

	// Blend factors.
	ZERO                     uint32 = 0
	ONE                      uint32 = 1
	SRC_COLOR                uint32 = 0x0300
	ONE_MINUS_SRC_COLOR      uint32 = 0x0301
	SRC_ALPHA                uint32 = 0x0302
	ONE_MINUS_SRC_ALPHA      uint32 = 0x0303
	DST_ALPHA                uint32 = 0x0304
	ONE_MINUS_DST_ALPHA      uint32 = 0x0305
	DST_COLOR                uint32 = 0x0306
	ONE_MINUS_DST_COLOR      uint32 = 0x0307
	SRC_ALPHA_SATURATE       uint32 = 0x0308
	CONSTANT_COLOR           uint32 = 0x8001
	ONE_MINUS_CONSTANT_COLOR uint32 = 0x8002

	// Blend equations.
	FUNC_ADD              uint32 = 0x8006
	MIN                   uint32 = 0x8007
	MAX                   uint32 = 0x8008
	FUNC_SUBTRACT         uint32 = 0x800A
	FUNC_REVERSE_SUBTRACT uint32 = 0x800B

	// Comparison functions.
	NEVER    uint32 = 0x0200
	LESS     uint32 = 0x0201
	EQUAL    uint32 = 0x0202
	LEQUAL   uint32 = 0x0203
	GREATER  uint32 = 0x0204
	NOTEQUAL uint32 = 0x0205
	GEQUAL   uint32 = 0x0206
	ALWAYS   uint32 = 0x0207

	// Stencil operations.
	KEEP      uint32 = 0x1E00
	REPLACE   uint32 = 0x1E01
	INCR      uint32 = 0x1E02
	DECR      uint32 = 0x1E03
	INVERT    uint32 = 0x150A
	INCR_WRAP uint32 = 0x8507
	DECR_WRAP uint32 = 0x8508

	// Face selection and winding.
	FRONT          uint32 = 0x0404
	BACK           uint32 = 0x0405
	FRONT_AND_BACK uint32 = 0x0408
	CW             uint32 = 0x0900
	CCW            uint32 = 0x0901

	// Capabilities.
	CULL_FACE                uint32 = 0x0B44
	DEPTH_TEST               uint32 = 0x0B71
	STENCIL_TEST             uint32 = 0x0B90
	BLEND                    uint32 = 0x0BE2
	SCISSOR_TEST             uint32 = 0x0C11
	POLYGON_OFFSET_FILL      uint32 = 0x8037
	SAMPLE_ALPHA_TO_COVERAGE uint32 = 0x809E

	// Texture targets and units.
	TEXTURE_2D                  uint32 = 0x0DE1
	TEXTURE_3D                  uint32 = 0x806F
	TEXTURE_CUBE_MAP            uint32 = 0x8513
	TEXTURE_2D_ARRAY            uint32 = 0x8C1A
	TEXTURE_CUBE_MAP_POSITIVE_X uint32 = 0x8515
	TEXTURE0                    uint32 = 0x84C0

	// Texture parameters.
	TEXTURE_MAG_FILTER     uint32 = 0x2800
	TEXTURE_MIN_FILTER     uint32 = 0x2801
	TEXTURE_WRAP_S         uint32 = 0x2802
	TEXTURE_WRAP_T         uint32 = 0x2803
	TEXTURE_WRAP_R         uint32 = 0x8072
	TEXTURE_COMPARE_MODE   uint32 = 0x884C
	TEXTURE_COMPARE_FUNC   uint32 = 0x884D
	COMPARE_REF_TO_TEXTURE uint32 = 0x884E
	TEXTURE_MAX_ANISOTROPY uint32 = 0x84FE

	// Filters.
	NEAREST                uint32 = 0x2600
	LINEAR                 uint32 = 0x2601
	NEAREST_MIPMAP_NEAREST uint32 = 0x2700
	LINEAR_MIPMAP_NEAREST  uint32 = 0x2701
	NEAREST_MIPMAP_LINEAR  uint32 = 0x2702
	LINEAR_MIPMAP_LINEAR   uint32 = 0x2703

	// Wrap modes.
	REPEAT          uint32 = 0x2901
	CLAMP_TO_EDGE   uint32 = 0x812F
	MIRRORED_REPEAT uint32 = 0x8370

	// Pixel formats.
	DEPTH_COMPONENT uint32 = 0x1902
	RED             uint32 = 0x1903
	RGB             uint32 = 0x1907
	RGBA            uint32 = 0x1908
	DEPTH_STENCIL   uint32 = 0x84F9

	// Sized internal formats.
	RGB8               uint32 = 0x8051
	RGBA8              uint32 = 0x8058
	SRGB8_ALPHA8       uint32 = 0x8C43
	RGBA16F            uint32 = 0x881A
	RGBA32F            uint32 = 0x8814
	R8                 uint32 = 0x8229
	DEPTH_COMPONENT16  uint32 = 0x81A5
	DEPTH_COMPONENT24  uint32 = 0x81A6
	DEPTH_COMPONENT32F uint32 = 0x8CAC
	DEPTH24_STENCIL8   uint32 = 0x88F0
	STENCIL_INDEX8     uint32 = 0x8D48

	// Component types.
	BYTE               uint32 = 0x1400
	UNSIGNED_BYTE      uint32 = 0x1401
	SHORT              uint32 = 0x1402
	UNSIGNED_SHORT     uint32 = 0x1403
	INT                uint32 = 0x1404
	UNSIGNED_INT       uint32 = 0x1405
	FLOAT              uint32 = 0x1406
	HALF_FLOAT         uint32 = 0x140B
	UNSIGNED_INT_24_8  uint32 = 0x84FA

	// Buffer targets and usages.
	ARRAY_BUFFER              uint32 = 0x8892
	ELEMENT_ARRAY_BUFFER      uint32 = 0x8893
	PIXEL_PACK_BUFFER         uint32 = 0x88EB
	TRANSFORM_FEEDBACK_BUFFER uint32 = 0x8C8E
	UNIFORM_BUFFER            uint32 = 0x8A11
	STREAM_DRAW               uint32 = 0x88E0
	STREAM_READ               uint32 = 0x88E1
	STATIC_DRAW               uint32 = 0x88E4
	DYNAMIC_DRAW              uint32 = 0x88E8

	// Framebuffer targets, attachments and results.
	FRAMEBUFFER              uint32 = 0x8D40
	READ_FRAMEBUFFER         uint32 = 0x8CA8
	DRAW_FRAMEBUFFER         uint32 = 0x8CA9
	RENDERBUFFER             uint32 = 0x8D41
	COLOR_ATTACHMENT0        uint32 = 0x8CE0
	DEPTH_ATTACHMENT         uint32 = 0x8D00
	STENCIL_ATTACHMENT       uint32 = 0x8D20
	DEPTH_STENCIL_ATTACHMENT uint32 = 0x821A
	FRAMEBUFFER_COMPLETE     uint32 = 0x8CD5
	// Default-framebuffer aliases for InvalidateFramebuffer.
	COLOR   uint32 = 0x1800
	DEPTH   uint32 = 0x1801
	STENCIL uint32 = 0x1802

	// String and limit pnames.
	VENDOR                           uint32 = 0x1F00
	RENDERER                         uint32 = 0x1F01
	VERSION                          uint32 = 0x1F02
	MAX_TEXTURE_SIZE                 uint32 = 0x0D33
	MAX_CUBE_MAP_TEXTURE_SIZE        uint32 = 0x851C
	MAX_3D_TEXTURE_SIZE              uint32 = 0x8073
	MAX_VERTEX_ATTRIBS               uint32 = 0x8869
	MAX_TEXTURE_IMAGE_UNITS          uint32 = 0x8872
	MAX_COMBINED_TEXTURE_IMAGE_UNITS uint32 = 0x8B4D
	MAX_VERTEX_TEXTURE_IMAGE_UNITS   uint32 = 0x8B4C
	MAX_VERTEX_UNIFORM_VECTORS       uint32 = 0x8DFB
	MAX_FRAGMENT_UNIFORM_VECTORS     uint32 = 0x8DFD
	MAX_DRAW_BUFFERS                 uint32 = 0x8824
	MAX_COLOR_ATTACHMENTS            uint32 = 0x8CDF
	MAX_SAMPLES                      uint32 = 0x8D57
	MAX_RENDERBUFFER_SIZE            uint32 = 0x84E8
	MAX_TEXTURE_MAX_ANISOTROPY       uint32 = 0x84FF

	// Shader and precision pnames.
	FRAGMENT_SHADER uint32 = 0x8B30
	VERTEX_SHADER   uint32 = 0x8B31
	LOW_FLOAT       uint32 = 0x8DF0
	MEDIUM_FLOAT    uint32 = 0x8DF1
	HIGH_FLOAT      uint32 = 0x8DF2

	// Reflected uniform types.
	FLOAT_VEC2        uint32 = 0x8B50
	FLOAT_VEC3        uint32 = 0x8B51
	FLOAT_VEC4        uint32 = 0x8B52
	INT_VEC2          uint32 = 0x8B53
	INT_VEC3          uint32 = 0x8B54
	INT_VEC4          uint32 = 0x8B55
	BOOL              uint32 = 0x8B56
	FLOAT_MAT2        uint32 = 0x8B5A
	FLOAT_MAT3        uint32 = 0x8B5B
	FLOAT_MAT4        uint32 = 0x8B5C
	SAMPLER_2D        uint32 = 0x8B5E
	SAMPLER_3D        uint32 = 0x8B5F
	SAMPLER_CUBE      uint32 = 0x8B60
	SAMPLER_2D_SHADOW uint32 = 0x8B62
	SAMPLER_2D_ARRAY  uint32 = 0x8DC1

	// Pixel store.
	PACK_ALIGNMENT   uint32 = 0x0D05
	UNPACK_ALIGNMENT uint32 = 0x0CF5

	// Fence sync.
	SYNC_GPU_COMMANDS_COMPLETE uint32 = 0x9117
	ALREADY_SIGNALED           uint32 = 0x911A
	TIMEOUT_EXPIRED            uint32 = 0x911B
	CONDITION_SATISFIED        uint32 = 0x911C
	WAIT_FAILED                uint32 = 0x911D
	SYNC_FLUSH_COMMANDS_BIT    uint32 = 0x00000001
)

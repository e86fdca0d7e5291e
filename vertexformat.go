// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

// Vertex semantics. Each semantic owns a fixed attribute location, so a
// vertex-array object built for one shader is valid for every shader.
const (
	SemanticPosition     = "POSITION"
	SemanticNormal       = "NORMAL"
	SemanticTangent      = "TANGENT"
	SemanticColor        = "COLOR"
	SemanticTexCoord0    = "TEXCOORD0"
	SemanticTexCoord1    = "TEXCOORD1"
	SemanticTexCoord2    = "TEXCOORD2"
	SemanticTexCoord3    = "TEXCOORD3"
	SemanticBlendWeight  = "BLENDWEIGHT"
	SemanticBlendIndices = "BLENDINDICES"
	SemanticAttr12       = "ATTR12"
	SemanticAttr13       = "ATTR13"
	SemanticAttr14       = "ATTR14"
	SemanticAttr15       = "ATTR15"
)

// semanticLocations is the fixed semantic→attribute-location table.
var semanticLocations = map[string]uint32{
	SemanticPosition:     0,
	SemanticNormal:       1,
	SemanticTangent:      2,
	SemanticColor:        3,
	SemanticTexCoord0:    4,
	SemanticTexCoord1:    5,
	SemanticTexCoord2:    6,
	SemanticTexCoord3:    7,
	SemanticBlendWeight:  8,
	SemanticBlendIndices: 9,
	SemanticAttr12:       12,
	SemanticAttr13:       13,
	SemanticAttr14:       14,
	SemanticAttr15:       15,
}

// SemanticLocation returns the fixed attribute location for a semantic and
// whether the semantic is known.
func SemanticLocation(semantic string) (uint32, bool) {
	loc, ok := semanticLocations[semantic]
	return loc, ok
}

// vertexElementInfo describes the native layout of one element format.
type vertexElementInfo struct {
	components int32
	glType     uint32
	normalized bool
	byteSize   int32
}

var vertexFormatInfo = map[gputypes.VertexFormat]vertexElementInfo{
	gputypes.VertexFormatFloat32:   {components: 1, glType: glapi.FLOAT, byteSize: 4},
	gputypes.VertexFormatFloat32x2: {components: 2, glType: glapi.FLOAT, byteSize: 8},
	gputypes.VertexFormatFloat32x3: {components: 3, glType: glapi.FLOAT, byteSize: 12},
	gputypes.VertexFormatFloat32x4: {components: 4, glType: glapi.FLOAT, byteSize: 16},
	gputypes.VertexFormatUint8x4:   {components: 4, glType: glapi.UNSIGNED_BYTE, byteSize: 4},
	gputypes.VertexFormatUnorm8x4:  {components: 4, glType: glapi.UNSIGNED_BYTE, normalized: true, byteSize: 4},
}

// VertexElement declares one attribute within a vertex format.
type VertexElement struct {
	// Semantic names the attribute slot (SemanticPosition, ...).
	Semantic string

	// Format is the element's data layout.
	Format gputypes.VertexFormat

	// offset is computed by NewVertexFormat; elements are tightly packed
	// in declaration order.
	offset int32
}

// VertexFormat describes the interleaved layout of one vertex buffer.
//
// The format hash participates in the vertex-array cache key: two buffers
// with equal layouts share one hash, two layouts differing in any element,
// order, stride or step mode never do.
type VertexFormat struct {
	elements  []VertexElement
	stride    int32
	instanced bool
	hash      uint64
}

// NewVertexFormat computes offsets, stride and the layout hash for the
// declared elements. Elements with unknown semantics or formats are
// rejected by returning nil; a nil format fails loudly at first use rather
// than silently rendering garbage.
func NewVertexFormat(elements []VertexElement, instanced bool) *VertexFormat {
	f := &VertexFormat{
		elements:  make([]VertexElement, len(elements)),
		instanced: instanced,
	}
	copy(f.elements, elements)

	var offset int32
	for i := range f.elements {
		e := &f.elements[i]
		info, ok := vertexFormatInfo[e.Format]
		if !ok {
			return nil
		}
		if _, ok := semanticLocations[e.Semantic]; !ok {
			return nil
		}
		e.offset = offset
		offset += info.byteSize
	}
	f.stride = offset

	h := fnv.New64a()
	var buf [8]byte
	for _, e := range f.elements {
		_, _ = h.Write([]byte(e.Semantic))
		binary.LittleEndian.PutUint32(buf[:4], uint32(e.Format))
		binary.LittleEndian.PutUint32(buf[4:], uint32(e.offset))
		_, _ = h.Write(buf[:])
	}
	binary.LittleEndian.PutUint32(buf[:4], uint32(f.stride))
	if instanced {
		buf[4] = 1
	} else {
		buf[4] = 0
	}
	_, _ = h.Write(buf[:5])
	f.hash = h.Sum64()

	return f
}

// Stride returns the byte stride of one vertex.
func (f *VertexFormat) Stride() int32 { return f.stride }

// Instanced reports whether the format advances per instance.
func (f *VertexFormat) Instanced() bool { return f.instanced }

// Hash returns the layout hash used in vertex-array cache keys.
func (f *VertexFormat) Hash() uint64 { return f.hash }

// Elements returns the declared elements with computed offsets.
func (f *VertexFormat) Elements() []VertexElement { return f.elements }

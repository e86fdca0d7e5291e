// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

// BufferUsage hints how often buffer contents change.
type BufferUsage uint8

const (
	// BufferUsageStatic is for contents written once and drawn many times.
	BufferUsageStatic BufferUsage = iota

	// BufferUsageDynamic is for contents rewritten every few frames.
	BufferUsageDynamic

	// BufferUsageStream is for contents rewritten every frame.
	BufferUsageStream
)

var glBufferUsage = map[BufferUsage]uint32{
	BufferUsageStatic:  glapi.STATIC_DRAW,
	BufferUsageDynamic: glapi.DYNAMIC_DRAW,
	BufferUsageStream:  glapi.STREAM_DRAW,
}

// VertexBuffer holds per-vertex (or per-instance) attribute data.
//
// The CPU-side descriptor (format, vertex count, usage, data) is the source
// of truth; the native buffer is created lazily on first use and recreated
// from the descriptor after context loss. The dirty flag marks pending data
// that must be flushed before the buffer participates in a draw.
type VertexBuffer struct {
	device *Device
	format *VertexFormat
	count  int
	usage  BufferUsage
	data   []byte

	// id is the device-unique identity used in vertex-array cache keys.
	id uint64

	impl  glapi.Buffer
	vao   glapi.VertexArray // single-buffer fast-path VAO
	dirty bool
}

// NewVertexBuffer creates a vertex buffer. data may be nil; set it later
// with SetData. The native buffer is not created until first use.
func (d *Device) NewVertexBuffer(format *VertexFormat, numVertices int, usage BufferUsage, data []byte) *VertexBuffer {
	vb := &VertexBuffer{
		device: d,
		format: format,
		count:  numVertices,
		usage:  usage,
		data:   data,
		id:     d.nextResourceID(),
		dirty:  data != nil,
	}
	d.registerResource(vb)
	return vb
}

// Format returns the buffer's vertex format.
func (vb *VertexBuffer) Format() *VertexFormat { return vb.format }

// NumVertices returns the vertex count.
func (vb *VertexBuffer) NumVertices() int { return vb.count }

// SetData replaces the buffer contents and marks the upload pending.
func (vb *VertexBuffer) SetData(data []byte) {
	vb.data = data
	vb.dirty = true
}

// flush creates the native buffer if needed and uploads pending data.
// Returns the ready native handle.
func (vb *VertexBuffer) flush() glapi.Buffer {
	ctx := vb.device.ctx
	if vb.impl == 0 {
		vb.impl = ctx.CreateBuffer()
		vb.dirty = true
	}
	if vb.dirty {
		vb.device.bindArrayBuffer(vb.impl)
		size := len(vb.data)
		if size == 0 {
			size = vb.count * int(vb.format.Stride())
		}
		ctx.BufferData(glapi.ARRAY_BUFFER, size, vb.data, glBufferUsage[vb.usage])
		vb.dirty = false
	}
	return vb.impl
}

// Destroy releases the native buffer and unregisters the resource. The
// CPU-side descriptor stays valid, but the buffer must not be drawn again.
func (vb *VertexBuffer) Destroy() {
	if vb.impl != 0 {
		vb.device.ctx.DeleteBuffer(vb.impl)
		vb.impl = 0
	}
	if vb.vao != 0 {
		vb.device.ctx.DeleteVertexArray(vb.vao)
		vb.vao = 0
	}
	vb.device.unregisterResource(vb)
}

// loseContext implements lossAware: native handles are already dead.
func (vb *VertexBuffer) loseContext() {
	vb.impl = 0
	vb.vao = 0
}

// restoreContext implements lossAware: re-upload on next use.
func (vb *VertexBuffer) restoreContext() {
	vb.dirty = vb.data != nil
}

// IndexBuffer holds index data for indexed draws.
type IndexBuffer struct {
	device *Device
	format gputypes.IndexFormat
	count  int
	usage  BufferUsage
	data   []byte

	impl  glapi.Buffer
	dirty bool
}

// NewIndexBuffer creates an index buffer. On GLES2-class contexts without
// the uint-index extension a 32-bit format is clamped to 16-bit and logged,
// matching the documented degraded behavior for oversized meshes.
func (d *Device) NewIndexBuffer(format gputypes.IndexFormat, numIndices int, usage BufferUsage, data []byte) *IndexBuffer {
	if format == gputypes.IndexFormatUint32 && !d.caps.SupportsUint32Indices {
		Logger().Warn("32-bit indices unsupported, clamping to 16-bit", "indices", numIndices)
		format = gputypes.IndexFormatUint16
	}
	ib := &IndexBuffer{
		device: d,
		format: format,
		count:  numIndices,
		usage:  usage,
		data:   data,
		dirty:  data != nil,
	}
	d.registerResource(ib)
	return ib
}

// Format returns the index element format.
func (ib *IndexBuffer) Format() gputypes.IndexFormat { return ib.format }

// NumIndices returns the index count.
func (ib *IndexBuffer) NumIndices() int { return ib.count }

// bytesPerIndex returns the byte width of one index element.
func (ib *IndexBuffer) bytesPerIndex() int { return indexFormatBytes(ib.format) }

// SetData replaces the buffer contents and marks the upload pending.
func (ib *IndexBuffer) SetData(data []byte) {
	ib.data = data
	ib.dirty = true
}

// flush creates the native buffer if needed and uploads pending data. The
// caller must have the target vertex-array object bound, since the element
// array binding is captured by it.
func (ib *IndexBuffer) flush() glapi.Buffer {
	ctx := ib.device.ctx
	if ib.impl == 0 {
		ib.impl = ctx.CreateBuffer()
		ib.dirty = true
	}
	ctx.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, ib.impl)
	if ib.dirty {
		size := len(ib.data)
		if size == 0 {
			size = ib.count * ib.bytesPerIndex()
		}
		ctx.BufferData(glapi.ELEMENT_ARRAY_BUFFER, size, ib.data, glBufferUsage[ib.usage])
		ib.dirty = false
	}
	return ib.impl
}

// Destroy releases the native buffer and unregisters the resource.
func (ib *IndexBuffer) Destroy() {
	if ib.impl != 0 {
		ib.device.ctx.DeleteBuffer(ib.impl)
		ib.impl = 0
	}
	ib.device.unregisterResource(ib)
}

func (ib *IndexBuffer) loseContext() { ib.impl = 0 }

func (ib *IndexBuffer) restoreContext() { ib.dirty = ib.data != nil }

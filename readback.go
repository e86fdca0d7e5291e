// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"errors"
	"time"

	"github.com/gogpu/forge/glapi"
)

// Readback errors.
var (
	// ErrReadbackFailed is returned when the driver reports a wait failure
	// or the context was lost while a readback was in flight.
	ErrReadbackFailed = errors.New("forge: pixel readback failed")

	// ErrReadbackShortBuffer is returned at submission when the
	// destination cannot hold w*h*4 bytes.
	ErrReadbackShortBuffer = errors.New("forge: readback destination shorter than w*h*4 bytes")
)

// ReadPixels synchronously reads an RGBA8 rectangle from rt into dst, which
// must hold at least w*h*4 bytes. Reads come from resolved content: a
// multisampled target is resolved first. This stalls the pipeline; prefer
// ReadPixelsAsync for per-frame captures.
func (d *Device) ReadPixels(rt *RenderTarget, x, y, w, h int32, dst []byte) error {
	if d.lossState != LossActive || d.destroyed {
		return ErrReadbackFailed
	}
	if len(dst) < int(w)*int(h)*4 {
		return ErrReadbackShortBuffer
	}
	if rt == nil {
		rt = d.backBuffer
	}
	if !rt.initialized {
		rt.init()
	}
	if rt.samples > 1 {
		rt.Resolve(true, false)
	}

	ctx := d.ctx
	ctx.BindFramebuffer(glapi.READ_FRAMEBUFFER, rt.readFramebuffer())
	ctx.ReadPixels(x, y, w, h, glapi.RGBA, glapi.UNSIGNED_BYTE, dst)
	ctx.BindFramebuffer(glapi.FRAMEBUFFER, d.boundFramebuffer)
	return nil
}

// Readback is an in-flight asynchronous pixel read. The read lands in a
// pixel-pack buffer and a fence marks its completion; Poll checks the fence
// without blocking and Wait spins until it signals.
//
// There is no cancellation: an abandoned Readback still completes on the
// GPU and its resources are released when Poll or Wait observe the fence.
type Readback struct {
	device *Device
	buf    glapi.Buffer
	sync   glapi.Sync
	dst  []byte
	size int
	done bool
	err  error
}

// ReadPixelsAsync starts an asynchronous RGBA8 read of a rectangle from rt.
// On GLES2-class contexts, which have neither pixel-pack buffers nor
// fences, the read happens synchronously and the returned Readback is
// already complete.
func (d *Device) ReadPixelsAsync(rt *RenderTarget, x, y, w, h int32, dst []byte) *Readback {
	r := &Readback{device: d, dst: dst, size: int(w) * int(h) * 4}
	if d.lossState != LossActive || d.destroyed {
		r.done, r.err = true, ErrReadbackFailed
		return r
	}
	if len(dst) < r.size {
		r.done, r.err = true, ErrReadbackShortBuffer
		return r
	}
	if !d.caps.SupportsFenceSync {
		r.err = d.ReadPixels(rt, x, y, w, h, dst)
		r.done = true
		return r
	}

	if rt == nil {
		rt = d.backBuffer
	}
	if !rt.initialized {
		rt.init()
	}
	if rt.samples > 1 {
		rt.Resolve(true, false)
	}

	ctx := d.ctx
	r.buf = ctx.CreateBuffer()
	ctx.BindBuffer(glapi.PIXEL_PACK_BUFFER, r.buf)
	ctx.BufferData(glapi.PIXEL_PACK_BUFFER, r.size, nil, glapi.STREAM_READ)

	ctx.BindFramebuffer(glapi.READ_FRAMEBUFFER, rt.readFramebuffer())
	// With a pack buffer bound the read targets the buffer, not dst.
	ctx.ReadPixels(x, y, w, h, glapi.RGBA, glapi.UNSIGNED_BYTE, nil)
	ctx.BindFramebuffer(glapi.FRAMEBUFFER, d.boundFramebuffer)
	ctx.BindBuffer(glapi.PIXEL_PACK_BUFFER, 0)

	r.sync = ctx.FenceSync()
	// The fence must reach the GPU or ClientWaitSync can wait forever.
	ctx.Flush()
	return r
}

// Poll checks the fence without blocking. The first completed Poll copies
// the pixels into dst and releases the pack buffer and fence. Returns
// (true, nil) once complete, (false, nil) while pending.
func (r *Readback) Poll() (bool, error) {
	if r.done {
		return true, r.err
	}
	d := r.device
	if d.lossState != LossActive || d.destroyed {
		r.done, r.err = true, ErrReadbackFailed
		return true, ErrReadbackFailed
	}

	ctx := d.ctx
	switch ctx.ClientWaitSync(r.sync, 0, 0) {
	case glapi.ALREADY_SIGNALED, glapi.CONDITION_SATISFIED:
		ctx.BindBuffer(glapi.PIXEL_PACK_BUFFER, r.buf)
		ctx.GetBufferSubData(glapi.PIXEL_PACK_BUFFER, 0, r.dst[:r.size])
		ctx.BindBuffer(glapi.PIXEL_PACK_BUFFER, 0)
		r.release()
		return true, nil
	case glapi.WAIT_FAILED:
		r.release()
		r.err = ErrReadbackFailed
		return true, ErrReadbackFailed
	default: // TIMEOUT_EXPIRED
		return false, nil
	}
}

// Wait blocks until the read completes, polling with a short sleep.
func (r *Readback) Wait() error {
	for {
		done, err := r.Poll()
		if done {
			return err
		}
		time.Sleep(200 * time.Microsecond)
	}
}

// Done reports completion without touching the GPU.
func (r *Readback) Done() bool { return r.done }

func (r *Readback) release() {
	ctx := r.device.ctx
	ctx.DeleteSync(r.sync)
	ctx.DeleteBuffer(r.buf)
	r.sync, r.buf = 0, 0
	r.done = true
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"testing"

	"github.com/gogpu/forge/glapi"
)

func TestReadPixelsSynchronous(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	dst := make([]byte, 4*4*4)
	if err := d.ReadPixels(nil, 0, 0, 4, 4, dst); err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}
	if rec.Count("ReadPixels") != 1 {
		t.Errorf("expected 1 ReadPixels, got %d", rec.Count("ReadPixels"))
	}
	if dst[0] != 0xAB {
		t.Errorf("expected pixel fill pattern, got %#x", dst[0])
	}
}

func TestReadPixelsShortDestinationFailsFast(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rec.ResetCalls()

	short := make([]byte, 4*4*4-1)
	if err := d.ReadPixels(nil, 0, 0, 4, 4, short); err != ErrReadbackShortBuffer {
		t.Errorf("expected ErrReadbackShortBuffer, got %v", err)
	}

	rb := d.ReadPixelsAsync(nil, 0, 0, 4, 4, short)
	if !rb.Done() {
		t.Fatal("expected short-buffer readback rejected at submission")
	}
	if err := rb.Wait(); err != ErrReadbackShortBuffer {
		t.Errorf("expected ErrReadbackShortBuffer, got %v", err)
	}
	if rec.TotalCalls() != 0 {
		t.Errorf("expected no native calls for rejected readbacks, got %d", rec.TotalCalls())
	}
}

func TestReadPixelsAsyncPollsFence(t *testing.T) {
	rec := glapi.NewRecorder()
	rec.FencePollsUntilSignal = 2
	d := newTestDevice(t, rec)

	dst := make([]byte, 4*4*4)
	rb := d.ReadPixelsAsync(nil, 0, 0, 4, 4, dst)
	if rb.Done() {
		t.Fatal("expected readback pending")
	}
	if rec.Count("FenceSync") != 1 || rec.Count("Flush") != 1 {
		t.Error("expected fence inserted and flushed")
	}

	for i := 0; i < 2; i++ {
		done, err := rb.Poll()
		if done || err != nil {
			t.Fatalf("poll %d: expected pending, got done=%v err=%v", i, done, err)
		}
	}
	done, err := rb.Poll()
	if !done || err != nil {
		t.Fatalf("expected completion, got done=%v err=%v", done, err)
	}
	if rec.Count("GetBufferSubData") != 1 {
		t.Errorf("expected 1 buffer read, got %d", rec.Count("GetBufferSubData"))
	}
	if dst[0] != 0xAB {
		t.Errorf("expected pixel fill pattern, got %#x", dst[0])
	}
	if rec.Count("DeleteSync") != 1 || rec.Count("DeleteBuffer") != 1 {
		t.Error("expected fence and pack buffer released")
	}

	// Completed readbacks poll for free.
	calls := rec.TotalCalls()
	if done, err := rb.Poll(); !done || err != nil {
		t.Error("expected completed readback to stay done")
	}
	if rec.TotalCalls() != calls {
		t.Error("expected no native calls after completion")
	}
}

func TestReadPixelsAsyncWaitFailure(t *testing.T) {
	rec := glapi.NewRecorder()
	rec.FenceFail = true
	d := newTestDevice(t, rec)

	dst := make([]byte, 16)
	rb := d.ReadPixelsAsync(nil, 0, 0, 2, 2, dst)
	if err := rb.Wait(); err != ErrReadbackFailed {
		t.Errorf("expected ErrReadbackFailed, got %v", err)
	}
	if rec.Count("DeleteSync") != 1 {
		t.Error("expected fence released on failure")
	}
}

func TestReadPixelsAsyncFallsBackWithoutFences(t *testing.T) {
	rec := glapi.NewRecorderGLES2()
	d := newTestDevice(t, rec)

	dst := make([]byte, 16)
	rb := d.ReadPixelsAsync(nil, 0, 0, 2, 2, dst)
	if !rb.Done() {
		t.Fatal("expected synchronous completion without fence support")
	}
	if err := rb.Wait(); err != nil {
		t.Errorf("Wait: %v", err)
	}
	if rec.Count("FenceSync") != 0 {
		t.Error("expected no fence on a GLES2-class context")
	}
	if rec.Count("ReadPixels") != 1 {
		t.Errorf("expected direct ReadPixels, got %d", rec.Count("ReadPixels"))
	}
}

func TestReadbackFailsOnLostDevice(t *testing.T) {
	rec := glapi.NewRecorder()
	rec.FencePollsUntilSignal = 10
	d := newTestDevice(t, rec)

	dst := make([]byte, 16)
	rb := d.ReadPixelsAsync(nil, 0, 0, 2, 2, dst)
	rec.LoseContext()
	d.LoseContext()
	if done, err := rb.Poll(); !done || err != ErrReadbackFailed {
		t.Errorf("expected failure after loss, got done=%v err=%v", done, err)
	}
}

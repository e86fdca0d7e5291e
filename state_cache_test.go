// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

// newTestDevice builds a device over a recording context and clears the
// call log so tests count only their own calls.
func newTestDevice(t *testing.T, rec *glapi.Recorder) *Device {
	t.Helper()
	d, err := New(WithContext(rec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec.ResetCalls()
	return d
}

func TestSetBlendStateIdempotent(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	d.SetBlendState(BlendStateAlpha())
	if rec.TotalCalls() == 0 {
		t.Fatal("expected native calls for a blend state change, got none")
	}

	rec.ResetCalls()
	d.SetBlendState(BlendStateAlpha())
	if n := rec.TotalCalls(); n != 0 {
		t.Errorf("expected 0 native calls for repeated blend state, got %d: %v", n, rec.Calls)
	}
}

func TestSetBlendStatePartialChange(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	d.SetBlendState(BlendStateAlpha())
	rec.ResetCalls()

	// Only the write mask differs; only ColorMask may be issued.
	bs := BlendStateAlpha()
	bs.WriteMask = gputypes.ColorWriteMaskRed
	d.SetBlendState(bs)
	if n := rec.Count("ColorMask"); n != 1 {
		t.Errorf("expected 1 ColorMask call, got %d", n)
	}
	if n := rec.TotalCalls(); n != 1 {
		t.Errorf("expected 1 native call total, got %d: %v", n, rec.Calls)
	}
}

func TestSetDepthStateIdempotent(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	// DepthStateDefault is the initial state; repeating it is free.
	d.SetDepthState(DepthStateDefault())
	if n := rec.TotalCalls(); n != 0 {
		t.Errorf("expected 0 native calls for default depth state, got %d: %v", n, rec.Calls)
	}

	d.SetDepthState(DepthStateNone())
	if rec.TotalCalls() == 0 {
		t.Fatal("expected native calls when disabling depth, got none")
	}
	rec.ResetCalls()
	d.SetDepthState(DepthStateNone())
	if n := rec.TotalCalls(); n != 0 {
		t.Errorf("expected 0 native calls for repeated depth state, got %d", n)
	}
}

func TestSetStencilStateSymmetricFastPath(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	p := DefaultStencilParameters()
	p.Func = gputypes.CompareFunctionEqual
	p.Ref = 1
	d.SetStencilState(&p, &p)

	if n := rec.Count("StencilFuncSeparate"); n != 1 {
		t.Errorf("expected 1 StencilFuncSeparate for symmetric faces, got %d", n)
	}
	if n := rec.Count("StencilOpSeparate"); n != 0 {
		t.Errorf("expected 0 StencilOpSeparate for default ops, got %d", n)
	}

	rec.ResetCalls()
	d.SetStencilState(&p, &p)
	if n := rec.TotalCalls(); n != 0 {
		t.Errorf("expected 0 native calls for repeated stencil state, got %d: %v", n, rec.Calls)
	}
}

func TestSetStencilStateAsymmetric(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	front := DefaultStencilParameters()
	front.Fail = StencilOpReplace
	back := DefaultStencilParameters()
	back.Fail = StencilOpInvert
	d.SetStencilState(&front, &back)

	if n := rec.Count("StencilOpSeparate"); n != 2 {
		t.Errorf("expected 2 StencilOpSeparate for asymmetric faces, got %d", n)
	}
}

func TestSetStencilStateDisable(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	p := DefaultStencilParameters()
	d.SetStencilState(&p, &p)
	rec.ResetCalls()

	d.SetStencilState(nil, nil)
	if n := rec.TotalCalls(); n != 1 {
		t.Errorf("expected only the disable call, got %d: %v", n, rec.Calls)
	}
	d.SetStencilState(nil, nil)
	if n := rec.TotalCalls(); n != 1 {
		t.Errorf("expected repeated disable to be free, got %d calls", n)
	}
}

func TestSetCullModeIdempotent(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	d.SetCullMode(gputypes.CullModeNone)
	if rec.TotalCalls() == 0 {
		t.Fatal("expected a native call when disabling culling")
	}
	rec.ResetCalls()
	d.SetCullMode(gputypes.CullModeNone)
	if n := rec.TotalCalls(); n != 0 {
		t.Errorf("expected 0 native calls for repeated cull mode, got %d", n)
	}

	// Re-enabling needs Enable plus CullFace.
	d.SetCullMode(gputypes.CullModeFront)
	if n := rec.Count("CullFace"); n != 1 {
		t.Errorf("expected 1 CullFace call, got %d", n)
	}
}

func TestSetViewportScissorCached(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	d.SetViewport(0, 0, 640, 480)
	d.SetScissor(0, 0, 640, 480)
	rec.ResetCalls()

	d.SetViewport(0, 0, 640, 480)
	d.SetScissor(0, 0, 640, 480)
	if n := rec.TotalCalls(); n != 0 {
		t.Errorf("expected 0 native calls for repeated rects, got %d: %v", n, rec.Calls)
	}

	d.SetViewport(0, 0, 320, 240)
	if n := rec.Count("Viewport"); n != 1 {
		t.Errorf("expected 1 Viewport call, got %d", n)
	}
}

func TestTextureUnitsIndependent(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	t0 := d.NewTexture(TextureOptions{Name: "a", Width: 4, Height: 4})
	t1 := d.NewTexture(TextureOptions{Name: "b", Width: 4, Height: 4})

	d.SetTexture(t0, 0)
	d.SetTexture(t1, 1)
	rec.ResetCalls()

	// Both bindings are cached on their own units.
	d.SetTexture(t1, 1)
	d.SetTexture(t0, 0)
	if n := rec.Count("BindTexture"); n != 0 {
		t.Errorf("expected 0 BindTexture for cached unit bindings, got %d", n)
	}
}

func TestTextureTargetClassesShareUnit(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	flat := d.NewTexture(TextureOptions{Name: "flat", Width: 4, Height: 4})
	cube := d.NewTexture(TextureOptions{Name: "cube", Width: 4, Height: 4, Cubemap: true})

	d.SetTexture(flat, 0)
	d.SetTexture(cube, 0)
	rec.ResetCalls()

	// The cube binding must not have evicted the unit's 2D binding.
	d.SetTexture(flat, 0)
	if n := rec.Count("BindTexture"); n != 0 {
		t.Errorf("expected cube binding to leave 2D binding cached, got %d BindTexture", n)
	}
}

func TestDestroyedTextureEvictsBindingCache(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	tex := d.NewTexture(TextureOptions{Name: "t", Width: 4, Height: 4})
	d.SetTexture(tex, 0)
	tex.Destroy()

	tex2 := d.NewTexture(TextureOptions{Name: "t2", Width: 4, Height: 4})
	rec.ResetCalls()
	d.SetTexture(tex2, 0)
	if n := rec.Count("BindTexture"); n != 1 {
		t.Errorf("expected 1 BindTexture after eviction, got %d", n)
	}
}

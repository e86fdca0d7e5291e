// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

func newOffscreenTarget(t *testing.T, d *Device, samples int) *RenderTarget {
	t.Helper()
	tex := d.NewTexture(TextureOptions{Name: "rt-color", Width: 64, Height: 64, NoMipmaps: true})
	rt := d.NewRenderTarget(RenderTargetOptions{
		Name:        "offscreen",
		ColorBuffer: tex,
		Stencil:     true,
		Samples:     samples,
	})
	if rt == nil {
		t.Fatal("expected render target")
	}
	return rt
}

func clearPass(rt *RenderTarget) *RenderPass {
	return &RenderPass{
		Name:         "scene",
		Target:       rt,
		Color:        ColorClearOps(gputypes.Color{R: 0.2, G: 0.2, B: 0.2, A: 1}),
		DepthStencil: DepthClearOps(),
	}
}

func TestStartRenderPassClearsPerLoadOps(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rt := newOffscreenTarget(t, d, 1)

	p := clearPass(rt)
	rec.ResetCalls()
	d.StartRenderPass(p)
	if rec.Count("Clear") != 1 {
		t.Errorf("expected 1 clear command, got %d", rec.Count("Clear"))
	}
	if rec.Count("ClearColor") != 1 {
		t.Errorf("expected clear color state set, got %d", rec.Count("ClearColor"))
	}
	if rec.Count("Viewport") != 1 || rec.Count("Scissor") != 1 {
		t.Error("expected viewport and scissor set to the target extent")
	}
}

func TestStartRenderPassLoadSkipsClear(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rt := newOffscreenTarget(t, d, 1)

	p := clearPass(rt)
	p.Color.Load = gputypes.LoadOpLoad
	p.DepthStencil.DepthLoad = gputypes.LoadOpLoad
	p.DepthStencil.StencilLoad = gputypes.LoadOpLoad
	d.StartRenderPass(p)
	if rec.Count("Clear") != 0 {
		t.Errorf("expected no clear for load ops, got %d", rec.Count("Clear"))
	}
}

func TestRepeatPassClearValueStateIsFree(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rt := newOffscreenTarget(t, d, 1)

	p := clearPass(rt)
	d.StartRenderPass(p)
	d.EndRenderPass(p)
	clearColors := rec.Count("ClearColor")
	d.StartRenderPass(p)
	d.EndRenderPass(p)
	if rec.Count("ClearColor") != clearColors {
		t.Errorf("expected clear color state cached across passes, got %d", rec.Count("ClearColor"))
	}
	if rec.Count("Clear") != 2 {
		t.Errorf("expected the clear command each pass, got %d", rec.Count("Clear"))
	}
}

func TestEndRenderPassInvalidatesDiscardedAttachments(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rt := newOffscreenTarget(t, d, 1)

	p := clearPass(rt)
	d.StartRenderPass(p)
	d.EndRenderPass(p)
	if rec.Count("InvalidateFramebuffer") != 1 {
		t.Errorf("expected discarded depth/stencil invalidated, got %d", rec.Count("InvalidateFramebuffer"))
	}

	// Stored attachments must never be invalidated.
	p2 := clearPass(rt)
	p2.DepthStencil.DepthStore = gputypes.StoreOpStore
	p2.DepthStencil.StencilStore = gputypes.StoreOpStore
	d.StartRenderPass(p2)
	d.EndRenderPass(p2)
	if rec.Count("InvalidateFramebuffer") != 1 {
		t.Errorf("expected no invalidation for stored attachments, got %d", rec.Count("InvalidateFramebuffer"))
	}
}

func TestEndRenderPassPartialClearSuppressesInvalidation(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rt := newOffscreenTarget(t, d, 1)

	p := clearPass(rt)
	p.PartialClear = true
	d.StartRenderPass(p)
	d.EndRenderPass(p)
	if rec.Count("InvalidateFramebuffer") != 0 {
		t.Errorf("expected no invalidation for partial passes, got %d", rec.Count("InvalidateFramebuffer"))
	}
}

func TestEndRenderPassResolvesMultisampling(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rt := newOffscreenTarget(t, d, 4)
	if rt.Samples() != 4 {
		t.Fatalf("expected 4 samples, got %d", rt.Samples())
	}

	p := clearPass(rt)
	d.StartRenderPass(p)
	d.EndRenderPass(p)
	if rec.Count("BlitFramebuffer") != 1 {
		t.Errorf("expected 1 resolve blit, got %d", rec.Count("BlitFramebuffer"))
	}

	// Resolve off skips the blit.
	p2 := clearPass(rt)
	p2.Color.Resolve = false
	d.StartRenderPass(p2)
	d.EndRenderPass(p2)
	if rec.Count("BlitFramebuffer") != 1 {
		t.Errorf("expected no second blit, got %d", rec.Count("BlitFramebuffer"))
	}
}

func TestEndRenderPassResolveKeepsColorOutOfInvalidate(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rt := newOffscreenTarget(t, d, 4)

	// Discarded-but-resolved color is the usual multisample shape: the
	// samples feed the resolve blit, so they must not be invalidated.
	p := clearPass(rt)
	p.Color.Store = gputypes.StoreOpDiscard
	p.DepthStencil.DepthStore = gputypes.StoreOpStore
	p.DepthStencil.StencilStore = gputypes.StoreOpStore
	d.StartRenderPass(p)
	rec.ResetCalls()
	d.EndRenderPass(p)
	if got := rec.Count("InvalidateFramebuffer"); got != 0 {
		t.Errorf("expected no invalidate for resolve-bound color, got %d", got)
	}
	if rec.Count("BlitFramebuffer") != 1 {
		t.Errorf("expected 1 resolve blit, got %d", rec.Count("BlitFramebuffer"))
	}

	// Transient depth and stencil still get the hint alongside a resolve.
	p2 := clearPass(rt)
	p2.Color.Store = gputypes.StoreOpDiscard
	d.StartRenderPass(p2)
	rec.ResetCalls()
	d.EndRenderPass(p2)
	if got := rec.Count("InvalidateFramebuffer"); got != 1 {
		t.Errorf("expected depth/stencil invalidate, got %d", got)
	}
	if rec.Count("BlitFramebuffer") != 1 {
		t.Errorf("expected 1 resolve blit, got %d", rec.Count("BlitFramebuffer"))
	}
}

func TestEndRenderPassGeneratesMipmaps(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	tex := d.NewTexture(TextureOptions{Name: "rt-mip", Width: 64, Height: 64})
	rt := d.NewRenderTarget(RenderTargetOptions{Name: "mip-target", ColorBuffer: tex})

	p := clearPass(rt)
	p.Color.GenMipmaps = true
	d.StartRenderPass(p)
	d.EndRenderPass(p)
	if rec.Count("GenerateMipmap") == 0 {
		t.Error("expected mipmap regeneration at end of pass")
	}
}

func TestSetRenderTargetIdentityCached(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rt := newOffscreenTarget(t, d, 1)

	d.SetRenderTarget(rt)
	switches := d.Metrics().RenderTargetSwitches
	rec.ResetCalls()
	d.SetRenderTarget(rt)
	if rec.Count("BindFramebuffer") != 0 {
		t.Errorf("expected no rebind of the current target, got %d", rec.Count("BindFramebuffer"))
	}
	if d.Metrics().RenderTargetSwitches != switches {
		t.Error("expected no switch counted for a redundant bind")
	}

	d.SetRenderTarget(nil)
	if d.RenderTarget() != d.BackBuffer() {
		t.Error("expected nil to bind the backbuffer")
	}
}

func TestFrameGraphRunsPassesInOrder(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rt := newOffscreenTarget(t, d, 1)

	var order []string
	g := NewFrameGraph()
	p1 := clearPass(rt)
	p1.Name = "shadow"
	p1.Execute = func() { order = append(order, "shadow") }
	p2 := &RenderPass{
		Name:         "scene",
		Color:        ColorClearOps(gputypes.Color{A: 1}),
		DepthStencil: DepthClearOps(),
		Execute:      func() { order = append(order, "scene") },
	}
	g.AddPass(p1)
	g.AddPass(nil)
	g.AddPass(p2)
	if len(g.Passes()) != 2 {
		t.Fatalf("expected 2 passes, got %d", len(g.Passes()))
	}

	g.Render(d)
	if len(order) != 2 || order[0] != "shadow" || order[1] != "scene" {
		t.Errorf("expected [shadow scene], got %v", order)
	}
	if d.RenderTarget() != d.BackBuffer() {
		t.Error("expected final pass on the backbuffer")
	}

	g.Reset()
	if len(g.Passes()) != 0 {
		t.Error("expected empty graph after reset")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forward

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge"
	"github.com/gogpu/forge/glapi"
)

func newTestRenderer(t *testing.T, rec *glapi.Recorder) (*forge.Device, *ForwardRenderer) {
	t.Helper()
	d, err := forge.New(forge.WithContext(rec))
	if err != nil {
		t.Fatalf("forge.New: %v", err)
	}
	rec.ResetCalls()
	return d, NewForwardRenderer(d)
}

// flatSource is a minimal material source; the define set it last received
// is captured for assertions.
func flatSource(captured *map[string]string) ShaderSourceFunc {
	return func(defines map[string]string) forge.ShaderDefinition {
		if captured != nil {
			*captured = defines
		}
		return forge.ShaderDefinition{VertexCode: "v", FragmentCode: "f"}
	}
}

func testMesh(d *forge.Device, m *Material) *MeshInstance {
	format := forge.NewVertexFormat([]forge.VertexElement{
		{Semantic: forge.SemanticPosition, Format: gputypes.VertexFormatFloat32x3},
	}, false)
	mi := NewMeshInstance(m)
	mi.VertexBuffers = []*forge.VertexBuffer{
		d.NewVertexBuffer(format, 3, forge.BufferUsageStatic, make([]byte, 36)),
	}
	mi.Primitive = forge.Primitive{Type: gputypes.PrimitiveTopologyTriangleList, Count: 3}
	return mi
}

func TestSortLightsFixedOrder(t *testing.T) {
	spot := NewLight(LightSpot)
	omni := NewLight(LightOmni)
	dir := NewLight(LightDirectional)
	disabled := NewLight(LightOmni)
	disabled.Enabled = false
	masked := NewLight(LightDirectional)
	masked.Mask = 2

	ds, os, ss := sortLights([]*Light{spot, omni, dir, disabled, masked}, 1)
	if len(ds) != 1 || ds[0] != dir {
		t.Errorf("expected 1 directional light, got %d", len(ds))
	}
	if len(os) != 1 || os[0] != omni {
		t.Errorf("expected 1 omni light, got %d", len(os))
	}
	if len(ss) != 1 || ss[0] != spot {
		t.Errorf("expected 1 spot light, got %d", len(ss))
	}

	// Mask zero on either side means visible everywhere.
	ds, _, _ = sortLights([]*Light{masked}, 0)
	if len(ds) != 1 {
		t.Error("expected camera mask 0 to see all lights")
	}
}

func TestDispatchLightsVariantKey(t *testing.T) {
	rec := glapi.NewRecorder()
	_, r := newTestRenderer(t, rec)

	dir := []*Light{NewLight(LightDirectional), NewLight(LightDirectional)}
	omni := []*Light{NewLight(LightOmni)}
	spot := []*Light{NewLight(LightSpot), NewLight(LightSpot), NewLight(LightSpot)}

	key, defines := r.dispatchLights(dir, omni, spot)
	want := uint64(2)<<32 | uint64(1)<<16 | uint64(3)
	if key != want {
		t.Errorf("expected key %#x, got %#x", want, key)
	}
	if defines["NUM_DIR_LIGHTS"] != "2" || defines["NUM_OMNI_LIGHTS"] != "1" || defines["NUM_SPOT_LIGHTS"] != "3" {
		t.Errorf("unexpected defines %v", defines)
	}
}

func TestRenderDrawsVisibleInstances(t *testing.T) {
	rec := glapi.NewRecorder()
	d, r := newTestRenderer(t, rec)

	var captured map[string]string
	m := NewMaterial("flat", flatSource(&captured))
	layer := NewLayer("world")
	layer.AddInstance(testMesh(d, m))
	layer.AddLight(NewLight(LightDirectional))

	hidden := testMesh(d, m)
	hidden.Visible = false
	layer.AddInstance(hidden)

	cam := NewCamera("main")
	r.Render(cam, layer)

	if got := d.Metrics().DrawCalls; got != 1 {
		t.Errorf("expected 1 draw, got %d", got)
	}
	if captured["NUM_DIR_LIGHTS"] != "1" || captured["NUM_OMNI_LIGHTS"] != "0" {
		t.Errorf("unexpected light defines %v", captured)
	}
	if d.Scope().Resolve("matrix_viewProjection").Value() == nil {
		t.Error("expected camera matrices published")
	}
	if d.Scope().Resolve("light0_color").Value() == nil {
		t.Error("expected light slot 0 published")
	}
}

func TestDispatchShadowAndCookieSlots(t *testing.T) {
	rec := glapi.NewRecorder()
	d, r := newTestRenderer(t, rec)

	sun := NewLight(LightDirectional)
	sun.CastShadows = true
	sun.ShadowMap = d.NewTexture(forge.TextureOptions{Name: "shadow", Width: 1024, Height: 1024, NoMipmaps: true})
	sun.CascadeCount = 3
	sun.CascadeDistances = [4]float32{4, 12, 40, 0}
	sun.Cookie = d.NewTexture(forge.TextureOptions{Name: "cookie", Width: 64, Height: 64, NoMipmaps: true})

	r.dispatchLight(0, sun)

	scope := d.Scope()
	if scope.Resolve("light0_shadowMap").Value() != sun.ShadowMap {
		t.Error("expected shadow map published to slot 0")
	}
	splits, ok := scope.Resolve("light0_shadowCascadeDistances").Value().([]float32)
	if !ok || len(splits) != 4 || splits[0] != 4 || splits[2] != 40 {
		t.Errorf("unexpected cascade splits %v", splits)
	}
	if got := scope.Resolve("light0_shadowCascadeCount").Value(); got != 3 {
		t.Errorf("expected cascade count 3, got %v", got)
	}
	if scope.Resolve("light0_cookie").Value() != sun.Cookie {
		t.Error("expected cookie texture published")
	}

	// Omni lights never publish cascades.
	omni := NewLight(LightOmni)
	omni.CastShadows = true
	omni.ShadowMap = sun.ShadowMap
	r.dispatchLight(1, omni)
	if scope.Resolve("light1_shadowCascadeCount").Value() != nil {
		t.Error("expected no cascades on an omni light")
	}
}

func TestMaterialVariantCaching(t *testing.T) {
	rec := glapi.NewRecorder()
	d, r := newTestRenderer(t, rec)

	m := NewMaterial("flat", flatSource(nil))
	layer := NewLayer("world")
	layer.AddInstance(testMesh(d, m))
	cam := NewCamera("main")

	r.Render(cam, layer)
	r.Render(cam, layer)
	if rec.Count("CompileProgram") != 1 {
		t.Errorf("expected 1 variant compiled, got %d", rec.Count("CompileProgram"))
	}

	// A new light population is a new variant.
	layer.AddLight(NewLight(LightOmni))
	r.Render(cam, layer)
	if rec.Count("CompileProgram") != 2 {
		t.Errorf("expected a second variant, got %d", rec.Count("CompileProgram"))
	}

	// Define changes produce a variant; reverting reuses the cached one.
	m.SetDefine("USE_FOG", "1")
	r.Render(cam, layer)
	m.ClearDefine("USE_FOG")
	r.Render(cam, layer)
	if rec.Count("CompileProgram") != 3 {
		t.Errorf("expected 3 variants total, got %d", rec.Count("CompileProgram"))
	}
}

func TestFailedVariantSkipsMaterial(t *testing.T) {
	rec := glapi.NewRecorder()
	rec.CompileHook = func(src glapi.ProgramSource) ([]glapi.ActiveUniform, error) {
		return nil, errors.New("0:1: syntax error")
	}
	d, r := newTestRenderer(t, rec)

	m := NewMaterial("broken", flatSource(nil))
	layer := NewLayer("world")
	layer.AddInstance(testMesh(d, m))
	cam := NewCamera("main")

	r.Render(cam, layer)
	if d.Metrics().DrawCalls != 0 {
		t.Errorf("expected no draws from a failed material, got %d", d.Metrics().DrawCalls)
	}
	compiles := rec.Count("CompileProgram")

	// The skip is sticky until the defines change.
	r.Render(cam, layer)
	if rec.Count("CompileProgram") != compiles {
		t.Error("expected no recompile while skipped")
	}
	m.SetDefine("RETRY", "1")
	r.Render(cam, layer)
	if rec.Count("CompileProgram") != compiles+1 {
		t.Error("expected a fresh attempt after a define change")
	}
}

func TestBuildFrameGraphCoalescesSameTarget(t *testing.T) {
	rec := glapi.NewRecorder()
	d, r := newTestRenderer(t, rec)

	scene := NewCamera("scene")
	ui := NewCamera("ui")
	ui.ClearColorBuffer = false
	ui.ClearDepthBuffer = false

	g := BuildFrameGraph(r, []*RenderAction{
		{Camera: scene},
		{Camera: ui},
	})
	if got := len(g.Passes()); got != 1 {
		t.Fatalf("expected consecutive backbuffer cameras in 1 pass, got %d", got)
	}
	p := g.Passes()[0]
	if p.Color.Load != gputypes.LoadOpClear {
		t.Error("expected the first camera's clear to become the pass load op")
	}
	if p.DepthStencil.DepthStore != gputypes.StoreOpDiscard {
		t.Error("expected transient depth discarded")
	}

	// A target change splits the group.
	tex := d.NewTexture(forge.TextureOptions{Name: "off", Width: 32, Height: 32, NoMipmaps: true})
	off := NewCamera("offscreen")
	off.Target = d.NewRenderTarget(forge.RenderTargetOptions{Name: "off", ColorBuffer: tex})
	g = BuildFrameGraph(r, []*RenderAction{
		{Camera: scene},
		{Camera: off},
		{Camera: ui},
	})
	if got := len(g.Passes()); got != 3 {
		t.Errorf("expected 3 passes across target changes, got %d", got)
	}
}

func TestBuildFrameGraphGrabForcesBoundary(t *testing.T) {
	rec := glapi.NewRecorder()
	d, r := newTestRenderer(t, rec)

	tex := d.NewTexture(forge.TextureOptions{Name: "grab", Width: 32, Height: 32, NoMipmaps: true})
	grab := d.NewRenderTarget(forge.RenderTargetOptions{Name: "grab", ColorBuffer: tex})

	scene := NewCamera("scene")
	refract := NewCamera("refract")
	refract.ClearColorBuffer = false
	refract.ClearDepthBuffer = false

	g := BuildFrameGraph(r, []*RenderAction{
		{Camera: scene},
		{Camera: refract, GrabPass: true, GrabTexture: grab},
	})
	// scene pass, grab copy pass, refract pass.
	if got := len(g.Passes()); got != 3 {
		t.Fatalf("expected 3 passes with a grab boundary, got %d", got)
	}
	grabPass := g.Passes()[1]
	if grabPass.Color.Load != gputypes.LoadOpLoad {
		t.Error("expected the grab pass to load existing content")
	}
}

func TestBuildFrameGraphInterleavesShadowPass(t *testing.T) {
	rec := glapi.NewRecorder()
	d, r := newTestRenderer(t, rec)

	depth := d.NewTexture(forge.TextureOptions{Name: "sun-shadow", Width: 256, Height: 256, NoMipmaps: true})
	sun := NewLight(LightDirectional)
	sun.CastShadows = true
	sun.ShadowMap = depth
	sun.ShadowTarget = d.NewRenderTarget(forge.RenderTargetOptions{Name: "sun-shadow", ColorBuffer: depth})
	rendered := 0
	sun.RenderShadowCasters = func(*forge.Device) { rendered++ }

	lit := NewLayer("lit")
	lit.AddLight(sun)

	scene := NewCamera("scene")
	ui := NewCamera("ui")
	ui.ClearColorBuffer = false
	ui.ClearDepthBuffer = false

	// The shadow map is pending before the first main pass, so the two
	// backbuffer cameras still coalesce behind it.
	g := BuildFrameGraph(r, []*RenderAction{
		{Camera: scene, Layers: []*Layer{lit}},
		{Camera: ui, Layers: []*Layer{lit}},
	})
	passes := g.Passes()
	if got := len(passes); got != 2 {
		t.Fatalf("expected shadow pass + coalesced main pass, got %d passes", got)
	}
	sp := passes[0]
	if sp.Target != sun.ShadowTarget {
		t.Error("expected the first pass to render the shadow target")
	}
	if sp.DepthStencil.DepthStore != gputypes.StoreOpStore {
		t.Error("expected the shadow pass to store depth")
	}
	sp.Execute()
	if rendered != 1 {
		t.Errorf("expected one caster render, got %d", rendered)
	}

	// A shadow light first seen by the second camera splits the group.
	plain := NewLayer("plain")
	g = BuildFrameGraph(r, []*RenderAction{
		{Camera: scene, Layers: []*Layer{plain}},
		{Camera: ui, Layers: []*Layer{lit}},
	})
	if got := len(g.Passes()); got != 3 {
		t.Fatalf("expected main, shadow, main with a late shadow light, got %d passes", got)
	}

	// Without a caster callback the light is upstream-managed and no
	// shadow pass is scheduled.
	sun.RenderShadowCasters = nil
	g = BuildFrameGraph(r, []*RenderAction{
		{Camera: scene, Layers: []*Layer{lit}},
		{Camera: ui, Layers: []*Layer{lit}},
	})
	if got := len(g.Passes()); got != 1 {
		t.Errorf("expected a single coalesced pass without a caster callback, got %d", got)
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera("main")
	p := c.ProjectionMatrix(1)
	if p.At(3, 3) != 0 {
		t.Error("expected a perspective projection")
	}

	c.Orthographic = true
	c.OrthoHeight = 10
	o := c.ProjectionMatrix(2)
	if o.At(3, 3) != 1 {
		t.Error("expected an orthographic projection")
	}
}

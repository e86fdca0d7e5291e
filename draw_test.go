// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/glapi"
)

// testShaderHook reflects one mat4 uniform and one 2D sampler, the minimal
// shape of a real textured shader.
func testShaderHook(src glapi.ProgramSource) ([]glapi.ActiveUniform, error) {
	return []glapi.ActiveUniform{
		{Name: "matrix_model", Type: glapi.FLOAT_MAT4, Size: 1, Location: 1},
		{Name: "tex_diffuse", Type: glapi.SAMPLER_2D, Size: 1, Location: 2},
	}, nil
}

func testFormat() *VertexFormat {
	return NewVertexFormat([]VertexElement{
		{Semantic: SemanticPosition, Format: gputypes.VertexFormatFloat32x3},
	}, false)
}

func testTriangle() Primitive {
	return Primitive{Type: gputypes.PrimitiveTopologyTriangleList, Count: 3}
}

// readyTexturedShader compiles a textured shader and publishes values for
// both of its scope slots.
func readyTexturedShader(t *testing.T, d *Device, rec *glapi.Recorder) *Shader {
	t.Helper()
	rec.CompileHook = testShaderHook
	s := d.NewShader(ShaderDefinition{Name: "test", VertexCode: "v", FragmentCode: "f"})
	if !d.SetShader(s) {
		t.Fatal("expected SetShader to succeed")
	}
	mat := make([]float32, 16)
	d.Scope().Resolve("matrix_model").SetValue(mat)
	tex := d.NewTexture(TextureOptions{Name: "diffuse", Width: 4, Height: 4, NoMipmaps: true})
	d.Scope().Resolve("tex_diffuse").SetValue(tex)
	return s
}

func TestDrawWithoutShaderSkips(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	rec.ResetCalls()
	d.Draw(testTriangle(), 0, false)
	if rec.TotalCalls() != 0 {
		t.Errorf("expected no native calls without a shader, got %v", rec.Calls)
	}
	if d.Metrics().SkippedDraws != 1 {
		t.Errorf("expected 1 skipped draw, got %d", d.Metrics().SkippedDraws)
	}
}

func TestDrawUnsetSamplerAbortsBeforeNativeCalls(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rec.CompileHook = testShaderHook
	s := d.NewShader(ShaderDefinition{Name: "test", VertexCode: "v", FragmentCode: "f"})
	d.SetShader(s)
	d.Scope().Resolve("matrix_model").SetValue(make([]float32, 16))
	// tex_diffuse deliberately left unset.

	rec.ResetCalls()
	d.Draw(testTriangle(), 0, false)
	if rec.TotalCalls() != 0 {
		t.Errorf("expected no native calls with an unset sampler, got %v", rec.Calls)
	}
	if d.Metrics().SkippedDraws != 1 {
		t.Errorf("expected 1 skipped draw, got %d", d.Metrics().SkippedDraws)
	}
}

func TestRepeatDrawIsSingleNativeCall(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	readyTexturedShader(t, d, rec)
	vb := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))

	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)

	// Nothing changed: the second draw must collapse to the draw command.
	rec.ResetCalls()
	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	if rec.Count("DrawArrays") != 1 {
		t.Errorf("expected 1 DrawArrays, got %d", rec.Count("DrawArrays"))
	}
	if rec.TotalCalls() != 1 {
		t.Errorf("expected 1 native call total, got %v", rec.Calls)
	}
}

func TestKeepBuffersSkipsBufferFlush(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	readyTexturedShader(t, d, rec)
	vb := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))
	other := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))

	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)

	// A queued buffer stays queued across a keepBuffers draw: the call
	// reuses the previous bindings and is the draw command alone.
	d.SetVertexBuffer(other)
	rec.ResetCalls()
	d.Draw(testTriangle(), 0, true)
	if rec.Count("DrawArrays") != 1 {
		t.Errorf("expected 1 DrawArrays, got %d", rec.Count("DrawArrays"))
	}
	if rec.TotalCalls() != 1 {
		t.Errorf("expected no buffer or VAO binds with keepBuffers, got %v", rec.Calls)
	}

	// The next plain draw flushes the buffer queued before it.
	rec.ResetCalls()
	d.Draw(testTriangle(), 0, false)
	if rec.Count("CreateBuffer") != 1 || rec.Count("CreateVertexArray") != 1 {
		t.Errorf("expected the queued buffer uploaded on the next flush, got %v", rec.Calls)
	}
}

func TestUniformVersionGating(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	readyTexturedShader(t, d, rec)
	vb := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))

	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	if rec.Count("UniformMatrix4fv") != 1 {
		t.Errorf("expected 1 matrix upload across identical draws, got %d", rec.Count("UniformMatrix4fv"))
	}

	d.Scope().Resolve("matrix_model").SetValue(make([]float32, 16))
	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	if rec.Count("UniformMatrix4fv") != 2 {
		t.Errorf("expected re-upload after SetValue, got %d", rec.Count("UniformMatrix4fv"))
	}
	if d.Metrics().UniformCommits != 2 {
		t.Errorf("expected 2 uniform commits, got %d", d.Metrics().UniformCommits)
	}
}

func TestIndexedAndInstancedDrawSelection(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	readyTexturedShader(t, d, rec)
	vb := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))
	ib := d.NewIndexBuffer(gputypes.IndexFormatUint16, 3, BufferUsageStatic, make([]byte, 6))

	prim := testTriangle()
	prim.Indexed = true
	d.SetVertexBuffer(vb)
	d.SetIndexBuffer(ib)
	d.Draw(prim, 0, false)
	if rec.Count("DrawElements") != 1 {
		t.Errorf("expected DrawElements for an indexed draw, got %v", rec.Calls)
	}

	d.SetVertexBuffer(vb)
	d.Draw(prim, 4, false)
	if rec.Count("DrawElementsInstanced") != 1 {
		t.Errorf("expected DrawElementsInstanced, got %v", rec.Calls)
	}

	prim.Indexed = false
	d.SetVertexBuffer(vb)
	d.Draw(prim, 4, false)
	if rec.Count("DrawArraysInstanced") != 1 {
		t.Errorf("expected DrawArraysInstanced, got %v", rec.Calls)
	}
	if d.Metrics().InstancedDrawCalls != 2 {
		t.Errorf("expected 2 instanced draws, got %d", d.Metrics().InstancedDrawCalls)
	}
	if d.Metrics().DrawCalls != 3 {
		t.Errorf("expected 3 draw calls, got %d", d.Metrics().DrawCalls)
	}
}

func TestVertexArrayCacheReuse(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	readyTexturedShader(t, d, rec)
	format := testFormat()
	vb1 := d.NewVertexBuffer(format, 3, BufferUsageStatic, make([]byte, 36))
	vb2 := d.NewVertexBuffer(format, 3, BufferUsageStatic, make([]byte, 36))

	// Multi-buffer set: first draw builds, second reuses.
	d.SetVertexBuffer(vb1)
	d.SetVertexBuffer(vb2)
	d.Draw(testTriangle(), 0, false)
	if rec.Count("CreateVertexArray") != 1 {
		t.Fatalf("expected 1 vertex array, got %d", rec.Count("CreateVertexArray"))
	}
	d.SetVertexBuffer(vb1)
	d.SetVertexBuffer(vb2)
	d.Draw(testTriangle(), 0, false)
	if rec.Count("CreateVertexArray") != 1 {
		t.Errorf("expected cached vertex array on repeat, got %d", rec.Count("CreateVertexArray"))
	}

	// A different buffer combination never collides.
	d.SetVertexBuffer(vb2)
	d.SetVertexBuffer(vb1)
	d.Draw(testTriangle(), 0, false)
	if rec.Count("CreateVertexArray") != 2 {
		t.Errorf("expected a second vertex array for reordered buffers, got %d", rec.Count("CreateVertexArray"))
	}
}

func TestSingleBufferFastPath(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	readyTexturedShader(t, d, rec)
	vb := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))

	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	created := rec.Count("CreateVertexArray")
	if created != 1 {
		t.Fatalf("expected 1 vertex array, got %d", created)
	}

	// The per-buffer VAO survives without touching the shared cache.
	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	if rec.Count("CreateVertexArray") != 1 {
		t.Errorf("expected cached per-buffer vertex array, got %d", rec.Count("CreateVertexArray"))
	}
}

func TestMaxDrawCallThrottle(t *testing.T) {
	rec := glapi.NewRecorder()
	d, err := New(WithContext(rec), WithMaxDrawCalls(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	readyTexturedShader(t, d, rec)
	vb := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))

	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	if d.Metrics().DrawCalls != 1 {
		t.Errorf("expected 1 draw call under throttle, got %d", d.Metrics().DrawCalls)
	}
	if d.Metrics().SkippedDraws != 1 {
		t.Errorf("expected 1 skipped draw, got %d", d.Metrics().SkippedDraws)
	}
}

func TestTransformFeedbackBracketsDraw(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	readyTexturedShader(t, d, rec)
	vb := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))
	out := d.NewVertexBuffer(testFormat(), 3, BufferUsageStream, nil)

	d.SetTransformFeedbackBuffer(out)
	d.SetVertexBuffer(vb)
	d.Draw(Primitive{Type: gputypes.PrimitiveTopologyPointList, Count: 3}, 0, false)
	if rec.Count("BindBufferBase") != 1 {
		t.Errorf("expected feedback buffer bound, got %d", rec.Count("BindBufferBase"))
	}
	if rec.Count("BeginTransformFeedback") != 1 || rec.Count("EndTransformFeedback") != 1 {
		t.Error("expected draw bracketed by transform feedback")
	}

	d.SetTransformFeedbackBuffer(nil)
	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	if rec.Count("BeginTransformFeedback") != 1 {
		t.Error("expected no feedback after clearing the capture buffer")
	}
}

func TestClearValueStateCached(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	opts := ClearOptions{
		Flags: ClearColorBuffer | ClearDepthBuffer,
		Color: gputypes.Color{R: 0.5, G: 0.5, B: 0.5, A: 1},
		Depth: 1,
	}
	rec.ResetCalls()
	d.Clear(opts)
	d.Clear(opts)
	if rec.Count("ClearColor") != 1 {
		t.Errorf("expected 1 ClearColor, got %d", rec.Count("ClearColor"))
	}
	if rec.Count("Clear") != 2 {
		t.Errorf("expected the clear command on every call, got %d", rec.Count("Clear"))
	}
}

func TestFailedShaderIsSticky(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rec.CompileHook = func(src glapi.ProgramSource) ([]glapi.ActiveUniform, error) {
		return nil, errors.New("0:1: syntax error")
	}
	s := d.NewShader(ShaderDefinition{Name: "broken", VertexCode: "v", FragmentCode: "f"})
	if d.SetShader(s) {
		t.Fatal("expected SetShader to fail")
	}
	if !s.Failed() {
		t.Error("expected sticky failed flag")
	}
	// No recompile attempt on reuse.
	compiles := rec.Count("CompileProgram")
	d.SetShader(s)
	if rec.Count("CompileProgram") != compiles {
		t.Error("expected no recompile of a failed shader")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"errors"
	"testing"

	"github.com/gogpu/forge/glapi"
)

var errLink = errors.New("link failed")

func TestLostDeviceSubmitsNothing(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	readyTexturedShader(t, d, rec)
	vb := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))

	rec.LoseContext()
	d.LoseContext()
	if !d.Lost() {
		t.Fatal("expected device lost")
	}

	rec.ResetCalls()
	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	d.Clear(ClearOptions{Flags: ClearColorBuffer})
	if rec.TotalCalls() != 0 {
		t.Errorf("expected no native calls while lost, got %v", rec.Calls)
	}
}

func TestRestoreRebuildsResources(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	readyTexturedShader(t, d, rec)
	vb := d.NewVertexBuffer(testFormat(), 3, BufferUsageStatic, make([]byte, 36))
	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)

	rec.LoseContext()
	d.LoseContext()
	rec.RestoreContext()
	rec.ResetCalls()
	d.RestoreContext()
	if d.Lost() {
		t.Fatal("expected device active after restore")
	}
	if rec.Count("CompileProgram") != 1 {
		t.Errorf("expected shader recompiled on restore, got %d", rec.Count("CompileProgram"))
	}

	// Drawing works again, with fresh texture, buffer and vertex-array
	// handles recreated on first use.
	if !d.SetShader(d.Shader()) {
		t.Fatal("expected restored shader usable")
	}
	d.SetVertexBuffer(vb)
	d.Draw(testTriangle(), 0, false)
	if rec.Count("CreateTexture") != 1 {
		t.Errorf("expected texture recreated, got %d", rec.Count("CreateTexture"))
	}
	if rec.Count("CreateBuffer") != 1 {
		t.Errorf("expected vertex buffer recreated, got %d", rec.Count("CreateBuffer"))
	}
	if rec.Count("CreateVertexArray") != 1 {
		t.Errorf("expected vertex array rebuilt, got %d", rec.Count("CreateVertexArray"))
	}
	if rec.Count("DrawArrays") != 1 {
		t.Errorf("expected 1 draw after restore, got %d", rec.Count("DrawArrays"))
	}
}

func TestLossListenersFire(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)

	var events []string
	d.OnDeviceLost(func() { events = append(events, "lost") })
	d.OnDeviceRestored(func() { events = append(events, "restored") })

	d.LoseContext()
	d.LoseContext() // second call is a no-op
	d.RestoreContext()
	d.RestoreContext()

	if len(events) != 2 || events[0] != "lost" || events[1] != "restored" {
		t.Errorf("expected [lost restored], got %v", events)
	}
}

func TestFailedShaderStaysFailedAcrossRestore(t *testing.T) {
	rec := glapi.NewRecorder()
	d := newTestDevice(t, rec)
	rec.CompileHook = func(src glapi.ProgramSource) ([]glapi.ActiveUniform, error) {
		return nil, errLink
	}
	s := d.NewShader(ShaderDefinition{Name: "broken", VertexCode: "v", FragmentCode: "f"})
	d.SetShader(s)
	if !s.Failed() {
		t.Fatal("expected failed shader")
	}

	rec.LoseContext()
	d.LoseContext()
	rec.RestoreContext()
	rec.ResetCalls()
	d.RestoreContext()
	if rec.Count("CompileProgram") != 0 {
		t.Error("expected no recompile attempt for a failed shader")
	}
	if !s.Failed() {
		t.Error("expected failed flag to survive restore")
	}
}

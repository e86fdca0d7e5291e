// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command forgedemo renders a spinning lit cube through the forge forward
// renderer on a native GL surface.
package main

import (
	"encoding/binary"
	"flag"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge"
	_ "github.com/gogpu/forge/backend/gl"
	"github.com/gogpu/forge/forward"
)

func main() {
	var (
		width  = flag.Int("width", 1024, "window width")
		height = flag.Int("height", 768, "window height")
	)
	flag.Parse()

	device, err := forge.New(
		forge.WithSize(*width, *height),
		forge.WithTitle("forge demo"),
	)
	if err != nil {
		log.Fatalf("create device: %v", err)
	}
	defer device.Destroy()

	renderer := forward.NewForwardRenderer(device)

	material := forward.NewMaterial("lit", litSource)
	material.SetParam("material_color", []float32{0.8, 0.45, 0.2})

	mesh := buildCube(device, material)
	layer := forward.NewLayer("world")
	layer.AddInstance(mesh)

	sun := forward.NewLight(forward.LightDirectional)
	sun.Direction = mgl32.Vec3{-0.5, -1, -0.3}.Normalize()
	layer.AddLight(sun)

	fill := forward.NewLight(forward.LightOmni)
	fill.Position = mgl32.Vec3{2, 1, 2}
	fill.Color = mgl32.Vec3{0.3, 0.4, 1}
	fill.Range = 8
	layer.AddLight(fill)

	camera := forward.NewCamera("main")
	camera.ClearColor = gputypes.Color{R: 0.06, G: 0.07, B: 0.09, A: 1}
	camera.SetLookAt(mgl32.Vec3{0, 1.5, 4}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	actions := []*forward.RenderAction{
		{Camera: camera, Layers: []*forward.Layer{layer}},
	}

	start := time.Now()
	for !device.Surface().ShouldClose() {
		t := float32(time.Since(start).Seconds())
		mesh.Transform = mgl32.HomogRotate3DY(t).Mul4(
			mgl32.HomogRotate3DX(t * 0.4))

		device.FrameStart()
		forward.BuildFrameGraph(renderer, actions).Render(device)
		device.FrameEnd()
	}
}

// litSource builds the demo shader for a lighting define set. Per-light
// uniforms use the renderer's indexed slot names: directional lights fill
// the low slots, so with one sun the omni light lands in slot 1.
func litSource(defines map[string]string) forge.ShaderDefinition {
	header := "#version 410 core\n" + defineBlock(defines)
	return forge.ShaderDefinition{
		Name:         "lit",
		VertexCode:   header + litVertex,
		FragmentCode: header + litFragment,
		Attributes: map[string]string{
			"a_position": forge.SemanticPosition,
			"a_normal":   forge.SemanticNormal,
		},
	}
}

func defineBlock(defines map[string]string) string {
	names := make([]string, 0, len(defines))
	for name := range defines {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString("#define ")
		sb.WriteString(name)
		sb.WriteByte(' ')
		sb.WriteString(defines[name])
		sb.WriteByte('\n')
	}
	return sb.String()
}

const litVertex = `
uniform mat4 matrix_viewProjection;
uniform mat4 matrix_model;
uniform mat3 matrix_normal;

in vec3 a_position;
in vec3 a_normal;

out vec3 v_normal;
out vec3 v_worldPos;

void main() {
    vec4 world = matrix_model * vec4(a_position, 1.0);
    v_worldPos = world.xyz;
    v_normal = matrix_normal * a_normal;
    gl_Position = matrix_viewProjection * world;
}
`

const litFragment = `
uniform vec3 material_color;

#if NUM_DIR_LIGHTS > 0
uniform vec3 light0_color;
uniform vec3 light0_direction;
#endif
#if NUM_OMNI_LIGHTS > 0
uniform vec3 light1_color;
uniform vec3 light1_position;
uniform float light1_range;
#endif

in vec3 v_normal;
in vec3 v_worldPos;

out vec4 fragColor;

void main() {
    vec3 n = normalize(v_normal);
    vec3 lighting = vec3(0.08);
#if NUM_DIR_LIGHTS > 0
    lighting += max(dot(n, -normalize(light0_direction)), 0.0) * light0_color;
#endif
#if NUM_OMNI_LIGHTS > 0
    vec3 toLight = light1_position - v_worldPos;
    float att = clamp(1.0 - length(toLight) / light1_range, 0.0, 1.0);
    lighting += max(dot(n, normalize(toLight)), 0.0) * att * light1_color;
#endif
    fragColor = vec4(material_color * lighting, 1.0);
}
`

// buildCube creates a unit cube with per-face normals.
func buildCube(d *forge.Device, m *forward.Material) *forward.MeshInstance {
	format := forge.NewVertexFormat([]forge.VertexElement{
		{Semantic: forge.SemanticPosition, Format: gputypes.VertexFormatFloat32x3},
		{Semantic: forge.SemanticNormal, Format: gputypes.VertexFormatFloat32x3},
	}, false)

	faces := []struct {
		normal mgl32.Vec3
		right  mgl32.Vec3
		up     mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}

	var verts []float32
	var indices []uint16
	for fi, f := range faces {
		base := uint16(fi * 4)
		for _, corner := range [][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := f.normal.Add(f.right.Mul(corner[0])).Add(f.up.Mul(corner[1])).Mul(0.5)
			verts = append(verts, p[0], p[1], p[2], f.normal[0], f.normal[1], f.normal[2])
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	mi := forward.NewMeshInstance(m)
	mi.VertexBuffers = []*forge.VertexBuffer{
		d.NewVertexBuffer(format, len(verts)/6, forge.BufferUsageStatic, packFloats(verts)),
	}
	mi.IndexBuffer = d.NewIndexBuffer(gputypes.IndexFormatUint16, len(indices), forge.BufferUsageStatic, packUint16(indices))
	mi.Primitive = forge.Primitive{
		Type:    gputypes.PrimitiveTopologyTriangleList,
		Count:   len(indices),
		Indexed: true,
	}
	return mi
}

func packFloats(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

func packUint16(v []uint16) []byte {
	out := make([]byte, len(v)*2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(out[i*2:], x)
	}
	return out
}

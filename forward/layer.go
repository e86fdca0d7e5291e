// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forward

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/forge"
)

// MeshInstance is one drawable: geometry buffers, a material and a world
// transform.
type MeshInstance struct {
	// VertexBuffers in bind order (mesh data first, instance data after).
	VertexBuffers []*forge.VertexBuffer
	IndexBuffer   *forge.IndexBuffer
	Primitive     forge.Primitive

	Material  *Material
	Transform mgl32.Mat4

	// InstanceCount greater than zero draws instanced.
	InstanceCount int

	Visible bool

	// Mask intersects with the camera mask; zero means all cameras.
	Mask uint32
}

// NewMeshInstance returns a visible instance with an identity transform.
func NewMeshInstance(material *Material) *MeshInstance {
	return &MeshInstance{
		Material:  material,
		Transform: mgl32.Ident4(),
		Visible:   true,
	}
}

// Layer is an ordered group of mesh instances rendered together. Cameras
// reference layers; the same layer can render through several cameras.
type Layer struct {
	Name string

	// Enabled layers render; disabled layers are skipped whole.
	Enabled bool

	instances []*MeshInstance
	lights    []*Light
}

// NewLayer returns an enabled empty layer.
func NewLayer(name string) *Layer {
	return &Layer{Name: name, Enabled: true}
}

// AddInstance appends a mesh instance.
func (l *Layer) AddInstance(mi *MeshInstance) {
	if mi != nil {
		l.instances = append(l.instances, mi)
	}
}

// RemoveInstance removes a mesh instance by identity.
func (l *Layer) RemoveInstance(mi *MeshInstance) {
	for i, v := range l.instances {
		if v == mi {
			l.instances = append(l.instances[:i], l.instances[i+1:]...)
			return
		}
	}
}

// Instances returns the draw list in insertion order.
func (l *Layer) Instances() []*MeshInstance { return l.instances }

// AddLight adds a light affecting this layer.
func (l *Layer) AddLight(light *Light) {
	if light != nil {
		l.lights = append(l.lights, light)
	}
}

// RemoveLight removes a light by identity.
func (l *Layer) RemoveLight(light *Light) {
	for i, v := range l.lights {
		if v == light {
			l.lights = append(l.lights[:i], l.lights[i+1:]...)
			return
		}
	}
}

// Lights returns the layer's lights.
func (l *Layer) Lights() []*Light { return l.lights }

// sortLights partitions enabled lights visible to mask into the fixed
// dispatch order: directional, then omni, then spot. The split index
// between classes becomes part of the shader variant key.
func sortLights(lights []*Light, mask uint32) (dir, omni, spot []*Light) {
	for _, l := range lights {
		if !l.Enabled {
			continue
		}
		if mask != 0 && l.Mask != 0 && mask&l.Mask == 0 {
			continue
		}
		switch l.Type {
		case LightDirectional:
			dir = append(dir, l)
		case LightOmni:
			omni = append(omni, l)
		case LightSpot:
			spot = append(spot, l)
		}
	}
	return dir, omni, spot
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forward

import (
	"hash/fnv"
	"sort"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge"
)

var nextMaterialID uint64

// ShaderSourceFunc generates a shader definition for a set of preprocessor
// defines. It is the bridge to whatever shader system sits upstream; the
// renderer never inspects source text.
type ShaderSourceFunc func(defines map[string]string) forge.ShaderDefinition

// Material couples render state, shader parameters and a variant cache.
// Variants are compiled shaders keyed by the material's defines plus the
// lighting configuration of the draw; a variant that fails to compile marks
// the material skipped so the mesh silently disappears instead of spamming
// compile errors every frame.
type Material struct {
	Name string

	Blend    forge.BlendState
	Depth    forge.DepthState
	CullMode gputypes.CullMode
	Stencil  *forge.StencilParameters

	// Source generates shader definitions per define set.
	Source ShaderSourceFunc

	id         uint64
	defines    map[string]string
	definesKey uint64
	dirty      bool

	params map[string]any

	variants map[uint64]*forge.Shader
	skip     bool
}

// NewMaterial creates an opaque, back-face-culled material.
func NewMaterial(name string, source ShaderSourceFunc) *Material {
	return &Material{
		Name:     name,
		Blend:    forge.BlendStateOpaque(),
		Depth:    forge.DepthStateDefault(),
		CullMode: gputypes.CullModeBack,
		Source:   source,
		id:       atomic.AddUint64(&nextMaterialID, 1),
		defines:  make(map[string]string),
		params:   make(map[string]any),
		variants: make(map[uint64]*forge.Shader),
		dirty:    true,
	}
}

// SetDefine sets a preprocessor define, invalidating compiled variants'
// selection (already-compiled variants stay cached under their old key).
func (m *Material) SetDefine(name, value string) {
	if m.defines[name] == value {
		return
	}
	m.defines[name] = value
	m.dirty = true
	m.skip = false
}

// ClearDefine removes a define.
func (m *Material) ClearDefine(name string) {
	if _, ok := m.defines[name]; !ok {
		return
	}
	delete(m.defines, name)
	m.dirty = true
	m.skip = false
}

// SetParam stores a shader parameter published into the device scope at
// draw time. Values follow device uniform conventions: float32, []float32,
// int, *forge.Texture.
func (m *Material) SetParam(name string, value any) {
	m.params[name] = value
}

// Param returns a stored parameter, or nil.
func (m *Material) Param(name string) any { return m.params[name] }

// definesHash folds the define map into a stable key. Map iteration order
// is randomized, so keys sort first.
func (m *Material) definesHash() uint64 {
	if !m.dirty {
		return m.definesKey
	}
	names := make([]string, 0, len(m.defines))
	for name := range m.defines {
		names = append(names, name)
	}
	sort.Strings(names)

	h := fnv.New64a()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{'='})
		h.Write([]byte(m.defines[name]))
		h.Write([]byte{';'})
	}
	m.definesKey = h.Sum64()
	m.dirty = false
	return m.definesKey
}

// variant returns the compiled shader for the current defines combined
// with a lighting key and the renderer's extra defines, compiling on first
// use. Returns nil when the material is skipped or compilation failed.
func (m *Material) variant(d *forge.Device, lightKey uint64, extra map[string]string) *forge.Shader {
	if m.skip || m.Source == nil {
		return nil
	}
	key := m.definesHash() ^ lightKey
	if s, ok := m.variants[key]; ok {
		if s.Failed() {
			return nil
		}
		return s
	}

	defines := make(map[string]string, len(m.defines)+len(extra))
	for k, v := range m.defines {
		defines[k] = v
	}
	for k, v := range extra {
		defines[k] = v
	}
	def := m.Source(defines)
	if def.Name == "" {
		def.Name = m.Name
	}
	s := d.NewShader(def)
	m.variants[key] = s
	return s
}

// markSkipped records a failed variant. The skip clears when defines
// change, since a different variant may well compile.
func (m *Material) markSkipped() {
	m.skip = true
	forge.Logger().Warn("material skipped after shader failure", "material", m.Name)
}

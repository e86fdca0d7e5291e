// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

// ScopeID is one named slot in the device's value scope. Shader uniforms and
// samplers bind to ScopeIDs by name; the draw pipeline compares the slot's
// monotonically increasing version stamp against the last version committed
// to the GPU and re-uploads only on mismatch.
//
// A ScopeID with a nil value is the sentinel "unset" state: uniforms bound
// to it are skipped entirely, and samplers bound to it abort the draw.
type ScopeID struct {
	// Name is the scope-unique slot name (e.g. "matrix_viewProjection").
	Name string

	value   any
	version uint64
}

// SetValue stores a new value and bumps the version stamp. Callers that
// mutate a slice or matrix in place must call SetValue again for the change
// to reach the GPU; the pipeline only looks at versions, never at contents.
func (s *ScopeID) SetValue(v any) {
	s.value = v
	s.version++
}

// Typed setters store values in the exact shapes the uniform committer
// accepts, so a slot set through them can never be dropped for a shape
// mismatch at draw time. SetValue remains the escape hatch for uniform
// types without a dedicated setter.

// SetFloat stores a scalar float value.
func (s *ScopeID) SetFloat(v float32) { s.SetValue(v) }

// SetInt stores a scalar integer value, also used for bool uniforms.
func (s *ScopeID) SetInt(v int) { s.SetValue(v) }

// SetVec2 stores a two-component vector.
func (s *ScopeID) SetVec2(x, y float32) { s.SetValue([]float32{x, y}) }

// SetVec3 stores a three-component vector.
func (s *ScopeID) SetVec3(x, y, z float32) { s.SetValue([]float32{x, y, z}) }

// SetVec4 stores a four-component vector.
func (s *ScopeID) SetVec4(x, y, z, w float32) { s.SetValue([]float32{x, y, z, w}) }

// SetMat4 stores a column-major 4x4 matrix.
func (s *ScopeID) SetMat4(m [16]float32) { s.SetValue(m[:]) }

// SetFloatArray stores a float array value. A nil slice unsets the slot.
func (s *ScopeID) SetFloatArray(v []float32) {
	if v == nil {
		s.SetValue(nil)
		return
	}
	s.SetValue(v)
}

// SetTexture stores a sampler texture. A nil texture unsets the slot, so
// draws depending on it skip instead of sampling a stale binding.
func (s *ScopeID) SetTexture(tex *Texture) {
	if tex == nil {
		s.SetValue(nil)
		return
	}
	s.SetValue(tex)
}

// Value returns the currently stored value, or nil when unset.
func (s *ScopeID) Value() any { return s.value }

// Version returns the current version stamp. Zero means never set.
func (s *ScopeID) Version() uint64 { return s.version }

// ScopeSpace is a namespace of ScopeIDs. The device owns one; materials,
// cameras and lights publish values into it and shaders consume them.
type ScopeSpace struct {
	name  string
	items map[string]*ScopeID
}

// NewScopeSpace creates an empty scope namespace.
func NewScopeSpace(name string) *ScopeSpace {
	return &ScopeSpace{
		name:  name,
		items: make(map[string]*ScopeID),
	}
}

// Resolve returns the ScopeID for name, creating an unset slot on first
// use. Resolution is stable: the same name always returns the same pointer
// for the life of the scope, which is what lets callers cache handles.
func (s *ScopeSpace) Resolve(name string) *ScopeID {
	if id, ok := s.items[name]; ok {
		return id
	}
	id := &ScopeID{Name: name}
	s.items[name] = id
	return id
}

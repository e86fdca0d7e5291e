// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"errors"
	"fmt"

	"github.com/gogpu/forge/glapi"
)

// Shader errors.
var (
	// ErrShaderFailed is the sticky failure recorded on a shader whose
	// program failed to compile or link. Binding the shader again returns
	// failure without retrying compilation.
	ErrShaderFailed = errors.New("forge: shader compilation failed")
)

// ShaderDefinition is the CPU-side description of a shader: source text,
// attribute semantics and transform-feedback outputs. Source text comes
// from an upstream shader-source collaborator; forge treats it as opaque.
type ShaderDefinition struct {
	// Name labels the shader in logs.
	Name string

	// VertexCode and FragmentCode are the translated source strings.
	VertexCode   string
	FragmentCode string

	// Attributes maps attribute names in the vertex source to semantics
	// (SemanticPosition, ...). Attribute locations are pinned from the
	// fixed semantic table before link.
	Attributes map[string]string

	// TransformFeedbackVaryings lists vertex outputs captured into the
	// feedback buffer, for GPU-driven simulation passes.
	TransformFeedbackVaryings []string
}

// shaderUniform binds one reflected uniform to its scope slot and caches
// the version stamp of the last value committed to the GPU.
type shaderUniform struct {
	scope *ScopeID
	loc   glapi.UniformLocation
	gtype uint32
	size  int32

	// committed is the scope version last uploaded; zero means never.
	committed uint64
}

// shaderSampler binds one reflected sampler to its scope slot and the
// texture unit assigned at link time.
type shaderSampler struct {
	scope *ScopeID
	loc   glapi.UniformLocation
	gtype uint32
	size  int
	unit  int
}

// Shader is a device shader resource. Compilation happens lazily on first
// bind; a failed compile is recorded as a sticky flag and the shader is
// never retried. After context loss the program is rebuilt from the
// definition and all uniform commit stamps reset, forcing full re-upload.
type Shader struct {
	device *Device
	def    ShaderDefinition

	program  glapi.Program
	uniforms []*shaderUniform
	samplers []*shaderSampler

	ready  bool
	failed bool
}

// NewShader creates a shader from a definition. No native work happens
// until the shader is first bound with SetShader.
func (d *Device) NewShader(def ShaderDefinition) *Shader {
	s := &Shader{device: d, def: def}
	d.registerResource(s)
	return s
}

// Name returns the definition name.
func (s *Shader) Name() string { return s.def.Name }

// Ready reports whether the program is linked and usable.
func (s *Shader) Ready() bool { return s.ready }

// Failed reports the sticky compile/link failure flag.
func (s *Shader) Failed() bool { return s.failed }

// isSamplerType reports whether a reflected uniform type is a sampler.
func isSamplerType(gtype uint32) bool {
	switch gtype {
	case glapi.SAMPLER_2D, glapi.SAMPLER_3D, glapi.SAMPLER_CUBE,
		glapi.SAMPLER_2D_SHADOW, glapi.SAMPLER_2D_ARRAY:
		return true
	}
	return false
}

// compile builds the native program and splits the reflected uniform list
// into value uniforms and samplers, assigning sequential texture units to
// samplers. Sampler unit uniforms are committed once here; they never
// change for the life of the program.
func (s *Shader) compile() error {
	if s.failed {
		return ErrShaderFailed
	}
	if s.ready {
		return nil
	}

	src := glapi.ProgramSource{
		Vertex:                    s.def.VertexCode,
		Fragment:                  s.def.FragmentCode,
		TransformFeedbackVaryings: s.def.TransformFeedbackVaryings,
	}
	for name, semantic := range s.def.Attributes {
		loc, ok := SemanticLocation(semantic)
		if !ok {
			s.failed = true
			return fmt.Errorf("forge: shader %q: unknown semantic %q: %w", s.def.Name, semantic, ErrShaderFailed)
		}
		src.Attributes = append(src.Attributes, glapi.AttributeBinding{Name: name, Location: loc})
	}

	program, reflected, err := s.device.ctx.CompileProgram(src)
	if err != nil {
		s.failed = true
		Logger().Warn("shader compile failed", "shader", s.def.Name, "err", err)
		return fmt.Errorf("forge: shader %q: %w", s.def.Name, ErrShaderFailed)
	}
	s.program = program

	s.uniforms = s.uniforms[:0]
	s.samplers = s.samplers[:0]
	unit := 0
	for _, u := range reflected {
		scope := s.device.scope.Resolve(u.Name)
		if isSamplerType(u.Type) {
			s.samplers = append(s.samplers, &shaderSampler{
				scope: scope,
				loc:   u.Location,
				gtype: u.Type,
				size:  int(u.Size),
				unit:  unit,
			})
			// Array samplers occupy a run of consecutive units.
			unit += int(u.Size)
			continue
		}
		s.uniforms = append(s.uniforms, &shaderUniform{
			scope: scope,
			loc:   u.Location,
			gtype: u.Type,
			size:  u.Size,
		})
	}

	// Sampler units are fixed at link time.
	s.device.ctx.UseProgram(s.program)
	s.device.boundProgram = s.program
	for _, sam := range s.samplers {
		if sam.size > 1 {
			units := make([]int32, sam.size)
			for i := range units {
				units[i] = int32(sam.unit + i)
			}
			s.device.ctx.Uniform1iv(sam.loc, units)
		} else {
			s.device.ctx.Uniform1i(sam.loc, int32(sam.unit))
		}
	}

	s.ready = true
	return nil
}

// Destroy releases the native program and unregisters the resource.
func (s *Shader) Destroy() {
	if s.program != 0 {
		s.device.ctx.DeleteProgram(s.program)
		s.program = 0
	}
	s.ready = false
	s.device.unregisterResource(s)
}

// loseContext implements lossAware.
func (s *Shader) loseContext() {
	s.program = 0
	s.ready = false
}

// restoreContext implements lossAware. The sticky failed flag survives
// restoration: a shader that could not compile will not compile on the
// same driver after restore either.
func (s *Shader) restoreContext() {
	if s.failed {
		return
	}
	if err := s.compile(); err != nil {
		Logger().Warn("shader rebuild failed after restore", "shader", s.def.Name)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forward

import (
	"strconv"

	"github.com/gogpu/forge"
)

// lightSlot caches the resolved scope handles of one indexed light slot.
// Resolution is stable for the life of the scope, so resolving once per
// index and reusing the pointers avoids per-draw map lookups.
type lightSlot struct {
	color        *forge.ScopeID
	position     *forge.ScopeID
	direction    *forge.ScopeID
	rng          *forge.ScopeID
	cones        *forge.ScopeID
	shadowMatrix *forge.ScopeID
	shadowMap    *forge.ScopeID
	shadowParams *forge.ScopeID
	cascades     *forge.ScopeID
	cascadeCount *forge.ScopeID
	cookie       *forge.ScopeID
	cookieBlend  *forge.ScopeID
}

// ForwardRenderer dispatches cameras, lights and materials onto the forge
// device. One renderer per device; it caches scope handles and tracks the
// active material across draws to skip redundant state changes.
type ForwardRenderer struct {
	device *forge.Device

	viewMat     *forge.ScopeID
	projMat     *forge.ScopeID
	viewProjMat *forge.ScopeID
	viewPos     *forge.ScopeID
	modelMat    *forge.ScopeID
	normalMat   *forge.ScopeID
	dirCount    *forge.ScopeID
	omniCount   *forge.ScopeID
	spotCount   *forge.ScopeID

	slots []*lightSlot

	activeMaterial *Material
	activeDefines  uint64
}

// NewForwardRenderer creates a renderer bound to a device.
func NewForwardRenderer(d *forge.Device) *ForwardRenderer {
	scope := d.Scope()
	return &ForwardRenderer{
		device:      d,
		viewMat:     scope.Resolve("matrix_view"),
		projMat:     scope.Resolve("matrix_projection"),
		viewProjMat: scope.Resolve("matrix_viewProjection"),
		viewPos:     scope.Resolve("view_position"),
		modelMat:    scope.Resolve("matrix_model"),
		normalMat:   scope.Resolve("matrix_normal"),
		dirCount:    scope.Resolve("light_directionalCount"),
		omniCount:   scope.Resolve("light_omniCount"),
		spotCount:   scope.Resolve("light_spotCount"),
	}
}

// slot returns the handle set for light slot i, resolving on first use.
func (r *ForwardRenderer) slot(i int) *lightSlot {
	for len(r.slots) <= i {
		n := strconv.Itoa(len(r.slots))
		scope := r.device.Scope()
		r.slots = append(r.slots, &lightSlot{
			color:        scope.Resolve("light" + n + "_color"),
			position:     scope.Resolve("light" + n + "_position"),
			direction:    scope.Resolve("light" + n + "_direction"),
			rng:          scope.Resolve("light" + n + "_range"),
			cones:        scope.Resolve("light" + n + "_cones"),
			shadowMatrix: scope.Resolve("light" + n + "_shadowMatrix"),
			shadowMap:    scope.Resolve("light" + n + "_shadowMap"),
			shadowParams: scope.Resolve("light" + n + "_shadowParams"),
			cascades:     scope.Resolve("light" + n + "_shadowCascadeDistances"),
			cascadeCount: scope.Resolve("light" + n + "_shadowCascadeCount"),
			cookie:       scope.Resolve("light" + n + "_cookie"),
			cookieBlend:  scope.Resolve("light" + n + "_cookieIntensity"),
		})
	}
	return r.slots[i]
}

// dispatchLight publishes one light into slot i.
func (r *ForwardRenderer) dispatchLight(i int, l *Light) {
	s := r.slot(i)
	s.color.SetFloatArray(l.finalColor())

	switch l.Type {
	case LightDirectional:
		s.direction.SetVec3(l.Direction[0], l.Direction[1], l.Direction[2])
	case LightOmni:
		s.position.SetVec3(l.Position[0], l.Position[1], l.Position[2])
		s.rng.SetFloat(l.Range)
	case LightSpot:
		s.position.SetVec3(l.Position[0], l.Position[1], l.Position[2])
		s.direction.SetVec3(l.Direction[0], l.Direction[1], l.Direction[2])
		s.rng.SetFloat(l.Range)
		inner, outer := l.spotCosines()
		s.cones.SetVec2(inner, outer)
	}

	if l.CastShadows && l.ShadowMap != nil {
		s.shadowMatrix.SetMat4(l.ShadowMatrix)
		s.shadowMap.SetTexture(l.ShadowMap)
		res := float32(1)
		if l.ShadowResolution > 0 {
			res = 1 / float32(l.ShadowResolution)
		}
		s.shadowParams.SetVec4(l.ShadowBias, l.NormalOffsetBias, l.shadowSearchArea(), res)
		if l.Type == LightDirectional {
			splits, count := l.cascadeSplits()
			s.cascades.SetFloatArray(splits)
			s.cascadeCount.SetInt(count)
		}
	}

	if l.Cookie != nil {
		s.cookie.SetTexture(l.Cookie)
		s.cookieBlend.SetFloat(l.CookieIntensity)
	}
}

// dispatchLights publishes all lights in the fixed slot order and returns
// the variant key plus the lighting defines handed to material sources.
func (r *ForwardRenderer) dispatchLights(dir, omni, spot []*Light) (uint64, map[string]string) {
	i := 0
	for _, l := range dir {
		r.dispatchLight(i, l)
		i++
	}
	for _, l := range omni {
		r.dispatchLight(i, l)
		i++
	}
	for _, l := range spot {
		r.dispatchLight(i, l)
		i++
	}

	r.dirCount.SetInt(len(dir))
	r.omniCount.SetInt(len(omni))
	r.spotCount.SetInt(len(spot))

	key := uint64(len(dir))<<32 | uint64(len(omni))<<16 | uint64(len(spot))
	defines := map[string]string{
		"NUM_DIR_LIGHTS":  strconv.Itoa(len(dir)),
		"NUM_OMNI_LIGHTS": strconv.Itoa(len(omni)),
		"NUM_SPOT_LIGHTS": strconv.Itoa(len(spot)),
	}
	return key, defines
}

// dispatchCamera publishes the camera's matrices for a target aspect.
func (r *ForwardRenderer) dispatchCamera(c *Camera, width, height int) {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	proj := c.ProjectionMatrix(aspect)
	view := c.ViewMatrix
	viewProj := proj.Mul4(view)

	r.viewMat.SetMat4(view)
	r.projMat.SetMat4(proj)
	r.viewProjMat.SetMat4(viewProj)
	r.viewPos.SetVec3(c.Position[0], c.Position[1], c.Position[2])
}

// bindMaterial makes a material's render state current, skipping work when
// the material and its defines are unchanged since the previous draw.
func (r *ForwardRenderer) bindMaterial(m *Material) {
	if r.activeMaterial == m && r.activeDefines == m.definesHash() {
		return
	}
	r.activeMaterial = m
	r.activeDefines = m.definesHash()

	d := r.device
	d.SetBlendState(m.Blend)
	d.SetDepthState(m.Depth)
	d.SetCullMode(m.CullMode)
	d.SetStencilState(m.Stencil, m.Stencil)

	scope := d.Scope()
	for name, value := range m.params {
		scope.Resolve(name).SetValue(value)
	}
}

// Render draws the layers through the camera. It must run inside an open
// render pass (normally as a pass Execute callback built by BuildFrameGraph,
// which also handles clears and target binding).
func (r *ForwardRenderer) Render(camera *Camera, layers ...*Layer) {
	d := r.device
	target := camera.Target
	if target == nil {
		target = d.BackBuffer()
	}
	r.dispatchCamera(camera, target.Width(), target.Height())

	// Material state from a previous camera may reference stale scope
	// values; force the first draw to rebind.
	r.activeMaterial = nil

	for _, layer := range layers {
		if layer == nil || !layer.Enabled {
			continue
		}
		dir, omni, spot := sortLights(layer.Lights(), camera.Mask)
		lightKey, lightDefines := r.dispatchLights(dir, omni, spot)

		for _, mi := range layer.Instances() {
			if !mi.Visible || mi.Material == nil {
				continue
			}
			if camera.Mask != 0 && mi.Mask != 0 && camera.Mask&mi.Mask == 0 {
				continue
			}

			shader := mi.Material.variant(d, lightKey, lightDefines)
			if shader == nil {
				continue
			}
			if !d.SetShader(shader) {
				mi.Material.markSkipped()
				continue
			}
			r.bindMaterial(mi.Material)

			model := mi.Transform
			r.modelMat.SetMat4(model)
			normal := model.Mat3().Inv().Transpose()
			r.normalMat.SetValue(normal[:])

			for _, vb := range mi.VertexBuffers {
				d.SetVertexBuffer(vb)
			}
			d.SetIndexBuffer(mi.IndexBuffer)
			d.Draw(mi.Primitive, mi.InstanceCount, false)
		}
	}
}

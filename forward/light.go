// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forward

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/forge"
)

// LightType classifies a light source.
type LightType int

const (
	// LightDirectional is an infinitely distant light with parallel rays.
	LightDirectional LightType = iota

	// LightOmni is a point light radiating in all directions.
	LightOmni

	// LightSpot is a cone-limited point light.
	LightSpot
)

// String returns the light type name.
func (t LightType) String() string {
	switch t {
	case LightDirectional:
		return "directional"
	case LightOmni:
		return "omni"
	case LightSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// Light is one light source. Lights dispatch to shaders in a fixed slot
// order (directional, then omni, then spot) so a shader variant compiled
// for N directional + M omni lights reads stable slot indices.
type Light struct {
	Type LightType

	// Enabled lights participate in dispatch; disabled lights keep their
	// state but are skipped.
	Enabled bool

	// Color is linear-space RGB; Intensity scales it at dispatch.
	Color     mgl32.Vec3
	Intensity float32

	// Position and Direction in world space. Directional lights use only
	// Direction; omni lights only Position.
	Position  mgl32.Vec3
	Direction mgl32.Vec3

	// Range bounds omni and spot falloff.
	Range float32

	// InnerConeAngle and OuterConeAngle bound the spot cone, in degrees.
	InnerConeAngle float32
	OuterConeAngle float32

	// Shadow state. ShadowMap and ShadowMatrix feed the shader slots;
	// the frame graph renders them through an interleaved shadow pass
	// when ShadowTarget and RenderShadowCasters are set, otherwise they
	// are taken as produced upstream.
	CastShadows      bool
	ShadowMap        *forge.Texture
	ShadowMatrix     mgl32.Mat4
	ShadowBias       float32
	NormalOffsetBias float32
	ShadowResolution int

	// ShadowTarget is the render target the shadow map renders into.
	// RenderShadowCasters draws the caster set from the light's view;
	// the scene supplies it since caster lists live outside the
	// renderer. Both must be set for the frame graph to schedule a
	// shadow pass.
	ShadowTarget        *forge.RenderTarget
	RenderShadowCasters func(*forge.Device)

	// Penumbra is the softness of contact shadows for area-style lights,
	// expressed in world units of the light's extent.
	Penumbra float32

	// CascadeCount and CascadeDistances describe the shadow cascades of
	// a directional light. Distances are view-space split depths, one
	// per cascade; a count of zero or one means no cascading.
	CascadeCount     int
	CascadeDistances [maxCascades]float32

	// Cookie masks the light's projected intensity with a texture;
	// CookieIntensity blends between unmasked (0) and fully masked (1).
	Cookie          *forge.Texture
	CookieIntensity float32

	// Mask intersects with camera and mesh masks; zero means all.
	Mask uint32
}

// maxCascades is the cascade-slot width of the shadow uniform layout.
const maxCascades = 4

// NewLight returns an enabled white light of the given type with common
// defaults.
func NewLight(t LightType) *Light {
	return &Light{
		Type:             t,
		Enabled:          true,
		Color:            mgl32.Vec3{1, 1, 1},
		Intensity:        1,
		Direction:        mgl32.Vec3{0, -1, 0},
		Range:            10,
		InnerConeAngle:   40,
		OuterConeAngle:   45,
		ShadowBias:       0.05,
		ShadowResolution: 1024,
		CookieIntensity:  1,
	}
}

// cascadeSplits returns the padded split-depth array shaders index by
// cascade, plus the effective cascade count.
func (l *Light) cascadeSplits() ([]float32, int) {
	count := l.CascadeCount
	if count < 1 {
		count = 1
	}
	if count > maxCascades {
		count = maxCascades
	}
	splits := make([]float32, maxCascades)
	copy(splits, l.CascadeDistances[:count])
	return splits, count
}

// finalColor returns intensity-scaled RGB ready for upload.
func (l *Light) finalColor() []float32 {
	return []float32{
		l.Color[0] * l.Intensity,
		l.Color[1] * l.Intensity,
		l.Color[2] * l.Intensity,
	}
}

// shadowSearchArea converts the penumbra extent into the normalized
// blocker-search radius the soft-shadow filter samples over: penumbra
// divided by the shadow map resolution, compensated by the shadow
// projection's scale so the radius stays in texel space.
func (l *Light) shadowSearchArea() float32 {
	if l.Penumbra <= 0 || l.ShadowResolution <= 0 {
		return 0
	}
	// The projection's [0][0] element carries the horizontal scale of the
	// shadow frustum; wider frusta need proportionally smaller radii.
	scale := l.ShadowMatrix.At(0, 0)
	if scale == 0 {
		scale = 1
	}
	return l.Penumbra / float32(l.ShadowResolution) * float32(math.Abs(float64(scale)))
}

// spotCosines returns the cosines of the inner and outer cone angles,
// which is the form shaders consume.
func (l *Light) spotCosines() (inner, outer float32) {
	inner = float32(math.Cos(float64(mgl32.DegToRad(l.InnerConeAngle))))
	outer = float32(math.Cos(float64(mgl32.DegToRad(l.OuterConeAngle))))
	return inner, outer
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forward

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge"
)

// Camera is a viewpoint into a set of layers. Projection parameters are
// CPU-side; matrices reach shaders through the device scope when the
// camera's layers render.
type Camera struct {
	// Name labels the camera in logs and pass names.
	Name string

	// Fov is the vertical field of view in degrees for perspective
	// projection. Ignored when Orthographic.
	Fov float32

	// Near and Far are the clip plane distances.
	Near, Far float32

	// Orthographic selects orthographic projection; OrthoHeight is half
	// the vertical extent of the view volume.
	Orthographic bool
	OrthoHeight  float32

	// Position and the view basis. SetLookAt is the common way to fill
	// these; callers doing their own math can set ViewMatrix directly
	// and leave Position for specular terms.
	Position   mgl32.Vec3
	ViewMatrix mgl32.Mat4

	// ClearColor and the clear toggles drive the load ops of the pass
	// this camera starts.
	ClearColor         gputypes.Color
	ClearColorBuffer   bool
	ClearDepthBuffer   bool
	ClearStencilBuffer bool

	// Target is the render target, nil for the backbuffer.
	Target *forge.RenderTarget

	// Mask selects which mesh instances and lights this camera sees.
	// Zero means everything.
	Mask uint32
}

// NewCamera returns a perspective camera with common defaults.
func NewCamera(name string) *Camera {
	return &Camera{
		Name:             name,
		Fov:              45,
		Near:             0.1,
		Far:              1000,
		ViewMatrix:       mgl32.Ident4(),
		ClearColorBuffer: true,
		ClearDepthBuffer: true,
		ClearColor:       gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
	}
}

// SetLookAt points the camera at a target position with the given up
// vector.
func (c *Camera) SetLookAt(eye, center, up mgl32.Vec3) {
	c.Position = eye
	c.ViewMatrix = mgl32.LookAtV(eye, center, up)
}

// ProjectionMatrix computes the projection for a target aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if c.Orthographic {
		h := c.OrthoHeight
		w := h * aspect
		return mgl32.Ortho(-w, w, -h, h, c.Near, c.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package forward implements a forward renderer on top of the forge device:
// cameras, lights, materials with compile-time variants, layers of mesh
// instances, and a frame-graph builder that coalesces compatible render
// actions into shared render passes.
//
// Shader sources are opaque to the renderer; it communicates with them
// through named scope slots. Cameras publish matrix_view,
// matrix_projection, matrix_viewProjection and view_position; each mesh
// instance publishes matrix_model and matrix_normal; lights publish
// indexed slots (light0_color, light0_position, ...) in a fixed order:
// directional lights first, then omni, then spot. Shadow-casting lights
// add shadowMatrix/shadowMap/shadowParams slots (plus cascade splits for
// directional lights), and lights with a cookie texture add
// cookie/cookieIntensity slots. A shadow-casting light that also carries
// a shadow target and caster callback gets its shadow map rendered by an
// interleaved pass scheduled ahead of the first main pass that samples it.
package forward

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package forge is the rendering core of a real-time 3D engine: a
// graphics-device abstraction over GLES2/GLES3-class native contexts with a
// strict render-state and resource caching discipline, plus the render-pass
// and draw-submission machinery a forward renderer drives each frame.
//
// The device owns every GPU resource and a cache of the currently bound
// native state. Every state setter compares against the cache and emits
// native calls only on genuine transitions; uniform uploads are gated by
// version stamps; vertex-array objects are cached by buffer identity and
// format. Capability divergence between context classes is normalized once
// at device creation into a flat capability table, so renderer code never
// branches on extension presence.
//
// Device creation:
//
//	dev, err := forge.New(forge.WithSize(1280, 720))
//	if err != nil {
//	    // fatal: no usable graphics context
//	}
//	defer dev.Destroy()
//
// Per frame:
//
//	dev.FrameStart()
//	fg := forge.NewFrameGraph()
//	// ... build passes (see the forward package) ...
//	fg.Render(dev)
//	dev.FrameEnd()
//
// Context loss is a state transition, not an error: draws become no-ops
// while the context is lost, and restoration rebuilds capabilities, render
// state, caches and every live resource from its CPU-side descriptor in a
// fixed order. Subscribe with OnDeviceLost/OnDeviceRestored.
package forge

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import "github.com/gogpu/forge/glapi"

// LossState is the device's context-loss phase.
type LossState int

const (
	// LossActive is the normal operating state.
	LossActive LossState = iota

	// LossLost means the native context is gone. Every GPU-touching
	// operation is a silent no-op until restoration.
	LossLost

	// LossRestoring is the transient state while RestoreContext rebuilds
	// the world. Resources being rebuilt may issue native calls; user
	// operations are still suppressed.
	LossRestoring
)

// Lost reports whether the native context is currently lost.
func (d *Device) Lost() bool { return d.lossState != LossActive }

// OnDeviceLost registers a callback invoked when the context is lost.
func (d *Device) OnDeviceLost(fn func()) {
	d.lostListeners = append(d.lostListeners, fn)
}

// OnDeviceRestored registers a callback invoked after the context and all
// resources have been rebuilt.
func (d *Device) OnDeviceRestored(fn func()) {
	d.restoredListeners = append(d.restoredListeners, fn)
}

// LoseContext marks the context lost. Every resource forgets its native
// handle but keeps its CPU-side descriptor and data, so restoration can
// rebuild it. Cached vertex-array objects are dropped outright; they are
// derived state and get rebuilt on demand.
func (d *Device) LoseContext() {
	if d.lossState != LossActive {
		return
	}
	d.lossState = LossLost
	Logger().Warn("graphics context lost")

	for _, r := range d.resources {
		r.loseContext()
	}
	// Handles are invalid; discard them without native deletes.
	d.vaoCache = make(map[string]glapi.VertexArray)
	if d.backBuffer != nil {
		d.backBuffer.loseContext()
	}

	for _, fn := range d.lostListeners {
		fn()
	}
}

// RestoreContext rebuilds the device on a freshly restored native context.
// Order matters: extensions and limits are re-probed first (the restored
// context may differ), then the default render state and binding caches are
// re-pushed, then every live resource rebuilds its native object in
// creation order so dependencies (buffers before targets) come back first.
func (d *Device) RestoreContext() {
	if d.lossState != LossLost {
		return
	}
	d.lossState = LossRestoring
	Logger().Info("graphics context restoring")

	d.initialize()
	for _, r := range d.resources {
		r.restoreContext()
	}

	d.lossState = LossActive
	Logger().Info("graphics context restored")

	for _, fn := range d.restoredListeners {
		fn()
	}
}

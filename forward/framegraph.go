// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forward

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge"
)

// RenderAction is one camera drawing a set of layers. Builders emit an
// ordered action list each frame; BuildFrameGraph folds it into passes.
type RenderAction struct {
	Camera *Camera
	Layers []*Layer

	// GrabPass requests a copy of the target's color into GrabTexture
	// before this action renders, for refraction-style effects. A grab
	// forces a pass boundary: the copy must see all earlier draws
	// resolved.
	GrabPass    bool
	GrabTexture *forge.RenderTarget
}

// actionTarget resolves the action's render target, nil meaning backbuffer.
func (a *RenderAction) actionTarget() *forge.RenderTarget {
	if a.Camera == nil {
		return nil
	}
	return a.Camera.Target
}

// loadOp maps a camera clear toggle to a load op.
func loadOp(clear bool) gputypes.LoadOp {
	if clear {
		return gputypes.LoadOpClear
	}
	return gputypes.LoadOpLoad
}

// shadowPasses returns one pass per shadow-casting light of the action's
// layers that carries a shadow target and caster callback, skipping
// lights already scheduled this build. A shadow map must be rendered
// before the main pass that samples it, so a pending shadow pass forces
// a boundary.
func (r *ForwardRenderer) shadowPasses(a *RenderAction, done map[*Light]bool) []*forge.RenderPass {
	var passes []*forge.RenderPass
	for _, layer := range a.Layers {
		if layer == nil || !layer.Enabled {
			continue
		}
		for _, l := range layer.Lights() {
			if !l.Enabled || !l.CastShadows || done[l] {
				continue
			}
			if l.ShadowTarget == nil || l.RenderShadowCasters == nil {
				continue
			}
			done[l] = true
			light := l
			device := r.device
			passes = append(passes, &forge.RenderPass{
				Name:   light.Type.String() + "-shadow",
				Target: light.ShadowTarget,
				Color: forge.ColorAttachmentOps{
					Load:       gputypes.LoadOpClear,
					Store:      gputypes.StoreOpStore,
					ClearValue: gputypes.Color{R: 1, G: 1, B: 1, A: 1},
				},
				DepthStencil: forge.DepthStencilAttachmentOps{
					DepthLoad:  gputypes.LoadOpClear,
					DepthStore: gputypes.StoreOpStore,
					ClearDepth: 1,
				},
				Execute: func() { light.RenderShadowCasters(device) },
			})
		}
	}
	return passes
}

// BuildFrameGraph folds an ordered action list into render passes.
// Consecutive actions on the same target share one pass, so a UI camera
// drawing over a scene camera costs no extra target switch or resolve; the
// first action's clear flags become the pass load ops and later actions
// implicitly load. Target changes, grab passes and pending shadow passes
// force pass boundaries.
func BuildFrameGraph(r *ForwardRenderer, actions []*RenderAction) *forge.FrameGraph {
	fg := forge.NewFrameGraph()

	var group []*RenderAction
	var groupTarget *forge.RenderTarget
	open := false
	shadowDone := make(map[*Light]bool)

	flush := func() {
		if !open {
			return
		}
		first := group[0].Camera
		batch := make([]*RenderAction, len(group))
		copy(batch, group)
		renderer := r

		pass := &forge.RenderPass{
			Name:   first.Name,
			Target: groupTarget,
			Color: forge.ColorAttachmentOps{
				Load:       loadOp(first.ClearColorBuffer),
				Store:      gputypes.StoreOpStore,
				ClearValue: first.ClearColor,
				Resolve:    true,
			},
			DepthStencil: forge.DepthStencilAttachmentOps{
				DepthLoad:    loadOp(first.ClearDepthBuffer),
				DepthStore:   gputypes.StoreOpDiscard,
				StencilLoad:  loadOp(first.ClearStencilBuffer),
				StencilStore: gputypes.StoreOpDiscard,
				ClearDepth:   1,
			},
			Execute: func() {
				for _, a := range batch {
					renderer.Render(a.Camera, a.Layers...)
				}
			},
		}
		fg.AddPass(pass)
		group = group[:0]
		open = false
	}

	for _, a := range actions {
		if a == nil || a.Camera == nil {
			continue
		}
		target := a.actionTarget()

		if sp := r.shadowPasses(a, shadowDone); len(sp) > 0 {
			// Earlier draws on the shared target must be submitted
			// before the target switch to the shadow map.
			flush()
			for _, p := range sp {
				fg.AddPass(p)
			}
		}

		if a.GrabPass && a.GrabTexture != nil {
			// The grab must observe everything drawn so far.
			flush()
			src, dst := target, a.GrabTexture
			device := r.device
			fg.AddPass(&forge.RenderPass{
				Name:   a.Camera.Name + "-grab",
				Target: target,
				Color: forge.ColorAttachmentOps{
					Load:  gputypes.LoadOpLoad,
					Store: gputypes.StoreOpStore,
				},
				DepthStencil: forge.DepthStencilAttachmentOps{
					DepthLoad:  gputypes.LoadOpLoad,
					DepthStore: gputypes.StoreOpStore,
				},
				Execute: func() {
					grabSrc := src
					if grabSrc == nil {
						grabSrc = device.BackBuffer()
					}
					if !dst.Copy(grabSrc, true, false) {
						forge.Logger().Warn("grab pass copy failed", "camera", a.Camera.Name)
					}
				},
			})
		}

		if open && target != groupTarget {
			flush()
		}
		if !open {
			groupTarget = target
			open = true
		}
		group = append(group, a)
	}
	flush()

	return fg
}

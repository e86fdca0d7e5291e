// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

// FrameGraph is an ordered list of render passes executed once per frame.
// Builders reset and repopulate it each frame; the graph itself owns no GPU
// state, so rebuilding is cheap.
type FrameGraph struct {
	passes []*RenderPass
}

// NewFrameGraph returns an empty frame graph.
func NewFrameGraph() *FrameGraph {
	return &FrameGraph{}
}

// AddPass appends a pass. nil passes are ignored.
func (fg *FrameGraph) AddPass(p *RenderPass) {
	if p != nil {
		fg.passes = append(fg.passes, p)
	}
}

// Passes returns the pass list in execution order.
func (fg *FrameGraph) Passes() []*RenderPass { return fg.passes }

// Reset empties the graph for the next frame's build.
func (fg *FrameGraph) Reset() {
	fg.passes = fg.passes[:0]
}

// Render executes every pass in order. On a lost context the whole graph is
// a no-op.
func (fg *FrameGraph) Render(d *Device) {
	if d.lossState != LossActive || d.destroyed {
		return
	}
	for _, p := range fg.passes {
		d.StartRenderPass(p)
		if p.Execute != nil {
			p.Execute()
		}
		d.EndRenderPass(p)
	}
}

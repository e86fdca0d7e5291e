// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"strings"
)

// quirk is one vendor/driver workaround. Workarounds are data, not control
// flow: a quirk matches on substrings of the probed identification strings
// and declares the effects to fold into the capability table. Renderer code
// only ever reads the resulting capabilities.
type quirk struct {
	// name identifies the quirk in logs.
	name string

	// vendorContains and rendererContains match case-insensitively against
	// the probed VENDOR/RENDERER strings. Empty patterns match anything.
	vendorContains   string
	rendererContains string

	// Effects.
	disableMSAA         bool
	disableGPUParticles bool
	maxBones            int
}

// quirkTable is the known-workaround list. Entries mirror driver bugs seen
// in the field: multisampled backbuffers wedging specific compositors,
// uniform-count lies on weak GPUs, and broken transform feedback on some
// mobile SoCs.
var quirkTable = []quirk{
	{
		name:             "swiftshader-no-msaa",
		rendererContains: "swiftshader",
		disableMSAA:      true,
	},
	{
		name:             "llvmpipe-no-msaa",
		rendererContains: "llvmpipe",
		disableMSAA:      true,
	},
	{
		name:                "mali-4xx",
		rendererContains:    "mali-4",
		maxBones:            34,
		disableGPUParticles: true,
	},
	{
		name:                "adreno-3xx",
		rendererContains:    "adreno (tm) 3",
		disableGPUParticles: true,
	},
	{
		name:             "videocore",
		rendererContains: "videocore",
		maxBones:         34,
		disableMSAA:      true,
	},
}

// matches reports whether the quirk applies to the probed identification.
func (q *quirk) matches(vendor, renderer string) bool {
	if q.vendorContains != "" && !strings.Contains(strings.ToLower(vendor), q.vendorContains) {
		return false
	}
	if q.rendererContains != "" && !strings.Contains(strings.ToLower(renderer), q.rendererContains) {
		return false
	}
	return true
}

// applyQuirks folds every matching workaround into the capability table and
// logs the hits. Called once per probe, including re-probes after context
// restoration.
func applyQuirks(caps *Capabilities, extraQuirks []quirk) {
	apply := func(q *quirk) {
		if !q.matches(caps.Vendor, caps.Renderer) {
			return
		}
		Logger().Warn("applying GPU workaround", "quirk", q.name, "renderer", caps.Renderer)
		if q.disableMSAA {
			caps.SupportsMSAA = false
			caps.MaxSamples = 1
		}
		if q.disableGPUParticles {
			caps.SupportsGPUParticles = false
		}
		if q.maxBones > 0 && q.maxBones < caps.MaxBones {
			caps.MaxBones = q.maxBones
		}
	}

	for i := range quirkTable {
		apply(&quirkTable[i])
	}
	for i := range extraQuirks {
		apply(&extraQuirks[i])
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glapi defines the native graphics-context contract consumed by
// the forge device layer.
//
// The contract is an immediate-mode, GL-shaped API: bind, set-parameter,
// draw, clear, create/delete resource. It deliberately spans the GLES2/GLES3
// class divergence in a single interface; callers discover which class they
// are talking to through Profile and Extensions and are expected to consult
// the device capability table rather than branch on extension presence at
// call sites.
//
// Two implementations ship with forge:
//   - backend/gl: a real context over go-gl/gl and glfw.
//   - Recorder (this package): an in-memory context that records every
//     native call, used by the device and renderer tests.
package glapi

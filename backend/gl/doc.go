// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gl provides the desktop OpenGL context provider, built on GLFW
// for windowing and go-gl for bindings. Importing the package registers the
// provider with the backend registry:
//
//	import _ "github.com/gogpu/forge/backend/gl"
//
// The provider creates a 4.1 core-profile context, which covers the GLES3
// feature class that forge targets. All calls must happen on the thread
// that created the context; the provider locks the OS thread at creation.
package gl

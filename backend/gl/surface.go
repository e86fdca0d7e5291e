// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import "github.com/go-gl/glfw/v3.3/glfw"

// surface implements backend.Surface over a GLFW window.
type surface struct {
	window *glfw.Window
}

// Size returns the framebuffer size in pixels, which on high-DPI displays
// differs from the window size.
func (s *surface) Size() (int, int) {
	return s.window.GetFramebufferSize()
}

// Present swaps buffers and pumps the event loop.
func (s *surface) Present() {
	s.window.SwapBuffers()
	glfw.PollEvents()
}

// ShouldClose reports whether the user asked to close the window.
func (s *surface) ShouldClose() bool {
	return s.window.ShouldClose()
}

// Destroy destroys the window. GLFW itself stays initialized; it is shared
// process state.
func (s *surface) Destroy() {
	s.window.Destroy()
}

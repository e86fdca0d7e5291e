// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/forge/backend"
	"github.com/gogpu/forge/glapi"
)

func init() {
	backend.Register(backend.ProviderGL, func() backend.ContextProvider { return &provider{} })
}

var (
	glfwOnce sync.Once
	glfwErr  error
)

// provider implements backend.ContextProvider over GLFW + desktop OpenGL.
type provider struct{}

func (p *provider) Name() string { return backend.ProviderGL }

// CreateContext creates a window (hidden when attrs.Visible is false), makes
// its 4.1 core context current on the calling thread and initializes the
// function pointers. The calling goroutine is locked to its OS thread for
// the life of the context.
func (p *provider) CreateContext(attrs backend.ContextAttributes) (glapi.Context, backend.Surface, error) {
	runtime.LockOSThread()
	glfwOnce.Do(func() { glfwErr = glfw.Init() })
	if glfwErr != nil {
		return nil, nil, fmt.Errorf("gl: glfw init: %w", glfwErr)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if attrs.Antialias {
		// Backbuffer multisampling; offscreen targets resolve their own.
		glfw.WindowHint(glfw.Samples, 4)
	} else {
		glfw.WindowHint(glfw.Samples, 0)
	}
	var depthBits, stencilBits int
	if attrs.Depth {
		depthBits = 24
	}
	if attrs.Stencil {
		stencilBits = 8
	}
	glfw.WindowHint(glfw.DepthBits, depthBits)
	glfw.WindowHint(glfw.StencilBits, stencilBits)
	if attrs.Visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(attrs.Width, attrs.Height, attrs.Title, nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("gl: create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, nil, fmt.Errorf("gl: load function pointers: %w", err)
	}

	return newContext(), &surface{window: win}, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/backend"
	"github.com/gogpu/forge/glapi"
)

// Device errors.
var (
	// ErrNoContext is returned by New when no usable native context can be
	// obtained. This is the one fatal failure of the layer: there is no
	// software fallback.
	ErrNoContext = errors.New("forge: no graphics context could be created")

	// ErrDestroyed is returned by operations on a destroyed device.
	ErrDestroyed = errors.New("forge: device destroyed")
)

// lossAware is implemented by every resource that must drop native handles
// on context loss and rebuild from its CPU-side descriptor on restore.
type lossAware interface {
	loseContext()
	restoreContext()
}

// FrameMetrics are per-frame counters, reset exactly once per frame at
// FrameStart.
type FrameMetrics struct {
	DrawCalls            int
	InstancedDrawCalls   int
	SkippedDraws         int
	ShaderSwitches       int
	RenderTargetSwitches int
	UniformCommits       int
	TextureBinds         int
}

// Device is the graphics device: the single owner of all GPU resources,
// the capability table and the bound-state cache. One device exists per
// native context; all methods must be called from one logical thread.
type Device struct {
	ctx     glapi.Context
	surface backend.Surface
	caps    *Capabilities
	scope   *ScopeSpace
	opts    deviceOptions

	// Bound-state cache. Every field mirrors the native state exactly:
	// setters mutate a field atomically with the native call that changes
	// it, or not at all.
	blendState       BlendState
	blendColor       gputypes.Color
	depthState       DepthState
	stencilEnabled   bool
	stencilFront     StencilParameters
	stencilBack      StencilParameters
	cullMode         gputypes.CullMode
	frontFace        gputypes.FrontFace
	alphaToCoverage  bool
	vp               [4]int32
	sc               [4]int32
	clearColor       gputypes.Color
	clearDepth       float32
	clearStencil     int32
	activeUnit       int
	textureUnits     [][numTargetClasses]glapi.Texture
	boundArrayBuffer glapi.Buffer
	boundProgram     glapi.Program
	boundVAO         glapi.VertexArray
	boundFramebuffer glapi.Framebuffer

	// Draw submission state.
	shader         *Shader
	vertexBuffers  []*VertexBuffer
	indexBuffer    *IndexBuffer
	feedbackBuffer *VertexBuffer
	vaoCache       map[string]glapi.VertexArray
	renderTarget   *RenderTarget
	backBuffer     *RenderTarget
	backBufferSize [2]int
	insidePass     bool

	// Resource registry in creation order, for ordered loss/restore.
	resources         []lossAware
	nextID            uint64
	lossState         LossState
	lostListeners     []func()
	restoredListeners []func()

	frame     FrameMetrics
	frameNum  uint64
	destroyed bool
}

// New creates a device. Without WithContext, the backend registry supplies
// the native context; a registry with no usable provider or a provider that
// cannot create a context is fatal and returns ErrNoContext.
func New(options ...Option) (*Device, error) {
	o := defaultDeviceOptions()
	for _, opt := range options {
		opt(&o)
	}

	d := &Device{
		opts:     o,
		scope:    NewScopeSpace("device"),
		vaoCache: make(map[string]glapi.VertexArray),
	}

	if o.ctx != nil {
		d.ctx = o.ctx
	} else {
		var provider backend.ContextProvider
		if o.backendName != "" {
			provider = backend.Get(o.backendName)
		} else {
			provider = backend.Default()
		}
		if provider == nil {
			return nil, fmt.Errorf("%w: no context provider registered", ErrNoContext)
		}
		ctx, surface, err := provider.CreateContext(o.attrs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoContext, err)
		}
		d.ctx = ctx
		d.surface = surface
	}

	d.initialize()

	Logger().Info("graphics device created",
		"profile", d.ctx.Profile().String(),
		"vendor", d.caps.Vendor,
		"renderer", d.caps.Renderer,
		"samples", d.backBuffer.samples)

	return d, nil
}

// initialize probes capabilities, applies quirks, pushes the default render
// state and builds the distinguished backbuffer target. Re-run in full on
// context restoration.
func (d *Device) initialize() {
	d.caps = probeCapabilities(d.ctx)
	applyQuirks(d.caps, d.opts.extraQuirks)

	d.initRenderState()
	d.initContextCaches()

	w, h := d.opts.attrs.Width, d.opts.attrs.Height
	if d.surface != nil {
		w, h = d.surface.Size()
	}
	if d.backBuffer != nil {
		w, h = d.backBuffer.width, d.backBuffer.height
	}
	samples := resolveSamples(d.opts.attrs.Antialias, d.caps)
	d.backBuffer = newBackbufferTarget(d, w, h, samples, d.opts.attrs.Depth, d.opts.attrs.Stencil)
	d.backBufferSize = [2]int{w, h}
}

// initRenderState pushes the full default state natively and fills the
// cache to match, so every later setter compares against known-true values.
func (d *Device) initRenderState() {
	ctx := d.ctx

	d.blendState = BlendStateOpaque()
	ctx.Disable(glapi.BLEND)
	ctx.BlendFuncSeparate(glapi.ONE, glapi.ZERO, glapi.ONE, glapi.ZERO)
	ctx.BlendEquationSeparate(glapi.FUNC_ADD, glapi.FUNC_ADD)
	ctx.ColorMask(true, true, true, true)

	d.blendColor = gputypes.Color{}
	ctx.BlendColor(0, 0, 0, 0)

	d.depthState = DepthStateDefault()
	ctx.Enable(glapi.DEPTH_TEST)
	ctx.DepthFunc(glapi.LEQUAL)
	ctx.DepthMask(true)

	d.stencilEnabled = false
	d.stencilFront = DefaultStencilParameters()
	d.stencilBack = d.stencilFront
	ctx.Disable(glapi.STENCIL_TEST)

	d.cullMode = gputypes.CullModeBack
	d.frontFace = gputypes.FrontFaceCCW
	ctx.Enable(glapi.CULL_FACE)
	ctx.CullFace(glapi.BACK)
	ctx.FrontFace(glapi.CCW)

	d.alphaToCoverage = false
	ctx.Disable(glapi.SAMPLE_ALPHA_TO_COVERAGE)

	d.vp = [4]int32{0, 0, 0, 0}
	d.sc = [4]int32{0, 0, 0, 0}
	ctx.Disable(glapi.SCISSOR_TEST)

	d.clearColor = gputypes.Color{}
	d.clearDepth = 1
	d.clearStencil = 0
	ctx.ClearColor(0, 0, 0, 0)
	ctx.ClearDepth(1)
	ctx.ClearStencil(0)

	ctx.PixelStorei(glapi.UNPACK_ALIGNMENT, 1)
	ctx.PixelStorei(glapi.PACK_ALIGNMENT, 1)
}

// initContextCaches resets every binding cache to the context's known
// post-creation state.
func (d *Device) initContextCaches() {
	units := d.caps.MaxCombinedTextures
	if units <= 0 {
		units = 16
	}
	d.textureUnits = make([][numTargetClasses]glapi.Texture, units)
	d.activeUnit = -1
	d.boundArrayBuffer = 0
	d.boundProgram = 0
	d.boundVAO = 0
	d.boundFramebuffer = 0
	d.vaoCache = make(map[string]glapi.VertexArray)
	d.shader = nil
	d.vertexBuffers = d.vertexBuffers[:0]
	d.indexBuffer = nil
	d.feedbackBuffer = nil
	d.renderTarget = nil
}

// Caps returns the normalized capability table.
func (d *Device) Caps() *Capabilities { return d.caps }

// Scope returns the device's named-value scope.
func (d *Device) Scope() *ScopeSpace { return d.scope }

// BackBuffer returns the distinguished default-framebuffer render target.
func (d *Device) BackBuffer() *RenderTarget { return d.backBuffer }

// Surface returns the drawing surface, or nil for host-supplied contexts.
func (d *Device) Surface() backend.Surface { return d.surface }

// Metrics returns the counters accumulated since the last FrameStart.
func (d *Device) Metrics() FrameMetrics { return d.frame }

// FrameNum returns the number of started frames.
func (d *Device) FrameNum() uint64 { return d.frameNum }

// nextResourceID issues device-unique resource identities. Identity, not
// content, keys the vertex-array cache.
func (d *Device) nextResourceID() uint64 {
	d.nextID++
	return d.nextID
}

// registerResource adds a resource to the loss/restore registry.
func (d *Device) registerResource(r lossAware) {
	d.resources = append(d.resources, r)
}

// unregisterResource removes a resource from the registry.
func (d *Device) unregisterResource(r lossAware) {
	for i, res := range d.resources {
		if res == r {
			d.resources = append(d.resources[:i], d.resources[i+1:]...)
			return
		}
	}
}

// Resize updates the backbuffer dimensions. The backbuffer target is
// destroyed and recreated, since its descriptor (size, sample count) is
// part of pass and clear semantics.
func (d *Device) Resize(width, height int) {
	if width == d.backBufferSize[0] && height == d.backBufferSize[1] {
		return
	}
	d.backBufferSize = [2]int{width, height}
	samples := d.backBuffer.samples
	d.backBuffer = newBackbufferTarget(d, width, height, samples, d.opts.attrs.Depth, d.opts.attrs.Stencil)
	Logger().Debug("backbuffer resized", "width", width, "height", height)
}

// FrameStart opens a frame: polls surface size, resets per-frame metrics
// (exactly once per frame) and advances the frame counter.
func (d *Device) FrameStart() {
	d.frameNum++
	d.frame = FrameMetrics{}
	if d.surface != nil {
		w, h := d.surface.Size()
		d.Resize(w, h)
	}
}

// FrameEnd closes a frame: flushes pending native work and presents the
// surface when one exists. The frame boundary is the only synchronization
// point of the layer.
func (d *Device) FrameEnd() {
	if d.lossState != LossActive {
		return
	}
	d.ctx.Flush()
	if d.surface != nil {
		d.surface.Present()
	}
}

// Destroy releases every live resource and the device itself. A device is
// destroyed exactly once; further calls are no-ops.
func (d *Device) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true

	d.clearVAOCache()

	// Resource Destroy mutates d.resources; walk a copy.
	live := make([]lossAware, len(d.resources))
	copy(live, d.resources)
	for i := len(live) - 1; i >= 0; i-- {
		if res, ok := live[i].(interface{ Destroy() }); ok {
			res.Destroy()
		}
	}
	d.resources = nil

	if d.surface != nil {
		d.surface.Destroy()
		d.surface = nil
	}
	Logger().Info("graphics device destroyed")
}

// clearVAOCache deletes every cached vertex-array object.
func (d *Device) clearVAOCache() {
	for _, vao := range d.vaoCache {
		d.ctx.DeleteVertexArray(vao)
	}
	d.vaoCache = make(map[string]glapi.VertexArray)
}

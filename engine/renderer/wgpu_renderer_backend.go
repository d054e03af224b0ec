package renderer

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-spheres/common"
	"github.com/Carmen-Shannon/oxy-spheres/engine/camera"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/buffer_set"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// transformsVarName is the WGSL variable bound to the shared transforms uniform buffer.
const transformsVarName = "transforms"

// depthFormat is the format of the main depth attachment.
const depthFormat = wgpu.TextureFormatDepth24Plus

type wgpuRendererBackend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	alphaMode            wgpu.CompositeAlphaMode
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  ClearColor

	// transforms is the uniform buffer shared by every pipeline's "transforms" binding
	transforms *wgpu.Buffer

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// wgpuPipelineState is the handle stored on a pipeline registered with the WebGPU backend.
type wgpuPipelineState struct {
	pipeline       *wgpu.RenderPipeline
	pipelineLayout *wgpu.PipelineLayout
	layouts        []*wgpu.BindGroupLayout
	bindGroups     []*wgpu.BindGroup
	// buffers owned by this pipeline; the shared transforms buffer is not included
	buffers []*wgpu.Buffer
}

func (s *wgpuPipelineState) Release() {
	for _, bg := range s.bindGroups {
		bg.Release()
	}
	for _, buf := range s.buffers {
		buf.Release()
	}
	for _, l := range s.layouts {
		if l != nil {
			l.Release()
		}
	}
	if s.pipeline != nil {
		s.pipeline.Release()
	}
	if s.pipelineLayout != nil {
		s.pipelineLayout.Release()
	}
	*s = wgpuPipelineState{}
}

var _ RendererBackend = &wgpuRendererBackend{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, clearColor ClearColor) (*wgpuRendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("%w: no WebGPU surface descriptor", ErrContextUnavailable)
	}
	runtime.LockOSThread()

	w := &wgpuRendererBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  clearColor,
	}
	if w.instance == nil {
		return nil, fmt.Errorf("%w: WebGPU instance", ErrContextUnavailable)
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("%w: request adapter: %v", ErrContextUnavailable, err)
	}
	w.adapter = a

	capabilities := w.surface.GetCapabilities(w.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		w.Release()
		return nil, fmt.Errorf("%w: surface is not compatible with the adapter", ErrContextUnavailable)
	}
	w.surfaceFormat = capabilities.Formats[0]
	w.alphaMode = capabilities.AlphaModes[0]

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("%w: request device: %v", ErrContextUnavailable, err)
	}
	w.device = d
	w.queue = d.GetQueue()

	uniform := camera.GPUTransformUniform{}
	w.transforms, err = d.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Transforms Uniform Buffer",
		Size:  uint64(uniform.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("%w: transforms buffer: %v", ErrContextUnavailable, err)
	}

	return w, nil
}

func (b *wgpuRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		tex, view, err := b.createTarget("MSAA Texture", width, height, count, b.surfaceFormat)
		if err != nil {
			log.Printf("[Renderer] failed to create MSAA target: %v", err)
			return
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Depth texture sample count must match the color attachment.
	tex, view, err := b.createTarget("Depth Texture", width, height, count, depthFormat)
	if err != nil {
		log.Printf("[Renderer] failed to create depth target: %v", err)
		return
	}
	b.depthTexture, b.depthTextureView = tex, view

	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is set per-frame to the
	// swapchain view. When disabled, View is set per-frame to the swapchain view.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
				ClearValue: wgpu.Color{
					R: b.clearColor[0], G: b.clearColor[1], B: b.clearColor[2], A: b.clearColor[3],
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// createTarget creates a single-mip render attachment and its default view.
func (b *wgpuRendererBackend) createTarget(label string, width, height int, sampleCount uint32, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, err
	}
	return tex, view, nil
}

// releaseTargets frees the size dependent attachments. Caller must hold the mutex.
func (b *wgpuRendererBackend) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}
	if p.Language() != shader.LanguageWGSL {
		return fmt.Errorf("WebGPU pipelines need WGSL shaders, got %s", p.Language())
	}

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return newCompileError(vertexShader.ShaderType().String(), err.Error())
	}
	defer vs.Release()
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return newCompileError(fragmentShader.ShaderType().String(), err.Error())
	}
	defer fs.Release()

	state := &wgpuPipelineState{}
	if err := b.createBindGroups(p.PipelineKey(), state, vertexShader, fragmentShader); err != nil {
		state.Release()
		return newLinkError(err.Error())
	}

	state.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: state.layouts,
	})
	if err != nil {
		state.Release()
		return newLinkError(err.Error())
	}

	state.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: state.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: p.WriteMask(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      p.DepthCompare(),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		state.Release()
		return newLinkError(err.Error())
	}

	p.SetHandle(state)
	return nil
}

// createBindGroups creates one layout and bind group per group index used by either shader.
// The "transforms" binding uses the shared transforms buffer; any other buffer binding gets
// its own zeroed buffer of MinBindingSize.
func (b *wgpuRendererBackend) createBindGroups(label string, state *wgpuPipelineState, vertexShader, fragmentShader shader.Shader) error {
	merged := mergeBindGroupLayouts(vertexShader.BindGroupLayoutDescriptors(), fragmentShader.BindGroupLayoutDescriptors())
	groupCount := 0
	for g := range merged {
		groupCount = max(groupCount, g+1)
	}
	transformsSize := uint64(b.transforms.GetSize())

	for g := 0; g < groupCount; g++ {
		desc := merged[g]
		layout, err := b.device.CreateBindGroupLayout(&desc)
		if err != nil {
			return fmt.Errorf("bind group layout %d: %w", g, err)
		}
		state.layouts = append(state.layouts, layout)

		entries := make([]wgpu.BindGroupEntry, 0, len(desc.Entries))
		for _, e := range desc.Entries {
			name := common.Coalesce(vertexShader.BindGroupVarName(g, int(e.Binding)), fragmentShader.BindGroupVarName(g, int(e.Binding)))
			buf := b.transforms
			if name != transformsVarName || e.Buffer.MinBindingSize > transformsSize {
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: fmt.Sprintf("%s %s Buffer", label, name),
					Size:  e.Buffer.MinBindingSize,
					Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
				})
				if err != nil {
					return fmt.Errorf("buffer for group %d binding %d: %w", g, e.Binding, err)
				}
				state.buffers = append(state.buffers, buf)
			}
			entries = append(entries, wgpu.BindGroupEntry{
				Binding: e.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			})
		}

		bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("%s Bind Group %d", label, g),
			Layout:  layout,
			Entries: entries,
		})
		if err != nil {
			return fmt.Errorf("bind group %d: %w", g, err)
		}
		state.bindGroups = append(state.bindGroups, bindGroup)
	}
	return nil
}

func (b *wgpuRendererBackend) InitBufferSet(set buffer_set.BufferSet, positions, colors, indices []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	pos, err := b.createBuffer(set.Label()+" Position Buffer", positions, wgpu.BufferUsageVertex)
	if err != nil {
		return err
	}
	col, err := b.createBuffer(set.Label()+" Color Buffer", colors, wgpu.BufferUsageVertex)
	if err != nil {
		pos.Release()
		return err
	}
	idx, err := b.createBuffer(set.Label()+" Index Buffer", indices, wgpu.BufferUsageIndex)
	if err != nil {
		pos.Release()
		col.Release()
		return err
	}

	set.SetPositionBuffer(pos)
	set.SetColorBuffer(col)
	set.SetIndexBuffer(idx)
	set.SetIndexCount(indexCount)
	return nil
}

// createBuffer creates a buffer padded to a 4 byte multiple and writes data into it.
func (b *wgpuRendererBackend) createBuffer(label string, data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: no data", label)
	}
	padded := common.AlignTo4(data)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(padded)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(buf, 0, padded)
	return buf, nil
}

// WriteTransforms uploads both matrices once; every draw in the frame shares them.
func (b *wgpuRendererBackend) WriteTransforms(projection, modelView mgl32.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()

	u := camera.GPUTransformUniform{
		Projection: common.WebGPUProjection(projection),
		ModelView:  modelView,
	}
	b.queue.WriteBuffer(b.transforms, 0, u.Marshal())
}

func (b *wgpuRendererBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A surface image still held from the previous frame cannot be acquired again.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}
	if b.renderPassDescriptor == nil {
		return fmt.Errorf("surface is not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackend) DrawCall(p pipeline.Pipeline, set buffer_set.BufferSet) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	state, ok := p.Handle().(*wgpuPipelineState)
	if !ok || state.pipeline == nil {
		return
	}
	pos, okPos := set.PositionBuffer().(*wgpu.Buffer)
	col, okCol := set.ColorBuffer().(*wgpu.Buffer)
	idx, okIdx := set.IndexBuffer().(*wgpu.Buffer)
	if !okPos || !okCol || !okIdx {
		return
	}

	b.framePass.SetPipeline(state.pipeline)
	for i, bg := range state.bindGroups {
		b.framePass.SetBindGroup(uint32(i), bg, nil)
	}
	b.framePass.SetVertexBuffer(0, pos, 0, wgpu.WholeSize)
	b.framePass.SetVertexBuffer(1, col, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(idx, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(set.IndexCount()), 1, 0, 0, 0)
}

func (b *wgpuRendererBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		log.Printf("[Renderer] failed to finish frame: %v", err)
		b.frameEncoder.Release()
		b.frameEncoder = nil
		b.releaseFrameSurface()
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
}

func (b *wgpuRendererBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

// releaseFrameSurface drops the acquired swapchain texture and view. Caller must hold the mutex.
func (b *wgpuRendererBackend) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameSurface()
	b.releaseTargets()
	if b.transforms != nil {
		b.transforms.Release()
		b.transforms = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// mergeBindGroupLayouts combines the vertex and fragment stage layouts of a render pipeline.
// Entries sharing a group and binding have their visibility ORed; entries are sorted by binding.
//
// Parameters:
//   - vertexLayouts: bind group layout descriptors from the vertex shader
//   - fragmentLayouts: bind group layout descriptors from the fragment shader
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
func mergeBindGroupLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	byGroup := make(map[int]map[uint32]wgpu.BindGroupLayoutEntry)
	collect := func(layouts map[int]wgpu.BindGroupLayoutDescriptor) {
		for g, desc := range layouts {
			if byGroup[g] == nil {
				byGroup[g] = make(map[uint32]wgpu.BindGroupLayoutEntry)
			}
			for _, e := range desc.Entries {
				if existing, ok := byGroup[g][e.Binding]; ok {
					existing.Visibility |= e.Visibility
					e = existing
				}
				byGroup[g][e.Binding] = e
			}
		}
	}
	collect(vertexLayouts)
	collect(fragmentLayouts)

	merged := make(map[int]wgpu.BindGroupLayoutDescriptor, len(byGroup))
	for g, entryMap := range byGroup {
		entries := make([]wgpu.BindGroupLayoutEntry, 0, len(entryMap))
		for _, e := range entryMap {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		merged[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return merged
}

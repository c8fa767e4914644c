package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// modelSlotStride is the byte distance between per-draw model matrices in the uniform buffer.
	// Dynamic uniform offsets must be multiples of minUniformBufferOffsetAlignment, which is 256 by default.
	modelSlotStride = 256
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	shader    shader.Shader
	pipelines map[common.Primitive]pipeline.Pipeline
	// resources holds the vertex streams, the fan index buffer and the model uniform bind group.
	resources bind_group_provider.BindGroupProvider
	capacity  int

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	frameModels  []mgl32.Mat4
}

// WGPURendererBackend exposes the WebGPU handles behind the wgpu backend.
type WGPURendererBackend interface {
	RendererBackend

	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Instance() *wgpu.Instance
	Adapter() *wgpu.Adapter
	Surface() *wgpu.Surface

	// Pipeline returns the pipeline used for a primitive kind.
	//
	// Parameters:
	//   - primitive: the primitive kind
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline
	Pipeline(primitive common.Primitive) pipeline.Pipeline
}

var _ WGPURendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, capacity int) WGPURendererBackend {
	runtime.LockOSThread()
	s := shader.NewFlatColorShader()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		shader:      s,
		pipelines:   pipeline.NewPrimitivePipelines(s),
		resources:   bind_group_provider.NewBindGroupProvider("Marsh"),
		capacity:    capacity,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	limits := wgpu.DefaultLimits()
	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	if err := w.initResources(); err != nil {
		panic(fmt.Sprintf("failed to create GPU resources: %v", err))
	}
	return w
}

// initResources creates one vertex buffer per attribute stream, the shared fan index buffer and the
// dynamic-offset model uniform with its bind group.
func (b *wgpuRendererBackendImpl) initResources() error {
	for slot, kind := range common.AttributeKinds {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: b.resources.Label() + " " + kind.String() + " Buffer",
			Size:  uint64(b.capacity * kind.Components() * 4),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("%s buffer: %w", kind, err)
		}
		b.resources.SetVertexBuffer(slot, buf)
	}

	// Fan i expands to triangle (0, i, i+1); baseVertex shifts the range at draw time.
	indices := make([]uint32, 0, 3*(b.capacity-2))
	for i := 1; i < b.capacity-1; i++ {
		indices = append(indices, 0, uint32(i), uint32(i+1))
	}
	indexBuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.resources.Label() + " Fan Index Buffer",
		Size:  uint64(len(indices) * 4),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("fan index buffer: %w", err)
	}
	b.queue.WriteBuffer(indexBuf, 0, common.SliceToBytes(indices))
	b.resources.SetIndexBuffer(indexBuf, len(indices))

	descriptor := b.shader.BindGroupLayoutDescriptor()
	layout, err := b.device.CreateBindGroupLayout(&descriptor)
	if err != nil {
		return fmt.Errorf("model bind group layout: %w", err)
	}
	b.resources.SetBindGroupLayout(layout)

	uniform, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.resources.Label() + " Model Buffer",
		Size:  modelSlotStride * MaxDrawsPerFrame,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("model buffer: %w", err)
	}
	b.resources.SetBuffer(0, uniform)

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  b.resources.Label() + " Model Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  uniform,
			Offset:  0,
			Size:    shader.ModelUniformSize,
		}},
	})
	if err != nil {
		return fmt.Errorf("model bind group: %w", err)
	}
	b.resources.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	} else {
		b.msaaTextureView = nil
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				ResolveTarget: nil,               // set per-frame when MSAA is on
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
				ClearValue:    b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	// Pipelines depend on the surface format, so they are built on first configure.
	for _, p := range b.pipelines {
		if p.RenderPipeline() != nil {
			continue
		}
		if err := b.registerRenderPipeline(p); err != nil {
			panic(fmt.Sprintf("failed to create %s pipeline: %v", p.PipelineKey(), err))
		}
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = b.clearColor
	}
}

// registerRenderPipeline creates the GPU pipeline for p from the shared shader and model layout.
func (b *wgpuRendererBackendImpl) registerRenderPipeline(p pipeline.Pipeline) error {
	s := p.Shader()
	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.resources.BindGroupLayout()},
	})
	if err != nil {
		return err
	}

	target := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.EntryPoint(shader.ShaderTypeVertex),
			Buffers:    s.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.EntryPoint(shader.ShaderTypeFragment),
			Targets:    []wgpu.ColorTargetState{target},
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
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) UploadBuffer(kind common.AttributeKind, data []float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(data) > b.capacity*kind.Components() {
		return fmt.Errorf("%d floats exceed capacity of %d vertices", len(data), b.capacity)
	}
	buf := b.resources.VertexBuffer(int(kind))
	if buf == nil {
		return fmt.Errorf("no buffer for %s stream", kind)
	}
	b.queue.WriteBuffer(buf, 0, common.SliceToBytes(data))
	return nil
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Acquiring a second surface image before presenting the first fails validation.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
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
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	b.frameModels = b.frameModels[:0]

	return nil
}

func (b *wgpuRendererBackendImpl) Draw(model mgl32.Mat4, primitive common.Primitive, first, count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return fmt.Errorf("draw outside of a frame")
	}
	if first < 0 || first+count > b.capacity {
		return fmt.Errorf("vertex range [%d, %d) outside of capacity %d", first, first+count, b.capacity)
	}
	slot := len(b.frameModels)
	if slot >= MaxDrawsPerFrame {
		return fmt.Errorf("more than %d draws in one frame", MaxDrawsPerFrame)
	}
	b.frameModels = append(b.frameModels, model)

	p := b.pipelines[primitive]
	if p == nil || p.RenderPipeline() == nil {
		return fmt.Errorf("no pipeline for %s", primitive)
	}

	b.framePass.SetPipeline(p.RenderPipeline())
	b.framePass.SetBindGroup(0, b.resources.BindGroup(), []uint32{uint32(slot * modelSlotStride)})
	for i := 0; i < b.resources.VertexBufferCount(); i++ {
		b.framePass.SetVertexBuffer(uint32(i), b.resources.VertexBuffer(i), 0, wgpu.WholeSize)
	}

	if primitive == common.PrimitiveTriangleFan {
		if count < 3 {
			return nil
		}
		b.framePass.SetIndexBuffer(b.resources.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		b.framePass.DrawIndexed(uint32(3*(count-2)), 1, 0, int32(first), 0)
		return nil
	}
	b.framePass.Draw(uint32(count), 1, uint32(first), 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()

	// Queue writes land before the submitted pass executes, so every slot holds its draw's matrix.
	for _, w := range bind_group_provider.MatrixWrites(b.resources, 0, modelSlotStride, b.frameModels) {
		b.queue.WriteBuffer(w.Provider.Buffer(w.Binding), w.Offset, w.Data)
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		if rp := p.RenderPipeline(); rp != nil {
			rp.Release()
			p.SetRenderPipeline(nil)
		}
	}
	b.resources.Release()
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
}

func (b *wgpuRendererBackendImpl) Pipeline(primitive common.Primitive) pipeline.Pipeline {
	return b.pipelines[primitive]
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) Instance() *wgpu.Instance {
	return b.instance
}

func (b *wgpuRendererBackendImpl) Adapter() *wgpu.Adapter {
	return b.adapter
}

func (b *wgpuRendererBackendImpl) Surface() *wgpu.Surface {
	return b.surface
}

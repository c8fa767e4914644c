package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed. They are populated by the Renderer backend, not by user-creation.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the uniform buffers bound by the bind group, keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// vertexBuffers holds one GPU buffer per vertex buffer slot.
	vertexBuffers map[int]*wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	// indexCount is the number of indices held by the index buffer.
	indexCount int
}

// BindGroupProvider groups the GPU resources a backend binds for a draw: vertex streams by slot, an optional
// index buffer, and a bind group with its uniform buffers.
//
// Usage pattern:
//  1. Backend creates a provider with NewBindGroupProvider
//  2. Backend creates buffers and stores them with SetVertexBuffer, SetIndexBuffer and SetBuffer
//  3. Backend creates the bind group and stores it with SetBindGroup
//  4. Draws read the resources back; BufferWrite values target them for queue writes
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group, or nil if it has not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created from, or nil.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform buffer at a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the vertex buffer in a slot, or nil.
	//
	// Parameters:
	//   - slot: the vertex buffer slot
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer(slot int) *wgpu.Buffer

	// VertexBufferCount returns the number of vertex buffer slots in use.
	//
	// Returns:
	//   - int: the slot count
	VertexBufferCount() int

	// IndexBuffer returns the index buffer, or nil.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices held by the index buffer.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup sets the bind group after GPU initialization.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout after GPU initialization.
	//
	// Parameters:
	//   - bgl: the created bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores a uniform buffer at a binding, releasing any buffer it replaces.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetVertexBuffer stores the vertex buffer for a slot, releasing any buffer it replaces.
	//
	// Parameters:
	//   - slot: the vertex buffer slot
	//   - buf: the vertex buffer
	SetVertexBuffer(slot int, buf *wgpu.Buffer)

	// SetIndexBuffer stores the index buffer and its index count.
	//
	// Parameters:
	//   - buf: the index buffer
	//   - count: the number of indices it holds
	SetIndexBuffer(buf *wgpu.Buffer, count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider with the given debug label.
//
// Parameters:
//   - label: the debug label
//   - options: variadic list of BindGroupProviderOption functions
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:         label,
		buffers:       make(map[int]*wgpu.Buffer),
		vertexBuffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer(slot int) *wgpu.Buffer {
	return p.vertexBuffers[slot]
}

func (p *bindGroupProvider) VertexBufferCount() int {
	return len(p.vertexBuffers)
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if old, ok := p.buffers[binding]; ok && old != nil && old != buf {
		old.Release()
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(slot int, buf *wgpu.Buffer) {
	if old, ok := p.vertexBuffers[slot]; ok && old != nil && old != buf {
		old.Release()
	}
	p.vertexBuffers[slot] = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer, count int) {
	if p.indexBuffer != nil && p.indexBuffer != buf {
		p.indexBuffer.Release()
	}
	p.indexBuffer = buf
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for k, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, k)
	}
	for k, buf := range p.vertexBuffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.vertexBuffers, k)
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}

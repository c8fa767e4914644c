package pipeline

import (
	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the render pipeline created for one primitive kind and the state used to create it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// primitive is the vertex assembly this pipeline draws
	primitive common.Primitive

	shader shader.Shader

	// renderPipeline is nil until the backend creates it
	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the configuration of a render pipeline for one primitive kind.
// The rendering backend reads this state to create the GPU pipeline and stores the result back.
type Pipeline interface {
	// PipelineKey returns the unique key of the pipeline.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Primitive returns the primitive kind this pipeline draws.
	//
	// Returns:
	//   - common.Primitive: the primitive kind
	Primitive() common.Primitive

	// Topology returns the WebGPU topology for the primitive kind.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology used at pipeline creation
	Topology() wgpu.PrimitiveTopology

	// Shader returns the shader the pipeline is built from.
	//
	// Returns:
	//   - shader.Shader: the shader
	Shader() shader.Shader

	// RenderPipeline returns the created GPU pipeline, or nil before creation.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the created GPU pipeline.
	//
	// Parameters:
	//   - rp: the GPU pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// DepthTestEnabled returns whether fragments are depth tested.
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments write depth.
	DepthWriteEnabled() bool

	// BlendEnabled returns whether alpha blending is enabled.
	BlendEnabled() bool

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// FrontFace returns the winding treated as front facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state used when blending is enabled.
	BlendState() *wgpu.BlendState
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline for the given primitive kind.
// Culling defaults to off: mirrored instances flip their winding.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - primitive: the primitive kind drawn through it
//   - s: the shader to build it from
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, primitive common.Primitive, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		primitive:         primitive,
		shader:            s,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      true,
		cullMode:          wgpu.CullModeNone,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewPrimitivePipelines creates one pipeline per primitive kind, keyed by primitive.
//
// Parameters:
//   - s: the shader shared by every pipeline
//   - opts: options applied to every pipeline
//
// Returns:
//   - map[common.Primitive]Pipeline: the pipelines
func NewPrimitivePipelines(s shader.Shader, opts ...PipelineBuilderOption) map[common.Primitive]Pipeline {
	kinds := []common.Primitive{
		common.PrimitiveTriangleFan,
		common.PrimitiveTriangleStrip,
		common.PrimitiveLines,
		common.PrimitivePoints,
	}
	out := make(map[common.Primitive]Pipeline, len(kinds))
	for _, k := range kinds {
		out[k] = NewPipeline(s.Key()+"_"+k.String(), k, s, opts...)
	}
	return out
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Primitive() common.Primitive {
	return p.primitive
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.primitive.Topology()
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

package shader

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed flat_color.wgsl
var flatColorSource string

// ShaderType identifies the pipeline stage a shader entry point runs in.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage.
	ShaderTypeFragment
)

// ModelUniformSize is the byte size of the per-draw model matrix uniform.
const ModelUniformSize = 64

// shader is the implementation of the Shader interface.
type shader struct {
	key           string
	source        string
	entryPoints   map[ShaderType]string
	vertexLayouts []wgpu.VertexBufferLayout
}

// Shader describes a WGSL module and the vertex streams it consumes.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as its module label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// EntryPoint retrieves the entry point name for a stage.
	//
	// Parameters:
	//   - shaderType: the stage to look up
	//
	// Returns:
	//   - string: the entry point, or "" if the stage is absent
	EntryPoint(shaderType ShaderType) string

	// VertexLayouts retrieves one buffer layout per attribute stream, indexed by buffer slot.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module builds the shader module descriptor for device.CreateShaderModule.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor

	// BindGroupLayoutDescriptor describes group 0: the model matrix, bound with a dynamic offset.
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
	BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor
}

var _ Shader = &shader{}

// NewFlatColorShader returns the unlit shader used for every procedural shape: it transforms the
// homogeneous position by the model matrix and passes the vertex color through. One vertex buffer
// slot is used per attribute kind, in common.AttributeKinds order.
//
// Returns:
//   - Shader: the flat color shader
func NewFlatColorShader() Shader {
	s := &shader{
		key:    "flat_color",
		source: flatColorSource,
		entryPoints: map[ShaderType]string{
			ShaderTypeVertex:   "vs_main",
			ShaderTypeFragment: "fs_main",
		},
	}
	for i, kind := range common.AttributeKinds {
		format := wgpu.VertexFormatFloat32x4
		if kind.Components() == 1 {
			format = wgpu.VertexFormatFloat32
		}
		s.vertexLayouts = append(s.vertexLayouts, wgpu.VertexBufferLayout{
			ArrayStride: uint64(4 * kind.Components()),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{{
				Format:         format,
				Offset:         0,
				ShaderLocation: uint32(i),
			}},
		})
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint(shaderType ShaderType) string {
	return s.entryPoints[shaderType]
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
}

func (s *shader) BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: s.key + " Model Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: true,
				MinBindingSize:   ModelUniformSize,
			},
		}},
	}
}

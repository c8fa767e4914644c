package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatColorShader(t *testing.T) {
	s := NewFlatColorShader()

	assert.Equal(t, "flat_color", s.Key())
	assert.True(t, strings.Contains(s.Source(), "fn "+s.EntryPoint(ShaderTypeVertex)+"("))
	assert.True(t, strings.Contains(s.Source(), "fn "+s.EntryPoint(ShaderTypeFragment)+"("))

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 3)
	assert.Equal(t, uint64(16), layouts[0].ArrayStride)
	assert.Equal(t, uint64(16), layouts[1].ArrayStride)
	assert.Equal(t, uint64(4), layouts[2].ArrayStride)
	assert.Equal(t, wgpu.VertexFormatFloat32, layouts[2].Attributes[0].Format)
	for i, l := range layouts {
		assert.Equal(t, uint32(i), l.Attributes[0].ShaderLocation)
	}

	desc := s.BindGroupLayoutDescriptor()
	require.Len(t, desc.Entries, 1)
	assert.True(t, desc.Entries[0].Buffer.HasDynamicOffset)
	assert.Equal(t, uint64(ModelUniformSize), desc.Entries[0].Buffer.MinBindingSize)

	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)
}

package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitivePipelines(t *testing.T) {
	s := shader.NewFlatColorShader()
	ps := NewPrimitivePipelines(s, WithCullMode(wgpu.CullModeBack))
	require.Len(t, ps, 4)

	tests := []struct {
		primitive common.Primitive
		key       string
		topology  wgpu.PrimitiveTopology
	}{
		{common.PrimitiveTriangleFan, "flat_color_fan", wgpu.PrimitiveTopologyTriangleList},
		{common.PrimitiveTriangleStrip, "flat_color_strip", wgpu.PrimitiveTopologyTriangleStrip},
		{common.PrimitiveLines, "flat_color_lines", wgpu.PrimitiveTopologyLineList},
		{common.PrimitivePoints, "flat_color_points", wgpu.PrimitiveTopologyPointList},
	}
	for _, tt := range tests {
		p := ps[tt.primitive]
		require.NotNil(t, p)
		assert.Equal(t, tt.key, p.PipelineKey())
		assert.Equal(t, tt.topology, p.Topology())
		assert.Equal(t, wgpu.CullModeBack, p.CullMode())
		assert.Nil(t, p.RenderPipeline())
	}
}

func TestPipelineDefaults(t *testing.T) {
	p := NewPipeline("k", common.PrimitiveTriangleStrip, shader.NewFlatColorShader(),
		WithDepthWriteEnabled(false),
		WithBlendEnabled(false),
	)
	assert.True(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, NewPipeline("k", common.PrimitiveLines, nil).CullMode())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.NotNil(t, p.BlendState())
}

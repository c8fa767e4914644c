package renderer

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quad is a red fan covering the middle half of clip space.
func quad() (positions, colors []float32) {
	corners := [][2]float32{{0, 0}, {-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}}
	for _, c := range corners {
		positions = append(positions, c[0], c[1], 0, 1)
		colors = append(colors, 1, 0, 0, 1)
	}
	return positions, colors
}

func TestRecordingRenderer(t *testing.T) {
	r := NewRenderer(BackendTypeRecording, nil, WithSize(64, 32))
	rec, ok := r.Backend().(RecordingRendererBackend)
	require.True(t, ok)

	w, h := rec.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)

	positions, colors := quad()
	require.NoError(t, r.UploadBuffer(common.AttributePosition, positions))
	require.NoError(t, r.UploadBuffer(common.AttributeColor, colors))
	assert.Equal(t, 1, rec.Uploads(common.AttributePosition))
	assert.Equal(t, positions, rec.Stream(common.AttributePosition))

	assert.Error(t, r.Draw(common.PrimitiveTriangleFan, 0, 6), "draw before BeginFrame")

	require.NoError(t, r.BeginFrame())
	assert.Equal(t, 0, r.DrawCallCount())
	m := mgl32.Translate3D(1, 2, 3)
	r.SetModelMatrix(m)
	require.NoError(t, r.Draw(common.PrimitiveTriangleFan, 0, 6))
	r.SetModelMatrix(mgl32.Ident4())
	require.NoError(t, r.Draw(common.PrimitiveLines, 2, 2))
	r.EndFrame()
	r.Present()

	assert.Equal(t, 2, r.DrawCallCount())
	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, DrawCall{Primitive: common.PrimitiveTriangleFan, First: 0, Count: 6, Model: m}, calls[0])
	assert.Equal(t, common.PrimitiveLines, calls[1].Primitive)
	assert.Equal(t, mgl32.Ident4(), calls[1].Model)
	assert.Equal(t, 1, rec.Frames())
	assert.Equal(t, 1, rec.Presented())

	err := r.Snapshot(filepath.Join(t.TempDir(), "x.png"))
	assert.ErrorIs(t, err, ErrSnapshotUnsupported)

	r.Resize(0, 10)
	w, h = r.Size()
	assert.Equal(t, 64, w, "non-positive sizes are ignored")
	assert.Equal(t, 32, h)
}

func TestSoftwareRendererFillsFan(t *testing.T) {
	r := NewRenderer(BackendTypeSoftware, nil,
		WithSize(64, 64),
		WithStreamCapacity(16),
		WithClearColor(common.Color{0, 0, 1, 1}),
	)
	defer r.Release()

	positions, colors := quad()
	require.NoError(t, r.UploadBuffer(common.AttributePosition, positions))
	require.NoError(t, r.UploadBuffer(common.AttributeColor, colors))

	require.NoError(t, r.BeginFrame())
	require.NoError(t, r.Draw(common.PrimitiveTriangleFan, 0, 6))
	r.EndFrame()

	img := r.Backend().(SoftwareRendererBackend).Image()
	require.NotNil(t, img)

	centre := color.RGBAModel.Convert(img.At(32, 32)).(color.RGBA)
	assert.Greater(t, centre.R, uint8(200))
	assert.Less(t, centre.B, uint8(50))

	corner := color.RGBAModel.Convert(img.At(2, 2)).(color.RGBA)
	assert.Less(t, corner.R, uint8(50))
	assert.Greater(t, corner.B, uint8(200))

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, r.Snapshot(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSoftwareRendererRejectsBadInput(t *testing.T) {
	r := NewRenderer(BackendTypeSoftware, nil, WithSize(8, 8), WithStreamCapacity(4))
	defer r.Release()

	assert.Error(t, r.UploadBuffer(common.AttributePosition, make([]float32, 4*5)))
	assert.NoError(t, r.UploadBuffer(common.AttributePointSize, make([]float32, 4)))

	require.NoError(t, r.BeginFrame())
	assert.Error(t, r.Draw(common.PrimitiveTriangleStrip, 2, 3))
	assert.NoError(t, r.Draw(common.PrimitivePoints, 0, 4))
	assert.NoError(t, r.Draw(common.PrimitiveTriangleStrip, 0, 0), "empty ranges are skipped")
	r.EndFrame()
}

func TestTriangles(t *testing.T) {
	tests := []struct {
		name      string
		primitive common.Primitive
		first     int
		count     int
		want      [][3]int
	}{
		{"fan", common.PrimitiveTriangleFan, 10, 4, [][3]int{{10, 11, 12}, {10, 12, 13}}},
		{"strip", common.PrimitiveTriangleStrip, 2, 4, [][3]int{{2, 3, 4}, {3, 4, 5}}},
		{"too short", common.PrimitiveTriangleStrip, 0, 2, nil},
		{"lines", common.PrimitiveLines, 0, 6, [][3]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := triangles(tt.primitive, tt.first, tt.count)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBackendType(t *testing.T) {
	for _, bt := range []RendererBackendType{BackendTypeWGPU, BackendTypeSoftware, BackendTypeRecording} {
		got, ok := ParseBackendType(bt.String())
		assert.True(t, ok)
		assert.Equal(t, bt, got)
	}
	_, ok := ParseBackendType("vulkan")
	assert.False(t, ok)
}

func TestNewRendererNeedsSize(t *testing.T) {
	assert.Panics(t, func() { NewRenderer(BackendTypeRecording, nil) })
}

package vertex_buffer

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadRecorder struct {
	uploads map[common.AttributeKind][][]float32
	err     error
}

func newUploadRecorder() *uploadRecorder {
	return &uploadRecorder{uploads: make(map[common.AttributeKind][][]float32)}
}

func (u *uploadRecorder) UploadBuffer(kind common.AttributeKind, data []float32) error {
	u.uploads[kind] = append(u.uploads[kind], append([]float32(nil), data...))
	return u.err
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestAppendReturnsStartOffsets(t *testing.T) {
	up := newUploadRecorder()
	vb := NewVertexBuffer(up, WithCapacity(8))

	start, err := vb.Append(common.AttributePosition, []float32{1, 1, 1, 1, 2, 2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, vb.Cursor(common.AttributePosition))

	start, err = vb.Append(common.AttributePosition, []float32{3, 3, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, vb.Cursor(common.AttributePosition))

	start, err = vb.Append(common.AttributePointSize, []float32{5, 6})
	require.NoError(t, err)
	assert.Equal(t, 0, start, "each kind has its own cursor")

	require.Len(t, up.uploads[common.AttributePosition], 2, "every append re-uploads the full buffer")
	last := up.uploads[common.AttributePosition][1]
	assert.Len(t, last, 8*4)
	assert.Equal(t, []float32{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3}, last[:12])
}

func TestAppendWrapsWithWarning(t *testing.T) {
	logs := captureLog(t)
	vb := NewVertexBuffer(newUploadRecorder(), WithCapacity(4), WithLabel("Marsh"))

	_, err := vb.Append(common.AttributePointSize, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.Empty(t, logs.String())

	start, err := vb.Append(common.AttributePointSize, []float32{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 3, start)
	assert.Equal(t, 2, vb.Cursor(common.AttributePointSize))
	assert.Equal(t, []float32{5, 6, 3, 4}, vb.Data(common.AttributePointSize))
	assert.Contains(t, logs.String(), "[Marsh]")
	assert.Contains(t, logs.String(), "exceeds capacity")
	assert.Len(t, vb.Data(common.AttributePointSize), 4, "buffers never grow")
}

func TestAppendLargerThanCapacity(t *testing.T) {
	captureLog(t)
	vb := NewVertexBuffer(nil, WithCapacity(2))
	_, err := vb.Append(common.AttributePointSize, []float32{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 4}, vb.Data(common.AttributePointSize))
	assert.Equal(t, 1, vb.Cursor(common.AttributePointSize))
}

func TestAppendRejectsPartialVertices(t *testing.T) {
	vb := NewVertexBuffer(nil, WithCapacity(4))
	_, err := vb.Append(common.AttributeColor, []float32{1, 2, 3})
	assert.Error(t, err)
	assert.Equal(t, 0, vb.Cursor(common.AttributeColor))
}

func TestAppendPropagatesUploadError(t *testing.T) {
	up := newUploadRecorder()
	up.err = errors.New("device lost")
	vb := NewVertexBuffer(up, WithCapacity(4))
	_, err := vb.Append(common.AttributeColor, []float32{1, 2, 3, 4})
	assert.ErrorIs(t, err, up.err)
}

func TestWipe(t *testing.T) {
	up := newUploadRecorder()
	vb := NewVertexBuffer(up, WithCapacity(4))
	for _, kind := range common.AttributeKinds {
		_, err := vb.Append(kind, make([]float32, kind.Components()*3))
		require.NoError(t, err)
	}
	_, err := vb.Append(common.AttributePosition, []float32{9, 9, 9, 9})
	require.NoError(t, err)

	require.NoError(t, vb.Wipe())
	for _, kind := range common.AttributeKinds {
		assert.Equal(t, 0, vb.Cursor(kind))
		for _, v := range vb.Data(kind) {
			assert.Zero(t, v)
		}
		uploads := up.uploads[kind]
		require.NotEmpty(t, uploads)
		assert.Equal(t, make([]float32, 4*kind.Components()), uploads[len(uploads)-1])
	}
}

func TestDefaultCapacity(t *testing.T) {
	vb := NewVertexBuffer(nil)
	assert.Equal(t, DefaultCapacity, vb.Capacity())
	assert.Len(t, vb.Data(common.AttributePosition), DefaultCapacity*4)
	assert.Panics(t, func() { NewVertexBuffer(nil, WithCapacity(0)) })
}

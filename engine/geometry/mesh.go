// Package geometry holds the procedural shape generators. Every generator is a pure function:
// it allocates and returns its own vertex streams and never touches shared buffers.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-marsh/common"
)

// DefaultPointSize is written into the point-size stream of meshes that are not point clouds,
// keeping all three attribute streams the same length.
const DefaultPointSize float32 = 10

// MinDivisions is the smallest perimeter sample count that still encloses an area.
const MinDivisions = 4

var (
	// ErrTooFewDivisions is returned when a division parameter would produce degenerate geometry.
	ErrTooFewDivisions = errors.New("too few divisions")

	// ErrInvalidDimension is returned for non-positive radii, extents or counts.
	ErrInvalidDimension = errors.New("invalid dimension")
)

// Mesh is the output of a generator: parallel attribute streams in emission order.
// Positions holds 4 floats per vertex, Colors 4 floats, PointSizes 1 float.
type Mesh struct {
	Name       string
	Primitive  common.Primitive
	Positions  []float32
	Colors     []float32
	PointSizes []float32
}

// VertexCount returns the number of vertex records in the mesh.
func (m Mesh) VertexCount() int {
	return len(m.Positions) / 4
}

// Stream returns the attribute stream for the given kind.
func (m Mesh) Stream(kind common.AttributeKind) []float32 {
	switch kind {
	case common.AttributeColor:
		return m.Colors
	case common.AttributePointSize:
		return m.PointSizes
	default:
		return m.Positions
	}
}

// Vertex returns the (x, y, z, w) position of vertex i.
func (m Mesh) Vertex(i int) [4]float32 {
	return [4]float32{m.Positions[i*4], m.Positions[i*4+1], m.Positions[i*4+2], m.Positions[i*4+3]}
}

// VertexColor returns the color of vertex i.
func (m Mesh) VertexColor(i int) common.Color {
	return common.Color{m.Colors[i*4], m.Colors[i*4+1], m.Colors[i*4+2], m.Colors[i*4+3]}
}

// meshWriter accumulates vertices into a pre-sized mesh.
type meshWriter struct {
	mesh Mesh
}

func newMeshWriter(name string, primitive common.Primitive, vertices int) *meshWriter {
	return &meshWriter{mesh: Mesh{
		Name:       name,
		Primitive:  primitive,
		Positions:  make([]float32, 0, vertices*4),
		Colors:     make([]float32, 0, vertices*4),
		PointSizes: make([]float32, 0, vertices),
	}}
}

func (w *meshWriter) vertex(x, y, z float32, c common.Color) {
	w.sized(x, y, z, c, DefaultPointSize)
}

func (w *meshWriter) sized(x, y, z float32, c common.Color, size float32) {
	w.mesh.Positions = append(w.mesh.Positions, x, y, z, 1)
	w.mesh.Colors = append(w.mesh.Colors, c[0], c[1], c[2], c[3])
	w.mesh.PointSizes = append(w.mesh.PointSizes, size)
}

func (w *meshWriter) done() Mesh {
	return w.mesh
}

func checkDivisions(param string, n, minimum int) error {
	if n < minimum {
		return fmt.Errorf("%s %d (minimum %d): %w", param, n, minimum, ErrTooFewDivisions)
	}
	return nil
}

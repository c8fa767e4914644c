package geometry

import (
	"fmt"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-marsh/common"
)

// Grid generates a square ground grid in the z=0 plane as independent line segments.
// xCount lines run parallel to the y axis and yCount lines parallel to the x axis, both evenly
// spaced across [-extent, extent].
//
// Parameters:
//   - xCount: number of lines at constant x (at least 2)
//   - yCount: number of lines at constant y (at least 2)
//   - extent: half-width of the grid
//   - xColor: color of the constant-x lines
//   - yColor: color of the constant-y lines
//
// Returns:
//   - Mesh: a line list with 2*(xCount+yCount) vertices
//   - error: ErrTooFewDivisions or ErrInvalidDimension on bad parameters
func Grid(xCount, yCount int, extent float32, xColor, yColor common.Color) (Mesh, error) {
	if err := checkDivisions("grid xCount", xCount, 2); err != nil {
		return Mesh{}, err
	}
	if err := checkDivisions("grid yCount", yCount, 2); err != nil {
		return Mesh{}, err
	}
	if extent <= 0 {
		return Mesh{}, fmt.Errorf("grid extent %v: %w", extent, ErrInvalidDimension)
	}
	w := newMeshWriter("grid", common.PrimitiveLines, 2*(xCount+yCount))
	gap := 2 * extent / float32(xCount-1)
	for i := range xCount {
		x := -extent + gap*float32(i)
		w.vertex(x, -extent, 0, xColor)
		w.vertex(x, extent, 0, xColor)
	}
	gap = 2 * extent / float32(yCount-1)
	for i := range yCount {
		y := -extent + gap*float32(i)
		w.vertex(-extent, y, 0, yColor)
		w.vertex(extent, y, 0, yColor)
	}
	return w.done(), nil
}

// Points generates a seeded cloud of point sprites inside the cube [-extent, extent]^3.
// The same seed always yields the same cloud.
//
// Parameters:
//   - count: number of points (at least 1)
//   - extent: half-width of the cube
//   - seed: random seed
//   - color: point color
//   - minSize, maxSize: point size range in pixels
//
// Returns:
//   - Mesh: a point list with count vertices
//   - error: ErrInvalidDimension on bad parameters
func Points(count int, extent float32, seed uint64, color common.Color, minSize, maxSize float32) (Mesh, error) {
	if count < 1 || extent <= 0 || minSize <= 0 || maxSize < minSize {
		return Mesh{}, fmt.Errorf("points count %d extent %v size %v..%v: %w", count, extent, minSize, maxSize, ErrInvalidDimension)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	coord := func() float32 {
		return (rng.Float32()*2 - 1) * extent
	}
	w := newMeshWriter("points", common.PrimitivePoints, count)
	for range count {
		size := minSize + rng.Float32()*(maxSize-minSize)
		w.sized(coord(), coord(), coord(), color, size)
	}
	return w.done(), nil
}

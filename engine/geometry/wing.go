package geometry

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/chewxy/math32"
)

// Wing generates a flat insect wing in the z=0 plane as a triangle fan rooted at the origin.
// The wing extends along +x; the leading edge bulges toward +y and the broader trailing edge toward -y.
// After the root, the fan walks the leading edge out to the tip and the trailing edge back toward the root.
//
// Parameters:
//   - samples: edge samples (at least MinDivisions)
//   - length: root-to-tip length
//   - width: maximum trailing-edge chord
//   - color: wing color; the root is drawn at full opacity
//
// Returns:
//   - Mesh: a fan with 2*samples vertices
//   - error: ErrTooFewDivisions or ErrInvalidDimension on bad parameters
func Wing(samples int, length, width float32, color common.Color) (Mesh, error) {
	if err := checkDivisions("wing samples", samples, MinDivisions); err != nil {
		return Mesh{}, err
	}
	if length <= 0 || width <= 0 {
		return Mesh{}, fmt.Errorf("wing %vx%v: %w", length, width, ErrInvalidDimension)
	}
	root := color
	root[3] = 1
	w := newMeshWriter("wing", common.PrimitiveTriangleFan, 2*samples)
	w.vertex(0, 0, 0, root)
	for i := 1; i <= samples; i++ {
		t := float32(i) / float32(samples)
		w.vertex(length*t, 0.35*width*math32.Sin(math32.Pi*t), 0, root.Lerp(color, t))
	}
	for i := samples - 1; i >= 1; i-- {
		t := float32(i) / float32(samples)
		chord := width * math32.Sin(math32.Pi*t) * (0.6 + 0.4*t)
		w.vertex(length*t, -chord, 0, root.Lerp(color, t))
	}
	return w.done(), nil
}

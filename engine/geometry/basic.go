package geometry

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/chewxy/math32"
)

// Samples returns the perimeter sample count used by the cylinder family for a step count.
// Adjacent samples are pi/steps apart and the closing sample repeats azimuth 0.
//
// Parameters:
//   - steps: number of half-turn subdivisions
//
// Returns:
//   - int: 2*steps + 1
func Samples(steps int) int {
	return 2*steps + 1
}

// circle returns the (cos, sin) of sample i of n samples that span a closed circle,
// the last sample landing back on azimuth 0.
func circle(i, n int) (float32, float32) {
	if i == n-1 {
		return 1, 0
	}
	a := 2 * math32.Pi * float32(i) / float32(n-1)
	return math32.Cos(a), math32.Sin(a)
}

// Disc generates a unit disc in the z=0 plane as a triangle fan.
// The first vertex is the center; the remaining divisions vertices walk the rim from
// azimuth 0 back around to azimuth 0.
//
// Parameters:
//   - divisions: number of rim samples (at least MinDivisions)
//   - center: color of the center vertex
//   - rim: color of the rim vertices
//
// Returns:
//   - Mesh: a fan with 1 + divisions vertices
//   - error: ErrTooFewDivisions if divisions is below MinDivisions
func Disc(divisions int, center, rim common.Color) (Mesh, error) {
	if err := checkDivisions("disc divisions", divisions, MinDivisions); err != nil {
		return Mesh{}, err
	}
	w := newMeshWriter("disc", common.PrimitiveTriangleFan, 1+divisions)
	w.vertex(0, 0, 0, center)
	for i := range divisions {
		c, s := circle(i, divisions)
		w.vertex(c, s, 0, rim)
	}
	return w.done(), nil
}

// Tube generates an open tube from z=0 to z=1 as a triangle strip.
// Vertices alternate bottom ring, top ring at the same azimuth.
//
// Parameters:
//   - divisions: number of samples per ring (at least MinDivisions)
//   - bottomRadius: ring radius at z=0
//   - topRadius: ring radius at z=1
//   - bottom: color of the bottom ring
//   - top: color of the top ring
//
// Returns:
//   - Mesh: a strip with 2*divisions vertices
//   - error: ErrTooFewDivisions or ErrInvalidDimension on bad parameters
func Tube(divisions int, bottomRadius, topRadius float32, bottom, top common.Color) (Mesh, error) {
	if err := checkDivisions("tube divisions", divisions, MinDivisions); err != nil {
		return Mesh{}, err
	}
	if bottomRadius < 0 || topRadius < 0 || (bottomRadius == 0 && topRadius == 0) {
		return Mesh{}, fmt.Errorf("tube radii %v/%v: %w", bottomRadius, topRadius, ErrInvalidDimension)
	}
	w := newMeshWriter("tube", common.PrimitiveTriangleStrip, 2*divisions)
	for i := range divisions {
		c, s := circle(i, divisions)
		w.vertex(bottomRadius*c, bottomRadius*s, 0, bottom)
		w.vertex(topRadius*c, topRadius*s, 1, top)
	}
	return w.done(), nil
}

// Cone generates a unit cone with its tip at z=1 and its rim on z=0 as a triangle fan.
// The base is left open; pair it with a Disc to close it.
//
// Parameters:
//   - divisions: number of rim samples (at least MinDivisions)
//   - tip: color of the tip vertex
//   - rim: color of the rim vertices
//
// Returns:
//   - Mesh: a fan with 1 + divisions vertices
//   - error: ErrTooFewDivisions if divisions is below MinDivisions
func Cone(divisions int, tip, rim common.Color) (Mesh, error) {
	if err := checkDivisions("cone divisions", divisions, MinDivisions); err != nil {
		return Mesh{}, err
	}
	w := newMeshWriter("cone", common.PrimitiveTriangleFan, 1+divisions)
	w.vertex(0, 0, 1, tip)
	for i := range divisions {
		c, s := circle(i, divisions)
		w.vertex(c, s, 0, rim)
	}
	return w.done(), nil
}

// Cylinder generates the two-part cylinder used by the scene: a cap disc followed by an open wall tube,
// both sampled at Samples(steps) rim points. The cap is drawn once per end with a transform.
//
// Parameters:
//   - steps: half-turn subdivisions (at least 2)
//   - capColor: color of the cap disc
//   - bottom, top: wall ring colors
//
// Returns:
//   - []Mesh: the cap (2*steps+2 vertices) and the wall (4*steps+2 vertices), in that order
//   - error: ErrTooFewDivisions if steps is below 2
func Cylinder(steps int, capColor, bottom, top common.Color) ([]Mesh, error) {
	if err := checkDivisions("cylinder steps", steps, 2); err != nil {
		return nil, err
	}
	n := Samples(steps)
	capMesh, err := Disc(n, capColor, capColor)
	if err != nil {
		return nil, err
	}
	capMesh.Name = "cylinderCap"
	wall, err := Tube(n, 1, 1, bottom, top)
	if err != nil {
		return nil, err
	}
	wall.Name = "cylinderWall"
	return []Mesh{capMesh, wall}, nil
}

package geometry

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/chewxy/math32"
)

// CylinderColors configures SteppedCylinder.
type CylinderColors struct {
	Center common.Color
	Bottom common.Color
	Top    common.Color
	Seam   common.Color
}

// SphereColors configures Sphere. Colors blend from Top at the +z pole to Bottom at the -z pole.
type SphereColors struct {
	Top    common.Color
	Bottom common.Color
	Seam   common.Color
}

// TorusColors configures Torus. Colors blend from Inner on the hole side to Outer on the rim.
type TorusColors struct {
	Inner common.Color
	Outer common.Color
	Seam  common.Color
}

// SteppedCylinder generates a closed cylinder from z=0 to z=1 as a single stepped-spiral triangle strip:
// a bottom cap, the wall, then a top cap. Cap vertices alternate rim and center; wall vertices alternate
// the bottom ring and the top ring. Each top-ring vertex shares the azimuth of the bottom-ring vertex before
// it, so each triangle pair forms one upright tessellation quad split along its diagonal.
//
// The first wall vertex and the first top cap vertex sit on azimuth 0. Each is shared by three triangles
// and always takes colors.Seam.
//
// Parameters:
//   - capVerts: distinct rim positions per cap (at least MinDivisions)
//   - bottomRadius: radius of the z=0 ring; the z=1 ring has radius 1
//   - colors: vertex colors
//
// Returns:
//   - Mesh: a strip with (2*capVerts-1) + 2*capVerts + (2*capVerts-1) vertices
//   - error: ErrTooFewDivisions or ErrInvalidDimension on bad parameters
func SteppedCylinder(capVerts int, bottomRadius float32, colors CylinderColors) (Mesh, error) {
	if err := checkDivisions("cylinder capVerts", capVerts, MinDivisions); err != nil {
		return Mesh{}, err
	}
	if bottomRadius <= 0 {
		return Mesh{}, fmt.Errorf("cylinder bottomRadius %v: %w", bottomRadius, ErrInvalidDimension)
	}
	c := capVerts
	step := math32.Pi / float32(c)
	w := newMeshWriter("steppedCylinder", common.PrimitiveTriangleStrip, 6*c-2)

	for k := range 2*c - 1 {
		if k%2 == 1 {
			w.vertex(0, 0, 0, colors.Center)
			continue
		}
		a := step * float32(k)
		w.vertex(bottomRadius*math32.Cos(a), bottomRadius*math32.Sin(a), 0, colors.Bottom)
	}

	for v := range 2 * c {
		a := step * float32(v)
		col := colors.Bottom
		r, z := bottomRadius, float32(0)
		if v%2 == 1 {
			a = step * float32(v-1)
			col, r, z = colors.Top, 1, 1
		}
		if v == 0 {
			col = colors.Seam
		}
		w.vertex(r*math32.Cos(a), r*math32.Sin(a), z, col)
	}

	for k := range 2*c - 1 {
		if k%2 == 1 {
			w.vertex(0, 0, 1, colors.Center)
			continue
		}
		col := colors.Top
		if k == 0 {
			col = colors.Seam
		}
		a := step * float32(k)
		w.vertex(math32.Cos(a), math32.Sin(a), 1, col)
	}
	return w.done(), nil
}

// Sphere generates a unit sphere centered on the origin with poles on the z axis as one stepped-spiral
// triangle strip. Each slice spans one band of colatitude: even vertices lie on the upper ring, odd vertices
// on the lower ring at the azimuth of the even vertex before them. The first vertex of every slice but the
// first sits on azimuth 0 and takes colors.Seam. The first slice starts on its first odd vertex and the last slice drops its final vertex,
// so the poles are not repeated.
//
// Parameters:
//   - slices: number of colatitude bands (at least 2)
//   - sliceVerts: vertices per ring (at least MinDivisions)
//   - colors: vertex colors
//
// Returns:
//   - Mesh: a strip with 2*slices*sliceVerts - 2 vertices
//   - error: ErrTooFewDivisions on bad parameters
func Sphere(slices, sliceVerts int, colors SphereColors) (Mesh, error) {
	if err := checkDivisions("sphere slices", slices, 2); err != nil {
		return Mesh{}, err
	}
	if err := checkDivisions("sphere sliceVerts", sliceVerts, MinDivisions); err != nil {
		return Mesh{}, err
	}
	band := math32.Pi / float32(slices)
	step := math32.Pi / float32(sliceVerts)
	w := newMeshWriter("sphere", common.PrimitiveTriangleStrip, 2*slices*sliceVerts-2)

	for s := range slices {
		first, last := 0, 2*sliceVerts
		if s == 0 {
			first = 1
		}
		if s == slices-1 {
			last--
		}
		for v := first; v < last; v++ {
			colat, a := band*float32(s), step*float32(v)
			if v%2 == 1 {
				colat, a = band*float32(s+1), step*float32(v-1)
			}
			ring := math32.Sin(colat)
			z := math32.Cos(colat)
			col := colors.Top.Lerp(colors.Bottom, (1-z)/2)
			if v == 0 {
				col = colors.Seam
			}
			w.vertex(ring*math32.Cos(a), ring*math32.Sin(a), z, col)
		}
	}
	return w.done(), nil
}

// Torus generates a torus around the z axis as one stepped-spiral triangle strip.
// Each tube ring contributes 2*ringSides vertices alternating between the current ring and the next one;
// two closing vertices repeat the start of the first ring so the strip ends where it began.
//
// Parameters:
//   - ringSides: samples around the tube cross-section (at least MinDivisions)
//   - tubeRings: cross-sections around the bend (at least MinDivisions)
//   - bendRadius: distance from the z axis to the tube center
//   - tubeRadius: radius of the tube itself
//   - colors: vertex colors
//
// Returns:
//   - Mesh: a strip with 2*ringSides*tubeRings + 2 vertices
//   - error: ErrTooFewDivisions or ErrInvalidDimension on bad parameters
func Torus(ringSides, tubeRings int, bendRadius, tubeRadius float32, colors TorusColors) (Mesh, error) {
	if err := checkDivisions("torus ringSides", ringSides, MinDivisions); err != nil {
		return Mesh{}, err
	}
	if err := checkDivisions("torus tubeRings", tubeRings, MinDivisions); err != nil {
		return Mesh{}, err
	}
	if tubeRadius <= 0 || bendRadius <= 0 {
		return Mesh{}, fmt.Errorf("torus radii %v/%v: %w", bendRadius, tubeRadius, ErrInvalidDimension)
	}
	phiStep := math32.Pi / float32(ringSides)
	thetaStep := 2 * math32.Pi / float32(tubeRings)
	w := newMeshWriter("torus", common.PrimitiveTriangleStrip, 2*ringSides*tubeRings+2)

	point := func(ring, side int, col common.Color) {
		phi := phiStep * float32(side)
		theta := thetaStep * float32(ring)
		r := bendRadius + tubeRadius*math32.Cos(phi)
		w.vertex(r*math32.Cos(theta), r*math32.Sin(theta), -tubeRadius*math32.Sin(phi), col)
	}
	for s := range tubeRings {
		for v := range 2 * ringSides {
			side, ring := v, s
			if v%2 == 1 {
				side, ring = v-1, s+1
			}
			col := colors.Inner.Lerp(colors.Outer, (1+math32.Cos(phiStep*float32(side)))/2)
			if v == 0 {
				col = colors.Seam
			}
			point(ring, side, col)
		}
	}
	point(0, 0, colors.Seam)
	point(1, 0, colors.Outer)
	return w.done(), nil
}

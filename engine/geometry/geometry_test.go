package geometry

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func assertStreamsAligned(t *testing.T, m Mesh) {
	t.Helper()
	n := m.VertexCount()
	assert.Len(t, m.Positions, 4*n)
	assert.Len(t, m.Colors, 4*n)
	assert.Len(t, m.PointSizes, n)
	for i := range n {
		assert.Equal(t, float32(1), m.Vertex(i)[3], "w of vertex %d", i)
	}
}

func TestDiscAndTubeCounts(t *testing.T) {
	for n := MinDivisions; n <= 40; n++ {
		disc, err := Disc(n, common.ColorWhite, common.ColorStalkGreen)
		require.NoError(t, err)
		assert.Equal(t, 1+n, disc.VertexCount(), "disc %d", n)
		assert.Equal(t, common.PrimitiveTriangleFan, disc.Primitive)
		assertStreamsAligned(t, disc)

		tube, err := Tube(n, 1, 0.5, common.ColorStalkDark, common.ColorStalkGreen)
		require.NoError(t, err)
		assert.Equal(t, 2*n, tube.VertexCount(), "tube %d", n)
		assert.Equal(t, common.PrimitiveTriangleStrip, tube.Primitive)
		assertStreamsAligned(t, tube)
	}
}

func TestDiscSpansFullCircle(t *testing.T) {
	disc, err := Disc(9, common.ColorWhite, common.ColorWhite)
	require.NoError(t, err)

	assert.Equal(t, [4]float32{0, 0, 0, 1}, disc.Vertex(0))
	first, last := disc.Vertex(1), disc.Vertex(9)
	assert.Equal(t, first, last)
	assert.InDelta(t, 1, first[0], tol)

	// the quarter-turn sample lands on +y
	quarter := disc.Vertex(3)
	assert.InDelta(t, 0, quarter[0], tol)
	assert.InDelta(t, 1, quarter[1], tol)
}

func TestTooFewDivisions(t *testing.T) {
	_, err := Disc(3, common.ColorWhite, common.ColorWhite)
	assert.ErrorIs(t, err, ErrTooFewDivisions)
	_, err = Tube(2, 1, 1, common.ColorWhite, common.ColorWhite)
	assert.ErrorIs(t, err, ErrTooFewDivisions)
	_, err = Cone(0, common.ColorWhite, common.ColorWhite)
	assert.ErrorIs(t, err, ErrTooFewDivisions)
	_, err = Cylinder(1, common.ColorWhite, common.ColorWhite, common.ColorWhite)
	assert.ErrorIs(t, err, ErrTooFewDivisions)
	_, err = SteppedCylinder(3, 1, CylinderColors{})
	assert.ErrorIs(t, err, ErrTooFewDivisions)
	_, err = Sphere(1, 8, SphereColors{})
	assert.ErrorIs(t, err, ErrTooFewDivisions)
	_, err = Torus(8, 2, 1, 0.2, TorusColors{})
	assert.ErrorIs(t, err, ErrTooFewDivisions)
	_, err = Grid(1, 5, 10, common.ColorWhite, common.ColorWhite)
	assert.ErrorIs(t, err, ErrTooFewDivisions)
	_, err = Wing(3, 1, 1, common.ColorWhite)
	assert.ErrorIs(t, err, ErrTooFewDivisions)
}

func TestInvalidDimensions(t *testing.T) {
	_, err := Tube(8, 0, 0, common.ColorWhite, common.ColorWhite)
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = SteppedCylinder(8, -1, CylinderColors{})
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = Torus(8, 8, 1, 0, TorusColors{})
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = Points(0, 1, 1, common.ColorPollen, 1, 2)
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = Wing(8, 1, 0, common.ColorWingClear)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestConeCount(t *testing.T) {
	cone, err := Cone(12, common.ColorTipTan, common.ColorHeadBrown)
	require.NoError(t, err)
	assert.Equal(t, 13, cone.VertexCount())
	assert.Equal(t, float32(1), cone.Vertex(0)[2])
	for i := 1; i < cone.VertexCount(); i++ {
		assert.Equal(t, float32(0), cone.Vertex(i)[2])
	}
}

func TestCylinderStepsEightYieldsFiftyTwo(t *testing.T) {
	meshes, err := Cylinder(8, common.ColorStalkGreen, common.ColorStalkDark, common.ColorStalkGreen)
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	assert.Equal(t, 8*2+2, meshes[0].VertexCount())
	assert.Equal(t, 8*4+2, meshes[1].VertexCount())

	total := 0
	for _, m := range meshes {
		total += len(m.Positions) / 4
	}
	assert.Equal(t, 52, total)
}

func TestSteppedCylinderCounts(t *testing.T) {
	for c := MinDivisions; c <= 32; c++ {
		m, err := SteppedCylinder(c, 0.8, CylinderColors{
			Center: common.ColorWhite,
			Bottom: common.ColorStalkDark,
			Top:    common.ColorStalkGreen,
			Seam:   common.ColorSeam,
		})
		require.NoError(t, err)
		assert.Equal(t, (2*c-1)+2*c+(2*c-1), m.VertexCount(), "capVerts %d", c)
		assertStreamsAligned(t, m)

		// bottom cap alternates rim and center at z=0
		capLen := 2*c - 1
		for k := range capLen {
			v := m.Vertex(k)
			assert.Equal(t, float32(0), v[2])
			if k%2 == 1 {
				assert.Equal(t, float32(0), v[0])
				assert.Equal(t, float32(0), v[1])
			}
		}
		// wall alternates bottom and top rings
		for v := range 2 * c {
			want := float32(0)
			if v%2 == 1 {
				want = 1
			}
			assert.Equal(t, want, m.Vertex(capLen + v)[2])
		}
		// top cap sits on z=1
		for k := range capLen {
			assert.Equal(t, float32(1), m.Vertex(capLen + 2*c + k)[2])
		}
	}
}

func TestSteppedCylinderSeamColor(t *testing.T) {
	colors := CylinderColors{
		Center: common.ColorWhite,
		Bottom: common.ColorStalkDark,
		Top:    common.ColorStalkGreen,
		Seam:   common.ColorSeam,
	}
	m, err := SteppedCylinder(6, 1, colors)
	require.NoError(t, err)

	seam := 2*6 - 1
	assert.Equal(t, colors.Seam, m.VertexColor(seam))
	pos := m.Vertex(seam)
	assert.InDelta(t, 1, pos[0], tol)
	assert.InDelta(t, 0, pos[1], tol)
	assert.Equal(t, colors.Bottom, m.VertexColor(seam+2))
	assert.Equal(t, colors.Top, m.VertexColor(seam+1))

	// the top cap starts on azimuth 0 as well
	topSeam := seam + 2*6
	assert.Equal(t, colors.Seam, m.VertexColor(topSeam))
	assert.InDelta(t, 1, m.Vertex(topSeam)[0], tol)
	assert.Equal(t, colors.Top, m.VertexColor(topSeam+2))
}

// distinctPositions counts the positions among the given vertex indices that are more than tol apart.
func distinctPositions(m Mesh, indices []int) int {
	var seen [][4]float32
	for _, i := range indices {
		v := m.Vertex(i)
		dup := false
		for _, p := range seen {
			if math32.Abs(p[0]-v[0]) < tol && math32.Abs(p[1]-v[1]) < tol && math32.Abs(p[2]-v[2]) < tol {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, [4]float32{v[0], v[1], v[2], v[3]})
		}
	}
	return len(seen)
}

func azimuth(v [4]float32) float32 {
	return math32.Atan2(v[1], v[0])
}

func TestSteppedCylinderQuadsAreUpright(t *testing.T) {
	for _, c := range []int{4, 6, 9} {
		m, err := SteppedCylinder(c, 0.7, CylinderColors{})
		require.NoError(t, err)
		capLen := 2*c - 1
		wall := capLen
		top := capLen + 2*c

		// every top-ring vertex sits above the bottom-ring vertex before it
		for v := 1; v < 2*c; v += 2 {
			bottom, upper := m.Vertex(wall+v-1), m.Vertex(wall+v)
			assert.InDelta(t, bottom[0], 0.7*upper[0], tol, "capVerts %d wall vertex %d", c, v)
			assert.InDelta(t, bottom[1], 0.7*upper[1], tol, "capVerts %d wall vertex %d", c, v)
		}

		var bottomRim, wallRing, topRim []int
		for k := 0; k < capLen; k += 2 {
			bottomRim = append(bottomRim, k)
			topRim = append(topRim, top+k)
		}
		for v := 0; v < 2*c; v += 2 {
			wallRing = append(wallRing, wall+v)
		}
		assert.Equal(t, c, distinctPositions(m, bottomRim), "capVerts %d bottom rim", c)
		assert.Equal(t, c, distinctPositions(m, wallRing), "capVerts %d wall ring", c)
		assert.Equal(t, c, distinctPositions(m, topRim), "capVerts %d top rim", c)

		// the rim advances 2*pi/c per sample
		second := m.Vertex(2)
		assert.InDelta(t, 2*math32.Pi/float32(c), azimuth(second), tol)
	}
}

func TestSteppedCylinderFourIsSquare(t *testing.T) {
	m, err := SteppedCylinder(4, 1, CylinderColors{})
	require.NoError(t, err)
	want := [][2]float32{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for i, p := range want {
		v := m.Vertex(2 * i)
		assert.InDelta(t, p[0], v[0], tol, "rim %d", i)
		assert.InDelta(t, p[1], v[1], tol, "rim %d", i)
	}
}

func TestSphereCounts(t *testing.T) {
	for slices := 2; slices <= 16; slices++ {
		for verts := MinDivisions; verts <= 20; verts += 4 {
			m, err := Sphere(slices, verts, SphereColors{Top: common.ColorWhite, Bottom: common.ColorEyeRed, Seam: common.ColorSeam})
			require.NoError(t, err)
			assert.Equal(t, 2*slices*verts-2, m.VertexCount(), "sphere %dx%d", slices, verts)
			assertStreamsAligned(t, m)
		}
	}
}

func TestSphereStaysOnUnitSurface(t *testing.T) {
	m, err := Sphere(7, 12, SphereColors{})
	require.NoError(t, err)
	for i := range m.VertexCount() {
		v := m.Vertex(i)
		assert.InDelta(t, 1, v[0]*v[0]+v[1]*v[1]+v[2]*v[2], 1e-4)
	}
	// the first slice skips its leading vertex, so the north pole is the second record
	assert.InDelta(t, 1, m.Vertex(1)[2], tol)
	assert.InDelta(t, -1, m.Vertex(m.VertexCount() - 2)[2], tol)
}

func TestSphereSeamColor(t *testing.T) {
	const slices, verts = 5, 9
	colors := SphereColors{Top: common.ColorWhite, Bottom: common.ColorEyeRed, Seam: common.ColorSeam}
	m, err := Sphere(slices, verts, colors)
	require.NoError(t, err)

	seams := 0
	for i := range m.VertexCount() {
		if m.VertexColor(i) == colors.Seam {
			seams++
		}
	}
	assert.Equal(t, slices-1, seams)

	for s := 1; s < slices; s++ {
		start := (2*verts - 1) + (s-1)*2*verts
		v := m.Vertex(start)
		assert.Equal(t, colors.Seam, m.VertexColor(start), "slice %d", s)
		assert.Greater(t, v[0], float32(0), "slice %d", s)
		assert.InDelta(t, 0, v[1], tol, "slice %d", s)

		if s == slices-1 {
			continue
		}
		// the lower ring vertex shares the azimuth of the upper ring vertex before it
		for k := 1; k < 2*verts; k += 2 {
			assert.InDelta(t, azimuth(m.Vertex(start+k-1)), azimuth(m.Vertex(start+k)), tol, "slice %d vertex %d", s, k)
		}
	}
}

func TestTorusSeamColor(t *testing.T) {
	const sides, rings = 7, 9
	colors := TorusColors{Inner: common.ColorBodyBlue, Outer: common.ColorBodyTeal, Seam: common.ColorSeam}
	m, err := Torus(sides, rings, 1, 0.25, colors)
	require.NoError(t, err)

	seams := 0
	for i := range m.VertexCount() {
		if m.VertexColor(i) == colors.Seam {
			seams++
		}
	}
	assert.Equal(t, rings+1, seams)

	for s := range rings {
		start := s * 2 * sides
		assert.Equal(t, colors.Seam, m.VertexColor(start), "ring %d", s)
		assert.NotEqual(t, colors.Seam, m.VertexColor(start+1), "ring %d", s)
	}
	assert.Equal(t, colors.Seam, m.VertexColor(m.VertexCount()-2))
}

func TestTorusCounts(t *testing.T) {
	m, err := Torus(13, 23, 1, 0.5, TorusColors{Inner: common.ColorBodyBlue, Outer: common.ColorBodyTeal, Seam: common.ColorSeam})
	require.NoError(t, err)
	assert.Equal(t, 2*13*23+2, m.VertexCount())
	assertStreamsAligned(t, m)

	first := m.Vertex(0)
	closing := m.Vertex(m.VertexCount() - 2)
	for i := range 3 {
		assert.InDelta(t, first[i], closing[i], tol)
	}
	assert.InDelta(t, 1.5, first[0], tol)
}

func TestGridCounts(t *testing.T) {
	m, err := Grid(100, 60, 50, common.ColorGridX, common.ColorGridY)
	require.NoError(t, err)
	assert.Equal(t, 2*(100+60), m.VertexCount())
	assert.Equal(t, common.PrimitiveLines, m.Primitive)

	assert.Equal(t, [4]float32{-50, -50, 0, 1}, m.Vertex(0))
	assert.Equal(t, [4]float32{-50, 50, 0, 1}, m.Vertex(1))
	assert.InDelta(t, 50, m.Vertex(2 * 99)[0], tol)
	assert.Equal(t, common.ColorGridY, m.VertexColor(2*100))
}

func TestWingCount(t *testing.T) {
	m, err := Wing(10, 0.6, 0.15, common.ColorWingClear)
	require.NoError(t, err)
	assert.Equal(t, 20, m.VertexCount())
	assert.Equal(t, [4]float32{0, 0, 0, 1}, m.Vertex(0))
	tip := m.Vertex(10)
	assert.InDelta(t, 0.6, tip[0], tol)
	assert.InDelta(t, 0, tip[1], tol)
}

func TestPointsAreSeeded(t *testing.T) {
	a, err := Points(64, 2, 42, common.ColorPollen, 2, 6)
	require.NoError(t, err)
	b, err := Points(64, 2, 42, common.ColorPollen, 2, 6)
	require.NoError(t, err)
	c, err := Points(64, 2, 43, common.ColorPollen, 2, 6)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Positions, c.Positions)
	assert.Equal(t, 64, a.VertexCount())
	for _, s := range a.PointSizes {
		assert.GreaterOrEqual(t, s, float32(2))
		assert.LessOrEqual(t, s, float32(6))
	}
}

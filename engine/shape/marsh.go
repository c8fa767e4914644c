package shape

import (
	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/geometry"
)

// Names of the shapes in the marsh catalog.
const (
	Stalk       = "stalk"
	HeadTube    = "headTube"
	HeadCap     = "headCap"
	HeadDisc    = "headDisc"
	Tip         = "tip"
	Base        = "base"
	BaseCap     = Base + "_cylinderCap"
	BaseWall    = Base + "_cylinderWall"
	Thorax      = "thorax"
	DragonHead  = "dragonHead"
	DragonDisc  = "dragonDisc"
	Eye         = "eye"
	EyeDisc     = "eyeDisc"
	TailSegment = "tail"
	WingBlade   = "wing"
	GroundGrid  = "grid"
	Marker      = "marker"
	MarkerRing  = "markerRing"
	PollenCloud = "pollen"
)

const (
	stalkDivs    = 10
	discDivs     = 16
	pollenPoints = 96
)

// MarshDefinitions returns the catalog of shapes the marsh scene draws, in layout order.
//
// Parameters:
//   - pollenSeed: seed for the pollen point cloud
//
// Returns:
//   - []Definition: the definitions
func MarshDefinitions(pollenSeed uint64) []Definition {
	headColors := geometry.CylinderColors{
		Center: common.ColorHeadDark,
		Bottom: common.ColorHeadBrown,
		Top:    common.ColorHeadBrown,
		Seam:   common.ColorHeadDark,
	}
	headSphere := geometry.SphereColors{
		Top:    common.ColorHeadBrown,
		Bottom: common.ColorHeadDark,
		Seam:   common.ColorHeadDark,
	}
	thorax := geometry.CylinderColors{
		Center: common.ColorBodyTeal,
		Bottom: common.ColorBodyBlue,
		Top:    common.ColorBodyTeal,
		Seam:   common.ColorBodyBlue,
	}
	bodySphere := geometry.SphereColors{
		Top:    common.ColorBodyTeal,
		Bottom: common.ColorBodyBlue,
		Seam:   common.ColorBodyBlue,
	}
	eyeSphere := geometry.SphereColors{
		Top:    common.ColorEyeRed,
		Bottom: common.ColorEyeRed.Lerp(common.ColorHeadDark, 0.5),
		Seam:   common.ColorEyeRed,
	}
	ring := geometry.TorusColors{
		Inner: common.ColorMarker,
		Outer: common.ColorMarker.Lerp(common.ColorWhite, 0.5),
		Seam:  common.ColorSeam,
	}

	return []Definition{
		Single(Stalk, func() (geometry.Mesh, error) {
			return geometry.Tube(stalkDivs, 1, 1, common.ColorStalkDark, common.ColorStalkGreen)
		}),
		Single(HeadTube, func() (geometry.Mesh, error) {
			return geometry.SteppedCylinder(12, 1, headColors)
		}),
		Single(HeadCap, func() (geometry.Mesh, error) {
			return geometry.Sphere(6, 12, headSphere)
		}),
		Single(HeadDisc, func() (geometry.Mesh, error) {
			return geometry.Disc(discDivs, common.ColorHeadBrown, common.ColorHeadDark)
		}),
		Single(Tip, func() (geometry.Mesh, error) {
			return geometry.Cone(stalkDivs, common.ColorTipTan, common.ColorHeadBrown)
		}),
		{
			Name: Base,
			Generate: func() ([]geometry.Mesh, error) {
				return geometry.Cylinder(8, common.ColorStalkDark, common.ColorStalkDark, common.ColorStalkGreen)
			},
		},
		Single(Thorax, func() (geometry.Mesh, error) {
			return geometry.SteppedCylinder(10, 0.6, thorax)
		}),
		Single(DragonHead, func() (geometry.Mesh, error) {
			return geometry.Sphere(5, 10, bodySphere)
		}),
		Single(DragonDisc, func() (geometry.Mesh, error) {
			return geometry.Disc(discDivs, common.ColorBodyTeal, common.ColorBodyBlue)
		}),
		Single(Eye, func() (geometry.Mesh, error) {
			return geometry.Sphere(4, 8, eyeSphere)
		}),
		Single(EyeDisc, func() (geometry.Mesh, error) {
			return geometry.Disc(discDivs/2, common.ColorEyeRed, eyeSphere.Bottom)
		}),
		Single(TailSegment, func() (geometry.Mesh, error) {
			return geometry.Tube(stalkDivs, 1, 0.8, common.ColorBodyBlue, common.ColorBodyTeal)
		}),
		Single(WingBlade, func() (geometry.Mesh, error) {
			return geometry.Wing(12, 1, 1, common.ColorWingClear)
		}),
		Single(GroundGrid, func() (geometry.Mesh, error) {
			return geometry.Grid(11, 11, 1, common.ColorGridX, common.ColorGridY)
		}),
		Single(Marker, func() (geometry.Mesh, error) {
			return geometry.Disc(discDivs, common.ColorWhite, common.ColorMarker)
		}),
		Single(MarkerRing, func() (geometry.Mesh, error) {
			return geometry.Torus(6, 16, 1, 0.2, ring)
		}),
		Single(PollenCloud, func() (geometry.Mesh, error) {
			return geometry.Points(pollenPoints, 1, pollenSeed, common.ColorPollen, 2, 6)
		}),
	}
}

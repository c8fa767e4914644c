// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Primitive identifies how a range of vertices is assembled by the rendering backend.
type Primitive int

const (
	// PrimitiveTriangleFan assembles triangles sharing the first vertex of the range.
	PrimitiveTriangleFan Primitive = iota

	// PrimitiveTriangleStrip assembles triangles from every consecutive vertex triple.
	PrimitiveTriangleStrip

	// PrimitiveLines assembles independent line segments from vertex pairs.
	PrimitiveLines

	// PrimitivePoints draws every vertex as a point sprite.
	PrimitivePoints
)

// String returns the lowercase name of the primitive, used in logs and config files.
func (p Primitive) String() string {
	switch p {
	case PrimitiveTriangleFan:
		return "fan"
	case PrimitiveTriangleStrip:
		return "strip"
	case PrimitiveLines:
		return "lines"
	case PrimitivePoints:
		return "points"
	default:
		return fmt.Sprintf("primitive(%d)", int(p))
	}
}

// Topology maps the primitive onto the WebGPU topology used to draw it.
// Triangle fans have no native topology and are expanded into an indexed triangle list.
//
// Returns:
//   - wgpu.PrimitiveTopology: the topology for a pipeline drawing this primitive
func (p Primitive) Topology() wgpu.PrimitiveTopology {
	switch p {
	case PrimitiveTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	case PrimitiveLines:
		return wgpu.PrimitiveTopologyLineList
	case PrimitivePoints:
		return wgpu.PrimitiveTopologyPointList
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}

// AttributeKind identifies one of the per-vertex attribute streams held by the vertex buffer.
type AttributeKind int

const (
	// AttributePosition is the homogeneous (x, y, z, w) position stream.
	AttributePosition AttributeKind = iota

	// AttributeColor is the (r, g, b, a) color stream.
	AttributeColor

	// AttributePointSize is the single-float point size stream.
	AttributePointSize
)

// AttributeKinds lists every attribute kind in upload order.
var AttributeKinds = []AttributeKind{AttributePosition, AttributeColor, AttributePointSize}

// Components returns the number of floats one vertex occupies in the stream.
func (k AttributeKind) Components() int {
	switch k {
	case AttributePointSize:
		return 1
	default:
		return 4
	}
}

func (k AttributeKind) String() string {
	switch k {
	case AttributePosition:
		return "position"
	case AttributeColor:
		return "color"
	case AttributePointSize:
		return "pointSize"
	default:
		return fmt.Sprintf("attribute(%d)", int(k))
	}
}

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color [4]float32

// RGB builds an opaque Color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// Lerp linearly interpolates between two colors. t is not clamped.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		c[0] + (o[0]-c[0])*t,
		c[1] + (o[1]-c[1])*t,
		c[2] + (o[2]-c[2])*t,
		c[3] + (o[3]-c[3])*t,
	}
}

// Palette colors shared by the procedural shapes.
var (
	ColorWhite      = RGB(1, 1, 1)
	ColorStalkGreen = RGB(0.25, 0.55, 0.2)
	ColorStalkDark  = RGB(0.15, 0.35, 0.1)
	ColorHeadBrown  = RGB(0.45, 0.25, 0.1)
	ColorHeadDark   = RGB(0.3, 0.15, 0.05)
	ColorTipTan     = RGB(0.8, 0.7, 0.45)
	ColorBodyBlue   = RGB(0.1, 0.45, 0.75)
	ColorBodyTeal   = RGB(0.05, 0.65, 0.6)
	ColorEyeRed     = RGB(0.7, 0.1, 0.1)
	ColorWingClear  = Color{0.85, 0.9, 1, 0.45}
	ColorGridX      = RGB(1, 0.6, 0.2)
	ColorGridY      = RGB(0.2, 0.6, 1)
	ColorPollen     = RGB(1, 0.9, 0.3)
	ColorMarker     = RGB(1, 0.2, 0.8)
	// ColorSeam marks the azimuth-zero vertex shared by three strip triangles.
	ColorSeam = RGB(1, 0, 1)
)

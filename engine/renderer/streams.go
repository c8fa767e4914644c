package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-marsh/common"
)

// defaultStreamCapacity matches the default vertex buffer capacity.
const defaultStreamCapacity = 8192

// attributeStreams is a CPU copy of the uploaded attribute streams, used by the offscreen backends.
type attributeStreams struct {
	capacity int
	data     map[common.AttributeKind][]float32
	uploads  map[common.AttributeKind]int
}

func newAttributeStreams(capacity int) *attributeStreams {
	s := &attributeStreams{
		capacity: capacity,
		data:     make(map[common.AttributeKind][]float32, len(common.AttributeKinds)),
		uploads:  make(map[common.AttributeKind]int, len(common.AttributeKinds)),
	}
	for _, kind := range common.AttributeKinds {
		s.data[kind] = make([]float32, capacity*kind.Components())
	}
	return s
}

func (s *attributeStreams) upload(kind common.AttributeKind, data []float32) error {
	dst, ok := s.data[kind]
	if !ok {
		return fmt.Errorf("unknown stream %s", kind)
	}
	if len(data) > len(dst) {
		return fmt.Errorf("%d floats exceed capacity of %d vertices", len(data), s.capacity)
	}
	n := copy(dst, data)
	clear(dst[n:])
	s.uploads[kind]++
	return nil
}

func (s *attributeStreams) checkRange(first, count int) error {
	if first < 0 || count < 0 || first+count > s.capacity {
		return fmt.Errorf("vertex range [%d, %d) outside of capacity %d", first, first+count, s.capacity)
	}
	return nil
}

func (s *attributeStreams) position(i int) [4]float32 {
	p := s.data[common.AttributePosition]
	return [4]float32{p[4*i], p[4*i+1], p[4*i+2], p[4*i+3]}
}

func (s *attributeStreams) color(i int) common.Color {
	c := s.data[common.AttributeColor]
	return common.Color{c[4*i], c[4*i+1], c[4*i+2], c[4*i+3]}
}

func (s *attributeStreams) pointSize(i int) float32 {
	return s.data[common.AttributePointSize][i]
}

// triangles lists the vertex index triples a range assembles into. Lines and points yield none.
func triangles(primitive common.Primitive, first, count int) [][3]int {
	if count < 3 {
		return nil
	}
	out := make([][3]int, 0, count-2)
	switch primitive {
	case common.PrimitiveTriangleFan:
		for i := 1; i < count-1; i++ {
			out = append(out, [3]int{first, first + i, first + i + 1})
		}
	case common.PrimitiveTriangleStrip:
		for i := 0; i < count-2; i++ {
			out = append(out, [3]int{first + i, first + i + 1, first + i + 2})
		}
	}
	return out
}

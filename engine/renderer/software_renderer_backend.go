package renderer

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
)

type softwareRendererBackendImpl struct {
	mu *sync.Mutex

	ctx     *gg.Context
	width   int
	height  int
	clear   common.Color
	streams *attributeStreams
	inFrame bool
}

// SoftwareRendererBackend rasterizes on the CPU into an image.
// There is no depth buffer: primitives are painted in the order they are drawn.
type SoftwareRendererBackend interface {
	RendererBackend

	// Image returns the current contents of the render target.
	//
	// Returns:
	//   - image.Image: the rendered image
	Image() image.Image

	// SavePNG writes the render target to a PNG file.
	//
	// Parameters:
	//   - path: the output file path
	//
	// Returns:
	//   - error: an error if the file could not be written
	SavePNG(path string) error
}

var _ SoftwareRendererBackend = &softwareRendererBackendImpl{}

func newSoftwareRendererBackend(capacity int) SoftwareRendererBackend {
	return &softwareRendererBackendImpl{
		mu:      &sync.Mutex{},
		clear:   common.Color{0.1, 0.1, 0.1, 1},
		streams: newAttributeStreams(capacity),
	}
}

func (b *softwareRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		_ = b.ctx.Close()
	}
	b.ctx = gg.NewContext(width, height)
	b.width, b.height = width, height
}

func (b *softwareRendererBackendImpl) SetPresentMode(PresentMode) {}

func (b *softwareRendererBackendImpl) SetClearColor(c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clear = c
}

func (b *softwareRendererBackendImpl) UploadBuffer(kind common.AttributeKind, data []float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.streams.upload(kind, data)
}

func (b *softwareRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx == nil {
		return errors.New("surface not configured")
	}
	b.ctx.ClearWithColor(gg.RGBA2(float64(b.clear[0]), float64(b.clear[1]), float64(b.clear[2]), float64(b.clear[3])))
	b.inFrame = true
	return nil
}

// project maps vertex i through model to pixel coordinates. ok is false behind the eye.
func (b *softwareRendererBackendImpl) project(model mgl32.Mat4, i int) (x, y float64, ok bool) {
	p := b.streams.position(i)
	v := model.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], p[3]})
	if v.W() <= 0 {
		return 0, 0, false
	}
	nx, ny := v.X()/v.W(), v.Y()/v.W()
	x = float64(nx+1) * 0.5 * float64(b.width)
	y = float64(1-ny) * 0.5 * float64(b.height)
	return x, y, true
}

func (b *softwareRendererBackendImpl) setColor(c common.Color) {
	b.ctx.SetRGBA(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
}

func (b *softwareRendererBackendImpl) Draw(model mgl32.Mat4, primitive common.Primitive, first, count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inFrame {
		return errors.New("draw outside of a frame")
	}
	if err := b.streams.checkRange(first, count); err != nil {
		return err
	}

	switch primitive {
	case common.PrimitiveTriangleFan, common.PrimitiveTriangleStrip:
		for _, tri := range triangles(primitive, first, count) {
			if err := b.fillTriangle(model, tri); err != nil {
				return err
			}
		}
	case common.PrimitiveLines:
		b.ctx.SetLineWidth(1)
		for i := first; i+1 < first+count; i += 2 {
			x1, y1, ok1 := b.project(model, i)
			x2, y2, ok2 := b.project(model, i+1)
			if !ok1 || !ok2 {
				continue
			}
			b.setColor(b.streams.color(i).Lerp(b.streams.color(i+1), 0.5))
			b.ctx.DrawLine(x1, y1, x2, y2)
			if err := b.ctx.Stroke(); err != nil {
				return fmt.Errorf("stroke line: %w", err)
			}
		}
	case common.PrimitivePoints:
		for i := first; i < first+count; i++ {
			x, y, ok := b.project(model, i)
			if !ok {
				continue
			}
			b.setColor(b.streams.color(i))
			b.ctx.DrawPoint(x, y, float64(b.streams.pointSize(i))/2)
			if err := b.ctx.Fill(); err != nil {
				return fmt.Errorf("fill point: %w", err)
			}
		}
	default:
		return fmt.Errorf("unsupported primitive %s", primitive)
	}
	return nil
}

// fillTriangle paints one triangle in the mean of its vertex colors.
func (b *softwareRendererBackendImpl) fillTriangle(model mgl32.Mat4, tri [3]int) error {
	var xs, ys [3]float64
	var c common.Color
	for k, i := range tri {
		x, y, ok := b.project(model, i)
		if !ok {
			return nil
		}
		xs[k], ys[k] = x, y
		vc := b.streams.color(i)
		for j := range c {
			c[j] += vc[j] / 3
		}
	}
	// Degenerate seam triangles cover no pixels.
	if (xs[1]-xs[0])*(ys[2]-ys[0])-(xs[2]-xs[0])*(ys[1]-ys[0]) == 0 {
		return nil
	}
	b.setColor(c)
	b.ctx.MoveTo(xs[0], ys[0])
	b.ctx.LineTo(xs[1], ys[1])
	b.ctx.LineTo(xs[2], ys[2])
	b.ctx.ClosePath()
	if err := b.ctx.Fill(); err != nil {
		return fmt.Errorf("fill triangle: %w", err)
	}
	return nil
}

func (b *softwareRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFrame = false
}

func (b *softwareRendererBackendImpl) Present() {}

func (b *softwareRendererBackendImpl) Image() image.Image {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Image()
}

func (b *softwareRendererBackendImpl) SavePNG(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx == nil {
		return errors.New("surface not configured")
	}
	if err := b.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (b *softwareRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx != nil {
		_ = b.ctx.Close()
		b.ctx = nil
	}
}

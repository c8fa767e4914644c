// Package shape turns generated meshes into named vertex ranges inside a shared vertex buffer.
// Meshes are generated concurrently at startup and appended in declaration order, so every range is the same
// from run to run.
package shape

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/geometry"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer/vertex_buffer"
)

// ErrUnknownShape is returned when a shape name is not in the registry.
var ErrUnknownShape = errors.New("unknown shape")

// Shape is a named vertex range and the primitive it is drawn with.
type Shape struct {
	Name      string
	Start     int
	Count     int
	Primitive common.Primitive
}

// Definition names a generator. A generator returning several meshes registers one shape per mesh,
// named Name + "_" + the mesh name.
type Definition struct {
	Name     string
	Generate func() ([]geometry.Mesh, error)
}

// Single adapts a single-mesh generator result to a Definition.
func Single(name string, generate func() (geometry.Mesh, error)) Definition {
	return Definition{
		Name: name,
		Generate: func() ([]geometry.Mesh, error) {
			m, err := generate()
			if err != nil {
				return nil, err
			}
			return []geometry.Mesh{m}, nil
		},
	}
}

// Drawer issues ranged draws.
type Drawer interface {
	Draw(primitive common.Primitive, first, count int) error
}

// registry is the implementation of the Registry interface.
type registry struct {
	mu      *sync.RWMutex
	defs    []Definition
	workers int
	shapes  []Shape
	byName  map[string]int
}

// Registry maps shape names to their vertex ranges.
type Registry interface {
	// Shape looks up a shape by name.
	//
	// Parameters:
	//   - name: the shape name
	//
	// Returns:
	//   - Shape: the shape
	//   - error: ErrUnknownShape if the name is not registered
	Shape(name string) (Shape, error)

	// Shapes returns every shape in the order it was appended.
	//
	// Returns:
	//   - []Shape: the shapes
	Shapes() []Shape

	// Len returns the number of registered shapes.
	Len() int

	// VertexCount returns the total number of vertices across all shapes.
	VertexCount() int

	// Draw draws a shape by name.
	//
	// Parameters:
	//   - d: the target of the draw
	//   - name: the shape name
	//
	// Returns:
	//   - error: ErrUnknownShape, or the error returned by d
	Draw(d Drawer, name string) error
}

var _ Registry = &registry{}

// NewRegistry generates every definition on a worker pool, then appends the meshes to vb in declaration order.
//
// Parameters:
//   - vb: the vertex buffer the meshes are appended to
//   - options: variadic list of RegistryBuilderOption functions
//
// Returns:
//   - Registry: the built registry
//   - error: the first generator or append error
func NewRegistry(vb vertex_buffer.VertexBuffer, options ...RegistryBuilderOption) (Registry, error) {
	r := &registry{
		mu:      &sync.RWMutex{},
		workers: max(runtime.NumCPU()-1, 1),
		byName:  make(map[string]int),
	}
	for _, opt := range options {
		opt(r)
	}

	meshes, err := r.generate()
	if err != nil {
		return nil, err
	}

	for i, def := range r.defs {
		for _, m := range meshes[i] {
			name := def.Name
			if len(meshes[i]) > 1 {
				name = def.Name + "_" + m.Name
			}
			if _, dup := r.byName[name]; dup {
				return nil, fmt.Errorf("shape %q registered twice", name)
			}
			start, err := AppendMesh(vb, m)
			if err != nil {
				return nil, fmt.Errorf("append shape %q: %w", name, err)
			}
			r.byName[name] = len(r.shapes)
			r.shapes = append(r.shapes, Shape{
				Name:      name,
				Start:     start,
				Count:     m.VertexCount(),
				Primitive: m.Primitive,
			})
		}
	}
	return r, nil
}

// generate runs every definition on the worker pool. Results are indexed by definition.
func (r *registry) generate() ([][]geometry.Mesh, error) {
	results := make([][]geometry.Mesh, len(r.defs))
	errs := make([]error, len(r.defs))

	pool := worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	var wg sync.WaitGroup
	for i, def := range r.defs {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				results[i], errs[i] = def.Generate()
				return nil, errs[i]
			},
		})
	}
	wg.Wait()
	pool.Stop()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("generate shape %q: %w", r.defs[i].Name, err)
		}
	}
	return results, nil
}

// AppendMesh appends every attribute stream of m to vb and returns the vertex offset of its first vertex.
//
// Parameters:
//   - vb: the vertex buffer
//   - m: the mesh
//
// Returns:
//   - int: the start vertex
//   - error: an append error, or an error if the attribute cursors were out of step
func AppendMesh(vb vertex_buffer.VertexBuffer, m geometry.Mesh) (int, error) {
	start := -1
	for _, kind := range common.AttributeKinds {
		at, err := vb.Append(kind, m.Stream(kind))
		if err != nil {
			return 0, err
		}
		if start >= 0 && at != start {
			return 0, fmt.Errorf("%s stream starts at %d, position stream at %d", kind, at, start)
		}
		start = at
	}
	return start, nil
}

func (r *registry) Shape(name string) (Shape, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byName[name]
	if !ok {
		return Shape{}, fmt.Errorf("%q: %w", name, ErrUnknownShape)
	}
	return r.shapes[i], nil
}

func (r *registry) Shapes() []Shape {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Shape, len(r.shapes))
	copy(out, r.shapes)
	return out
}

func (r *registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shapes)
}

func (r *registry) VertexCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, s := range r.shapes {
		n += s.Count
	}
	return n
}

func (r *registry) Draw(d Drawer, name string) error {
	s, err := r.Shape(name)
	if err != nil {
		return err
	}
	return d.Draw(s.Primitive, s.Start, s.Count)
}

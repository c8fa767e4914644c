package scene

import (
	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
	"github.com/Carmen-Shannon/oxy-marsh/engine/camera"
	"github.com/Carmen-Shannon/oxy-marsh/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier, also used as the vertex buffer label in logs.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		if name != "" {
			s.name = name
		}
	}
}

// WithSeed fixes the seed for entity placement, targets and the pollen cloud.
//
// Parameters:
//   - seed: the seed
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSeed(seed uint64) SceneBuilderOption {
	return func(s *scene) {
		s.seed = seed
	}
}

// WithCattails sets the number of cattails planted at construction, at most MaxCattails.
//
// Parameters:
//   - n: the cattail count
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCattails(n int) SceneBuilderOption {
	return func(s *scene) {
		s.cattailCount = min(max(n, 0), MaxCattails)
	}
}

// WithDragonflies sets the number of dragonflies released at construction, at most MaxDragonflies.
//
// Parameters:
//   - n: the dragonfly count
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDragonflies(n int) SceneBuilderOption {
	return func(s *scene) {
		s.dragonflyCount = min(max(n, 0), MaxDragonflies)
	}
}

// WithSwayPreset sets the sway cattails start with.
//
// Parameters:
//   - p: the preset
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSwayPreset(p game_object.SwayPreset) SceneBuilderOption {
	return func(s *scene) {
		s.swayPreset = p
	}
}

// WithFlight sets the flight settings of every dragonfly.
//
// Parameters:
//   - f: the settings, zero fields take defaults
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFlight(f game_object.FlightSettings) SceneBuilderOption {
	return func(s *scene) {
		s.flight = f
	}
}

// WithAnimator supplies the animator, typically one built on a ManualClock.
//
// Parameters:
//   - a: the animator
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnimator(a animator.Animator) SceneBuilderOption {
	return func(s *scene) {
		s.anim = a
	}
}

// WithState supplies the world pose and toggles.
//
// Parameters:
//   - st: the state
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithState(st camera.State) SceneBuilderOption {
	return func(s *scene) {
		s.state = st
	}
}

// WithShapeWorkers sets the number of workers generating meshes at construction.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShapeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.workers = n
	}
}

// WithVertexCapacity sets the vertex buffer capacity in vertices.
//
// Parameters:
//   - n: the capacity
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithVertexCapacity(n int) SceneBuilderOption {
	return func(s *scene) {
		if n > 0 {
			s.vertexCapacity = n
		}
	}
}

// WithPollen sets whether the pollen cloud is drawn.
func WithPollen(show bool) SceneBuilderOption {
	return func(s *scene) {
		s.showPollen = show
	}
}

// WithMarker sets whether the pointer marker is drawn.
func WithMarker(show bool) SceneBuilderOption {
	return func(s *scene) {
		s.showMarker = show
	}
}

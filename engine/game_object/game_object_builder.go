package game_object

import (
	"github.com/Carmen-Shannon/oxy-marsh/common"
)

// GameObjectBuilderOption is a functional option for configuring the shared state of an entity during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the entity. IDs are otherwise assigned from a process-wide counter.
//
// Parameters:
//   - id: unique identifier for the entity
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the entity is drawn and advanced.
//
// Parameters:
//   - enabled: true to draw the entity, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the starting position of the entity.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// SwayPreset is the sway amplitude in degrees and the sway rate in degrees per second.
// A cattail sways between -Max/3 and Max.
type SwayPreset struct {
	Max  float32
	Rate float32
}

// DefaultSwayPreset is the sway a cattail starts with.
var DefaultSwayPreset = SwayPreset{Max: 7, Rate: 4.8}

// SwayPresetForDigit maps the digit keys onto sway presets: digit n gives Max n+1 and Rate 0.8*n,
// with 0 standing for the tenth preset.
//
// Parameters:
//   - digit: 0 through 9
//
// Returns:
//   - SwayPreset: the preset
//   - bool: false if digit is out of range
func SwayPresetForDigit(digit int) (SwayPreset, bool) {
	if digit < 0 || digit > 9 {
		return SwayPreset{}, false
	}
	n := common.Coalesce(digit, 10)
	return SwayPreset{Max: float32(n + 1), Rate: 0.8 * float32(n)}, true
}

// FlightSettings tune a dragonfly's wandering path and wing beat.
type FlightSettings struct {
	// Smoothing is the divisor of the per-frame step toward the target.
	Smoothing float32
	// Tolerance is the distance at which the target counts as reached.
	Tolerance float32
	// Cooldown is the number of frames after which a new target is picked regardless.
	Cooldown int
	// Min and Max bound the randomly chosen targets.
	Min [3]float32
	Max [3]float32
	// FlapMin and FlapMax bound the wing angle in degrees. FlapRate is in degrees per second.
	FlapMin  float32
	FlapMax  float32
	FlapRate float32
	// TailSegments is the number of tail segments drawn behind the thorax.
	TailSegments int
}

// DefaultFlightSettings returns the flight a dragonfly uses when none is given.
//
// Returns:
//   - FlightSettings: the defaults
func DefaultFlightSettings() FlightSettings {
	return FlightSettings{
		Smoothing:    16,
		Tolerance:    0.02,
		Cooldown:     240,
		Min:          [3]float32{-0.9, -0.3, -0.5},
		Max:          [3]float32{0.9, 0.6, 0.5},
		FlapMin:      -30,
		FlapMax:      30,
		FlapRate:     720,
		TailSegments: 6,
	}
}

// normalize fills zero fields from the defaults.
func (f FlightSettings) normalize() FlightSettings {
	d := DefaultFlightSettings()
	f.Smoothing = common.Coalesce(f.Smoothing, d.Smoothing)
	f.Tolerance = common.Coalesce(f.Tolerance, d.Tolerance)
	f.Cooldown = common.Coalesce(f.Cooldown, d.Cooldown)
	f.FlapRate = common.Coalesce(f.FlapRate, d.FlapRate)
	f.TailSegments = common.Coalesce(f.TailSegments, d.TailSegments)
	if f.Min == ([3]float32{}) && f.Max == ([3]float32{}) {
		f.Min, f.Max = d.Min, d.Max
	}
	if f.FlapMin == 0 && f.FlapMax == 0 {
		f.FlapMin, f.FlapMax = d.FlapMin, d.FlapMax
	}
	if f.Smoothing < 1 {
		f.Smoothing = 1
	}
	return f
}

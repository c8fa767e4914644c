// Package config loads the marsh settings from a YAML or TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/game_object"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer"
	"github.com/Carmen-Shannon/oxy-marsh/engine/scene"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const maxConfigSize = 1 << 20

// Config is the full set of file settings. Command line flags override it.
type Config struct {
	Window   Window   `yaml:"window" toml:"window"`
	Renderer Renderer `yaml:"renderer" toml:"renderer"`
	Scene    Scene    `yaml:"scene" toml:"scene"`
	Flight   Flight   `yaml:"flight" toml:"flight"`
	Headless Headless `yaml:"headless" toml:"headless"`
	Profile  bool     `yaml:"profile" toml:"profile"`
}

// Window sizes the desktop window.
type Window struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

// Renderer selects and tunes the backend.
type Renderer struct {
	// Backend is "wgpu", "software" or "recording".
	Backend    string  `yaml:"backend" toml:"backend"`
	VSync      bool    `yaml:"vsync" toml:"vsync"`
	MSAA       bool    `yaml:"msaa" toml:"msaa"`
	FrameLimit float64 `yaml:"frame_limit" toml:"frame_limit"`
}

// Scene seeds and populates the marsh.
type Scene struct {
	// Seed fixes placement; 0 picks one from the clock.
	Seed        uint64  `yaml:"seed" toml:"seed"`
	Cattails    int     `yaml:"cattails" toml:"cattails"`
	Dragonflies int     `yaml:"dragonflies" toml:"dragonflies"`
	SwayMax     float32 `yaml:"sway_max" toml:"sway_max"`
	SwayRate    float32 `yaml:"sway_rate" toml:"sway_rate"`
	ShowGrid    bool    `yaml:"show_grid" toml:"show_grid"`
	LowFidelity bool    `yaml:"low_fidelity" toml:"low_fidelity"`
	Pollen      bool    `yaml:"pollen" toml:"pollen"`
	Marker      bool    `yaml:"marker" toml:"marker"`
	Workers     int     `yaml:"workers" toml:"workers"`
}

// Flight tunes dragonfly wandering. Zero fields take the built-in defaults.
type Flight struct {
	Smoothing float32 `yaml:"smoothing" toml:"smoothing"`
	Tolerance float32 `yaml:"tolerance" toml:"tolerance"`
	Cooldown  int     `yaml:"cooldown" toml:"cooldown"`
	FlapRate  float32 `yaml:"flap_rate" toml:"flap_rate"`
}

// Headless configures offscreen runs.
type Headless struct {
	Frames     int    `yaml:"frames" toml:"frames"`
	StepMillis int    `yaml:"step_ms" toml:"step_ms"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Snapshot   string `yaml:"snapshot" toml:"snapshot"`
}

// Default returns the settings used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	sway := game_object.DefaultSwayPreset
	flight := game_object.DefaultFlightSettings()
	return Config{
		Window: Window{Title: "Marsh", Width: 1280, Height: 720},
		Renderer: Renderer{
			Backend: renderer.BackendTypeWGPU.String(),
			VSync:   true,
			MSAA:    true,
		},
		Scene: Scene{
			Cattails:    8,
			Dragonflies: 2,
			SwayMax:     sway.Max,
			SwayRate:    sway.Rate,
			Pollen:      true,
			Marker:      true,
		},
		Flight: Flight{
			Smoothing: flight.Smoothing,
			Tolerance: flight.Tolerance,
			Cooldown:  flight.Cooldown,
			FlapRate:  flight.FlapRate,
		},
		Headless: Headless{Frames: 120, StepMillis: 16, Width: 800, Height: 600},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Files ending in .toml are decoded as TOML, anything else as YAML. Unknown keys are rejected.
//
// Parameters:
//   - path: the config file, may be empty
//
// Returns:
//   - Config: the validated settings
//   - error: error reading, decoding or validating the file
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %s is %d bytes: %w", path, info.Size(), ErrInvalidConfig)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, Format(path), &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	log.Printf("[Config] loaded %s", path)
	return cfg, nil
}

// Format names the decoder chosen for path: "toml" or "yaml".
func Format(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// Decode strictly decodes data in the given format into cfg, keeping fields the data leaves out.
//
// Parameters:
//   - data: the file contents
//   - format: "toml" or "yaml"
//   - cfg: the config to decode into
//
// Returns:
//   - error: error if the data is malformed or has unknown keys
func Decode(data []byte, format string, cfg *Config) error {
	switch format {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(cfg)
	}
}

// Validate checks ranges and names.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig, or nil
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	_, known := renderer.ParseBackendType(c.Renderer.Backend)
	check(known, "renderer.backend %q is not one of wgpu, software, recording", c.Renderer.Backend)
	check(c.Renderer.FrameLimit >= 0, "renderer.frame_limit %g is negative", c.Renderer.FrameLimit)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Scene.Cattails >= 0 && c.Scene.Cattails <= scene.MaxCattails,
		"scene.cattails %d is outside 0..%d", c.Scene.Cattails, scene.MaxCattails)
	check(c.Scene.Dragonflies >= 0 && c.Scene.Dragonflies <= scene.MaxDragonflies,
		"scene.dragonflies %d is outside 0..%d", c.Scene.Dragonflies, scene.MaxDragonflies)
	check(c.Scene.SwayMax > 0, "scene.sway_max %g must be positive", c.Scene.SwayMax)
	check(c.Scene.SwayRate >= 0, "scene.sway_rate %g is negative", c.Scene.SwayRate)
	check(c.Scene.Workers >= 0, "scene.workers %d is negative", c.Scene.Workers)
	check(c.Flight.Smoothing == 0 || c.Flight.Smoothing >= 1, "flight.smoothing %g is below 1", c.Flight.Smoothing)
	check(c.Flight.Tolerance >= 0, "flight.tolerance %g is negative", c.Flight.Tolerance)
	check(c.Flight.Cooldown >= 0, "flight.cooldown %d is negative", c.Flight.Cooldown)
	check(c.Headless.Frames >= 0, "headless.frames %d is negative", c.Headless.Frames)
	check(c.Headless.StepMillis >= 0, "headless.step_ms %d is negative", c.Headless.StepMillis)
	check(c.Headless.Width >= 0 && c.Headless.Height >= 0, "headless size %dx%d", c.Headless.Width, c.Headless.Height)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// SwayPreset returns the configured sway as a preset.
func (c Config) SwayPreset() game_object.SwayPreset {
	return game_object.SwayPreset{Max: c.Scene.SwayMax, Rate: c.Scene.SwayRate}
}

// FlightSettings returns the configured flight over the defaults.
func (c Config) FlightSettings() game_object.FlightSettings {
	f := game_object.DefaultFlightSettings()
	f.Smoothing = common.Coalesce(c.Flight.Smoothing, f.Smoothing)
	f.Tolerance = common.Coalesce(c.Flight.Tolerance, f.Tolerance)
	f.Cooldown = common.Coalesce(c.Flight.Cooldown, f.Cooldown)
	f.FlapRate = common.Coalesce(c.Flight.FlapRate, f.FlapRate)
	return f
}

// BackendType returns the parsed renderer backend.
func (c Config) BackendType() renderer.RendererBackendType {
	t, _ := renderer.ParseBackendType(c.Renderer.Backend)
	return t
}

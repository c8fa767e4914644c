// Command marsh renders the procedural marsh in a window, or headless into a PNG.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/config"
	"github.com/Carmen-Shannon/oxy-marsh/engine"
	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
	"github.com/Carmen-Shannon/oxy-marsh/engine/input"
	"github.com/Carmen-Shannon/oxy-marsh/engine/panel"
	"github.com/Carmen-Shannon/oxy-marsh/engine/profiler"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer"
	"github.com/Carmen-Shannon/oxy-marsh/engine/scene"
	"github.com/Carmen-Shannon/oxy-marsh/engine/window"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML or TOML config file")
		headless   = flag.Bool("headless", false, "render offscreen without a window")
		frames     = flag.Int("frames", 0, "frames to render headless, 0 keeps the config value")
		snapshot   = flag.String("snapshot", "", "write the last headless frame to this PNG")
		profile    = flag.Bool("profile", false, "log frame statistics every second")
		watch      = flag.Bool("watch", false, "apply config file changes while running")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Marsh] %v", err)
	}
	if *profile {
		cfg.Profile = true
	}
	if *frames > 0 {
		cfg.Headless.Frames = *frames
	}
	if *snapshot != "" {
		cfg.Headless.Snapshot = *snapshot
	}

	if *headless {
		err = runHeadless(cfg)
	} else {
		err = runWindowed(cfg, *configPath, *watch)
	}
	if err != nil {
		log.Fatalf("[Marsh] %v", err)
	}
}

func runHeadless(cfg config.Config) error {
	backend := cfg.BackendType()
	if backend == renderer.BackendTypeWGPU {
		backend = renderer.BackendTypeSoftware
	}
	r := renderer.NewRenderer(backend, nil, renderer.WithSize(cfg.Headless.Width, cfg.Headless.Height))
	defer r.Release()

	clock := animator.NewManualClock(time.Now())
	sc, err := scene.NewScene(r, append(sceneOptions(cfg),
		scene.WithAnimator(animator.NewAnimator(animator.WithClock(clock))))...)
	if err != nil {
		return err
	}
	applyLive(sc, cfg)

	eng := engine.NewEngine(
		engine.WithScene(sc),
		engine.WithProfiling(cfg.Profile),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithTimeSource(clock.Now))),
		engine.WithProgressBar(true),
	)
	step := time.Duration(cfg.Headless.StepMillis) * time.Millisecond
	drawn, err := eng.RunFrames(cfg.Headless.Frames, step)
	if err != nil {
		return err
	}
	log.Printf("[Marsh] rendered %d frames on the %s backend", drawn, backend)

	if cfg.Headless.Snapshot == "" {
		return nil
	}
	if err := r.Snapshot(cfg.Headless.Snapshot); err != nil {
		return err
	}
	log.Printf("[Marsh] wrote %s", cfg.Headless.Snapshot)
	return nil
}

func runWindowed(cfg config.Config, configPath string, watch bool) error {
	if cfg.BackendType() != renderer.BackendTypeWGPU {
		log.Printf("[Marsh] %s backend has no window surface, using wgpu", cfg.Renderer.Backend)
	}

	w := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)

	present := renderer.PresentModeUncapped
	if cfg.Renderer.VSync {
		present = renderer.PresentModeVSync
	}
	msaa := renderer.MSAAOff
	if cfg.Renderer.MSAA {
		msaa = renderer.MSAA4x
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, w,
		renderer.WithPresentMode(present),
		renderer.WithMSAA(msaa),
	)
	defer r.Release()

	sc, err := scene.NewScene(r, sceneOptions(cfg)...)
	if err != nil {
		return err
	}
	applyLive(sc, cfg)

	p := panel.NewPanel(panel.WithLabel("Controls"))
	scene.BindPanel(p, sc)

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithScene(sc),
		engine.WithInput(input.NewHandler(sc, p)),
		engine.WithProfiling(cfg.Profile),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
	)

	if watch && configPath != "" {
		wt, err := config.Watch(configPath, func(c config.Config) {
			eng.Post(func() { applyLive(sc, c) })
		})
		if err != nil {
			return err
		}
		defer wt.Close()
	}

	log.Printf("[Marsh] press / for help")
	eng.Run()
	return nil
}

func sceneOptions(cfg config.Config) []scene.SceneBuilderOption {
	opts := []scene.SceneBuilderOption{
		scene.WithCattails(cfg.Scene.Cattails),
		scene.WithDragonflies(cfg.Scene.Dragonflies),
		scene.WithSwayPreset(cfg.SwayPreset()),
		scene.WithFlight(cfg.FlightSettings()),
		scene.WithPollen(cfg.Scene.Pollen),
		scene.WithMarker(cfg.Scene.Marker),
	}
	if cfg.Scene.Seed != 0 {
		opts = append(opts, scene.WithSeed(cfg.Scene.Seed))
	}
	if cfg.Scene.Workers > 0 {
		opts = append(opts, scene.WithShapeWorkers(cfg.Scene.Workers))
	}
	return opts
}

// applyLive brings a running scene in line with cfg: display toggles, sway and entity counts.
// Must run on the frame thread.
func applyLive(sc scene.Scene, cfg config.Config) {
	st := sc.State()
	st.SetShowGrid(cfg.Scene.ShowGrid)
	st.SetLowFidelity(cfg.Scene.LowFidelity)
	if p := cfg.SwayPreset(); p != sc.SwayPreset() {
		sc.SetSwayPreset(p)
	}
	for len(sc.Cattails()) < cfg.Scene.Cattails && sc.AddCattail() != nil {
	}
	for len(sc.Cattails()) > cfg.Scene.Cattails && sc.RemoveCattail() {
	}
	for len(sc.Dragonflies()) < cfg.Scene.Dragonflies && sc.AddDragonfly() != nil {
	}
	for len(sc.Dragonflies()) > cfg.Scene.Dragonflies && sc.RemoveDragonfly() {
	}
	sc.RequestRedraw()
}

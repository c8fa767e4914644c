package scene

import (
	"github.com/Carmen-Shannon/oxy-marsh/engine/panel"
)

// Panel folder names.
const (
	FolderAnimations = "Animations"
	FolderPosition   = "Position"
	FolderScale      = "Scale"
	FolderRotation   = "Rotation"
)

// BindPanel exposes the scene's toggles, world pose and entity actions on p.
//
// Parameters:
//   - p: the panel to populate
//   - sc: the scene it controls
func BindPanel(p panel.Panel, sc Scene) {
	st := sc.State()

	p.AddBool(FolderAnimations, "animate", func() bool { return !sc.Paused() }, sc.SetAnimating)
	p.AddBool(FolderAnimations, "sway", st.SwayEnabled, sc.SetSwayEnabled)
	p.AddBool(FolderAnimations, "grid", st.ShowGrid, st.SetShowGrid)
	p.AddBool(FolderAnimations, "lowFidelity", st.LowFidelity, st.SetLowFidelity)
	p.AddNumber(FolderAnimations, "swayMax", 1, 20,
		func() float32 { return sc.SwayPreset().Max },
		func(v float32) {
			preset := sc.SwayPreset()
			preset.Max = v
			sc.SetSwayPreset(preset)
		})
	p.AddNumber(FolderAnimations, "swayRate", 0, 20,
		func() float32 { return sc.SwayPreset().Rate },
		func(v float32) {
			preset := sc.SwayPreset()
			preset.Rate = v
			sc.SetSwayPreset(preset)
		})

	bindAxes(p, FolderPosition, "pos", -2, 2, st.Position, st.SetPosition)
	bindAxes(p, FolderScale, "scale", 0.1, 4, st.Scale, st.SetScale)
	bindAxes(p, FolderRotation, "rot", -360, 360, st.Rotation, st.SetRotation)

	p.AddAction("reset", sc.Reset)
	p.AddAction("addCattail", func() { sc.AddCattail() })
	p.AddAction("removeCattail", func() { sc.RemoveCattail() })
	p.AddAction("addDragonfly", func() { sc.AddDragonfly() })
	p.AddAction("removeDragonfly", func() { sc.RemoveDragonfly() })

	_ = p.OnChange("animate", func(any) { sc.RequestRedraw() })
	p.SetFolderOpen(FolderAnimations, true)
}

// bindAxes registers x, y and z fields backed by a three-component getter and setter.
func bindAxes(p panel.Panel, folder, prefix string, lo, hi float32,
	get func() (float32, float32, float32), set func(float32, float32, float32)) {
	for i, axis := range []string{"x", "y", "z"} {
		p.AddNumber(folder, prefix+"_"+axis, lo, hi,
			func() float32 {
				v := axisValues(get)
				return v[i]
			},
			func(nv float32) {
				v := axisValues(get)
				v[i] = nv
				set(v[0], v[1], v[2])
			})
	}
}

func axisValues(get func() (float32, float32, float32)) [3]float32 {
	x, y, z := get()
	return [3]float32{x, y, z}
}

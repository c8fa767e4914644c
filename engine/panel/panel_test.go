package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberFieldClamps(t *testing.T) {
	p := NewPanel()
	var x float32
	p.AddNumber("Position", "x", 2, -2, func() float32 { return x }, func(v float32) { x = v })

	got, err := p.SetNumber("x", 5)
	require.NoError(t, err)
	assert.Equal(t, float32(2), got)
	assert.Equal(t, float32(2), x)

	got, err = p.SetNumber("x", -0.5)
	require.NoError(t, err)
	assert.Equal(t, float32(-0.5), got)

	fields := p.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, Field{Name: "x", Folder: "Position", Kind: FieldNumber, Min: -2, Max: 2, Number: -0.5}, fields[0])
}

func TestFieldsReflectOutsideWrites(t *testing.T) {
	p := NewPanel()
	on := false
	p.AddBool("", "sway", func() bool { return on }, func(v bool) { on = v })
	on = true
	assert.True(t, p.Fields()[0].Bool)
}

func TestOnChangeRunsAfterSetter(t *testing.T) {
	p := NewPanel()
	on := false
	p.AddBool("Animations", "animate", func() bool { return on }, func(v bool) { on = v })

	var seen []any
	require.NoError(t, p.OnChange("animate", func(v any) {
		assert.Equal(t, v, on, "the setter has already run")
		seen = append(seen, v)
	}))
	require.NoError(t, p.SetBool("animate", true))
	require.NoError(t, p.SetBool("animate", false))
	assert.Equal(t, []any{true, false}, seen)

	assert.ErrorIs(t, p.OnChange("missing", func(any) {}), ErrUnknownField)
}

func TestKindMismatch(t *testing.T) {
	p := NewPanel()
	p.AddBool("", "grid", func() bool { return false }, func(bool) {})
	p.AddNumber("", "scale", 0, 1, func() float32 { return 0 }, func(float32) {})

	_, err := p.SetNumber("grid", 1)
	assert.ErrorIs(t, err, ErrWrongKind)
	assert.ErrorIs(t, p.SetBool("scale", true), ErrWrongKind)
	assert.ErrorIs(t, p.SetBool("nope", true), ErrUnknownField)
}

func TestActionsAndFolders(t *testing.T) {
	p := NewPanel(WithOpenFolders("Animations"))
	calls := 0
	p.AddAction("reset", func() { calls++ })
	p.AddBool("Animations", "sway", func() bool { return true }, func(bool) {})
	p.AddNumber("Scale", "x", 0.1, 4, func() float32 { return 1 }, func(float32) {})

	require.NoError(t, p.Invoke("reset"))
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, p.Invoke("explode"), ErrUnknownField)
	assert.Equal(t, []string{"reset"}, p.Actions())

	assert.Equal(t, []string{"Animations", "Scale"}, p.Folders())
	assert.True(t, p.FolderOpen("Animations"))
	assert.False(t, p.FolderOpen("Scale"))
	p.SetFolderOpen("Scale", true)
	assert.True(t, p.FolderOpen("Scale"))
}

func TestOpenClose(t *testing.T) {
	p := NewPanel()
	assert.False(t, p.Open())
	assert.True(t, p.Toggle())
	assert.False(t, p.Toggle())
	p.SetOpen(true)
	assert.True(t, p.Open())
	assert.True(t, NewPanel(WithOpen(true)).Open())
}

func TestDuplicateFieldPanics(t *testing.T) {
	p := NewPanel()
	p.AddBool("", "a", func() bool { return false }, func(bool) {})
	assert.Panics(t, func() { p.AddBool("", "a", func() bool { return false }, func(bool) {}) })
}

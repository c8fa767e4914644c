// Package panel is a headless control panel: named numeric and boolean fields grouped into folders,
// with change callbacks and named actions. A front end lists the fields and writes through Set.
package panel

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-marsh/common"
)

var (
	// ErrUnknownField is returned when a field or action name is not registered.
	ErrUnknownField = errors.New("unknown panel field")

	// ErrWrongKind is returned when a field is written with a value of the other kind.
	ErrWrongKind = errors.New("wrong field kind")
)

// FieldKind distinguishes numeric fields from toggles.
type FieldKind int

const (
	FieldNumber FieldKind = iota
	FieldBool
)

// Field describes one control. Numeric fields clamp into [Min, Max].
type Field struct {
	Name   string
	Folder string
	Kind   FieldKind
	Min    float32
	Max    float32
	Number float32
	Bool   bool
}

type field struct {
	Field
	get      func() any
	onChange []func(any)
}

// panel is the implementation of the Panel interface.
type panel struct {
	mu      *sync.Mutex
	label   string
	open    bool
	fields  map[string]*field
	order   []string
	actions map[string]func()
	folders map[string]bool
}

// Panel exposes scene state as named fields.
type Panel interface {
	// AddNumber registers a numeric field. The getter lets the panel show values changed elsewhere.
	//
	// Parameters:
	//   - folder: the folder the field is listed under, empty for the root
	//   - name: the field name
	//   - lo, hi: the clamp range
	//   - get: reads the current value
	//   - set: writes a clamped value
	AddNumber(folder, name string, lo, hi float32, get func() float32, set func(float32))

	// AddBool registers a toggle.
	//
	// Parameters:
	//   - folder: the folder the field is listed under, empty for the root
	//   - name: the field name
	//   - get: reads the current value
	//   - set: writes a new value
	AddBool(folder, name string, get func() bool, set func(bool))

	// AddAction registers a named action.
	//
	// Parameters:
	//   - name: the action name
	//   - fn: the action
	AddAction(name string, fn func())

	// OnChange registers a callback run after a field is written through the panel.
	//
	// Parameters:
	//   - name: the field name
	//   - fn: receives the new float32 or bool value
	//
	// Returns:
	//   - error: ErrUnknownField if the field does not exist
	OnChange(name string, fn func(value any)) error

	// SetNumber writes a numeric field, clamping into its range.
	//
	// Parameters:
	//   - name: the field name
	//   - v: the requested value
	//
	// Returns:
	//   - float32: the value written
	//   - error: ErrUnknownField or ErrWrongKind
	SetNumber(name string, v float32) (float32, error)

	// SetBool writes a toggle.
	//
	// Parameters:
	//   - name: the field name
	//   - v: the new value
	//
	// Returns:
	//   - error: ErrUnknownField or ErrWrongKind
	SetBool(name string, v bool) error

	// Invoke runs a named action.
	//
	// Parameters:
	//   - name: the action name
	//
	// Returns:
	//   - error: ErrUnknownField if no such action exists
	Invoke(name string) error

	// Fields returns a snapshot of every field in registration order with current values.
	//
	// Returns:
	//   - []Field: the fields
	Fields() []Field

	// Actions returns the action names, sorted.
	Actions() []string

	// Folders returns the folder names, sorted.
	Folders() []string

	// FolderOpen reports whether a folder is expanded.
	FolderOpen(folder string) bool

	// SetFolderOpen expands or collapses a folder.
	SetFolderOpen(folder string, open bool)

	// Open reports whether the panel is shown.
	Open() bool

	// SetOpen shows or hides the panel.
	SetOpen(open bool)

	// Toggle flips the panel between shown and hidden and returns the new state.
	Toggle() bool
}

var _ Panel = &panel{}

// NewPanel creates an empty, closed panel.
//
// Parameters:
//   - options: functional options to configure the panel
//
// Returns:
//   - Panel: the new panel
func NewPanel(options ...PanelBuilderOption) Panel {
	p := &panel{
		mu:      &sync.Mutex{},
		label:   "Panel",
		fields:  make(map[string]*field),
		actions: make(map[string]func()),
		folders: make(map[string]bool),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *panel) register(f *field) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.fields[f.Name]; exists {
		panic(fmt.Sprintf("panel field %q registered twice", f.Name))
	}
	p.fields[f.Name] = f
	p.order = append(p.order, f.Name)
	if f.Folder != "" {
		if _, ok := p.folders[f.Folder]; !ok {
			p.folders[f.Folder] = false
		}
	}
}

func (p *panel) AddNumber(folder, name string, lo, hi float32, get func() float32, set func(float32)) {
	if lo > hi {
		lo, hi = hi, lo
	}
	f := &field{Field: Field{Name: name, Folder: folder, Kind: FieldNumber, Min: lo, Max: hi}}
	f.get = func() any { return get() }
	f.onChange = append(f.onChange, func(v any) { set(v.(float32)) })
	p.register(f)
}

func (p *panel) AddBool(folder, name string, get func() bool, set func(bool)) {
	f := &field{Field: Field{Name: name, Folder: folder, Kind: FieldBool}}
	f.get = func() any { return get() }
	f.onChange = append(f.onChange, func(v any) { set(v.(bool)) })
	p.register(f)
}

func (p *panel) AddAction(name string, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions[name] = fn
}

func (p *panel) lookup(name string, kind FieldKind) (*field, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.fields[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownField)
	}
	if f.Kind != kind {
		return nil, fmt.Errorf("%q: %w", name, ErrWrongKind)
	}
	return f, nil
}

func (p *panel) OnChange(name string, fn func(value any)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.fields[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownField)
	}
	f.onChange = append(f.onChange, fn)
	return nil
}

// notify runs callbacks outside the lock so they may read the panel.
func (p *panel) notify(f *field, v any) {
	p.mu.Lock()
	callbacks := slices.Clone(f.onChange)
	p.mu.Unlock()
	for _, fn := range callbacks {
		fn(v)
	}
}

func (p *panel) SetNumber(name string, v float32) (float32, error) {
	f, err := p.lookup(name, FieldNumber)
	if err != nil {
		return 0, err
	}
	clamped := common.Clamp(v, f.Min, f.Max)
	if clamped != v {
		log.Printf("[%s] %s clamped from %g to %g", p.label, name, v, clamped)
	}
	p.notify(f, clamped)
	return clamped, nil
}

func (p *panel) SetBool(name string, v bool) error {
	f, err := p.lookup(name, FieldBool)
	if err != nil {
		return err
	}
	p.notify(f, v)
	return nil
}

func (p *panel) Invoke(name string) error {
	p.mu.Lock()
	fn, ok := p.actions[name]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("action %q: %w", name, ErrUnknownField)
	}
	fn()
	return nil
}

func (p *panel) Fields() []Field {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Field, 0, len(p.order))
	for _, name := range p.order {
		f := p.fields[name]
		snap := f.Field
		switch v := f.get().(type) {
		case float32:
			snap.Number = v
		case bool:
			snap.Bool = v
		}
		out = append(out, snap)
	}
	return out
}

func (p *panel) Actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.actions))
	for name := range p.actions {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (p *panel) Folders() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.folders))
	for name := range p.folders {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (p *panel) FolderOpen(folder string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.folders[folder]
}

func (p *panel) SetFolderOpen(folder string, open bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.folders[folder] = open
}

func (p *panel) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

func (p *panel) SetOpen(open bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = open
}

func (p *panel) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = !p.open
	log.Printf("[%s] open=%t", p.label, p.open)
	return p.open
}

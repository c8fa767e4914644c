package panel

// PanelBuilderOption is a functional option for configuring a Panel during construction.
type PanelBuilderOption func(*panel)

// WithLabel sets the name used in log lines.
//
// Parameters:
//   - label: the panel label
//
// Returns:
//   - PanelBuilderOption: a function that sets the label
func WithLabel(label string) PanelBuilderOption {
	return func(p *panel) {
		p.label = label
	}
}

// WithOpen sets whether the panel starts shown.
//
// Parameters:
//   - open: true to start shown
//
// Returns:
//   - PanelBuilderOption: a function that sets the open state
func WithOpen(open bool) PanelBuilderOption {
	return func(p *panel) {
		p.open = open
	}
}

// WithOpenFolders lists folders that start expanded.
//
// Parameters:
//   - folders: the folder names
//
// Returns:
//   - PanelBuilderOption: a function that expands the folders
func WithOpenFolders(folders ...string) PanelBuilderOption {
	return func(p *panel) {
		for _, f := range folders {
			p.folders[f] = true
		}
	}
}

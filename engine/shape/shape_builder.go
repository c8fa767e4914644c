package shape

// RegistryBuilderOption is a functional option applied to a registry during construction via NewRegistry.
type RegistryBuilderOption func(*registry)

// WithDefinitions appends shape definitions. Shapes are laid out in the order given.
//
// Parameters:
//   - defs: the definitions
//
// Returns:
//   - RegistryBuilderOption: a function that applies the definitions to a registry
func WithDefinitions(defs ...Definition) RegistryBuilderOption {
	return func(r *registry) {
		r.defs = append(r.defs, defs...)
	}
}

// WithWorkers sets the number of workers generating meshes.
//
// Parameters:
//   - n: the worker count, at least 1
//
// Returns:
//   - RegistryBuilderOption: a function that applies the worker count to a registry
func WithWorkers(n int) RegistryBuilderOption {
	return func(r *registry) {
		r.workers = max(n, 1)
	}
}

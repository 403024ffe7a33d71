package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores renderers by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// Snapshot retrieves a renderer and asserts the snapshot capability.
func (r *Registry) Snapshot(name string) (SnapshotRenderer, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	snap, ok := renderer.(SnapshotRenderer)
	if !ok {
		return nil, fmt.Errorf("render: renderer %q cannot render snapshots", name)
	}
	return snap, nil
}

// Interactive retrieves a renderer and asserts the interactive capability.
func (r *Registry) Interactive(name string) (InteractiveRenderer, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	interactive, ok := renderer.(InteractiveRenderer)
	if !ok {
		return nil, fmt.Errorf("render: renderer %q is not interactive", name)
	}
	return interactive, nil
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

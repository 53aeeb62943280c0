package render

import (
	"fmt"
	"sort"
	"strings"

	"JSMChanges/internal/ports"
)

// Registry keeps a mapping from format names to renderer implementations.
type Registry struct {
	renderers map[string]ports.Renderer
}

// NewRegistry builds a registry pre-populated with renderers.
func NewRegistry(renderers ...ports.Renderer) *Registry {
	r := &Registry{renderers: map[string]ports.Renderer{}}
	for _, renderer := range renderers {
		r.Register(renderer)
	}
	return r
}

// Register adds or replaces a renderer implementation.
func (r *Registry) Register(renderer ports.Renderer) {
	if r.renderers == nil {
		r.renderers = map[string]ports.Renderer{}
	}
	r.renderers[strings.ToLower(renderer.Name())] = renderer
}

// Resolve returns a renderer by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.Renderer, error) {
	if renderer, ok := r.renderers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("report format %q is not registered (available: %s)", name, strings.Join(r.Names(), ", "))
}

// Names lists registered formats alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

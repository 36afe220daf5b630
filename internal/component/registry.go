// internal/component/registry.go
//
// Component registry.
//
// A component owns a set of routes.  Components without dependencies call
// Register from an init() function; components that need configured
// collaborators are registered by main before Mount runs.  Mount attaches
// every component to the root router in name order so route conflicts show
// up deterministically.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.  Routes adds the component's page and API endpoints
// to r, e.g.
//
//	r.Get("/contact", c.page)
//	r.Route("/api", func(api chi.Router) { ... })
type Component interface {
	Name() string
	Routes(r chi.Router)
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register adds c, replacing any component with the same name.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount attaches every registered component to r.
func Mount(r chi.Router) {
	for _, c := range All() {
		c.Routes(r)
	}
}

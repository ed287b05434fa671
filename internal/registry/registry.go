package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/legcfg/internal/config"
)

// SourceBuiltin marks robots compiled into the binary.
const SourceBuiltin = "builtin"

// Module is the interface that every built-in robot package implements to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the resolved robot records for a single catalog instance.
type Registry struct {
	assetsDir string
	robots    map[string]*config.Articulation
	sources   map[string]string
}

// New creates an empty registry. assetsDir is the root that built-in robots
// resolve their USD paths against.
func New(assetsDir string) *Registry {
	return &Registry{
		assetsDir: assetsDir,
		robots:    make(map[string]*config.Articulation),
		sources:   make(map[string]string),
	}
}

// AssetsDir returns the asset root the registry was created with.
func (r *Registry) AssetsDir() string {
	return r.assetsDir
}

// Register adds a built-in robot record. Registering a nil record, an unnamed
// record or a name twice is a programmer error and panics.
func (r *Registry) Register(cfg *config.Articulation) {
	if cfg == nil || cfg.Name == "" {
		panic("registry: cannot register a nil or unnamed robot")
	}
	if _, exists := r.robots[cfg.Name]; exists {
		panic(fmt.Sprintf("robot with name '%s' already registered", cfg.Name))
	}
	slog.Debug("Registering robot.", "name", cfg.Name, "actuator_groups", len(cfg.Actuators))
	r.robots[cfg.Name] = cfg.Clone()
	r.sources[cfg.Name] = SourceBuiltin
}

// Get returns a copy of the named robot record.
func (r *Registry) Get(name string) (*config.Articulation, bool) {
	cfg, ok := r.robots[name]
	if !ok {
		return nil, false
	}
	return cfg.Clone(), true
}

// Lookup is like Get but returns an error naming the available robots.
func (r *Registry) Lookup(name string) (*config.Articulation, error) {
	cfg, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown robot %q (available: %v)", name, r.Names())
	}
	return cfg, nil
}

// Source reports where the named robot came from: SourceBuiltin or a
// "file:line" location.
func (r *Registry) Source(name string) string {
	return r.sources[name]
}

// Names returns every robot name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.robots))
	for name := range r.robots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered robots.
func (r *Registry) Len() int {
	return len(r.robots)
}

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/ctxlog"
)

// PopulateFromModel resolves and adds every robot definition of a loaded
// model. A definition may extend a registered robot or another definition of
// the same model, in any order. Redefining a known name, extending an unknown
// robot and extension cycles are errors; on error the registry is left
// unchanged.
func (r *Registry) PopulateFromModel(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	if model == nil || len(model.Robots) == 0 {
		logger.Debug("No file-defined robots to populate.")
		return nil
	}

	defs := make(map[string]*config.RobotDefinition, len(model.Robots))
	for _, d := range model.Robots {
		if prev, dup := defs[d.Name]; dup {
			return fmt.Errorf("robot %q is defined twice (%s and %s)", d.Name, prev.Source, d.Source)
		}
		if _, exists := r.robots[d.Name]; exists {
			return fmt.Errorf("robot %q at %s redefines a %s robot; use `extends` with a new name instead", d.Name, d.Source, r.sources[d.Name])
		}
		defs[d.Name] = d
	}

	resolved := make(map[string]*config.Articulation, len(defs))
	inProgress := make(map[string]bool)

	var resolve func(name string, chain []string) (*config.Articulation, error)
	resolve = func(name string, chain []string) (*config.Articulation, error) {
		if cfg, ok := r.robots[name]; ok {
			return cfg, nil
		}
		if cfg, ok := resolved[name]; ok {
			return cfg, nil
		}
		d := defs[name]
		if inProgress[name] {
			return nil, fmt.Errorf("robot %q at %s: extends cycle %s", name, d.Source, strings.Join(append(chain, name), " -> "))
		}
		inProgress[name] = true
		defer delete(inProgress, name)

		var base *config.Articulation
		if d.Extends != "" {
			_, known := r.robots[d.Extends]
			if _, isDef := defs[d.Extends]; !known && !isDef {
				return nil, fmt.Errorf("robot %q at %s extends unknown robot %q", name, d.Source, d.Extends)
			}
			var err error
			base, err = resolve(d.Extends, append(chain, name))
			if err != nil {
				return nil, err
			}
		}

		cfg := d.Apply(base)
		resolved[name] = cfg
		logger.Debug("Resolved file-defined robot.", "name", name, "extends", d.Extends, "source", d.Source)
		return cfg, nil
	}

	for _, d := range model.Robots {
		if _, err := resolve(d.Name, nil); err != nil {
			return err
		}
	}

	for name, cfg := range resolved {
		r.robots[name] = cfg
		r.sources[name] = defs[name].Source
	}
	logger.Info("File-defined robots added to catalog.", "count", len(resolved))
	return nil
}

package scenario

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"stagehand/core"
	"stagehand/refdata"
)

// Factory constructs one engine instance for a resolved definition. The
// company and run seed are fixed for the whole run, so the engine's
// precomputed cast is stable across hours and across re-runs.
type Factory func(def Definition, company *refdata.Company, seed int64) Engine

// Registry maps scenario names to definitions and engine factories. It is an
// explicit object constructed once at startup and injected into the
// orchestrator, never package-level mutable state.
type Registry struct {
	defs      map[string]Definition
	factories map[string]Factory
	order     []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:      make(map[string]Definition),
		factories: make(map[string]Factory),
	}
}

// Register validates and adds a definition with its engine factory.
// Registering a name twice fails with ErrDuplicateScenario and leaves the
// first registration intact.
func (r *Registry) Register(def Definition, factory Factory) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if factory == nil {
		return fmt.Errorf("%w: %s: nil factory", ErrInvalidScenario, def.Name)
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateScenario, def.Name)
	}
	r.defs[def.Name] = def
	r.factories[def.Name] = factory
	r.order = append(r.order, def.Name)
	return nil
}

// Definitions returns every registered definition in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.defs[name])
	}
	return defs
}

// Lookup returns the definition for a name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Resolve selects the enabled definitions matching the requested names,
// intersected with definitions whose sources overlap the requested source
// set. Requests may use "all" or a category shortcut (attack, ops, network).
// Unknown names are logged at warning level and skipped; the run proceeds.
func (r *Registry) Resolve(requested []string, sources map[core.SourceID]bool, logger *zap.SugaredLogger) []Definition {
	selected := make(map[string]bool)
	for _, req := range requested {
		req = strings.TrimSpace(strings.ToLower(req))
		switch {
		case req == "":
			continue
		case req == "all":
			for name := range r.defs {
				selected[name] = true
			}
		case req == string(CategoryAttack) || req == string(CategoryOps) || req == string(CategoryNetwork):
			for name, def := range r.defs {
				if def.Category == Category(req) {
					selected[name] = true
				}
			}
		default:
			if _, ok := r.defs[req]; !ok {
				logger.Warnw("Requested scenario not in registry, skipping",
					"scenario", req)
				continue
			}
			selected[req] = true
		}
	}

	var defs []Definition
	for name := range selected {
		def := r.defs[name]
		if !def.Enabled {
			continue
		}
		if !overlaps(def.Sources, sources) {
			continue
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Engines instantiates one engine per resolved definition. Each engine
// precomputes its cast at construction and is read-only afterwards.
func (r *Registry) Engines(defs []Definition, company *refdata.Company, seed int64) []Engine {
	engines := make([]Engine, 0, len(defs))
	for _, def := range defs {
		engines = append(engines, r.factories[def.Name](def, company, seed))
	}
	return engines
}

func overlaps(declared []core.SourceID, requested map[core.SourceID]bool) bool {
	for _, s := range declared {
		if requested[s] {
			return true
		}
	}
	return false
}

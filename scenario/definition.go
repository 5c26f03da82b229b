// Package scenario provides the declarative scenario registry and the engine
// instances that inject causally ordered, cross-source anomalous events into
// baseline traffic. A scenario is pure data (Definition) until it is resolved
// for a run, at which point one Engine is constructed per active scenario.
package scenario

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"stagehand/core"
)

// Category groups scenarios for the CLI shortcuts attack/ops/network.
type Category string

const (
	CategoryAttack  Category = "attack"
	CategoryOps     Category = "ops"
	CategoryNetwork Category = "network"
)

// Definition declares one scenario: which sources it touches, when it is
// active, and the correlation tag stamped on every event it produces.
type Definition struct {
	Name           string          `yaml:"name" validate:"required"`
	Title          string          `yaml:"title"`
	Category       Category        `yaml:"category" validate:"required,oneof=attack ops network"`
	Sources        []core.SourceID `yaml:"sources" validate:"required,min=1"`
	CorrelationTag string          `yaml:"correlation_tag" validate:"required"`
	StartDay       int             `yaml:"start_day" validate:"min=0"`
	EndDay         int             `yaml:"end_day" validate:"min=0,gtefield=StartDay"`
	Enabled        bool            `yaml:"enabled"`
}

var validate = validator.New()

// Validate checks the definition invariants. Violations are reported as
// ErrInvalidScenario with field detail.
func (d Definition) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidScenario, d.Name, err)
	}
	for _, src := range d.Sources {
		if !core.ValidSource(src) {
			return fmt.Errorf("%w: %s: unknown source %q", ErrInvalidScenario, d.Name, src)
		}
	}
	return nil
}

// Touches reports whether the scenario declares the given source.
func (d Definition) Touches(src core.SourceID) bool {
	for _, s := range d.Sources {
		if s == src {
			return true
		}
	}
	return false
}

// ActiveOn reports whether day falls inside the scenario's declared window.
func (d Definition) ActiveOn(day int) bool {
	return day >= d.StartDay && day <= d.EndDay
}

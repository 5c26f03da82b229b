package scenario

import "errors"

// Scenario registry error constants
var (
	// ErrDuplicateScenario is returned when a definition name is already
	// registered. The first registration is left intact.
	ErrDuplicateScenario = errors.New("scenario already registered")

	// ErrInvalidScenario is returned when a definition violates its
	// invariants (empty sources, start day after end day, bad category).
	ErrInvalidScenario = errors.New("invalid scenario definition")

	// ErrScenarioNotFound is returned when an override names a scenario that
	// is not in the registry.
	ErrScenarioNotFound = errors.New("scenario not found")
)

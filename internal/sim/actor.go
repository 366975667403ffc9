package sim

import (
	"hordehouse/sim/config"
	"hordehouse/sim/internal/behavior"
)

// Actor is one simulated enemy combatant. The behavior state is fully
// initialised at spawn; an inactive actor is excluded from every system
// and never mutated again — the host removes it via Compact.
type Actor struct {
	ID    string
	Class *config.ActorClass
	Kind  behavior.Kind

	behavior.State

	Health float64
	Active bool
}

package sim

import (
	"math/rand"
	"time"

	"hordehouse/sim/internal/collision"
	"hordehouse/sim/internal/geom"
	"hordehouse/sim/internal/projectile"
	"hordehouse/sim/logging"
)

// Deps bundles the collaborators the simulation consumes but does not
// own: player position, visibility, the static environment, visual
// attach/detach hooks, and the ambient services. Every hook is optional;
// missing ones are replaced with safe defaults at construction.
type Deps struct {
	// PlayerPos returns the player's floor-plane position this frame.
	PlayerPos func() geom.Vec2

	// HasLineOfSight answers the visibility query between two floor
	// points. Defaults to always-visible.
	HasLineOfSight func(fromX, fromZ, toX, toZ float64) bool

	// Obstacles and Furniture return read-only snapshots of the static
	// environment footprints.
	Obstacles func() []collision.Circle
	Furniture func() []geom.AABB

	// AttachVisual returns the opaque render handle for a freshly
	// spawned projectile; DetachVisual releases it on despawn. The
	// handles carry no simulation semantics.
	AttachVisual func(p *projectile.Projectile) any
	DetachVisual func(visual any)

	Publisher logging.Publisher
	Clock     logging.Clock
	RNG       *rand.Rand
}

func (d Deps) withDefaults() Deps {
	if d.PlayerPos == nil {
		d.PlayerPos = func() geom.Vec2 { return geom.Vec2{} }
	}
	if d.HasLineOfSight == nil {
		d.HasLineOfSight = func(fromX, fromZ, toX, toZ float64) bool { return true }
	}
	if d.Obstacles == nil {
		d.Obstacles = func() []collision.Circle { return nil }
	}
	if d.Furniture == nil {
		d.Furniture = func() []geom.AABB { return nil }
	}
	if d.AttachVisual == nil {
		d.AttachVisual = func(*projectile.Projectile) any { return nil }
	}
	if d.DetachVisual == nil {
		d.DetachVisual = func(any) {}
	}
	if d.Publisher == nil {
		d.Publisher = logging.NopPublisher()
	}
	if d.Clock == nil {
		d.Clock = logging.SystemClock{}
	}
	if d.RNG == nil {
		d.RNG = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return d
}

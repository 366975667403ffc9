// Package sim owns the world state and drives one simulation frame in
// a fixed order: behavior, collision, projectiles, effect expiry. The
// spawn gate exposes its decisions to the host, which instantiates
// whatever the gate authorizes.
package sim

import (
	"context"
	"fmt"
	"time"

	"hordehouse/sim/config"
	"hordehouse/sim/internal/behavior"
	"hordehouse/sim/internal/collision"
	"hordehouse/sim/internal/effects"
	"hordehouse/sim/internal/geom"
	"hordehouse/sim/internal/projectile"
	"hordehouse/sim/internal/spawn"
	"hordehouse/sim/logging"
)

// World owns the actor set and the component instances. All mutation
// happens on the frame goroutine; collaborators receive read-only
// snapshots.
type World struct {
	catalog config.Catalog
	deps    Deps

	engine      *behavior.Engine
	projectiles *projectile.Simulator
	ledger      *effects.Ledger
	gate        *spawn.Gate

	actors      []*Actor
	nextActorID uint64

	tick        uint64
	score       int
	pickupsLive int
	paused      bool
}

// NewWorld validates the catalog and wires the components.
func NewWorld(catalog config.Catalog, deps Deps) (*World, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	deps = deps.withDefaults()

	w := &World{
		catalog: catalog,
		deps:    deps,
		engine:  behavior.NewEngine(deps.RNG),
		gate:    spawn.NewGate(catalog.Spawn, deps.RNG),
	}
	w.ledger = effects.NewLedger(&w.catalog)
	w.projectiles = projectile.NewSimulator(&w.catalog, deps.DetachVisual)
	return w, nil
}

// SpawnActor creates an actor of the named class at pos, with home
// fixed to the spawn position. Unknown class names fall back to the
// baseline class; a bad spawn request never fails.
func (w *World) SpawnActor(className string, pos geom.Vec2) *Actor {
	class := w.catalog.ClassByName(className)
	if class == nil {
		class = w.catalog.ClassByName(w.catalog.Spawn.BaselineClass)
	}
	if class == nil {
		return nil
	}

	w.nextActorID++
	actor := &Actor{
		ID:     fmt.Sprintf("actor-%d", w.nextActorID),
		Class:  class,
		Kind:   behavior.KindFromName(class.Behavior),
		State:  behavior.NewState(pos),
		Health: class.MaxHealth,
		Active: true,
	}
	w.actors = append(w.actors, actor)

	w.publish(logging.Event{
		Type:     logging.EventActorSpawned,
		Actor:    logging.EntityRef{ID: actor.ID, Kind: logging.EntityKindActor},
		Severity: logging.SeverityInfo,
		Payload:  map[string]any{"class": class.Name, "x": pos.X, "z": pos.Z},
	})
	return actor
}

// SpawnAuthorized consults the spawn gate for the current score and
// spawns the authorized tier at pos.
func (w *World) SpawnAuthorized(pos geom.Vec2) *Actor {
	tier := w.gate.NextTier(w.score)
	if tier == spawn.TierBoss {
		w.publish(logging.Event{
			Type:     logging.EventEscalation,
			Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
			Severity: logging.SeverityInfo,
			Payload:  map[string]any{"score": w.score, "escalated": w.gate.Escalated()},
		})
	}
	return w.SpawnActor(w.gate.ClassForTier(tier), pos)
}

// Step advances one frame. The frame delta is assumed to be clamped by
// the host loop. Ordering: behavior output feeds the collision resolver
// before positions are final, then projectiles advance against the
// settled positions, then stale effects expire.
func (w *World) Step(now time.Time, dt float64) {
	if w.paused {
		return
	}
	w.tick++

	player := w.deps.PlayerPos()
	obstacles := w.deps.Obstacles()
	furniture := w.deps.Furniture()

	w.stepActors(player, obstacles, furniture, dt)
	w.resolveActorPenetration(obstacles, furniture)
	w.despawnFarActors(player)

	viewer := geom.Vec3{X: player.X, Z: player.Z}
	w.projectiles.Advance(now, dt, viewer)
	w.resolveProjectileImpacts()

	for _, typ := range w.ledger.Update(now) {
		w.publish(logging.Event{
			Type:     logging.EventEffectExpired,
			Actor:    logging.EntityRef{ID: typ, Kind: logging.EntityKindEffect},
			Severity: logging.SeverityDebug,
		})
	}
}

// stepActors runs the behavior engine per actor, verifies the tentative
// move per axis, reverts blocked axes, and commits.
func (w *World) stepActors(player geom.Vec2, obstacles []collision.Circle, furniture []geom.AABB, dt float64) {
	for _, actor := range w.actors {
		if !actor.Active {
			continue
		}
		visible := w.deps.HasLineOfSight(actor.Pos.X, actor.Pos.Z, player.X, player.Z)
		in := behavior.Input{PlayerPos: player, Visible: visible}

		tentative := w.engine.Step(&actor.State, actor.Class, actor.Kind, in, dt)
		blockedX, blockedZ := collision.CheckMove(tentative, actor.Pos, actor.Class.Radius, obstacles, furniture)
		if blockedX {
			tentative.X = actor.Pos.X
		}
		if blockedZ {
			tentative.Z = actor.Pos.Z
		}
		w.engine.ReportBlocked(&actor.State, actor.Class, actor.Kind, blockedX, blockedZ)
		actor.Pos = tentative
	}
}

// resolveActorPenetration corrects any remaining overlap. Each actor
// resolves itself against the others; furniture is applied last and is
// authoritative.
func (w *World) resolveActorPenetration(obstacles []collision.Circle, furniture []geom.AABB) {
	for _, actor := range w.actors {
		if !actor.Active {
			continue
		}
		others := make([]collision.Body, 0, len(w.actors)-1)
		for _, other := range w.actors {
			if other == actor || !other.Active {
				continue
			}
			others = append(others, collision.Body{Pos: other.Pos, Radius: other.Class.Radius})
		}
		body := collision.Body{Pos: actor.Pos, Radius: actor.Class.Radius}
		collision.Resolve(&body, others, obstacles, furniture)
		actor.Pos = body.Pos
	}
}

// despawnFarActors deactivates actors beyond the despawn distance from
// the player. The host removes them via Compact.
func (w *World) despawnFarActors(player geom.Vec2) {
	limit := w.catalog.World.DespawnDist
	if limit <= 0 {
		return
	}
	for _, actor := range w.actors {
		if !actor.Active {
			continue
		}
		if geom.DistSq(actor.Pos, player) > limit*limit {
			actor.Active = false
			w.publish(logging.Event{
				Type:     logging.EventActorDespawned,
				Actor:    logging.EntityRef{ID: actor.ID, Kind: logging.EntityKindActor},
				Severity: logging.SeverityDebug,
			})
		}
	}
}

// resolveProjectileImpacts scans live projectiles against active
// actors. The simulator only answers the distance predicate; the world
// owns the iteration and the damage application.
func (w *World) resolveProjectileImpacts() {
	w.projectiles.ForEach(func(p *projectile.Projectile) {
		for _, actor := range w.actors {
			if !actor.Active {
				continue
			}
			target := geom.Vec3{X: actor.Pos.X, Z: actor.Pos.Z}
			if !w.projectiles.Hit(p, target, actor.Class.Radius) {
				continue
			}
			w.publish(logging.Event{
				Type:     logging.EventProjectileHit,
				Actor:    logging.EntityRef{ID: actor.ID, Kind: logging.EntityKindActor},
				Severity: logging.SeverityDebug,
				Payload:  map[string]any{"projectile": p.Type.Name, "damage": p.Damage},
			})
			w.DamageActor(actor.ID, p.Damage)
			w.projectiles.ReportHit(p)
			if !p.Active {
				break
			}
		}
	})
}

// FireProjectile spawns a projectile of the named type and attaches its
// visual handle. Unknown type names fall back to the default type.
func (w *World) FireProjectile(typeName string, pos, dir geom.Vec3) *projectile.Projectile {
	now := w.deps.Clock.Now()
	p := w.projectiles.Spawn(typeName, pos, dir, nil, now)
	if p == nil {
		return nil
	}
	p.Visual = w.deps.AttachVisual(p)
	return p
}

// DamageActor applies damage and deactivates the actor at zero health.
// It reports whether the actor was defeated by this call.
func (w *World) DamageActor(id string, amount float64) bool {
	for _, actor := range w.actors {
		if actor.ID != id || !actor.Active {
			continue
		}
		actor.Health -= amount
		if actor.Health > 0 {
			return false
		}
		actor.Health = 0
		actor.Active = false
		w.publish(logging.Event{
			Type:     logging.EventActorDefeated,
			Actor:    logging.EntityRef{ID: actor.ID, Kind: logging.EntityKindActor},
			Severity: logging.SeverityInfo,
			Payload:  map[string]any{"class": actor.Class.Name},
		})
		return true
	}
	return false
}

// ActivateEffect starts or refreshes a timed effect. Unknown types are
// a silent no-op.
func (w *World) ActivateEffect(typ string) {
	now := w.deps.Clock.Now()
	w.ledger.Activate(typ, now)
	if w.ledger.IsActive(typ) {
		w.publish(logging.Event{
			Type:     logging.EventEffectActivated,
			Actor:    logging.EntityRef{ID: typ, Kind: logging.EntityKindEffect},
			Severity: logging.SeverityDebug,
		})
	}
}

// Pause freezes the frame clock's effect on timed buffs. Step becomes a
// no-op until Resume.
func (w *World) Pause() {
	if w.paused {
		return
	}
	w.paused = true
	w.ledger.Pause(w.deps.Clock.Now())
}

// Resume re-derives effect expiries so the paused interval never counts
// against effect duration.
func (w *World) Resume() {
	if !w.paused {
		return
	}
	w.paused = false
	w.ledger.Resume(w.deps.Clock.Now())
}

// Paused reports whether the simulation is paused.
func (w *World) Paused() bool {
	return w.paused
}

// TrySpawnPickup consults the pickup gate and, when it passes, counts
// the new pickup as live. The host instantiates the pickup itself.
func (w *World) TrySpawnPickup() bool {
	if !w.gate.AllowPickup(w.deps.Clock.Now(), w.pickupsLive) {
		return false
	}
	w.pickupsLive++
	return true
}

// PickupRemoved tells the gate a live pickup left the field.
func (w *World) PickupRemoved() {
	if w.pickupsLive > 0 {
		w.pickupsLive--
	}
}

// AddScore feeds the scoring collaborator's points into the spawn
// gate's escalation input.
func (w *World) AddScore(points int) {
	if points > 0 {
		w.score += points
	}
}

// Score returns the accumulated score.
func (w *World) Score() int {
	return w.score
}

// Tick returns the frame counter.
func (w *World) Tick() uint64 {
	return w.tick
}

// Effects exposes the ledger for read-only effect queries.
func (w *World) Effects() *effects.Ledger {
	return w.ledger
}

// Projectiles exposes the simulator for read-only iteration.
func (w *World) Projectiles() *projectile.Simulator {
	return w.projectiles
}

// ActorByID returns the actor with the given id, active or not.
func (w *World) ActorByID(id string) *Actor {
	for _, actor := range w.actors {
		if actor.ID == id {
			return actor
		}
	}
	return nil
}

// ForEachActor visits every actor, including inactive ones awaiting
// removal.
func (w *World) ForEachActor(fn func(*Actor)) {
	for _, actor := range w.actors {
		fn(actor)
	}
}

// Compact removes inactive actors from the live set.
func (w *World) Compact() {
	kept := w.actors[:0]
	for _, actor := range w.actors {
		if actor.Active {
			kept = append(kept, actor)
		}
	}
	for i := len(kept); i < len(w.actors); i++ {
		w.actors[i] = nil
	}
	w.actors = kept
}

func (w *World) publish(event logging.Event) {
	event.Tick = w.tick
	event.Time = w.deps.Clock.Now()
	w.deps.Publisher.Publish(context.Background(), event)
}

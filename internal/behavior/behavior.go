// Package behavior selects and executes a per-actor movement behavior
// each frame. The active state is fixed per actor class; execution
// branches on a line-of-sight boolean supplied by the caller. The
// engine computes tentative positions only — the caller resolves
// collisions and feeds blocked axes back through ReportBlocked.
package behavior

import (
	"math"
	"math/rand"

	"hordehouse/sim/config"
	"hordehouse/sim/internal/geom"
)

// Kind is the closed set of behavior variants.
type Kind uint8

const (
	KindStationary Kind = iota
	KindChase
	KindFlee
	KindPatrol
)

// KindFromName maps a class behavior name to its variant. Unknown names
// fall back to the stationary variant rather than failing.
func KindFromName(name string) Kind {
	switch name {
	case "chase":
		return KindChase
	case "flee":
		return KindFlee
	case "patrol":
		return KindPatrol
	case "stationary":
		return KindStationary
	default:
		return KindStationary
	}
}

// String returns the behavior name.
func (k Kind) String() string {
	switch k {
	case KindChase:
		return "chase"
	case KindFlee:
		return "flee"
	case KindPatrol:
		return "patrol"
	default:
		return "stationary"
	}
}

// State is the per-actor mutable runtime record. Every field is
// initialised at spawn; none begins undefined.
type State struct {
	Pos  geom.Vec2
	Home geom.Vec2

	LastSeen      geom.Vec2
	LastSeenValid bool

	// Timers, in seconds of accumulated frame delta.
	LostSightFor float64
	WanderFor    float64
	BlockedFor   float64
	DriftFor     float64
	PatrolFor    float64

	WanderDir      geom.Vec2
	WanderDirValid bool
	DriftDir       geom.Vec2
}

// NewState returns a fully-initialised record for an actor spawning at
// pos. Home is fixed to the spawn position.
func NewState(pos geom.Vec2) State {
	return State{Pos: pos, Home: pos}
}

// Input is the per-frame view of the environment a behavior consumes.
type Input struct {
	PlayerPos geom.Vec2
	Visible   bool
}

// Engine executes behaviors. The random source is injected so tests can
// seed it deterministically.
type Engine struct {
	rng *rand.Rand
}

// NewEngine builds an engine around the provided random source. A nil
// source falls back to a fixed-seed generator.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Engine{rng: rng}
}

// Step advances the actor's timers and computes a tentative new
// position for this frame. The caller is expected to collision-check
// the result, revert blocked axes, call ReportBlocked, and only then
// commit the position back into st.Pos.
func (e *Engine) Step(st *State, class *config.ActorClass, kind Kind, in Input, dt float64) geom.Vec2 {
	if st == nil || class == nil {
		return geom.Vec2{}
	}

	if in.Visible {
		st.LastSeen = in.PlayerPos
		st.LastSeenValid = true
		st.LostSightFor = 0
	} else {
		st.LostSightFor += dt
	}
	if st.BlockedFor > 0 {
		st.BlockedFor = math.Max(0, st.BlockedFor-dt)
	}

	var next geom.Vec2
	switch kind {
	case KindChase:
		next = e.stepChase(st, class, in, dt)
	case KindFlee:
		next = e.stepFlee(st, class, in, dt)
	case KindPatrol:
		next = e.stepPatrol(st, class, dt)
	default:
		next = st.Pos
	}

	// While the player is visible, every behavior picks up a small
	// random horizontal drift so chase paths stay unpredictable.
	if in.Visible && class.DriftScale > 0 {
		st.DriftFor += dt
		if st.DriftDir.IsZero() || st.DriftFor >= class.DriftInterval {
			st.DriftDir = e.randomUnitDir()
			st.DriftFor = 0
		}
		next = next.Add(st.DriftDir.Scale(class.Speed * class.DriftScale * dt))
	}

	return next
}

func (e *Engine) stepChase(st *State, class *config.ActorClass, in Input, dt float64) geom.Vec2 {
	if in.Visible {
		if geom.DistSq(st.Pos, in.PlayerPos) <= class.Deadband*class.Deadband {
			// Inside the deadband: hold position to avoid jitter.
			return st.Pos
		}
		dir := in.PlayerPos.Sub(st.Pos).Normalize()
		if dir.IsZero() {
			return st.Pos
		}
		return st.Pos.Add(dir.Scale(class.Speed * dt))
	}

	if st.LastSeenValid && st.LostSightFor < class.MemoryTime {
		dir := st.LastSeen.Sub(st.Pos).Normalize()
		if dir.IsZero() {
			return st.Pos
		}
		return st.Pos.Add(dir.Scale(class.Speed * class.SearchScale * dt))
	}

	return e.stepWander(st, class, dt)
}

// stepWander is the shared fall-through behavior. Priority order:
// steering home overrides everything, then an occasional redirect
// toward the last-seen player position, then a persisted random
// heading.
func (e *Engine) stepWander(st *State, class *config.ActorClass, dt float64) geom.Vec2 {
	if class.HomeRadius > 0 && geom.DistSq(st.Pos, st.Home) > class.HomeRadius*class.HomeRadius {
		dir := st.Home.Sub(st.Pos).Normalize()
		if dir.IsZero() {
			return st.Pos
		}
		return st.Pos.Add(dir.Scale(class.Speed * class.WanderScale * dt))
	}

	st.WanderFor += dt

	if st.LastSeenValid && e.rng.Float64() < class.RedirectChance*dt {
		if geom.DistSq(st.Pos, st.LastSeen) > class.RedirectMinDist*class.RedirectMinDist {
			dir := st.LastSeen.Sub(st.Pos).Normalize()
			if !dir.IsZero() {
				st.WanderDir = dir
				st.WanderDirValid = true
				st.WanderFor = 0
			}
		}
	}

	if !st.WanderDirValid || st.WanderFor >= class.WanderInterval {
		st.WanderDir = e.randomUnitDir()
		st.WanderDirValid = true
		st.WanderFor = 0
	}

	return st.Pos.Add(st.WanderDir.Scale(class.Speed * class.WanderScale * dt))
}

func (e *Engine) stepFlee(st *State, class *config.ActorClass, in Input, dt float64) geom.Vec2 {
	// A recent wall hit while fleeing means the direct escape route is
	// blocked; wander until the timer clears instead of re-ramming it.
	if st.BlockedFor > 0 {
		return e.stepWander(st, class, dt)
	}

	distSq := geom.DistSq(st.Pos, in.PlayerPos)
	if distSq > class.FleeStopDist*class.FleeStopDist {
		return e.stepWander(st, class, dt)
	}

	dir := st.Pos.Sub(in.PlayerPos).Normalize()
	if dir.IsZero() {
		return st.Pos
	}
	scale := class.FleeScale
	if distSq < class.PanicDist*class.PanicDist {
		scale *= class.PanicScale
	}
	return st.Pos.Add(dir.Scale(class.Speed * scale * dt))
}

func (e *Engine) stepPatrol(st *State, class *config.ActorClass, dt float64) geom.Vec2 {
	st.PatrolFor += dt
	sign := 1.0
	if math.Sin(st.PatrolFor*class.PatrolRate) < 0 {
		sign = -1.0
	}
	return geom.Vec2{X: st.Pos.X + sign*class.Speed*dt, Z: st.Pos.Z}
}

// ReportBlocked feeds collision results back into the actor's state.
// Fleeing actors start their blocked timer; persisted wander and drift
// headings are reflected on blocked axes so the actor stops pushing
// into the same surface.
func (e *Engine) ReportBlocked(st *State, class *config.ActorClass, kind Kind, blockedX, blockedZ bool) {
	if st == nil || class == nil || (!blockedX && !blockedZ) {
		return
	}
	if kind == KindFlee {
		st.BlockedFor = class.BlockedTime
	}
	if blockedX {
		st.WanderDir.X = -st.WanderDir.X
		st.DriftDir.X = -st.DriftDir.X
	}
	if blockedZ {
		st.WanderDir.Z = -st.WanderDir.Z
		st.DriftDir.Z = -st.DriftDir.Z
	}
}

func (e *Engine) randomUnitDir() geom.Vec2 {
	angle := e.rng.Float64() * 2 * math.Pi
	return geom.Vec2{X: math.Cos(angle), Z: math.Sin(angle)}
}

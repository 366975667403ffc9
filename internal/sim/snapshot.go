package sim

import (
	"time"

	"hordehouse/sim/internal/effects"
	"hordehouse/sim/internal/projectile"
)

// Snapshot is the read-only frame state handed to rendering and scoring
// collaborators. Positions are final for the frame: the snapshot is
// taken only after collision resolution has settled them.
type Snapshot struct {
	Tick        uint64               `json:"tick"`
	Score       int                  `json:"score"`
	Paused      bool                 `json:"paused"`
	Actors      []ActorSnapshot      `json:"actors"`
	Projectiles []ProjectileSnapshot `json:"projectiles"`
	Effects     []EffectSnapshot     `json:"effects"`
}

type ActorSnapshot struct {
	ID        string  `json:"id"`
	Class     string  `json:"class"`
	X         float64 `json:"x"`
	Z         float64 `json:"z"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Active    bool    `json:"active"`
}

type ProjectileSnapshot struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

type EffectSnapshot struct {
	Type      string        `json:"type"`
	Remaining time.Duration `json:"remaining"`
	Magnitude float64       `json:"magnitude"`
}

// Snapshot captures the current frame state.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   w.tick,
		Score:  w.score,
		Paused: w.paused,
	}

	snap.Actors = make([]ActorSnapshot, 0, len(w.actors))
	for _, actor := range w.actors {
		snap.Actors = append(snap.Actors, ActorSnapshot{
			ID:        actor.ID,
			Class:     actor.Class.Name,
			X:         actor.Pos.X,
			Z:         actor.Pos.Z,
			Health:    actor.Health,
			MaxHealth: actor.Class.MaxHealth,
			Active:    actor.Active,
		})
	}

	snap.Projectiles = make([]ProjectileSnapshot, 0, w.projectiles.Len())
	w.projectiles.ForEach(func(p *projectile.Projectile) {
		snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{
			Type: p.Type.Name,
			X:    p.Pos.X,
			Y:    p.Pos.Y,
			Z:    p.Pos.Z,
		})
	})

	now := w.deps.Clock.Now()
	w.ledger.ForEach(func(inst *effects.ActiveEffect) {
		snap.Effects = append(snap.Effects, EffectSnapshot{
			Type:      inst.Type,
			Remaining: w.ledger.Remaining(inst.Type, now),
			Magnitude: inst.Def.Magnitude,
		})
	})

	return snap
}

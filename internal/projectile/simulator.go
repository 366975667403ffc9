// Package projectile owns the live projectile set: spawning under a
// hard capacity, per-frame integration with optional gravity arcs,
// despawn bookkeeping, and hit reporting. Target iteration stays with
// the caller; the simulator only answers the distance predicate.
package projectile

import (
	"time"

	"hordehouse/sim/config"
	"hordehouse/sim/internal/geom"
)

// Projectile is one live body. Visual is an opaque handle owned by the
// rendering collaborator; the simulator only carries it back through
// the detach hook.
type Projectile struct {
	Type      *config.ProjectileType
	Pos       geom.Vec3
	Dir       geom.Vec3
	Speed     float64
	Damage    float64
	SpawnedAt time.Time
	Active    bool
	Visual    any
}

// Simulator holds the live set in spawn order so capacity eviction is
// strictly FIFO.
type Simulator struct {
	live     []*Projectile
	capacity int
	catalog  *config.Catalog
	detach   func(visual any)
}

// NewSimulator builds a simulator over the catalog's projectile types.
// The detach hook is invoked once per despawned projectile; nil is
// allowed.
func NewSimulator(catalog *config.Catalog, detach func(visual any)) *Simulator {
	capacity := catalog.World.MaxProjectiles
	if capacity <= 0 {
		capacity = 1
	}
	if detach == nil {
		detach = func(any) {}
	}
	return &Simulator{
		live:     make([]*Projectile, 0, capacity),
		capacity: capacity,
		catalog:  catalog,
		detach:   detach,
	}
}

// Spawn creates a projectile of the named type. Unknown type names fall
// back to the catalog's default type; a bad spawn request never fails.
// Spawning at capacity evicts the oldest live projectile.
func (s *Simulator) Spawn(typeName string, pos, dir geom.Vec3, visual any, now time.Time) *Projectile {
	typ := s.catalog.ProjectileByName(typeName)
	if typ == nil {
		typ = s.catalog.ProjectileByName(s.catalog.DefaultProjectile)
	}
	if typ == nil {
		return nil
	}

	if len(s.live) >= s.capacity {
		s.compact()
	}
	if len(s.live) >= s.capacity {
		oldest := s.live[0]
		s.live = s.live[1:]
		s.retire(oldest)
	}

	p := &Projectile{
		Type:      typ,
		Pos:       pos,
		Dir:       dir,
		Speed:     typ.Speed,
		Damage:    typ.Damage,
		SpawnedAt: now,
		Active:    true,
		Visual:    visual,
	}
	s.live = append(s.live, p)
	return p
}

// Advance integrates every live projectile exactly once and despawns
// those that exceeded a bound or their lifetime. The viewer position
// feeds the distance-from-viewer despawn check.
func (s *Simulator) Advance(now time.Time, dt float64, viewer geom.Vec3) {
	bounds := s.catalog.World
	kept := s.live[:0]
	for _, p := range s.live {
		if !p.Active {
			continue
		}

		if p.Type.Gravity > 0 {
			p.Dir.Y -= p.Type.Gravity * dt
		}
		p.Pos.X += p.Dir.X * p.Speed * dt
		p.Pos.Y += p.Dir.Y * p.Speed * dt
		p.Pos.Z += p.Dir.Z * p.Speed * dt

		if s.expired(p, now, viewer, bounds) {
			s.retire(p)
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(s.live); i++ {
		s.live[i] = nil
	}
	s.live = kept
}

func (s *Simulator) expired(p *Projectile, now time.Time, viewer geom.Vec3, bounds config.WorldConfig) bool {
	halfW := bounds.Width / 2
	halfD := bounds.Depth / 2
	if p.Pos.X < -halfW || p.Pos.X > halfW || p.Pos.Z < -halfD || p.Pos.Z > halfD {
		return true
	}
	if p.Pos.Y < bounds.ProjectileMinY || p.Pos.Y > bounds.ProjectileMaxY {
		return true
	}
	if geom.DistSq3(p.Pos, viewer) > bounds.ProjectileMaxDist*bounds.ProjectileMaxDist {
		return true
	}
	if now.Sub(p.SpawnedAt) >= p.Type.Lifetime {
		return true
	}
	return false
}

// Hit reports whether the projectile is within radius of the target.
// Scanning candidate targets is the caller's job.
func (s *Simulator) Hit(p *Projectile, target geom.Vec3, radius float64) bool {
	if p == nil || !p.Active {
		return false
	}
	return geom.DistSq3(p.Pos, target) < radius*radius
}

// ReportHit despawns the projectile after a confirmed hit unless its
// type pierces, in which case it stays live for further targets. The
// retired entry leaves the slice on the next compaction so callers may
// report hits while iterating.
func (s *Simulator) ReportHit(p *Projectile) {
	if p == nil || !p.Active || p.Type.Piercing {
		return
	}
	s.retire(p)
}

func (s *Simulator) retire(p *Projectile) {
	if p == nil || !p.Active {
		return
	}
	p.Active = false
	s.detach(p.Visual)
}

// compact drops retired entries from the slice.
func (s *Simulator) compact() {
	kept := s.live[:0]
	for _, p := range s.live {
		if p.Active {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(s.live); i++ {
		s.live[i] = nil
	}
	s.live = kept
}

// ForEach visits every live projectile in spawn order.
func (s *Simulator) ForEach(fn func(*Projectile)) {
	for _, p := range s.live {
		if p.Active {
			fn(p)
		}
	}
}

// Len reports the live projectile count.
func (s *Simulator) Len() int {
	count := 0
	for _, p := range s.live {
		if p.Active {
			count++
		}
	}
	return count
}

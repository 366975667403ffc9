// Package layout scatters static blockers across the arena floor:
// circular pillars and box-shaped furniture. It also answers
// line-of-sight queries against the pillar set.
package layout

import (
	"math/rand"

	"hordehouse/sim/config"
	"hordehouse/sim/internal/collision"
	"hordehouse/sim/internal/geom"
)

const (
	pillarMinRadius = 0.4
	pillarMaxRadius = 1.2

	furnitureMinSize = 0.8
	furnitureMaxSize = 2.4

	spawnMargin     = 1.5
	spawnSafeRadius = 4.0

	placementAttempts = 20
)

// Layout holds the static blockers for one arena.
type Layout struct {
	Pillars   []collision.Circle
	Furniture []geom.AABB
}

// Generate scatters pillars and furniture inside the world bounds,
// keeping a safe radius around the origin clear for the player spawn.
func Generate(world config.WorldConfig, pillarCount, furnitureCount int, rng *rand.Rand) *Layout {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	l := &Layout{}

	halfW := world.Width/2 - spawnMargin
	halfD := world.Depth/2 - spawnMargin
	if halfW <= 0 || halfD <= 0 {
		return l
	}

	attempts := 0
	for len(l.Pillars) < pillarCount && attempts < pillarCount*placementAttempts {
		attempts++
		radius := pillarMinRadius + rng.Float64()*(pillarMaxRadius-pillarMinRadius)
		pos := geom.Vec2{
			X: -halfW + rng.Float64()*2*halfW,
			Z: -halfD + rng.Float64()*2*halfD,
		}
		candidate := collision.Circle{Pos: pos, Radius: radius}

		if pos.Length() < spawnSafeRadius+radius {
			continue
		}
		if l.overlapsPillar(pos, radius) {
			continue
		}
		l.Pillars = append(l.Pillars, candidate)
	}

	attempts = 0
	for len(l.Furniture) < furnitureCount && attempts < furnitureCount*placementAttempts {
		attempts++
		width := furnitureMinSize + rng.Float64()*(furnitureMaxSize-furnitureMinSize)
		depth := furnitureMinSize + rng.Float64()*(furnitureMaxSize-furnitureMinSize)
		center := geom.Vec2{
			X: -halfW + rng.Float64()*2*halfW,
			Z: -halfD + rng.Float64()*2*halfD,
		}
		box := geom.AABBFromCenter(center, width, depth)

		if center.Length() < spawnSafeRadius+width+depth {
			continue
		}
		if l.overlapsFurniture(box) || l.boxOverlapsPillar(box) {
			continue
		}
		l.Furniture = append(l.Furniture, box)
	}

	return l
}

func (l *Layout) overlapsPillar(pos geom.Vec2, radius float64) bool {
	for _, p := range l.Pillars {
		limit := radius + p.Radius + spawnMargin
		if geom.DistSq(pos, p.Pos) < limit*limit {
			return true
		}
	}
	return false
}

func (l *Layout) overlapsFurniture(box geom.AABB) bool {
	for _, f := range l.Furniture {
		if box.Overlaps(f) {
			return true
		}
	}
	return false
}

func (l *Layout) boxOverlapsPillar(box geom.AABB) bool {
	for _, p := range l.Pillars {
		if box.CircleOverlaps(p.Pos, p.Radius+spawnMargin) {
			return true
		}
	}
	return false
}

// HasLineOfSight reports whether the segment between the two floor
// points crosses any pillar. Furniture is low and never blocks sight.
func (l *Layout) HasLineOfSight(fromX, fromZ, toX, toZ float64) bool {
	a := geom.Vec2{X: fromX, Z: fromZ}
	b := geom.Vec2{X: toX, Z: toZ}
	for _, p := range l.Pillars {
		if geom.SegmentIntersectsCircle(a, b, p.Pos, p.Radius) {
			return false
		}
	}
	return true
}

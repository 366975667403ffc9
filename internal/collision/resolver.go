// Package collision corrects interpenetration between moving actors,
// static circular obstacles, and static rectangular furniture. It is
// pure geometric correction: degenerate input no-ops, nothing errors.
package collision

import (
	"math"

	"hordehouse/sim/internal/geom"
)

// Body is the positional view of a moving actor.
type Body struct {
	Pos    geom.Vec2
	Radius float64
}

// Circle is a static circular obstacle footprint.
type Circle struct {
	Pos    geom.Vec2
	Radius float64
	Hit    bool
}

// Resolve pushes body out of every overlap. Ordering matters: actor
// separation first, then obstacles, then furniture, so furniture is
// authoritative over the earlier corrections.
func Resolve(body *Body, others []Body, obstacles []Circle, furniture []geom.AABB) {
	if body == nil {
		return
	}
	separateFromActors(body, others)
	pushOutOfObstacles(body, obstacles)
	pushOutOfFurniture(body, furniture)
}

// separateFromActors moves only the called body, applying half the
// overlap along the separation normal. The other body resolves itself
// on its own call, so dense clusters settle over several frames rather
// than in one pass.
func separateFromActors(body *Body, others []Body) {
	for _, other := range others {
		minDist := body.Radius + other.Radius
		distSq := geom.DistSq(body.Pos, other.Pos)
		if distSq >= minDist*minDist {
			continue
		}
		if distSq == 0 {
			// Coincident centers: no separation normal exists.
			continue
		}
		dist := math.Sqrt(distSq)
		overlap := (minDist - dist) / 2
		normal := body.Pos.Sub(other.Pos).Scale(1 / dist)
		body.Pos = body.Pos.Add(normal.Scale(overlap))
	}
}

// pushOutOfObstacles applies the full overlap along the normal, since
// obstacles are immovable.
func pushOutOfObstacles(body *Body, obstacles []Circle) {
	for _, obs := range obstacles {
		minDist := body.Radius + obs.Radius
		distSq := geom.DistSq(body.Pos, obs.Pos)
		if distSq >= minDist*minDist {
			continue
		}
		if distSq == 0 {
			continue
		}
		dist := math.Sqrt(distSq)
		overlap := minDist - dist
		normal := body.Pos.Sub(obs.Pos).Scale(1 / dist)
		body.Pos = body.Pos.Add(normal.Scale(overlap))
	}
}

// pushOutOfFurniture resolves rectangular footprints along whichever
// axis has the smaller penetration depth (single-axis MTV).
func pushOutOfFurniture(body *Body, furniture []geom.AABB) {
	for _, rect := range furniture {
		if !rect.CircleOverlaps(body.Pos, body.Radius) {
			continue
		}

		center := rect.Center()
		halfW := (rect.MaxX - rect.MinX) / 2
		halfD := (rect.MaxZ - rect.MinZ) / 2

		dx := body.Pos.X - center.X
		dz := body.Pos.Z - center.Z
		penX := halfW + body.Radius - math.Abs(dx)
		penZ := halfD + body.Radius - math.Abs(dz)
		if penX <= 0 || penZ <= 0 {
			continue
		}
		if dx == 0 && dz == 0 {
			// Exactly centered in the rect: no resolution direction.
			continue
		}

		if penX < penZ {
			if dx > 0 {
				body.Pos.X = rect.MaxX + body.Radius
			} else {
				body.Pos.X = rect.MinX - body.Radius
			}
		} else {
			if dz > 0 {
				body.Pos.Z = rect.MaxZ + body.Radius
			} else {
				body.Pos.Z = rect.MinZ - body.Radius
			}
		}
	}
}

// CheckMove tests a proposed move one axis at a time and reports which
// axes are blocked by obstacles or furniture. Callers revert the
// blocked axes before committing the move.
func CheckMove(newPos, oldPos geom.Vec2, radius float64, obstacles []Circle, furniture []geom.AABB) (blockedX, blockedZ bool) {
	alongX := geom.Vec2{X: newPos.X, Z: oldPos.Z}
	alongZ := geom.Vec2{X: oldPos.X, Z: newPos.Z}
	blockedX = positionBlocked(alongX, radius, obstacles, furniture)
	blockedZ = positionBlocked(alongZ, radius, obstacles, furniture)
	return blockedX, blockedZ
}

func positionBlocked(pos geom.Vec2, radius float64, obstacles []Circle, furniture []geom.AABB) bool {
	for _, obs := range obstacles {
		minDist := radius + obs.Radius
		if geom.DistSq(pos, obs.Pos) < minDist*minDist {
			return true
		}
	}
	for _, rect := range furniture {
		if rect.CircleOverlaps(pos, radius) {
			return true
		}
	}
	return false
}

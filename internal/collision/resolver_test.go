package collision

import (
	"math"
	"testing"

	"hordehouse/sim/internal/geom"
)

func TestResolve_NoOverlapIsIdempotent(t *testing.T) {
	body := Body{Pos: geom.Vec2{X: 1, Z: 1}, Radius: 0.5}
	others := []Body{{Pos: geom.Vec2{X: 5, Z: 5}, Radius: 0.5}}
	obstacles := []Circle{{Pos: geom.Vec2{X: -5}, Radius: 1}}
	furniture := []geom.AABB{geom.AABBFromCenter(geom.Vec2{Z: -5}, 1, 1)}

	before := body.Pos
	Resolve(&body, others, obstacles, furniture)
	if body.Pos != before {
		t.Fatalf("expected position unchanged, got %+v", body.Pos)
	}
}

func TestResolve_ActorSeparationIsHalfOverlap(t *testing.T) {
	body := Body{Pos: geom.Vec2{X: 0.6}, Radius: 0.5}
	others := []Body{{Pos: geom.Vec2{}, Radius: 0.5}}

	Resolve(&body, others, nil, nil)

	// Overlap is 0.4; only half is applied to the resolving body.
	if math.Abs(body.Pos.X-0.8) > 1e-9 {
		t.Fatalf("expected x=0.8 after half-overlap separation, got %g", body.Pos.X)
	}
}

func TestResolve_ObstaclePushOutIsFull(t *testing.T) {
	body := Body{Pos: geom.Vec2{X: 1.2}, Radius: 0.5}
	obstacles := []Circle{{Pos: geom.Vec2{}, Radius: 1}}

	Resolve(&body, nil, obstacles, nil)

	if math.Abs(body.Pos.X-1.5) > 1e-9 {
		t.Fatalf("expected full push-out to x=1.5, got %g", body.Pos.X)
	}
}

func TestResolve_CoincidentCentersNoOp(t *testing.T) {
	body := Body{Pos: geom.Vec2{X: 2, Z: 3}, Radius: 0.5}
	others := []Body{{Pos: geom.Vec2{X: 2, Z: 3}, Radius: 0.5}}

	Resolve(&body, others, nil, nil)

	if body.Pos.X != 2 || body.Pos.Z != 3 {
		t.Fatalf("expected coincident bodies to stay put, got %+v", body.Pos)
	}
}

func TestResolve_FurnitureResolvesAlongShallowAxis(t *testing.T) {
	rect := geom.AABBFromCenter(geom.Vec2{}, 2, 1)

	// Penetration is shallower along Z, so the correction is along Z.
	body := Body{Pos: geom.Vec2{X: 0.5, Z: 1.2}, Radius: 0.4}
	Resolve(&body, nil, nil, []geom.AABB{rect})

	if math.Abs(body.Pos.Z-1.4) > 1e-9 {
		t.Fatalf("expected z=1.4 after push-out, got %g", body.Pos.Z)
	}
	if body.Pos.X != 0.5 {
		t.Fatalf("expected x unchanged, got %g", body.Pos.X)
	}
}

func TestResolve_FurnitureOrderIsAuthoritative(t *testing.T) {
	// An obstacle correction shoves the body into the rect; the rect is
	// resolved last, so the final position is clear of it.
	rect := geom.AABBFromCenter(geom.Vec2{X: 3}, 1, 1)
	obstacles := []Circle{{Pos: geom.Vec2{}, Radius: 1}}
	body := Body{Pos: geom.Vec2{X: 1.1}, Radius: 0.5}

	Resolve(&body, nil, obstacles, []geom.AABB{rect})

	if rect.CircleOverlaps(body.Pos, body.Radius) {
		t.Fatalf("expected body clear of furniture, got %+v", body.Pos)
	}
}

func TestCheckMove_BlocksAxesIndependently(t *testing.T) {
	obstacles := []Circle{{Pos: geom.Vec2{X: 2}, Radius: 1}}
	old := geom.Vec2{}
	proposed := geom.Vec2{X: 1.2, Z: 1.2}

	blockedX, blockedZ := CheckMove(proposed, old, 0.5, obstacles, nil)
	if !blockedX {
		t.Fatalf("expected x axis blocked")
	}
	if blockedZ {
		t.Fatalf("expected z axis free")
	}
}

func TestCheckMove_FreeWhenClear(t *testing.T) {
	blockedX, blockedZ := CheckMove(geom.Vec2{X: 1}, geom.Vec2{}, 0.5, nil, nil)
	if blockedX || blockedZ {
		t.Fatalf("expected no blocking without blockers, got %v %v", blockedX, blockedZ)
	}
}

func TestResolve_ClusterOverlapShrinks(t *testing.T) {
	bodies := []Body{
		{Pos: geom.Vec2{X: 0.0}, Radius: 0.5},
		{Pos: geom.Vec2{X: 0.4}, Radius: 0.5},
		{Pos: geom.Vec2{X: 0.8}, Radius: 0.5},
	}

	prev := totalOverlap(bodies)
	for pass := 0; pass < 10; pass++ {
		for i := range bodies {
			others := make([]Body, 0, len(bodies)-1)
			for j := range bodies {
				if j != i {
					others = append(others, bodies[j])
				}
			}
			Resolve(&bodies[i], others, nil, nil)
		}
		current := totalOverlap(bodies)
		if current > prev+1e-9 {
			t.Fatalf("pass %d: overlap grew from %g to %g", pass, prev, current)
		}
		prev = current
	}

	if prev > 1e-6 {
		t.Fatalf("expected cluster to settle, residual overlap %g", prev)
	}
}

func totalOverlap(bodies []Body) float64 {
	total := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			minDist := bodies[i].Radius + bodies[j].Radius
			dist := geom.Dist(bodies[i].Pos, bodies[j].Pos)
			if dist < minDist {
				total += minDist - dist
			}
		}
	}
	return total
}

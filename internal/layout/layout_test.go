package layout

import (
	"math/rand"
	"testing"

	"hordehouse/sim/config"
	"hordehouse/sim/internal/collision"
	"hordehouse/sim/internal/geom"
)

func TestGenerate_KeepsSpawnAreaClear(t *testing.T) {
	world := config.Default().World
	arena := Generate(world, 20, 10, rand.New(rand.NewSource(3)))

	if len(arena.Pillars) == 0 {
		t.Fatalf("expected pillars to be placed")
	}
	for i, p := range arena.Pillars {
		if p.Pos.Length() < spawnSafeRadius {
			t.Fatalf("pillar %d inside the spawn safe radius at %+v", i, p.Pos)
		}
	}
	for i, f := range arena.Furniture {
		if f.Center().Length() < spawnSafeRadius {
			t.Fatalf("furniture %d inside the spawn safe radius", i)
		}
	}
}

func TestGenerate_StaysInsideBounds(t *testing.T) {
	world := config.Default().World
	arena := Generate(world, 20, 10, rand.New(rand.NewSource(3)))

	halfW := world.Width / 2
	halfD := world.Depth / 2
	for i, p := range arena.Pillars {
		if p.Pos.X < -halfW || p.Pos.X > halfW || p.Pos.Z < -halfD || p.Pos.Z > halfD {
			t.Fatalf("pillar %d outside world bounds at %+v", i, p.Pos)
		}
	}
}

func TestGenerate_DegenerateBounds(t *testing.T) {
	arena := Generate(config.WorldConfig{Width: 1, Depth: 1}, 5, 5, rand.New(rand.NewSource(3)))
	if len(arena.Pillars) != 0 || len(arena.Furniture) != 0 {
		t.Fatalf("expected empty layout for a world smaller than the margins")
	}
}

func TestHasLineOfSight(t *testing.T) {
	arena := &Layout{
		Pillars: []collision.Circle{{Pos: geom.Vec2{X: 5}, Radius: 1}},
	}

	if arena.HasLineOfSight(0, 0, 10, 0) {
		t.Fatalf("expected sight blocked by the pillar")
	}
	if !arena.HasLineOfSight(0, 0, 0, 10) {
		t.Fatalf("expected clear sight on the perpendicular line")
	}
	if !arena.HasLineOfSight(0, 3, 10, 3) {
		t.Fatalf("expected clear sight past the pillar's edge")
	}
}

package spawn

import (
	"math/rand"
	"testing"
	"time"

	"hordehouse/sim/config"
)

func testRules() config.SpawnRules {
	return config.Default().Spawn
}

func TestNextTier_OneBossPerThresholdCrossing(t *testing.T) {
	gate := NewGate(testRules(), rand.New(rand.NewSource(1)))

	steps := []struct {
		score int
		want  Tier
	}{
		{0, TierBaseline},
		{4999, TierBaseline},
		{5000, TierBoss},
		{5000, TierBaseline},
		{7000, TierBaseline},
		{10000, TierBoss},
		{10000, TierBaseline},
	}

	for i, step := range steps {
		if got := gate.NextTier(step.score); got != step.want {
			t.Fatalf("step %d: score %d expected %q, got %q", i, step.score, step.want, got)
		}
	}

	if gate.Escalated() != 2 {
		t.Fatalf("expected 2 escalations, got %d", gate.Escalated())
	}
}

func TestNextTier_SkippedThresholdsDrainOnePerCall(t *testing.T) {
	gate := NewGate(testRules(), rand.New(rand.NewSource(1)))

	// The score jumped three thresholds at once; each consultation
	// authorizes exactly one boss.
	for i := 0; i < 3; i++ {
		if got := gate.NextTier(15000); got != TierBoss {
			t.Fatalf("call %d: expected boss tier, got %q", i, got)
		}
	}
	if got := gate.NextTier(15000); got != TierBaseline {
		t.Fatalf("expected baseline once caught up, got %q", got)
	}
}

func TestClassForTier(t *testing.T) {
	rules := testRules()
	gate := NewGate(rules, rand.New(rand.NewSource(1)))

	if got := gate.ClassForTier(TierBoss); got != rules.BossClass {
		t.Fatalf("expected boss class %q, got %q", rules.BossClass, got)
	}
	if got := gate.ClassForTier(TierBaseline); got != rules.BaselineClass {
		t.Fatalf("expected baseline class %q, got %q", rules.BaselineClass, got)
	}
}

func TestAllowPickup_CapBlocks(t *testing.T) {
	rules := testRules()
	rules.PickupChance = 1.0
	gate := NewGate(rules, rand.New(rand.NewSource(1)))

	if gate.AllowPickup(time.Unix(100, 0), rules.PickupCap) {
		t.Fatalf("expected cap to block the pickup")
	}
}

func TestAllowPickup_IntervalThrottles(t *testing.T) {
	rules := testRules()
	rules.PickupChance = 1.0
	gate := NewGate(rules, rand.New(rand.NewSource(1)))
	t0 := time.Unix(100, 0)

	if !gate.AllowPickup(t0, 0) {
		t.Fatalf("expected first pickup allowed")
	}
	if gate.AllowPickup(t0.Add(time.Second), 0) {
		t.Fatalf("expected pickup throttled inside the interval")
	}
	later := t0.Add(time.Duration(rules.PickupInterval * float64(time.Second)))
	if !gate.AllowPickup(later, 0) {
		t.Fatalf("expected pickup allowed once the interval elapsed")
	}
}

func TestAllowPickup_ZeroChanceNeverPasses(t *testing.T) {
	rules := testRules()
	rules.PickupChance = 0
	gate := NewGate(rules, rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		if gate.AllowPickup(time.Unix(int64(100+100*i), 0), 0) {
			t.Fatalf("attempt %d: expected zero chance to always fail", i)
		}
	}
}

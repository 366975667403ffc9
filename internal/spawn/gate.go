// Package spawn gates what enters the simulation: boss-tier escalation
// driven by score thresholds, and pickup introduction throttled by
// time, a live cap, and chance.
package spawn

import (
	"math/rand"
	"time"

	"hordehouse/sim/config"
)

// Tier identifies the spawn category a request was authorized for.
type Tier string

const (
	TierBaseline Tier = "baseline"
	TierBoss     Tier = "boss"
)

// Gate tracks escalation and pickup throttling state. The escalation
// counter is monotonically increasing: exactly one boss spawn is
// authorized per score-threshold crossing, no matter how many frames
// straddle the crossing.
type Gate struct {
	rules     config.SpawnRules
	escalated int

	lastPickup    time.Time
	hasLastPickup bool

	rng *rand.Rand
}

// NewGate builds a gate over the given rules. A nil random source falls
// back to a fixed-seed generator.
func NewGate(rules config.SpawnRules, rng *rand.Rand) *Gate {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Gate{rules: rules, rng: rng}
}

// NextTier decides the tier of the next spawn for the given score. The
// boss tier is authorized once each time floor(score/interval) exceeds
// the count of boss spawns already issued.
func (g *Gate) NextTier(score int) Tier {
	if g.rules.EscalationInterval > 0 && score/g.rules.EscalationInterval > g.escalated {
		g.escalated++
		return TierBoss
	}
	return TierBaseline
}

// ClassForTier maps a tier to its configured actor class name.
func (g *Gate) ClassForTier(tier Tier) string {
	if tier == TierBoss {
		return g.rules.BossClass
	}
	return g.rules.BaselineClass
}

// Escalated reports how many boss spawns have been authorized.
func (g *Gate) Escalated() int {
	return g.escalated
}

// AllowPickup decides whether a pickup may spawn now. All three
// conditions must pass: enough time since the last pickup spawn, the
// live count under the cap, and the per-attempt probability roll.
func (g *Gate) AllowPickup(now time.Time, live int) bool {
	if live >= g.rules.PickupCap {
		return false
	}
	interval := time.Duration(g.rules.PickupInterval * float64(time.Second))
	if g.hasLastPickup && now.Sub(g.lastPickup) < interval {
		return false
	}
	if g.rng.Float64() >= g.rules.PickupChance {
		return false
	}
	g.lastPickup = now
	g.hasLastPickup = true
	return true
}

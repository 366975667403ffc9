// Package config carries the static simulation catalog: actor classes,
// projectile types, timed-effect definitions, spawn rules, and world
// bounds. The compiled-in defaults describe the stock game; a YAML file
// can overlay any section. Components receive the catalog (or a slice
// of it) at construction and never reach into ambient state.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ActorClass is the immutable template shared by every actor of a kind.
type ActorClass struct {
	Name      string  `json:"name" yaml:"name"`
	Behavior  string  `json:"behavior" yaml:"behavior"`
	MaxHealth float64 `json:"maxHealth" yaml:"maxHealth"`
	Speed     float64 `json:"speed" yaml:"speed"`
	Radius    float64 `json:"radius" yaml:"radius"`

	// Chase tuning.
	Deadband    float64 `json:"deadband" yaml:"deadband"`
	MemoryTime  float64 `json:"memoryTime" yaml:"memoryTime"`
	SearchScale float64 `json:"searchScale" yaml:"searchScale"`

	// Wander tuning.
	HomeRadius      float64 `json:"homeRadius" yaml:"homeRadius"`
	WanderInterval  float64 `json:"wanderInterval" yaml:"wanderInterval"`
	WanderScale     float64 `json:"wanderScale" yaml:"wanderScale"`
	RedirectChance  float64 `json:"redirectChance" yaml:"redirectChance"`
	RedirectMinDist float64 `json:"redirectMinDist" yaml:"redirectMinDist"`

	// Flee tuning.
	FleeStopDist float64 `json:"fleeStopDist" yaml:"fleeStopDist"`
	PanicDist    float64 `json:"panicDist" yaml:"panicDist"`
	FleeScale    float64 `json:"fleeScale" yaml:"fleeScale"`
	PanicScale   float64 `json:"panicScale" yaml:"panicScale"`
	BlockedTime  float64 `json:"blockedTime" yaml:"blockedTime"`

	// Patrol tuning.
	PatrolRate float64 `json:"patrolRate" yaml:"patrolRate"`

	// Sight drift tuning.
	DriftInterval float64 `json:"driftInterval" yaml:"driftInterval"`
	DriftScale    float64 `json:"driftScale" yaml:"driftScale"`
}

// ProjectileType describes a projectile archetype.
type ProjectileType struct {
	Name     string        `json:"name" yaml:"name"`
	Speed    float64       `json:"speed" yaml:"speed"`
	Damage   float64       `json:"damage" yaml:"damage"`
	Gravity  float64       `json:"gravity" yaml:"gravity"`
	Lifetime time.Duration `json:"lifetime" yaml:"lifetime"`
	Piercing bool          `json:"piercing" yaml:"piercing"`
}

// UnmarshalYAML accepts lifetimes written as duration strings ("1.5s").
func (p *ProjectileType) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name     string  `yaml:"name"`
		Speed    float64 `yaml:"speed"`
		Damage   float64 `yaml:"damage"`
		Gravity  float64 `yaml:"gravity"`
		Lifetime string  `yaml:"lifetime"`
		Piercing bool    `yaml:"piercing"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	lifetime, err := time.ParseDuration(raw.Lifetime)
	if err != nil {
		return fmt.Errorf("projectile %q lifetime: %w", raw.Name, err)
	}
	*p = ProjectileType{
		Name:     raw.Name,
		Speed:    raw.Speed,
		Damage:   raw.Damage,
		Gravity:  raw.Gravity,
		Lifetime: lifetime,
		Piercing: raw.Piercing,
	}
	return nil
}

// EffectDef describes a timed player buff.
type EffectDef struct {
	Type      string        `json:"type" yaml:"type"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Magnitude float64       `json:"magnitude" yaml:"magnitude"`
}

// UnmarshalYAML accepts durations written as duration strings ("10s").
func (d *EffectDef) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Type      string  `yaml:"type"`
		Duration  string  `yaml:"duration"`
		Magnitude float64 `yaml:"magnitude"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	duration, err := time.ParseDuration(raw.Duration)
	if err != nil {
		return fmt.Errorf("effect %q duration: %w", raw.Type, err)
	}
	*d = EffectDef{
		Type:      raw.Type,
		Duration:  duration,
		Magnitude: raw.Magnitude,
	}
	return nil
}

// SpawnRules tunes the spawn gate.
type SpawnRules struct {
	EscalationInterval int     `json:"escalationInterval" yaml:"escalationInterval"`
	BaselineClass      string  `json:"baselineClass" yaml:"baselineClass"`
	BossClass          string  `json:"bossClass" yaml:"bossClass"`
	PickupInterval     float64 `json:"pickupInterval" yaml:"pickupInterval"`
	PickupCap          int     `json:"pickupCap" yaml:"pickupCap"`
	PickupChance       float64 `json:"pickupChance" yaml:"pickupChance"`
}

// WorldConfig bounds the playfield and the projectile set.
type WorldConfig struct {
	Width float64 `json:"width" yaml:"width"`
	Depth float64 `json:"depth" yaml:"depth"`

	MaxProjectiles    int     `json:"maxProjectiles" yaml:"maxProjectiles"`
	ProjectileMinY    float64 `json:"projectileMinY" yaml:"projectileMinY"`
	ProjectileMaxY    float64 `json:"projectileMaxY" yaml:"projectileMaxY"`
	ProjectileMaxDist float64 `json:"projectileMaxDist" yaml:"projectileMaxDist"`

	DespawnDist float64 `json:"despawnDist" yaml:"despawnDist"`
}

// Catalog is the full static configuration consumed by the simulation.
type Catalog struct {
	World       WorldConfig      `json:"world" yaml:"world"`
	Classes     []ActorClass     `json:"classes" yaml:"classes"`
	Projectiles []ProjectileType `json:"projectiles" yaml:"projectiles"`
	Effects     []EffectDef      `json:"effects" yaml:"effects"`
	Spawn       SpawnRules       `json:"spawn" yaml:"spawn"`

	// DefaultProjectile names the fallback type used when an unknown
	// projectile is requested.
	DefaultProjectile string `json:"defaultProjectile" yaml:"defaultProjectile"`
}

// Default returns the compiled-in catalog for the stock game.
func Default() Catalog {
	return Catalog{
		World: WorldConfig{
			Width:             48,
			Depth:             48,
			MaxProjectiles:    64,
			ProjectileMinY:    -2,
			ProjectileMaxY:    12,
			ProjectileMaxDist: 60,
			DespawnDist:       80,
		},
		Classes: []ActorClass{
			{
				Name:            "grunt",
				Behavior:        "chase",
				MaxHealth:       30,
				Speed:           2.4,
				Radius:          0.45,
				Deadband:        0.9,
				MemoryTime:      3.0,
				SearchScale:     0.6,
				HomeRadius:      10,
				WanderInterval:  2.5,
				WanderScale:     0.5,
				RedirectChance:  0.25,
				RedirectMinDist: 2.0,
				DriftInterval:   0.8,
				DriftScale:      0.3,
			},
			{
				Name:            "brute",
				Behavior:        "chase",
				MaxHealth:       120,
				Speed:           1.6,
				Radius:          0.7,
				Deadband:        1.1,
				MemoryTime:      5.0,
				SearchScale:     0.7,
				HomeRadius:      14,
				WanderInterval:  3.0,
				WanderScale:     0.4,
				RedirectChance:  0.35,
				RedirectMinDist: 2.0,
				DriftInterval:   1.2,
				DriftScale:      0.2,
			},
			{
				Name:            "skitter",
				Behavior:        "flee",
				MaxHealth:       10,
				Speed:           3.2,
				Radius:          0.3,
				HomeRadius:      8,
				WanderInterval:  1.5,
				WanderScale:     0.7,
				RedirectChance:  0.1,
				RedirectMinDist: 1.5,
				FleeStopDist:    9,
				PanicDist:       3,
				FleeScale:       1.2,
				PanicScale:      1.5,
				BlockedTime:     1.2,
				DriftInterval:   0.5,
				DriftScale:      0.4,
			},
			{
				Name:          "sentry",
				Behavior:      "patrol",
				MaxHealth:     45,
				Speed:         1.8,
				Radius:        0.5,
				PatrolRate:    0.7,
				DriftInterval: 1.0,
				DriftScale:    0.15,
			},
			{
				Name:      "turret",
				Behavior:  "stationary",
				MaxHealth: 60,
				Radius:    0.6,
			},
		},
		Projectiles: []ProjectileType{
			{Name: "bolt", Speed: 18, Damage: 10, Lifetime: 2 * time.Second},
			{Name: "shell", Speed: 10, Damage: 35, Gravity: 9.8, Lifetime: 4 * time.Second},
			{Name: "lance", Speed: 26, Damage: 15, Lifetime: 1500 * time.Millisecond, Piercing: true},
		},
		Effects: []EffectDef{
			{Type: "haste", Duration: 10 * time.Second, Magnitude: 1.6},
			{Type: "rage", Duration: 8 * time.Second, Magnitude: 2.0},
			{Type: "shield", Duration: 6 * time.Second, Magnitude: 0.5},
		},
		Spawn: SpawnRules{
			EscalationInterval: 5000,
			BaselineClass:      "grunt",
			BossClass:          "brute",
			PickupInterval:     12,
			PickupCap:          3,
			PickupChance:       0.35,
		},
		DefaultProjectile: "bolt",
	}
}

// Load reads a YAML overlay on top of the default catalog. Missing
// sections keep their defaults; a present section replaces the default
// wholesale.
func Load(path string) (Catalog, error) {
	catalog := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}

// Validate rejects catalogs the simulation cannot run with. It is the
// only place configuration errors surface; frame-path lookups degrade
// to defaults instead of failing.
func (c Catalog) Validate() error {
	if c.World.Width <= 0 || c.World.Depth <= 0 {
		return fmt.Errorf("world bounds must be positive, got %gx%g", c.World.Width, c.World.Depth)
	}
	if c.World.MaxProjectiles <= 0 {
		return fmt.Errorf("maxProjectiles must be positive, got %d", c.World.MaxProjectiles)
	}
	if len(c.Classes) == 0 {
		return fmt.Errorf("catalog defines no actor classes")
	}
	if c.ClassByName(c.Spawn.BaselineClass) == nil {
		return fmt.Errorf("baseline class %q not in catalog", c.Spawn.BaselineClass)
	}
	if c.ClassByName(c.Spawn.BossClass) == nil {
		return fmt.Errorf("boss class %q not in catalog", c.Spawn.BossClass)
	}
	if c.ProjectileByName(c.DefaultProjectile) == nil {
		return fmt.Errorf("default projectile %q not in catalog", c.DefaultProjectile)
	}
	if c.Spawn.EscalationInterval <= 0 {
		return fmt.Errorf("escalation interval must be positive, got %d", c.Spawn.EscalationInterval)
	}
	return nil
}

// ClassByName returns the named actor class or nil.
func (c Catalog) ClassByName(name string) *ActorClass {
	for i := range c.Classes {
		if c.Classes[i].Name == name {
			return &c.Classes[i]
		}
	}
	return nil
}

// ProjectileByName returns the named projectile type or nil.
func (c Catalog) ProjectileByName(name string) *ProjectileType {
	for i := range c.Projectiles {
		if c.Projectiles[i].Name == name {
			return &c.Projectiles[i]
		}
	}
	return nil
}

// EffectByType returns the named effect definition or nil.
func (c Catalog) EffectByType(typ string) *EffectDef {
	for i := range c.Effects {
		if c.Effects[i].Type == typ {
			return &c.Effects[i]
		}
	}
	return nil
}

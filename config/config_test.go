package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}

func TestDefault_LookupHelpers(t *testing.T) {
	catalog := Default()

	if catalog.ClassByName("grunt") == nil {
		t.Fatalf("expected grunt class")
	}
	if catalog.ClassByName("dragon") != nil {
		t.Fatalf("expected nil for unknown class")
	}
	if catalog.ProjectileByName(catalog.DefaultProjectile) == nil {
		t.Fatalf("expected default projectile resolvable")
	}
	if catalog.EffectByType("haste") == nil {
		t.Fatalf("expected haste effect")
	}
	if catalog.EffectByType("invincibility") != nil {
		t.Fatalf("expected nil for unknown effect")
	}
}

func TestLoad_OverlayKeepsUntouchedSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	overlay := `
world:
  width: 96
  depth: 96
  maxProjectiles: 128
  projectileMinY: -4
  projectileMaxY: 20
  projectileMaxDist: 120
  despawnDist: 160
effects:
  - type: haste
    duration: 20s
    magnitude: 1.8
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	catalog, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if catalog.World.Width != 96 {
		t.Fatalf("expected overridden width 96, got %g", catalog.World.Width)
	}
	if len(catalog.Effects) != 1 || catalog.Effects[0].Duration != 20*time.Second {
		t.Fatalf("expected replaced effects section, got %+v", catalog.Effects)
	}
	// Untouched sections keep the compiled-in defaults.
	if catalog.ClassByName("grunt") == nil {
		t.Fatalf("expected default classes preserved")
	}
	if catalog.Spawn.EscalationInterval != 5000 {
		t.Fatalf("expected default spawn rules preserved, got %d", catalog.Spawn.EscalationInterval)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_RejectsInvalidOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	overlay := `
spawn:
  escalationInterval: 5000
  baselineClass: phantom
  bossClass: brute
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for unknown baseline class")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Catalog)
	}{
		{"zero world bounds", func(c *Catalog) { c.World.Width = 0 }},
		{"zero projectile cap", func(c *Catalog) { c.World.MaxProjectiles = 0 }},
		{"no classes", func(c *Catalog) { c.Classes = nil }},
		{"unknown baseline", func(c *Catalog) { c.Spawn.BaselineClass = "phantom" }},
		{"unknown boss", func(c *Catalog) { c.Spawn.BossClass = "phantom" }},
		{"unknown default projectile", func(c *Catalog) { c.DefaultProjectile = "plasma" }},
		{"zero escalation interval", func(c *Catalog) { c.Spawn.EscalationInterval = 0 }},
	}

	for _, tc := range cases {
		catalog := Default()
		tc.mutate(&catalog)
		if err := catalog.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

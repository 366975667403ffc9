// Package effects tracks active time-limited player buffs. At most one
// instance per effect type is live at a time; re-activation refreshes
// the expiry instead of stacking. Pausing snapshots remaining durations
// so wall-clock time spent paused never counts against an effect.
package effects

import (
	"time"

	"hordehouse/sim/config"
)

// ActiveEffect is one live buff instance.
type ActiveEffect struct {
	Type      string
	AppliedAt time.Time
	ExpiresAt time.Time
	Def       *config.EffectDef
}

// Ledger owns the active effect set.
type Ledger struct {
	defs   map[string]*config.EffectDef
	active map[string]*ActiveEffect

	// remaining holds the pause snapshot; non-nil only while paused.
	remaining map[string]time.Duration
}

// NewLedger indexes the catalog's effect definitions.
func NewLedger(catalog *config.Catalog) *Ledger {
	defs := make(map[string]*config.EffectDef, len(catalog.Effects))
	for i := range catalog.Effects {
		defs[catalog.Effects[i].Type] = &catalog.Effects[i]
	}
	return &Ledger{
		defs:   defs,
		active: make(map[string]*ActiveEffect),
	}
}

// Activate starts or refreshes the named effect. An unknown type is a
// no-op; the ledger never fails on a bad activation request.
func (l *Ledger) Activate(typ string, now time.Time) {
	def, ok := l.defs[typ]
	if !ok {
		return
	}
	if inst, live := l.active[typ]; live {
		inst.ExpiresAt = now.Add(def.Duration)
		return
	}
	l.active[typ] = &ActiveEffect{
		Type:      typ,
		AppliedAt: now,
		ExpiresAt: now.Add(def.Duration),
		Def:       def,
	}
}

// Update removes every effect whose expiry has passed and returns the
// expired types. Repeated calls with the same timestamp are harmless.
// While paused, nothing expires.
func (l *Ledger) Update(now time.Time) []string {
	if l.remaining != nil {
		return nil
	}
	var expired []string
	for typ, inst := range l.active {
		if !now.Before(inst.ExpiresAt) {
			delete(l.active, typ)
			expired = append(expired, typ)
		}
	}
	return expired
}

// Pause snapshots the remaining duration of every active effect and
// discards the absolute expiries. Pausing while paused is a no-op.
func (l *Ledger) Pause(now time.Time) {
	if l.remaining != nil {
		return
	}
	l.remaining = make(map[string]time.Duration, len(l.active))
	for typ, inst := range l.active {
		left := inst.ExpiresAt.Sub(now)
		if left <= 0 {
			delete(l.active, typ)
			continue
		}
		l.remaining[typ] = left
	}
}

// Resume re-derives absolute expiries from the pause snapshot, so time
// elapsed during the pause never counts against effect duration.
// Resuming while running is a no-op.
func (l *Ledger) Resume(now time.Time) {
	if l.remaining == nil {
		return
	}
	for typ, left := range l.remaining {
		if inst, ok := l.active[typ]; ok {
			inst.ExpiresAt = now.Add(left)
		}
	}
	l.remaining = nil
}

// IsActive reports whether the named effect is live.
func (l *Ledger) IsActive(typ string) bool {
	_, ok := l.active[typ]
	return ok
}

// Remaining returns the time left on the named effect, or 0 when it is
// absent. While paused it reports the frozen snapshot value.
func (l *Ledger) Remaining(typ string, now time.Time) time.Duration {
	if l.remaining != nil {
		return l.remaining[typ]
	}
	inst, ok := l.active[typ]
	if !ok {
		return 0
	}
	left := inst.ExpiresAt.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Magnitude returns the named effect's configured magnitude while it is
// active, or the neutral 1.0 when it is absent.
func (l *Ledger) Magnitude(typ string) float64 {
	inst, ok := l.active[typ]
	if !ok {
		return 1.0
	}
	return inst.Def.Magnitude
}

// ForEach visits every active effect.
func (l *Ledger) ForEach(fn func(*ActiveEffect)) {
	for _, inst := range l.active {
		fn(inst)
	}
}

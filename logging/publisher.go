// Package logging publishes structured simulation events. The core
// components receive a Publisher and never write to stdout themselves;
// hosts route events to sinks or drop them with NopPublisher.
package logging

import (
	"context"
	"time"
)

type EventType string

// Event types emitted by the simulation core.
const (
	EventActorSpawned    EventType = "actor_spawned"
	EventActorDefeated   EventType = "actor_defeated"
	EventActorDespawned  EventType = "actor_despawned"
	EventProjectileHit   EventType = "projectile_hit"
	EventEffectActivated EventType = "effect_activated"
	EventEffectExpired   EventType = "effect_expired"
	EventEscalation      EventType = "escalation"
)

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

type EntityKind string

const (
	EntityKindUnknown    EntityKind = "unknown"
	EntityKindActor      EntityKind = "actor"
	EntityKindProjectile EntityKind = "projectile"
	EntityKindEffect     EntityKind = "effect"
	EntityKindWorld      EntityKind = "world"
)

type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

type Event struct {
	Type     EventType      `json:"type"`
	Tick     uint64         `json:"tick"`
	Time     time.Time      `json:"time"`
	Actor    EntityRef      `json:"actor"`
	Severity Severity       `json:"severity"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

func NopPublisher() Publisher {
	return nopPublisher{}
}

type fieldPublisher struct {
	next   Publisher
	fields map[string]any
}

func (p *fieldPublisher) Publish(ctx context.Context, event Event) {
	if p.next == nil {
		return
	}
	if len(p.fields) > 0 {
		copied := make(map[string]any, len(event.Extra)+len(p.fields))
		for k, v := range event.Extra {
			copied[k] = v
		}
		for k, v := range p.fields {
			if _, exists := copied[k]; !exists {
				copied[k] = v
			}
		}
		event.Extra = copied
	}
	p.next.Publish(ctx, event)
}

// WithFields wraps a publisher so every event carries the given extra
// fields unless the event already sets them.
func WithFields(p Publisher, fields map[string]any) Publisher {
	if p == nil {
		return NopPublisher()
	}
	if len(fields) == 0 {
		return p
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &fieldPublisher{next: p, fields: copied}
}

// Package ws exposes the simulation over websockets. Each connected
// client gets a session id and the current snapshot on join, then the
// per-tick state broadcast. Client intents are staged onto the frame
// goroutine through the loop; the hub never touches the world directly.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"hordehouse/sim/internal/geom"
	"hordehouse/sim/internal/sim"
	"hordehouse/sim/internal/telemetry"
)

// Hub fans snapshots out to sessions and routes client intents into the
// loop. It also owns the authoritative player position, which the world
// reads back through its dependency hook.
type Hub struct {
	loop    *sim.Loop
	logger  *log.Logger
	metrics telemetry.Metrics

	mu       sync.Mutex
	sessions map[string]*session
	player   geom.Vec2
	last     sim.Snapshot
}

// NewHub wires the hub to the loop. The logger must not be nil; a nil
// metrics falls back to a no-op recorder.
func NewHub(loop *sim.Loop, logger *log.Logger, metrics telemetry.Metrics) *Hub {
	if metrics == nil {
		metrics = telemetry.Nop()
	}
	return &Hub{
		loop:     loop,
		logger:   logger,
		metrics:  metrics,
		sessions: make(map[string]*session),
	}
}

// PlayerPos returns the authoritative player position. Wired into the
// world's dependency hooks.
func (h *Hub) PlayerPos() geom.Vec2 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.player
}

// Broadcast sends the frame snapshot to every session. Wired as the
// loop's AfterStep hook, so it runs on the frame goroutine.
func (h *Hub) Broadcast(result sim.LoopStepResult) {
	data, err := json.Marshal(stateMessage{Type: "state", Snapshot: result.Snapshot})
	if err != nil {
		h.logger.Error("marshal state", "err", err)
		return
	}

	h.mu.Lock()
	h.last = result.Snapshot
	var stale []string
	for id, sess := range h.sessions {
		if err := sess.write(websocket.TextMessage, data); err != nil {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		h.dropLocked(id)
	}
	live := len(h.sessions)
	h.mu.Unlock()

	h.metrics.Add("broadcast_total", 1)
	h.metrics.Add("broadcast_bytes", uint64(len(data)))
	h.metrics.Store("sessions_active", uint64(live))
}

func (h *Hub) register(sess *session) sim.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sess.id] = sess
	return h.last
}

func (h *Hub) drop(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(id)
}

func (h *Hub) dropLocked(id string) {
	sess, ok := h.sessions[id]
	if !ok {
		return
	}
	delete(h.sessions, id)
	sess.close()
	h.logger.Info("session closed", "session", id)
}

// handleMessage routes one decoded client intent. Mutating intents are
// staged onto the frame goroutine.
func (h *Hub) handleMessage(sess *session, msg clientMessage) {
	switch msg.Type {
	case messageMove:
		h.mu.Lock()
		h.player = geom.Vec2{X: msg.X, Z: msg.Z}
		h.mu.Unlock()
	case messageFire:
		origin := h.PlayerPos()
		pos := geom.Vec3{X: origin.X, Y: 1, Z: origin.Z}
		dir := geom.Vec3{X: msg.DirX, Y: msg.DirY, Z: msg.DirZ}
		typ := msg.Projectile
		h.loop.Enqueue(func(w *sim.World) {
			w.FireProjectile(typ, pos, dir)
		})
	case messageEffect:
		typ := msg.Effect
		h.loop.Enqueue(func(w *sim.World) {
			w.ActivateEffect(typ)
		})
	case messagePause:
		h.loop.Enqueue(func(w *sim.World) {
			w.Pause()
		})
	case messageResume:
		h.loop.Enqueue(func(w *sim.World) {
			w.Resume()
		})
	case messageScore:
		points := msg.Points
		h.loop.Enqueue(func(w *sim.World) {
			w.AddScore(points)
		})
	default:
		h.logger.Warn("unknown message type", "session", sess.id, "type", msg.Type)
	}
}

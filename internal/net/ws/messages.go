package ws

import "hordehouse/sim/internal/sim"

// clientMessage is the envelope for everything a client sends. Type
// selects which fields are read.
type clientMessage struct {
	Type string `json:"type"`

	// move
	X float64 `json:"x,omitempty"`
	Z float64 `json:"z,omitempty"`

	// fire
	Projectile string  `json:"projectile,omitempty"`
	DirX       float64 `json:"dirX,omitempty"`
	DirY       float64 `json:"dirY,omitempty"`
	DirZ       float64 `json:"dirZ,omitempty"`

	// effect
	Effect string `json:"effect,omitempty"`

	// score
	Points int `json:"points,omitempty"`
}

const (
	messageMove   = "move"
	messageFire   = "fire"
	messageEffect = "effect"
	messagePause  = "pause"
	messageResume = "resume"
	messageScore  = "score"
)

// joinMessage is the first frame sent to a new session.
type joinMessage struct {
	Type      string       `json:"type"`
	SessionID string       `json:"sessionId"`
	Snapshot  sim.Snapshot `json:"snapshot"`
}

// stateMessage is the per-tick broadcast.
type stateMessage struct {
	Type     string       `json:"type"`
	Snapshot sim.Snapshot `json:"snapshot"`
}

package ws

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests into hub sessions.
type Handler struct {
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, logger *log.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("upgrade failed", "err", err)
		return
	}

	sess := &session{id: uuid.NewString(), conn: conn}
	snapshot := h.hub.register(sess)
	h.logger.Info("session joined", "session", sess.id)

	join, err := json.Marshal(joinMessage{Type: "join", SessionID: sess.id, Snapshot: snapshot})
	if err != nil {
		h.logger.Error("marshal join", "session", sess.id, "err", err)
		h.hub.drop(sess.id)
		return
	}
	if err := sess.write(websocket.TextMessage, join); err != nil {
		h.hub.drop(sess.id)
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.hub.drop(sess.id)
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Warn("bad payload", "session", sess.id, "err", err)
			continue
		}
		h.hub.handleMessage(sess, msg)
	}
}

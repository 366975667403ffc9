package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// session is one connected client. Writes are serialized; the hub and
// the read loop both send on it.
type session struct {
	id   string
	conn *websocket.Conn

	mu sync.Mutex
}

func (s *session) write(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(messageType, data)
}

func (s *session) close() {
	s.conn.Close()
}

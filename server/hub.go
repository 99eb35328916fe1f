package server

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/uno/protocol"
)

// hub tracks the websocket connections watching each game and fans
// session events out to them
type hub struct {
	mu    sync.Mutex
	conns map[string][]*websocket.Conn
}

func newHub() *hub {
	return &hub{conns: map[string][]*websocket.Conn{}}
}

func (h *hub) add(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[gameID] = append(h.conns[gameID], conn)
}

func (h *hub) remove(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := []*websocket.Conn{}
	for _, c := range h.conns[gameID] {
		if c != conn {
			conns = append(conns, c)
		}
	}
	h.conns[gameID] = conns
}

// broadcast pushes one event to every connection watching its game,
// dropping connections that fail to write
func (h *hub) broadcast(event protocol.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	live := []*websocket.Conn{}
	for _, conn := range h.conns[event.GameID] {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("dropping connection for game %s: %s", event.GameID, err.Error())
			conn.Close()
			continue
		}
		live = append(live, conn)
	}
	h.conns[event.GameID] = live
}

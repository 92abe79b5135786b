package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"morghi/domain"
	"morghi/domain/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// keepaliveInterval bounds how long the write pump waits for an update
// before emitting a ping, so dead connections surface quickly.
const keepaliveInterval = 10 * time.Second

// handleListen upgrades the request to a websocket and streams the
// game's updates to the caller. The first frame is always the caller's
// full state snapshot.
func (s *Server) handleListen(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r)
	game, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	listener := game.Listen(ident.PlayerID)
	go readPump(conn)
	writePump(conn, game, listener, ident.PlayerID)
}

// readPump discards inbound frames and closes the connection on read
// error, which unblocks the write pump.
func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			conn.Close()
			return
		}
	}
}

// writePump relays updates from the listener queue to the connection,
// interleaving pings when the queue stays quiet. Exits on any write
// failure or when the announcer evicts the listener, always cleaning up
// its registration.
func writePump(conn *websocket.Conn, game *domain.Game, listener *events.Listener, playerID int64) {
	defer func() {
		game.RemoveListener(listener)
		conn.Close()
	}()

	if err := conn.WriteJSON(events.State(game.State(playerID))); err != nil {
		return
	}

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case update, open := <-listener.Updates():
			if !open {
				// Evicted for falling behind; the client must reconnect.
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(update); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteJSON(events.Ping()); err != nil {
				return
			}
		}
	}
}

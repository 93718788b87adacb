package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
)

// HandleChangeStream returns a handler that upgrades the connection to a
// websocket and streams change events. An optional "sheet" query parameter
// narrows the feed to one cost sheet; without it the feed is global, which
// is what the approved-ledger view uses. Delivery is at-least-once:
// clients must tolerate duplicates and refetch idempotently.
func HandleChangeStream(bus *services.Bus) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		conn, err := upgrader.Upgrade(e.Response, e.Request, nil)
		if err != nil {
			log.Printf("stream: upgrade failed: %v", err)
			return nil
		}

		filter := services.Filter{SheetID: e.Request.URL.Query().Get("sheet")}
		events, unsubscribe := bus.Subscribe(filter)

		go writePump(conn, events, unsubscribe)
		go readPump(conn)
		return nil
	}
}

// writePump forwards bus events to the websocket until the subscription or
// the connection dies. Periodic pings keep intermediaries from dropping
// idle connections.
func writePump(conn *websocket.Conn, events <-chan services.ChangeEvent, unsubscribe func()) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		unsubscribe()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-events:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pong handling works and closes the
// connection when the peer goes away.
func readPump(conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

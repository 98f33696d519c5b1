package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/status-im/coin-ticker/filter"
	"github.com/status-im/coin-ticker/quotes"
)

const (
	PING_INTERVAL = 20 * time.Second
	PONG_TIMEOUT  = 60 * time.Second
	WRITE_TIMEOUT = 10 * time.Second
)

// wsMessage is pushed to websocket clients on connect and after every publication
type wsMessage struct {
	Type      string              `json:"type"`
	State     string              `json:"state"`
	Version   uint64              `json:"version,omitempty"`
	UpdatedAt *time.Time          `json:"updated_at,omitempty"`
	Quotes    []quotes.AssetQuote `json:"quotes,omitempty"`
}

// handleWebSocket upgrades the connection and streams board snapshots, filtered by ?q=.
// Only this goroutine writes to the connection; a reader goroutine handles pongs and close.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket: Upgrade failed: %v", err)
		return
	}

	s.wsWG.Add(1)
	defer s.wsWG.Done()
	defer conn.Close()

	query := getParamTrimmed(r, "q")
	sub := s.board.Subscribe()
	defer sub.Cancel()

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	ticker := time.NewTicker(PING_INTERVAL)
	defer ticker.Stop()

	var lastVersion uint64
	send := func() bool {
		msg := s.snapshotMessage(query)
		if msg.Version != 0 && msg.Version == lastVersion {
			return true
		}
		lastVersion = msg.Version
		conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("WebSocket: Error writing snapshot: %v", err)
			return false
		}
		return true
	}

	if !send() {
		return
	}

	for {
		select {
		case <-s.ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(WRITE_TIMEOUT))
			return
		case <-closed:
			return
		case _, ok := <-sub.Chan():
			if !ok {
				return
			}
			if !send() {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Printf("WebSocket: Error sending ping: %v", err)
				return
			}
		}
	}
}

func (s *Server) snapshotMessage(query string) wsMessage {
	state := s.board.State()
	msg := wsMessage{Type: "snapshot", State: state.String()}

	snap := s.board.Snapshot()
	if snap == nil {
		return msg
	}
	updatedAt := snap.UpdatedAt
	msg.Version = snap.Version
	msg.UpdatedAt = &updatedAt
	msg.Quotes = filter.Filter(snap.Quotes, query)
	return msg
}

// readUntilClosed drains client frames so pongs and close frames are processed
func readUntilClosed(conn *websocket.Conn, closed chan struct{}) {
	defer close(closed)

	conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket: Error reading message: %v", err)
			}
			return
		}
	}
}

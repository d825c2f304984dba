package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
)

// WebSocketHub manages dashboard connections. Open pages subscribe here
// and reload their data when a new snapshot is announced.
type WebSocketHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
	logger     arbor.ILogger
}

// NewWebSocketHub creates a new WebSocket hub
func NewWebSocketHub(logger arbor.ILogger) *WebSocketHub {
	hub := &WebSocketHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     logger,
	}
	go hub.run()
	return hub
}

// run manages client connections and broadcasts
func (h *WebSocketHub) run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.logger.Debug().Msg("WebSocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mutex.Unlock()
			h.logger.Debug().Msg("WebSocket client disconnected")

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Warn().Err(err).Msg("Failed to send WebSocket message")
					client.Close()
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()

		case <-ticker.C:
			h.SendStatus("online")
		}
	}
}

// SendStatus broadcasts a heartbeat to all clients
func (h *WebSocketHub) SendStatus(status string) {
	msg := map[string]interface{}{
		"type":      "status",
		"status":    status,
		"timestamp": time.Now().Unix(),
	}
	data, _ := json.Marshal(msg)
	h.broadcast <- data
}

// SendSnapshotUpdate announces a fresh snapshot so open dashboards reload
func (h *WebSocketHub) SendSnapshotUpdate(totalIssues int, lastUpdated string) {
	msg := map[string]interface{}{
		"type":         "snapshot",
		"total_issues": totalIssues,
		"last_updated": lastUpdated,
		"timestamp":    time.Now().Unix(),
	}
	data, _ := json.Marshal(msg)
	h.broadcast <- data
}

// Upgrader for WebSocket connections
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Dashboard pages may be opened from file:// exports
	},
}

// WebSocketHandler handles WebSocket connection requests
func (h *WebSocketHub) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.register <- conn

	go func() {
		defer func() {
			h.unregister <- conn
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

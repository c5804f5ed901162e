// Package server provides the HTTP surface for the hasta feed daemon.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// wsMessage is the envelope pushed to feed clients.
type wsMessage struct {
	Type    string `json:"type"`
	Index   int    `json:"index,omitempty"`
	Offset  int    `json:"offset,omitempty"`
	Message string `json:"message,omitempty"`
}

// FeedHub pushes scroll requests, active-index changes, and status
// messages to connected browser feeds over WebSocket. It implements
// feed.Scroller and status.Reporter.
type FeedHub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewFeedHub creates an empty hub.
func NewFeedHub() *FeedHub {
	return &FeedHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests and keeps the connection
// registered until the client goes away.
func (h *FeedHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// ScrollTo broadcasts a scroll request. Implements feed.Scroller.
func (h *FeedHub) ScrollTo(index, offsetPx int) {
	h.send(wsMessage{Type: "scroll", Index: index, Offset: offsetPx})
}

// NotifyActive broadcasts the new active panel index.
func (h *FeedHub) NotifyActive(index int) {
	h.send(wsMessage{Type: "active", Index: index})
}

// Report broadcasts a lifecycle status string. Implements
// status.Reporter.
func (h *FeedHub) Report(message string) {
	h.send(wsMessage{Type: "status", Message: message})
}

// ClientCount returns the number of connected feed clients.
func (h *FeedHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// send serializes all writes under the exclusive lock: the hub is
// driven concurrently by the pipeline and by HTTP handlers, and a
// websocket conn tolerates only one writer at a time.
func (h *FeedHub) send(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Package live serves a read-only websocket feed of session state.
// Spectators subscribe to a channel id and receive a JSON snapshot after
// every game transition; they never send game actions.
package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"cardczar-bot/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectator feed is public; restrict origins at the proxy if needed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks spectator clients grouped by the channel they watch.
type Hub struct {
	mu       sync.Mutex
	watchers map[string]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{watchers: make(map[string]map[*Client]struct{})}
}

// ServeWS upgrades the request and subscribes the client to the channel
// named in the "channel" query parameter.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get("channel")
	if channelID == "" {
		http.Error(w, "channel query parameter required", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "tag", "live", "err", err)
		return
	}

	c := &Client{
		hub:       h,
		conn:      conn,
		channelID: channelID,
		send:      make(chan []byte, 16),
	}
	h.add(c)
	go c.writePump()
	go c.readPump()
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.watchers[c.channelID]
	if !ok {
		set = make(map[*Client]struct{})
		h.watchers[c.channelID] = set
	}
	set[c] = struct{}{}
	slog.Info("spectator joined", "tag", "live", "channel", c.channelID, "watchers", len(set))
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.watchers[c.channelID]
	if !ok {
		return
	}
	if _, present := set[c]; !present {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.watchers, c.channelID)
	}
}

// Broadcast sends the snapshot to every spectator of its channel. Slow
// clients are skipped rather than blocked on.
func (h *Hub) Broadcast(snap game.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		slog.Error("marshaling snapshot", "tag", "live", "err", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.watchers[snap.ChannelID] {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Package debugweb streams the completed frame buffer and a snapshot
// of CPU/PPU register state to any number of connected browser
// clients over a websocket, for interactive debugging.
package debugweb

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one connected browser tab.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			c.conn.Close()
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
	c.conn.Close()
}

func (c *Client) readPump(unregister chan *Client) {
	defer func() { unregister <- c }()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub broadcasts frames to every connected Client. Grounded on the
// teacher's register/unregister/broadcast channel loop, stripped of
// the multiplayer upgrade protocol the teacher's hub layers on top.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewHub returns a Hub; call Run in its own goroutine to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run drains the hub's channels until the program exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default: // client too slow, drop the frame
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues msg for delivery to every connected client.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default: // hub backed up, drop rather than block the emulation loop
	}
}

// ServeHTTP upgrades the request to a websocket connection and
// registers the resulting Client with the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &Client{conn: conn, send: make(chan []byte, 256)}
	h.register <- c

	go c.writePump()
	go c.readPump(h.unregister)
}

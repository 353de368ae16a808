package main

import (
	"sync"

	"github.com/spf13/viper"
)

const (
	defaultMaxConnsPerIP = 5
	defaultMaxTotalConns = 1000
)

// Hub manages all connected clients and routes them to sessions
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	sessions   *SessionManager
	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
	// Auth & persistence
	db      *DB
	auth    *Auth
	metrics *Analytics
}

// NewHub creates a new Hub. db and metrics may be nil (tests).
func NewHub(db *DB, metrics *Analytics) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		sessions:   NewSessionManager(db, metrics),
		ipConns:    make(map[string]int),
		db:         db,
		auth:       NewAuth(db),
		metrics:    metrics,
	}
}

func (h *Hub) maxConnsPerIP() int {
	if v := viper.GetInt("limits.maxConnsPerIP"); v > 0 {
		return v
	}
	return defaultMaxConnsPerIP
}

func (h *Hub) maxTotalConns() int {
	if v := viper.GetInt("limits.maxTotalConns"); v > 0 {
		return v
	}
	return defaultMaxTotalConns
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= h.maxTotalConns() {
		return false
	}
	if h.ipConns[ip] >= h.maxConnsPerIP() {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Run processes register/unregister events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			if h.metrics != nil {
				h.metrics.Track(EvtSessionStart, client.authPlayerID, "", "")
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			// The engine only ever sees a clean remove call.
			if client.sessionID != "" {
				h.sessions.RemovePlayer(client.sessionID, client.tankID)
			}
			if h.metrics != nil {
				h.metrics.Track(EvtSessionEnd, client.authPlayerID, "", "")
			}
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}

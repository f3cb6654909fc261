package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"bookmycourt/models"
	"bookmycourt/utils"
)

// Hub fans notifications out to all connected WebSocket clients.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *models.Notification
	mu         sync.RWMutex
}

var globalHub *Hub
var hubOnce sync.Once

// GetHub returns the global hub instance, starting its loop on first use.
func GetHub() *Hub {
	hubOnce.Do(func() {
		globalHub = NewHub()
		go globalHub.Run()
	})
	return globalHub
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *models.Notification, 256),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	logger := utils.GetLogger()
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			logger.Debug("websocket client registered", zap.Int("total", len(h.clients)))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				logger.Debug("websocket client unregistered", zap.Int("remaining", len(h.clients)))
			}
			h.mu.Unlock()

		case notification := <-h.broadcast:
			data, err := json.Marshal(notification)
			if err != nil {
				logger.Error("failed to marshal notification", zap.Error(err))
				continue
			}

			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients, client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// Broadcast queues a notification for delivery to every connected client.
func (h *Hub) Broadcast(n *models.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	h.broadcast <- n
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"shell-assistant-be/internal/pkg/logger"
	"shell-assistant-be/pkg/events"

	"github.com/redis/go-redis/v9"
)

const opsChannel = "ops_events"

// Hub fans routing telemetry out to connected ops dashboards. The feed is
// broadcast-only; there is no per-client targeting.
type Hub struct {
	// Registered ops clients
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fanout
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Ops client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Ops client unregistered", map[string]interface{}{"client_id": client.ID})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes a telemetry event to every connected ops client and to
// sibling instances through Redis.
func (h *Hub) Broadcast(event events.Event) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": event.EventType(),
		"data": event.Payload(),
		"at":   event.Timestamp(),
	})

	h.broadcastLocal(data)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), opsChannel, data)
	}
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer, drop it rather than stall the feed.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, opsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.broadcastLocal([]byte(msg.Payload))
	}
	log.Printf("ops feed redis subscription closed")
}

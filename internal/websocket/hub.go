package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ai-renamer-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "cluster_events"

// Message types pushed to browsers.
const (
	TypeNotification = "notification"
	TypeSnapshot     = "workspace_snapshot"
	TypeEvent        = "event"
)

type Hub struct {
	// UserID -> connections of that user (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery, nil on a single instance.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = append(h.clients[client.userID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.userID})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.userID]
			for i, c := range clients {
				if c == client {
					h.clients[client.userID] = append(clients[:i], clients[i+1:]...)
					close(client.send)
					break
				}
			}
			if len(h.clients[client.userID]) == 0 {
				delete(h.clients, client.userID)
				h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.userID})
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers one typed message to every connection of userID, here and,
// through Redis, on the other instances.
func (h *Hub) Send(userID uuid.UUID, msgType string, data interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"type": msgType,
		"data": data,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode message", map[string]interface{}{"type": msgType, "error": err.Error()})
		return
	}

	if h.rdb == nil {
		h.deliverLocal(userID, payload)
		return
	}

	// With Redis every instance, this one included, delivers from the channel.
	env, _ := json.Marshal(clusterEnvelope{TargetUserID: userID.String(), Message: payload})
	if err := h.rdb.Publish(context.Background(), clusterChannel, env).Err(); err != nil {
		h.logger.Warn("Hub", "Redis publish failed, delivering locally", map[string]interface{}{"error": err.Error()})
		h.deliverLocal(userID, payload)
	}
}

func (h *Hub) deliverLocal(userID uuid.UUID, payload []byte) {
	// Held across the sends: Run closes send channels only under the write lock.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// Connected reports how many connections userID has on this instance.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

type clusterEnvelope struct {
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var env clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		uid, err := uuid.Parse(env.TargetUserID)
		if err != nil {
			continue
		}
		h.deliverLocal(uid, env.Message)
	}
}

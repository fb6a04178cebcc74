package websocket

import (
	"encoding/json"
	"sync"

	"github.com/tablehost/sop-backend/pkg/logger"
)

// Client is one dashboard connection. A manager can watch the same
// restaurant from multiple devices, each with its own client.
type Client struct {
	Hub          *Hub
	Conn         *Conn
	UserID       uint
	RestaurantID uint
	Send         chan []byte
}

// Hub fans progress events out to every dashboard watching a restaurant.
// Traffic is one-way: clients only receive.
type Hub struct {
	// Connected dashboards, keyed by restaurant
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMessage

	mu sync.RWMutex
}

type broadcastMessage struct {
	RestaurantID uint
	Message      []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan *broadcastMessage, 1024),
	}
}

// Run owns the client map. All registration and fan-out goes through this
// loop so handlers never touch the map directly.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.RestaurantID] = append(h.clients[client.RestaurantID], client)
			sessions := len(h.clients[client.RestaurantID])
			h.mu.Unlock()
			logger.Info("Dashboard client connected", map[string]interface{}{
				"user_id":        client.UserID,
				"restaurant_id":  client.RestaurantID,
				"total_sessions": sessions,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.RestaurantID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}
				if len(newList) == 0 {
					delete(h.clients, client.RestaurantID)
				} else {
					h.clients[client.RestaurantID] = newList
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("Dashboard client disconnected", map[string]interface{}{
				"user_id":       client.UserID,
				"restaurant_id": client.RestaurantID,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[message.RestaurantID] {
				select {
				case client.Send <- message.Message:
				default:
					// Send buffer full: the connection is stalled, drop it
					go h.Unregister(client)
					logger.Warn("Dashboard send buffer full, disconnecting", map[string]interface{}{
						"user_id": client.UserID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastProgress pushes a progress event to every dashboard of the
// restaurant. A full broadcast channel drops the event; dashboards
// resynchronize from the summary endpoint.
func (h *Hub) BroadcastProgress(restaurantID uint, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal dashboard event", err, nil)
		return
	}

	select {
	case h.broadcast <- &broadcastMessage{RestaurantID: restaurantID, Message: data}:
	default:
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"restaurant_id": restaurantID,
		})
	}
}

// Register queues a client for registration
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister queues a client for removal
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SessionCount reports how many dashboards a restaurant has open
func (h *Hub) SessionCount(restaurantID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[restaurantID])
}

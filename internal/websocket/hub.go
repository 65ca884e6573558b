// Package websocket pushes inventory changes to clients watching a flight.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSeatsChanged  MessageType = "seats_changed"
	MessageTypeFlightUpdated MessageType = "flight_updated"
)

// Message represents a WebSocket message
type Message struct {
	Type           MessageType `json:"type"`
	FlightNumber   string      `json:"flightNumber"`
	AvailableSeats int         `json:"availableSeats"`
	OrderID        string      `json:"orderId,omitempty"`
	Timestamp      int64       `json:"timestamp"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan []byte
	flightNumber string
}

// Hub manages WebSocket connections per flight
type Hub struct {
	log        *logrus.Logger
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.flightNumber] == nil {
				h.clients[client.flightNumber] = make(map[*Client]bool)
			}
			h.clients[client.flightNumber][client] = true
			h.log.WithFields(logrus.Fields{
				"flight": client.flightNumber,
				"total":  len(h.clients[client.flightNumber]),
			}).Debug("websocket client registered")
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.flightNumber]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.flightNumber)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.log.WithError(err).Warn("failed to marshal websocket message")
				continue
			}

			h.mu.RLock()
			clients := h.clients[message.FlightNumber]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					// Slow client; drop it rather than block the hub.
					h.mu.Lock()
					delete(h.clients[message.FlightNumber], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastSeatsChanged notifies watchers that a booking or refund moved the
// seat counter.
func (h *Hub) BroadcastSeatsChanged(flightNumber string, availableSeats int, orderID string) {
	h.broadcast <- &Message{
		Type:           MessageTypeSeatsChanged,
		FlightNumber:   flightNumber,
		AvailableSeats: availableSeats,
		OrderID:        orderID,
		Timestamp:      time.Now().UnixMilli(),
	}
}

// BroadcastFlightUpdated notifies watchers that the flight record changed.
func (h *Hub) BroadcastFlightUpdated(flightNumber string, availableSeats int) {
	h.broadcast <- &Message{
		Type:           MessageTypeFlightUpdated,
		FlightNumber:   flightNumber,
		AvailableSeats: availableSeats,
		Timestamp:      time.Now().UnixMilli(),
	}
}

// ClientCount returns the number of clients watching a flight
func (h *Hub) ClientCount(flightNumber string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[flightNumber])
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Serve upgrades the request and subscribes the connection to a flight.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, flightNumber string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:          h,
		conn:         conn,
		send:         make(chan []byte, 16),
		flightNumber: flightNumber,
	}
	h.register <- client

	go client.writeLoop()
	go client.readLoop()
}

func (c *Client) writeLoop() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// readLoop drains the connection so close frames are processed; clients do
// not send application messages.
func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

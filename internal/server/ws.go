package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/starpower/starpower-server-go/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

type gameMessage struct {
	gameID  string
	payload []byte
}

// Hub fans snapshot updates out to the websocket clients watching each
// game.
type Hub struct {
	logger     *zap.Logger
	clients    map[*wsClient]bool
	broadcast  chan gameMessage
	register   chan *wsClient
	unregister chan *wsClient
}

// NewHub creates an empty hub. Call Run before serving connections.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan gameMessage, 16),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}
}

// Run owns the client set until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("websocket client registered", zap.String("game_id", client.gameID))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("websocket client unregistered", zap.String("game_id", client.gameID))
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.gameID != msg.gameID {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					// Slow consumer: drop the connection rather than block
					// every other watcher.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// snapshotEnvelope is the wire shape of a pushed update.
type snapshotEnvelope struct {
	Type     string        `json:"type"`
	GameID   string        `json:"game_id"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// BroadcastSnapshot pushes the snapshot to every client watching the game.
func (h *Hub) BroadcastSnapshot(gameID string, snap game.Snapshot) {
	payload, err := json.Marshal(snapshotEnvelope{Type: "snapshot", GameID: gameID, Snapshot: snap})
	if err != nil {
		h.logger.Error("marshal snapshot", zap.String("game_id", gameID), zap.Error(err))
		return
	}
	h.broadcast <- gameMessage{gameID: gameID, payload: payload}
}

// serve upgrades the request and attaches the client to the hub.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, gameID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	client := &wsClient{hub: h, conn: conn, send: make(chan []byte, 8), gameID: gameID}
	h.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}

func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	// Clients only listen; inbound frames just keep the connection alive.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// internal/server/handlers/websocket.go

package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:  10 * time.Second,
		PongWait:   60 * time.Second,
		PingPeriod: (60 * time.Second * 9) / 10,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// searchEventClient relays completed-search events from NATS to a
// single WebSocket peer.
type searchEventClient struct {
	conn   *websocket.Conn
	send   chan []byte
	sub    *nats.Subscription
	logger logrus.FieldLogger
}

// SearchEventsWebSocketHandler streams completed-search events to
// dashboard clients over a WebSocket connection.
func SearchEventsWebSocketHandler(natsConn *nats.Conn, topic string, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Error("Failed to upgrade to WebSocket")
			return
		}

		client := &searchEventClient{
			conn:   conn,
			send:   make(chan []byte, 256),
			logger: logger,
		}

		sub, err := natsConn.Subscribe(topic, func(msg *nats.Msg) {
			select {
			case client.send <- msg.Data:
			default:
				// Slow consumer; drop the event rather than block NATS.
			}
		})
		if err != nil {
			logger.WithError(err).Error("Failed to subscribe to search events")
			conn.Close()
			return
		}
		client.sub = sub

		logger.WithField("remote", r.RemoteAddr).Info("New WebSocket connection for search events")

		go client.writePump()
		go client.readPump()
	}
}

// readPump discards inbound messages and detects a closed peer
func (c *searchEventClient) readPump() {
	config := DefaultWebSocketConfig()

	defer c.closeConnection()

	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.WithError(err).Error("WebSocket error")
			}
			return
		}
	}
}

// writePump pumps relayed events to the WebSocket connection
func (c *searchEventClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// closeConnection closes the WebSocket connection and cleans up resources
func (c *searchEventClient) closeConnection() {
	if c.sub != nil {
		c.sub.Unsubscribe()
	}
	c.conn.Close()
}

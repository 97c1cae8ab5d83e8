package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// wsConnection maintains one WebSocket connection to an operator
// display. The server pushes a fresh shift snapshot once per second,
// which is the observation tick the aging display runs on.
type wsConnection struct {
	conn   *websocket.Conn
	server *ShiftServer
	done   chan struct{}
}

// handleWebSocket handles WebSocket connections
func (s *ShiftServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	wsConn := &wsConnection{
		conn:   conn,
		server: s,
		done:   make(chan struct{}),
	}

	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump drains client messages so pong handling works and detects
// disconnects.
func (c *wsConnection) readPump() {
	defer func() {
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

// writePump pushes snapshots on the observation tick and keeps the
// connection alive with pings.
func (c *wsConnection) writePump() {
	snapshotTicker := time.NewTicker(time.Second)
	pingTicker := time.NewTicker(30 * time.Second)
	defer func() {
		snapshotTicker.Stop()
		pingTicker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-snapshotTicker.C:
			data, err := json.Marshal(c.server.machine.Snapshot())
			if err != nil {
				log.Printf("Error marshaling snapshot: %v", err)
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-pingTicker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

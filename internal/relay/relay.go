// Package relay is a dumb room relay: it knows rooms and connections,
// forwards game-message frames verbatim, and carries no game logic.
package relay

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"royal235/internal/wire"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// Connection represents a WebSocket client connection.
type Connection struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan []byte
	Server *Server

	RoomID string
}

// Server manages rooms and connections.
type Server struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	rooms       map[string]map[string]*Connection // roomID -> connID -> conn
}

func NewServer() *Server {
	return &Server{
		connections: make(map[string]*Connection),
		rooms:       make(map[string]map[string]*Connection),
	}
}

// HandleHealth 存活探针
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Royal 235 Relay Server is Running OK"))
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Relay] Upgrade error: %v", err)
		return
	}

	c := &Connection{
		ID:     uuid.NewString(),
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Server: s,
	}

	s.mu.Lock()
	s.connections[c.ID] = c
	total := len(s.connections)
	s.mu.Unlock()

	log.Printf("[Connect] User Connected: %s, total: %d", c.ID, total)

	go c.readPump()
	go c.writePump()

	// 告知连接它自己的 id，WELCOME 定向投递要用
	if data, err := json.Marshal(wire.Frame{Op: wire.OpSession, SocketID: c.ID}); err == nil {
		c.Send <- data
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.Server.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Relay] Read error: %v", err)
			}
			break
		}
		c.handleFrame(message)
	}
}

func (c *Connection) handleFrame(data []byte) {
	var frame wire.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		log.Printf("[Error] Bad frame from %s: %v", c.ID, err)
		return
	}

	switch frame.Op {
	case wire.OpJoinRoom:
		c.Server.joinRoom(c, frame.RoomID)
	case wire.OpGameMessage:
		if frame.RoomID == "" {
			return
		}
		c.Server.relayToRoom(c, frame.RoomID, frame.Message)
	default:
		log.Printf("[Relay] Unknown op %q from %s", frame.Op, c.ID)
	}
}

func (s *Server) joinRoom(c *Connection, roomID string) {
	if roomID == "" {
		return
	}

	s.mu.Lock()
	room := s.rooms[roomID]
	if room == nil {
		room = make(map[string]*Connection)
		s.rooms[roomID] = room
	}
	room[c.ID] = c
	c.RoomID = roomID
	s.mu.Unlock()

	log.Printf("[Join] User %s joined room: %s", c.ID, roomID)

	// Notify others in the room
	notice, err := json.Marshal(wire.Frame{Op: wire.OpPlayerConnected, SocketID: c.ID})
	if err != nil {
		return
	}
	s.broadcastToRoom(roomID, c.ID, notice)
}

// relayToRoom 把 message 原样转发给房间内除发送者外的所有连接。
func (s *Server) relayToRoom(from *Connection, roomID string, message json.RawMessage) {
	out, err := json.Marshal(wire.Frame{Op: wire.OpGameMessage, Message: message})
	if err != nil {
		return
	}
	s.broadcastToRoom(roomID, from.ID, out)
}

func (s *Server) broadcastToRoom(roomID, excludeID string, data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, c := range s.rooms[roomID] {
		if id == excludeID {
			continue
		}
		select {
		case c.Send <- data:
		default:
			// Drop if buffer full
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) removeConnection(c *Connection) {
	s.mu.Lock()
	delete(s.connections, c.ID)
	if c.RoomID != "" {
		if room := s.rooms[c.RoomID]; room != nil {
			delete(room, c.ID)
			if len(room) == 0 {
				delete(s.rooms, c.RoomID)
			}
		}
	}
	total := len(s.connections)
	s.mu.Unlock()
	log.Printf("[Disconnect] User %s, total: %d", c.ID, total)
}

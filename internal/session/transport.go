// Package session implements the two protocol roles: the authoritative
// host that owns the game, and the client mirror that replicates it.
package session

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"royal235/internal/wire"
)

// Transport is the relay-facing surface shared by host and mirror.
type Transport interface {
	// SessionID 中继分配的连接 id
	SessionID() string
	JoinRoom(roomID string) error
	// SendGameMessage 把一条游戏消息发给房间内的其他人
	SendGameMessage(message []byte) error
	Close() error
}

// Handlers are the callbacks a RelayClient invokes from its read loop.
type Handlers struct {
	OnPeerConnected func(socketID string)
	OnGameMessage   func(data []byte)
	OnStatus        func(status string)
}

// RelayClient is a websocket client for the room relay.
type RelayClient struct {
	mu        sync.Mutex
	conn      *websocket.Conn
	sessionID string
	roomID    string
	handlers  Handlers
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

const sessionTimeout = 10 * time.Second

// Dial connects to the relay and waits for the session frame.
func Dial(url string, h Handlers) (*RelayClient, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if h.OnStatus != nil {
			h.OnStatus(fmt.Sprintf("连接失败: %v", err))
		}
		return nil, fmt.Errorf("dial relay %s: %w", url, err)
	}

	c := &RelayClient{
		conn:     conn,
		handlers: h,
		send:     make(chan []byte, 64),
		done:     make(chan struct{}),
	}

	sessionReady := make(chan string, 1)
	go c.readPump(sessionReady)
	go c.writePump()

	select {
	case id := <-sessionReady:
		c.mu.Lock()
		c.sessionID = id
		c.mu.Unlock()
	case <-time.After(sessionTimeout):
		c.Close()
		return nil, fmt.Errorf("relay did not assign a session id")
	}

	if h.OnStatus != nil {
		h.OnStatus("已连接服务器")
	}
	return c, nil
}

func (c *RelayClient) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *RelayClient) JoinRoom(roomID string) error {
	c.mu.Lock()
	c.roomID = roomID
	c.mu.Unlock()
	return c.sendFrame(wire.Frame{Op: wire.OpJoinRoom, RoomID: roomID})
}

func (c *RelayClient) SendGameMessage(message []byte) error {
	c.mu.Lock()
	roomID := c.roomID
	c.mu.Unlock()
	if roomID == "" {
		return fmt.Errorf("not in a room")
	}
	return c.sendFrame(wire.Frame{Op: wire.OpGameMessage, RoomID: roomID, Message: message})
}

func (c *RelayClient) sendFrame(f wire.Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return fmt.Errorf("connection closed")
	}
}

func (c *RelayClient) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
	return nil
}

func (c *RelayClient) readPump(sessionReady chan<- string) {
	defer func() {
		c.Close()
		if c.handlers.OnStatus != nil {
			c.handlers.OnStatus("与服务器断开连接")
		}
	}()

	c.conn.SetReadLimit(65536)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var frame wire.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Printf("[Relay] Bad frame: %v", err)
			continue
		}
		switch frame.Op {
		case wire.OpSession:
			select {
			case sessionReady <- frame.SocketID:
			default:
			}
		case wire.OpPlayerConnected:
			if c.handlers.OnPeerConnected != nil {
				c.handlers.OnPeerConnected(frame.SocketID)
			}
		case wire.OpGameMessage:
			if c.handlers.OnGameMessage != nil {
				c.handlers.OnGameMessage(frame.Message)
			}
		}
	}
}

func (c *RelayClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

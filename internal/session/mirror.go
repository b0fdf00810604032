package session

import (
	"fmt"
	"log"
	"sync"

	"royal235/internal/wire"
	"royal235/zjh"
)

// MirrorOptions are the mirror's notification callbacks. All of them are
// invoked from the transport read loop.
type MirrorOptions struct {
	OnWelcome func(seat int)
	OnSync    func(wire.StateSync)
	OnStatus  func(status string)
}

// Mirror is the client-side replica. It holds no game logic: it forwards
// user intents as ACTION messages and replaces its read-only state
// wholesale on every STATE_SYNC.
type Mirror struct {
	opts MirrorOptions

	mu        sync.Mutex
	transport Transport
	seat      int
	state     wire.StateSync
	hasState  bool
	status    string
}

func NewMirror(opts MirrorOptions) *Mirror {
	return &Mirror{
		opts: opts,
		seat: zjh.InvalidSeat,
	}
}

// Handlers returns the transport callbacks feeding this mirror.
func (m *Mirror) Handlers() Handlers {
	return Handlers{
		OnGameMessage: m.handleGameMessage,
		OnStatus: func(status string) {
			m.mu.Lock()
			m.status = status
			m.mu.Unlock()
			if m.opts.OnStatus != nil {
				m.opts.OnStatus(status)
			}
		},
	}
}

// SetTransport attaches the relay connection. Call after Dial, before Join.
func (m *Mirror) SetTransport(t Transport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transport = t
}

func (m *Mirror) Join(roomID string) error {
	m.mu.Lock()
	t := m.transport
	m.mu.Unlock()
	if t == nil {
		return fmt.Errorf("no transport attached")
	}
	return t.JoinRoom(roomID)
}

// Seat 返回 WELCOME 分配到的座位，未分配时是 InvalidSeat。
func (m *Mirror) Seat() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seat
}

// State returns the latest replicated state, if any has arrived.
func (m *Mirror) State() (wire.StateSync, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.hasState
}

func (m *Mirror) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// SendAction 把本地意图转发给房主。不做任何本地校验，等权威状态回来。
func (m *Mirror) SendAction(action zjh.ActionType, amount int64, target int) error {
	m.mu.Lock()
	t := m.transport
	seat := m.seat
	m.mu.Unlock()

	if t == nil {
		return fmt.Errorf("no transport attached")
	}
	if seat == zjh.InvalidSeat {
		return fmt.Errorf("no seat assigned yet")
	}

	payload := wire.ActionPayload{
		Action:   wire.ActionToWire(action),
		PlayerID: seat,
		Amount:   amount,
	}
	if target != zjh.InvalidSeat {
		payload.TargetID = &target
	}
	data, err := wire.NewActionMessage(payload)
	if err != nil {
		return err
	}
	return t.SendGameMessage(data)
}

func (m *Mirror) handleGameMessage(data []byte) {
	msg, err := wire.DecodeGameMessage(data)
	if err != nil {
		log.Printf("[Mirror] Drop malformed message: %v", err)
		return
	}

	switch msg.Type {
	case wire.MessageWelcome:
		payload, err := wire.DecodeWelcomePayload(msg.Payload)
		if err != nil {
			return
		}
		m.mu.Lock()
		mine := m.transport != nil && payload.ForSocketID == m.transport.SessionID()
		if mine {
			m.seat = payload.PlayerID
		}
		m.mu.Unlock()
		if mine {
			log.Printf("[Mirror] 座位已分配 (P%d)", payload.PlayerID)
			if m.opts.OnWelcome != nil {
				m.opts.OnWelcome(payload.PlayerID)
			}
		}

	case wire.MessageStateSync:
		sync, err := wire.DecodeStateSync(msg.Payload)
		if err != nil {
			log.Printf("[Mirror] Drop malformed sync: %v", err)
			return
		}
		// 整体替换，后到的覆盖先到的
		m.mu.Lock()
		m.state = sync
		m.hasState = true
		m.mu.Unlock()
		if m.opts.OnSync != nil {
			m.opts.OnSync(sync)
		}
	}
}

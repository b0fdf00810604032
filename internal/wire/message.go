// Package wire defines the JSON messages exchanged between host and clients,
// and the frames understood by the room relay.
package wire

import "encoding/json"

// MessageType 游戏层消息类型
type MessageType string

const (
	MessageWelcome   MessageType = "WELCOME"
	MessageStateSync MessageType = "STATE_SYNC"
	MessageAction    MessageType = "ACTION"
)

// GameMessage is the envelope for all host/client traffic.
type GameMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WelcomePayload 定向欢迎：只有 forSocketId 匹配的连接才采纳座位号。
// targetSocketId 与 forSocketId 始终相同，两个都带是为了兼容历史客户端。
type WelcomePayload struct {
	PlayerID       int    `json:"playerId"`
	TargetSocketID string `json:"targetSocketId"`
	ForSocketID    string `json:"forSocketId"`
}

// ActionPayload is a client's intent. The host validates everything.
type ActionPayload struct {
	Action   string `json:"action"`
	PlayerID int    `json:"playerId"`
	Amount   int64  `json:"amount,omitempty"`
	TargetID *int   `json:"targetId,omitempty"`
}

// CardState 单张牌的线上表示
type CardState struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
	ID   string `json:"id"`
}

// PlayerState 单个玩家的线上表示
type PlayerState struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	IsHuman        bool        `json:"isHuman"`
	Chips          int64       `json:"chips"`
	Cards          []CardState `json:"cards"`
	HasSeenCards   bool        `json:"hasSeenCards"`
	Status         string      `json:"status"`
	CurrentBet     int64       `json:"currentBet"`
	IsDealer       bool        `json:"isDealer"`
	LastAction     string      `json:"lastAction,omitempty"`
	LastActionType string      `json:"lastActionType,omitempty"`
}

// CompareData COMPARE_START 事件的载荷：双方与胜者
type CompareData struct {
	PA       PlayerState `json:"pA"`
	PB       PlayerState `json:"pB"`
	WinnerID int         `json:"winnerId"`
}

// EventPayload 附着在 STATE_SYNC 上的一次性表现事件
type EventPayload struct {
	Type     string       `json:"type"`
	PlayerID int          `json:"playerId,omitempty"`
	Data     *CompareData `json:"data,omitempty"`
}

// StateSync 全量状态同步。永远携带完整玩家列表，不做增量。
type StateSync struct {
	Players              []PlayerState `json:"players"`
	Pot                  int64         `json:"pot"`
	GamePhase            string        `json:"gamePhase"`
	CurrentTurnIndex     int           `json:"currentTurnIndex"`
	CurrentRoundBet      int64         `json:"currentRoundBet"`
	WinnerID             *int          `json:"winnerId"`
	ComparingInitiatorID *int          `json:"comparingInitiatorId"`
	RaiseCount           int           `json:"raiseCount"`
	Event                *EventPayload `json:"event,omitempty"`
	LastLog              string        `json:"lastLog,omitempty"`
}

// --- Relay frames ---

// Frame 中继层的信封。中继只看 op 和 roomId，message 原样转发。
type Frame struct {
	Op       string          `json:"op"`
	RoomID   string          `json:"roomId,omitempty"`
	SocketID string          `json:"socketId,omitempty"`
	Message  json.RawMessage `json:"message,omitempty"`
}

const (
	OpSession         = "session"          // 中继 -> 连接: 你的连接 id
	OpJoinRoom        = "join-room"        // 连接 -> 中继
	OpPlayerConnected = "player-connected" // 中继 -> 房间内其他人
	OpGameMessage     = "game-message"     // 双向
)

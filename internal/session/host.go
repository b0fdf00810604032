package session

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"royal235/internal/wire"
	"royal235/zjh"
	"royal235/zjh/bot"
)

// HostOptions 控制演出节奏。零值字段使用默认值。
type HostOptions struct {
	DealDelay    time.Duration // DEALING -> BETTING 的发牌演出时长
	ResolveDelay time.Duration // RESOLVING -> BETTING 的比牌演出时长
	TickInterval time.Duration
	BotDelay     time.Duration // 非零时覆盖机器人的思考时长
	StallWarning time.Duration // 真人座位卡住多久打一条日志
	BotSeed      int64

	// OnSync 每次广播后在 actor 协程里回调（离线模式也会触发）。
	OnSync func(wire.StateSync)
}

func (o *HostOptions) applyDefaults() {
	if o.DealDelay <= 0 {
		o.DealDelay = time.Second
	}
	if o.ResolveDelay <= 0 {
		o.ResolveDelay = 3 * time.Second
	}
	if o.TickInterval <= 0 {
		o.TickInterval = 100 * time.Millisecond
	}
	if o.StallWarning <= 0 {
		o.StallWarning = 30 * time.Second
	}
}

// Host owns the authoritative game. All mutations happen on the actor
// goroutine; the outside world talks to it through events.
//
// transport 为 nil 时是纯离线桌：没有同步广播，其余逻辑不变。
type Host struct {
	cfg  zjh.Config
	opts HostOptions
	game *zjh.Game
	bots *bot.Manager

	mu        sync.Mutex
	transport Transport
	roomID    string

	events    chan hostEvent
	done      chan struct{}
	closeOnce sync.Once
	rng       *rand.Rand

	// actor 协程私有，tick 消费的截止时间
	dealingDoneAt time.Time
	resolveDoneAt time.Time
	botActAt      time.Time
	botSeat       int

	lastProgress time.Time
	stallLogged  bool
}

type hostEventType byte

const (
	hostEvStartHand hostEventType = iota + 1
	hostEvAction
	hostEvPeerJoined
	hostEvGameMessage
)

type hostEvent struct {
	Type     hostEventType
	Seat     int
	Action   zjh.ActionType
	Amount   int64
	Target   int
	SocketID string
	Data     []byte
	Response chan error
}

func NewHost(cfg zjh.Config, opts HostOptions) (*Host, error) {
	opts.applyDefaults()
	game, err := zjh.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	seed := opts.BotSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Host{
		cfg:     cfg,
		opts:    opts,
		game:    game,
		bots:    bot.NewManager(cfg, seed),
		events:  make(chan hostEvent, 64),
		done:    make(chan struct{}),
		rng:     rand.New(rand.NewSource(seed)),
		botSeat: zjh.InvalidSeat,
	}, nil
}

func (h *Host) Game() *zjh.Game { return h.game }

// SeatPlayer seats a local human. Call before Start.
func (h *Host) SeatPlayer(name string) (int, error) {
	return h.game.AddPlayer(name, true)
}

// SeatBots seats n bots from the default persona list.
func (h *Host) SeatBots(n int) error {
	for i := 0; i < n; i++ {
		persona := &bot.DefaultPersonas[i%len(bot.DefaultPersonas)]
		if _, err := h.bots.Spawn(h.game, persona); err != nil {
			return err
		}
	}
	return nil
}

// SetTransport attaches the relay connection. Call before Start.
func (h *Host) SetTransport(t Transport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transport = t
}

// Handlers returns the transport callbacks feeding this host's event loop.
func (h *Host) Handlers() Handlers {
	return Handlers{
		OnPeerConnected: func(socketID string) {
			h.submit(hostEvent{Type: hostEvPeerJoined, SocketID: socketID})
		},
		OnGameMessage: func(data []byte) {
			h.submit(hostEvent{Type: hostEvGameMessage, Data: data})
		},
		OnStatus: func(status string) {
			log.Printf("[Host] Relay status: %s", status)
		},
	}
}

// OpenRoom joins the relay room, generating a 6-digit room code when
// none is supplied. Returns the room code.
func (h *Host) OpenRoom(roomID string) (string, error) {
	h.mu.Lock()
	t := h.transport
	if roomID == "" {
		roomID = fmt.Sprintf("%06d", h.rng.Intn(1000000))
	}
	h.roomID = roomID
	h.mu.Unlock()

	if t == nil {
		return "", fmt.Errorf("no transport attached")
	}
	if err := t.JoinRoom(roomID); err != nil {
		return "", fmt.Errorf("open room %s: %w", roomID, err)
	}
	log.Printf("[Host] Room opened: %s", roomID)
	return roomID, nil
}

func (h *Host) Start() {
	go h.loop()
}

func (h *Host) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// StartHand 开始新的一手牌（仅限房主侧调用）。
func (h *Host) StartHand() error {
	return h.submitWait(hostEvent{Type: hostEvStartHand})
}

// SubmitAction 本地座位的动作。远端玩家的动作走 game-message 通道。
func (h *Host) SubmitAction(seat int, action zjh.ActionType, amount int64, target int) error {
	return h.submitWait(hostEvent{
		Type:   hostEvAction,
		Seat:   seat,
		Action: action,
		Amount: amount,
		Target: target,
	})
}

func (h *Host) submit(ev hostEvent) {
	select {
	case h.events <- ev:
	case <-h.done:
	}
}

func (h *Host) submitWait(ev hostEvent) error {
	ev.Response = make(chan error, 1)
	select {
	case h.events <- ev:
	case <-h.done:
		return fmt.Errorf("host closed")
	}
	select {
	case err := <-ev.Response:
		return err
	case <-h.done:
		return fmt.Errorf("host closed")
	}
}

func (h *Host) loop() {
	ticker := time.NewTicker(h.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-h.events:
			h.handleEvent(ev)
		case <-ticker.C:
			h.tick()
		case <-h.done:
			return
		}
	}
}

func (h *Host) handleEvent(ev hostEvent) {
	var err error
	switch ev.Type {
	case hostEvStartHand:
		err = h.startHand()
	case hostEvAction:
		err = h.applyAction(ev.Seat, ev.Action, ev.Amount, ev.Target)
	case hostEvPeerJoined:
		h.handlePeerJoined(ev.SocketID)
	case hostEvGameMessage:
		h.handleGameMessage(ev.Data)
	}
	if ev.Response != nil {
		ev.Response <- err
	}
}

func (h *Host) startHand() error {
	if err := h.game.StartHand(); err != nil {
		return err
	}
	h.broadcast()
	h.dealingDoneAt = time.Now().Add(h.opts.DealDelay)
	h.resolveDoneAt = time.Time{}
	h.botActAt = time.Time{}
	return nil
}

// handlePeerJoined 给新连接按入座顺序分配座位并定向发 WELCOME。
func (h *Host) handlePeerJoined(socketID string) {
	seat, err := h.game.AddPlayer(fmt.Sprintf("玩家 %d", h.game.PlayerCount()), true)
	if err != nil {
		log.Printf("[Host] Cannot seat peer %s: %v", socketID, err)
		return
	}
	log.Printf("[Host] 玩家连接成功! 分配座位 %d", seat)

	h.mu.Lock()
	t := h.transport
	h.mu.Unlock()
	if t != nil {
		if data, err := wire.NewWelcomeMessage(seat, socketID); err == nil {
			if err := t.SendGameMessage(data); err != nil {
				log.Printf("[Host] Send welcome: %v", err)
			}
		}
	}
	h.broadcast()
}

// handleGameMessage 处理远端玩家的请求。任何不合法的请求静默丢弃：
// 不回错误，不广播，状态不变。
func (h *Host) handleGameMessage(data []byte) {
	msg, err := wire.DecodeGameMessage(data)
	if err != nil {
		log.Printf("[Host] Drop malformed message: %v", err)
		return
	}
	if msg.Type != wire.MessageAction {
		return
	}
	payload, err := wire.DecodeActionPayload(msg.Payload)
	if err != nil {
		log.Printf("[Host] Drop malformed action: %v", err)
		return
	}
	action, err := wire.ActionFromWire(payload.Action)
	if err != nil {
		log.Printf("[Host] Drop unknown action %q", payload.Action)
		return
	}
	target := zjh.InvalidSeat
	if payload.TargetID != nil {
		target = *payload.TargetID
	}
	if err := h.applyAction(payload.PlayerID, action, payload.Amount, target); err != nil {
		log.Printf("[Host] Reject action %s from P%d: %v", payload.Action, payload.PlayerID, err)
	}
}

func (h *Host) applyAction(seat int, action zjh.ActionType, amount int64, target int) error {
	if err := h.game.Act(seat, action, amount, target); err != nil {
		return err
	}
	h.broadcast()
	h.afterMutation()
	return nil
}

// afterMutation 根据新阶段安排后续工作：比牌演出截止时间、
// 机器人选比牌对象、机器人出手时间。
func (h *Host) afterMutation() {
	h.lastProgress = time.Now()
	h.stallLogged = false

	switch h.game.Phase() {
	case zjh.PhaseResolving:
		h.resolveDoneAt = time.Now().Add(h.opts.ResolveDelay)
		h.botActAt = time.Time{}

	case zjh.PhaseComparing:
		// 机器人发起的比牌立刻随机选对象
		initiator := h.game.Turn()
		if h.bots.IsBot(initiator) {
			targetSeat := h.bots.PickCompareTarget(initiator, h.game.Snapshot())
			if targetSeat != zjh.InvalidSeat {
				if err := h.applyAction(initiator, zjh.ActionCompareTarget, 0, targetSeat); err != nil {
					log.Printf("[Host] Bot compare target failed: %v", err)
				}
			}
		}

	case zjh.PhaseBetting:
		h.scheduleBotTurn()

	default:
		h.botActAt = time.Time{}
	}
}

func (h *Host) scheduleBotTurn() {
	turn := h.game.Turn()
	if turn != zjh.InvalidSeat && h.bots.IsBot(turn) {
		delay := h.bots.GetThinkDelay(turn)
		if h.opts.BotDelay > 0 {
			delay = h.opts.BotDelay
		}
		h.botSeat = turn
		h.botActAt = time.Now().Add(delay)
	} else {
		h.botSeat = zjh.InvalidSeat
		h.botActAt = time.Time{}
	}
}

func (h *Host) tick() {
	now := time.Now()

	if !h.dealingDoneAt.IsZero() && now.After(h.dealingDoneAt) {
		h.dealingDoneAt = time.Time{}
		if err := h.game.FinishDealing(); err == nil {
			h.broadcast()
			h.afterMutation()
		}
	}

	if !h.resolveDoneAt.IsZero() && now.After(h.resolveDoneAt) {
		h.resolveDoneAt = time.Time{}
		if err := h.game.FinishResolve(); err == nil {
			h.broadcast()
			h.afterMutation()
		}
	}

	if !h.botActAt.IsZero() && now.After(h.botActAt) {
		h.botActAt = time.Time{}
		h.stepBotTurn()
	}

	// 真人座位卡住只记日志，不代打
	if h.game.Phase() == zjh.PhaseBetting && h.botSeat == zjh.InvalidSeat &&
		!h.lastProgress.IsZero() && now.Sub(h.lastProgress) > h.opts.StallWarning && !h.stallLogged {
		h.stallLogged = true
		log.Printf("[Host] Waiting on seat %d for %s", h.game.Turn(), now.Sub(h.lastProgress).Truncate(time.Second))
	}
}

// stepBotTurn 执行一步机器人回合。每次调用最多落一个决策，
// 后续机器人回合由 afterMutation 重新排期，不会无界级联。
func (h *Host) stepBotTurn() {
	seat := h.botSeat
	if seat == zjh.InvalidSeat || h.game.Phase() != zjh.PhaseBetting || h.game.Turn() != seat {
		return
	}

	decision := h.bots.OnTurn(seat, h.game.Snapshot())
	err := h.applyAction(seat, decision.Action, decision.Amount, zjh.InvalidSeat)
	if err != nil {
		// 决策落不下去就退到跟注，再不行弃牌
		if err2 := h.applyAction(seat, zjh.ActionCall, 0, zjh.InvalidSeat); err2 != nil {
			if err3 := h.applyAction(seat, zjh.ActionFold, 0, zjh.InvalidSeat); err3 != nil {
				log.Printf("[Host] Bot at seat %d stuck: %v", seat, err3)
			}
		}
	}
}

// broadcast 发出一条全量 STATE_SYNC。快照带走的一次性事件只会出现在这一条里。
func (h *Host) broadcast() {
	snap := h.game.Snapshot()
	sync := wire.SnapshotToSync(snap)

	h.mu.Lock()
	t := h.transport
	h.mu.Unlock()
	if t != nil {
		data, err := wire.NewStateSyncMessage(sync)
		if err != nil {
			log.Printf("[Host] Marshal sync: %v", err)
		} else if err := t.SendGameMessage(data); err != nil {
			log.Printf("[Host] Broadcast: %v", err)
		}
	}
	if h.opts.OnSync != nil {
		h.opts.OnSync(sync)
	}
}

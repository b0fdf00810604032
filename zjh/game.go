package zjh

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"royal235/card"
)

// Game 是权威状态机。所有写入都经过 Game 的方法，内部用互斥锁保护，
// 外部只能通过 Snapshot 读取值拷贝。
type Game struct {
	mu  sync.Mutex
	cfg Config
	rng *rand.Rand

	phase   Phase
	players []*Player
	deck    card.CardList

	pot             int64
	currentRoundBet int64
	turn            int
	dealerSeat      int
	raiseCount      int
	round           int // 本手牌进行到第几圈下注

	winnerSeat    int
	comparingSeat int // COMPARING 阶段的发起人座位
	pendingDuel   *Duel

	event   *Event // 一次性表现事件，随下一条快照带出
	lastLog string
}

func NewGame(cfg Config) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(seed)),
		phase:         PhaseIdle,
		turn:          InvalidSeat,
		dealerSeat:    InvalidSeat,
		winnerSeat:    InvalidSeat,
		comparingSeat: InvalidSeat,
	}, nil
}

// AddPlayer 按入座顺序分配座位。只允许在开局前或两手牌之间入座。
func (g *Game) AddPlayer(name string, human bool) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseIdle && g.phase != PhaseShowdown {
		return InvalidSeat, ErrInvalidState("cannot seat player mid-hand")
	}
	if len(g.players) >= g.cfg.MaxPlayers {
		return InvalidSeat, ErrTableFull
	}
	seat := len(g.players)
	g.players = append(g.players, &Player{
		Seat:   seat,
		Name:   name,
		Human:  human,
		chips:  g.cfg.InitialChips,
		status: StatusWaiting,
	})
	return seat, nil
}

func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) Turn() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

// StartHand 开始新的一手牌：收底注、随机定庄、发三张暗牌。
// 付不起底注的座位标记为 LOST，不参与本手。
func (g *Game) StartHand() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseIdle && g.phase != PhaseShowdown {
		return ErrInvalidState("hand already in progress")
	}
	if len(g.players) < g.cfg.MinPlayers {
		return ErrInvalidState(fmt.Sprintf("need at least %d players", g.cfg.MinPlayers))
	}

	var active []int
	for _, p := range g.players {
		p.resetForNewHand()
		if p.chips >= g.cfg.Ante {
			p.status = StatusPlaying
			p.chips -= g.cfg.Ante
			active = append(active, p.Seat)
		} else {
			p.status = StatusLost
		}
	}
	if len(active) < 2 {
		return ErrInvalidState("not enough funded players")
	}

	g.deck.Init(DeckCards)
	g.deck.Shuffle(g.rng)

	g.pot = g.cfg.Ante * int64(len(active))
	g.currentRoundBet = g.cfg.Ante
	g.raiseCount = 0
	g.round = 1
	g.winnerSeat = InvalidSeat
	g.comparingSeat = InvalidSeat
	g.pendingDuel = nil

	g.dealerSeat = active[g.rng.Intn(len(active))]
	g.players[g.dealerSeat].dealer = true
	g.turn = g.dealerSeat

	for i := 0; i < 3; i++ {
		for _, seat := range active {
			g.players[seat].addHandCard(g.deck.PopCard())
		}
	}

	g.phase = PhaseDealing
	g.event = &Event{Type: EventGameStart}
	g.lastLog = "游戏开始，正在发牌..."
	return nil
}

// FinishDealing 发牌演出结束，进入下注阶段。由宿主在发牌延时后调用。
func (g *Game) FinishDealing() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseDealing {
		return ErrInvalidState("not dealing")
	}
	g.phase = PhaseBetting
	g.lastLog = "下注开始。"
	return nil
}

// Act 处理一个座位的动作请求。座位、阶段或状态不合法时返回错误，
// 状态不发生任何变化。
func (g *Game) Act(seat int, action ActionType, amount int64, target int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if seat < 0 || seat >= len(g.players) {
		return ErrInvalidState(fmt.Sprintf("no such seat %d", seat))
	}

	if action == ActionCompareTarget {
		return g.actCompareTarget(seat, target)
	}

	if g.phase != PhaseBetting {
		return ErrNotBetting
	}
	if g.turn != seat {
		return ErrOutOfTurn
	}
	p := g.players[seat]
	if p.status != StatusPlaying {
		return ErrInvalidState("player not in hand")
	}

	switch action {
	case ActionFold:
		return g.actFold(p)
	case ActionSeeCards:
		return g.actSeeCards(p)
	case ActionCall:
		return g.actCall(p)
	case ActionRaise:
		return g.actRaise(p, amount)
	case ActionAllIn:
		return g.actAllIn(p)
	case ActionCompareInit:
		return g.actCompareInit(p)
	default:
		return ErrInvalidState(fmt.Sprintf("unknown action %d", action))
	}
}

func (g *Game) actFold(p *Player) error {
	p.status = StatusFolded
	p.setLastAction("弃牌", MoodNegative)
	g.lastLog = fmt.Sprintf("%s 弃牌。", p.Name)
	g.advanceTurn()
	g.checkLoneSurvivor()
	return nil
}

func (g *Game) actSeeCards(p *Player) error {
	// 看牌不让出行动权
	p.hasSeen = true
	p.setLastAction("👀 看牌", MoodNeutral)
	g.lastLog = fmt.Sprintf("%s 看牌。", p.Name)
	return nil
}

func (g *Game) actCall(p *Player) error {
	toPay := g.currentRoundBet - p.currentBet
	if toPay < 0 {
		toPay = 0
	}
	if p.chips < toPay {
		// 跟不起就只能全压
		return g.actAllIn(p)
	}
	p.placeBet(toPay)
	g.pot += toPay
	p.setLastAction(fmt.Sprintf("跟注 %d", toPay), MoodNeutral)
	g.lastLog = fmt.Sprintf("%s 跟注 %d。", p.Name, toPay)
	g.event = &Event{Type: EventChipFly, Seat: p.Seat}
	g.advanceTurn()
	return nil
}

// actRaise 的 amount 是加注后的目标总注，不是增量。
func (g *Game) actRaise(p *Player, amount int64) error {
	if g.raiseCount >= g.cfg.RaiseCap {
		return ErrRaiseCapReached
	}
	if amount < g.currentRoundBet+g.cfg.MinRaise {
		return ErrInvalidState(fmt.Sprintf("raise to %d below minimum", amount))
	}
	toPay := amount - p.currentBet
	if toPay > p.chips {
		return ErrInsufficientChips
	}
	p.placeBet(toPay)
	g.pot += toPay
	g.currentRoundBet = amount
	g.raiseCount++
	p.setLastAction(fmt.Sprintf("加注 %d", amount), MoodPositive)
	g.lastLog = fmt.Sprintf("%s 加注至 %d。", p.Name, amount)
	g.event = &Event{Type: EventChipFly, Seat: p.Seat}
	g.advanceTurn()
	return nil
}

func (g *Game) actAllIn(p *Player) error {
	allIn := p.chips
	p.placeBet(allIn)
	g.pot += allIn
	if p.currentBet > g.currentRoundBet {
		g.currentRoundBet = p.currentBet
	}
	p.setLastAction("ALL IN!", MoodPositive)
	g.lastLog = fmt.Sprintf("%s 全压 ALL-IN (%d)!", p.Name, allIn)
	g.event = &Event{Type: EventChipFly, Seat: p.Seat}
	g.advanceTurn()
	return nil
}

// actCompareInit 发起比牌：支付当前注作为比牌费，等待发起人选定对象。
func (g *Game) actCompareInit(p *Player) error {
	cost := g.currentRoundBet
	if p.chips < cost {
		return ErrInsufficientChips
	}
	p.chips -= cost
	g.pot += cost
	g.comparingSeat = p.Seat
	g.phase = PhaseComparing
	g.lastLog = fmt.Sprintf("%s 发起比牌...", p.Name)
	g.event = &Event{Type: EventChipFly, Seat: p.Seat}
	return nil
}

func (g *Game) actCompareTarget(seat, target int) error {
	if g.phase != PhaseComparing {
		return ErrInvalidState("no comparison in progress")
	}
	if seat != g.comparingSeat {
		return ErrOutOfTurn
	}
	if target < 0 || target >= len(g.players) || target == seat {
		return ErrInvalidState(fmt.Sprintf("invalid compare target %d", target))
	}
	a, b := g.players[seat], g.players[target]
	if b.status != StatusPlaying {
		return ErrInvalidState("compare target not in hand")
	}

	winner := target
	if Beats(a.handCards, b.handCards) {
		winner = seat
	}
	g.pendingDuel = &Duel{InitiatorSeat: seat, TargetSeat: target, WinnerSeat: winner}
	g.phase = PhaseResolving
	g.lastLog = fmt.Sprintf("%s 挑战 %s...", a.Name, b.Name)
	g.event = &Event{Type: EventCompareStart, Duel: g.pendingDuel}
	return nil
}

// FinishResolve 比牌演出结束，落实输赢并回到下注阶段。
// 由宿主在展示延时后调用。
func (g *Game) FinishResolve() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseResolving || g.pendingDuel == nil {
		return ErrInvalidState("no pending comparison")
	}
	duel := g.pendingDuel
	loser := duel.TargetSeat
	if duel.WinnerSeat == duel.TargetSeat {
		loser = duel.InitiatorSeat
	}
	g.players[loser].status = StatusLost
	g.players[loser].setLastAction("比牌输", MoodNegative)
	g.players[duel.WinnerSeat].setLastAction("比牌赢", MoodPositive)

	g.pendingDuel = nil
	g.comparingSeat = InvalidSeat
	g.phase = PhaseBetting
	g.lastLog = fmt.Sprintf("结果: %s 赢得了比牌！", g.players[duel.WinnerSeat].Name)
	g.advanceTurn()
	g.checkLoneSurvivor()
	return nil
}

// advanceTurn 顺时针找下一个 PLAYING 座位，最多绕一圈。
func (g *Game) advanceTurn() {
	n := len(g.players)
	next := (g.turn + 1) % n
	for i := 0; i < n; i++ {
		if g.players[next].status == StatusPlaying {
			break
		}
		next = (next + 1) % n
	}
	if next <= g.turn {
		g.round++
	}
	g.turn = next
}

// checkLoneSurvivor 只剩一名 PLAYING 玩家时直接进入摊牌。
func (g *Game) checkLoneSurvivor() {
	var survivor *Player
	count := 0
	for _, p := range g.players {
		if p.status == StatusPlaying {
			survivor = p
			count++
		}
	}
	if count == 1 {
		g.finishShowdown(survivor)
	}
}

func (g *Game) finishShowdown(winner *Player) {
	winner.status = StatusWon
	winner.chips += g.pot
	finalPot := g.pot
	g.pot = 0
	for _, p := range g.players {
		p.hasSeen = true
	}
	g.winnerSeat = winner.Seat
	g.turn = InvalidSeat
	g.phase = PhaseShowdown
	g.lastLog = fmt.Sprintf("*** %s 赢得了底池 (%d) ***", winner.Name, finalPot)
}

package bot

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"royal235/zjh"
)

// Instance represents an active bot seated at a table.
type Instance struct {
	Seat       int
	Persona    *Persona
	Brain      BrainDecider
	ThinkDelay time.Duration
}

// Manager manages bot lifecycle and decision-making at a table.
type Manager struct {
	mu        sync.RWMutex
	cfg       zjh.Config
	instances map[int]*Instance // keyed by seat
	rng       *rand.Rand
}

func NewManager(cfg zjh.Config, seed int64) *Manager {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Manager{
		cfg:       cfg,
		instances: make(map[int]*Instance),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Spawn creates and seats a bot at the table.
func (m *Manager) Spawn(game *zjh.Game, persona *Persona) (*Instance, error) {
	m.mu.Lock()
	seed := m.rng.Int63()
	m.mu.Unlock()

	seat, err := game.AddPlayer(persona.Name, false)
	if err != nil {
		return nil, fmt.Errorf("spawn bot %s: %w", persona.Name, err)
	}

	inst := &Instance{
		Seat:       seat,
		Persona:    persona,
		Brain:      NewRuleBrain(persona, seed),
		ThinkDelay: persona.ThinkDelay,
	}

	m.mu.Lock()
	m.instances[seat] = inst
	m.mu.Unlock()

	log.Printf("[Bot] Spawned %s at seat %d", persona.Name, seat)
	return inst, nil
}

// IsBot checks if a seat belongs to a bot.
func (m *Manager) IsBot(seat int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instances[seat] != nil
}

// GetThinkDelay returns the simulated thinking delay for a bot.
func (m *Manager) GetThinkDelay(seat int) time.Duration {
	m.mu.RLock()
	inst := m.instances[seat]
	m.mu.RUnlock()
	if inst == nil {
		return time.Second
	}
	return inst.ThinkDelay
}

// OnTurn is called when it's a bot's turn to act.
// It builds a GameView from the snapshot and asks the brain for a decision.
func (m *Manager) OnTurn(seat int, snap zjh.Snapshot) Decision {
	m.mu.RLock()
	inst := m.instances[seat]
	m.mu.RUnlock()

	if inst == nil {
		log.Printf("[Bot] OnTurn called for unknown seat %d", seat)
		return Decision{Action: zjh.ActionFold}
	}

	view := m.buildGameView(seat, snap)
	decision := inst.Brain.Decide(view)
	log.Printf("[Bot] %s decides: %v amount=%d", inst.Persona.Name, decision.Action, decision.Amount)
	return decision
}

// PickCompareTarget 发起比牌后随机挑一个还在局内的对手。
// 没有对手时返回 InvalidSeat。
func (m *Manager) PickCompareTarget(seat int, snap zjh.Snapshot) int {
	var candidates []int
	for _, ps := range snap.Players {
		if ps.Seat != seat && ps.Status == zjh.StatusPlaying {
			candidates = append(candidates, ps.Seat)
		}
	}
	if len(candidates) == 0 {
		return zjh.InvalidSeat
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return candidates[m.rng.Intn(len(candidates))]
}

func (m *Manager) buildGameView(seat int, snap zjh.Snapshot) GameView {
	view := GameView{
		Pot:        snap.Pot,
		CurrentBet: snap.CurrentRoundBet,
		Round:      snap.Round,
		RaiseCount: snap.RaiseCount,
		RaiseCap:   m.cfg.RaiseCap,
		MinRaise:   m.cfg.MinRaise,
	}
	for _, ps := range snap.Players {
		if ps.Seat == seat {
			view.HandCards = ps.HandCards
			view.MyBet = ps.Bet
			view.MyChips = ps.Chips
		}
		if ps.Status == zjh.StatusPlaying {
			view.ActiveCount++
		}
	}
	return view
}

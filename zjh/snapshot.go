package zjh

import "royal235/card"

type PlayerSnapshot struct {
	Seat         int
	Name         string
	Human        bool
	Chips        int64
	Bet          int64
	HandCards    []card.Card
	HasSeenCards bool
	Status       PlayerStatus
	Dealer       bool
	LastAction   string
	LastMood     Mood
}

type Snapshot struct {
	Phase           Phase
	Pot             int64
	CurrentRoundBet int64
	Turn            int
	DealerSeat      int
	RaiseCount      int
	Round           int
	WinnerSeat      int
	ComparingSeat   int

	Players []PlayerSnapshot

	// Event 是一次性的：被快照带走后引擎侧即清除，
	// 同一事件不会出现在两条快照里。
	Event   *Event
	LastLog string
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		Phase:           g.phase,
		Pot:             g.pot,
		CurrentRoundBet: g.currentRoundBet,
		Turn:            g.turn,
		DealerSeat:      g.dealerSeat,
		RaiseCount:      g.raiseCount,
		Round:           g.round,
		WinnerSeat:      g.winnerSeat,
		ComparingSeat:   g.comparingSeat,
		Event:           g.event,
		LastLog:         g.lastLog,
	}
	g.event = nil

	for _, p := range g.players {
		s.Players = append(s.Players, PlayerSnapshot{
			Seat:         p.Seat,
			Name:         p.Name,
			Human:        p.Human,
			Chips:        p.chips,
			Bet:          p.currentBet,
			HandCards:    append([]card.Card{}, p.handCards...),
			HasSeenCards: p.hasSeen,
			Status:       p.status,
			Dealer:       p.dealer,
			LastAction:   p.lastAction,
			LastMood:     p.lastMood,
		})
	}
	return s
}

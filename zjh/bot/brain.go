package bot

import (
	"royal235/card"
	"royal235/zjh"
)

// GameView is a read-only projection of the game state visible to the bot.
type GameView struct {
	HandCards   []card.Card
	Pot         int64
	CurrentBet  int64 // 当前轮的跟注线
	MyBet       int64
	MyChips     int64
	Round       int // 第几圈下注
	RaiseCount  int
	RaiseCap    int
	MinRaise    int64
	ActiveCount int
}

// Decision is what a BrainDecider returns.
type Decision struct {
	Action zjh.ActionType
	Amount int64 // RAISE: 加注后的目标总注
}

// BrainDecider is the core interface all bot types implement.
type BrainDecider interface {
	// Decide is called when it's the bot's turn.
	Decide(view GameView) Decision
	// Name returns a human-readable identifier for debugging.
	Name() string
}

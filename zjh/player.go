package zjh

import "royal235/card"

// Mood 最近动作的展示倾向（客户端着色用）
type Mood byte

const (
	MoodNeutral  Mood = 0
	MoodPositive Mood = 1
	MoodNegative Mood = 2
)

var MoodDictionary = map[Mood]string{
	MoodNeutral:  "neutral",
	MoodPositive: "positive",
	MoodNegative: "negative",
}

type Player struct {
	Seat  int
	Name  string
	Human bool

	chips      int64
	handCards  card.CardList
	hasSeen    bool
	status     PlayerStatus
	currentBet int64
	dealer     bool

	lastAction string
	lastMood   Mood
}

func (p *Player) Chips() int64         { return p.chips }
func (p *Player) Bet() int64           { return p.currentBet }
func (p *Player) Status() PlayerStatus { return p.status }
func (p *Player) HasSeenCards() bool   { return p.hasSeen }
func (p *Player) IsDealer() bool       { return p.dealer }
func (p *Player) LastAction() string   { return p.lastAction }
func (p *Player) Hand() card.CardList  { return p.handCards }

func (p *Player) resetForNewHand() {
	p.handCards = make(card.CardList, 0, 3)
	p.hasSeen = false
	p.currentBet = 0
	p.dealer = false
	p.lastAction = ""
	p.lastMood = MoodNeutral
}

func (p *Player) addHandCard(cards ...card.Card) {
	p.handCards = append(p.handCards, cards...)
}

// placeBet 扣筹码并计入本轮下注，返回实际支付额
func (p *Player) placeBet(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	if amount > p.chips {
		amount = p.chips
	}
	p.chips -= amount
	p.currentBet += amount
	return amount
}

func (p *Player) setLastAction(label string, mood Mood) {
	p.lastAction = label
	p.lastMood = mood
}

package zjh

import "royal235/card"

const InvalidSeat int = -1

// Phase 游戏阶段
type Phase byte

const (
	PhaseIdle      Phase = 0
	PhaseDealing   Phase = 1
	PhaseBetting   Phase = 2
	PhaseComparing Phase = 3 // 发起人正在选比牌对象
	PhaseResolving Phase = 4 // 比牌结果展示中
	PhaseShowdown  Phase = 5
)

var PhaseDictionary = map[Phase]string{
	PhaseIdle:      "IDLE",
	PhaseDealing:   "DEALING",
	PhaseBetting:   "BETTING",
	PhaseComparing: "COMPARING",
	PhaseResolving: "RESOLVING",
	PhaseShowdown:  "SHOWDOWN",
}

func (p Phase) String() string { return PhaseDictionary[p] }

// ActionType 动作类型
type ActionType byte

const (
	ActionNone          ActionType = 0
	ActionFold          ActionType = 1
	ActionSeeCards      ActionType = 2
	ActionCall          ActionType = 3
	ActionRaise         ActionType = 4
	ActionAllIn         ActionType = 5
	ActionCompareInit   ActionType = 6
	ActionCompareTarget ActionType = 7
)

var ActionTypeDictionary = map[ActionType]string{
	ActionNone:          "NONE",
	ActionFold:          "FOLD",
	ActionSeeCards:      "SEE_CARDS",
	ActionCall:          "CALL",
	ActionRaise:         "RAISE",
	ActionAllIn:         "ALL_IN",
	ActionCompareInit:   "COMPARE_INIT",
	ActionCompareTarget: "COMPARE_TARGET",
}

func (a ActionType) String() string { return ActionTypeDictionary[a] }

// PlayerStatus 玩家状态
type PlayerStatus byte

const (
	StatusWaiting PlayerStatus = 0
	StatusPlaying PlayerStatus = 1
	StatusFolded  PlayerStatus = 2
	StatusLost    PlayerStatus = 3 // 比牌输掉出局
	StatusWon     PlayerStatus = 4
)

var PlayerStatusDictionary = map[PlayerStatus]string{
	StatusWaiting: "WAITING",
	StatusPlaying: "PLAYING",
	StatusFolded:  "FOLDED",
	StatusLost:    "LOST",
	StatusWon:     "WON",
}

func (s PlayerStatus) String() string { return PlayerStatusDictionary[s] }

// EventType 一次性表现事件（随下一条快照下发后即清除）
type EventType byte

const (
	EventNone         EventType = 0
	EventGameStart    EventType = 1
	EventChipFly      EventType = 2
	EventCompareStart EventType = 3
)

var EventTypeDictionary = map[EventType]string{
	EventNone:         "",
	EventGameStart:    "GAME_START",
	EventChipFly:      "CHIP_FLY",
	EventCompareStart: "COMPARE_START",
}

// Event 附着在快照上的一次性事件
type Event struct {
	Type EventType
	Seat int   // CHIP_FLY: 出筹码的座位
	Duel *Duel // COMPARE_START
}

// Duel 一次比牌的结果（RESOLVING 阶段展示用）
type Duel struct {
	InitiatorSeat int
	TargetSeat    int
	WinnerSeat    int
}

var DeckCards = []card.Card{
	card.CardSpade2, card.CardSpade3, card.CardSpade4, card.CardSpade5, card.CardSpade6, card.CardSpade7,
	card.CardSpade8, card.CardSpade9, card.CardSpadeT, card.CardSpadeJ, card.CardSpadeQ, card.CardSpadeK, card.CardSpadeA,
	card.CardHeart2, card.CardHeart3, card.CardHeart4, card.CardHeart5, card.CardHeart6, card.CardHeart7,
	card.CardHeart8, card.CardHeart9, card.CardHeartT, card.CardHeartJ, card.CardHeartQ, card.CardHeartK, card.CardHeartA,
	card.CardClub2, card.CardClub3, card.CardClub4, card.CardClub5, card.CardClub6, card.CardClub7,
	card.CardClub8, card.CardClub9, card.CardClubT, card.CardClubJ, card.CardClubQ, card.CardClubK, card.CardClubA,
	card.CardDiamond2, card.CardDiamond3, card.CardDiamond4, card.CardDiamond5, card.CardDiamond6, card.CardDiamond7,
	card.CardDiamond8, card.CardDiamond9, card.CardDiamondT, card.CardDiamondJ, card.CardDiamondQ, card.CardDiamondK, card.CardDiamondA,
}

package zjh

import (
	"sort"

	"royal235/card"
)

// HandType 牌型。枚举值即常规强度序（235 在常规序里最小，
// 对豹子的克制关系由 Beats 单独处理）。
type HandType byte

const (
	HandInvalid       HandType = 0
	HandSpecial235    HandType = 1 // 杂色 235
	HandHighCard      HandType = 2
	HandPair          HandType = 3
	HandStraight      HandType = 4
	HandFlush         HandType = 5
	HandStraightFlush HandType = 6
	HandLeopard       HandType = 7 // 豹子（三条）
)

var HandTypeDictionary = map[HandType]string{
	HandInvalid:       "INVALID",
	HandSpecial235:    "SPECIAL_235",
	HandHighCard:      "HIGH_CARD",
	HandPair:          "PAIR",
	HandStraight:      "STRAIGHT",
	HandFlush:         "FLUSH",
	HandStraightFlush: "STRAIGHT_FLUSH",
	HandLeopard:       "LEOPARD",
}

func (t HandType) String() string { return HandTypeDictionary[t] }

type HandResult struct {
	Type  HandType
	Score int64 // 同牌型内的比较分
}

// Evaluate 评估 3 张手牌。
//
// 规则要点:
// - A 永远最大，A-2-3 不是顺子（按高牌/同花处理），Q-K-A 是最大顺子。
// - 杂色 2-3-5 是特殊牌型；同花色的 2-3-5 只是普通同花。
// - 同花/高牌分值: 高*10000 + 中*100 + 低；对子: 对*100 + 单张。
func Evaluate(cards []card.Card) HandResult {
	if len(cards) != 3 {
		return HandResult{Type: HandInvalid}
	}

	ranks := []int{cards[0].Rank(), cards[1].Rank(), cards[2].Rank()}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	hi, mid, lo := int64(ranks[0]), int64(ranks[1]), int64(ranks[2])

	isFlush := cards[0].Suit() == cards[1].Suit() && cards[1].Suit() == cards[2].Suit()
	isStraight := ranks[0]-ranks[1] == 1 && ranks[1]-ranks[2] == 1
	is235 := ranks[0] == 5 && ranks[1] == 3 && ranks[2] == 2

	switch {
	case hi == mid && mid == lo:
		return HandResult{Type: HandLeopard, Score: hi}
	case is235 && !isFlush:
		return HandResult{Type: HandSpecial235}
	case isFlush && isStraight:
		return HandResult{Type: HandStraightFlush, Score: hi}
	case isFlush:
		return HandResult{Type: HandFlush, Score: hi*10000 + mid*100 + lo}
	case isStraight:
		return HandResult{Type: HandStraight, Score: hi}
	case hi == mid:
		return HandResult{Type: HandPair, Score: hi*100 + lo}
	case mid == lo:
		return HandResult{Type: HandPair, Score: mid*100 + hi}
	default:
		return HandResult{Type: HandHighCard, Score: hi*10000 + mid*100 + lo}
	}
}

// Beats 判定 a 是否严格胜过 b。平局返回 false（发起方视角即发起方输）。
func Beats(a, b []card.Card) bool {
	return BeatsEval(Evaluate(a), Evaluate(b))
}

func BeatsEval(evA, evB HandResult) bool {
	// 杂色 235 克豹子，输给其余一切。
	if evA.Type == HandSpecial235 && evB.Type == HandLeopard {
		return true
	}
	if evB.Type == HandSpecial235 && evA.Type == HandLeopard {
		return false
	}
	if evA.Type != evB.Type {
		return evA.Type > evB.Type
	}
	return evA.Score > evB.Score
}

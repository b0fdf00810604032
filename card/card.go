package card

import "fmt"

// Card 牌枚举
//
// 编码规则:
// - 高4位: 花色 (0:Heart, 1:Diamond, 2:Club, 3:Spade)
// - 低4位: 点数 (2..14, 11:J, 12:Q, 13:K, 14:A)
//
// A 永远是最大点数：炸金花里 A-2-3 不算顺子，所以不需要 A=1 的低位形态。
type Card byte

const CardInvalid Card = 0

func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}
	return fmt.Sprintf("%s%s", c.Suit(), rankLabel(c.Rank()))
}

// Rank 获取牌面值 2-14 (J=11, Q=12, K=13, A=14)
func (c Card) Rank() int {
	if c == CardInvalid {
		return 0
	}
	return int(c & 0x0F)
}

// Suit 花色 (0:Hearts, 1:Diamonds, 2:Clubs, 3:Spades)
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

// ID is the stable wire identifier for a card, e.g. "♥-12".
func (c Card) ID() string {
	return fmt.Sprintf("%s-%d", c.Suit(), c.Rank())
}

func rankLabel(r int) string {
	switch r {
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	case 14:
		return "A"
	default:
		return fmt.Sprintf("%d", r)
	}
}

// Make builds a card from suit and rank (2..14). Invalid input yields CardInvalid.
func Make(s Suit, rank int) Card {
	if rank < 2 || rank > 14 || s > Spade {
		return CardInvalid
	}
	return Card(byte(s)<<4 | byte(rank))
}

package card

type Suit byte

const (
	Heart   Suit = iota // ♥
	Diamond             // ♦
	Club                // ♣
	Spade               // ♠
)

func (s Suit) String() string {
	switch s {
	case Heart:
		return "♥"
	case Diamond:
		return "♦"
	case Club:
		return "♣"
	case Spade:
		return "♠"
	}
	return "?"
}

package bot

import (
	"math/rand"

	"royal235/zjh"
)

// RuleBrain 用一个随机"胆量"值加牌力分档做决策。
type RuleBrain struct {
	Persona *Persona
	rng     *rand.Rand
}

func NewRuleBrain(persona *Persona, seed int64) *RuleBrain {
	return &RuleBrain{
		Persona: persona,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (b *RuleBrain) Name() string { return b.Persona.Name }

// Decide implements BrainDecider.
//
// 分档:
// - 烂牌（杂色235 或 高牌分 < 100000）: 前几圈小概率诈唬加注，
//   注不大时偶尔跟一手，否则弃牌。
// - 中等（对子/高牌）: 注太大且胆量不足就弃牌，偶尔加注，
//   圈数拖太久就发起比牌清人，默认跟注。
// - 强牌（同花/顺子）: 多数时候加注。
// - 神牌（同花顺/豹子，含克豹子的235）: 加注。
//
// 加注次数到顶后想加注的，掷硬币改成比牌或跟注。
func (b *RuleBrain) Decide(view GameView) Decision {
	ev := zjh.Evaluate(view.HandCards)
	bravery := b.rng.Float64()

	var want zjh.ActionType
	switch {
	case ev.Type == zjh.HandSpecial235 || (ev.Type == zjh.HandHighCard && ev.Score < 100000):
		switch {
		case bravery > 0.9 && view.Round < 3:
			want = zjh.ActionRaise
		case bravery > 0.7 && view.CurrentBet <= 2000:
			want = zjh.ActionCall
		default:
			want = zjh.ActionFold
		}
	case ev.Type == zjh.HandPair || ev.Type == zjh.HandHighCard:
		switch {
		case view.CurrentBet > 5000 && bravery < 0.4:
			want = zjh.ActionFold
		case bravery > 0.8:
			want = zjh.ActionRaise
		case view.Round > 5 && bravery > 0.5:
			want = zjh.ActionCompareInit
		default:
			want = zjh.ActionCall
		}
	case ev.Type == zjh.HandFlush || ev.Type == zjh.HandStraight:
		if bravery > 0.3 {
			want = zjh.ActionRaise
		} else {
			want = zjh.ActionCall
		}
	default:
		want = zjh.ActionRaise
	}

	if want == zjh.ActionRaise {
		if view.RaiseCount >= view.RaiseCap {
			if b.rng.Float64() > 0.5 {
				return Decision{Action: zjh.ActionCompareInit}
			}
			return Decision{Action: zjh.ActionCall}
		}
		return Decision{Action: zjh.ActionRaise, Amount: b.raiseTarget(view)}
	}
	return Decision{Action: want}
}

// raiseTarget 加注目标：当前注再顶一个最小加注，开局固定顶到 2000。
func (b *RuleBrain) raiseTarget(view GameView) int64 {
	if view.CurrentBet >= view.MinRaise {
		return view.CurrentBet + view.MinRaise
	}
	return 2 * view.MinRaise
}

package bot

import (
	"testing"

	"royal235/card"
	"royal235/zjh"
)

func testPersona() *Persona {
	return &Persona{ID: "test", Name: "TEST"}
}

func baseView(hand []card.Card) GameView {
	return GameView{
		HandCards:   hand,
		Pot:         5000,
		CurrentBet:  1000,
		MyChips:     500000,
		Round:       1,
		RaiseCount:  0,
		RaiseCap:    10,
		MinRaise:    1000,
		ActiveCount: 3,
	}
}

func TestRuleBrainWeakHandMostlyFolds(t *testing.T) {
	brain := NewRuleBrain(testPersona(), 42)
	view := baseView([]card.Card{card.CardHeart2, card.CardDiamond4, card.CardClub8})
	view.CurrentBet = 3000 // 超过偶尔跟一手的 2000 线

	const rounds = 4000
	folds, raises := 0, 0
	for i := 0; i < rounds; i++ {
		switch brain.Decide(view).Action {
		case zjh.ActionFold:
			folds++
		case zjh.ActionRaise:
			raises++
		}
	}

	foldRate := float64(folds) / float64(rounds)
	if foldRate < 0.80 {
		t.Fatalf("weak hand fold rate too low: %.3f", foldRate)
	}
	// 诈唬加注存在但罕见
	raiseRate := float64(raises) / float64(rounds)
	if raiseRate > 0.15 {
		t.Fatalf("weak hand bluffs too often: %.3f", raiseRate)
	}
}

func TestRuleBrainWeakHandNeverBluffsLate(t *testing.T) {
	brain := NewRuleBrain(testPersona(), 7)
	view := baseView([]card.Card{card.CardHeart2, card.CardDiamond4, card.CardClub8})
	view.Round = 6 // 诈唬只在前几圈

	for i := 0; i < 2000; i++ {
		if brain.Decide(view).Action == zjh.ActionRaise {
			t.Fatalf("weak hand must not bluff-raise after the early rounds")
		}
	}
}

func TestRuleBrainMediumHandComparesInLongHands(t *testing.T) {
	brain := NewRuleBrain(testPersona(), 11)
	view := baseView([]card.Card{card.CardHeartK, card.CardDiamondK, card.CardClub4})
	view.Round = 6

	const rounds = 4000
	compares := 0
	for i := 0; i < rounds; i++ {
		if brain.Decide(view).Action == zjh.ActionCompareInit {
			compares++
		}
	}
	rate := float64(compares) / float64(rounds)
	if rate < 0.15 || rate > 0.60 {
		t.Fatalf("medium hand late compare rate out of range: %.3f", rate)
	}
}

func TestRuleBrainStrongHandRaisesOften(t *testing.T) {
	brain := NewRuleBrain(testPersona(), 13)
	view := baseView([]card.Card{card.CardSpade4, card.CardSpade9, card.CardSpadeJ})

	const rounds = 4000
	raises := 0
	for i := 0; i < rounds; i++ {
		d := brain.Decide(view)
		if d.Action == zjh.ActionRaise {
			raises++
			if d.Amount != view.CurrentBet+view.MinRaise {
				t.Fatalf("raise target should top the bet by one min raise, got %d", d.Amount)
			}
		}
	}
	rate := float64(raises) / float64(rounds)
	if rate < 0.55 {
		t.Fatalf("strong hand raise rate too low: %.3f", rate)
	}
}

func TestRuleBrainGodHandAlwaysRaises(t *testing.T) {
	brain := NewRuleBrain(testPersona(), 17)
	view := baseView([]card.Card{card.CardHeart9, card.CardDiamond9, card.CardClub9})

	for i := 0; i < 1000; i++ {
		if brain.Decide(view).Action != zjh.ActionRaise {
			t.Fatalf("leopard must always raise below the cap")
		}
	}
}

func TestRuleBrainRaiseCapFallsBackToCompareOrCall(t *testing.T) {
	brain := NewRuleBrain(testPersona(), 19)
	view := baseView([]card.Card{card.CardHeart9, card.CardDiamond9, card.CardClub9})
	view.RaiseCount = 10

	const rounds = 4000
	compares, calls := 0, 0
	for i := 0; i < rounds; i++ {
		switch brain.Decide(view).Action {
		case zjh.ActionRaise:
			t.Fatalf("must not raise at the cap")
		case zjh.ActionCompareInit:
			compares++
		case zjh.ActionCall:
			calls++
		default:
			t.Fatalf("unexpected fallback action")
		}
	}
	// 掷硬币二选一
	compareRate := float64(compares) / float64(rounds)
	if compareRate < 0.40 || compareRate > 0.60 {
		t.Fatalf("cap fallback should be a coin flip, compare rate %.3f", compareRate)
	}
	if compares+calls != rounds {
		t.Fatalf("fallback must be compare or call only")
	}
}

func TestRuleBrainOpeningRaiseTarget(t *testing.T) {
	brain := NewRuleBrain(testPersona(), 23)
	view := baseView([]card.Card{card.CardHeart9, card.CardDiamond9, card.CardClub9})
	view.CurrentBet = 500 // 低于最小加注时固定顶到 2000

	d := brain.Decide(view)
	if d.Action != zjh.ActionRaise || d.Amount != 2000 {
		t.Fatalf("opening raise should target 2000, got %v %d", d.Action, d.Amount)
	}
}

func TestManagerSpawnAndCompareTarget(t *testing.T) {
	cfg := zjh.DefaultConfig()
	cfg.Seed = 5
	game, err := zjh.NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := game.AddPlayer("human", true); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	mgr := NewManager(cfg, 5)
	for i := 0; i < 2; i++ {
		if _, err := mgr.Spawn(game, &DefaultPersonas[i]); err != nil {
			t.Fatalf("Spawn: %v", err)
		}
	}

	if mgr.IsBot(0) {
		t.Fatalf("seat 0 is human")
	}
	if !mgr.IsBot(1) || !mgr.IsBot(2) {
		t.Fatalf("seats 1 and 2 should be bots")
	}

	if err := game.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	snap := game.Snapshot()

	for i := 0; i < 100; i++ {
		target := mgr.PickCompareTarget(1, snap)
		if target == 1 || target == zjh.InvalidSeat {
			t.Fatalf("bad compare target %d", target)
		}
		if target != 0 && target != 2 {
			t.Fatalf("target must be another live seat, got %d", target)
		}
	}
}
